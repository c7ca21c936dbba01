// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"github.com/pdiddy/grant-meter/pkg/types"
)

func init() { Register("GRANTS", newGrantsGov) }

// grantsAdapter reads the Grants.gov XMLExtract CSV conversion.
// Field reference: https://apply07.grants.gov/help/html/help/index.htm#t=XMLExtract%2FXMLExtract.htm
type grantsAdapter struct {
	t *table
}

func newGrantsGov(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &grantsAdapter{t: t}, nil
}

func (a *grantsAdapter) Kind() string { return "GRANTS" }
func (a *grantsAdapter) Len() int     { return a.t.len() }

func (a *grantsAdapter) Describe(row int) string {
	return a.t.field(row, "Description")
}

// Grants.gov dates arrive as MMDDYYYY integers, sometimes with a float
// artifact from upstream tooling ("10152024.0").
var grantsDateLayouts = []string{"01022006", "2006-01-02"}

func (a *grantsAdapter) date(raw string) string {
	return normalizeDateDiag("GRANTS", stripFraction(raw), grantsDateLayouts)
}

// Grants.gov categorical code tables.
var (
	grantsOppCategory = map[string]string{
		"D": "Discretionary",
		"M": "Mandatory",
		"C": "Continuation",
		"E": "Earmark",
		"O": "Other",
	}
	grantsFundingInstrument = map[string]string{
		"G":  "Grant",
		"CA": "Cooperative Agreement",
		"O":  "Other",
		"PC": "Procurement Contract",
	}
	grantsEligibleApplicants = map[string]string{
		"99": "Unrestricted",
		"00": "State governments",
		"01": "County governments",
		"02": "City or township governments",
		"04": "Special district governments",
		"05": "Independent school districts",
		"06": "Public and State controlled institutions of higher education",
		"07": "Native American tribal governments (Federally recognized)",
		"08": "Public housing authorities/Indian housing authorities",
		"11": "Native American tribal organizations (other than Federally recognized tribal governments)",
		"12": "Nonprofits having a 501(c)(3) status with the IRS, other than institutions of higher education",
		"13": "Nonprofits that do not have a 501(c)(3) status with the IRS, other than institutions of higher education",
		"20": "Private institutions of higher education",
		"21": "Individuals",
		"22": "For profit organizations other than small businesses",
		"23": "Small businesses",
		"25": "Others",
	}
)

func (a *grantsAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "OpportunityTitle")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	feedID := a.t.field(row, "OpportunityID")

	r := types.Record{
		Similarity:   similarity,
		Feed:         "Grants.gov",
		FeedID:       feedID,
		Title:        title,
		ProgramID:    a.t.field(row, "OpportunityNumber"),
		Categories:   grantsOppCategory[a.t.field(row, "OpportunityCategory")],
		AwardType:    grantsFundingInstrument[a.t.field(row, "FundingInstrumentType")],
		CFDA:         a.t.field(row, "CFDANumbers"),
		Eligibility:  a.t.field(row, "AdditionalInformationOnEligibility"),
		Sponsor:      a.t.field(row, "AgencyName"),
		Posted:       a.date(a.t.field(row, "PostDate")),
		DueDates:     map[string]string{},
		CloseDate:    a.date(a.t.field(row, "CloseDate")),
		ModifiedDate: a.date(a.t.field(row, "LastUpdatedDate")),
		MaxAmount:    a.t.field(row, "AwardCeiling"),
		MinAmount:    a.t.field(row, "AwardFloor"),
		Amount:       a.t.field(row, "EstimatedTotalProgramFunding"),
		MaxNumAwards: a.t.field(row, "ExpectedNumberOfAwards"),
		Description:  a.t.field(row, "Description"),
		CostSharing:  a.t.field(row, "CostSharingOrMatchingRequirement"),
		Contacts: map[string]string{
			"Email":   a.t.field(row, "GrantorContactEmail"),
			"Contact": a.t.field(row, "GrantorContactText"),
			"Name":    a.t.field(row, "GrantorContactName"),
			"Phone":   a.t.field(row, "GrantorContactPhoneNumber"),
		},
		URL:             "https://www.grants.gov/search-results-detail/" + feedID,
		SolicitationURL: a.t.field(row, "AdditionalInformationURL"),
	}
	if label, ok := grantsEligibleApplicants[a.t.field(row, "EligibleApplicants")]; ok {
		r.ApplicantType = label
	}
	return r, nil
}
