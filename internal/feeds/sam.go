// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import "github.com/pdiddy/grant-meter/pkg/types"

func init() { Register("SAM", newSAM) }

// samAdapter reads the SAM.gov contract-opportunities export.
type samAdapter struct {
	t *table
}

func newSAM(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &samAdapter{t: t}, nil
}

func (a *samAdapter) Kind() string { return "SAM" }
func (a *samAdapter) Len() int     { return a.t.len() }

func (a *samAdapter) Describe(row int) string {
	return a.t.field(row, "Description")
}

// SAM.gov emits locale timestamps with assorted timezone spellings;
// fractional seconds are stripped before matching.
var samDateLayouts = []string{
	"2006-01-02 15:04:05-07",
	"2006-01-02",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04-07:00",
}

func (a *samAdapter) date(raw string) string {
	return normalizeDateDiag("SAM", stripFraction(raw), samDateLayouts)
}

func (a *samAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	r := types.Record{
		Similarity: similarity,
		Feed:       "SAM.gov",
		FeedID:     a.t.field(row, "NoticeId"),
		Title:      title,
		ProgramID:  a.t.field(row, "Sol#"),
		Sponsor:    a.t.field(row, "Department/Ind.Agency"),
		Posted:     a.date(a.t.field(row, "PostedDate")),
		AwardType:  a.t.field(row, "Type"),
		DueDates: map[string]string{
			"ArchiveDate":      a.date(a.t.field(row, "ArchiveDate")),
			"ResponseDeadLine": a.date(a.t.field(row, "ResponseDeadLine")),
			"AwardDate":        a.date(a.t.field(row, "AwardDate")),
		},
		CloseDate:        a.date(a.t.field(row, "ResponseDeadLine")),
		ActivityLocation: a.t.field(row, "PopZip"),
		Status:           a.t.field(row, "Active"),
		Amount:           a.t.field(row, "Award$"),
		Contacts: map[string]string{
			"Title": a.t.field(row, "PrimaryContactTitle"),
			"Name":  a.t.field(row, "PrimaryContactFullname"),
			"Email": a.t.field(row, "PrimaryContactEmail"),
			"Phone": a.t.field(row, "PrimaryContactPhone"),
			"Fax":   a.t.field(row, "PrimaryContactFax"),
		},
		SponsorType:     a.t.field(row, "OrganizationType"),
		SolicitationURL: a.t.field(row, "AdditionalInfoLink"),
		URL:             a.t.field(row, "Link"),
		Description:     a.t.field(row, "Description"),
	}
	return r, nil
}
