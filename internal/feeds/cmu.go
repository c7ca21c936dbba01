// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import "github.com/pdiddy/grant-meter/pkg/types"

func init() { Register("CMU", newCMU) }

// cmuAdapter reads the CMU Foundation Relations limited-submissions export.
type cmuAdapter struct {
	t *table
}

func newCMU(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &cmuAdapter{t: t}, nil
}

func (a *cmuAdapter) Kind() string { return "CMU" }
func (a *cmuAdapter) Len() int     { return a.t.len() }

func (a *cmuAdapter) Describe(row int) string {
	return a.t.field(row, "Summary")
}

var cmuDateLayouts = []string{"01/02/2006"}

func (a *cmuAdapter) date(raw string) string {
	return normalizeDateDiag("CMU", raw, cmuDateLayouts)
}

func (a *cmuAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Opportunity Name")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	// The export nests three internal deadlines per opportunity; the
	// sponsor close date is tracked only in DueDates.
	r := types.Record{
		Similarity:        similarity,
		Feed:              "CMU Foundation Relations",
		Title:             title,
		Sponsor:           "NA",
		SponsorType:       "NA",
		Posted:            "NA",
		Amount:            "NA",
		SubmissionDetails: a.t.field(row, "How do I submit a proposal?"),
		ProgramID:         a.t.field(row, "Solicitation Number"),
		DueDates: map[string]string{
			"InternalLOI":  a.date(a.t.field(row, "Internal Letter of Intent Deadline")),
			"InternalPPD":  a.date(a.t.field(row, "Internal Pre-Proposal Deadline")),
			"FinalDueDate": a.date(a.t.field(row, "Final Sponsor Deadline")),
		},
		CloseDate:              "",
		LimitedSubmissionInfo:  a.t.field(row, "CMU Limit"),
		SubmissionRequirements: a.t.field(row, "Proposal Requirements (internal, external nominations)"),
		URL:                    "https://www.cmu.edu/osp/limited-submissions/index.html",
		SolicitationURL:        a.t.field(row, "Website"),
		Description:            a.t.field(row, "Description"),
		Status:                 "Open",
	}
	return r, nil
}
