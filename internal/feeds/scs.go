// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import "github.com/pdiddy/grant-meter/pkg/types"

func init() { Register("SCS", newSCS) }

// scsAdapter reads the SCS resources spreadsheet export.
type scsAdapter struct {
	t *table
}

// scsSheetURL is the shared spreadsheet every SCS record links back to.
const scsSheetURL = "https://docs.google.com/spreadsheets/d/19vQMmH0Vsg0tvf4ia3SBqWTQ8lowQCPhyTOt3hQSVHk/edit?usp=sharing"

func newSCS(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &scsAdapter{t: t}, nil
}

func (a *scsAdapter) Kind() string { return "SCS" }
func (a *scsAdapter) Len() int     { return a.t.len() }

func (a *scsAdapter) Describe(row int) string {
	return a.t.field(row, "Brief Description")
}

// The spreadsheet mixes two-digit and ISO dates.
var scsDateLayouts = []string{"01/02/06", "2006-01-02"}

func (a *scsAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	r := types.Record{
		Similarity:  similarity,
		Feed:        "SCS Resources Spreadsheet",
		Title:       title,
		Sponsor:     a.t.field(row, "Agency/Organization"),
		SponsorType: a.t.field(row, "Type"),
		Posted:      normalizeDateDiag("SCS", a.t.field(row, "Post Date"), scsDateLayouts),
		CloseDate:   normalizeDateDiag("SCS", a.t.field(row, "Due Date"), scsDateLayouts),
		URL:         scsSheetURL,
		Amount:      a.t.field(row, "Amount/Duration"),
		Description: a.t.field(row, "Brief Description"),
		Status:      "Open",
	}
	if r.CloseDate != "" {
		r.DueDates = map[string]string{"DueDate": r.CloseDate}
	}
	return r, nil
}
