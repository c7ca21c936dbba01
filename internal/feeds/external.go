// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import "github.com/pdiddy/grant-meter/pkg/types"

func init() { Register("EXTERNAL", newExternal) }

// externalAdapter reads the CMU external-foundation funding export.
type externalAdapter struct {
	t *table
}

func newExternal(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &externalAdapter{t: t}, nil
}

func (a *externalAdapter) Kind() string { return "EXTERNAL" }
func (a *externalAdapter) Len() int     { return a.t.len() }

func (a *externalAdapter) Describe(row int) string {
	return a.t.field(row, "Description")
}

var externalDateLayouts = []string{"01/02/2006"}

func (a *externalAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Opportunity Name")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	deadline := normalizeDateDiag("EXTERNAL", a.t.field(row, "Deadline"), externalDateLayouts)

	r := types.Record{
		Similarity:      similarity,
		Feed:            "CMU External Funding",
		Title:           title,
		Sponsor:         a.t.field(row, "Organization"),
		SponsorType:     "External Foundation",
		Posted:          "NA",
		DueDates:        map[string]string{"Deadline": deadline},
		CloseDate:       deadline,
		URL:             "https://www.cmu.edu/engage/partner/foundations/faculty-staff/index.html",
		SolicitationURL: a.t.field(row, "URL"),
		Amount:          a.t.field(row, "$ Amount of Award"),
		Description:     a.t.field(row, "Description"),
		Status:          "Open",
		Duration:        a.t.field(row, "Duration of Award"),
		EarlyCareer:     a.t.field(row, "Early Career"),
	}
	return r, nil
}
