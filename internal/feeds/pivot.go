// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"fmt"
	"strings"

	"github.com/pdiddy/grant-meter/pkg/types"
)

func init() { Register("PIVOT", newPivot) }

// pivotAdapter reads the ProQuest Pivot-RP export.
type pivotAdapter struct {
	t *table
}

func newPivot(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &pivotAdapter{t: t}, nil
}

func (a *pivotAdapter) Kind() string { return "PIVOT" }
func (a *pivotAdapter) Len() int     { return a.t.len() }

func (a *pivotAdapter) Describe(row int) string {
	return a.t.field(row, "Abstract")
}

var pivotDateLayouts = []string{"2 Jan 2006"}

// date skips deadline notes like "Confirmed by sponsor" that carry no
// parseable date.
func (a *pivotAdapter) date(raw string) string {
	if strings.Contains(raw, "sponsor") {
		return ""
	}
	return normalizeDateDiag("PIVOT", raw, pivotDateLayouts)
}

// pivotURL repairs the export's "https: //host/path" link cells.
func pivotURL(raw string) string {
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) < 2 {
		return raw
	}
	return "https:" + strings.TrimSpace(parts[1])
}

func (a *pivotAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	r := types.Record{
		Similarity:        similarity,
		Feed:              "Proquest PIVOT",
		FeedID:            a.t.field(row, "Ex Libris Pivot-RP ID"),
		ProgramID:         a.t.field(row, "Funder ID"),
		SponsorType:       a.t.field(row, "Funder type"),
		Eligibility:       a.t.field(row, "Eligibility"),
		ApplicantLocation: a.t.field(row, "Applicant/Institution Location"),
		CitizenshipReq:    a.t.field(row, "Citizenship"),
		ActivityLocation:  a.t.field(row, "Activity location"),
		ApplicantType:     a.t.field(row, "Applicant type"),
		Description:       a.t.field(row, "Abstract"),
		URL:               pivotURL(a.t.field(row, "Link to Pivot-RP")),
		SolicitationURL:   pivotURL(a.t.field(row, "Website")),
		Categories:        a.t.field(row, "Keywords"),
		AwardType:         a.t.field(row, "Funding type"),
		MaxAmount:         a.t.field(row, "Amount Upper"),
		Amount:            a.t.field(row, "Amount"),
		CFDA:              a.t.field(row, "CFDA Numbers"),
	}

	// Some titles embed the funder ("Prize X Funder: Acme Foundation").
	if name, funder, ok := strings.Cut(title, "Funder: "); ok {
		r.Title = strings.TrimSpace(name)
		r.Sponsor = strings.TrimSpace(funder)
	} else {
		r.Title = title
		r.Sponsor = a.t.field(row, "Funder")
	}

	// Upcoming deadlines is a newline list; a "confirmed by sponsor"
	// entry carries the close date in its leading token.
	r.DueDates = map[string]string{}
	if deadlines := a.t.field(row, "Upcoming deadlines"); deadlines != "" {
		for i, line := range strings.Split(deadlines, "\n") {
			line = strings.TrimSpace(line)
			r.DueDates[fmt.Sprintf("Deadline_%d", i)] = line
			if strings.Contains(line, "sponsor") {
				d := strings.SplitN(line, " - ", 2)[0]
				r.CloseDate = normalizeDateDiag("PIVOT", strings.TrimSpace(d), pivotDateLayouts)
				if r.Posted == "" {
					r.Posted = r.CloseDate
				}
			}
		}
	}
	return r, nil
}
