// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"strings"

	"github.com/pdiddy/grant-meter/pkg/types"
)

func init() { Register("NSF", newNSF) }

// nsfAdapter reads the NSF funding-opportunity export.
type nsfAdapter struct {
	t *table
}

func newNSF(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &nsfAdapter{t: t}, nil
}

func (a *nsfAdapter) Kind() string { return "NSF" }
func (a *nsfAdapter) Len() int     { return a.t.len() }

func (a *nsfAdapter) Describe(row int) string {
	return a.t.field(row, "Synopsis")
}

var nsfDateLayouts = []string{"2006-01-02"}

// nsfDate handles NSF's "Accepted anytime, 2024-08-01" style cells by
// keeping only the portion after the comma.
func (a *nsfAdapter) nsfDate(raw string) string {
	if strings.Contains(raw, " ") {
		if _, after, ok := strings.Cut(raw, ","); ok {
			raw = strings.TrimSpace(after)
		}
	}
	return normalizeDateDiag("NSF", raw, nsfDateLayouts)
}

func (a *nsfAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	nextDue := a.t.field(row, "Next_due_date")

	r := types.Record{
		Similarity:      similarity,
		Feed:            "NSF",
		Title:           title,
		Posted:          a.nsfDate(a.t.field(row, "Posted_date")),
		Description:     a.t.field(row, "Synopsis"),
		DueDates:        map[string]string{"NextDueDate": nextDue},
		CloseDate:       a.nsfDate(nextDue),
		RollingDecision: a.t.field(row, "Proposals_accepted_anytime"),
		ProgramID:       a.t.field(row, "Program_ID"),
		FeedID:          a.t.field(row, "NSF_PD_Num"),
		Status:          a.t.field(row, "Status"),
		URL:             a.t.field(row, "URL"),
		AwardType:       a.t.field(row, "Type"),
		SolicitationURL: a.t.field(row, "Solicitation_URL"),
		SponsorType:     "Federal",
		Sponsor:         "NSF",
	}
	return r, nil
}
