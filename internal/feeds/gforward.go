// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import (
	"fmt"
	"strings"

	"github.com/pdiddy/grant-meter/pkg/types"
)

func init() { Register("GFORWARD", newGrantForward) }

// gforwardAdapter reads the GrantForward export, the richest feed in the
// corpus: almost every canonical field has a source column.
type gforwardAdapter struct {
	t *table
}

func newGrantForward(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &gforwardAdapter{t: t}, nil
}

func (a *gforwardAdapter) Kind() string { return "GFORWARD" }
func (a *gforwardAdapter) Len() int     { return a.t.len() }

func (a *gforwardAdapter) Describe(row int) string {
	return a.t.field(row, "Description")
}

var gforwardDateLayouts = []string{"2006-01-02", "January 2, 2006"}

// date tolerates "Label: date" cells by keeping the part after the
// first colon.
func (a *gforwardAdapter) date(raw string) string {
	if _, after, ok := strings.Cut(raw, ":"); ok {
		raw = strings.TrimSpace(after)
	}
	return normalizeDateDiag("GFORWARD", raw, gforwardDateLayouts)
}

func (a *gforwardAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "Title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	r := types.Record{
		Similarity:            similarity,
		Feed:                  "GrantForward",
		Title:                 title,
		Status:                a.t.field(row, "Status"),
		Description:           a.t.field(row, "Description"),
		SolicitationURL:       a.t.field(row, "Source URL"),
		Sponsor:               a.t.field(row, "Sponsors"),
		MaxAmount:             a.t.field(row, "Maximum Amount"),
		MinAmount:             a.t.field(row, "Minimum Amount"),
		AwardType:             a.t.field(row, "Grant Types"),
		Eligibility:           a.t.field(row, "Eligibility"),
		ApplicantLocation:     a.t.field(row, "Applicant Locations"),
		ActivityLocation:      a.t.field(row, "Activity Locations"),
		SubmissionDetails:     a.t.field(row, "Submission Info"),
		ApplicantType:         a.t.field(row, "Applicant Types"),
		Categories:            a.t.field(row, "Categories"),
		CitizenshipReq:        a.t.field(row, "Citizenships"),
		MaxNumAwards:          a.t.field(row, "Maximum Number of Awards"),
		MinNumAwards:          a.t.field(row, "Minimum Number of Awards"),
		LimitedSubmissionInfo: a.t.field(row, "Limited Submission Info"),
		CostSharing:           a.t.field(row, "Cost Sharing"),
		CFDA:                  a.t.field(row, "CFDA Numbers"),
		ModifiedDate:          a.date(a.t.field(row, "Modified Date")),
		URL:                   a.t.field(row, "GrantForward URL"),
	}
	if contact := a.t.field(row, "Contacts"); contact != "" {
		r.Contacts = map[string]string{"Contact": contact}
	}

	// Deadlines is a newline-separated list of labelled dates; the
	// submission and submit-date entries feed CloseDate and Posted,
	// the last matching line winning.
	r.DueDates = map[string]string{}
	if deadlines := a.t.field(row, "Deadlines"); deadlines != "" {
		for i, line := range strings.Split(deadlines, "\n") {
			line = strings.TrimSpace(line)
			r.DueDates[fmt.Sprintf("Deadline_%d", i)] = line
			if _, after, ok := strings.Cut(line, "Submission:"); ok {
				r.CloseDate = a.date(after)
			}
			if _, after, ok := strings.Cut(line, "Submit Date:"); ok {
				r.Posted = a.date(after)
			}
		}
	} else {
		r.DueDates["Closed"] = ""
	}
	r.DueDates["Submit Date"] = a.date(a.t.field(row, "Submit Date"))

	// The grant id is the only stable identifier, embedded in the URL
	// query string.
	if _, id, ok := strings.Cut(r.URL, "?grant_id="); ok {
		r.FeedID = id
	}
	return r, nil
}
