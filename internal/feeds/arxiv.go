// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feeds

import "github.com/pdiddy/grant-meter/pkg/types"

func init() { Register("ARXIV", newArxiv) }

// arxivAdapter reads the arXiv abstracts export. The one publication
// feed in the corpus: its records are papers, not opportunities, so
// most funding fields stay empty.
type arxivAdapter struct {
	t *table
}

func newArxiv(path string) (Adapter, error) {
	t, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return &arxivAdapter{t: t}, nil
}

func (a *arxivAdapter) Kind() string { return "ARXIV" }
func (a *arxivAdapter) Len() int     { return a.t.len() }

func (a *arxivAdapter) Describe(row int) string {
	return a.t.field(row, "abstract")
}

var arxivDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02",
}

func (a *arxivAdapter) date(raw string) string {
	return normalizeDateDiag("ARXIV", stripFraction(raw), arxivDateLayouts)
}

func (a *arxivAdapter) Materialize(row int, similarity float64) (types.Record, error) {
	title := a.t.field(row, "title")
	if title == "" {
		return types.Record{}, ErrMissingTitle
	}

	id := a.t.field(row, "id")

	// last_update stands in for CloseDate so the recency filter applies
	// to papers the same way it applies to deadlines.
	r := types.Record{
		Similarity:      similarity,
		Feed:            "arxiv.org",
		FeedID:          id,
		Title:           title,
		ProgramID:       a.t.field(row, "categories"),
		Sponsor:         "NA",
		AwardType:       "NA",
		Posted:          a.date(a.t.field(row, "version_created")),
		CloseDate:       a.date(a.t.field(row, "last_update")),
		Status:          a.t.field(row, "journal_ref"),
		SolicitationURL: a.t.field(row, "doi"),
		URL:             "https://arxiv.org/abs/" + id,
		Description:     a.t.field(row, "abstract"),
		Authors:         a.t.field(row, "authors"),
	}
	return r, nil
}
