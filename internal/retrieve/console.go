// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/grant-meter/internal/index"
)

const (
	consoleWidth = 80
	maxBodyLines = 12
	tierCount    = 11
)

// tierColors are xterm-256 palette indices, one per similarity tier,
// lowest tier first.
var tierColors = []string{"240", "245", "250", "255", "46", "33", "92", "226", "202", "199"}

// tierNames label the similarity tiers, lowest first.
var tierNames = []string{
	"poor fish, try again!",
	"clammy",
	"harmless",
	"mild",
	"naughty,  but nice",
	"Wild",
	"Burning!",
	"Passionate!!",
	"Hot Stuff!!!",
	"UNCONTROLLABLE!!!!",
}

var (
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// tierColor maps a similarity score to its tier's palette color.
// Scores below zero clamp to the lowest tier, scores at or above one
// to the highest.
func tierColor(sim float64) lipgloss.Color {
	tier := int(sim*100) / tierCount
	if tier < 0 {
		tier = 0
	}
	if tier >= len(tierColors) {
		tier = len(tierColors) - 1
	}
	return lipgloss.Color(tierColors[tier])
}

// Console renders query results for a terminal. All output goes to the
// single writer; nothing is buffered between calls.
type Console struct {
	w io.Writer

	// Model names the embedding model in the banner.
	Model string
}

// NewConsole returns a console writing to w.
func NewConsole(w io.Writer, model string) *Console {
	return &Console{w: w, Model: model}
}

// ShowBanner prints the grant meter banner and the tier ladder.
func (c *Console) ShowBanner() {
	fmt.Fprintln(c.w)
	c.prizeBanner("Dr. Grant's Proposal Test-O-Meter!", 0.99, false)
	c.keyValue("How attractive is your idea to potential sponsors?", "Let's find out!", false)
	c.showTiers()
}

// showTiers prints the color-coded tier ladder, best tier first.
func (c *Console) showTiers() {
	for i := len(tierNames) - 1; i >= 0; i-- {
		low := float64(i) / float64(len(tierNames))
		high := float64(i+1) / float64(len(tierNames))
		metric := fmt.Sprintf("Cosine Similarity in [%.1f,%.1f)", low, high)
		styled := lipgloss.NewStyle().Foreground(lipgloss.Color(tierColors[i])).Render(metric)
		fmt.Fprintf(c.w, " - %s -- %s\n", styled, tierNames[i])
	}
}

// ShowResults prints each record as a prize banner with its URL and
// description. When scoresOnly is set only the banner line with the
// numeric score is printed per record, matching the export preview.
func (c *Console) ShowResults(results ResultSet, scoresOnly bool) {
	fmt.Fprintf(c.w, "\n*** Dr. Grant's (%s) top %d picks ***\n", c.Model, len(results))
	for _, r := range results {
		if scoresOnly {
			c.prizeBanner(r.Title, r.Similarity, true)
			continue
		}
		c.prizeBanner(r.Title, r.Similarity, false)
		c.keyValue("URL", r.URL, false)
		c.keyValue("Abstract", r.Description, true)
	}
}

// ShowShortfall reports an underfilled result set.
func (c *Console) ShowShortfall(shortfall int) {
	if shortfall > 0 {
		fmt.Fprintf(c.w, "\nfound %d fewer results than requested\n", shortfall)
	}
}

// ShowQuery prints the effective query parameters.
func (c *Console) ShowQuery(name, prompt string, k, sinceYears int, output string) {
	c.keyValue("Query", name, false)
	c.keyValue("Prompt", prompt, true)
	c.keyValue("Top picks", strconv.Itoa(k), false)
	if sinceYears > 0 {
		c.keyValue("Closing within past years", strconv.Itoa(sinceYears), false)
	}
	if output != "" {
		c.keyValue("Output", output, false)
	}
}

// ShowStats prints the per-feed entry counts of an index.
func (c *Console) ShowStats(ix *index.Index) {
	fmt.Fprintf(c.w, " - Searching %d opportunities:\n", len(ix.Entries))
	for _, fc := range ix.Stats() {
		fmt.Fprintf(c.w, "   -- %s: %d opportunities\n", fc.Feed, fc.Count)
	}
}

// prizeBanner prints a single line color-coded by similarity tier.
func (c *Console) prizeBanner(message string, sim float64, showScore bool) {
	text := flatten(message)
	if showScore {
		text = fmt.Sprintf("[%0.4f] %s", sim, text)
	} else {
		text = wrap(text, 0)
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(tierColor(sim))
	fmt.Fprintln(c.w, style.Render(text))
}

// keyValue prints a bold key with a dim wrapped value. With limit set
// the value is truncated to maxBodyLines lines.
func (c *Console) keyValue(key, value string, limit bool) {
	text := key + ": " + flatten(value)
	lines := 0
	if limit {
		lines = maxBodyLines
	}
	text = wrap(text, lines)
	rendered := boldStyle.Render(key+":") + dimStyle.Render(strings.TrimPrefix(text, key+":"))
	fmt.Fprintln(c.w, rendered)
}

// flatten folds newlines so a single record field prints as one
// wrapped paragraph.
func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " -- ")
}

// wrap breaks text at word boundaries to the console width. A
// positive maxLines caps the output with an ellipsis marker.
func wrap(s string, maxLines int) string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(s) {
		for len(word) > consoleWidth {
			if line.Len() > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			lines = append(lines, word[:consoleWidth])
			word = word[consoleWidth:]
		}
		if line.Len() > 0 && line.Len()+1+len(word) > consoleWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += " [...]"
	}
	return strings.Join(lines, "\n")
}
