package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
	tuitheme "github.com/glabrego/pokedex-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var statAbbreviations = map[string]string{
	"hp":              "hp",
	"attack":          "atk",
	"defense":         "def",
	"special-attack":  "spa",
	"special-defense": "spd",
	"speed":           "spe",
}

const nameColumnWidth = 14

type RecordLineParams struct {
	Record pokedex.Record
	Active bool
	Width  int
}

func RenderRecordLine(p RecordLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s #%03d ", cursorMarker, p.Record.ID)

	name := truncateRunes(p.Record.Name, nameColumnWidth)
	name += strings.Repeat(" ", nameColumnWidth-utf8.RuneCountInString(name))

	badges := make([]string, 0, len(p.Record.Categories))
	for _, category := range p.Record.Categories {
		badges = append(badges, th.CategoryBadge(category))
	}
	left := prefix + th.Title.Render(name) + " " + strings.Join(badges, " ")

	stats := StatSummary(p.Record.Stats)
	if stats == "" || p.Width <= 0 {
		return th.RenderActiveLine(p.Active, left)
	}
	available := p.Width - visibleLen(left) - 1
	if available < 1 {
		return th.RenderActiveLine(p.Active, left)
	}
	stats = truncateRunes(stats, available)
	gap := p.Width - visibleLen(left) - visibleLen(stats)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, left+strings.Repeat(" ", gap)+th.MetaValue.Render(stats))
}

// StatSummary renders stats as "hp 35 atk 55 ..." in record order.
func StatSummary(stats []pokedex.Stat) string {
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		label, ok := statAbbreviations[st.Name]
		if !ok {
			label = st.Name
		}
		parts = append(parts, fmt.Sprintf("%s %d", label, st.Value))
	}
	return strings.Join(parts, " ")
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
