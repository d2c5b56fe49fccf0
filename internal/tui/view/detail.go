package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
	tuitheme "github.com/glabrego/pokedex-cli/internal/tui/theme"
)

const (
	spritePreviewAnchor = "__SPRITE_PREVIEW_ANCHOR__"
	maxBaseStat         = 255
	maxStatBarWidth     = 40
)

type SpritePreviewState struct {
	Enabled bool
	Loading bool
	Raw     string
	Err     string
}

func DetailLines(record pokedex.Record, contentWidth, horizontalMargin int, th tuitheme.Theme, preview SpritePreviewState) []string {
	lines := detailBaseLines(record, contentWidth, th)
	lines = appendSpritePreview(lines, preview, contentWidth)
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

// StatBar scales value against the highest possible base stat.
func StatBar(value, width int) string {
	if width <= 0 || value <= 0 {
		return ""
	}
	if value > maxBaseStat {
		value = maxBaseStat
	}
	n := value * width / maxBaseStat
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func detailBaseLines(record pokedex.Record, width int, th tuitheme.Theme) []string {
	title := fmt.Sprintf("#%03d %s", record.ID, record.Name)
	lines := make([]string, 0, 16+len(record.Stats))
	lines = append(lines, th.TitleAlt.Render(title))
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(title)))))
	lines = append(lines, "")

	badges := make([]string, 0, len(record.Categories))
	for _, category := range record.Categories {
		badges = append(badges, th.CategoryBadge(category))
	}
	if len(badges) == 0 {
		badges = append(badges, "none")
	}
	lines = append(lines, th.MetaLabel.Render("Types:")+" "+strings.Join(badges, " "))
	sprite := record.AvatarURL
	if sprite == "" {
		sprite = "none"
	}
	lines = append(lines, th.MetaLabel.Render("Sprite:")+" "+th.MetaValue.Render(truncateRunes(sprite, max(1, width-8))))
	lines = append(lines, spritePreviewAnchor)

	if len(record.Stats) == 0 {
		return lines
	}
	lines = append(lines, "", th.Section.Render("Base stats"))
	barWidth := min(maxStatBarWidth, width-24)
	total := 0
	for _, st := range record.Stats {
		total += st.Value
		line := fmt.Sprintf("  %-16s %3d", st.Name, st.Value)
		if bar := StatBar(st.Value, barWidth); bar != "" {
			line += " " + th.StatBar.Render(bar)
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("  %-16s %3d", "total", total))
	return lines
}

func appendSpritePreview(lines []string, preview SpritePreviewState, contentWidth int) []string {
	previewLines := make([]string, 0, 3)
	if preview.Enabled {
		if preview.Loading {
			previewLines = append(previewLines, "Loading sprite preview...")
		} else if previewRaw := strings.TrimSpace(preview.Raw); previewRaw != "" {
			if ContainsKittyGraphicsEscape(preview.Raw) {
				previewLines = append(previewLines, strings.TrimRight(preview.Raw, "\r\n"))
			} else {
				previewSplit := strings.Split(strings.TrimRight(preview.Raw, "\r\n"), "\n")
				previewLines = centerLines(previewSplit, contentWidth)
			}
		} else if errMsg := strings.TrimSpace(preview.Err); errMsg != "" {
			previewLines = append(previewLines, "Sprite preview unavailable: "+errMsg)
		}
	}
	if len(previewLines) > 0 {
		previewLines = append([]string{""}, previewLines...)
	}

	out := make([]string, 0, len(lines)+len(previewLines))
	for _, line := range lines {
		if line != spritePreviewAnchor {
			out = append(out, line)
			continue
		}
		out = append(out, previewLines...)
	}
	return out
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if ContainsKittyGraphicsEscape(line) {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}

func centerLines(lines []string, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		visible := visibleLen(line)
		if visible >= width {
			out[i] = line
			continue
		}
		out[i] = strings.Repeat(" ", (width-visible)/2) + line
	}
	return out
}
