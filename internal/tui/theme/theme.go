package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	TitleAlt   lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	StatBar    lipgloss.Style

	ToggleOn  lipgloss.Style
	ToggleOff lipgloss.Style

	BadgeFire    lipgloss.Style
	BadgeWater   lipgloss.Style
	BadgeGrass   lipgloss.Style
	BadgeDefault lipgloss.Style
}

func Default() Theme {
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpBlue := lipgloss.Color("#89b4fa")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpBase := lipgloss.Color("#1e1e2e")

	badge := lipgloss.NewStyle().Foreground(cpBase).Padding(0, 1)

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpText),
		TitleAlt:   lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		StatBar:    lipgloss.NewStyle().Foreground(cpTeal),

		ToggleOn:  lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpBlue).Padding(0, 1),
		ToggleOff: lipgloss.NewStyle().Foreground(cpText).Background(cpSurface0).Padding(0, 1),

		BadgeFire:    badge.Background(cpPeach),
		BadgeWater:   badge.Background(cpBlue),
		BadgeGrass:   badge.Background(cpGreen),
		BadgeDefault: badge.Background(cpOverlay0).Foreground(cpText),
	}
}

// CategoryBadge renders a type label in its type colour.
func (t Theme) CategoryBadge(category string) string {
	switch category {
	case "fire":
		return t.BadgeFire.Render(category)
	case "water":
		return t.BadgeWater.Render(category)
	case "grass":
		return t.BadgeGrass.Render(category)
	default:
		return t.BadgeDefault.Render(category)
	}
}

func (t Theme) CategoryToggle(label string, selected bool) string {
	if selected {
		return t.ToggleOn.Render(label)
	}
	return t.ToggleOff.Render(label)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
