package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
	tuitheme "github.com/glabrego/pokedex-cli/internal/tui/theme"
)

func Toolbar(inDetail, searching bool) string {
	if searching {
		return "type to filter | enter/esc: done | ctrl+l: clear"
	}
	if inDetail {
		return "j/k scroll | [ ] prev/next | o open sprite | y copy URL | esc back | ? help"
	}
	return "j/k move | / search | 1-7 types | h/l page | s size | enter details | ? help"
}

// CategoryBar lists the filter categories with their toggle keys.
func CategoryBar(sel pokedex.Selection, th tuitheme.Theme) string {
	parts := make([]string, 0, len(pokedex.Categories))
	for i, category := range pokedex.Categories {
		label := fmt.Sprintf("%d %s", i+1, category)
		parts = append(parts, th.CategoryToggle(label, sel.IsSelected(category)))
	}
	return strings.Join(parts, " ")
}

func Footer(page pokedex.Page, pageSize, recordCount int, sel pokedex.Selection, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", page.Number, page.Count)),
		th.MetaLabel.Render("size") + " " + th.MetaValue.Render(fmt.Sprintf("%d", pageSize)),
		th.MetaValue.Render(fmt.Sprintf("%d of %d shown", page.Total, recordCount)),
	}
	if sel.SearchText != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q", sel.SearchText)))
	}
	if len(sel.SelectedCategories) > 0 {
		parts = append(parts, th.MetaLabel.Render("types")+" "+th.MetaValue.Render(strings.Join(sel.SelectedCategories, ",")))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	} else if loading {
		main = "Fetching pokémon..."
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
