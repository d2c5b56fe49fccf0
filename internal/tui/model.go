package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
	tuiactions "github.com/glabrego/pokedex-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/pokedex-cli/internal/tui/platform"
	tuistate "github.com/glabrego/pokedex-cli/internal/tui/state"
	tuitheme "github.com/glabrego/pokedex-cli/internal/tui/theme"
	tuiview "github.com/glabrego/pokedex-cli/internal/tui/view"
)

type clearStatusMsg struct {
	id int
}

type Model struct {
	service    tuiactions.Service
	batchLimit int
	records    []pokedex.Record
	selection  pokedex.Selection

	// cursor indexes the items of the current page.
	cursor    int
	inDetail  bool
	detailTop int
	showHelp  bool
	loading   bool
	loaded    bool
	width     int
	height    int
	status    string
	statusID  int
	err       error

	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	theme   tuitheme.Theme

	openURLFn      func(string) error
	copyURLFn      func(string) error
	renderImageFn  func(string, int) (string, error)
	previewEnabled bool

	spritePreview        map[int]string
	spritePreviewErr     map[int]string
	spritePreviewLoading map[int]bool
}

func NewModel(service tuiactions.Service, batchLimit, pageSize int) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search by name"
	search.CharLimit = 64

	h := help.New()
	h.ShowAll = true

	return Model{
		service:              service,
		batchLimit:           batchLimit,
		selection:            pokedex.NewSelection(pageSize),
		loading:              service != nil,
		search:               search,
		spinner:              spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:                 h,
		keys:                 defaultKeyMap,
		theme:                tuitheme.Default(),
		openURLFn:            tuiplatform.OpenURLInBrowser,
		copyURLFn:            tuiplatform.CopyURLToClipboard,
		renderImageFn:        tuiview.RenderSpritePreview,
		previewEnabled:       tuiview.InlinePreviewEnabled(),
		spritePreview:        make(map[int]string),
		spritePreviewErr:     make(map[int]string),
		spritePreviewLoading: make(map[int]bool),
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, tuiactions.LoadCmd(m.service, m.batchLimit, "init"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, msg.Width-4)
		return m, nil
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.showHelp = false
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			}
			return m, nil
		}
		if m.inDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tuiactions.LoadSuccessMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.records = msg.Records
		m.selection.SetPage(m.records, m.selection.CurrentPage)
		m.cursor = 0
		m.status = fmt.Sprintf("Loaded %d pokémon in %dms", len(m.records), msg.Duration.Milliseconds())
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.LoadErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tuiactions.SpritePreviewSuccessMsg:
		delete(m.spritePreviewLoading, msg.RecordID)
		delete(m.spritePreviewErr, msg.RecordID)
		m.spritePreview[msg.RecordID] = msg.Preview
		return m, nil
	case tuiactions.SpritePreviewErrorMsg:
		delete(m.spritePreviewLoading, msg.RecordID)
		m.spritePreviewErr[msg.RecordID] = msg.Err.Error()
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case msg.Type == tea.KeyEnter, msg.Type == tea.KeyEsc:
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	if m.search.Value() == m.selection.SearchText {
		return
	}
	m.selection.SetSearchText(m.records, m.search.Value())
	m.cursor = 0
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inDetail = false
		m.detailTop = 0
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.detailTop < tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight()) {
			m.detailTop++
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevRecord):
		if m.cursor > 0 {
			m.cursor--
			m.detailTop = 0
			return m, m.ensureSpritePreviewCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextRecord):
		if m.cursor < len(m.currentPage().Items)-1 {
			m.cursor++
			m.detailTop = 0
			return m, m.ensureSpritePreviewCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.OpenSprite):
		return m.openCurrentSprite()
	case key.Matches(msg, m.keys.CopySprite):
		return m.copyCurrentSprite()
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	case key.Matches(msg, m.keys.Category):
		if category, ok := tuistate.CategoryForKey(msg.String()); ok {
			m.selection.ToggleCategory(m.records, category)
			m.cursor = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.ClearTypes):
		m.selection.ClearCategories(m.records)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.selection.PrevPage(m.records)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.selection.NextPage(m.records)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.PageSize):
		m.selection.SetPageSize(m.records, tuistate.NextPageSize(m.selection.PageSize))
		m.cursor = 0
		m.status = fmt.Sprintf("Page size: %d", m.selection.PageSize)
		m.statusID++
		return m, clearStatusCmd(m.statusID, 2*time.Second)
	case key.Matches(msg, m.keys.Up):
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.currentPage().Items))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.currentPage().Items))
		return m, nil
	case key.Matches(msg, m.keys.First):
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Last):
		m.cursor = tuistate.ClampCursor(len(m.currentPage().Items)-1, len(m.currentPage().Items))
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if len(m.currentPage().Items) == 0 {
			return m, nil
		}
		m.inDetail = true
		m.detailTop = 0
		return m, m.ensureSpritePreviewCmd()
	case key.Matches(msg, m.keys.Reload):
		if m.service == nil || m.loading {
			return m, nil
		}
		if m.loaded {
			m.status = "Pokédex already loaded for this session"
			m.statusID++
			return m, clearStatusCmd(m.statusID, 3*time.Second)
		}
		m.loading = true
		m.status = ""
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, tuiactions.LoadCmd(m.service, m.batchLimit, "manual"))
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	if !m.inDetail && m.hasKittyPreview() && tuiview.SupportsKittyGraphics() {
		b.WriteString(tuiview.ClearKittyGraphicsSequence())
	}
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(m.inDetail, m.search.Focused()))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.theme.Section.Render("Help (? to close)"))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	case m.inDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.search.View())
		b.WriteString("\n")
		b.WriteString(tuiview.CategoryBar(m.selection, m.theme))
		b.WriteString("\n\n")
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(tuiview.Footer(m.currentPage(), m.selection.PageSize, len(m.records), m.selection, m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	mode := "list"
	switch {
	case m.search.Focused():
		mode = "search"
	case m.inDetail:
		mode = "detail"
	}
	return m.theme.Title.Render("Poké") + m.theme.TitleAlt.Render("dex") + " " + m.theme.ModePill.Render(mode)
}

func (m Model) listView() string {
	if m.loading {
		return m.spinner.View() + " Loading pokémon...\n"
	}
	page := m.currentPage()
	if len(page.Items) == 0 {
		if len(m.records) == 0 {
			return "No pokémon loaded.\n"
		}
		return "No pokémon match the current filters.\n"
	}
	start, end := tuistate.CenteredWindow(len(page.Items), m.cursor, tuistate.ListHeight(m.height))
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(tuiview.RenderRecordLine(tuiview.RecordLineParams{
			Record: page.Items[i],
			Active: i == m.cursor,
			Width:  m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	lines := m.detailLines()
	if len(lines) == 0 {
		return "No pokémon selected.\n"
	}
	return tuiview.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) detailLines() []string {
	record, ok := m.currentRecord()
	if !ok {
		return nil
	}
	return tuiview.DetailLines(record, m.contentWidth()-2, 2, m.theme, tuiview.SpritePreviewState{
		Enabled: m.previewEnabled && record.AvatarURL != "",
		Loading: m.spritePreviewLoading[record.ID],
		Raw:     m.spritePreview[record.ID],
		Err:     m.spritePreviewErr[record.ID],
	})
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
		if !m.loaded {
			warning += " (press r to retry)"
		}
	}
	return tuiview.Message(m.loading, m.err != nil, m.status, warning, m.theme)
}

func (m Model) currentPage() pokedex.Page {
	return m.selection.Apply(m.records)
}

func (m Model) currentRecord() (pokedex.Record, bool) {
	items := m.currentPage().Items
	if len(items) == 0 {
		return pokedex.Record{}, false
	}
	return items[tuistate.ClampCursor(m.cursor, len(items))], true
}

func (m Model) openCurrentSprite() (tea.Model, tea.Cmd) {
	record, ok := m.currentRecord()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidateSpriteURL(record.AvatarURL)
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, tuiactions.OpenURLCmd(validURL, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentSprite() (tea.Model, tea.Cmd) {
	record, ok := m.currentRecord()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidateSpriteURL(record.AvatarURL)
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, tuiactions.CopyURLCmd(validURL, m.copyURLFn)
}

func (m *Model) ensureSpritePreviewCmd() tea.Cmd {
	if !m.previewEnabled || m.renderImageFn == nil {
		return nil
	}
	record, ok := m.currentRecord()
	if !ok || record.AvatarURL == "" {
		return nil
	}
	if _, ok := m.spritePreview[record.ID]; ok {
		return nil
	}
	if m.spritePreviewLoading[record.ID] {
		return nil
	}
	m.spritePreviewLoading[record.ID] = true
	return tuiactions.SpritePreviewCmd(record.ID, record.AvatarURL, m.contentWidth()/2, m.renderImageFn)
}

func (m Model) hasKittyPreview() bool {
	for _, preview := range m.spritePreview {
		if tuiview.ContainsKittyGraphicsEscape(preview) {
			return true
		}
	}
	return false
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		if h := m.height - 6; h > 3 {
			return h
		}
	}
	return 16
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
