package ui

import (
	"fmt"
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/qrcode"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const browseRows = 10

// titlesMsg carries one page of a list or search. seq identifies the request
// so answers to superseded requests can be dropped.
type titlesMsg struct {
	kind   models.Kind
	seq    uint64
	page   int
	titles []models.Title
	err    error
}

type favoriteStatusMsg struct {
	kind     models.Kind
	statuses map[string]bool
}

type favoriteToggledMsg struct {
	kind models.Kind
	id   string
	name string
	err  error
}

type detailMsg struct {
	kind   models.Kind
	id     string
	detail *client.Detail
	err    error
}

type detailPane struct {
	title   models.Title
	loading bool
	data    *client.Detail
	err     error
	qr      string
	showQR  bool
}

type BrowseModel struct {
	client      *client.Client
	kind        models.Kind
	categories  []api.Category
	category    int
	titles      []models.Title
	favorites   map[string]bool
	toggling    map[string]bool
	cursor      int
	offset      int
	page        int
	query       string
	searchInput string
	typing      bool
	loading     bool
	loadingMore bool
	exhausted   bool
	loaded      bool
	seq         uint64
	err         error
	notice      string
	detail      *detailPane
}

func NewBrowseModel(c *client.Client, kind models.Kind) *BrowseModel {
	return &BrowseModel{
		client:     c,
		kind:       kind,
		categories: c.Categories(kind),
		favorites:  make(map[string]bool),
		toggling:   make(map[string]bool),
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	if m.loaded || m.loading {
		return nil
	}
	return m.reload()
}

func (m *BrowseModel) capturing() bool {
	return m.typing || m.detail != nil
}

func loadTitlesCmd(c *client.Client, kind models.Kind, seq uint64, category api.Category, query string, page int) tea.Cmd {
	return func() tea.Msg {
		var (
			titles []models.Title
			err    error
		)
		if query != "" {
			titles, err = c.Search(kind, query, page)
		} else {
			titles, err = c.Browse(kind, category, page)
		}
		return titlesMsg{kind: kind, seq: seq, page: page, titles: titles, err: err}
	}
}

func favoriteStatusCmd(c *client.Client, kind models.Kind, titles []models.Title) tea.Cmd {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]string, len(titles))
	for i, t := range titles {
		ids[i] = t.IDString()
	}
	return func() tea.Msg {
		return favoriteStatusMsg{kind: kind, statuses: c.FavoriteStatuses(kind, ids)}
	}
}

func toggleFavoriteCmd(c *client.Client, kind models.Kind, t models.Title) tea.Cmd {
	return func() tea.Msg {
		err := c.ToggleFavorite(kind, t.IDString())
		return favoriteToggledMsg{kind: kind, id: t.IDString(), name: t.Name, err: err}
	}
}

func detailCmd(c *client.Client, kind models.Kind, id string) tea.Cmd {
	return func() tea.Msg {
		d, err := c.Details(kind, id)
		return detailMsg{kind: kind, id: id, detail: d, err: err}
	}
}

func openRatingCmd(c *client.Client, kind models.Kind, t models.Title) tea.Cmd {
	return func() tea.Msg {
		return openRatingMsg{kind: kind, title: t, existing: c.ExistingRating(kind, t.IDString())}
	}
}

func (m *BrowseModel) currentCategory() api.Category {
	if len(m.categories) == 0 {
		return api.CategoryPopular
	}
	return m.categories[m.category]
}

// reload starts over at page one of the current category or search.
func (m *BrowseModel) reload() tea.Cmd {
	m.seq++
	m.page = 1
	m.loading = true
	m.loadingMore = false
	m.exhausted = false
	m.err = nil
	m.cursor = 0
	m.offset = 0
	m.detail = nil
	return loadTitlesCmd(m.client, m.kind, m.seq, m.currentCategory(), m.query, 1)
}

func (m *BrowseModel) loadMore() tea.Cmd {
	if m.loading || m.loadingMore || m.exhausted {
		return nil
	}
	m.seq++
	m.loadingMore = true
	m.err = nil
	return loadTitlesCmd(m.client, m.kind, m.seq, m.currentCategory(), m.query, m.page+1)
}

func (m *BrowseModel) selected() (models.Title, bool) {
	if m.cursor < 0 || m.cursor >= len(m.titles) {
		return models.Title{}, false
	}
	return m.titles[m.cursor], true
}

func (m *BrowseModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.titles)-1 {
		m.cursor = len(m.titles) - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+browseRows {
		m.offset = m.cursor - browseRows + 1
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case titlesMsg:
		if msg.kind != m.kind || msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.loadingMore = false
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.page == 1 {
			m.titles = msg.titles
		} else {
			if len(msg.titles) == 0 {
				m.exhausted = true
				m.notice = "No more titles."
			}
			m.titles = append(m.titles, msg.titles...)
		}
		m.page = msg.page
		return m, favoriteStatusCmd(m.client, m.kind, msg.titles)

	case favoriteStatusMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		for id, fav := range msg.statuses {
			m.favorites[id] = fav
		}
		return m, nil

	case favoriteToggledMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		delete(m.toggling, msg.id)
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.favorites[msg.id] = !m.favorites[msg.id]
		if m.favorites[msg.id] {
			m.notice = fmt.Sprintf("Added %q to favorites.", msg.name)
		} else {
			m.notice = fmt.Sprintf("Removed %q from favorites.", msg.name)
		}
		return m, nil

	case favoriteRemovedMsg:
		if msg.kind == m.kind && msg.err == nil {
			m.favorites[msg.id] = false
		}
		return m, nil

	case detailMsg:
		if msg.kind != m.kind || m.detail == nil || m.detail.title.IDString() != msg.id {
			return m, nil
		}
		m.detail.loading = false
		m.detail.data = msg.detail
		m.detail.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateSearchInput(msg)
		}
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *BrowseModel) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.typing = false
		m.query = strings.TrimSpace(m.searchInput)
		return m, m.reload()
	case "esc":
		m.typing = false
	case "backspace":
		m.searchInput = backspace(m.searchInput)
	default:
		if text, ok := typed(msg); ok {
			m.searchInput += text
		}
	}
	return m, nil
}

func (m *BrowseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail = nil
	case "s":
		if m.detail.qr == "" {
			url := qrcode.ShareURL(m.kind, m.detail.title.IDString())
			code, err := qrcode.Terminal(url)
			if err != nil {
				m.detail.err = err
				return m, nil
			}
			m.detail.qr = code
		}
		m.detail.showQR = !m.detail.showQR
	case "f":
		return m, m.toggleFavorite(m.detail.title)
	case "r":
		return m, openRatingCmd(m.client, m.kind, m.detail.title)
	}
	return m, nil
}

func (m *BrowseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
		if m.cursor == len(m.titles)-1 {
			return m, m.loadMore()
		}
	case "pgdown", "m":
		return m, m.loadMore()
	case "right", "l", "tab":
		m.category = (m.category + 1) % len(m.categories)
		m.query = ""
		return m, m.reload()
	case "left", "h", "shift+tab":
		m.category = (m.category + len(m.categories) - 1) % len(m.categories)
		m.query = ""
		return m, m.reload()
	case "/":
		m.typing = true
		m.searchInput = m.query
	case "x":
		if m.query != "" {
			m.query = ""
			return m, m.reload()
		}
	case "R":
		return m, m.reload()
	case "enter":
		if t, ok := m.selected(); ok {
			m.detail = &detailPane{title: t, loading: true}
			return m, detailCmd(m.client, m.kind, t.IDString())
		}
	case "f":
		if t, ok := m.selected(); ok {
			return m, m.toggleFavorite(t)
		}
	case "r":
		if t, ok := m.selected(); ok {
			return m, openRatingCmd(m.client, m.kind, t)
		}
	}
	return m, nil
}

func (m *BrowseModel) toggleFavorite(t models.Title) tea.Cmd {
	id := t.IDString()
	if m.toggling[id] {
		return nil
	}
	m.toggling[id] = true
	return toggleFavoriteCmd(m.client, m.kind, t)
}

func (m *BrowseModel) heading() string {
	if m.kind == models.KindSeries {
		return "📺 SERIES"
	}
	return "🎬 MOVIES"
}

func (m *BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.heading()))
	b.WriteString("\n\n")

	var tabs []string
	for i, c := range m.categories {
		style := TabStyle
		if i == m.category && m.query == "" {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(string(c)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	switch {
	case m.typing:
		b.WriteString(FocusedInputStyle.Width(50).Render("🔍 " + m.searchInput + "▏"))
	case m.query != "":
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Results for %q  (x clears)", m.query)))
	}
	b.WriteString("\n\n")

	if m.detail != nil {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.listView())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render(m.notice))
	}
	if m.err != nil && m.detail == nil && !m.loading {
		b.WriteString("\n")
		b.WriteString(failure(m.err))
	}

	b.WriteString("\n\n")
	help := "↑/↓ move  •  ←/→ category  •  / search  •  enter details  •  f favorite  •  r rate  •  m more  •  q back"
	if m.detail != nil {
		help = "s share code  •  f favorite  •  r rate  •  esc close"
	}
	b.WriteString(InfoStyle.Render(help))

	return BoxStyle.Width(boxWidth).Render(b.String())
}

func (m *BrowseModel) listView() string {
	if m.loading {
		return lipgloss.NewStyle().Foreground(Primary).Render("⏳ Loading titles...")
	}
	if len(m.titles) == 0 {
		if m.err != nil {
			return ""
		}
		return lipgloss.NewStyle().Foreground(Muted).Render("Nothing here yet.")
	}

	var rows []string
	end := m.offset + browseRows
	if end > len(m.titles) {
		end = len(m.titles)
	}
	for i := m.offset; i < end; i++ {
		t := m.titles[i]
		style := ItemStyle
		cursor := "  "
		if i == m.cursor {
			style = SelectedItemStyle
			cursor = "> "
		}

		heart := "  "
		if m.toggling[t.IDString()] {
			heart = "… "
		} else if m.favorites[t.IDString()] {
			heart = FavoriteStyle.Render("♥ ")
		}

		year := t.Year
		if year == "" {
			year = "----"
		}
		line := fmt.Sprintf("%s%-48s %s  ★ %s", cursor, truncate(t.Name, 48), year, votef(t.VoteAverage))
		rows = append(rows, heart+style.Render(line))
	}

	footer := InfoStyle.Render(fmt.Sprintf("%d titles  •  page %d", len(m.titles), m.page))
	if m.loadingMore {
		footer = lipgloss.NewStyle().Foreground(Primary).Render("⏳ Loading more...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, "", footer)...)
}

func (m *BrowseModel) detailView() string {
	d := m.detail
	var b strings.Builder

	fav := ""
	if m.favorites[d.title.IDString()] {
		fav = FavoriteStyle.Render(" ♥")
	}
	header := d.title.Name
	if d.title.Year != "" {
		header += " (" + d.title.Year + ")"
	}
	b.WriteString(ValueStyle.Render(header) + fav)
	b.WriteString("\n")

	if d.showQR && d.qr != "" {
		b.WriteString(InfoStyle.Render(qrcode.ShareURL(m.kind, d.title.IDString())))
		b.WriteString("\n")
		b.WriteString(d.qr)
		return b.String()
	}

	switch {
	case d.loading:
		b.WriteString(lipgloss.NewStyle().Foreground(Primary).Render("⏳ Loading details..."))
		return b.String()
	case d.err != nil:
		b.WriteString(failure(d.err))
		return b.String()
	case d.data == nil:
		return b.String()
	}

	images := m.client.Images()
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(LabelStyle.Width(14).Render(label) + ValueStyle.Render(value))
		b.WriteString("\n")
	}

	overview := d.title.Overview
	if mv := d.data.Movie; mv != nil {
		row("Original", mv.OriginalTitle)
		row("Genres", models.GenreNames(mv.Genres))
		if mv.Runtime > 0 {
			row("Runtime", fmt.Sprintf("%d min", mv.Runtime))
		}
		row("Score", fmt.Sprintf("%s (%d votes)", votef(mv.VoteAverage), mv.VoteCount))
		row("Poster", images.Poster(mv.PosterPath))
		overview = mv.Overview
	}
	if s := d.data.Series; s != nil {
		row("Original", s.OriginalName)
		row("Genres", models.GenreNames(s.Genres))
		if s.NumberOfSeasons > 0 {
			row("Seasons", fmt.Sprintf("%d seasons, %d episodes", s.NumberOfSeasons, s.NumberOfEpisodes))
		}
		row("Status", s.Status)
		networks := make([]string, 0, len(s.Networks))
		for _, n := range s.Networks {
			networks = append(networks, n.Name)
		}
		row("Networks", strings.Join(networks, ", "))
		row("Score", fmt.Sprintf("%s (%d votes)", votef(s.VoteAverage), s.VoteCount))
		row("Poster", images.Poster(s.PosterPath))
		overview = s.Overview
	}

	if overview != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(Text).Width(boxWidth - 6).Render(overview))
	}
	return b.String()
}
