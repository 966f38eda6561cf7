package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type LibraryMode int

const (
	LibraryFavorites LibraryMode = iota
	LibraryRatings
)

const libraryRows = 12

var kindFilters = []library.KindFilter{library.KindAll, library.KindMovies, library.KindSeries}

type libraryLoadedMsg struct {
	mode    LibraryMode
	seq     uint64
	entries []library.Entry
	err     error
}

type favoriteRemovedMsg struct {
	kind models.Kind
	id   string
	err  error
}

type LibraryModel struct {
	client    *client.Client
	mode      LibraryMode
	entries   []library.Entry
	filter    int
	term      string
	termInput string
	typing    bool
	minVote   float64
	cursor    int
	offset    int
	loading   bool
	removing  bool
	seq       uint64
	err       error
	notice    string
}

func NewLibraryModel(c *client.Client, mode LibraryMode) *LibraryModel {
	return &LibraryModel{client: c, mode: mode}
}

// Init reloads on every visit; favorites and ratings change from other screens.
func (m *LibraryModel) Init() tea.Cmd {
	m.seq++
	m.loading = true
	m.err = nil
	return loadLibraryCmd(m.client, m.mode, m.seq)
}

func (m *LibraryModel) capturing() bool {
	return m.typing
}

func loadLibraryCmd(c *client.Client, mode LibraryMode, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if mode == LibraryRatings {
			r, err := c.Ratings()
			if err != nil {
				return libraryLoadedMsg{mode: mode, seq: seq, err: err}
			}
			return libraryLoadedMsg{mode: mode, seq: seq, entries: r.Entries()}
		}
		f, err := c.Favorites()
		if err != nil {
			return libraryLoadedMsg{mode: mode, seq: seq, err: err}
		}
		return libraryLoadedMsg{mode: mode, seq: seq, entries: f.Entries()}
	}
}

func removeFavoriteCmd(c *client.Client, e library.Entry) tea.Cmd {
	return func() tea.Msg {
		return favoriteRemovedMsg{kind: e.Kind, id: e.SubjectID, err: c.ToggleFavorite(e.Kind, e.SubjectID)}
	}
}

func (m *LibraryModel) visible() []library.Entry {
	return library.Filter(m.entries, kindFilters[m.filter], m.term, m.minVote)
}

func (m *LibraryModel) clampCursor(n int) {
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+libraryRows {
		m.offset = m.cursor - libraryRows + 1
	}
}

func (m *LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryLoadedMsg:
		if msg.mode != m.mode || msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.clampCursor(len(m.visible()))
		return m, nil

	case favoriteRemovedMsg:
		if m.mode != LibraryFavorites {
			return m, nil
		}
		m.removing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		kept := m.entries[:0]
		for _, e := range m.entries {
			if e.Kind == msg.kind && e.SubjectID == msg.id {
				m.notice = fmt.Sprintf("Removed %q from favorites.", e.Title)
				continue
			}
			kept = append(kept, e)
		}
		m.entries = kept
		m.clampCursor(len(m.visible()))
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateTerm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *LibraryModel) updateTerm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.typing = false
		m.term = strings.TrimSpace(m.termInput)
		m.cursor, m.offset = 0, 0
	case "esc":
		m.typing = false
	case "backspace":
		m.termInput = backspace(m.termInput)
	default:
		if text, ok := typed(msg); ok {
			m.termInput += text
		}
	}
	return m, nil
}

func (m *LibraryModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	rows := m.visible()

	key := msg.String()
	switch key {
	case "up", "k":
		m.cursor--
		m.clampCursor(len(rows))
	case "down", "j":
		m.cursor++
		m.clampCursor(len(rows))
	case "tab":
		m.filter = (m.filter + 1) % len(kindFilters)
		m.cursor, m.offset = 0, 0
	case "shift+tab":
		m.filter = (m.filter + len(kindFilters) - 1) % len(kindFilters)
		m.cursor, m.offset = 0, 0
	case "/":
		m.typing = true
		m.termInput = m.term
	case "c":
		m.term, m.minVote = "", 0
		m.filter, m.cursor, m.offset = 0, 0, 0
	case "R":
		return m, m.Init()
	case "x":
		if m.mode != LibraryFavorites || m.removing || len(rows) == 0 {
			return m, nil
		}
		m.removing = true
		return m, removeFavoriteCmd(m.client, rows[m.cursor])
	case "r":
		if len(rows) == 0 {
			return m, nil
		}
		return m, m.rateCmd(rows[m.cursor])
	default:
		if m.mode == LibraryRatings && len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.minVote = float64(key[0] - '0')
			m.cursor, m.offset = 0, 0
		}
	}
	return m, nil
}

func (m *LibraryModel) rateCmd(e library.Entry) tea.Cmd {
	id, _ := strconv.Atoi(e.SubjectID)
	t := models.Title{Kind: e.Kind, ID: id, Name: e.Title, Year: e.Year, PosterPath: e.PosterPath}
	if m.mode == LibraryRatings {
		existing := &models.ExistingRating{Vote: e.Vote, Comment: e.Comment}
		return func() tea.Msg {
			return openRatingMsg{kind: e.Kind, title: t, existing: existing}
		}
	}
	return openRatingCmd(m.client, e.Kind, t)
}

func (m *LibraryModel) heading() string {
	if m.mode == LibraryRatings {
		return "⭐ MY RATINGS"
	}
	return "♥ FAVORITES"
}

func filterLabel(k library.KindFilter) string {
	switch k {
	case library.KindMovies:
		return "Movies"
	case library.KindSeries:
		return "Series"
	}
	return "All"
}

func (m *LibraryModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.heading()))
	b.WriteString("\n\n")

	var tabs []string
	for i, k := range kindFilters {
		style := TabStyle
		if i == m.filter {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(filterLabel(k)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	var filters []string
	if m.term != "" {
		filters = append(filters, fmt.Sprintf("title contains %q", m.term))
	}
	if m.minVote > 0 {
		filters = append(filters, fmt.Sprintf("rated %s or more", votef(m.minVote)))
	}
	switch {
	case m.typing:
		b.WriteString(FocusedInputStyle.Width(50).Render("🔍 " + m.termInput + "▏"))
	case len(filters) > 0:
		b.WriteString(InfoStyle.Render(strings.Join(filters, ", ") + "  (c clears)"))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(lipgloss.NewStyle().Foreground(Primary).Render("⏳ Loading your library..."))
	case m.err != nil && len(m.entries) == 0:
		b.WriteString(failure(m.err))
	default:
		b.WriteString(m.rowsView())
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(failure(m.err))
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	help := "↑/↓ move  •  tab kind  •  / search  •  r rate  •  R refresh  •  q back"
	if m.mode == LibraryRatings {
		help = "↑/↓ move  •  tab kind  •  / search  •  0-9 min rating  •  r edit  •  q back"
	} else {
		help += "  •  x remove"
	}
	b.WriteString(InfoStyle.Render(help))

	return BoxStyle.Width(boxWidth).Render(b.String())
}

func (m *LibraryModel) rowsView() string {
	rows := m.visible()
	if len(rows) == 0 {
		empty := "No favorites yet. Press f on any title to add one."
		if m.mode == LibraryRatings {
			empty = "No ratings yet. Press r on any title to rate it."
		}
		if len(m.entries) > 0 {
			empty = "Nothing matches these filters."
		}
		return lipgloss.NewStyle().Foreground(Muted).Render(empty)
	}

	var lines []string
	end := m.offset + libraryRows
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.offset; i < end; i++ {
		e := rows[i]
		style := ItemStyle
		cursor := "  "
		if i == m.cursor {
			style = SelectedItemStyle
			cursor = "> "
		}

		icon := "🎬"
		if e.Kind == models.KindSeries {
			icon = "📺"
		}
		year := e.Year
		if year == "" {
			year = "----"
		}

		line := fmt.Sprintf("%s%s %-42s %s", cursor, icon, truncate(e.Title, 42), year)
		if m.mode == LibraryRatings {
			line += fmt.Sprintf("  ★ %s", votef(e.Vote))
		}
		lines = append(lines, style.Render(line))

		if i == m.cursor {
			if m.mode == LibraryRatings && e.Comment != "" {
				lines = append(lines, InfoStyle.PaddingLeft(7).Render("“"+truncate(e.Comment, 60)+"”"))
			}
			if !e.HasDetail {
				lines = append(lines, InfoStyle.PaddingLeft(7).Render("details unavailable"))
			}
		}
	}

	footer := InfoStyle.Render(fmt.Sprintf("%d of %d", len(rows), len(m.entries)))
	return lipgloss.JoinVertical(lipgloss.Left, append(lines, "", footer)...)
}
