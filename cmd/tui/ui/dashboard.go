package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/models/user"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardLoadedMsg struct {
	seq   uint64
	stats library.Stats
}

type DashboardModel struct {
	client  *client.Client
	user    user.User
	stats   library.Stats
	loading bool
	loaded  bool
	seq     uint64
}

func NewDashboardModel(c *client.Client) *DashboardModel {
	return &DashboardModel{client: c}
}

func (m *DashboardModel) SetUser(u user.User) {
	m.user = u
}

func loadDashboardCmd(c *client.Client, seq uint64) tea.Cmd {
	return func() tea.Msg {
		return dashboardLoadedMsg{seq: seq, stats: c.Dashboard()}
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.seq++
	m.loading = true
	return loadDashboardCmd(m.client, m.seq)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.loaded = true
		m.stats = msg.stats
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			return m, m.Init()
		}
	}
	return m, nil
}

// meter draws an average on a ten-cell bar, half cells rounded up.
func meter(avg float64) string {
	cells := int(math.Round(avg))
	if cells > 10 {
		cells = 10
	}
	if cells < 0 {
		cells = 0
	}
	return FullStarStyle.Render(strings.Repeat("█", cells)) +
		EmptyStarStyle.Render(strings.Repeat("░", 10-cells))
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📊 DASHBOARD"))
	b.WriteString("\n\n")

	name := m.user.DisplayName()
	if m.user.IsAdmin() {
		name += " " + lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("[admin]")
	}
	b.WriteString(LabelStyle.Render("Account") + ValueStyle.Render(name))
	b.WriteString("\n")
	if m.user.Email != "" {
		b.WriteString(LabelStyle.Render("Email") + ValueStyle.Render(m.user.Email))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading && !m.loaded {
		b.WriteString(lipgloss.NewStyle().Foreground(Primary).Render("⏳ Loading your numbers..."))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("q back"))
		return BoxStyle.Width(boxWidth).Render(b.String())
	}

	s := m.stats
	counts := []struct {
		label string
		value int
	}{
		{"Movies rated", s.MovieRatings},
		{"Series rated", s.SeriesRatings},
		{"Favorite movies", s.FavoriteMovies},
		{"Favorite series", s.FavoriteSeries},
		{"With comments", s.WithComments},
	}
	for _, c := range counts {
		b.WriteString(LabelStyle.Render(c.label) + StatsStyle.Render(fmt.Sprintf("%d", c.value)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	averages := []struct {
		label string
		value float64
		count int
	}{
		{"Movie average", s.AverageMovie, s.MovieRatings},
		{"Series average", s.AverageSeries, s.SeriesRatings},
		{"Overall", s.AverageOverall, s.MovieRatings + s.SeriesRatings},
	}
	for _, a := range averages {
		value := "-"
		if a.count > 0 {
			value = votef(a.value)
		}
		b.WriteString(LabelStyle.Render(a.label) + meter(a.value) + "  " + ValueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "r refresh  •  q back"
	if m.loading {
		help = "⏳ refreshing...  •  q back"
	}
	b.WriteString(InfoStyle.Render(help))

	return BoxStyle.Width(boxWidth).Render(b.String())
}
