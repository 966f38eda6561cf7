package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label string
	view  View
}

type MenuModel struct {
	cursor   int
	selected int
	items    []menuItem
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		cursor:   0,
		selected: -1,
		items: []menuItem{
			{"Movies", MoviesView},
			{"Series", SeriesView},
			{"My Ratings", RatingsView},
			{"Favorites", FavoritesView},
			{"Dashboard", DashboardView},
			// the login view doubles as the logout action
			{"Log out", LoginView},
		},
	}
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
		}
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("CINERATE") + " " + SubtitleStyle.Render("Rate what you watch")
	b.WriteString(lipgloss.NewStyle().
		Width(screenWidth).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	var menuItems []string
	for i, item := range m.items {
		cursor := "  "
		style := ItemStyle

		if i == m.cursor {
			cursor = "> "
			style = SelectedItemStyle
		}

		menuItems = append(menuItems, style.Render(cursor+item.label))
	}

	menu := lipgloss.JoinVertical(lipgloss.Left, menuItems...)
	b.WriteString(centered(BoxStyle.Width(60).Render(menu)))
	b.WriteString("\n\n")

	b.WriteString(centered(InfoStyle.Render("↑/↓ navigate  •  enter select  •  q quit")))

	return lipgloss.NewStyle().
		Width(screenWidth).
		Height(20).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
