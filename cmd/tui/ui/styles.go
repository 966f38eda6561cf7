package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Cinema marquee palette
	Primary   = lipgloss.Color("#F5C518") // marquee gold
	Secondary = lipgloss.Color("#8AB4F8") // screen blue
	Accent    = lipgloss.Color("#E50914") // curtain red
	Success   = lipgloss.Color("#46D369")
	Warning   = lipgloss.Color("#FFB84D")
	Error     = lipgloss.Color("#FF5A5F")
	Muted     = lipgloss.Color("#7A7F8C")
	Text      = lipgloss.Color("#ECEFF4")
	BgDark    = lipgloss.Color("#121212")
	BgLight   = lipgloss.Color("#1F1F24")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Primary).
			Padding(0, 1).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			PaddingRight(2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	FullStarStyle  = lipgloss.NewStyle().Foreground(Primary)
	HalfStarStyle  = lipgloss.NewStyle().Foreground(Warning)
	EmptyStarStyle = lipgloss.NewStyle().Foreground(Muted)

	FavoriteStyle = lipgloss.NewStyle().Foreground(Accent)
)

const (
	screenWidth = 80
	boxWidth    = 76
)

func centered(s string) string {
	return lipgloss.NewStyle().Width(screenWidth).Align(lipgloss.Center).Render(s)
}
