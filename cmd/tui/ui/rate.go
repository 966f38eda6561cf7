package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/rating"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout of the rating dialog on screen: the box margin, border and top
// padding sit above the content, and the stars are its fourth line.
const (
	starsColumn = 3
	starsRow    = headerHeight + 3 + 3
)

type rateFocus int

const (
	focusStars rateFocus = iota
	focusComment
)

type ratingSubmittedMsg struct {
	widget *rating.Widget
	title  string
	err    error
}

type RateModel struct {
	client *client.Client
	kind   models.Kind
	title  models.Title
	widget *rating.Widget
	focus  rateFocus
	err    error
}

func NewRateModel(c *client.Client) *RateModel {
	return &RateModel{client: c, widget: rating.New(0, "")}
}

func (m *RateModel) Init() tea.Cmd {
	return nil
}

// Open resets the dialog for title. A previous rating puts it in edit mode.
func (m *RateModel) Open(kind models.Kind, title models.Title, existing *models.ExistingRating) {
	var vote float64
	var comment string
	if existing != nil {
		vote, comment = existing.Vote, existing.Comment
	}
	m.kind = kind
	m.title = title
	m.widget = rating.New(vote, comment)
	m.widget.SetOrigin(starsColumn)
	m.focus = focusStars
	m.err = nil
}

func (m *RateModel) capturing() bool {
	return m.focus == focusComment
}

func submitRatingCmd(c *client.Client, w *rating.Widget, kind models.Kind, t models.Title) tea.Cmd {
	return func() tea.Msg {
		err := w.Submit(context.Background(), func(ctx context.Context, value float64, comment string) error {
			return c.Rate(ctx, api.RateRequest{
				Kind:       kind,
				SubjectID:  t.IDString(),
				Value:      value,
				Title:      t.Name,
				PosterPath: t.PosterPath,
				Comment:    comment,
			})
		})
		return ratingSubmittedMsg{widget: w, title: t.Name, err: err}
	}
}

func (m *RateModel) submit() tea.Cmd {
	m.err = nil
	return submitRatingCmd(m.client, m.widget, m.kind, m.title)
}

func closeRating(saved bool, title string) tea.Cmd {
	return func() tea.Msg {
		return ratingClosedMsg{saved: saved, title: title}
	}
}

func (m *RateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ratingSubmittedMsg:
		if msg.widget != m.widget {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, closeRating(true, msg.title)

	case tea.MouseMsg:
		if m.widget.Submitting() {
			return m, nil
		}
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.widget.Submitting() {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, closeRating(false, m.title.Name)
		}
		if msg.String() == "tab" || msg.String() == "shift+tab" {
			if m.focus == focusStars {
				m.focus = focusComment
			} else {
				m.focus = focusStars
			}
			return m, nil
		}
		if msg.String() == "ctrl+s" {
			return m, m.submit()
		}
		if m.focus == focusComment {
			return m.updateComment(msg)
		}
		return m.updateStars(msg)
	}
	return m, nil
}

func (m *RateModel) updateStars(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, closeRating(false, m.title.Name)
	case "left", "h":
		m.widget.Nudge(-1)
	case "right", "l":
		m.widget.Nudge(1)
	case "down", "j":
		m.widget.Nudge(-2)
	case "up", "k":
		m.widget.Nudge(2)
	case " ":
		m.widget.Commit()
	case "enter":
		m.widget.Commit()
		return m, m.submit()
	}
	return m, nil
}

func (m *RateModel) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.submit()
	case "backspace":
		m.widget.SetComment(backspace(m.widget.Comment()))
	default:
		if text, ok := typed(msg); ok {
			m.widget.SetComment(m.widget.Comment() + text)
		}
	}
	return m, nil
}

func (m *RateModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Y != starsRow {
		if msg.Action == tea.MouseActionMotion {
			m.widget.Leave()
		}
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.widget.HoverAt(msg.X)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.widget.ClickAt(msg.X) {
			m.focus = focusStars
		}
	}
	return m, nil
}

func (m *RateModel) stars() string {
	var b strings.Builder
	for _, f := range m.widget.Fills() {
		switch f {
		case rating.Full:
			b.WriteString(FullStarStyle.Render("★"))
		case rating.Half:
			b.WriteString(HalfStarStyle.Render("✭"))
		default:
			b.WriteString(EmptyStarStyle.Render("☆"))
		}
		b.WriteString(strings.Repeat(" ", rating.CellsPerStar-1))
	}
	return b.String()
}

func (m *RateModel) View() string {
	var b strings.Builder

	heading := "RATE " + strings.ToUpper(string(m.kind))
	b.WriteString(TitleStyle.Render(heading))
	b.WriteString("\n")
	sub := truncate(m.title.Name, 60)
	if m.title.Year != "" {
		sub += " (" + m.title.Year + ")"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(Secondary).MaxHeight(1).Render(sub))
	b.WriteString("\n\n")

	display := m.widget.Display()
	b.WriteString(m.stars())
	if display > 0 {
		b.WriteString(ValueStyle.Render(fmt.Sprintf("  %s/10", rating.Format(display))))
		b.WriteString(InfoStyle.Render("  " + rating.Label(display)))
	}
	b.WriteString("\n\n")

	if m.widget.Editing() {
		b.WriteString(InfoStyle.Render("Editing your rating"))
		b.WriteString("\n")
	}

	commentStyle := InputStyle
	if m.focus == focusComment {
		commentStyle = FocusedInputStyle
	}
	comment := m.widget.Comment()
	if m.focus == focusComment {
		comment += "▏"
	} else if comment == "" {
		comment = lipgloss.NewStyle().Foreground(Muted).Render("Add a comment (optional)")
	}
	b.WriteString(LabelStyle.Render("Comment"))
	b.WriteString("\n")
	b.WriteString(commentStyle.Width(boxWidth - 8).Render(comment))
	b.WriteString("\n\n")

	switch {
	case m.widget.Submitting():
		b.WriteString(lipgloss.NewStyle().Foreground(Primary).Render("⏳ Saving rating..."))
		b.WriteString("\n\n")
	case m.err != nil:
		b.WriteString(failure(m.err))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render("←/→ half a star  •  space pick  •  enter save  •  tab comment  •  esc cancel"))

	return BoxStyle.Width(boxWidth).Render(b.String())
}
