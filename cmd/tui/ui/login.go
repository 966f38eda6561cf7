package ui

import (
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/apierr"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginErrorMsg struct {
	err error
}

type LoginModel struct {
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	err           error
	notice        string
	client        *client.Client
}

func NewLoginModel(c *client.Client) *LoginModel {
	return &LoginModel{client: c}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func (m *LoginModel) capturing() bool {
	return true
}

// Expired shows why the user was sent back here.
func (m *LoginModel) Expired() {
	m.loading = false
	m.passwordInput = ""
	m.err = nil
	m.notice = "Your session ended. Log in again to continue."
}

// Registered pre-fills nothing but tells the user the account exists.
func (m *LoginModel) Registered(confirmation string) {
	m.err = nil
	m.notice = "Account created. You can log in now."
	if confirmation != "" {
		m.notice = confirmation
	}
}

func loginCmd(c *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := c.Login(email, password)
		if err != nil {
			return loginErrorMsg{err: err}
		}
		return loginSuccessMsg{session: s}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSuccessMsg:
		m.loading = false
		m.err = nil
		m.notice = ""
		m.passwordInput = ""
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if strings.TrimSpace(m.emailInput) == "" {
				m.err = apierr.Validation("email cannot be empty")
				return m, nil
			}
			if m.passwordInput == "" {
				m.err = apierr.Validation("password cannot be empty")
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.notice = ""
			return m, loginCmd(m.client, m.emailInput, m.passwordInput)
		case "backspace":
			if m.focusedInput == 0 {
				m.emailInput = backspace(m.emailInput)
			} else {
				m.passwordInput = backspace(m.passwordInput)
			}
		case "ctrl+l":
			m.emailInput = ""
			m.passwordInput = ""
			m.err = nil
		default:
			if text, ok := typed(msg); ok {
				if m.focusedInput == 0 {
					m.emailInput += text
				} else {
					m.passwordInput += text
				}
			}
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🎬 LOGIN")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Sign in to rate movies and series.")

	b.WriteString(lipgloss.NewStyle().
		Width(screenWidth).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(screenWidth).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(centered(field("Email:", m.emailInput, m.focusedInput == 0)))
	b.WriteString("\n\n")
	b.WriteString(centered(field("Password:", strings.Repeat("•", len([]rune(m.passwordInput))), m.focusedInput == 1)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(centered(lipgloss.NewStyle().Foreground(Warning).Render(m.notice)))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("⏳ Logging in...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(failure(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s register  •  ctrl+c quit")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(boxWidth).
		Render(b.String())
}

func field(label, value string, focused bool) string {
	style := InputStyle
	if focused {
		style = FocusedInputStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Left,
		LabelStyle.Width(15).Render(label),
		style.Width(50).Render(value),
	)
}
