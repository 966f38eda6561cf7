package ui

import (
	"strings"

	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/Varun5711/cinerate/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type signupSuccessMsg struct {
	confirmation string
}

type signupErrorMsg struct {
	err error
}

const (
	signupName = iota
	signupEmail
	signupNickname
	signupPassword
	signupConfirm
	signupFields
)

type SignupModel struct {
	inputs       [signupFields]string
	focusedInput int
	loading      bool
	err          error
	done         bool
	confirmation string
	client       *client.Client
}

func NewSignupModel(c *client.Client) *SignupModel {
	return &SignupModel{client: c}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func (m *SignupModel) capturing() bool {
	return true
}

func signupCmd(c *client.Client, req user.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		confirmation, err := c.Register(req)
		if err != nil {
			return signupErrorMsg{err: err}
		}
		return signupSuccessMsg{confirmation: confirmation}
	}
}

func (m *SignupModel) request() user.RegisterRequest {
	return user.RegisterRequest{
		Name:            m.inputs[signupName],
		Email:           m.inputs[signupEmail],
		Nickname:        m.inputs[signupNickname],
		Password:        m.inputs[signupPassword],
		ConfirmPassword: m.inputs[signupConfirm],
	}
}

func (m *SignupModel) validate() error {
	return validation.ValidateRegistration(m.request())
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupSuccessMsg:
		m.loading = false
		m.err = nil
		m.done = true
		m.confirmation = msg.confirmation
		m.inputs = [signupFields]string{}
		m.focusedInput = 0
		return m, nil

	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.focusedInput = (m.focusedInput + 1) % signupFields
		case "shift+tab", "up":
			m.focusedInput = (m.focusedInput + signupFields - 1) % signupFields
		case "enter":
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, signupCmd(m.client, m.request())
		case "backspace":
			m.inputs[m.focusedInput] = backspace(m.inputs[m.focusedInput])
		case "ctrl+l":
			m.inputs = [signupFields]string{}
			m.err = nil
		default:
			if text, ok := typed(msg); ok {
				m.inputs[m.focusedInput] += text
			}
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🍿 CREATE ACCOUNT")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Pick a nickname; it is shown next to your ratings.")

	b.WriteString(lipgloss.NewStyle().Width(screenWidth).Align(lipgloss.Center).MarginTop(1).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(screenWidth).Align(lipgloss.Center).MarginBottom(2).Render(subtitle))
	b.WriteString("\n\n")

	labels := [signupFields]string{"Name:", "Email:", "Nickname:", "Password:", "Confirm:"}
	for i, label := range labels {
		value := m.inputs[i]
		if i == signupPassword || i == signupConfirm {
			value = strings.Repeat("•", len([]rune(value)))
		}
		b.WriteString(centered(field(label, value, m.focusedInput == i)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("⏳ Creating account...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(failure(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab next  •  enter register  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 4).
		Width(boxWidth).
		Render(b.String())
}
