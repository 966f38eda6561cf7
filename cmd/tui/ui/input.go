package ui

import (
	"fmt"
	"strings"

	"github.com/Varun5711/cinerate/internal/apierr"
	tea "github.com/charmbracelet/bubbletea"
)

// typed returns the text a key press inserts into a field, if any.
func typed(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}

func backspace(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// failure renders an error as the short title plus description users see.
func failure(err error) string {
	title, desc := apierr.Describe(err)
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("✗ " + title))
	if desc != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(desc))
	}
	return b.String()
}

func votef(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
