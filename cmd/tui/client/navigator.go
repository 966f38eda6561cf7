package client

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the root model to switch to Route. It is sent by the HTTP
// core after the backend rejects the session.
type NavigateMsg struct {
	Route string
}

// Navigator tracks which screen is showing and lets the HTTP core move the
// program to another one from any goroutine.
type Navigator struct {
	mu       sync.RWMutex
	location string
	program  *tea.Program
}

func NewNavigator(initial string) *Navigator {
	return &Navigator{location: initial}
}

// Attach connects the navigator to the running program.
func (n *Navigator) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

func (n *Navigator) Location() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.location
}

// SetLocation records a screen change made by the UI itself.
func (n *Navigator) SetLocation(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = route
}

func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	n.location = route
	p := n.program
	n.mu.Unlock()

	if p != nil {
		// Send blocks until the event loop takes the message, and the caller
		// may be that event loop.
		go p.Send(NavigateMsg{Route: route})
	}
}
