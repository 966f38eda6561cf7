package ui

import (
	"github.com/Varun5711/cinerate/cmd/tui/client"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginSuccessMsg struct {
	session *session.Session
}

type logoutMsg struct {
	err error
}

type openRatingMsg struct {
	kind     models.Kind
	title    models.Title
	existing *models.ExistingRating
}

type ratingClosedMsg struct {
	saved bool
	title string
}

// textCapture is implemented by screens that can hold keyboard focus in a
// text field, where q must be typed rather than treated as "back".
type textCapture interface {
	capturing() bool
}

type Model struct {
	currentView  View
	previousView View
	login        *LoginModel
	signup       *SignupModel
	menu         *MenuModel
	movies       *BrowseModel
	series       *BrowseModel
	favorites    *LibraryModel
	ratings      *LibraryModel
	dashboard    *DashboardModel
	rate         *RateModel
	client       *client.Client
	nav          *client.Navigator
	session      *session.Session
	status       string
	width        int
	height       int
}

func NewModel(c *client.Client, nav *client.Navigator) Model {
	m := Model{
		login:     NewLoginModel(c),
		signup:    NewSignupModel(c),
		menu:      NewMenuModel(),
		movies:    NewBrowseModel(c, models.KindMovie),
		series:    NewBrowseModel(c, models.KindSeries),
		favorites: NewLibraryModel(c, LibraryFavorites),
		ratings:   NewLibraryModel(c, LibraryRatings),
		dashboard: NewDashboardModel(c),
		rate:      NewRateModel(c),
		client:    c,
		nav:       nav,
	}

	m.session = c.Current()
	if m.session != nil {
		m.dashboard.SetUser(m.session.User)
		m.goTo(MenuView)
	} else {
		m.goTo(LoginView)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// goTo switches screens and keeps the navigator's location in step.
func (m *Model) goTo(v View) {
	if v != RatingView {
		m.previousView = v
		m.nav.SetLocation(Route(v))
	}
	m.currentView = v
	m.status = ""
}

// logoutCmd reports the login screen as current first, so the core clears
// the session without sending a session-expired navigation.
func logoutCmd(c *client.Client, nav *client.Navigator) tea.Cmd {
	return func() tea.Msg {
		nav.SetLocation(Route(LoginView))
		return logoutMsg{err: c.Logout()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		m.session = msg.session
		m.dashboard.SetUser(msg.session.User)
		m.goTo(MenuView)
		return m, nil

	case client.NavigateMsg:
		target := ViewFor(msg.Route)
		if target == LoginView {
			m.session = nil
			m.login.Expired()
		}
		m.goTo(target)
		return m, nil

	case logoutMsg:
		m.session = nil
		if m.currentView != LoginView {
			m.goTo(LoginView)
		}
		return m, nil

	case openRatingMsg:
		m.rate.Open(msg.kind, msg.title, msg.existing)
		m.goTo(RatingView)
		return m, nil

	case ratingClosedMsg:
		back := m.previousView
		m.goTo(back)
		if msg.saved {
			m.status = "Rating saved for " + msg.title
			return m, m.refreshAfterRating(back)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q", "esc":
			if m.screenCapturing() || m.currentView == RatingView {
				break
			}
			if m.currentView == MenuView || public(m.currentView) {
				if msg.String() == "q" {
					return m, tea.Quit
				}
				break
			}
			m.goTo(MenuView)
			return m, nil

		case "ctrl+s":
			if m.currentView == LoginView {
				m.goTo(SignupView)
				return m, nil
			} else if m.currentView == SignupView {
				m.goTo(LoginView)
				return m, nil
			}
		}
		return m.routeToCurrent(msg)

	case tea.MouseMsg:
		return m.routeToCurrent(msg)
	}

	// Everything else is a command result. Screens ignore results that are
	// not theirs, so results arriving after the user moved on still land.
	return m.broadcast(msg)
}

func (m Model) screenCapturing() bool {
	if s, ok := m.screen(m.currentView).(textCapture); ok {
		return s.capturing()
	}
	return false
}

func (m Model) screen(v View) tea.Model {
	switch v {
	case LoginView:
		return m.login
	case SignupView:
		return m.signup
	case MenuView:
		return m.menu
	case MoviesView:
		return m.movies
	case SeriesView:
		return m.series
	case FavoritesView:
		return m.favorites
	case RatingsView:
		return m.ratings
	case DashboardView:
		return m.dashboard
	case RatingView:
		return m.rate
	}
	return nil
}

func (m Model) routeToCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case LoginView:
		_, cmd := m.login.Update(msg)
		return m, cmd

	case SignupView:
		_, cmd := m.signup.Update(msg)
		if m.signup.done {
			m.signup.done = false
			m.login.Registered(m.signup.confirmation)
			m.goTo(LoginView)
		}
		return m, cmd

	case MenuView:
		_, cmd := m.menu.Update(msg)
		if m.menu.selected != -1 {
			item := m.menu.items[m.menu.selected]
			m.menu.selected = -1
			if item.view == LoginView {
				return m, logoutCmd(m.client, m.nav)
			}
			m.goTo(item.view)
			return m, m.activeInit()
		}
		return m, cmd

	case MoviesView:
		_, cmd := m.movies.Update(msg)
		return m, cmd

	case SeriesView:
		_, cmd := m.series.Update(msg)
		return m, cmd

	case FavoritesView:
		_, cmd := m.favorites.Update(msg)
		return m, cmd

	case RatingsView:
		_, cmd := m.ratings.Update(msg)
		return m, cmd

	case DashboardView:
		_, cmd := m.dashboard.Update(msg)
		return m, cmd

	case RatingView:
		_, cmd := m.rate.Update(msg)
		return m, cmd
	}
	return m, nil
}

// activeInit starts the first load of the screen just entered.
func (m Model) activeInit() tea.Cmd {
	if s := m.screen(m.currentView); s != nil {
		return s.Init()
	}
	return nil
}

func (m Model) refreshAfterRating(v View) tea.Cmd {
	switch v {
	case RatingsView, DashboardView:
		return m.screen(v).Init()
	}
	return nil
}

func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, s := range []tea.Model{m.login, m.signup, m.movies, m.series, m.favorites, m.ratings, m.dashboard, m.rate} {
		if _, cmd := s.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// headerHeight is the number of rows View draws above the current screen.
const headerHeight = 2

func (m Model) View() string {
	var statusBar string
	if m.session != nil && !public(m.currentView) {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("● " + m.session.User.DisplayName())

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.session.User.Email + ")")

		var status string
		if m.status != "" {
			status = "  " + SuccessStyle.Render(m.status)
		}

		statusBar = lipgloss.NewStyle().
			Width(screenWidth).
			MaxHeight(1).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo + status)
	}

	var mainContent string
	if s := m.screen(m.currentView); s != nil {
		mainContent = s.View()
	}

	return statusBar + "\n\n" + mainContent
}
