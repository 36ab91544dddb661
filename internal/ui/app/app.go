// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the top-level Bubble Tea model.
//
// The shell owns the current path and the screen rendered for it. Every
// navigation, including the first one, is resolved through router.Guard, so
// protected screens are only ever built while a session is active. An auth
// failure reported by any screen signs the user out and returns to login.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/transcript"
	"github.com/codehelp/codehelp-tui/internal/ui/chat"
	"github.com/codehelp/codehelp-tui/internal/ui/login"
	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/projects"
	"github.com/codehelp/codehelp-tui/internal/ui/render"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

// Notices shown on the login screen.
const (
	SessionExpiredNotice = "Your session has expired. Please log in again."
	LoggedOutNotice      = "You have been logged out."
	LoginFailedMessage   = "Login failed. Please try again."
)

// Session is the slice of session.Manager the shell needs.
type Session interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	IsAuthenticated() bool
	Revalidate() bool
	Subject() string
}

// Backend is the slice of the gateway the screens need.
type Backend interface {
	projects.Backend
	projects.Ingester
	transcript.Backend
	login.Registrar
}

// Options configures the shell.
type Options struct {
	Theme *styles.Theme
	// Markdown renders answers through glamour.
	Markdown bool
	// StartPath is the first navigation. Empty means the dashboard.
	StartPath string
	Logger    *zap.Logger
	// RevalidateEvery polls the token store for a credential written or
	// cleared by another process. Zero or negative leaves polling off.
	RevalidateEvery time.Duration
}

type revalidateMsg struct{}

// Model is the application shell.
type Model struct {
	ctx      context.Context
	session  Session
	backend  Backend
	guard    *router.Guard
	theme    *styles.Theme
	renderer *render.Renderer
	logger   *zap.Logger
	opts     Options

	path      string
	route     router.Route
	screen    nav.Screen
	dashboard *projects.Dashboard
	// returnTo is the protected path a login redirect interrupted.
	returnTo string

	width  int
	height int
}

// New creates the shell.
func New(ctx context.Context, session Session, backend Backend, opts Options) *Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.StartPath == "" {
		opts.StartPath = router.PathProjects
	}

	return &Model{
		ctx:      ctx,
		session:  session,
		backend:  backend,
		guard:    router.NewGuard(session),
		theme:    opts.Theme,
		renderer: render.New(opts.Theme.IsDark, opts.Markdown, 80),
		logger:   opts.Logger.Named("ui"),
		opts:     opts,
	}
}

// Path returns the path of the current screen.
func (m *Model) Path() string {
	return m.path
}

// Route returns the current route.
func (m *Model) Route() router.Route {
	return m.route
}

// Screen returns the current screen.
func (m *Model) Screen() nav.Screen {
	return m.screen
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.navigate(m.opts.StartPath, ""), m.revalidateTick())
}

func (m *Model) revalidateTick() tea.Cmd {
	if m.opts.RevalidateEvery <= 0 {
		return nil
	}
	return tea.Tick(m.opts.RevalidateEvery, func(time.Time) tea.Msg {
		return revalidateMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		if m.screen != nil {
			m.screen.SetSize(m.contentSize())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.session.IsAuthenticated() {
				return m, func() tea.Msg { return nav.LogoutMsg{} }
			}
		}

	case nav.NavigateMsg:
		return m, m.navigate(msg.Path, msg.Notice)

	case nav.LoggedInMsg:
		return m, m.handleLoggedIn()

	case nav.LogoutMsg:
		m.logger.Info("user logged out")
		m.endSession()
		m.returnTo = ""
		return m, m.navigate(router.PathLogin, LoggedOutNotice)

	case nav.AuthFailedMsg:
		m.logger.Info("credential rejected by server", zap.Error(msg.Err))
		return m, m.expire()

	case revalidateMsg:
		if !m.session.Revalidate() && m.route.Kind.Protected() {
			m.logger.Info("stored credential changed")
			return m, tea.Batch(m.expire(), m.revalidateTick())
		}
		return m, m.revalidateTick()

	case projects.IngestFinishedMsg:
		var cmds []tea.Cmd
		if m.dashboard != nil {
			_, cmd := m.dashboard.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.screen != nil && m.screen != nav.Screen(m.dashboard) {
			cmds = append(cmds, m.updateScreen(msg))
		}
		return m, tea.Batch(cmds...)
	}

	return m, m.updateScreen(msg)
}

func (m *Model) updateScreen(msg tea.Msg) tea.Cmd {
	if m.screen == nil {
		return nil
	}
	screen, cmd := m.screen.Update(msg)
	m.screen = screen
	return cmd
}

func (m *Model) handleLoggedIn() tea.Cmd {
	if !m.session.IsAuthenticated() {
		// The server answered but the credential was unusable.
		if lm, ok := m.screen.(*login.Model); ok {
			lm.SetError(LoginFailedMessage)
		}
		return nil
	}
	m.logger.Info("user logged in", zap.String("subject", m.session.Subject()))
	target := m.returnTo
	m.returnTo = ""
	if target == "" {
		target = router.PathProjects
	}
	return m.navigate(target, "")
}

// expire ends the session and returns to login, remembering where the user
// was so a fresh login can resume there.
func (m *Model) expire() tea.Cmd {
	if m.route.Kind.Protected() {
		m.returnTo = m.path
	}
	m.endSession()
	return m.navigate(router.PathLogin, SessionExpiredNotice)
}

func (m *Model) endSession() {
	m.session.Logout()
	m.dashboard = nil
}

// navigate resolves path through the guard and shows the resulting screen.
func (m *Model) navigate(path, notice string) tea.Cmd {
	d := m.guard.Resolve(path)
	if d.Redirected {
		m.logger.Debug("navigation redirected",
			zap.String("requested", path),
			zap.String("to", d.Path()))
		if d.Route.Kind == router.KindLogin {
			m.returnTo = d.From
		}
	}

	m.path = d.Path()
	m.route = d.Route
	m.screen = m.buildScreen(d.Route, notice)
	if m.width > 0 && m.height > 0 {
		m.screen.SetSize(m.contentSize())
	}
	return m.screen.Init()
}

func (m *Model) buildScreen(route router.Route, notice string) nav.Screen {
	switch route.Kind {
	case router.KindLogin, router.KindSignup:
		var lm *login.Model
		if route.Kind == router.KindSignup {
			lm = login.NewSignup(m.ctx, m.theme, m.session, m.backend)
		} else {
			lm = login.New(m.ctx, m.theme, m.session, m.backend)
		}
		lm.SetNotice(notice)
		return lm

	case router.KindChat:
		return chat.New(m.ctx, m.theme, m.backend, route.ProjectID, chat.Options{
			Name:     m.projectName(route.ProjectID),
			Renderer: m.renderer,
			Logger:   m.logger.Named("transcript"),
		})

	case router.KindIngest:
		return projects.NewIngest(m.ctx, m.theme, m.backend, route.ProjectID, m.projectName(route.ProjectID))

	default:
		if m.dashboard == nil {
			m.dashboard = projects.NewDashboard(m.ctx, m.theme, m.backend)
		}
		m.dashboard.SetNotice(notice)
		return m.dashboard
	}
}

func (m *Model) projectName(id int64) string {
	if m.dashboard == nil {
		return ""
	}
	if p, ok := m.dashboard.Project(id); ok {
		return p.Name
	}
	return ""
}
