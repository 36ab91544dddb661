// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in and registration screens.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

// Authenticator signs the user in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

// Registrar creates accounts.
type Registrar interface {
	Signup(ctx context.Context, username, password string) (string, error)
}

const (
	fieldUsername = iota
	fieldPassword
)

// =============================================================================
// MESSAGES
// =============================================================================

type loginResultMsg struct {
	err error
}

type signupResultMsg struct {
	message string
	err     error
}

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap defines the form bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
}

// DefaultKeyMap returns the default form bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		Switch: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "sign up / log in"),
		),
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the login or signup form.
type Model struct {
	ctx    context.Context
	theme  *styles.Theme
	keys   KeyMap
	signup bool

	auth Authenticator
	reg  Registrar

	inputs []textinput.Model
	focus  int

	submitting bool
	err        string
	notice     string

	width  int
	height int
}

// New creates the login form.
func New(ctx context.Context, theme *styles.Theme, auth Authenticator, reg Registrar) *Model {
	return newModel(ctx, theme, auth, reg, false)
}

// NewSignup creates the registration form.
func NewSignup(ctx context.Context, theme *styles.Theme, auth Authenticator, reg Registrar) *Model {
	return newModel(ctx, theme, auth, reg, true)
}

func newModel(ctx context.Context, theme *styles.Theme, auth Authenticator, reg Registrar, signup bool) *Model {
	username := textinput.New()
	username.Prompt = "> "
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "password"
	password.CharLimit = 256
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &Model{
		ctx:    ctx,
		theme:  theme,
		keys:   DefaultKeyMap(),
		signup: signup,
		auth:   auth,
		reg:    reg,
		inputs: []textinput.Model{username, password},
	}
}

// SetNotice shows an informational line above the form.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// SetError shows an error line below the form.
func (m *Model) SetError(err string) {
	m.err = err
}

// Submitting reports whether a request is in flight.
func (m *Model) Submitting() bool {
	return m.submitting
}

// Init implements nav.Screen.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements nav.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.inputs {
		m.inputs[i].Width = 32
	}
}

// ShortHelp implements nav.Screen.
func (m *Model) ShortHelp() []nav.Hint {
	other := "sign up"
	if m.signup {
		other = "log in"
	}
	return []nav.Hint{
		{Key: "Tab", Desc: "next field"},
		{Key: "Enter", Desc: "submit"},
		{Key: "C-n", Desc: other},
	}
}

// Update implements nav.Screen.
func (m *Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = "Login failed: " + api.Message(msg.err)
			m.inputs[fieldPassword].Reset()
			return m, nil
		}
		m.err = ""
		return m, func() tea.Msg { return nav.LoggedInMsg{} }

	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = "Sign up failed: " + api.Message(msg.err)
			return m, nil
		}
		notice := msg.message
		if notice == "" {
			notice = "Account created."
		}
		return m, nav.NavigateWithNotice(router.PathLogin, notice+" Please log in.")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (nav.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Switch):
		if m.signup {
			return m, nav.Navigate(router.PathLogin)
		}
		return m, nav.Navigate(router.PathSignup)

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldUsername {
			return m, m.setFocus(fieldPassword)
		}
		return m, m.submit()
	}

	if m.submitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return textinput.Blink
}

// submit issues the login or signup request. Submission is disabled while a
// request is in flight.
func (m *Model) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()
	if username == "" || password == "" {
		m.err = "Please enter a username and password."
		return nil
	}

	m.submitting = true
	m.err = ""
	m.notice = ""
	ctx := m.ctx

	if m.signup {
		reg := m.reg
		return func() tea.Msg {
			message, err := reg.Signup(ctx, username, password)
			return signupResultMsg{message: message, err: err}
		}
	}
	auth := m.auth
	return func() tea.Msg {
		return loginResultMsg{err: auth.Login(ctx, username, password)}
	}
}

// View implements nav.Screen.
func (m *Model) View() string {
	t := m.theme
	title := "Log in to CodeHelp"
	button := "Log in"
	if m.signup {
		title = "Create a CodeHelp account"
		button = "Sign up"
	}

	var b strings.Builder
	b.WriteString(t.FormTitle.Render(title))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(t.FormSuccess.Render(m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(t.FormLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldUsername].View())
	b.WriteString("\n\n")
	b.WriteString(t.FormLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(t.FormHint.Render(button + "..."))
	} else {
		b.WriteString(t.FormHint.Render("Press Enter to " + strings.ToLower(button)))
	}
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(t.FormError.Render(m.err))
	}

	box := t.FormBox.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
