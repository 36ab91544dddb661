// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

type fakeAuth struct {
	err      error
	calls    int
	username string
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) error {
	f.calls++
	f.username = username
	return f.err
}

type fakeReg struct {
	message string
	err     error
}

func (f *fakeReg) Signup(ctx context.Context, username, password string) (string, error) {
	return f.message, f.err
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func fill(m *Model, username, password string) {
	typeText(m, username)
	m.Update(enter())
	typeText(m, password)
}

func TestLogin_Success(t *testing.T) {
	auth := &fakeAuth{}
	m := New(context.Background(), styles.NewTheme("dark"), auth, &fakeReg{})
	fill(m, "alice", "pw")

	_, cmd := m.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())

	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, nav.LoggedInMsg{}, cmd())
	assert.Equal(t, "alice", auth.username)
	assert.False(t, m.Submitting())
}

func TestLogin_FailureShowsMessage(t *testing.T) {
	auth := &fakeAuth{err: &api.Error{Kind: api.KindAuth, Op: "login", Status: 401, Message: "Incorrect username or password"}}
	m := New(context.Background(), styles.NewTheme("dark"), auth, &fakeReg{})
	fill(m, "alice", "bad")

	_, cmd := m.Update(enter())
	_, next := m.Update(cmd())

	assert.Nil(t, next)
	assert.Contains(t, m.View(), "Incorrect username or password")
	assert.Empty(t, m.inputs[fieldPassword].Value(), "password cleared after failure")
}

func TestLogin_SubmitDisabledWhileInFlight(t *testing.T) {
	auth := &fakeAuth{}
	m := New(context.Background(), styles.NewTheme("dark"), auth, &fakeReg{})
	fill(m, "alice", "pw")

	_, first := m.Update(enter())
	require.NotNil(t, first)
	_, second := m.Update(enter())
	assert.Nil(t, second)
}

func TestLogin_RequiresBothFields(t *testing.T) {
	auth := &fakeAuth{}
	m := New(context.Background(), styles.NewTheme("dark"), auth, &fakeReg{})
	m.Update(enter()) // to password field

	_, cmd := m.Update(enter())
	assert.Nil(t, cmd)
	assert.Equal(t, 0, auth.calls)
	assert.Contains(t, m.View(), "Please enter a username and password.")
}

func TestSignup_SuccessNavigatesToLogin(t *testing.T) {
	m := NewSignup(context.Background(), styles.NewTheme("dark"), &fakeAuth{}, &fakeReg{message: "User bob created successfully."})
	fill(m, "bob", "pw")

	_, cmd := m.Update(enter())
	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)

	msg, ok := cmd().(nav.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, "/login", msg.Path)
	assert.Contains(t, msg.Notice, "User bob created successfully.")
}

func TestSwitchBetweenForms(t *testing.T) {
	m := New(context.Background(), styles.NewTheme("dark"), &fakeAuth{}, &fakeReg{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.NavigateMsg{Path: "/signup"}, cmd())
}
