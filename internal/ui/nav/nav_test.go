// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehelp/codehelp-tui/internal/api"
)

func TestNavigate(t *testing.T) {
	msg := Navigate("/projects")()
	assert.Equal(t, NavigateMsg{Path: "/projects"}, msg)

	msg = NavigateWithNotice("/login", "bye")()
	assert.Equal(t, NavigateMsg{Path: "/login", Notice: "bye"}, msg)
}

func TestCheckAuth(t *testing.T) {
	assert.Nil(t, CheckAuth(nil))
	assert.Nil(t, CheckAuth(errors.New("boom")))
	assert.Nil(t, CheckAuth(&api.Error{Kind: api.KindNetwork, Op: "x", Message: "down"}))

	authErr := &api.Error{Kind: api.KindAuth, Op: "list projects", Status: 401, Message: "Not authenticated"}
	cmd := CheckAuth(authErr)
	require.NotNil(t, cmd)
	assert.Equal(t, AuthFailedMsg{Err: authErr}, cmd())
}

func TestHints(t *testing.T) {
	send := key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "send"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "off"))
	off.SetEnabled(false)

	assert.Equal(t, []Hint{{Key: "Enter", Desc: "send"}}, Hints(send, off))
	assert.Empty(t, Hints())
}
