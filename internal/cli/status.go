// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/codehelp/codehelp-tui/internal/api"
)

// StatusInfo is the JSON shape of the status command.
type StatusInfo struct {
	Server   StatusServerInfo `json:"server"`
	Session  *SessionInfo     `json:"session"`
	LoggedIn bool             `json:"logged_in"`
}

// StatusServerInfo describes backend reachability.
type StatusServerInfo struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Error     string `json:"error,omitempty"`
}

func runStatus(ctx context.Context, env *Env, args Args) error {
	info := StatusInfo{}
	if env.Config != nil {
		info.Server.URL = env.Config.API.BaseURL
	}

	healthErr := env.Backend.Health(ctx)
	info.Server.Reachable = healthErr == nil
	if healthErr != nil {
		info.Server.Error = api.Message(healthErr)
	}
	if sess, ok := env.Session.Session(); ok {
		si := sessionInfo(sess.Subject, sess.ExpiresAt)
		info.Session = &si
		info.LoggedIn = true
	}

	if args.JSON {
		if err := OutputJSON(env.Stdout, "status", info); err != nil {
			return err
		}
		return healthErr
	}

	if !args.Quiet {
		fmt.Fprintln(env.Stdout, TitleStyle.Render("codehelp status"))
		fmt.Fprintln(env.Stdout, RenderSeparator())
	}
	server := SuccessStyle.Render("[OK]") + " reachable"
	if healthErr != nil {
		server = ErrorStyle.Render("[FAIL]") + " " + info.Server.Error
	}
	fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Server:"), info.Server.URL)
	fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Health:"), server)
	if info.Session != nil {
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Signed in as:"), info.Session.Username)
		if sess, ok := env.Session.Session(); ok {
			fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Expires:"), formatExpiry(sess.ExpiresAt))
		}
	} else {
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Signed in as:"), DimStyle.Render("not logged in"))
	}
	return healthErr
}
