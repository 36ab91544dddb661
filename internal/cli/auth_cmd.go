// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codehelp/codehelp-tui/internal/api"
)

// ErrLoginRejected is returned when the server accepted the credentials but
// the issued token was unusable.
var ErrLoginRejected = errors.New("login failed: the server issued an unusable credential")

// credentials gathers a username and password from flags, stdin or prompts.
func credentials(env *Env, args Args, confirm bool) (string, string, error) {
	username := strings.TrimSpace(args.Username)
	if username == "" {
		if args.PasswordStdin {
			return "", "", ErrMissingArgument("username", "codehelp login -u NAME --password-stdin")
		}
		line, err := env.ReadLine("Username: ")
		if err != nil {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return "", "", &ValidationError{Field: "username", Reason: "cannot be empty"}
	}

	var password string
	if args.PasswordStdin {
		line, err := readLine(bufio.NewReader(env.Stdin))
		if err != nil {
			return "", "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = line
	} else {
		p, err := env.ReadPassword("Password: ")
		if err != nil {
			return "", "", err
		}
		password = p
		if confirm {
			again, err := env.ReadPassword("Confirm password: ")
			if err != nil {
				return "", "", err
			}
			if again != password {
				return "", "", &ValidationError{Field: "password", Reason: "passwords do not match"}
			}
		}
	}
	if password == "" {
		return "", "", &ValidationError{Field: "password", Reason: "cannot be empty"}
	}
	return username, password, nil
}

func runLogin(ctx context.Context, env *Env, args Args) error {
	username, password, err := credentials(env, args, false)
	if err != nil {
		return err
	}
	if err := env.Session.Login(ctx, username, password); err != nil {
		return NewCommandError("login", "sign in", authMessage(err), err)
	}
	sess, ok := env.Session.Session()
	if !ok {
		return ErrLoginRejected
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "login", sessionInfo(sess.Subject, sess.ExpiresAt))
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s Logged in as %s\n", SuccessStyle.Render("[OK]"), sess.Subject)
	}
	return nil
}

func runLogout(env *Env, args Args) error {
	was := env.Session.IsAuthenticated()
	env.Session.Logout()

	if args.JSON {
		return OutputJSON(env.Stdout, "logout", map[string]bool{"was_logged_in": was})
	}
	if args.Quiet {
		return nil
	}
	if was {
		fmt.Fprintf(env.Stdout, "%s Logged out\n", SuccessStyle.Render("[OK]"))
	} else {
		fmt.Fprintln(env.Stdout, DimStyle.Render("Not logged in."))
	}
	return nil
}

func runWhoami(env *Env, args Args) error {
	sess, ok := env.Session.Session()
	if !ok {
		return ErrNotLoggedIn
	}
	if args.JSON {
		return OutputJSON(env.Stdout, "whoami", sessionInfo(sess.Subject, sess.ExpiresAt))
	}
	fmt.Fprintln(env.Stdout, sess.Subject)
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Expires:"), formatExpiry(sess.ExpiresAt))
	}
	return nil
}

func runSignup(ctx context.Context, env *Env, args Args) error {
	username, password, err := credentials(env, args, true)
	if err != nil {
		return err
	}
	message, err := env.Backend.Signup(ctx, username, password)
	if err != nil {
		return NewCommandError("signup", "register", api.Message(err), err)
	}
	if message == "" {
		message = "Account created."
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "signup", map[string]string{
			"username": username,
			"message":  message,
		})
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("[OK]"), message)
		fmt.Fprintln(env.Stdout, DimStyle.Render("Run 'codehelp login -u "+username+"' to sign in."))
	}
	return nil
}

// SessionInfo is the JSON shape of the signed-in identity.
type SessionInfo struct {
	Username  string     `json:"username"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func sessionInfo(subject string, expires time.Time) SessionInfo {
	info := SessionInfo{Username: subject}
	if !expires.IsZero() {
		t := expires.UTC()
		info.ExpiresAt = &t
	}
	return info
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	remaining := time.Until(t).Round(time.Minute)
	if remaining <= 0 {
		return t.Local().Format(time.RFC1123) + " (expired)"
	}
	return fmt.Sprintf("%s (in %s)", t.Local().Format(time.RFC1123), remaining)
}

// authMessage is the user-facing text for a login failure.
func authMessage(err error) string {
	if errors.Is(err, api.ErrAuth) {
		return "Invalid username or password."
	}
	return api.Message(err)
}
