// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/config"
	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/session"
)

// Session is the credential holder the commands act on.
type Session interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	IsAuthenticated() bool
	Session() (session.Session, bool)
}

// Backend is the gateway surface the commands call.
type Backend interface {
	Signup(ctx context.Context, username, password string) (string, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name, description string) (model.Project, error)
	IngestProject(ctx context.Context, projectName, directory string) (*api.IngestResult, error)
	GetProjectHistory(ctx context.Context, projectID int64) ([]model.Exchange, error)
	AskQuestion(ctx context.Context, projectID int64, question string) (string, error)
	Health(ctx context.Context) error
}

// Env carries everything a command needs. main wires the real
// implementations; tests substitute fakes.
type Env struct {
	Config *config.Config
	// ConfigPath is the file 'config set' writes.
	ConfigPath string

	Session Session
	Backend Backend
	Logger  *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ReadPassword reads a secret without echo.
	ReadPassword func(prompt string) (string, error)
	// ReadLine reads one line of visible input.
	ReadLine func(prompt string) (string, error)
	// NewLineReader opens the chat line editor.
	NewLineReader func(historyFile string) (LineReader, error)
	// RunTUI starts the full-screen interface at startPath.
	RunTUI func(ctx context.Context, startPath string) error
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Run executes cmd.
func Run(ctx context.Context, env *Env, cmd Command, args Args) error {
	env.logger().Debug("running command", zap.Stringer("command", cmd))

	switch cmd {
	case CmdHelp:
		PrintUsage(env.Stdout)
		return nil
	case CmdVersion:
		return runVersion(env, args)
	case CmdTUI:
		return runTUI(ctx, env, args)
	case CmdLogin:
		return runLogin(ctx, env, args)
	case CmdLogout:
		return runLogout(env, args)
	case CmdWhoami:
		return runWhoami(env, args)
	case CmdSignup:
		return runSignup(ctx, env, args)
	case CmdProjects:
		return runProjects(ctx, env, args)
	case CmdCreate:
		return runCreate(ctx, env, args)
	case CmdIngest:
		return runIngest(ctx, env, args)
	case CmdHistory:
		return runHistory(ctx, env, args)
	case CmdExport:
		return runExport(ctx, env, args)
	case CmdAsk:
		return runAsk(ctx, env, args)
	case CmdChat:
		return runChat(ctx, env, args)
	case CmdStatus:
		return runStatus(ctx, env, args)
	case CmdConfig:
		return runConfig(env, args)
	default:
		return &ValidationError{Field: "command", Reason: fmt.Sprintf("unsupported command %s", cmd)}
	}
}

// requireAuth applies the route guard to a command that needs a session.
func requireAuth(env *Env, route router.Route) error {
	d := router.NewGuard(env.Session).ResolveRoute(route)
	if d.Redirected && d.Route.Kind == router.KindLogin {
		return ErrNotLoggedIn
	}
	return nil
}

// checkAuth drops the stored credential when the server rejected it.
func checkAuth(env *Env, err error) error {
	if api.IsAuth(err) {
		env.logger().Info("credential rejected, logging out")
		env.Session.Logout()
	}
	return err
}

// projectArg parses the positional project id at index i.
func projectArg(args Args, i int, usage string) (int64, error) {
	if len(args.Positional) <= i {
		return 0, ErrMissingArgument("project id", usage)
	}
	id, err := model.ParseProjectID(args.Positional[i])
	if err != nil || id <= 0 {
		return 0, &ValidationError{
			Field:   "project id",
			Value:   args.Positional[i],
			Reason:  "must be a positive number",
			Example: usage,
		}
	}
	return id, nil
}

func runVersion(env *Env, args Args) error {
	if args.JSON {
		return OutputJSON(env.Stdout, "version", map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
		})
	}
	PrintVersion(env.Stdout)
	return nil
}

func runTUI(ctx context.Context, env *Env, args Args) error {
	if env.RunTUI == nil {
		return NewCommandError("tui", "start", "no terminal interface available", nil)
	}
	start := ""
	if len(args.Positional) > 0 {
		start = args.Positional[0]
	}
	return env.RunTUI(ctx, start)
}
