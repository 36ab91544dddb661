// codehelp - ask questions about your codebase from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/cli"
	"github.com/codehelp/codehelp-tui/internal/config"
	"github.com/codehelp/codehelp-tui/internal/logging"
	"github.com/codehelp/codehelp-tui/internal/session"
	"github.com/codehelp/codehelp-tui/internal/storage"
	"github.com/codehelp/codehelp-tui/internal/ui/app"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		return exit(err, args)
	}
	if cmd == cli.CmdHelp || cmd == cli.CmdVersion {
		return exit(cli.Run(context.Background(), &cli.Env{Stdout: os.Stdout, Stderr: os.Stderr}, cmd, args), args)
	}

	cfg, err := config.Load()
	if err != nil {
		return exit(fmt.Errorf("%w: %w", cli.ErrConfig, err), args)
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return exit(fmt.Errorf("%w: %w", cli.ErrConfig, err), args)
		}
	}
	configPath, _ := config.ConfigPathTOML()

	logger, err := newLogger(cfg, args)
	if err != nil {
		return exit(fmt.Errorf("%w: %w", cli.ErrConfig, err), args)
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.Open(cfg.Auth.TokenStore, cfg.Auth.TokenPath)
	if err != nil {
		return exit(fmt.Errorf("%w: %w", cli.ErrConfig, err), args)
	}
	defer store.Close()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithLogger(logger.Named("api")),
		api.WithUserAgent("codehelp/"+Version),
	)
	manager := session.NewManager(store, client, session.WithLogger(logger.Named("session")))
	client.SetTokenSource(manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &cli.Env{
		Config:        cfg,
		ConfigPath:    configPath,
		Session:       manager,
		Backend:       client,
		Logger:        logger.Named("cli"),
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		ReadPassword:  cli.TerminalPasswordReader(os.Stderr),
		ReadLine:      cli.BufferedLineReader(os.Stdin, os.Stderr),
		NewLineReader: cli.NewChatCLI,
		RunTUI: func(ctx context.Context, startPath string) error {
			return runTUI(ctx, cfg, manager, client, logger, startPath)
		},
	}

	logger.Debug("starting", zap.Stringer("command", cmd), zap.String("api", cfg.API.BaseURL))
	return exit(cli.Run(ctx, env, cmd, args), args)
}

// newLogger writes JSON records to the rotating log file and, with
// --verbose, readable records to stderr.
func newLogger(cfg *config.Config, args cli.Args) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level}
	if cfg.LogFileEnabled() {
		opts.File = cfg.Log.File
	}
	if args.Verbose {
		opts.Level = "debug"
		opts.Console = os.Stderr
	}
	return logging.New(opts)
}

// runTUI starts the full-screen interface.
func runTUI(ctx context.Context, cfg *config.Config, sess *session.Manager, client *api.Client, logger *zap.Logger, startPath string) error {
	if err := cli.RequiresTTY("start the interface"); err != nil {
		return err
	}

	model := app.New(ctx, sess, client, app.Options{
		Theme:     styles.NewTheme(cfg.UI.Theme),
		Markdown:  cfg.UI.RenderMarkdown,
		StartPath: startPath,
		Logger:    logger,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running interface: %w", err)
	}
	return nil
}

func exit(err error, args cli.Args) int {
	if err != nil {
		out := os.Stderr
		if args.JSON {
			out = os.Stdout
		}
		cli.DisplayError(out, err, args.JSON)
	}
	return cli.GetExitCode(err)
}
