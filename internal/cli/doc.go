// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive commands
// for codehelp.
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err, false)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	err = cli.Run(ctx, env, cmd, args)
//
// # Commands
//
// Session:
//   - login, logout, whoami, signup
//
// Projects (require a signed-in session):
//   - projects, create, ingest, history, export, ask, chat
//
// Other:
//   - status, config, version, help, tui (default)
//
// Protected commands consult router.Guard before touching the network and
// fail with ExitAuthError when the guard would redirect to login.
package cli
