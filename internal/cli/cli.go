// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdSignup
	CmdProjects
	CmdCreate
	CmdIngest
	CmdHistory
	CmdExport
	CmdAsk
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[string]Command{
	"tui":      CmdTUI,
	"login":    CmdLogin,
	"logout":   CmdLogout,
	"whoami":   CmdWhoami,
	"signup":   CmdSignup,
	"projects": CmdProjects,
	"create":   CmdCreate,
	"ingest":   CmdIngest,
	"history":  CmdHistory,
	"export":   CmdExport,
	"ask":      CmdAsk,
	"chat":     CmdChat,
	"status":   CmdStatus,
	"config":   CmdConfig,
	"version":  CmdVersion,
	"help":     CmdHelp,
	// Aliases
	"ls": CmdProjects,
	"s":  CmdStatus,
}

var canonicalNames = [...]string{
	CmdTUI:      "tui",
	CmdLogin:    "login",
	CmdLogout:   "logout",
	CmdWhoami:   "whoami",
	CmdSignup:   "signup",
	CmdProjects: "projects",
	CmdCreate:   "create",
	CmdIngest:   "ingest",
	CmdHistory:  "history",
	CmdExport:   "export",
	CmdAsk:      "ask",
	CmdChat:     "chat",
	CmdStatus:   "status",
	CmdConfig:   "config",
	CmdVersion:  "version",
	CmdHelp:     "help",
}

// String returns the canonical command name.
func (c Command) String() string {
	if c < 0 || int(c) >= len(canonicalNames) {
		return "unknown"
	}
	return canonicalNames[c]
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose bool
	Quiet   bool
	JSON    bool
	APIURL  string

	// Command-specific
	Username      string
	PasswordStdin bool
	Description   string
	Raw           bool // print answers without markdown rendering
	Format        string
	Output        string

	// Positional holds the arguments after the command name.
	Positional []string
}

const usageText = `codehelp - ask questions about your codebase from the terminal

Usage:
  codehelp                         Start the TUI (default)
  codehelp login [-u NAME]         Sign in and store the credential
  codehelp logout                  Remove the stored credential
  codehelp whoami                  Show the signed-in user
  codehelp signup [-u NAME]        Create an account
  codehelp projects, ls            List projects
  codehelp create NAME [-d TEXT]   Create a project
  codehelp ingest ID DIR           Ingest a server-side source directory
  codehelp history ID              Show a project's questions and answers
  codehelp export ID [-o PATH]     Save a project's history (md or json)
  codehelp ask ID QUESTION...      Ask a single question
  codehelp chat ID                 Interactive chat about a project
  codehelp status, s               Show server and session status
  codehelp config [show|get|set|path]
                                   View and modify configuration
  codehelp version                 Show version information

Global Flags:
  --api-url URL       Override api.base_url for this run
  --json              Output in JSON format
  -q, --quiet         Minimal output
  -v, --verbose       Debug logging on stderr

Command Flags:
  -u, --username NAME       Username for login and signup
  --password-stdin          Read the password from stdin
  -d, --description TEXT    Description for create
  --raw                     Plain answers; raw TOML for config show
  --format md|json          Export format (default md)
  -o, --output PATH         Export file or directory ("-" for stdout)

Examples:
  codehelp login -u alice
  echo "$PASSWORD" | codehelp login -u alice --password-stdin
  codehelp create backend -d "API server"
  codehelp ingest 3 /srv/src/backend
  codehelp ask 3 "Where is the session middleware configured?"
  codehelp chat 3
  codehelp config set ui.theme light

Exit Codes:
  0 success, 1 error, 2 usage, 3 configuration, 4 authentication, 5 network

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "codehelp version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

func newFlagSet(args *Args, help, version *bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("codehelp", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVarP(&args.Verbose, "verbose", "v", false, "debug logging on stderr")
	fs.BoolVarP(&args.Quiet, "quiet", "q", false, "minimal output")
	fs.BoolVar(&args.JSON, "json", false, "output in JSON format")
	fs.StringVar(&args.APIURL, "api-url", "", "override api.base_url")
	fs.StringVarP(&args.Username, "username", "u", "", "username for login and signup")
	fs.BoolVar(&args.PasswordStdin, "password-stdin", false, "read the password from stdin")
	fs.StringVarP(&args.Description, "description", "d", "", "project description")
	fs.BoolVar(&args.Raw, "raw", false, "print answers without markdown rendering")
	fs.StringVar(&args.Format, "format", "md", "export format")
	fs.StringVarP(&args.Output, "output", "o", ".", "export file or directory")
	fs.BoolVarP(help, "help", "h", false, "show help")
	fs.BoolVar(version, "version", false, "show version")
	return fs
}

// Parse parses command-line arguments (without the program name) and returns
// the command and its args.
func Parse(argv []string) (Command, Args, error) {
	var args Args
	var help, version bool

	fs := newFlagSet(&args, &help, &version)
	if err := fs.Parse(argv); err != nil {
		return CmdHelp, args, &ValidationError{
			Field:   "flags",
			Reason:  err.Error(),
			Example: "codehelp --help",
		}
	}

	positional := fs.Args()
	switch {
	case help:
		return CmdHelp, args, nil
	case version:
		return CmdVersion, args, nil
	case len(positional) == 0:
		return CmdTUI, args, nil
	}

	name := strings.ToLower(positional[0])
	cmd, ok := commandNames[name]
	if !ok {
		reason := fmt.Sprintf("unknown command %q", positional[0])
		if suggestion := SuggestCommand(name); suggestion != "" {
			reason += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		return CmdHelp, args, &ValidationError{
			Field:   "command",
			Reason:  reason,
			Example: "codehelp --help",
		}
	}
	args.Positional = positional[1:]
	return cmd, args, nil
}
