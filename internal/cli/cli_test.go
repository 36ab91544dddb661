// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/config"
	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/session"
	"github.com/codehelp/codehelp-tui/internal/transcript"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeSession struct {
	subject  string
	expires  time.Time
	loginErr error
	// grant controls whether Login produces a usable session.
	grant   bool
	logouts int
}

func (s *fakeSession) Login(_ context.Context, username, _ string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	if s.grant {
		s.subject = username
	}
	return nil
}

func (s *fakeSession) Logout() {
	s.logouts++
	s.subject = ""
}

func (s *fakeSession) IsAuthenticated() bool { return s.subject != "" }

func (s *fakeSession) Session() (session.Session, bool) {
	if s.subject == "" {
		return session.Session{}, false
	}
	return session.Session{Subject: s.subject, ExpiresAt: s.expires}, true
}

type fakeBackend struct {
	projects   []model.Project
	history    []model.Exchange
	answer     string
	err        error
	historyErr error
	healthErr  error
	calls      int
	questions  []string
	ingested   string
	ingestedAs string
}

func (b *fakeBackend) Signup(_ context.Context, _, _ string) (string, error) {
	b.calls++
	return "User created successfully", b.err
}

func (b *fakeBackend) ListProjects(context.Context) ([]model.Project, error) {
	b.calls++
	return b.projects, b.err
}

func (b *fakeBackend) CreateProject(_ context.Context, name, desc string) (model.Project, error) {
	b.calls++
	return model.Project{ID: 9, Name: name, Description: desc}, b.err
}

func (b *fakeBackend) IngestProject(_ context.Context, name, dir string) (*api.IngestResult, error) {
	b.calls++
	b.ingestedAs = name
	b.ingested = dir
	if b.err != nil {
		return nil, b.err
	}
	return &api.IngestResult{Message: "Ingestion started for " + dir, Status: "processing"}, nil
}

func (b *fakeBackend) GetProjectHistory(context.Context, int64) ([]model.Exchange, error) {
	b.calls++
	return b.history, b.historyErr
}

func (b *fakeBackend) AskQuestion(_ context.Context, _ int64, q string) (string, error) {
	b.calls++
	b.questions = append(b.questions, q)
	return b.answer, b.err
}

func (b *fakeBackend) Health(context.Context) error {
	return b.healthErr
}

type scriptedReader struct {
	lines  []string
	closed bool
}

func (r *scriptedReader) ReadInput(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() { r.closed = true }

var authErr = &api.Error{Kind: api.KindAuth, Op: "list projects", Status: 401, Message: "Could not validate credentials"}

type harness struct {
	env     *Env
	session *fakeSession
	backend *fakeBackend
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newHarness(t *testing.T, subject string) *harness {
	t.Helper()
	h := &harness{
		session: &fakeSession{subject: subject},
		backend: &fakeBackend{},
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
	}
	cfg := config.Default()
	h.env = &Env{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Session:    h.session,
		Backend:    h.backend,
		Stdin:      strings.NewReader(""),
		Stdout:     h.stdout,
		Stderr:     h.stderr,
		ReadPassword: func(string) (string, error) {
			return "", errors.New("no terminal")
		},
		ReadLine: func(string) (string, error) {
			return "", ErrEmptyInput
		},
	}
	return h
}

func (h *harness) run(cmd Command, args Args) error {
	return Run(context.Background(), h.env, cmd, args)
}

// =============================================================================
// PARSING
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		want    Command
		wantPos []string
	}{
		{"no args starts the tui", nil, CmdTUI, nil},
		{"command", []string{"projects"}, CmdProjects, []string{}},
		{"alias", []string{"ls"}, CmdProjects, []string{}},
		{"case insensitive", []string{"ASK", "3", "why"}, CmdAsk, []string{"3", "why"}},
		{"help flag", []string{"--help"}, CmdHelp, nil},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"flags after positionals", []string{"create", "api", "-d", "server"}, CmdCreate, []string{"api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
			if tt.wantPos != nil {
				assert.Equal(t, tt.wantPos, args.Positional)
			}
		})
	}
}

func TestParse_Flags(t *testing.T) {
	_, args, err := Parse([]string{"login", "-u", "alice", "--password-stdin", "--json", "--api-url", "http://x/api"})
	require.NoError(t, err)
	assert.Equal(t, "alice", args.Username)
	assert.True(t, args.PasswordStdin)
	assert.True(t, args.JSON)
	assert.Equal(t, "http://x/api", args.APIURL)
}

func TestParse_UnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"projcts"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, `did you mean "projects"`)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestParse_UnknownFlag(t *testing.T) {
	_, _, err := Parse([]string{"projects", "--bogus"})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestSuggestCommand(t *testing.T) {
	assert.Equal(t, "login", SuggestCommand("logn"))
	assert.Equal(t, "ingest", SuggestCommand("injest"))
	assert.Empty(t, SuggestCommand("zzzzzzzz"))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "history", CmdHistory.String())
	assert.Equal(t, "unknown", Command(99).String())
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", ErrMissingArgument("name", "x"), ExitUsageError},
		{"config", configError(errors.New("bad")), ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}, ExitConfigError},
		{"not logged in", ErrNotLoggedIn, ExitAuthError},
		{"api auth", authErr, ExitAuthError},
		{"wrapped api auth", NewCommandError("login", "sign in", "nope", authErr), ExitAuthError},
		{"network", &api.Error{Kind: api.KindNetwork, Op: "health", Message: "down"}, ExitNetworkError},
		{"backend validation", &api.Error{Kind: api.KindValidation, Op: "create project", Status: 400, Message: "exists"}, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, authErr, true)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "auth", out["error_type"])
	assert.Equal(t, float64(ExitAuthError), out["exit_code"])
}

func TestDisplayError_Hint(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, &api.Error{Kind: api.KindNetwork, Op: "health", Message: "down"}, false)
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Contains(t, buf.String(), "api.base_url")
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func TestLogin_PasswordStdin(t *testing.T) {
	h := newHarness(t, "")
	h.session.grant = true
	h.env.Stdin = strings.NewReader("hunter2\n")

	err := h.run(CmdLogin, Args{Username: "alice", PasswordStdin: true})
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), "Logged in as alice")
}

func TestLogin_PasswordStdinRequiresUsername(t *testing.T) {
	h := newHarness(t, "")
	err := h.run(CmdLogin, Args{PasswordStdin: true})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestLogin_UnusableToken(t *testing.T) {
	h := newHarness(t, "")
	h.env.Stdin = strings.NewReader("hunter2")

	err := h.run(CmdLogin, Args{Username: "alice", PasswordStdin: true})
	assert.ErrorIs(t, err, ErrLoginRejected)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t, "")
	h.session.loginErr = &api.Error{Kind: api.KindAuth, Op: "login", Status: 401, Message: "Incorrect username or password"}
	h.env.ReadPassword = func(string) (string, error) { return "wrong", nil }

	err := h.run(CmdLogin, Args{Username: "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid username or password.")
	assert.Equal(t, ExitAuthError, GetExitCode(err))
}

func TestLogout(t *testing.T) {
	h := newHarness(t, "alice")
	require.NoError(t, h.run(CmdLogout, Args{}))
	assert.Equal(t, 1, h.session.logouts)
	assert.Contains(t, h.stdout.String(), "Logged out")
}

func TestWhoami(t *testing.T) {
	h := newHarness(t, "alice")
	require.NoError(t, h.run(CmdWhoami, Args{Quiet: true}))
	assert.Equal(t, "alice\n", h.stdout.String())

	h = newHarness(t, "")
	assert.ErrorIs(t, h.run(CmdWhoami, Args{}), ErrNotLoggedIn)
}

func TestSignup_PasswordsMustMatch(t *testing.T) {
	h := newHarness(t, "")
	answers := []string{"one", "two"}
	h.env.ReadPassword = func(string) (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	err := h.run(CmdSignup, Args{Username: "bob"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Zero(t, h.backend.calls)
}

func TestSignup(t *testing.T) {
	h := newHarness(t, "")
	h.env.ReadLine = func(string) (string, error) { return " bob ", nil }
	h.env.ReadPassword = func(string) (string, error) { return "pw", nil }

	require.NoError(t, h.run(CmdSignup, Args{}))
	assert.Contains(t, h.stdout.String(), "User created successfully")
	assert.Contains(t, h.stdout.String(), "codehelp login -u bob")
}

// =============================================================================
// PROJECT COMMANDS
// =============================================================================

func TestProtectedCommandsRequireSession(t *testing.T) {
	cases := []struct {
		cmd  Command
		args Args
	}{
		{CmdProjects, Args{}},
		{CmdCreate, Args{Positional: []string{"api"}}},
		{CmdIngest, Args{Positional: []string{"3", "/src"}}},
		{CmdHistory, Args{Positional: []string{"3"}}},
		{CmdAsk, Args{Positional: []string{"3", "why"}}},
		{CmdChat, Args{Positional: []string{"3"}}},
	}

	for _, tc := range cases {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			h := newHarness(t, "")
			err := h.run(tc.cmd, tc.args)
			assert.ErrorIs(t, err, ErrNotLoggedIn)
			assert.Equal(t, ExitAuthError, GetExitCode(err))
			assert.Zero(t, h.backend.calls)
		})
	}
}

func TestProjects_Table(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.projects = []model.Project{
		{ID: 1, Name: "api", Description: "backend"},
		{ID: 2, Name: "web"},
	}

	require.NoError(t, h.run(CmdProjects, Args{}))
	out := h.stdout.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "Ready")
	assert.Contains(t, out, "web")
}

func TestProjects_JSON(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.projects = []model.Project{{ID: 1, Name: "api"}}

	require.NoError(t, h.run(CmdProjects, Args{JSON: true}))

	var resp struct {
		Success bool          `json:"success"`
		Data    []ProjectJSON `json:"data"`
		Command string        `json:"command"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "projects", resp.Command)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "success", resp.Data[0].Status)
}

func TestProjects_AuthFailureLogsOut(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.err = authErr

	err := h.run(CmdProjects, Args{})
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.Equal(t, 1, h.session.logouts)
}

func TestProjects_ValidationErrorKeepsSession(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.err = &api.Error{Kind: api.KindNetwork, Op: "list projects", Message: "down"}

	err := h.run(CmdProjects, Args{})
	assert.Equal(t, ExitNetworkError, GetExitCode(err))
	assert.Zero(t, h.session.logouts)
}

func TestCreate(t *testing.T) {
	h := newHarness(t, "alice")
	require.NoError(t, h.run(CmdCreate, Args{Positional: []string{"my", "api"}, Description: "server"}))
	assert.Contains(t, h.stdout.String(), `Created project "my api" (id 9)`)
	assert.Contains(t, h.stdout.String(), "codehelp ingest 9")
}

func TestCreate_RequiresName(t *testing.T) {
	h := newHarness(t, "alice")
	err := h.run(CmdCreate, Args{Positional: []string{"  "}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Zero(t, h.backend.calls)
}

func TestIngest(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.projects = []model.Project{{ID: 1, Name: "web"}, {ID: 3, Name: "api-server"}}
	require.NoError(t, h.run(CmdIngest, Args{Positional: []string{"3", " /srv/src "}}))
	assert.Equal(t, "api-server", h.backend.ingestedAs)
	assert.Equal(t, "/srv/src", h.backend.ingested)
	assert.Contains(t, h.stdout.String(), "Ingestion started for /srv/src")
}

func TestIngest_UnknownProject(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.projects = []model.Project{{ID: 1, Name: "web"}}

	err := h.run(CmdIngest, Args{Positional: []string{"3", "/srv/src"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "project", verr.Field)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Empty(t, h.backend.ingested)
}

func TestIngest_BadArguments(t *testing.T) {
	h := newHarness(t, "alice")

	err := h.run(CmdIngest, Args{Positional: []string{"abc", "/src"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = h.run(CmdIngest, Args{Positional: []string{"3"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	assert.Zero(t, h.backend.calls)
}

func TestHistory(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.history = []model.Exchange{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}

	require.NoError(t, h.run(CmdHistory, Args{Positional: []string{"3"}, Raw: true}))
	out := h.stdout.String()
	assert.Less(t, strings.Index(out, "q1"), strings.Index(out, "a1"))
	assert.Less(t, strings.Index(out, "a1"), strings.Index(out, "q2"))
	assert.Less(t, strings.Index(out, "q2"), strings.Index(out, "a2"))
}

func TestAsk(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.answer = "It lives in main.go"

	require.NoError(t, h.run(CmdAsk, Args{Positional: []string{"3", "where", "is", "main?"}, Raw: true}))
	assert.Equal(t, []string{"where is main?"}, h.backend.questions)
	assert.Equal(t, "It lives in main.go\n", h.stdout.String())
}

func TestAsk_RequiresQuestion(t *testing.T) {
	h := newHarness(t, "alice")
	err := h.run(CmdAsk, Args{Positional: []string{"3", " "}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Zero(t, h.backend.calls)
}

// =============================================================================
// CHAT
// =============================================================================

func TestChat_Exchange(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.history = []model.Exchange{{Question: "old", Answer: "older"}}
	h.backend.answer = "fresh answer"
	reader := &scriptedReader{lines: []string{"", "new question", "/history", "exit"}}
	h.env.NewLineReader = func(string) (LineReader, error) { return reader, nil }

	require.NoError(t, h.run(CmdChat, Args{Positional: []string{"3"}, Raw: true}))

	assert.True(t, reader.closed)
	assert.Equal(t, []string{"new question"}, h.backend.questions)
	out := h.stdout.String()
	assert.Contains(t, out, "fresh answer")
	assert.Contains(t, out, "2 earlier messages")
	assert.Contains(t, out, "older")
}

func TestChat_FailedQuestionShowsFallback(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.err = &api.Error{Kind: api.KindNetwork, Op: "ask question", Message: "down"}
	reader := &scriptedReader{lines: []string{"why?"}}
	h.env.NewLineReader = func(string) (LineReader, error) { return reader, nil }

	require.NoError(t, h.run(CmdChat, Args{Positional: []string{"3"}, Raw: true, Quiet: true}))
	assert.Contains(t, h.stdout.String(), transcript.FallbackMessage)
	assert.Zero(t, h.session.logouts)
}

func TestChat_HistoryFailureStillChats(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.historyErr = &api.Error{Kind: api.KindNetwork, Op: "get project history", Message: "down"}
	h.backend.answer = "ok"
	reader := &scriptedReader{lines: []string{"hi", "/quit"}}
	h.env.NewLineReader = func(string) (LineReader, error) { return reader, nil }

	require.NoError(t, h.run(CmdChat, Args{Positional: []string{"3"}, Raw: true}))
	assert.Contains(t, h.stderr.String(), "Could not load the conversation")
	assert.Contains(t, h.stdout.String(), "ok")
}

func TestChat_AuthFailureEndsSession(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.err = authErr
	reader := &scriptedReader{lines: []string{"why?", "never read"}}
	h.env.NewLineReader = func(string) (LineReader, error) { return reader, nil }

	err := h.run(CmdChat, Args{Positional: []string{"3"}, Raw: true})
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.Equal(t, 1, h.session.logouts)
	assert.Equal(t, []string{"never read"}, reader.lines)
}

func TestChat_RejectsJSON(t *testing.T) {
	h := newHarness(t, "alice")
	err := h.run(CmdChat, Args{Positional: []string{"3"}, JSON: true})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CONFIG AND STATUS
// =============================================================================

func TestConfig_SetThenGet(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(CmdConfig, Args{Positional: []string{"set", "ui.theme", "light"}}))
	assert.Contains(t, h.stdout.String(), "ui.theme = light")

	loaded, err := config.LoadFromPath(h.env.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
}

func TestConfig_SetInvalid(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(CmdConfig, Args{Positional: []string{"set", "no.such_key", "1"}})
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	err = h.run(CmdConfig, Args{Positional: []string{"set", "ui.theme", "neon"}})
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestConfig_Get(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run(CmdConfig, Args{Positional: []string{"get", "api.base_url"}}))
	assert.Equal(t, config.DefaultBaseURL+"\n", h.stdout.String())
}

func TestConfig_UnknownSubcommand(t *testing.T) {
	h := newHarness(t, "")
	err := h.run(CmdConfig, Args{Positional: []string{"edit"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestStatus(t *testing.T) {
	h := newHarness(t, "alice")
	require.NoError(t, h.run(CmdStatus, Args{}))
	out := h.stdout.String()
	assert.Contains(t, out, "reachable")
	assert.Contains(t, out, "alice")
}

func TestStatus_Unreachable(t *testing.T) {
	h := newHarness(t, "")
	h.backend.healthErr = &api.Error{Kind: api.KindNetwork, Op: "health", Message: "connection refused"}

	err := h.run(CmdStatus, Args{JSON: true})
	assert.Equal(t, ExitNetworkError, GetExitCode(err))

	var resp struct {
		Data StatusInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &resp))
	assert.False(t, resp.Data.Server.Reachable)
	assert.False(t, resp.Data.LoggedIn)
	assert.Equal(t, "connection refused", resp.Data.Server.Error)
}

func TestRunTUI_PassesStartPath(t *testing.T) {
	h := newHarness(t, "alice")
	var got string
	h.env.RunTUI = func(_ context.Context, start string) error {
		got = start
		return nil
	}

	require.NoError(t, h.run(CmdTUI, Args{Positional: []string{"/projects/3"}}))
	assert.Equal(t, "/projects/3", got)
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExport_ToDirectory(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.projects = []model.Project{{ID: 3, Name: "api"}}
	h.backend.history = []model.Exchange{{Question: "q", Answer: "a"}}
	dir := t.TempDir()

	require.NoError(t, h.run(CmdExport, Args{Positional: []string{"3"}, Format: "md", Output: dir, Quiet: true}))

	path := strings.TrimSpace(h.stdout.String())
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "api_"))
}

func TestExport_Stdout(t *testing.T) {
	h := newHarness(t, "alice")
	h.backend.err = nil
	h.backend.history = []model.Exchange{{Question: "where?", Answer: "here"}}

	require.NoError(t, h.run(CmdExport, Args{Positional: []string{"3"}, Format: "json", Output: "-"}))
	assert.Contains(t, h.stdout.String(), `"question": "where?"`)
	assert.Contains(t, h.stdout.String(), `"project_id": 3`)
}

func TestExport_BadFormat(t *testing.T) {
	h := newHarness(t, "alice")
	err := h.run(CmdExport, Args{Positional: []string{"3"}, Format: "pdf"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Zero(t, h.backend.calls)
}

func TestConfig_ShowRaw(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run(CmdConfig, Args{Raw: true}))
	assert.Contains(t, h.stdout.String(), "[api]")
	assert.Contains(t, h.stdout.String(), config.DefaultBaseURL)
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	assert.Equal(t, 80, TerminalWidth(&bytes.Buffer{}))
}
