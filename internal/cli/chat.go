// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/transcript"
)

const (
	chatUsage          = "codehelp chat ID"
	transcriptThinking = "Thinking..."
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads REPL input.
type LineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a line editor backed by historyFile. An empty path
// keeps history in memory only.
func NewChatCLI(historyFile string) (LineReader, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c, nil
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// chatSession is the state of one interactive chat.
type chatSession struct {
	env        *Env
	args       Args
	controller *transcript.Controller
	printer    *answerPrinter
	projectID  int64
}

func runChat(ctx context.Context, env *Env, args Args) error {
	id, err := projectArg(args, 0, chatUsage)
	if err != nil {
		return err
	}
	if err := requireAuth(env, router.Chat(id)); err != nil {
		return err
	}
	if args.JSON {
		return &ValidationError{Field: "flags", Reason: "--json is not supported for interactive chat", Example: "codehelp ask ID QUESTION --json"}
	}

	s := &chatSession{
		env:  env,
		args: args,
		controller: transcript.New(env.Backend, id,
			transcript.WithLogger(env.logger().Named("transcript"))),
		printer:   newAnswerPrinter(env, args),
		projectID: id,
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	newReader := env.NewLineReader
	if newReader == nil {
		newReader = NewChatCLI
	}
	reader, err := newReader(historyFile(env.Config))
	if err != nil {
		return NewCommandError("chat", "start", "could not open the line editor", err)
	}
	defer reader.Close()

	if !args.Quiet {
		s.printWelcome()
	}

	for {
		input, err := reader.ReadInput(PromptStyle.Render(fmt.Sprintf("project %d> ", id)))
		if err != nil {
			// Ctrl+C, Ctrl+D and closed input all end the session.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				env.logger().Debug("chat input ended", zap.Error(err))
			}
			fmt.Fprintln(env.Stdout)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			if !s.slashCommand(input) {
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		if err := s.ask(ctx, input); err != nil {
			return err
		}
	}
}

// load fetches the transcript. A rejected credential ends the session;
// other failures leave an empty transcript.
func (s *chatSession) load(ctx context.Context) error {
	if !s.controller.BeginLoad() {
		return nil
	}
	history, err := s.controller.FetchHistory(ctx)
	s.controller.FinishLoad(history, err)
	if err != nil {
		if api.IsAuth(err) {
			return checkAuth(s.env, err)
		}
		fmt.Fprintf(s.env.Stderr, "%s %s\n", WarningStyle.Render("[WARN]"), "Could not load the conversation: "+api.Message(err))
	}
	return nil
}

// ask runs one exchange. Backend failures print the fallback answer; a
// rejected credential ends the session.
func (s *chatSession) ask(ctx context.Context, input string) error {
	question, err := s.controller.BeginSubmit(input)
	if err != nil {
		return nil
	}
	if !s.args.Quiet {
		fmt.Fprintln(s.env.Stderr, DimStyle.Render(transcriptThinking))
	}
	answer, askErr := s.controller.RequestAnswer(ctx, question)
	msg, _ := s.controller.FinishAsk(answer, askErr)
	if api.IsAuth(askErr) {
		return checkAuth(s.env, askErr)
	}
	s.printer.answer(msg.Text)
	return nil
}

// slashCommand handles a /command. It returns false to end the session.
func (s *chatSession) slashCommand(input string) bool {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/q", "/exit":
		return false
	case "/history":
		s.printHistory()
	case "/help", "/h":
		s.printHelp()
	default:
		fmt.Fprintf(s.env.Stderr, "%s unknown command %s (try /help)\n", WarningStyle.Render("[WARN]"), fields[0])
	}
	return true
}

func (s *chatSession) printWelcome() {
	fmt.Fprintln(s.env.Stdout, TitleStyle.Render(fmt.Sprintf("Chat about project %d", s.projectID)))
	if n := s.controller.Len(); n > 0 {
		fmt.Fprintln(s.env.Stdout, DimStyle.Render(fmt.Sprintf("%d earlier messages. Type /history to show them.", n)))
	}
	fmt.Fprintln(s.env.Stdout, DimStyle.Render("Type /help for commands, exit to leave."))
	fmt.Fprintln(s.env.Stdout)
}

func (s *chatSession) printHelp() {
	fmt.Fprintln(s.env.Stdout, "Commands:")
	fmt.Fprintln(s.env.Stdout, "  /history      Show this project's conversation")
	fmt.Fprintln(s.env.Stdout, "  /help, /h     Show this help")
	fmt.Fprintln(s.env.Stdout, "  /quit, /q     Leave the chat (also: exit, quit, Ctrl+D)")
}

func (s *chatSession) printHistory() {
	msgs := s.controller.Messages()
	if len(msgs) == 0 {
		fmt.Fprintln(s.env.Stdout, DimStyle.Render("No questions asked yet."))
		return
	}
	for i, msg := range msgs {
		if i > 0 && msg.IsUser {
			fmt.Fprintln(s.env.Stdout, RenderSeparator())
		}
		s.printer.message(msg)
	}
}
