// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/codehelp/codehelp-tui/internal/config"
	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/ui/render"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

const askUsage = `codehelp ask ID "question"`

func runAsk(ctx context.Context, env *Env, args Args) error {
	id, err := projectArg(args, 0, askUsage)
	if err != nil {
		return err
	}
	if err := requireAuth(env, router.Chat(id)); err != nil {
		return err
	}
	question := strings.Join(args.Positional[1:], " ")
	if strings.TrimSpace(question) == "" {
		return ErrMissingArgument("question", askUsage)
	}

	answer, err := env.Backend.AskQuestion(ctx, id, question)
	if err != nil {
		return checkAuth(env, err)
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "ask", map[string]interface{}{
			"project_id": id,
			"question":   question,
			"answer":     answer,
		})
	}
	newAnswerPrinter(env, args).answer(answer)
	return nil
}

// =============================================================================
// ANSWER OUTPUT
// =============================================================================

// answerPrinter writes transcript messages, rendering assistant text when
// the output is a color terminal.
type answerPrinter struct {
	env      *Env
	renderer *render.Renderer
	labels   bool
}

func newAnswerPrinter(env *Env, args Args) *answerPrinter {
	p := &answerPrinter{env: env, labels: !args.Quiet}
	if args.Raw || !ColorsEnabled() {
		return p
	}
	markdown := true
	dark := true
	if env.Config != nil {
		markdown = env.Config.UI.RenderMarkdown
		dark = env.Config.UI.Theme != styles.ModeLight
	}
	p.renderer = render.New(dark, markdown, TerminalWidth(env.Stdout))
	return p
}

func (p *answerPrinter) format(text string) string {
	if p.renderer == nil {
		return text
	}
	return p.renderer.Render(text)
}

// answer writes a bare assistant reply.
func (p *answerPrinter) answer(text string) {
	fmt.Fprintln(p.env.Stdout, p.format(text))
}

// message writes one transcript entry with its author label.
func (p *answerPrinter) message(msg model.Message) {
	if !p.labels {
		if msg.IsUser {
			fmt.Fprintf(p.env.Stdout, "> %s\n", msg.Text)
		} else {
			p.answer(msg.Text)
		}
		return
	}
	if msg.IsUser {
		fmt.Fprintf(p.env.Stdout, "%s %s\n", UserStyle.Render(msg.Author()+":"), msg.Text)
		return
	}
	fmt.Fprintln(p.env.Stdout, AssistantStyle.Render(msg.Author()+":"))
	p.answer(msg.Text)
}

// historyFile returns the chat line history path from config.
func historyFile(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.UI.HistoryFile
}
