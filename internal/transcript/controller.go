// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/model"
)

// FallbackMessage replaces the answer when a question fails.
const FallbackMessage = "Sorry, I encountered an error. Please try again."

var (
	// ErrEmptyQuestion rejects blank input.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNotReady rejects input while loading or awaiting an answer.
	ErrNotReady = errors.New("chat is not ready for a question")
)

// Backend is the slice of the gateway the transcript needs.
type Backend interface {
	GetProjectHistory(ctx context.Context, projectID int64) ([]model.Exchange, error)
	AskQuestion(ctx context.Context, projectID int64, question string) (string, error)
}

// =============================================================================
// STATE
// =============================================================================

// State is the controller state.
type State int

const (
	StateIdle State = iota
	StateLoadingHistory
	StateReady
	StateAwaitingAnswer
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoadingHistory:
		return "LoadingHistory"
	case StateReady:
		return "Ready"
	case StateAwaitingAnswer:
		return "AwaitingAnswer"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns one project's transcript.
type Controller struct {
	backend   Backend
	projectID int64
	logger    *zap.Logger

	state    State
	messages []model.Message
	pending  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an idle controller for a project.
func New(backend Backend, projectID int64, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		projectID: projectID,
		logger:    zap.NewNop(),
		state:     StateIdle,
		messages:  []model.Message{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.Int64("project_id", projectID))
	return c
}

// ProjectID returns the project this transcript belongs to.
func (c *Controller) ProjectID() int64 {
	return c.projectID
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// InputEnabled reports whether the user may submit a question.
func (c *Controller) InputEnabled() bool {
	return c.state == StateReady
}

// Pending returns the question awaiting an answer, or "".
func (c *Controller) Pending() string {
	return c.pending
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []model.Message {
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Controller) Len() int {
	return len(c.messages)
}

// =============================================================================
// HISTORY
// =============================================================================

// BeginLoad moves Idle to LoadingHistory. It returns false in any other state.
func (c *Controller) BeginLoad() bool {
	if c.state != StateIdle {
		return false
	}
	c.state = StateLoadingHistory
	return true
}

// FetchHistory calls the backend without touching state.
func (c *Controller) FetchHistory(ctx context.Context) ([]model.Exchange, error) {
	return c.backend.GetProjectHistory(ctx, c.projectID)
}

// FinishLoad installs fetched history and moves to Ready. A fetch error is
// logged and leaves the transcript empty. It returns false unless loading.
func (c *Controller) FinishLoad(history []model.Exchange, err error) bool {
	if c.state != StateLoadingHistory {
		return false
	}
	if err != nil {
		c.logger.Warn("failed to load chat history", zap.Error(err))
		c.messages = []model.Message{}
	} else {
		c.messages = model.Flatten(history)
		c.logger.Debug("chat history loaded", zap.Int("exchanges", len(history)))
	}
	c.state = StateReady
	return true
}

// Load runs the full history transition synchronously.
func (c *Controller) Load(ctx context.Context) {
	if !c.BeginLoad() {
		return
	}
	history, err := c.FetchHistory(ctx)
	c.FinishLoad(history, err)
}

// =============================================================================
// QUESTIONS
// =============================================================================

// BeginSubmit validates input and, when accepted, appends the user message
// and moves to AwaitingAnswer. The returned question is input unchanged; the
// caller clears its input field and issues it. Rejected input changes nothing.
func (c *Controller) BeginSubmit(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyQuestion
	}
	if c.state != StateReady {
		return "", ErrNotReady
	}
	c.messages = append(c.messages, model.UserMessage(input))
	c.pending = input
	c.state = StateAwaitingAnswer
	return input, nil
}

// RequestAnswer calls the backend without touching state.
func (c *Controller) RequestAnswer(ctx context.Context, question string) (string, error) {
	return c.backend.AskQuestion(ctx, c.projectID, question)
}

// FinishAsk appends the answer, or FallbackMessage on error, and returns to
// Ready. It returns the appended message and false when not awaiting.
func (c *Controller) FinishAsk(answer string, err error) (model.Message, bool) {
	if c.state != StateAwaitingAnswer {
		return model.Message{}, false
	}

	msg := model.AssistantMessage(answer)
	if err != nil {
		c.logger.Warn("question failed", zap.Error(err))
		msg = model.AssistantMessage(FallbackMessage)
	}
	c.messages = append(c.messages, msg)
	c.pending = ""
	c.state = StateReady
	return msg, true
}

// Ask runs a full question exchange synchronously and returns the assistant
// message. Only rejected input produces an error; backend failures become
// the fallback message.
func (c *Controller) Ask(ctx context.Context, input string) (model.Message, error) {
	question, err := c.BeginSubmit(input)
	if err != nil {
		return model.Message{}, err
	}
	answer, askErr := c.RequestAnswer(ctx, question)
	msg, _ := c.FinishAsk(answer, askErr)
	return msg, nil
}
