// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehelp/codehelp-tui/internal/model"
)

type fakeBackend struct {
	history    []model.Exchange
	historyErr error
	answer     string
	askErr     error

	historyCalls int
	askCalls     int
	questions    []string
}

func (f *fakeBackend) GetProjectHistory(ctx context.Context, projectID int64) ([]model.Exchange, error) {
	f.historyCalls++
	return f.history, f.historyErr
}

func (f *fakeBackend) AskQuestion(ctx context.Context, projectID int64, question string) (string, error) {
	f.askCalls++
	f.questions = append(f.questions, question)
	return f.answer, f.askErr
}

func readyController(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	c := New(backend, 7)
	c.Load(context.Background())
	require.Equal(t, StateReady, c.State())
	return c
}

func TestLoad_FlattensHistoryInOrder(t *testing.T) {
	backend := &fakeBackend{history: []model.Exchange{
		{Question: "A", Answer: "B"},
		{Question: "C", Answer: "D"},
	}}
	c := New(backend, 7)
	assert.Equal(t, StateIdle, c.State())

	c.Load(context.Background())

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, []model.Message{
		{Text: "A", IsUser: true},
		{Text: "B", IsUser: false},
		{Text: "C", IsUser: true},
		{Text: "D", IsUser: false},
	}, c.Messages())
}

func TestLoad_FailureIsSwallowed(t *testing.T) {
	c := New(&fakeBackend{historyErr: errors.New("connection refused")}, 7)

	c.Load(context.Background())

	assert.Equal(t, StateReady, c.State())
	assert.Empty(t, c.Messages())
	assert.NotNil(t, c.Messages())
	assert.True(t, c.InputEnabled())
}

func TestLoad_OnlyFromIdle(t *testing.T) {
	backend := &fakeBackend{}
	c := readyController(t, backend)

	c.Load(context.Background())
	assert.Equal(t, 1, backend.historyCalls)
	assert.False(t, c.BeginLoad())
}

func TestStepwiseLoad(t *testing.T) {
	c := New(&fakeBackend{}, 7)
	require.True(t, c.BeginLoad())
	assert.Equal(t, StateLoadingHistory, c.State())
	assert.False(t, c.InputEnabled(), "input disabled while loading")

	assert.True(t, c.FinishLoad([]model.Exchange{{Question: "q", Answer: "a"}}, nil))
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.FinishLoad(nil, nil), "second finish is ignored")
}

func TestAsk_Success(t *testing.T) {
	backend := &fakeBackend{answer: "It parses flags."}
	c := readyController(t, backend)

	msg, err := c.Ask(context.Background(), "what does main do?")
	require.NoError(t, err)

	assert.Equal(t, model.AssistantMessage("It parses flags."), msg)
	assert.Equal(t, []model.Message{
		model.UserMessage("what does main do?"),
		model.AssistantMessage("It parses flags."),
	}, c.Messages())
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, []string{"what does main do?"}, backend.questions)
}

func TestAsk_FailureAppendsFallback(t *testing.T) {
	backend := &fakeBackend{askErr: errors.New("502 Bad Gateway")}
	c := readyController(t, backend)
	before := c.Len()

	msg, err := c.Ask(context.Background(), "why?")
	require.NoError(t, err)

	assert.Equal(t, FallbackMessage, msg.Text)
	assert.False(t, msg.IsUser)
	assert.Equal(t, before+2, c.Len(), "user message plus exactly one assistant message")
	assert.Equal(t, model.AssistantMessage(FallbackMessage), c.Messages()[c.Len()-1])
	assert.Equal(t, StateReady, c.State())
	assert.True(t, c.InputEnabled())
}

func TestAsk_RejectsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		backend := &fakeBackend{history: []model.Exchange{{Question: "A", Answer: "B"}}}
		c := readyController(t, backend)
		before := c.Messages()

		_, err := c.Ask(context.Background(), input)

		assert.ErrorIs(t, err, ErrEmptyQuestion)
		assert.Equal(t, before, c.Messages())
		assert.Equal(t, 0, backend.askCalls)
		assert.Equal(t, StateReady, c.State())
	}
}

func TestBeginSubmit_OneInFlight(t *testing.T) {
	c := readyController(t, &fakeBackend{})

	q, err := c.BeginSubmit("first")
	require.NoError(t, err)
	assert.Equal(t, "first", q)
	assert.Equal(t, StateAwaitingAnswer, c.State())
	assert.False(t, c.InputEnabled())
	assert.Equal(t, "first", c.Pending())

	_, err = c.BeginSubmit("second")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 1, c.Len())

	_, ok := c.FinishAsk("answer", nil)
	assert.True(t, ok)
	assert.Empty(t, c.Pending())
	_, ok = c.FinishAsk("late", nil)
	assert.False(t, ok, "stale answer is ignored")
	assert.Equal(t, 2, c.Len())
}

func TestBeginSubmit_KeepsInputVerbatim(t *testing.T) {
	c := readyController(t, &fakeBackend{})
	q, err := c.BeginSubmit("  indented question  ")
	require.NoError(t, err)
	assert.Equal(t, "  indented question  ", q)
	assert.Equal(t, "  indented question  ", c.Messages()[0].Text)
}

func TestBeginSubmit_BeforeLoad(t *testing.T) {
	c := New(&fakeBackend{}, 7)
	_, err := c.BeginSubmit("hello")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 0, c.Len())
}

func TestMessages_ReturnsCopy(t *testing.T) {
	c := readyController(t, &fakeBackend{history: []model.Exchange{{Question: "A", Answer: "B"}}})
	msgs := c.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, "A", c.Messages()[0].Text)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "AwaitingAnswer", StateAwaitingAnswer.String())
	assert.Equal(t, "State(9)", State(9).String())
}
