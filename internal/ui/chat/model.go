// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/transcript"
	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/render"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

// ThinkingText is shown while an answer is pending.
const ThinkingText = "Thinking..."

// chromeLines is the number of rows outside the viewport.
const chromeLines = 4

var generations atomic.Uint64

// =============================================================================
// MESSAGES
// =============================================================================

type historyLoadedMsg struct {
	gen     uint64
	history []model.Exchange
	err     error
}

type answerMsg struct {
	gen    uint64
	answer string
	err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a chat screen.
type Options struct {
	// Name is the project name shown in the title.
	Name string
	// Renderer renders assistant answers. Nil renders plain text.
	Renderer *render.Renderer
	Logger   *zap.Logger
}

// Model is the chat screen for one project.
type Model struct {
	ctx      context.Context
	theme    *styles.Theme
	keys     KeyMap
	ctrl     *transcript.Controller
	renderer *render.Renderer
	logger   *zap.Logger
	name     string
	gen      uint64

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
}

// New creates the chat screen for a project.
func New(ctx context.Context, theme *styles.Theme, backend transcript.Backend, projectID int64, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New(theme.IsDark, false, 80)
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Ask a question about this project"
	in.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.ThinkingText

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return &Model{
		ctx:      ctx,
		theme:    theme,
		keys:     DefaultKeyMap(),
		ctrl:     transcript.New(backend, projectID, transcript.WithLogger(logger)),
		renderer: renderer,
		logger:   logger,
		name:     opts.Name,
		gen:      generations.Add(1),
		viewport: vp,
		input:    in,
		spinner:  sp,
	}
}

// Controller exposes the transcript state.
func (m *Model) Controller() *transcript.Controller {
	return m.ctrl
}

// ProjectID returns the project this screen is bound to.
func (m *Model) ProjectID() int64 {
	return m.ctrl.ProjectID()
}

// Init implements nav.Screen; it starts the history load.
func (m *Model) Init() tea.Cmd {
	if !m.ctrl.BeginLoad() {
		return nil
	}
	ctrl, ctx, gen := m.ctrl, m.ctx, m.gen
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		history, err := ctrl.FetchHistory(ctx)
		return historyLoadedMsg{gen: gen, history: history, err: err}
	})
}

// SetSize implements nav.Screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-chromeLines)
	m.input.Width = max(10, width-4)
	m.renderer.SetWidth(width - 6)
	m.refresh()
}

// ShortHelp implements nav.Screen.
func (m *Model) ShortHelp() []nav.Hint {
	return nav.Hints(m.keys.ShortHelp()...)
}

// Update implements nav.Screen.
func (m *Model) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if !m.ctrl.FinishLoad(msg.history, msg.err) {
			return m, nil
		}
		m.refresh()
		return m, tea.Batch(m.enableInput(), nav.CheckAuth(msg.err))

	case answerMsg:
		if msg.gen != m.gen {
			m.logger.Debug("dropping stale answer")
			return m, nil
		}
		if _, ok := m.ctrl.FinishAsk(msg.answer, msg.err); !ok {
			return m, nil
		}
		m.refresh()
		return m, tea.Batch(m.enableInput(), nav.CheckAuth(msg.err))

	case spinner.TickMsg:
		if m.ctrl.State() != transcript.StateLoadingHistory && m.ctrl.State() != transcript.StateAwaitingAnswer {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.ctrl.InputEnabled() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (nav.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, nav.Navigate(router.PathProjects)
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	if !m.ctrl.InputEnabled() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit appends the question and issues it. Blank input and input while
// busy are ignored.
func (m *Model) submit() tea.Cmd {
	question, err := m.ctrl.BeginSubmit(m.input.Value())
	if err != nil {
		return nil
	}
	m.input.Reset()
	m.input.Blur()
	m.refresh()

	ctrl, ctx, gen := m.ctrl, m.ctx, m.gen
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		answer, err := ctrl.RequestAnswer(ctx, question)
		return answerMsg{gen: gen, answer: answer, err: err}
	})
}

func (m *Model) enableInput() tea.Cmd {
	if !m.ctrl.InputEnabled() {
		return nil
	}
	m.input.Focus()
	return textinput.Blink
}

// refresh re-renders the transcript and keeps the newest message in view.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript() string {
	t := m.theme
	messages := m.ctrl.Messages()
	if len(messages) == 0 {
		if m.ctrl.State() == transcript.StateReady {
			return t.Muted.Render("No questions yet. Ask anything about this project's code.")
		}
		return ""
	}

	bubbleWidth := max(20, m.viewport.Width-4)
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg.IsUser {
			parts = append(parts,
				t.UserLabel.Render(msg.Author())+"\n"+
					t.UserBubble.Width(bubbleWidth).Render(msg.Text))
			continue
		}
		parts = append(parts,
			t.AssistantLabel.Render(msg.Author())+"\n"+
				t.AssistantBubble.Width(bubbleWidth).Render(m.renderer.Render(msg.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// View implements nav.Screen.
func (m *Model) View() string {
	t := m.theme
	title := m.name
	if title == "" {
		title = fmt.Sprintf("Project %d", m.ctrl.ProjectID())
	}

	var status string
	switch m.ctrl.State() {
	case transcript.StateLoadingHistory:
		status = m.spinner.View() + " " + t.ThinkingText.Render("Loading conversation...")
	case transcript.StateAwaitingAnswer:
		status = m.spinner.View() + " " + t.ThinkingText.Render(ThinkingText)
	}

	input := m.input.View()
	if !m.ctrl.InputEnabled() {
		input = t.Muted.Render("> " + m.input.Placeholder)
	}

	return strings.Join([]string{
		t.FormTitle.Render(title),
		m.viewport.View(),
		status,
		input,
	}, "\n")
}
