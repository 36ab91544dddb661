// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codehelp/codehelp-tui/internal/api"
	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/ui/nav"
	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

// Ingester starts ingestion of a project's source directory. The backend
// addresses the project by name, so the form can also list projects to
// resolve a name it was not given.
type Ingester interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	IngestProject(ctx context.Context, projectName, directory string) (*api.IngestResult, error)
}

const (
	emptyDirectoryMessage  = "Directory path cannot be empty."
	unknownProjectMessage  = "Project not found. Go back to the projects list and try again."
	resolvingProjectNotice = "Looking up project..."
)

type ingestResultMsg struct {
	result *api.IngestResult
	err    error
}

type projectResolvedMsg struct {
	name string
	err  error
}

// Ingest asks for a server-side directory and submits it for ingestion.
type Ingest struct {
	ctx       context.Context
	theme     *styles.Theme
	keys      KeyMap
	ingester  Ingester
	projectID int64
	name      string

	input   textinput.Model
	spinner spinner.Model

	loading   bool
	resolving bool
	message   string
	err     string

	width  int
	height int
}

// NewIngest creates the ingestion form for a project. name may be empty
// when the project has not been listed yet.
func NewIngest(ctx context.Context, theme *styles.Theme, ingester Ingester, projectID int64, name string) *Ingest {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "/path/to/source on the server"
	in.CharLimit = 1024
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Line

	return &Ingest{
		ctx:       ctx,
		theme:     theme,
		keys:      DefaultKeyMap(),
		ingester:  ingester,
		projectID: projectID,
		name:      name,
		input:     in,
		spinner:   sp,
	}
}

// ProjectID returns the project being ingested.
func (m *Ingest) ProjectID() int64 {
	return m.projectID
}

// Loading reports whether an ingestion request is in flight.
func (m *Ingest) Loading() bool {
	return m.loading
}

// Init implements nav.Screen.
func (m *Ingest) Init() tea.Cmd {
	if m.name != "" {
		return textinput.Blink
	}
	m.resolving = true
	ingester, ctx, id := m.ingester, m.ctx, m.projectID
	return tea.Batch(textinput.Blink, func() tea.Msg {
		list, err := ingester.ListProjects(ctx)
		if err != nil {
			return projectResolvedMsg{err: err}
		}
		for _, p := range list {
			if p.ID == id {
				return projectResolvedMsg{name: p.Name}
			}
		}
		return projectResolvedMsg{}
	})
}

// SetSize implements nav.Screen.
func (m *Ingest) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-10)
}

// ShortHelp implements nav.Screen.
func (m *Ingest) ShortHelp() []nav.Hint {
	return []nav.Hint{
		{Key: "Enter", Desc: "ingest"},
		{Key: "Esc", Desc: "back to projects"},
	}
}

// Update implements nav.Screen.
func (m *Ingest) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case projectResolvedMsg:
		m.resolving = false
		if msg.err != nil {
			m.err = api.Message(msg.err)
			return m, nav.CheckAuth(msg.err)
		}
		if msg.name == "" {
			m.err = unknownProjectMessage
			return m, nil
		}
		m.name = msg.name
		return m, nil

	case ingestResultMsg:
		m.loading = false
		id := m.projectID
		if msg.err != nil {
			m.err = api.Message(msg.err)
			return m, tea.Batch(
				finished(id, model.StatusFailed),
				nav.CheckAuth(msg.err),
			)
		}
		m.message = msg.result.Message
		notice := msg.result.Message
		if notice == "" {
			notice = "Ingestion started."
		}
		return m, tea.Batch(
			finished(id, model.StatusSuccess),
			nav.NavigateWithNotice(router.PathProjects, notice),
		)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, nav.Navigate(router.PathProjects)
		case key.Matches(msg, m.keys.Open):
			return m, m.submit()
		}
		if m.loading {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func finished(id int64, status model.ProjectStatus) tea.Cmd {
	return func() tea.Msg {
		return IngestFinishedMsg{ProjectID: id, Status: status}
	}
}

func (m *Ingest) submit() tea.Cmd {
	if m.loading || m.resolving {
		return nil
	}
	if m.name == "" {
		m.err = unknownProjectMessage
		m.message = ""
		return nil
	}
	directory := strings.TrimSpace(m.input.Value())
	if directory == "" {
		m.err = emptyDirectoryMessage
		m.message = ""
		return nil
	}

	m.loading = true
	m.err = ""
	m.message = ""
	ingester, ctx, name := m.ingester, m.ctx, m.name
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := ingester.IngestProject(ctx, name, directory)
		return ingestResultMsg{result: result, err: err}
	})
}

// View implements nav.Screen.
func (m *Ingest) View() string {
	t := m.theme
	title := fmt.Sprintf("Ingest project %d", m.projectID)
	if m.name != "" {
		title = "Ingest " + m.name
	}

	var b strings.Builder
	b.WriteString(t.FormTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(t.FormLabel.Render("Source directory"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.resolving {
		b.WriteString(t.FormHint.Render(resolvingProjectNotice))
	} else if m.loading {
		b.WriteString(m.spinner.View() + " " + t.FormHint.Render("Ingesting..."))
	} else {
		b.WriteString(t.FormHint.Render("Press Enter to ingest"))
	}
	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(t.FormSuccess.Render(m.message))
	}
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(t.FormError.Render(m.err))
	}
	return t.FormBox.Render(b.String())
}
