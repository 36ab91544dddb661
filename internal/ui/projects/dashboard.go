// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projects provides the project dashboard and the ingestion form.
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
	"github.com/codehelp/codehelp-tui/internal/util"
)

// Backend is the slice of the gateway the dashboard needs.
type Backend interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name, description string) (model.Project, error)
}

const loadFailedMessage = "Failed to fetch projects. Please try again later."

// =============================================================================
// MESSAGES
// =============================================================================

type projectsLoadedMsg struct {
	projects []model.Project
	err      error
}

type projectCreatedMsg struct {
	project model.Project
	err     error
}

// IngestFinishedMsg reports the outcome of an ingestion so the dashboard can
// update the project's status.
type IngestFinishedMsg struct {
	ProjectID int64
	Status    model.ProjectStatus
}

// =============================================================================
// MODEL
// =============================================================================

type mode int

const (
	modeList mode = iota
	modeCreate
)

// Dashboard lists projects and creates new ones.
type Dashboard struct {
	ctx     context.Context
	theme   *styles.Theme
	keys    KeyMap
	backend Backend

	projects []model.Project
	// statuses are client-side annotations that outlive a reload.
	statuses map[int64]model.ProjectStatus
	cursor   int

	loading bool
	err     string
	notice  string
	spinner spinner.Model

	mode       mode
	createForm []textinput.Model
	createFoc  int
	creating   bool
	createErr  string

	width  int
	height int
}

// NewDashboard creates the dashboard.
func NewDashboard(ctx context.Context, theme *styles.Theme, backend Backend) *Dashboard {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Project name"
	name.CharLimit = 128

	desc := textinput.New()
	desc.Prompt = "> "
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    spinner.Line.FPS,
	}

	return &Dashboard{
		ctx:        ctx,
		theme:      theme,
		keys:       DefaultKeyMap(),
		backend:    backend,
		statuses:   map[int64]model.ProjectStatus{},
		spinner:    sp,
		createForm: []textinput.Model{name, desc},
	}
}

// Projects returns the listed projects.
func (d *Dashboard) Projects() []model.Project {
	out := make([]model.Project, len(d.projects))
	copy(out, d.projects)
	return out
}

// Project looks up a listed project by ID.
func (d *Dashboard) Project(id int64) (model.Project, bool) {
	for _, p := range d.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// SetNotice shows an informational line above the list.
func (d *Dashboard) SetNotice(notice string) {
	d.notice = notice
}

// Init implements nav.Screen; it (re)loads the project list.
func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	d.err = ""
	backend, ctx := d.backend, d.ctx
	return tea.Batch(d.spinner.Tick, func() tea.Msg {
		projects, err := backend.ListProjects(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	})
}

// SetSize implements nav.Screen.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	for i := range d.createForm {
		d.createForm[i].Width = max(20, width-10)
	}
}

// ShortHelp implements nav.Screen.
func (d *Dashboard) ShortHelp() []nav.Hint {
	if d.mode == modeCreate {
		return []nav.Hint{{Key: "Tab", Desc: "next field"}, {Key: "Enter", Desc: "create"}, {Key: "Esc", Desc: "cancel"}}
	}
	return []nav.Hint{
		{Key: "Enter", Desc: "chat"},
		{Key: "n", Desc: "new"},
		{Key: "i", Desc: "ingest"},
		{Key: "r", Desc: "refresh"},
	}
}

// Update implements nav.Screen.
func (d *Dashboard) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		d.loading = false
		if msg.err != nil {
			d.err = loadFailedMessage
			return d, nav.CheckAuth(msg.err)
		}
		d.projects = d.annotate(msg.projects)
		d.clampCursor()
		return d, nil

	case projectCreatedMsg:
		d.creating = false
		if msg.err != nil {
			d.createErr = "Failed to create project: " + api.Message(msg.err)
			return d, nav.CheckAuth(msg.err)
		}
		d.statuses[msg.project.ID] = model.StatusPending
		d.projects = append(d.projects, msg.project)
		d.cursor = len(d.projects) - 1
		d.closeCreate()
		d.notice = fmt.Sprintf("Created %q. Press i to ingest its source.", msg.project.Name)
		return d, nil

	case IngestFinishedMsg:
		d.statuses[msg.ProjectID] = msg.Status
		for i := range d.projects {
			if d.projects[i].ID == msg.ProjectID {
				d.projects[i].Status = msg.Status
			}
		}
		return d, nil

	case spinner.TickMsg:
		if !d.loading && !d.creating {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if d.mode == modeCreate {
			return d.updateCreate(msg)
		}
		return d.updateList(msg)
	}

	if d.mode == modeCreate {
		var cmd tea.Cmd
		d.createForm[d.createFoc], cmd = d.createForm[d.createFoc].Update(msg)
		return d, cmd
	}
	return d, nil
}

// annotate applies the client-side status to listed projects. Listed
// projects are ready unless this client has recorded otherwise.
func (d *Dashboard) annotate(projects []model.Project) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if status, ok := d.statuses[p.ID]; ok {
			p.Status = status
		} else {
			p.Status = model.StatusSuccess
		}
		out = append(out, p)
	}
	return out
}

func (d *Dashboard) clampCursor() {
	if d.cursor >= len(d.projects) {
		d.cursor = len(d.projects) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *Dashboard) selected() (model.Project, bool) {
	if d.cursor < 0 || d.cursor >= len(d.projects) {
		return model.Project{}, false
	}
	return d.projects[d.cursor], true
}

func (d *Dashboard) updateList(msg tea.KeyMsg) (nav.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, d.keys.Down):
		if d.cursor < len(d.projects)-1 {
			d.cursor++
		}
	case key.Matches(msg, d.keys.Open):
		if p, ok := d.selected(); ok {
			return d, nav.Navigate(router.Chat(p.ID).Path())
		}
	case key.Matches(msg, d.keys.Ingest):
		if p, ok := d.selected(); ok {
			return d, nav.Navigate(router.Ingest(p.ID).Path())
		}
	case key.Matches(msg, d.keys.New):
		return d, d.openCreate()
	case key.Matches(msg, d.keys.Refresh):
		if !d.loading {
			d.notice = ""
			return d, d.Init()
		}
	}
	return d, nil
}

func (d *Dashboard) openCreate() tea.Cmd {
	d.mode = modeCreate
	d.createErr = ""
	d.createFoc = 0
	for i := range d.createForm {
		d.createForm[i].Reset()
		d.createForm[i].Blur()
	}
	d.createForm[0].Focus()
	return textinput.Blink
}

func (d *Dashboard) closeCreate() {
	d.mode = modeList
	for i := range d.createForm {
		d.createForm[i].Blur()
	}
}

func (d *Dashboard) updateCreate(msg tea.KeyMsg) (nav.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Cancel):
		if !d.creating {
			d.closeCreate()
		}
		return d, nil

	case key.Matches(msg, d.keys.Next):
		d.createForm[d.createFoc].Blur()
		d.createFoc = (d.createFoc + 1) % len(d.createForm)
		d.createForm[d.createFoc].Focus()
		return d, textinput.Blink

	case key.Matches(msg, d.keys.Open):
		return d, d.submitCreate()
	}

	if d.creating {
		return d, nil
	}
	var cmd tea.Cmd
	d.createForm[d.createFoc], cmd = d.createForm[d.createFoc].Update(msg)
	return d, cmd
}

func (d *Dashboard) submitCreate() tea.Cmd {
	if d.creating {
		return nil
	}
	name := strings.TrimSpace(d.createForm[0].Value())
	description := strings.TrimSpace(d.createForm[1].Value())
	if name == "" {
		d.createErr = "Project name cannot be empty."
		return nil
	}

	d.creating = true
	d.createErr = ""
	backend, ctx := d.backend, d.ctx
	return tea.Batch(d.spinner.Tick, func() tea.Msg {
		project, err := backend.CreateProject(ctx, name, description)
		return projectCreatedMsg{project: project, err: err}
	})
}

// View implements nav.Screen.
func (d *Dashboard) View() string {
	t := d.theme
	var b strings.Builder

	b.WriteString(t.FormTitle.Render("Projects"))
	b.WriteString("\n")

	if d.notice != "" {
		b.WriteString(t.FormSuccess.Render(d.notice))
		b.WriteString("\n\n")
	}

	switch {
	case d.loading && len(d.projects) == 0:
		b.WriteString(d.spinner.View() + " " + t.Muted.Render("Loading projects..."))
	case d.err != "":
		b.WriteString(t.FormError.Render(d.err))
	case len(d.projects) == 0:
		b.WriteString(t.Muted.Render("No projects yet. Press n to create one."))
	default:
		for i, p := range d.projects {
			line := fmt.Sprintf("%s  %s", util.TruncateWidth(p.Name, 48), t.StatusBadge(p.Status))
			if i == d.cursor {
				b.WriteString(t.ProjectItemSelected.Render(line))
			} else {
				b.WriteString(t.ProjectItem.Render(line))
			}
			b.WriteString("\n")
			if p.Description != "" {
				b.WriteString(t.ProjectDesc.Render(util.TruncateWidth(util.OneLine(p.Description), max(20, d.width-8))))
				b.WriteString("\n")
			}
		}
	}

	if d.mode == modeCreate {
		b.WriteString("\n\n")
		b.WriteString(d.viewCreate())
	}
	return b.String()
}

func (d *Dashboard) viewCreate() string {
	t := d.theme
	var b strings.Builder
	b.WriteString(t.FormTitle.Render("New project"))
	b.WriteString("\n")
	b.WriteString(t.FormLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(d.createForm[0].View())
	b.WriteString("\n\n")
	b.WriteString(t.FormLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(d.createForm[1].View())
	if d.creating {
		b.WriteString("\n\n")
		b.WriteString(d.spinner.View() + " " + t.FormHint.Render("Creating..."))
	}
	if d.createErr != "" {
		b.WriteString("\n\n")
		b.WriteString(t.FormError.Render(d.createErr))
	}
	return t.FormBox.Render(b.String())
}
