// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/router"
	"github.com/codehelp/codehelp-tui/internal/util"
)

const (
	createUsage  = `codehelp create NAME [-d "description"]`
	ingestUsage  = "codehelp ingest ID DIRECTORY"
	historyUsage = "codehelp history ID"

	descriptionWidth = 48
)

func runProjects(ctx context.Context, env *Env, args Args) error {
	if err := requireAuth(env, router.Projects()); err != nil {
		return err
	}
	projects, err := env.Backend.ListProjects(ctx)
	if err != nil {
		return checkAuth(env, err)
	}
	for i := range projects {
		if projects[i].Status == "" {
			projects[i].Status = model.StatusSuccess
		}
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "projects", projectList(projects))
	}
	if len(projects) == 0 {
		if !args.Quiet {
			fmt.Fprintln(env.Stdout, DimStyle.Render("No projects yet. Create one with 'codehelp create NAME'."))
		}
		return nil
	}
	if args.Quiet {
		for _, p := range projects {
			fmt.Fprintf(env.Stdout, "%d\t%s\n", p.ID, p.Name)
		}
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDESCRIPTION")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Status.Label(),
			util.TruncateWidth(p.Description, descriptionWidth))
	}
	return tw.Flush()
}

// ProjectJSON is the JSON shape of a project.
type ProjectJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func projectJSON(p model.Project) ProjectJSON {
	return ProjectJSON{ID: p.ID, Name: p.Name, Description: p.Description, Status: p.Status.String()}
}

func projectList(projects []model.Project) []ProjectJSON {
	out := make([]ProjectJSON, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectJSON(p))
	}
	return out
}

func runCreate(ctx context.Context, env *Env, args Args) error {
	if err := requireAuth(env, router.Projects()); err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(args.Positional, " "))
	if name == "" {
		return ErrMissingArgument("name", createUsage)
	}

	project, err := env.Backend.CreateProject(ctx, name, args.Description)
	if err != nil {
		return checkAuth(env, err)
	}
	project.Status = model.StatusPending

	if args.JSON {
		return OutputJSON(env.Stdout, "create", projectJSON(project))
	}
	if args.Quiet {
		fmt.Fprintln(env.Stdout, project.ID)
		return nil
	}
	fmt.Fprintf(env.Stdout, "%s Created project %q (id %d)\n", SuccessStyle.Render("[OK]"), project.Name, project.ID)
	fmt.Fprintln(env.Stdout, DimStyle.Render(fmt.Sprintf("Ingest its source with 'codehelp ingest %d DIRECTORY'.", project.ID)))
	return nil
}

func runIngest(ctx context.Context, env *Env, args Args) error {
	id, err := projectArg(args, 0, ingestUsage)
	if err != nil {
		return err
	}
	if err := requireAuth(env, router.Ingest(id)); err != nil {
		return err
	}
	if len(args.Positional) < 2 || strings.TrimSpace(args.Positional[1]) == "" {
		return ErrMissingArgument("directory", ingestUsage)
	}
	dir := strings.TrimSpace(args.Positional[1])

	// Ingestion is addressed by name; an unknown name would create a project.
	project, found, err := lookupProject(ctx, env, id)
	if err != nil {
		return checkAuth(env, err)
	}
	if !found {
		return &ValidationError{
			Field:   "project",
			Value:   strconv.FormatInt(id, 10),
			Reason:  "no such project",
			Example: "codehelp projects",
		}
	}

	if !args.Quiet && !args.JSON {
		fmt.Fprintln(env.Stderr, DimStyle.Render("Ingesting "+dir+" into "+project.Name+"..."))
	}
	result, err := env.Backend.IngestProject(ctx, project.Name, dir)
	if err != nil {
		return checkAuth(env, err)
	}

	message := "Ingestion started."
	status := ""
	if result != nil {
		if result.Message != "" {
			message = result.Message
		}
		status = result.Status
	}

	if args.JSON {
		return OutputJSON(env.Stdout, "ingest", map[string]interface{}{
			"project_id": id,
			"project":    project.Name,
			"directory":  dir,
			"message":    message,
			"status":     status,
		})
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("[OK]"), message)
	}
	return nil
}

func runHistory(ctx context.Context, env *Env, args Args) error {
	id, err := projectArg(args, 0, historyUsage)
	if err != nil {
		return err
	}
	if err := requireAuth(env, router.Chat(id)); err != nil {
		return err
	}
	history, err := env.Backend.GetProjectHistory(ctx, id)
	if err != nil {
		return checkAuth(env, err)
	}

	if args.JSON {
		if history == nil {
			history = []model.Exchange{}
		}
		return OutputJSON(env.Stdout, "history", map[string]interface{}{
			"project_id": id,
			"exchanges":  history,
		})
	}
	if len(history) == 0 {
		if !args.Quiet {
			fmt.Fprintln(env.Stdout, DimStyle.Render("No questions asked yet."))
		}
		return nil
	}

	printer := newAnswerPrinter(env, args)
	for i, msg := range model.Flatten(history) {
		if i > 0 && msg.IsUser {
			fmt.Fprintln(env.Stdout, RenderSeparator())
		}
		printer.message(msg)
	}
	return nil
}

// lookupProject finds a listed project by id.
func lookupProject(ctx context.Context, env *Env, id int64) (model.Project, bool, error) {
	projects, err := env.Backend.ListProjects(ctx)
	if err != nil {
		return model.Project{}, false, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return model.Project{}, false, nil
}
