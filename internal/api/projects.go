// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/codehelp/codehelp-tui/internal/model"
)

type projectPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type askRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type askResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ingestRequest struct {
	ProjectName string `json:"project_name"`
	Directory   string `json:"directory"`
}

// IngestResult is the backend's ingestion report.
type IngestResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func projectPath(projectID int64, suffix string) string {
	return fmt.Sprintf("/projects/%d%s", projectID, suffix)
}

// ListProjects returns the caller's projects, annotated as ready.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	r, err := c.jsonRequest("list projects", http.MethodGet, "/projects", nil, true)
	if err != nil {
		return nil, err
	}

	var out []projectPayload
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(out))
	for _, p := range out {
		projects = append(projects, model.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      model.StatusSuccess,
		})
	}
	return projects, nil
}

// CreateProject registers a project. The result is annotated as pending
// until it has been ingested.
func (c *Client) CreateProject(ctx context.Context, name, description string) (model.Project, error) {
	r, err := c.jsonRequest("create project", http.MethodPost, "/projects", createProjectRequest{
		Name:        norm.NFC.String(name),
		Description: norm.NFC.String(description),
	}, true)
	if err != nil {
		return model.Project{}, err
	}

	var out projectPayload
	if err := c.do(ctx, r, &out); err != nil {
		return model.Project{}, err
	}
	return model.Project{
		ID:          out.ID,
		Name:        out.Name,
		Description: out.Description,
		Status:      model.StatusPending,
	}, nil
}

// GetProjectHistory returns prior exchanges for a project in server order.
func (c *Client) GetProjectHistory(ctx context.Context, projectID int64) ([]model.Exchange, error) {
	r, err := c.jsonRequest("project history", http.MethodGet, projectPath(projectID, "/history"), nil, true)
	if err != nil {
		return nil, err
	}

	var out []model.Exchange
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Exchange{}
	}
	return out, nil
}

// AskQuestion submits a question about a project and returns the answer.
// It blocks for as long as the backend takes.
func (c *Client) AskQuestion(ctx context.Context, projectID int64, question string) (string, error) {
	r, err := c.jsonRequest("ask question", http.MethodPost, projectPath(projectID, "/ask"), askRequest{
		Question: norm.NFC.String(question),
	}, true)
	if err != nil {
		return "", err
	}

	var out askResponse
	if err := c.do(ctx, r, &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

// IngestProject asks the backend to ingest a source directory on its host.
// The backend addresses projects by name here and creates one when no
// project of that name exists, so callers pass the name of a listed project.
func (c *Client) IngestProject(ctx context.Context, projectName, directory string) (*IngestResult, error) {
	if strings.TrimSpace(projectName) == "" {
		return nil, &Error{Kind: KindValidation, Op: "ingest project", Message: "project name is required"}
	}
	r, err := c.jsonRequest("ingest project", http.MethodPost, "/ingest", ingestRequest{
		ProjectName: projectName,
		Directory:   directory,
	}, true)
	if err != nil {
		return nil, err
	}

	var out IngestResult
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks that the backend is up. The endpoint lives at the server
// root, outside /api.
func (c *Client) Health(ctx context.Context) error {
	r := request{
		op:     "health",
		method: http.MethodGet,
		url:    c.serverRoot() + "/health",
	}
	return c.do(ctx, r, nil)
}
