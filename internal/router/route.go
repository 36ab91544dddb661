// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// ROUTE KIND
// ============================================================================

// Kind identifies a screen.
type Kind int

const (
	// KindLogin is the sign-in screen.
	KindLogin Kind = iota
	// KindSignup is the registration screen.
	KindSignup
	// KindProjects is the project dashboard.
	KindProjects
	// KindChat is the per-project chat screen.
	KindChat
	// KindIngest is the per-project ingestion form.
	KindIngest
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "Login"
	case KindSignup:
		return "Signup"
	case KindProjects:
		return "Projects"
	case KindChat:
		return "Chat"
	case KindIngest:
		return "Ingest"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Protected reports whether the screen requires a session.
func (k Kind) Protected() bool {
	switch k {
	case KindLogin, KindSignup:
		return false
	default:
		return true
	}
}

// Path constants.
const (
	PathLogin    = "/login"
	PathSignup   = "/signup"
	PathProjects = "/projects"
)

// ErrUnknownPath is returned by Parse for a path no screen answers to.
var ErrUnknownPath = errors.New("unknown path")

// ============================================================================
// ROUTE
// ============================================================================

// Route is a parsed screen path.
type Route struct {
	Kind Kind
	// ProjectID is set for KindChat and KindIngest.
	ProjectID int64
}

// Login returns the login route.
func Login() Route { return Route{Kind: KindLogin} }

// Projects returns the dashboard route.
func Projects() Route { return Route{Kind: KindProjects} }

// Chat returns the chat route for a project.
func Chat(projectID int64) Route { return Route{Kind: KindChat, ProjectID: projectID} }

// Ingest returns the ingestion route for a project.
func Ingest(projectID int64) Route { return Route{Kind: KindIngest, ProjectID: projectID} }

// Path renders the route as a path.
func (r Route) Path() string {
	switch r.Kind {
	case KindLogin:
		return PathLogin
	case KindSignup:
		return PathSignup
	case KindChat:
		return fmt.Sprintf("%s/%d/chat", PathProjects, r.ProjectID)
	case KindIngest:
		return fmt.Sprintf("%s/%d/ingest", PathProjects, r.ProjectID)
	default:
		return PathProjects
	}
}

// String implements fmt.Stringer.
func (r Route) String() string {
	return r.Path()
}

// Parse maps a path to a route. Surrounding whitespace and trailing slashes
// are ignored; "/" is the dashboard.
func Parse(path string) (Route, error) {
	clean := strings.TrimSpace(path)
	clean = "/" + strings.Trim(clean, "/")

	switch clean {
	case "/", PathProjects:
		return Projects(), nil
	case PathLogin:
		return Login(), nil
	case PathSignup:
		return Route{Kind: KindSignup}, nil
	}

	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) != 3 || "/"+parts[0] != PathProjects {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return Route{}, fmt.Errorf("%w: invalid project id %q", ErrUnknownPath, parts[1])
	}

	switch parts[2] {
	case "chat":
		return Chat(id), nil
	case "ingest":
		return Ingest(id), nil
	default:
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
}
