// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strconv"

// ProjectStatus is a client-side annotation of a project's ingestion state.
// The backend never reports it; the client sets it from its own actions.
type ProjectStatus string

const (
	StatusPending ProjectStatus = "pending"
	StatusSuccess ProjectStatus = "success"
	StatusFailed  ProjectStatus = "failed"
)

// String returns the string representation of the status.
func (s ProjectStatus) String() string {
	return string(s)
}

// Label returns a short human-readable label.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSuccess:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Project is a codebase registered with the backend.
type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"-"`
}

// IDString returns the project ID in the form used in URL paths.
func (p Project) IDString() string {
	return strconv.FormatInt(p.ID, 10)
}

// ParseProjectID parses a project ID from a path segment or CLI argument.
func ParseProjectID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
