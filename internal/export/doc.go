// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a project's question-and-answer history to files.
//
// # Supported Formats
//
//   - Markdown: Human-readable with optional YAML frontmatter
//   - JSON: Machine-readable, the exchanges as the server returned them
//
// # Usage
//
//	t := export.NewTranscript(project, history)
//	exporter, err := export.ForFormat("md", nil)
//	path, err := export.ToFile(t, exporter, ".")
package export
