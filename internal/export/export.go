// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/codehelp/codehelp-tui/internal/model"
	"github.com/codehelp/codehelp-tui/internal/util"
)

// ErrUnknownFormat is returned by ForFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is one project's history at a point in time.
type Transcript struct {
	ProjectID   int64            `json:"project_id"`
	ProjectName string           `json:"project_name"`
	Exchanges   []model.Exchange `json:"exchanges"`
	ExportedAt  time.Time        `json:"exported_at"`
}

// NewTranscript snapshots history for project.
func NewTranscript(project model.Project, history []model.Exchange) *Transcript {
	exchanges := make([]model.Exchange, len(history))
	copy(exchanges, history)
	return &Transcript{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Exchanges:   exchanges,
		ExportedAt:  time.Now().UTC(),
	}
}

// Title returns the project name, or a placeholder with the id.
func (t *Transcript) Title() string {
	if strings.TrimSpace(t.ProjectName) != "" {
		return t.ProjectName
	}
	return fmt.Sprintf("Project %d", t.ProjectID)
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts a transcript to the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension (e.g., ".md").
	FileExtension() string
}

// Options configures export behavior.
type Options struct {
	// IncludeMetadata writes a frontmatter header (project, counts, date).
	IncludeMetadata bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{IncludeMetadata: true}
}

// ForFormat returns the exporter for a format name: "md", "markdown" or "json".
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (use md or json)", ErrUnknownFormat, format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Write exports t to w.
func Write(w io.Writer, t *Transcript, exporter Exporter) error {
	content, err := exporter.Export(t)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	_, err = w.Write(content)
	return err
}

// ToFile exports t into dir under a generated name and returns the path.
// A path ending in the exporter's extension is used as the file name.
func ToFile(t *Transcript, exporter Exporter, path string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	outputPath := path
	if !strings.EqualFold(filepath.Ext(path), exporter.FileExtension()) {
		filename := fmt.Sprintf("%s_%s%s",
			sanitizeFilename(t.Title()),
			t.ExportedAt.Format("20060102_150405"),
			exporter.FileExtension(),
		)
		outputPath = filepath.Join(path, filename)
	}

	if err := util.AtomicWriteFile(outputPath, content, 0644, 0755); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "transcript"
	}
	return string(result)
}
