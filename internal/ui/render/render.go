// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns answer text into terminal output.
//
// With markdown enabled, answers go through glamour. Otherwise the text is
// shown as written, except fenced code blocks, which are highlighted with
// chroma so code stays readable in plain mode.
package render

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/codehelp/codehelp-tui/internal/ui/styles"
)

const minWidth = 20

// Renderer renders answers at a given wrap width.
type Renderer struct {
	mu       sync.Mutex
	markdown bool
	dark     bool
	width    int
	term     *glamour.TermRenderer
}

// New creates a renderer. dark selects the glamour and chroma palettes.
func New(dark, markdown bool, width int) *Renderer {
	return &Renderer{
		markdown: markdown,
		dark:     dark,
		width:    max(width, minWidth),
	}
}

// SetWidth changes the wrap width.
func (r *Renderer) SetWidth(width int) {
	width = max(width, minWidth)
	r.mu.Lock()
	defer r.mu.Unlock()
	if width != r.width {
		r.width = width
		r.term = nil
	}
}

// Markdown reports whether markdown rendering is on.
func (r *Renderer) Markdown() bool {
	return r.markdown
}

// Render renders text. Markdown failures fall back to plain output.
func (r *Renderer) Render(text string) string {
	if !r.markdown {
		return r.Plain(text)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.term == nil {
		style := "light"
		if r.dark {
			style = "dark"
		}
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			return r.plainLocked(text)
		}
		r.term = term
	}

	out, err := r.term.Render(text)
	if err != nil {
		return r.plainLocked(text)
	}
	return strings.Trim(out, "\n")
}

// Plain renders text without markdown, highlighting fenced code.
func (r *Renderer) Plain(text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plainLocked(text)
}

func (r *Renderer) plainLocked(text string) string {
	return renderFences(text, r.width, r.chromaStyle())
}

func (r *Renderer) chromaStyle() string {
	if r.dark {
		return "monokai"
	}
	return "github"
}

// =============================================================================
// CODE FENCES
// =============================================================================

// renderFences wraps prose to width and replaces ``` blocks with highlighted
// code. An unclosed fence runs to the end of the text.
func renderFences(text string, width int, style string) string {
	var out []string
	var code []string
	var lang string
	inCode := false
	wrap := lipgloss.NewStyle().Width(width)

	flush := func() {
		out = append(out, codeBlock(strings.Join(code, "\n"), lang, width, style))
		code = nil
		lang = ""
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCode {
				flush()
				inCode = false
			} else {
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				inCode = true
			}
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}
		out = append(out, wrap.Render(line))
	}
	if inCode {
		flush()
	}
	return strings.Join(out, "\n")
}

func codeBlock(code, lang string, width int, style string) string {
	body := Highlight(code, lang, style)
	if lang != "" {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Bold(true).
			Render(lang)
		body = badge + "\n" + body
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(max(width, minWidth)).
		Render(body)
}

// Highlight applies chroma highlighting for a terminal. Unknown languages
// are detected from the code; any failure returns the code unchanged.
func Highlight(code, lang, style string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := chromaStyles.Get(style)
	if s == nil {
		s = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, s, iterator); err != nil {
		return code
	}
	return buf.String()
}
