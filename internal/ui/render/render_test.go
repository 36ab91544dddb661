// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPlain_KeepsProse(t *testing.T) {
	r := New(true, false, 80)
	out := ansi.Strip(r.Render("hello there"))
	assert.Contains(t, out, "hello there")
}

func TestPlain_HighlightsFences(t *testing.T) {
	r := New(true, false, 80)
	out := r.Render("Use this:\n```go\nfunc main() {}\n```\ndone")

	plain := ansi.Strip(out)
	assert.NotContains(t, plain, "```")
	assert.Contains(t, plain, "func")
	assert.Contains(t, plain, "main")
	assert.Contains(t, plain, "done")
	assert.Contains(t, plain, "go")
}

func TestPlain_UnclosedFence(t *testing.T) {
	r := New(false, false, 40)
	plain := ansi.Strip(r.Render("```\nprint(1)"))
	assert.Contains(t, plain, "print")
	assert.NotContains(t, plain, "```")
}

func TestMarkdown_RendersText(t *testing.T) {
	r := New(true, true, 60)
	assert.True(t, r.Markdown())
	plain := ansi.Strip(r.Render("# Title\n\nSome *text*."))
	assert.Contains(t, plain, "Title")
	assert.Contains(t, plain, "text")
}

func TestSetWidth_ResetsRenderer(t *testing.T) {
	r := New(true, true, 60)
	r.Render("x")
	assert.NotNil(t, r.term)

	r.SetWidth(60)
	assert.NotNil(t, r.term)

	r.SetWidth(5)
	assert.Nil(t, r.term)
	assert.Equal(t, minWidth, r.width)
}

func TestHighlight_UnknownLanguage(t *testing.T) {
	out := ansi.Strip(Highlight("plain words", "no-such-lang", "no-such-style"))
	assert.Contains(t, out, "plain words")
}
