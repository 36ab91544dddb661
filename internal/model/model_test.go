// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_PreservesServerOrder(t *testing.T) {
	history := []Exchange{
		{Question: "A", Answer: "B"},
		{Question: "C", Answer: "D"},
	}

	got := Flatten(history)

	assert.Equal(t, []Message{
		{Text: "A", IsUser: true},
		{Text: "B", IsUser: false},
		{Text: "C", IsUser: true},
		{Text: "D", IsUser: false},
	}, got)
}

func TestFlatten_Empty(t *testing.T) {
	got := Flatten(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMessage_Author(t *testing.T) {
	assert.Equal(t, "You", UserMessage("hi").Author())
	assert.Equal(t, "Assistant", AssistantMessage("hello").Author())
}

func TestProjectStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.Label())
	assert.Equal(t, "Ready", StatusSuccess.Label())
	assert.Equal(t, "Failed", StatusFailed.Label())
	assert.Equal(t, "Unknown", ProjectStatus("").Label())
}

func TestParseProjectID(t *testing.T) {
	id, err := ParseProjectID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "42", Project{ID: id}.IDString())

	_, err = ParseProjectID("abc")
	assert.Error(t, err)
}
