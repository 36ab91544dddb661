// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Message is a single transcript line.
type Message struct {
	Text   string `json:"text"`
	IsUser bool   `json:"is_user"`
}

// UserMessage creates a message authored by the user.
func UserMessage(text string) Message {
	return Message{Text: text, IsUser: true}
}

// AssistantMessage creates a message authored by the assistant.
func AssistantMessage(text string) Message {
	return Message{Text: text, IsUser: false}
}

// Author returns the display name of the message author.
func (m Message) Author() string {
	if m.IsUser {
		return "You"
	}
	return "Assistant"
}
