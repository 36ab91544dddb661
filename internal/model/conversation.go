// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Exchange is one question/answer pair from a project's history.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Flatten expands exchanges into transcript messages, question first,
// preserving the order the exchanges were given in.
func Flatten(history []Exchange) []Message {
	msgs := make([]Message, 0, len(history)*2)
	for _, ex := range history {
		msgs = append(msgs, UserMessage(ex.Question), AssistantMessage(ex.Answer))
	}
	return msgs
}
