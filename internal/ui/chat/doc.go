// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the per-project question and answer screen.
//
// The screen is a thin Bubble Tea shell over transcript.Controller. Backend
// calls run as commands and come back as messages tagged with the screen's
// generation; a message from a chat view the user has already left carries
// an old generation and is dropped.
//
// Layout:
//
//	+------------------------------------------+
//	| project name                             |
//	+------------------------------------------+
//	| You                                      |
//	|   question                               |
//	| CodeHelp                                 |
//	|   answer (markdown)                      |
//	+------------------------------------------+
//	| Thinking...                              |
//	| > input                                  |
//	+------------------------------------------+
package chat
