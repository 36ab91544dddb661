// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript keeps the ordered message log of one chat session.
//
// A Controller moves through four states:
//
//	Idle --BeginLoad--> LoadingHistory --FinishLoad--> Ready
//	Ready --BeginSubmit--> AwaitingAnswer --FinishAsk--> Ready
//
// History is flattened into alternating user/assistant messages in server
// order. A failed history fetch is logged and leaves an empty transcript. A
// failed question appends FallbackMessage instead of the error detail. At
// most one question is in flight, and empty input is rejected before any
// state change or network call.
//
// The step methods (BeginLoad/FinishLoad, BeginSubmit/FinishAsk) let a Bubble
// Tea model run the network call in a tea.Cmd; Load and Ask drive the same
// transitions synchronously for the CLI. A Controller is not safe for
// concurrent use; drive it from one goroutine.
package transcript
