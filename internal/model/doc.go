// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the gateway, the
// transcript controller and the screens.
//
// # Key Types
//
//   - Project: a registered codebase with a client-side ingestion status
//   - Message: one transcript line, either from the user or the assistant
//   - Exchange: one question/answer pair as stored in project history
//
// # Usage
//
// Rebuild a transcript from server history:
//
//	msgs := model.Flatten(history)
//	msgs = append(msgs, model.UserMessage("How is auth wired?"))
package model
