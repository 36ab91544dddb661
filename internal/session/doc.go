// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the signed-in identity of the client.
//
// The persisted credential is the only source of truth. Every time it
// changes (startup load, login, logout, explicit revalidation) the Manager
// decodes it without verifying the signature and derives the subject and
// expiry. A credential that fails to decode, or whose expiry is at or before
// now, is cleared exactly as if the user had logged out; decode problems are
// never reported to callers.
//
// There is no background timer. An expired credential is noticed at the next
// recomputation, and otherwise by the backend answering 401.
//
// # Key Types
//
//   - Manager: credential lifecycle, safe for use from tea.Cmd goroutines
//   - Session: derived identity
//   - Authenticator: the backend login call
//
// # Usage
//
//	mgr := session.NewManager(store, client, session.WithLogger(logger))
//	client.SetTokenSource(mgr)
//
//	if err := mgr.Login(ctx, username, password); err != nil {
//	    return api.Message(err)
//	}
package session
