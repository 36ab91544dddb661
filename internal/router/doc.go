// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides which screen a navigation lands on.
//
// Screens are addressed by paths:
//
//	/login                 public
//	/signup                public
//	/projects              protected (dashboard)
//	/projects/{id}/chat    protected
//	/projects/{id}/ingest  protected
//
// Unknown paths resolve to /projects. A Guard resolves every navigation
// against the session: an unauthenticated visitor on a protected path is
// redirected to /login, an authenticated visitor on a protected path is never
// redirected, and an authenticated visitor on a public auth page is sent to
// /projects. The Guard keeps no state of its own.
//
// # Usage
//
//	guard := router.NewGuard(sessionManager)
//	view := router.Protect(guard, path,
//	    func(r router.Route) tea.Model { return screenFor(r) },
//	    func(d router.Decision) tea.Model { return loginScreen(d.From) },
//	)
package router
