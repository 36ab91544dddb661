// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP gateway to the CodeHelp backend.
//
// Every operation is a single request/response exchange against the /api
// surface: no retries, no caching, no client-side timeout. Authorized calls
// attach "Authorization: Bearer <token>" from the configured TokenSource,
// even when the token is empty; the backend is the judge of validity.
//
// # Errors
//
// Failures are returned as *Error and match one of the sentinels through
// errors.Is:
//
//   - ErrAuth: 401 on an authorized call, or any non-2xx from login
//   - ErrValidation: other 4xx carrying a message in the body
//   - ErrNetwork: transport failures, 5xx, and 4xx without a message
//
// # Usage
//
//	client := api.NewClient(cfg.API.BaseURL, api.WithLogger(logger))
//	client.SetTokenSource(sessionManager)
//
//	projects, err := client.ListProjects(ctx)
//	if errors.Is(err, api.ErrAuth) {
//	    sessionManager.Logout()
//	}
package api
