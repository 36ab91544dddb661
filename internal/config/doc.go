// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for codehelp.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - APIConfig: Backend base URL
//   - AuthConfig: Credential store backend and location
//   - LogConfig: Log level and file
//   - UIConfig: Theme and chat rendering
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CODEHELP_*)
//   - ~/.codehelp/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := api.NewClient(cfg.API.BaseURL)
package config
