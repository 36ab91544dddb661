// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the codehelp credential across restarts.
//
// The credential lives under a single fixed key (StorageKey) in one of three
// backends:
//
//   - FileStore: JSON key/value file written atomically with 0600 permissions
//   - SQLiteStore: key/value table in a local SQLite database
//   - MemoryStore: process-local, for tests and --ephemeral runs
//
// # Usage
//
//	store, err := storage.Open(storage.BackendFile, "")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	token, err := store.Load()
//
// Load on an empty store returns "" and a nil error. Clear is idempotent.
package storage
