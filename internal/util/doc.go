// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the codehelp packages.
//
//   - AtomicWriteFile: crash-safe file replacement with fsync
//   - RemoveFile: idempotent delete
//   - TruncateRunes, OneLine: UTF-8 safe display helpers
//
// Usage:
//
//	err := util.AtomicWriteFile(path, data, 0600, 0700)
//	label := util.TruncateRunes(util.OneLine(description), 40)
package util
