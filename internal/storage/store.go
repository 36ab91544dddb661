// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// StorageKey is the fixed key the credential is stored under.
const StorageKey = "authToken"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown token store backend")

// TokenStore holds the current credential.
type TokenStore interface {
	// Load returns the stored credential, or "" when none is stored.
	Load() (string, error)
	// Save replaces the stored credential.
	Save(token string) error
	// Clear removes the stored credential. Clearing an empty store succeeds.
	Clear() error
	// Close releases any resources held by the store.
	Close() error
}

// Open returns the store for backend. An empty path selects the default
// location under ~/.codehelp for the file and sqlite backends.
func Open(backend, path string) (TokenStore, error) {
	switch strings.ToLower(backend) {
	case BackendFile, "":
		if path == "" {
			p, err := DefaultPath("credentials.json")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if path == "" {
			p, err := DefaultPath("codehelp.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DefaultPath returns ~/.codehelp/<name>.
func DefaultPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".codehelp", name), nil
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore keeps the credential in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a memory store seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load returns the stored credential.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save replaces the stored credential.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
