// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/codehelp/codehelp-tui/internal/util"
)

// FileStore keeps the credential in a small JSON key/value file.
//
// The file holds an object keyed by StorageKey so that other client values
// can share it without a format change. Writes go through
// util.AtomicWriteFile, so a crash never leaves a half-written credential.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored credential, or "" if the file or key is absent.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[StorageKey], nil
}

// Save writes the credential, preserving any other keys in the file.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking login.
		values = map[string]string{}
	}
	values[StorageKey] = token
	return s.write(values)
}

// Clear removes the credential key; the file is deleted when nothing else remains.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		// Undecodable, so nothing in it can be kept.
		return util.RemoveFile(s.path)
	}
	if _, ok := values[StorageKey]; !ok {
		return nil
	}
	delete(values, StorageKey)
	if len(values) == 0 {
		return util.RemoveFile(s.path)
	}
	return s.write(values)
}

// Close is a no-op; the file is not held open.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token file: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
