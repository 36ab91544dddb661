// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories returns one fresh store per backend.
func storeFactories(t *testing.T) map[string]func() TokenStore {
	t.Helper()
	return map[string]func() TokenStore{
		BackendMemory: func() TokenStore {
			return NewMemoryStore("")
		},
		BackendFile: func() TokenStore {
			return NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
		},
		BackendSQLite: func() TokenStore {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "codehelp.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestTokenStore_RoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()

			token, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, token, "fresh store should be empty")

			require.NoError(t, store.Save("first"))
			require.NoError(t, store.Save("second"))

			token, err = store.Load()
			require.NoError(t, err)
			assert.Equal(t, "second", token)
		})
	}
}

func TestTokenStore_ClearIsIdempotent(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory()
			require.NoError(t, store.Save("tok"))

			require.NoError(t, store.Clear())
			require.NoError(t, store.Clear())

			token, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, token)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, NewFileStore(path).Save("persisted"))

	token, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestFileStore_UsesStorageKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, NewFileStore(path).Save("abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, map[string]string{"authToken": "abc"}, values)
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, NewFileStore(path).Save("abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_ClearKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"authToken":"x","theme":"dark"}`), 0600))

	require.NoError(t, NewFileStore(path).Clear())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestFileStore_ClearWithoutCredentialLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0600))

	require.NoError(t, NewFileStore(path).Clear())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestFileStore_ClearRemovesFileWithOnlyCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, NewFileStore(path).Save("abc"))

	require.NoError(t, NewFileStore(path).Clear())

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileStore_CorruptFileIsReplacedOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	store := NewFileStore(path)

	_, err := store.Load()
	assert.Error(t, err)

	require.NoError(t, store.Save("fresh"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codehelp.db")
	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save("persisted"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	token, err := s2.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendFile, filepath.Join(dir, "c.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(BackendSQLite, filepath.Join(dir, "c.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open("redis", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
