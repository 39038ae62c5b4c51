// Package credstore provides durable key-value persistence for client
// credentials, primarily the bearer token issued at login.
//
// The API client is written against the Store interface so token handling
// is testable without touching the filesystem. The SQLite implementation
// is the production backend; Memory backs tests.
package credstore

import "sync"

// TokenKey is the key under which the bearer token is persisted.
const TokenKey = "hr_token"

// Store is a durable string key-value capability.
//
// Get reports whether the key exists; a missing key is not an error.
// Set and Remove are idempotent.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Memory is an in-process Store for tests.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the stored value and whether it exists.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores a value under key, replacing any previous value.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes the value under key if present.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
