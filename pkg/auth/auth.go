// Package auth holds the process-local credential used against the trade API.
package auth

import (
	"errors"
	"sync"
)

// ErrUnauthenticated is returned when no bearer token is available.
// Calls that require a credential must fail with this error before any
// network activity is attempted.
var ErrUnauthenticated = errors.New("unauthenticated: no bearer token available")

// TokenSource supplies the bearer token for trade API requests.
type TokenSource interface {
	// Token returns the current bearer token, or ErrUnauthenticated if none is set.
	Token() (string, error)
}

// Store is a process-local token store safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates a token store. An empty initial token leaves the store
// unauthenticated until Set is called.
func NewStore(token string) *Store {
	return &Store{token: token}
}

// Token implements TokenSource.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrUnauthenticated
	}
	return s.token, nil
}

// Set replaces the stored token. Setting an empty token clears the credential.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// StaticToken is a fixed TokenSource, mainly for tests and examples.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", ErrUnauthenticated
	}
	return string(t), nil
}
