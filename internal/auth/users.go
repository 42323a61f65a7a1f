// Package auth provides the in-memory account store and bearer tokens for
// the HTTP API. Accounts live only for the life of the process.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists     = errors.New("username already registered")
	ErrBadCredentials = errors.New("incorrect username or password")
)

// User is the public shape of an account; the password hash never leaves
// the store.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

type record struct {
	user User
	hash []byte
}

// Store keeps accounts keyed by username. The zero store is not usable; use
// NewStore.
type Store struct {
	mu    sync.RWMutex
	users map[string]record
}

func NewStore() *Store { return &Store{users: map[string]record{}} }

// Register creates an account with a bcrypt-hashed password and a simple
// auto-incrementing ID.
func (s *Store) Register(username, email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return User{}, ErrUserExists
	}
	u := User{ID: len(s.users) + 1, Email: email, Username: username, IsActive: true}
	s.users[username] = record{user: u, hash: hash}
	return u, nil
}

// Authenticate verifies the password and returns the account. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *Store) Authenticate(username, password string) (User, error) {
	s.mu.RLock()
	rec, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return User{}, ErrBadCredentials
	}
	return rec.user, nil
}

func (s *Store) Get(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[username]
	return rec.user, ok
}
