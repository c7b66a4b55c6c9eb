// Package authstub is a small in-memory identity service that speaks the
// protocol the blog service expects from its auth backend. It is meant for
// local development and tests.
package authstub

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"blog-service/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type user struct {
	username     string
	passwordHash []byte
	roles        []string
}

// SeedUser is a user given in plain text at startup.
type SeedUser struct {
	Username string
	Password string
	Roles    []string
}

// ParseUsers reads "name:password:ROLE_A|ROLE_B" entries separated by commas.
func ParseUsers(raw string) ([]SeedUser, error) {
	var users []SeedUser
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid user entry %q", entry)
		}

		var roles []string
		for _, r := range strings.Split(parts[2], "|") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		users = append(users, SeedUser{Username: parts[0], Password: parts[1], Roles: roles})
	}
	return users, nil
}

// Store keeps users in memory with bcrypt hashed passwords.
type Store struct {
	mu    sync.RWMutex
	users map[string]*user
}

func NewStore(seed []SeedUser) (*Store, error) {
	s := &Store{users: make(map[string]*user, len(seed))}
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.users[u.Username] = &user{username: u.Username, passwordHash: hash, roles: u.Roles}
	}
	return s, nil
}

// Authenticate checks the password and returns the user's details.
func (s *Store) Authenticate(username, password string) (models.UserDetails, error) {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return models.UserDetails{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return models.UserDetails{}, ErrInvalidCredentials
	}
	return details(u), nil
}

func (s *Store) Get(username string) (models.UserDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return models.UserDetails{}, ErrUserNotFound
	}
	return details(u), nil
}

// List returns all users ordered by name.
func (s *Store) List() []models.UserDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UserDetails, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, details(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (s *Store) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}

func details(u *user) models.UserDetails {
	roles := make([]string, len(u.roles))
	copy(roles, u.roles)
	return models.UserDetails{Username: u.username, Roles: roles}
}
