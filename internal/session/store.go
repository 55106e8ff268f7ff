// Package session keeps the per-caller state of the analyzer: the last
// generated password and its verdict. State lives in memory only and
// expires after a fixed TTL.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/password-analyzer/internal/model"
)

// HeaderSessionID carries the session id between client and server
const HeaderSessionID = "X-Session-ID"

// Store maps session ids to their last generated password
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.New().String()
}

// ValidID accepts only UUIDs so arbitrary header values never become keys
func ValidID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) Save(id string, gp *model.GeneratedPassword) {
	s.cache.SetDefault(id, gp)
}

func (s *Store) Get(id string) (*model.GeneratedPassword, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	gp, ok := v.(*model.GeneratedPassword)
	return gp, ok
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports the number of live sessions, including expired ones not yet swept
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
