// Package memory keeps refresh-token sessions in process memory. Nothing
// survives a restart and instances do not share state.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

type Sessions struct {
	mu     sync.Mutex
	byHash map[string]domain.Session
	byUser map[string]map[string]struct{} // lower(username) -> hashes
}

var _ store.Sessions = (*Sessions)(nil)

func NewSessions() *Sessions {
	return &Sessions{
		byHash: make(map[string]domain.Session),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (s *Sessions) Put(_ context.Context, hash string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byHash[hash]; ok {
		s.unindex(hash, old.Username)
	}
	s.byHash[hash] = sess

	key := userKey(sess.Username)
	hashes, ok := s.byUser[key]
	if !ok {
		hashes = make(map[string]struct{})
		s.byUser[key] = hashes
	}
	hashes[hash] = struct{}{}
	return nil
}

func (s *Sessions) TakeIfValid(_ context.Context, hash string, now time.Time) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byHash[hash]
	if !ok {
		return domain.Session{}, store.ErrNotFound
	}
	s.delete(hash, sess)

	if sess.Expired(now) {
		return domain.Session{}, store.ErrExpired
	}
	return sess, nil
}

func (s *Sessions) Remove(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.byHash[hash]; ok {
		s.delete(hash, sess)
	}
	return nil
}

func (s *Sessions) RemoveAllForUser(_ context.Context, username string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(username)
	hashes := s.byUser[key]
	for hash := range hashes {
		delete(s.byHash, hash)
	}
	delete(s.byUser, key)
	return len(hashes), nil
}

func (s *Sessions) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for hash, sess := range s.byHash {
		if sess.Expired(now) {
			s.delete(hash, sess)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored sessions, expired or not.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byHash)
}

// delete and unindex expect s.mu to be held.
func (s *Sessions) delete(hash string, sess domain.Session) {
	delete(s.byHash, hash)
	s.unindex(hash, sess.Username)
}

func (s *Sessions) unindex(hash, username string) {
	key := userKey(username)
	hashes, ok := s.byUser[key]
	if !ok {
		return
	}
	delete(hashes, hash)
	if len(hashes) == 0 {
		delete(s.byUser, key)
	}
}

func userKey(username string) string { return strings.ToLower(username) }
