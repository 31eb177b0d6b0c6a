// ABOUTME: Session registry mapping session ids to chatbot instances
// ABOUTME: RWMutex-guarded in-memory store with a session cap and owned cleanup
package session

import (
	"errors"
	"sync"

	"github.com/docuchat/docuchat/internal/chatbot"
	"github.com/google/uuid"
)

// ErrNotFound is returned for operations on unknown session ids.
var ErrNotFound = errors.New("session not found")

// ErrTooManySessions is returned when the session cap is reached.
var ErrTooManySessions = errors.New("maximum number of sessions reached")

// Factory builds the per-session chatbot for a new session id.
type Factory func(sessionID string) *chatbot.Chatbot

// Store manages session lifecycles.
type Store interface {
	// Create allocates a new session and returns its id.
	Create() (string, *chatbot.Chatbot, error)
	// Get returns the session's chatbot or ErrNotFound.
	Get(id string) (*chatbot.Chatbot, error)
	// GetOrCreate returns the existing session, or creates one. An empty
	// id always creates a fresh session.
	GetOrCreate(id string) (string, *chatbot.Chatbot, error)
	// Delete cleans up and removes the session, or returns ErrNotFound.
	Delete(id string) error
	// Count returns the number of live sessions.
	Count() int
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*chatbot.Chatbot
	factory     Factory
	maxSessions int
}

// NewMemoryStore creates an empty registry with the given session cap.
func NewMemoryStore(factory Factory, maxSessions int) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*chatbot.Chatbot),
		factory:     factory,
		maxSessions: maxSessions,
	}
}

// Create allocates a new session with a generated UUID.
func (s *MemoryStore) Create() (string, *chatbot.Chatbot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked()
}

// Get returns the session's chatbot.
func (s *MemoryStore) Get(id string) (*chatbot.Chatbot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bot, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return bot, nil
}

// GetOrCreate returns an existing session or allocates one.
func (s *MemoryStore) GetOrCreate(id string) (string, *chatbot.Chatbot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if bot, ok := s.sessions[id]; ok {
			return id, bot, nil
		}
	}
	return s.createLocked()
}

// Delete cleans up the session's resources and removes it.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	bot, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	bot.Cleanup()
	return nil
}

// Count returns the number of live sessions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// createLocked allocates a session. Caller holds the write lock.
func (s *MemoryStore) createLocked() (string, *chatbot.Chatbot, error) {
	if len(s.sessions) >= s.maxSessions {
		return "", nil, ErrTooManySessions
	}

	id := uuid.New().String()
	bot := s.factory(id)
	s.sessions[id] = bot
	return id, bot, nil
}
