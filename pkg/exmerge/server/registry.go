package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/config"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/session"
)

// Registry holds the live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	cfg      config.Config
	sessions map[string]*session.Session
}

// NewRegistry creates an empty registry whose sessions use cfg.
func NewRegistry(cfg config.Config) *Registry {
	return &Registry{cfg: cfg, sessions: make(map[string]*session.Session)}
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (string, *session.Session) {
	id := uuid.NewString()
	s := session.New(r.cfg)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id, s
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*session.Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops the session with the given id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.ClearData()
		delete(r.sessions, id)
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
