package api

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hayashilab/sevenq/internal/services"
)

// sessionHandle serializes access to one respondent's session. The state
// machine itself is single-threaded; the handle is what lets the HTTP layer
// uphold that while serving many respondents at once.
type sessionHandle struct {
	mu      sync.Mutex
	session *services.Session
}

// withSession runs fn with the handle's lock held.
func (h *sessionHandle) withSession(fn func(*services.Session) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.session)
}

// sessionRegistry maps session ids to isolated sessions. Sessions live only
// for the lifetime of the process; there is no persistence by design.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionHandle
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: map[string]*sessionHandle{}}
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (r *sessionRegistry) add(s *services.Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := newSessionID()
	for r.sessions[id] != nil {
		id = newSessionID()
	}
	r.sessions[id] = &sessionHandle{session: s}
	return id
}

func (r *sessionRegistry) get(id string) *sessionHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
