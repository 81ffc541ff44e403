package workflow

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
)

// Session is one user's run through the workflow. Nothing is shared between sessions.
type Session struct {
	ID           string
	CreatedAt    time.Time
	Store        *Store
	Orchestrator *Orchestrator

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry keeps the live sessions in memory.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gateway  Gateway
	reporter Reporter
	logger   *slog.Logger
	now      func() time.Time
}

func NewRegistry(gw Gateway, reporter Reporter, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		gateway:  gw,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a new session at the IMPORT step.
func (r *Registry) Create() *Session {
	now := r.now()
	id := uuid.NewString()
	store := NewStore()
	s := &Session{
		ID:           id,
		CreatedAt:    now,
		Store:        store,
		Orchestrator: NewOrchestrator(store, r.gateway, r.reporter, r.logger.With("session_id", id)),
		lastSeen:     now,
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, apperr.NotFoundErr("Sessão não encontrada ou expirada.")
	}
	s.touch(r.now())
	return s, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reap discards sessions idle for longer than maxIdle. Sessions with a
// generation in flight are kept until it settles.
func (r *Registry) Reap(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if !s.LastSeen().Before(cutoff) || busy(s.Store.Snapshot()) {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

func busy(s Snapshot) bool {
	l := s.Loading
	return l.Importing || l.Video || l.Images || l.Copy || l.Page
}
