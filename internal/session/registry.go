// Package session tracks the players connected to a shared server so they
// can be told about a shutdown and compared on a high score table.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shower/internal/logging"
)

// EventType identifies a session event.
type EventType int

const (
	// EventShutdown tells a session the server is going down.
	EventShutdown EventType = iota
)

// Event is sent from the registry to a session.
type Event struct {
	Type EventType
}

// Handle is one registered session.
type Handle struct {
	ID       int
	Username string
	Events   chan Event

	registry *Registry
}

// Record reports a finished game's score.
func (h *Handle) Record(score int) {
	if h.registry != nil {
		h.registry.record(h.Username, score)
	}
}

// Score is a high score entry.
type Score struct {
	Username string
	Score    int
	At       time.Time
}

// Registry is the set of live sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
	best     Score
	games    int
	logger   *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{
		sessions: make(map[int]*Handle),
		nextID:   1,
		logger:   logger,
	}
}

// Register adds a session for username and returns its handle.
func (r *Registry) Register(username string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := &Handle{
		ID:       r.nextID,
		Username: username,
		Events:   make(chan Event, 16),
		registry: r,
	}
	r.nextID++
	r.sessions[h.ID] = h
	r.logger.Info("Session registered", "id", h.ID, "user", username, "sessions", len(r.sessions))
	return h
}

// Unregister removes a session. Unknown ids are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	r.logger.Info("Session unregistered", "id", id, "sessions", len(r.sessions))
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// HighScore returns the best score recorded so far and the number of
// finished games.
func (r *Registry) HighScore() (Score, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.best, r.games
}

func (r *Registry) record(username string, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games++
	if r.games == 1 || score > r.best.Score {
		r.best = Score{Username: username, Score: score, At: time.Now()}
		r.logger.Info("New high score", "user", username, "score", score)
	}
}

// Shutdown notifies every session and waits until they have all
// unregistered or the timeout expires. It reports whether every session
// left in time.
func (r *Registry) Shutdown(timeout time.Duration) bool {
	r.mu.RLock()
	for _, h := range r.sessions {
		select {
		case h.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	r.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if r.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			r.logger.Warn("Shutdown timed out", "sessions", r.Count())
			return false
		case <-ticker.C:
		}
	}
}
