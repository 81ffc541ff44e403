// Package credentials gates the workflow behind a usable Gemini API key.
package credentials

import (
	"context"
	"log/slog"
	"sync"
)

// State is the lock state of the guard.
type State string

const (
	Locked   State = "LOCKED"
	Unlocked State = "UNLOCKED"
)

// Host is the environment that owns key selection.
type Host interface {
	// HasSelectedKey reports whether a usable key is currently selected.
	HasSelectedKey(ctx context.Context) (bool, error)
	// OpenSelectKey runs the selection flow. Returning nil counts as success.
	OpenSelectKey(ctx context.Context) error
}

// Guard decides whether workflow actions are enabled. It is the only
// component allowed to change its state.
type Guard struct {
	mu     sync.RWMutex
	state  State
	host   Host
	logger *slog.Logger
}

// NewGuard queries host for an existing key. Without a host the guard starts
// unlocked so the tool stays usable with mock data.
func NewGuard(ctx context.Context, host Host, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Guard{state: Unlocked, host: host, logger: logger}
	if host == nil {
		return g
	}

	ok, err := host.HasSelectedKey(ctx)
	if err != nil {
		logger.Warn("credential check failed, locking workflow", "error", err)
	}
	if err != nil || !ok {
		g.state = Locked
	}
	return g
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Unlocked reports whether workflow actions are enabled.
func (g *Guard) Unlocked() bool {
	return g.State() == Unlocked
}

// Select runs the host selection flow and unlocks once it completes. The
// key is not verified again; the next generation call will tell.
func (g *Guard) Select(ctx context.Context) error {
	if g.host != nil {
		if err := g.host.OpenSelectKey(ctx); err != nil {
			return err
		}
	}
	g.set(Unlocked, "key selected")
	return nil
}

// ReportSuccess unlocks the guard after a successful generation call.
func (g *Guard) ReportSuccess() {
	g.set(Unlocked, "generation succeeded")
}

// ReportCredentialFailure locks the guard after a permission or invalid-key failure.
func (g *Guard) ReportCredentialFailure() {
	g.set(Locked, "credential rejected")
}

func (g *Guard) set(s State, reason string) {
	g.mu.Lock()
	prev := g.state
	g.state = s
	g.mu.Unlock()
	if prev != s {
		g.logger.Info("credential guard changed state", "from", prev, "to", s, "reason", reason)
	}
}
