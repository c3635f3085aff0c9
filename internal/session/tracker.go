// internal/session/tracker.go
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/user/codewatch/internal/stream"
	"github.com/user/codewatch/internal/types"
)

// TransitionFunc receives a snapshot of the session after a status change.
type TransitionFunc func(types.Session)

// ChangeFunc is invoked after an event mutated the conversation model.
type ChangeFunc func(types.Session)

// Tracker owns the full lifecycle of one session: it feeds events through the
// projector, decides the terminal status, and snapshots the message list on
// the terminal transition. A Tracker is exclusively owned by its session's
// ingest goroutine; its methods are nonetheless safe for concurrent use so
// readers can snapshot at any time.
type Tracker struct {
	mu        sync.Mutex
	session   types.Session
	proj      Projector
	estimator *TokenEstimator

	onTransition []TransitionFunc
	onChange     []ChangeFunc
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTokenEstimator supplies a fallback estimator used when the stream
// reports no token usage.
func WithTokenEstimator(e *TokenEstimator) Option {
	return func(t *Tracker) { t.estimator = e }
}

// NewTracker creates a session in the running state for a submitted intent.
func NewTracker(intent, projectPath string, opts ...Option) *Tracker {
	t := &Tracker{
		session: types.Session{
			ID:          types.NewSessionID(),
			Intent:      intent,
			ProjectPath: projectPath,
			Status:      types.SessionRunning,
			CreatedAt:   time.Now(),
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTransition registers a callback for status transitions. Collaborators use
// this to persist the durable status field and to deliver notifications.
func (t *Tracker) OnTransition(fn TransitionFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTransition = append(t.onTransition, fn)
}

// OnChange registers a callback for conversation changes.
func (t *Tracker) OnChange(fn ChangeFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, fn)
}

// HandleEvent applies one classified event. Events arriving after the
// terminal transition are discarded (logged, not projected), so a late line
// from a killed process cannot corrupt an already-snapshotted history.
func (t *Tracker) HandleEvent(e stream.Event) {
	t.mu.Lock()

	if t.session.Status.Terminal() {
		t.mu.Unlock()
		slog.Debug("discarding event for terminal session",
			"session", t.session.ID, "kind", e.Kind)
		return
	}

	if e.SessionID != "" && t.session.ExternalSessionID == "" {
		t.session.ExternalSessionID = e.SessionID
	}

	changed := t.proj.Apply(e)
	if usage := t.proj.Usage(); usage != nil {
		t.session.ContextTokens = usage.ContextTokens()
	}

	if e.Kind == stream.KindFinish && !e.IsSecondaryFinish {
		t.terminateLocked(types.SessionCompleted)
		return
	}

	var session types.Session
	var listeners []ChangeFunc
	if changed {
		session = t.snapshotLocked()
		listeners = append(listeners, t.onChange...)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Fail records an unrecoverable process-level failure reported by the process
// collaborator.
func (t *Tracker) Fail(err error) {
	slog.Warn("session failed", "session", t.ID(), "error", err)
	t.terminate(types.SessionFailed)
}

// Interrupt records a user-initiated cancellation.
func (t *Tracker) Interrupt() {
	t.terminate(types.SessionInterrupted)
}

func (t *Tracker) terminate(status types.SessionStatus) {
	t.mu.Lock()
	if t.session.Status.Terminal() {
		t.mu.Unlock()
		return
	}
	t.terminateLocked(status)
}

// terminateLocked snapshots the live message list into the session record and
// fires transition listeners. Caller must hold the lock; it is released here.
func (t *Tracker) terminateLocked(status types.SessionStatus) {
	t.session.Status = status
	now := time.Now()
	t.session.EndedAt = &now
	t.session.Messages = t.proj.Messages()
	t.session.Todos = t.proj.Todos()
	if t.session.ContextTokens == 0 && t.estimator != nil {
		t.session.ContextTokens = t.estimator.Estimate(t.session.Messages)
	}

	session := t.snapshotLocked()
	listeners := append([]TransitionFunc(nil), t.onTransition...)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// ID returns the local session identifier.
func (t *Tracker) ID() types.SessionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.ID
}

// Session returns a point-in-time copy of the session, including the live
// message list. The copy is safe to retain; it never aliases live state.
func (t *Tracker) Session() types.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() types.Session {
	session := t.session
	if session.Status.Terminal() {
		session.Messages = append([]types.Message(nil), t.session.Messages...)
		session.Todos = append([]types.TodoItem(nil), t.session.Todos...)
	} else {
		session.Messages = t.proj.Messages()
		session.Todos = t.proj.Todos()
	}
	return session
}
