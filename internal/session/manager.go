// internal/session/manager.go
package session

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/user/codewatch/internal/stream"
	"github.com/user/codewatch/internal/types"
)

// envelope is one unit of work on a session lane: either a raw stream line to
// classify or an out-of-band idle signal from the process collaborator.
type envelope struct {
	line []byte
	idle bool
}

// Manager fans the agent process streams out to per-session lanes. Each lane
// is a FIFO channel drained by a single goroutine, so events within a session
// are classified and projected strictly in arrival order, while a weighted
// semaphore bounds how many sessions project concurrently. Sessions share no
// mutable state with each other.
type Manager struct {
	lanes     map[types.SessionID]chan envelope
	trackers  map[types.SessionID]*Tracker
	semaphore *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

// NewManager creates a Manager that allows up to maxConcurrent sessions to
// project events simultaneously.
func NewManager(maxConcurrent int64) *Manager {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &Manager{
		lanes:     make(map[types.SessionID]chan envelope),
		trackers:  make(map[types.SessionID]*Tracker),
		semaphore: semaphore.NewWeighted(maxConcurrent),
	}
}

// Start initialises the manager's context. Must be called before Open.
func (m *Manager) Start(ctx context.Context) {
	m.ctx, m.cancel = context.WithCancel(ctx)
}

// Stop cancels the manager context, closes all lanes, and waits for in-flight
// projection to finish.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Lock()
	for id, lane := range m.lanes {
		close(lane)
		delete(m.lanes, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// Open creates a tracker for a newly submitted intent and starts its lane.
func (m *Manager) Open(intent, projectPath string, opts ...Option) *Tracker {
	tracker := NewTracker(intent, projectPath, opts...)
	lane := make(chan envelope, 256)

	m.mu.Lock()
	m.trackers[tracker.ID()] = tracker
	m.lanes[tracker.ID()] = lane
	m.mu.Unlock()

	m.wg.Add(1)
	go m.processLane(tracker, lane)
	return tracker
}

// Ingest queues one raw stream line for the session. The line is copied, so
// callers may reuse their scanner buffer. Returns an error if the lane's
// buffer is full or the session is unknown.
func (m *Manager) Ingest(id types.SessionID, line []byte) error {
	return m.enqueue(id, envelope{line: append([]byte(nil), line...)})
}

// Idle queues the secondary-finish signal for the session, keeping it ordered
// behind lines already ingested.
func (m *Manager) Idle(id types.SessionID) error {
	return m.enqueue(id, envelope{idle: true})
}

func (m *Manager) enqueue(id types.SessionID, env envelope) error {
	m.mu.RLock()
	lane, ok := m.lanes[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown session: %s", id)
	}

	select {
	case lane <- env:
		return nil
	default:
		return fmt.Errorf("lane full for session %s", id)
	}
}

// Interrupt records a user-initiated cancellation. It acts immediately rather
// than through the lane, so queued lines from the killed process are
// discarded by the tracker instead of projected.
func (m *Manager) Interrupt(id types.SessionID) error {
	tracker, ok := m.Tracker(id)
	if !ok {
		return fmt.Errorf("unknown session: %s", id)
	}
	tracker.Interrupt()
	return nil
}

// Fail records a process-level failure reported by the process collaborator.
func (m *Manager) Fail(id types.SessionID, cause error) error {
	tracker, ok := m.Tracker(id)
	if !ok {
		return fmt.Errorf("unknown session: %s", id)
	}
	tracker.Fail(cause)
	return nil
}

// Tracker returns the tracker for a session.
func (m *Manager) Tracker(id types.SessionID) (*Tracker, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tracker, ok := m.trackers[id]
	return tracker, ok
}

func (m *Manager) processLane(tracker *Tracker, lane chan envelope) {
	defer m.wg.Done()

	for env := range lane {
		if err := m.semaphore.Acquire(m.ctx, 1); err != nil {
			return // context cancelled
		}

		var event stream.Event
		if env.idle {
			event = stream.SecondaryFinish(tracker.Session().ExternalSessionID)
		} else {
			event = stream.Classify(env.line)
		}
		tracker.HandleEvent(event)

		m.semaphore.Release(1)
	}
}
