// internal/session/tracker_test.go
package session

import (
	"errors"
	"testing"

	"github.com/user/codewatch/internal/stream"
	"github.com/user/codewatch/internal/types"
)

func TestTrackerCompletes(t *testing.T) {
	tracker := NewTracker("fix the bug", "/repo")

	var transitions []types.SessionStatus
	tracker.OnTransition(func(s types.Session) {
		transitions = append(transitions, s.Status)
	})

	tracker.HandleEvent(stream.Classify([]byte(`{"type":"text","sessionID":"ses_ext","part":{"text":"on it"}}`)))
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"step_finish","part":{}}`)))

	session := tracker.Session()
	if session.Status != types.SessionCompleted {
		t.Fatalf("expected completed, got %s", session.Status)
	}
	if session.ExternalSessionID != "ses_ext" {
		t.Errorf("expected external session id captured, got %s", session.ExternalSessionID)
	}
	if len(session.Messages) != 2 {
		t.Errorf("expected text + Completed messages, got %d", len(session.Messages))
	}
	if len(transitions) != 1 || transitions[0] != types.SessionCompleted {
		t.Errorf("expected single completed transition, got %v", transitions)
	}
	if session.EndedAt == nil {
		t.Error("expected EndedAt set")
	}
}

func TestTrackerSecondaryFinishKeepsRunning(t *testing.T) {
	tracker := NewTracker("task", "")

	fired := false
	tracker.OnTransition(func(types.Session) { fired = true })

	tracker.HandleEvent(stream.SecondaryFinish("ses_ext"))

	if status := tracker.Session().Status; status != types.SessionRunning {
		t.Fatalf("secondary finish must not terminate, got %s", status)
	}
	if fired {
		t.Error("secondary finish must not fire a transition")
	}
}

func TestTrackerDiscardsAfterTerminal(t *testing.T) {
	tracker := NewTracker("task", "")
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"step_finish","part":{}}`)))

	before := len(tracker.Session().Messages)
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"text","part":{"text":"late line"}}`)))
	after := len(tracker.Session().Messages)

	if before != after {
		t.Error("events after the terminal transition must be discarded")
	}
}

func TestTrackerFailSnapshotsMessages(t *testing.T) {
	tracker := NewTracker("task", "")
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"text","part":{"text":"partial work"}}`)))
	tracker.Fail(errors.New("process exited 1"))

	session := tracker.Session()
	if session.Status != types.SessionFailed {
		t.Fatalf("expected failed, got %s", session.Status)
	}
	if len(session.Messages) != 1 {
		t.Errorf("failure must still snapshot messages, got %d", len(session.Messages))
	}
}

func TestTrackerInterruptOnce(t *testing.T) {
	tracker := NewTracker("task", "")

	count := 0
	tracker.OnTransition(func(types.Session) { count++ })

	tracker.Interrupt()
	tracker.Interrupt()
	tracker.Fail(errors.New("late failure"))

	if status := tracker.Session().Status; status != types.SessionInterrupted {
		t.Fatalf("expected interrupted, got %s", status)
	}
	if count != 1 {
		t.Errorf("terminal transition must happen exactly once, got %d", count)
	}
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	tracker := NewTracker("task", "")
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"text","part":{"text":"hello"}}`)))

	snapshot := tracker.Session()
	snapshot.Messages[0].Content = "mutated"

	if tracker.Session().Messages[0].Content != "hello" {
		t.Error("snapshot must not alias live state")
	}
}

func TestTrackerContextTokensFromUsage(t *testing.T) {
	tracker := NewTracker("task", "")
	tracker.HandleEvent(stream.Classify([]byte(`{"type":"step_finish","part":{"tokens":{"input":100,"output":50,"cache":{"read":200,"write":10}}}}`)))

	if got := tracker.Session().ContextTokens; got != 350 {
		t.Errorf("expected 350 context tokens, got %d", got)
	}
}
