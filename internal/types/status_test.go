// internal/types/status_test.go
package types

import "testing"

func TestParseSessionStatusFallback(t *testing.T) {
	if got := ParseSessionStatus("bogus"); got != SessionCompleted {
		t.Errorf("expected completed fallback, got %s", got)
	}
	if got := ParseSessionStatus(""); got != SessionCompleted {
		t.Errorf("expected completed fallback for empty, got %s", got)
	}
	if got := ParseSessionStatus("interrupted"); got != SessionInterrupted {
		t.Errorf("expected interrupted, got %s", got)
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	for _, s := range []SessionStatus{SessionCompleted, SessionFailed, SessionInterrupted} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []SessionStatus{SessionIdle, SessionRunning} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestParseTodoStatus(t *testing.T) {
	if got := ParseTodoStatus("in_progress"); got != TodoInProgress {
		t.Errorf("expected in_progress, got %s", got)
	}
	if got := ParseTodoStatus("wip"); got != TodoPending {
		t.Errorf("expected pending fallback, got %s", got)
	}
}

func TestContextTokens(t *testing.T) {
	u := TokenUsage{Input: 100, Output: 20, CacheRead: 300, CacheWrite: 50}
	if got := u.ContextTokens(); got != 420 {
		t.Errorf("expected 420, got %d", got)
	}
}
