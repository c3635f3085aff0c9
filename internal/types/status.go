// internal/types/status.go
package types

// SessionStatus is the authoritative lifecycle state of a Session.
type SessionStatus string

const (
	SessionIdle        SessionStatus = "idle"
	SessionRunning     SessionStatus = "running"
	SessionCompleted   SessionStatus = "completed"
	SessionFailed      SessionStatus = "failed"
	SessionInterrupted SessionStatus = "interrupted"
)

// Terminal reports whether the status has no outgoing transitions.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionCompleted, SessionFailed, SessionInterrupted:
		return true
	default:
		return false
	}
}

// ParseSessionStatus resolves a persisted status string. Unrecognized values
// fall back to SessionCompleted so stale history never blocks reloading.
func ParseSessionStatus(raw string) SessionStatus {
	switch SessionStatus(raw) {
	case SessionIdle, SessionRunning, SessionCompleted, SessionFailed, SessionInterrupted:
		return SessionStatus(raw)
	default:
		return SessionCompleted
	}
}

// TodoStatus is the state of a single todo item.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// ParseTodoStatus resolves a todo status string, defaulting to TodoPending
// for absent or unrecognized values.
func ParseTodoStatus(raw string) TodoStatus {
	switch TodoStatus(raw) {
	case TodoPending, TodoInProgress, TodoCompleted:
		return TodoStatus(raw)
	default:
		return TodoPending
	}
}
