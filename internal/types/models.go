// internal/types/models.go
package types

import "time"

// MessageType distinguishes the three kinds of conversation entries.
type MessageType string

const (
	MessageAssistant MessageType = "assistant"
	MessageTool      MessageType = "tool"
	MessageSystem    MessageType = "system"
)

// MessageStatus is the tool-call lifecycle state carried by tool messages.
// A tool message is created directly in Running; the pending phase of the
// external process is not observable as a separate state.
type MessageStatus string

const (
	MessageRunning   MessageStatus = "running"
	MessageCompleted MessageStatus = "completed"
	MessageFailed    MessageStatus = "failed"
)

// Message is one durable, user-facing unit of conversation history.
// Insertion order is display order; only tool messages are ever updated
// in place, and only while their status is Running.
type Message struct {
	Type      MessageType   `json:"type"`
	Content   string        `json:"content"`
	ToolName  string        `json:"tool_name,omitempty"`
	ToolInput string        `json:"tool_input,omitempty"`
	Status    MessageStatus `json:"status,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// TodoItem is one entry of the session's todo snapshot. Whole lists are
// replaced atomically; items are never merged field by field.
type TodoItem struct {
	ID      string     `json:"id"`
	Content string     `json:"content"`
	Status  TodoStatus `json:"status"`
}

// TokenUsage is the latest token accounting reported by the agent process.
type TokenUsage struct {
	Input      int `json:"input"`
	Output     int `json:"output"`
	CacheRead  int `json:"cache_read"`
	CacheWrite int `json:"cache_write"`
}

// ContextTokens returns the number of tokens occupying the model's context
// window: live input, output, and cache reads.
func (u TokenUsage) ContextTokens() int {
	return u.Input + u.Output + u.CacheRead
}

// Session is the aggregate record for one agent run. Messages is the single
// source of truth for historical replay once the session reaches a terminal
// status; it is never reconstructed from raw events afterwards.
type Session struct {
	ID                SessionID         `json:"id"`
	Intent            string            `json:"intent"`
	ProjectPath       string            `json:"project_path,omitempty"`
	ExternalSessionID ExternalSessionID `json:"external_session_id,omitempty"`
	Status            SessionStatus     `json:"status"`
	Messages          []Message         `json:"messages"`
	Todos             []TodoItem        `json:"todos,omitempty"`
	ContextTokens     int               `json:"context_tokens,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	EndedAt           *time.Time        `json:"ended_at,omitempty"`
}
