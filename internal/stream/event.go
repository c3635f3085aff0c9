// internal/stream/event.go

// Package stream classifies the newline-delimited JSON event stream emitted
// by the external agent process into a closed set of typed events. The input
// schema is an external contract: extra fields are ignored and malformed
// payloads degrade to KindUnknown, never to an error.
package stream

import "github.com/user/codewatch/internal/types"

// Kind identifies the classified variant of a stream event.
type Kind string

const (
	KindAssistantText Kind = "assistant_text"
	KindToolCall      Kind = "tool_call"
	KindToolUse       Kind = "tool_use"
	KindStepStart     Kind = "step_start"
	KindFinish        Kind = "finish"
	KindUnknown       Kind = "unknown"
)

// Event is one classified unit derived from a single output line. It is
// immutable after classification.
type Event struct {
	Kind      Kind
	Raw       string // original line, retained for diagnostics
	SessionID types.ExternalSessionID

	// Text is the rendered human-readable content for the kind. It is empty
	// for step_start and unknown events, which are never user-visible.
	Text string

	// Tool fields, populated only for KindToolCall and KindToolUse.
	ToolName  string         // canonical short name
	RawTool   string         // identifier as emitted by the process
	ToolInput string         // best-effort scalar extracted from the input
	Args      map[string]any // full decoded input, for todo-list extraction

	// Output carries the tool result for KindToolUse. A non-empty value is
	// the completion signal; Failed marks an error outcome.
	Output string
	Failed bool

	// IsSecondaryFinish distinguishes "agent went idle" from true task
	// completion. Only KindFinish events constructed via SecondaryFinish
	// carry true; classified step_finish payloads always carry false.
	IsSecondaryFinish bool

	Usage *types.TokenUsage
}

// SecondaryFinish builds the idle signal for a session. The process
// collaborator reports idleness out of band, so this event is constructed by
// the caller rather than classified from a stream line.
func SecondaryFinish(sessionID types.ExternalSessionID) Event {
	return Event{
		Kind:              KindFinish,
		SessionID:         sessionID,
		IsSecondaryFinish: true,
	}
}
