// internal/session/projector.go

// Package session owns the conversation model for one agent run: the ordered
// message list, the todo snapshot, and the lifecycle state machine. Events for
// a session must be applied in arrival order; the tool-call correlation below
// is order-dependent and is never safe to parallelize within a session.
package session

import (
	"time"

	"github.com/user/codewatch/internal/stream"
	"github.com/user/codewatch/internal/tool"
	"github.com/user/codewatch/internal/types"
)

// Projector maps classified events to message mutations: append a new
// message, update a running tool message in place, or suppress. It is the
// only writer of the live message list.
type Projector struct {
	messages []types.Message
	todos    []types.TodoItem
	usage    *types.TokenUsage
}

// Apply projects one event onto the model and reports whether anything
// user-visible changed.
func (p *Projector) Apply(e stream.Event) bool {
	switch e.Kind {
	case stream.KindAssistantText:
		if e.Text == "" {
			return false
		}
		p.append(types.Message{
			Type:    types.MessageAssistant,
			Content: e.Text,
		})
		return true

	case stream.KindToolCall:
		p.maybeReplaceTodos(e)
		p.append(types.Message{
			Type:      types.MessageTool,
			Content:   e.ToolInput,
			ToolName:  e.ToolName,
			ToolInput: e.ToolInput,
			Status:    types.MessageRunning,
		})
		return true

	case stream.KindToolUse:
		p.maybeReplaceTodos(e)
		return p.applyToolUse(e)

	case stream.KindStepStart:
		// Internal reasoning; never user-facing.
		return false

	case stream.KindFinish:
		if e.Usage != nil {
			// Last write wins.
			usage := *e.Usage
			p.usage = &usage
		}
		if e.IsSecondaryFinish {
			// Idle signal for the tracker, not a conversation entry.
			return e.Usage != nil
		}
		p.append(types.Message{
			Type:    types.MessageSystem,
			Content: e.Text,
		})
		return true

	default:
		return false
	}
}

// applyToolUse correlates a tool result to a prior running message and
// resolves its status. A result with no matching message is an orphan update:
// it is recorded as a standalone message so no agent activity silently
// disappears from history.
func (p *Projector) applyToolUse(e stream.Event) bool {
	status := types.MessageRunning
	switch {
	case e.Failed:
		status = types.MessageFailed
	case e.Output != "":
		status = types.MessageCompleted
	}

	if i := p.matchRunning(e); i >= 0 {
		if status == types.MessageRunning {
			// Intermediate update before final output; nothing to change.
			return false
		}
		p.messages[i].Status = status
		return true
	}

	p.append(types.Message{
		Type:      types.MessageTool,
		Content:   e.ToolInput,
		ToolName:  e.ToolName,
		ToolInput: e.ToolInput,
		Status:    status,
	})
	return true
}

// matchRunning finds the index of the unresolved tool message this result
// belongs to: same canonical tool name and an equal or prefix-equal input
// signature. The most recently created running message wins, modeling a call
// stack rather than a queue.
func (p *Projector) matchRunning(e stream.Event) int {
	for i := len(p.messages) - 1; i >= 0; i-- {
		m := p.messages[i]
		if m.Type != types.MessageTool || m.Status != types.MessageRunning {
			continue
		}
		if m.ToolName != e.ToolName {
			continue
		}
		if inputsMatch(m.ToolInput, e.ToolInput) {
			return i
		}
	}
	return -1
}

func inputsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	return a[:len(b)] == b
}

// maybeReplaceTodos wholesale-replaces the todo snapshot when the event is a
// todo-write tool invocation. Lists are never merged item by item.
func (p *Projector) maybeReplaceTodos(e stream.Event) {
	if !tool.IsTodoWrite(e.RawTool) {
		return
	}
	entries, ok := e.Args["todos"].([]any)
	if !ok {
		return
	}
	p.todos = tool.ParseTodoList(entries)
}

func (p *Projector) append(m types.Message) {
	m.CreatedAt = time.Now()
	p.messages = append(p.messages, m)
}

// Messages returns a copy of the live message list; callers must treat it as
// a snapshot-on-read.
func (p *Projector) Messages() []types.Message {
	out := make([]types.Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Todos returns a copy of the current todo snapshot.
func (p *Projector) Todos() []types.TodoItem {
	out := make([]types.TodoItem, len(p.todos))
	copy(out, p.todos)
	return out
}

// Usage returns the latest token usage reported by the process, or nil.
func (p *Projector) Usage() *types.TokenUsage {
	if p.usage == nil {
		return nil
	}
	usage := *p.usage
	return &usage
}
