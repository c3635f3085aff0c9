// internal/session/projector_test.go
package session

import (
	"testing"

	"github.com/user/codewatch/internal/stream"
	"github.com/user/codewatch/internal/types"
)

func TestProjectorToolCallThenUse(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"Read","input":{"path":"/tmp/a.txt"}}}`)))
	p.Apply(stream.Classify([]byte(`{"type":"tool_use","part":{"tool":"Read","state":{"input":{"path":"/tmp/a.txt"},"output":"hello"}}}`)))

	messages := p.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}
	m := messages[0]
	if m.ToolName != "Read" || m.Status != types.MessageCompleted || m.Content != "/tmp/a.txt" {
		t.Errorf("unexpected message: %+v", m)
	}
}

func TestProjectorToolUseError(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"bash","input":{"command":"false"}}}`)))
	p.Apply(stream.Classify([]byte(`{"type":"tool_use","part":{"tool":"bash","state":{"input":{"command":"false"},"status":"error","output":"exit 1"}}}`)))

	messages := p.Messages()
	if len(messages) != 1 || messages[0].Status != types.MessageFailed {
		t.Fatalf("expected one failed message, got %+v", messages)
	}
}

func TestProjectorIntermediateToolUse(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"Read","input":{"path":"/tmp/a.txt"}}}`)))
	// Intermediate update without output: message stays running.
	p.Apply(stream.Classify([]byte(`{"type":"tool_use","part":{"tool":"Read","state":{"input":{"path":"/tmp/a.txt"}}}}`)))

	messages := p.Messages()
	if len(messages) != 1 || messages[0].Status != types.MessageRunning {
		t.Fatalf("expected one running message, got %+v", messages)
	}
}

func TestProjectorOrphanToolUse(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"tool_use","part":{"tool":"Read","state":{"input":{"path":"/etc/hosts"},"output":"127.0.0.1"}}}`)))

	messages := p.Messages()
	if len(messages) != 1 {
		t.Fatalf("orphan tool use must become a standalone message, got %d", len(messages))
	}
	if messages[0].Status != types.MessageCompleted {
		t.Errorf("expected completed, got %s", messages[0].Status)
	}
}

func TestProjectorLastInFirstMatched(t *testing.T) {
	var p Projector
	// Two concurrent calls to the same tool with prefix-related inputs.
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"Read","input":{"path":"/tmp/a"}}}`)))
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"Read","input":{"path":"/tmp/a/b"}}}`)))
	p.Apply(stream.Classify([]byte(`{"type":"tool_use","part":{"tool":"Read","state":{"input":{"path":"/tmp/a"},"output":"x"}}}`)))

	messages := p.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(messages))
	}
	// The most recent running message wins the correlation.
	if messages[1].Status != types.MessageCompleted {
		t.Errorf("expected the later call resolved first, got %+v", messages)
	}
	if messages[0].Status != types.MessageRunning {
		t.Errorf("expected the earlier call still running, got %+v", messages)
	}
}

func TestProjectorStepStartSuppressed(t *testing.T) {
	var p Projector
	if changed := p.Apply(stream.Classify([]byte(`{"type":"step_start","part":{}}`))); changed {
		t.Error("step_start must not change the model")
	}
	if len(p.Messages()) != 0 {
		t.Error("step_start must not produce a message")
	}
}

func TestProjectorFinishMessages(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"step_finish","part":{}}`)))
	messages := p.Messages()
	if len(messages) != 1 || messages[0].Content != "Completed" || messages[0].Type != types.MessageSystem {
		t.Fatalf("expected Completed system message, got %+v", messages)
	}
}

func TestProjectorSecondaryFinishProducesNoMessage(t *testing.T) {
	var p Projector
	p.Apply(stream.SecondaryFinish("ses_1"))
	if len(p.Messages()) != 0 {
		t.Error("secondary finish must not produce a message")
	}
}

func TestProjectorSecondaryFinishUpdatesUsage(t *testing.T) {
	var p Projector
	e := stream.SecondaryFinish("ses_1")
	e.Usage = &types.TokenUsage{Input: 10, Output: 5}
	p.Apply(e)
	if len(p.Messages()) != 0 {
		t.Error("secondary finish must not produce a message")
	}
	if usage := p.Usage(); usage == nil || usage.ContextTokens() != 15 {
		t.Errorf("expected usage update, got %+v", usage)
	}
}

func TestProjectorUnknownIgnored(t *testing.T) {
	var p Projector
	if changed := p.Apply(stream.Classify([]byte(`garbage`))); changed {
		t.Error("unknown events must not change the model")
	}
}

func TestProjectorTodoReplacement(t *testing.T) {
	var p Projector
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"TodoWrite","input":{"todos":[{"id":"1","content":"first"},{"id":"2","content":"second","status":"completed"}]}}}`)))

	todos := p.Todos()
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[1].Status != types.TodoCompleted {
		t.Errorf("expected completed, got %s", todos[1].Status)
	}

	// A later todo write replaces the list wholesale.
	p.Apply(stream.Classify([]byte(`{"type":"tool_call","part":{"tool":"todo_write","input":{"todos":[{"id":"3","content":"only"}]}}}`)))
	todos = p.Todos()
	if len(todos) != 1 || todos[0].ID != "3" {
		t.Errorf("expected wholesale replacement, got %+v", todos)
	}
}
