// internal/stream/classify.go
package stream

import (
	"encoding/json"
	"sort"

	"github.com/user/codewatch/internal/tool"
	"github.com/user/codewatch/internal/types"
)

// rawPayload mirrors the subset of the agent process's line schema this
// system consumes. The schema is stable but uncontrolled; unknown fields are
// ignored and every field is optional.
type rawPayload struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionID"`
	Part      struct {
		Text  string         `json:"text"`
		Tool  string         `json:"tool"`
		Input map[string]any `json:"input"`
		State struct {
			Input  map[string]any `json:"input"`
			Output string         `json:"output"`
			Status string         `json:"status"`
			Error  string         `json:"error"`
		} `json:"state"`
		Tokens *struct {
			Input  int `json:"input"`
			Output int `json:"output"`
			Cache  struct {
				Read  int `json:"read"`
				Write int `json:"write"`
			} `json:"cache"`
		} `json:"tokens"`
	} `json:"part"`
}

// Classify turns one raw stream line into a typed Event. It is total: every
// input produces exactly one Event, and malformed JSON or an unrecognized
// type field yields KindUnknown rather than an error.
func Classify(raw []byte) Event {
	event := Event{Kind: KindUnknown, Raw: string(raw)}

	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return event
	}
	event.SessionID = types.ExternalSessionID(payload.SessionID)

	switch payload.Type {
	case "text":
		event.Kind = KindAssistantText
		event.Text = payload.Part.Text

	case "tool_call":
		event.Kind = KindToolCall
		event.RawTool = payload.Part.Tool
		event.ToolName = tool.Normalize(payload.Part.Tool)
		event.Args = payload.Part.Input
		event.ToolInput = extractInput(payload.Part.Input)
		event.Text = event.ToolInput

	case "tool_use":
		event.Kind = KindToolUse
		event.RawTool = payload.Part.Tool
		event.ToolName = tool.Normalize(payload.Part.Tool)
		event.Args = payload.Part.State.Input
		if event.Args == nil {
			event.Args = payload.Part.Input
		}
		event.ToolInput = extractInput(event.Args)
		event.Text = event.ToolInput
		event.Output = payload.Part.State.Output
		event.Failed = payload.Part.State.Status == "error" || payload.Part.State.Error != ""

	case "step_start":
		// Internal reasoning step; carries no user-visible content.
		event.Kind = KindStepStart

	case "step_finish":
		event.Kind = KindFinish
		event.Text = "Completed"
		if payload.Part.Tokens != nil {
			event.Usage = &types.TokenUsage{
				Input:      payload.Part.Tokens.Input,
				Output:     payload.Part.Tokens.Output,
				CacheRead:  payload.Part.Tokens.Cache.Read,
				CacheWrite: payload.Part.Tokens.Cache.Write,
			}
		}
	}

	return event
}

// extractInput picks a single best-effort scalar from a tool input map: the
// "path" key when present, otherwise the first string-valued key in sorted
// order so the choice is deterministic.
func extractInput(input map[string]any) string {
	if input == nil {
		return ""
	}
	if path, ok := input["path"].(string); ok && path != "" {
		return path
	}

	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := input[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
