// internal/agentconfig/generate.go

// Package agentconfig produces the runtime configuration file the external
// agent process reads at spawn time. The output schema belongs to that
// process; it must be emitted byte-for-byte in the shape it expects.
package agentconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/codewatch/internal/policy"
)

// AgentDef declares one named agent: its system prompt and an optional model
// override.
type AgentDef struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// RuntimeConfig is the full configuration artifact consumed by the external
// process: compiled permission policy plus agent definitions and model
// selection.
type RuntimeConfig struct {
	Model      string                        `json:"model"`
	Agent      map[string]AgentDef           `json:"agent,omitempty"`
	Permission map[string]policy.Disposition `json:"permission"`
}

// Generate composes the compiled permission policy with agent prompts and
// model selection. It is a pure function of its inputs and safe to call
// concurrently.
func Generate(model string, agents map[string]AgentDef, rules []policy.Rule) RuntimeConfig {
	return RuntimeConfig{
		Model:      model,
		Agent:      agents,
		Permission: policy.Compile(rules),
	}
}

// Encode marshals the config with stable key ordering and a trailing newline.
// Repeated encodings of an unchanged config are byte-identical.
func (c RuntimeConfig) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal runtime config: %w", err)
	}
	return append(data, '\n'), nil
}

// Write encodes the config and writes it atomically to path. When the file
// already holds identical bytes the write is skipped, so the external process
// can detect "no config change" cheaply via mtime.
func Write(path string, c RuntimeConfig) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp config: %w", err)
	}
	return nil
}
