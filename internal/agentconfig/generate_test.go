// internal/agentconfig/generate_test.go
package agentconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/codewatch/internal/policy"
)

func testRules() []policy.Rule {
	return []policy.Rule{
		{Category: "edit", Disposition: policy.Allow},
		{Category: "shell", Pattern: "git *", Disposition: policy.Allow},
		{Category: "shell", Disposition: policy.Ask},
		{Category: "fetch", Disposition: policy.Deny},
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	agents := map[string]AgentDef{
		"build": {Prompt: "You build things.", Model: "small-1"},
	}
	cfg := Generate("big-1", agents, testRules())

	first, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate("big-1", agents, testRules()).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("unchanged inputs must encode byte-identically")
	}

	var decoded map[string]any
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	perm, ok := decoded["permission"].(map[string]any)
	if !ok {
		t.Fatal("missing permission mapping")
	}
	if perm["shell"] != "allow" {
		t.Errorf("scoped shell rule should compile to allow, got %v", perm["shell"])
	}
	if perm["fetch"] != "deny" {
		t.Errorf("expected deny, got %v", perm["fetch"])
	}
}

func TestWriteSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent", "config.json")
	cfg := Generate("big-1", nil, testRules())

	if err := Write(path, cfg); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := Write(path, cfg); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(info.ModTime()) {
		t.Error("identical config should not be rewritten")
	}

	cfg.Model = "big-2"
	if err := Write(path, cfg); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("big-2")) {
		t.Error("changed config should be rewritten")
	}
}
