package config

import "testing"

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	nested := map[string]any{
		"log_level": "debug",
		"agent": map[string]any{
			"model": "m1",
		},
		"telegram": map[string]any{
			"token":   "t",
			"chat_id": float64(42),
		},
	}

	flat := Flatten(nested)
	if flat["agent.model"] != "m1" {
		t.Errorf("expected m1, got %v", flat["agent.model"])
	}
	if flat["telegram.chat_id"] != float64(42) {
		t.Errorf("expected 42, got %v", flat["telegram.chat_id"])
	}

	back := Unflatten(flat)
	agent, ok := back["agent"].(map[string]any)
	if !ok || agent["model"] != "m1" {
		t.Errorf("round trip lost agent.model: %v", back)
	}
}

func TestIsSecretKey(t *testing.T) {
	if !IsSecretKey("telegram.token") {
		t.Error("telegram.token should be secret")
	}
	if IsSecretKey("agent.model") {
		t.Error("agent.model should not be secret")
	}
}

func TestMaskSecrets(t *testing.T) {
	flat := map[string]any{
		"telegram.token": "abcdefgh",
		"agent.model":    "m1",
	}
	masked := MaskSecrets(flat)
	if masked["telegram.token"] != "***efgh" {
		t.Errorf("expected ***efgh, got %v", masked["telegram.token"])
	}
	if masked["agent.model"] != "m1" {
		t.Errorf("non-secrets must pass through, got %v", masked["agent.model"])
	}

	short := MaskSecrets(map[string]any{"telegram.token": "ab"})
	if short["telegram.token"] != "***ab" {
		t.Errorf("expected ***ab, got %v", short["telegram.token"])
	}

	empty := MaskSecrets(map[string]any{"telegram.token": ""})
	if empty["telegram.token"] != "" {
		t.Errorf("empty values stay empty, got %v", empty["telegram.token"])
	}
}
