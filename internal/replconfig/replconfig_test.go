package replconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Fatalf("expected default prompt, got %q", cfg.Prompt)
	}
}

func TestLoadFromOverridesPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".loxrc.yaml")
	if err := os.WriteFile(path, []byte("prompt: \"lox> \"\nshow_bytecode: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "lox> " {
		t.Fatalf("expected overridden prompt, got %q", cfg.Prompt)
	}
	if !cfg.ShowBytecode {
		t.Fatalf("expected show_bytecode to be true")
	}
	if cfg.HistoryFile == "" {
		t.Fatalf("expected default history file to survive a partial override")
	}
}

func TestLoadFromMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".loxrc.yaml")
	if err := os.WriteFile(path, []byte("prompt: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("expected an error for malformed yaml")
	}
}
