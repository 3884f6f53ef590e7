package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  top-secret \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "gemini api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "top-secret" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadInlineValue(t *testing.T) {
	t.Parallel()

	secret, err := Load(Source{Name: "token", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "inline" {
		t.Fatalf("expected inline secret, got %q", secret)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "token", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("expected file to win over inline value, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Name: "empty"}); err == nil {
		t.Fatalf("expected error for unconfigured secret")
	}

	if _, err := Load(Source{Name: "missing", File: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "blank")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	if _, err := Load(Source{Name: "blank", File: path}); err == nil {
		t.Fatalf("expected error for empty secret file")
	}
}
