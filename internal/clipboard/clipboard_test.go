package clipboard

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestService_FallbackWritesOSC52(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "tty")
	if err := os.WriteFile(fake, nil, 0600); err != nil {
		t.Fatalf("create fake tty: %v", err)
	}

	orig := ttyPath
	ttyPath = fake
	defer func() { ttyPath = orig }()

	service := NewService(false)
	if !service.copyOSC52("CCO") {
		t.Fatal("Expected fallback copy to succeed")
	}

	data, err := os.ReadFile(fake)
	if err != nil {
		t.Fatalf("read fake tty: %v", err)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte("CCO"))
	want := "\x1b]52;c;" + encoded + "\x07"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestService_FallbackFailsWithoutTerminal(t *testing.T) {
	orig := ttyPath
	ttyPath = filepath.Join(t.TempDir(), "missing")
	defer func() { ttyPath = orig }()

	service := NewService(false)
	if service.copyOSC52("CCO") {
		t.Error("Expected fallback to report failure with no terminal device")
	}
}

func TestService_CopyNeverPanics(t *testing.T) {
	orig := ttyPath
	ttyPath = filepath.Join(t.TempDir(), "missing")
	defer func() { ttyPath = orig }()

	service := NewService(false)

	inputs := []string{
		"",
		"CCO",
		strings.Repeat("C", 1<<16),
		"emoji \U0001F9EA and control \x00\x1b bytes",
	}

	for _, text := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Copy(%.20q) panicked: %v", text, r)
				}
			}()
			service.Copy(text)
		}()
	}
}
