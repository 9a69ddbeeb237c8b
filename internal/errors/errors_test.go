package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	if got := Format(errors.New("directive not found")); got != "Error: directive not found" {
		t.Errorf("Format = %q", got)
	}

	wrapped := fmt.Errorf("failed to restock shop: %w", errors.New("rate limit exceeded"))
	if got := Format(wrapped); got != "Error: failed to restock shop: rate limit exceeded" {
		t.Errorf("Format(wrapped) = %q", got)
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{"plain", "insufficient credits", nil, "Error: insufficient credits"},
		{"one arg", "no directive matches %q", []interface{}{"medit"}, `Error: no directive matches "medit"`},
		{"two args", "have %d CR, need %d CR", []interface{}{100, 250}, "Error: have 100 CR, need 250 CR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatf(tt.format, tt.args...); got != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.expected)
			}
		})
	}
}

// Fatal exits the process, so it runs in a re-exec'd subprocess.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("claim rejected"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok || e.Success() {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if e.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
	}
	if got := stderr.String(); !strings.Contains(got, "Error: claim rejected") {
		t.Errorf("Fatal() stderr = %q, want it to contain the formatted error", got)
	}
}

func TestFatalNilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalNilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit non-zero: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("document %q unreadable after %d attempts", "shop", 3)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok || e.Success() {
		t.Fatalf("Fatalf() did not exit with error: %v", err)
	}
	if got := stderr.String(); !strings.Contains(got, `Error: document "shop" unreadable after 3 attempts`) {
		t.Errorf("Fatalf() stderr = %q", got)
	}
}
