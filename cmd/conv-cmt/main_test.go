package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wxxedu/conv-cmt/internal/output"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "conv-cmt") {
		t.Errorf("--version output should contain 'conv-cmt': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	for _, expected := range []string{"conv-cmt", "Usage:", "--json", "--color", "--config", "commit", "check", "serve"} {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_InvalidColor(t *testing.T) {
	isolateConfig(t)
	_, err := execute(t, t.TempDir(), "", "types", "--color", "sometimes")
	if err == nil {
		t.Fatal("expected error for invalid --color")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}

func TestRootCommand_JSONInteractive(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, t.TempDir(), "", "--json")
	if err == nil {
		t.Fatal("expected error for interactive commit in JSON mode")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\nOutput: %s", err, out)
	}
	if !strings.Contains(result["error"].(string), "check --json") {
		t.Errorf("error = %v, want hint about check --json", result["error"])
	}
	if result["code"] != float64(output.ExitUserError) {
		t.Errorf("code = %v, want %d", result["code"], output.ExitUserError)
	}
}

func TestBuildVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, gitCommit, date
	defer func() { version, gitCommit, date = oldVersion, oldCommit, oldDate }()

	version, gitCommit, date = "1.0.0", "none", "unknown"
	if got := buildVersion(); got != "1.0.0" {
		t.Errorf("buildVersion() = %q, want 1.0.0", got)
	}

	gitCommit, date = "abcdef1234567", "2026-01-01"
	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-01-01)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
