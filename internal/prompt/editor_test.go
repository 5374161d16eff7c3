package prompt

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", ResolveEditor(""))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", ResolveEditor(""))

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, "code --wait", ResolveEditor(""))

	assert.Equal(t, "hx", ResolveEditor("hx"))
}

// scriptEditor returns an editor command that runs body with the file as $1.
func scriptEditor(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell editors need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not installed")
	}
	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	return "sh " + script
}

func TestExternalEditor_Edit(t *testing.T) {
	var stderr bytes.Buffer
	ed := ExternalEditor{
		Command: scriptEditor(t, `printf 'Explains the change.\n\n' > "$1"`),
		Stdin:   bytes.NewReader(nil),
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	}

	text, ok, err := ed.Edit(context.Background(), "")
	require.NoError(t, err, stderr.String())
	assert.True(t, ok)
	assert.Equal(t, "Explains the change.", text)
}

func TestExternalEditor_UnchangedIsAbort(t *testing.T) {
	ed := ExternalEditor{
		Command: scriptEditor(t, `true`),
		Stdin:   bytes.NewReader(nil),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}

	text, ok, err := ed.Edit(context.Background(), "keep me")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestExternalEditor_Failure(t *testing.T) {
	ed := ExternalEditor{
		Command: scriptEditor(t, `exit 3`),
		Stdin:   bytes.NewReader(nil),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}

	_, _, err := ed.Edit(context.Background(), "")
	assert.ErrorContains(t, err, "running editor")

	missing := ExternalEditor{Command: "conv-cmt-no-such-editor"}
	_, _, err = missing.Edit(context.Background(), "")
	assert.ErrorContains(t, err, "not found")
}
