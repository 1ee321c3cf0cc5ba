package app

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return nil, nil
}

func TestOpener(t *testing.T) {
	if name, _ := Opener("darwin"); name != "open" {
		t.Fatalf("unexpected darwin opener: %s", name)
	}
	if name, _ := Opener("linux"); name != "xdg-open" {
		t.Fatalf("unexpected linux opener: %s", name)
	}
	name, args := Opener("windows")
	if name != "rundll32" || len(args) != 1 {
		t.Fatalf("unexpected windows opener: %s %v", name, args)
	}
}

func TestOpenFilePassesPath(t *testing.T) {
	r := &recordingRunner{}
	if err := OpenFile(context.Background(), r, "/tmp/resume.pdf"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(r.args) == 0 || r.args[len(r.args)-1] != "/tmp/resume.pdf" {
		t.Fatalf("path not passed to opener: %v", r.args)
	}
}

func TestExpandPath(t *testing.T) {
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ExpandPath("~/Downloads")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "Downloads") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got, _ := ExpandPath(""); got != "" {
		t.Fatalf("empty path should stay empty, got %q", got)
	}
}

func TestConfigDirUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if dir != filepath.Join(home, ".config", "termfolio") {
		t.Fatalf("unexpected config dir: %s", dir)
	}
}

func TestExecRunnerFoldsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo hi")
	if err != nil || string(out) != "hi\n" {
		t.Fatalf("unexpected run result: %q %v", out, err)
	}
	_, err = ExecRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil || !strings.Contains(err.Error(), "boom") || !strings.HasPrefix(err.Error(), "sh: ") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}
