package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"termfolio/internal/app"
	"termfolio/internal/config"
	"termfolio/internal/content"
	"termfolio/internal/theme"
)

type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	default:
		return "fail"
	}
}

type Finding struct {
	Name   string
	Status Status
	Detail string
}

type Report struct {
	Findings []Finding
}

// Err returns nil unless at least one check failed.
func (r Report) Err() error {
	var errs []error
	for _, f := range r.Findings {
		if f.Status == StatusFail {
			errs = append(errs, fmt.Errorf("%s: %s", f.Name, f.Detail))
		}
	}
	return errors.Join(errs...)
}

type Options struct {
	Config   config.Config
	Stdout   *os.File
	LookPath func(string) (string, error)
}

func Check(ctx context.Context, opts Options) Report {
	var r Report
	add := func(name string, s Status, detail string) {
		r.Findings = append(r.Findings, Finding{Name: name, Status: s, Detail: detail})
	}

	if opts.Stdout != nil && (isatty.IsTerminal(opts.Stdout.Fd()) || isatty.IsCygwinTerminal(opts.Stdout.Fd())) {
		add("terminal", StatusOK, "stdout is a terminal")
	} else {
		add("terminal", StatusWarn, "stdout is not a terminal; interactive mode needs a tty")
	}

	profile := theme.ProfileName(theme.DetectProfile())
	if profile == "ascii" {
		add("colors", StatusWarn, "no color support detected")
	} else {
		add("colors", StatusOK, profile)
	}

	if err := opts.Config.Validate(); err != nil {
		add("config", StatusFail, err.Error())
	} else {
		add("config", StatusOK, "valid")
	}

	if _, err := theme.Lookup(opts.Config.Theme.Active); err != nil {
		add("theme", StatusFail, err.Error())
	} else {
		add("theme", StatusOK, opts.Config.Theme.Active)
	}

	checkContent(opts.Config.Content.Dir, add)
	checkResume(opts, add)

	if err := ctx.Err(); err != nil {
		add("doctor", StatusFail, err.Error())
	}
	return r
}

func checkContent(dir string, add func(string, Status, string)) {
	var lib *content.Library
	var err error
	if dir == "" {
		lib, err = content.Embedded()
	} else {
		lib, err = content.Load(dir)
	}
	if err != nil {
		add("content", StatusFail, err.Error())
		return
	}
	if missing := lib.Missing(content.RequiredTopics()...); len(missing) > 0 {
		add("content", StatusFail, fmt.Sprintf("missing topics: %v", missing))
		return
	}
	if dir == "" {
		add("content", StatusOK, "embedded")
		return
	}
	add("content", StatusOK, dir)
}

func checkResume(opts Options, add func(string, Status, string)) {
	cfg := opts.Config.Resume
	if cfg.Source != "" {
		src, err := app.ExpandPath(cfg.Source)
		if err == nil {
			_, err = os.Stat(src)
		}
		if err != nil {
			add("resume", StatusFail, err.Error())
			return
		}
	}
	add("resume", StatusOK, cfg.Filename)

	if !cfg.Open || opts.LookPath == nil {
		return
	}
	name, _ := app.Opener(runtime.GOOS)
	if _, err := opts.LookPath(name); err != nil {
		add("opener", StatusWarn, fmt.Sprintf("%s not found in PATH", name))
		return
	}
	add("opener", StatusOK, name)
}
