package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"termfolio/internal/app"
	"termfolio/internal/config"
	"termfolio/internal/console"
	"termfolio/internal/content"
	"termfolio/internal/doctor"
	"termfolio/internal/logging"
	"termfolio/internal/render"
	"termfolio/internal/resume"
	"termfolio/internal/theme"
	"termfolio/internal/tui"
	"termfolio/internal/version"
)

func init() {
	// Query the background color before Bubble Tea takes over stdin, or the
	// terminal's reply leaks into the first keystrokes.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// cli carries the state shared by every subcommand once the persistent
// flags have been parsed.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfgFile    string
	contentDir string
	debug      bool

	cfg      config.Config
	log      *slog.Logger
	logClose io.Closer
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	c := &cli{in: in, out: out, errOut: errOut, log: logging.Discard()}
	defer c.close()
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "termfolio",
		Short:         "A portfolio you browse like a shell",
		Long:          "termfolio opens an interactive terminal portfolio. Type 'help' once inside.",
		Version:       version.Value,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ~/.config/termfolio/config.yaml)")
	pf.StringVar(&c.contentDir, "content-dir", "", "directory whose files override the bundled content")
	pf.BoolVarP(&c.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(
		c.newRunCmd(),
		c.newThemeCmd(),
		c.newDoctorCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) setup() error {
	var (
		cfg config.Config
		err error
	)
	if c.cfgFile != "" {
		p, perr := app.ExpandPath(c.cfgFile)
		if perr != nil {
			return perr
		}
		c.cfgFile = p
		cfg, err = config.LoadFile(p)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.contentDir != "" {
		cfg.Content.Dir = c.contentDir
	}
	if cfg.Content.Dir != "" {
		dir, err := app.ExpandPath(cfg.Content.Dir)
		if err != nil {
			return err
		}
		cfg.Content.Dir = dir
	}
	c.cfg = cfg

	logDir, err := app.LogDir()
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.Options{Dir: logDir, Level: cfg.Logging.Level, Debug: c.debug})
	if err != nil {
		fmt.Fprintf(c.errOut, "warning: logging disabled: %v\n", err)
		return nil
	}
	c.log = logger
	c.logClose = closer
	return nil
}

func (c *cli) close() {
	if c.logClose != nil {
		_ = c.logClose.Close()
		c.logClose = nil
	}
}

func (c *cli) saveConfig() error {
	if c.cfgFile != "" {
		return config.SaveFile(c.cfgFile, c.cfg)
	}
	return config.Save(c.cfg)
}

func (c *cli) identity() console.Identity {
	p := c.cfg.Profile
	return console.Identity{
		Prompt: console.Prompt{User: p.User, Host: p.Host, Path: "~"},
		Cwd:    p.Cwd,
		Uname:  p.Uname,
	}
}

// renderTheme resolves the active theme for this terminal. A broken theme
// is reported and the default palette is used instead.
func (c *cli) renderTheme() render.Theme {
	palette, _, err := theme.LoadActivePaletteHex(c.cfg)
	if err != nil {
		fmt.Fprintf(c.errOut, "warning: loading theme %q failed, using default: %v\n", c.cfg.Theme.Active, err)
		c.log.Warn("theme load failed", "theme", c.cfg.Theme.Active, "err", err)
	}
	return render.ThemeFromResolved(theme.ResolveForTerminal(palette, theme.DetectProfile()))
}

func (c *cli) library() (*content.Library, error) {
	return content.Load(c.cfg.Content.Dir)
}

func (c *cli) saver() resume.Saver {
	r := c.cfg.Resume
	return resume.Saver{
		Source:   r.Source,
		Filename: r.Filename,
		Dir:      r.Dir,
		Open:     r.Open,
		Runner:   app.ExecRunner{},
	}
}

func (c *cli) runTUI(ctx context.Context) error {
	lib, err := c.library()
	if err != nil {
		return err
	}
	startMode, err := console.ParseViewMode(c.cfg.UI.StartMode)
	if err != nil {
		return err
	}
	id := c.identity()
	renderer, err := render.NewTerminal(render.TerminalOptions{
		Theme:         c.renderTheme(),
		Prompt:        id.Prompt,
		MarkdownStyle: c.cfg.UI.MarkdownStyle,
	})
	if err != nil {
		return err
	}
	session := console.NewSession(console.Options{Content: lib, Identity: id, Logger: c.log})

	opts := tui.Options{
		Session:   session,
		Library:   lib,
		Renderer:  renderer,
		Saver:     c.saver(),
		Reload:    c.library,
		Logger:    c.log,
		StartMode: startMode,
		Mouse:     c.cfg.UI.Mouse,
		Version:   version.Value,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.cfg.Content.Watch && c.cfg.Content.Dir != "" {
		w, err := content.NewWatcher(c.cfg.Content.Dir, 0)
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		go func() {
			for {
				select {
				case err := <-w.Errors():
					c.log.Warn("content watcher", "err", err)
				case <-ctx.Done():
					return
				}
			}
		}()
		opts.Changes = changes
	}

	zone.NewGlobal()
	c.log.Info("tui start", "session", session.ID, "mode", startMode.String(), "content_dir", c.cfg.Content.Dir)
	return tui.RunApp(opts)
}

func (c *cli) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check terminal, config, theme and content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var stdout *os.File
			if f, ok := c.out.(*os.File); ok {
				stdout = f
			}
			report := doctor.Check(cmd.Context(), doctor.Options{
				Config:   c.cfg,
				Stdout:   stdout,
				LookPath: exec.LookPath,
			})
			for _, f := range report.Findings {
				fmt.Fprintf(c.out, "[%s] %s: %s\n", f.Status, f.Name, f.Detail)
			}
			if err := report.Err(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "doctor: ok")
			return nil
		},
	}
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(c.out, strings.TrimSpace(version.Value))
			return nil
		},
	}
}
