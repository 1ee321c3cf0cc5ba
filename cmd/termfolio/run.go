package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termfolio/internal/console"
	"termfolio/internal/render"
)

type runOptions struct {
	format     string
	width      int
	noDownload bool
	title      string
}

func (c *cli) newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run [command...]",
		Short: "Run console commands without the TUI and print the transcript",
		Long: "Each argument is submitted as one console command. With no arguments, " +
			"commands are read from stdin one per line. Use -- before commands that start with a dash.",
		Example: "  termfolio run about 'echo hi' --format html > about.html\n  printf 'help\\nskills\\n' | termfolio run --format plain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommands(cmd.Context(), args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", string(render.FormatANSI), "output format: ansi, plain or html")
	f.IntVarP(&opts.width, "width", "w", 80, "wrap width for ansi and plain output")
	f.BoolVar(&opts.noDownload, "no-download", false, "skip saving the resume when 'download' runs")
	f.StringVar(&opts.title, "title", "termfolio", "page title for html output")
	return cmd
}

func (c *cli) runCommands(ctx context.Context, args []string, opts runOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	lines := args
	if len(lines) == 0 {
		lines, err = readLines(c)
		if err != nil {
			return err
		}
	}

	lib, err := c.library()
	if err != nil {
		return err
	}
	id := c.identity()
	session := console.NewSession(console.Options{Content: lib, Identity: id, Logger: c.log})
	saver := c.saver()

	for _, line := range lines {
		out := session.Submit(line)
		if out.Download && !opts.noDownload {
			path, err := saver.Save(ctx)
			if err != nil {
				fmt.Fprintf(c.errOut, "warning: resume download failed: %v\n", err)
				c.log.Warn("resume download failed", "err", err)
			} else {
				c.log.Info("resume saved", "path", path)
			}
		}
		if out.Quit {
			break
		}
	}

	r, err := c.renderer(format, id.Prompt, opts.width)
	if err != nil {
		return err
	}
	transcript := render.Transcript(r, session.Output.Blocks())
	if format == render.FormatHTML {
		transcript = render.Page(opts.title, transcript)
	}
	_, err = fmt.Fprintln(c.out, transcript)
	return err
}

func (c *cli) renderer(format render.Format, prompt console.Prompt, width int) (render.Renderer, error) {
	switch format {
	case render.FormatHTML:
		return render.NewHTML(prompt), nil
	case render.FormatPlain:
		return render.NewPlain(prompt, width)
	default:
		return render.NewTerminal(render.TerminalOptions{
			Theme:         c.renderTheme(),
			Prompt:        prompt,
			MarkdownStyle: c.cfg.UI.MarkdownStyle,
			Width:         width,
		})
	}
}

func readLines(c *cli) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
