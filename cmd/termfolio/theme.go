package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termfolio/internal/theme"
)

func (c *cli) newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List, apply, install and uninstall color themes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in and installed themes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.themeList()
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Print the active theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.themeCurrent()
			},
		},
		&cobra.Command{
			Use:   "apply <theme-id|default>",
			Short: "Make a theme active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.themeApply(args[0])
			},
		},
		&cobra.Command{
			Use:   "install <path|url|theme-id>",
			Short: "Install a theme file, URL, or an id from theme.index_url",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.themeInstall(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "uninstall <theme-id>",
			Short: "Remove an installed theme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.themeUninstall(args[0])
			},
		},
	)
	return cmd
}

func (c *cli) activeTheme() string {
	if c.cfg.Theme.Active == "" {
		return theme.DefaultID
	}
	return c.cfg.Theme.Active
}

func (c *cli) themeList() error {
	entries, err := theme.List()
	if err != nil {
		return err
	}
	active := c.activeTheme()
	fmt.Fprintf(c.out, "themes (active: %s):\n", active)
	for _, e := range entries {
		prefix := "-"
		if e.ID == active {
			prefix = "*"
		}
		suffix := ""
		if e.Builtin {
			suffix = " (built-in)"
		}
		fmt.Fprintf(c.out, "%s %s%s\n", prefix, e.ID, suffix)
	}
	return nil
}

func (c *cli) themeCurrent() error {
	t, err := theme.Lookup(c.activeTheme())
	if err != nil {
		return err
	}
	if t.Name != "" && t.Name != t.ID {
		fmt.Fprintf(c.out, "%s (%s)\n", t.ID, t.Name)
		return nil
	}
	fmt.Fprintln(c.out, t.ID)
	return nil
}

func (c *cli) themeApply(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("theme id is required")
	}
	t, err := theme.Lookup(id)
	if err != nil {
		return err
	}
	c.cfg.Theme.Active = t.ID
	if err := c.saveConfig(); err != nil {
		return err
	}
	c.log.Info("theme applied", "theme", t.ID)
	fmt.Fprintf(c.out, "applied theme: %s\n", t.ID)
	return nil
}

func (c *cli) themeInstall(cmd *cobra.Command, arg string) error {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return errors.New("theme source is required")
	}
	var (
		t   theme.ThemeFile
		err error
	)
	if theme.IsSource(arg) {
		t, err = theme.Fetch(cmd.Context(), arg)
	} else {
		if c.cfg.Theme.IndexURL == "" {
			return fmt.Errorf("theme %q is not a path or URL and theme.index_url is not set", arg)
		}
		t, err = theme.FetchThemeByID(cmd.Context(), c.cfg.Theme.IndexURL, arg)
	}
	if err != nil {
		return err
	}
	if err := theme.SaveThemeFile(t); err != nil {
		return err
	}
	c.log.Info("theme installed", "theme", t.ID, "source", arg)
	fmt.Fprintf(c.out, "installed theme: %s\n", t.ID)
	return nil
}

func (c *cli) themeUninstall(id string) error {
	id = strings.TrimSpace(id)
	if err := theme.RemoveLocalTheme(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "uninstalled theme: %s\n", id)
	if c.activeTheme() != id {
		return nil
	}
	c.cfg.Theme.Active = theme.DefaultID
	if err := c.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "applied theme: %s\n", theme.DefaultID)
	return nil
}
