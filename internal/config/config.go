package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"termfolio/internal/app"
	"termfolio/internal/console"
)

const CurrentVersion = 1

const envPrefix = "TERMFOLIO"

type Config struct {
	Version int           `mapstructure:"version" yaml:"version"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Content ContentConfig `mapstructure:"content" yaml:"content"`
	Resume  ResumeConfig  `mapstructure:"resume" yaml:"resume"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Profile ProfileConfig `mapstructure:"profile" yaml:"profile"`
}

type ThemeConfig struct {
	Active   string `mapstructure:"active" yaml:"active"`
	IndexURL string `mapstructure:"index_url" yaml:"index_url"`
}

type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // dark, light or notty
	Mouse         bool   `mapstructure:"mouse" yaml:"mouse"`
	StartMode     string `mapstructure:"start_mode" yaml:"start_mode"`
}

type ContentConfig struct {
	Dir   string `mapstructure:"dir" yaml:"dir"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

type ResumeConfig struct {
	Source   string `mapstructure:"source" yaml:"source"` // empty uses the bundled resume
	Filename string `mapstructure:"filename" yaml:"filename"`
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Open     bool   `mapstructure:"open" yaml:"open"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type ProfileConfig struct {
	User  string `mapstructure:"user" yaml:"user"`
	Host  string `mapstructure:"host" yaml:"host"`
	Cwd   string `mapstructure:"cwd" yaml:"cwd"`
	Uname string `mapstructure:"uname" yaml:"uname"`
}

func Default() Config {
	return Config{
		Version: CurrentVersion,
		Theme:   ThemeConfig{Active: "default"},
		UI: UIConfig{
			MarkdownStyle: "dark",
			Mouse:         true,
			StartMode:     "terminal",
		},
		Content: ContentConfig{Watch: true},
		Resume: ResumeConfig{
			Filename: "Mohan_Degalwade_Resume.pdf",
			Dir:      "~/Downloads",
		},
		Logging: LoggingConfig{Level: "info"},
		Profile: ProfileConfig{
			User:  "monty",
			Host:  "portfolio",
			Cwd:   "/home/monty/portfolio",
			Uname: "Linux portfolio 5.15.0 #1 SMP x86_64 GNU/Linux",
		},
	}
}

func EnsureDefaults(cfg *Config) {
	d := Default()
	if cfg.Version <= 0 {
		cfg.Version = CurrentVersion
	}
	if cfg.Theme.Active == "" {
		cfg.Theme.Active = d.Theme.Active
	}
	if cfg.UI.MarkdownStyle == "" {
		cfg.UI.MarkdownStyle = d.UI.MarkdownStyle
	}
	if cfg.UI.StartMode == "" {
		cfg.UI.StartMode = d.UI.StartMode
	}
	if cfg.Resume.Filename == "" {
		cfg.Resume.Filename = d.Resume.Filename
	}
	if cfg.Resume.Dir == "" {
		cfg.Resume.Dir = d.Resume.Dir
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Profile.User == "" {
		cfg.Profile.User = d.Profile.User
	}
	if cfg.Profile.Host == "" {
		cfg.Profile.Host = d.Profile.Host
	}
	if cfg.Profile.Cwd == "" {
		cfg.Profile.Cwd = d.Profile.Cwd
	}
	if cfg.Profile.Uname == "" {
		cfg.Profile.Uname = d.Profile.Uname
	}
}

func (c Config) Validate() error {
	switch c.UI.MarkdownStyle {
	case "dark", "light", "notty", "auto":
	default:
		return fmt.Errorf("ui.markdown_style must be dark, light, notty or auto: %q", c.UI.MarkdownStyle)
	}
	if _, err := console.ParseViewMode(c.UI.StartMode); err != nil {
		return fmt.Errorf("ui.start_mode must be terminal, visual or gui: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error: %q", c.Logging.Level)
	}
	return nil
}

func Dir() (string, error) {
	return app.ConfigDir()
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func ThemesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// Load reads the default config file, creating it on first run.
func Load() (Config, error) {
	cfgPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := Save(Default()); err != nil {
			return Config{}, err
		}
	}
	return LoadFile(cfgPath)
}

// LoadFile reads cfgPath with TERMFOLIO_* environment overrides applied.
func LoadFile(cfgPath string) (Config, error) {
	v := newViper()
	v.SetConfigFile(cfgPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", cfgPath, err)
	}
	EnsureDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("theme.active", d.Theme.Active)
	v.SetDefault("theme.index_url", d.Theme.IndexURL)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.start_mode", d.UI.StartMode)
	v.SetDefault("content.dir", d.Content.Dir)
	v.SetDefault("content.watch", d.Content.Watch)
	v.SetDefault("resume.source", d.Resume.Source)
	v.SetDefault("resume.filename", d.Resume.Filename)
	v.SetDefault("resume.dir", d.Resume.Dir)
	v.SetDefault("resume.open", d.Resume.Open)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("profile.user", d.Profile.User)
	v.SetDefault("profile.host", d.Profile.Host)
	v.SetDefault("profile.cwd", d.Profile.Cwd)
	v.SetDefault("profile.uname", d.Profile.Uname)
	return v
}

func Save(cfg Config) error {
	EnsureDefaults(&cfg)
	dir, err := Dir()
	if err != nil {
		return err
	}
	return SaveTo(dir, cfg)
}

// SaveTo writes config.yaml into dir and makes sure the themes directory
// exists next to it.
func SaveTo(dir string, cfg Config) error {
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o755); err != nil {
		return err
	}
	return SaveFile(filepath.Join(dir, "config.yaml"), cfg)
}

// SaveFile writes cfg to path atomically.
func SaveFile(path string, cfg Config) error {
	EnsureDefaults(&cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
