// Package content supplies the static portfolio blocks: markdown topics
// embedded in the binary, optionally overridden by files from a directory.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"termfolio/internal/console"
)

const manifestName = "manifest.yaml"

//go:embed topics/*.md topics/manifest.yaml
var embedded embed.FS

var ErrInvalidManifest = errors.New("invalid content manifest")

type manifest struct {
	Banner manifestBanner  `yaml:"banner"`
	Topics []manifestTopic `yaml:"topics"`
}

type manifestBanner struct {
	Art     string `yaml:"art"`
	Welcome string `yaml:"welcome"`
	Info    string `yaml:"info"`
	Hint    string `yaml:"hint"`
}

type manifestTopic struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	File    string `yaml:"file"`
	Section bool   `yaml:"section"`
}

// Section is a topic shown as a visual-mode tab.
type Section struct {
	Key   string
	Title string
}

// Library is an immutable snapshot of loaded content. It implements
// console.ContentProvider.
type Library struct {
	topics   map[string]console.Content
	sections []Section
	banner   console.Banner
	dir      string
}

// Embedded loads the content compiled into the binary.
func Embedded() (*Library, error) {
	return Load("")
}

// Load reads the manifest and topics. Files in dir shadow embedded ones
// with the same name; dir may be empty.
func Load(dir string) (*Library, error) {
	base, err := fs.Sub(embedded, "topics")
	if err != nil {
		return nil, err
	}
	src := layered{base: base}
	if strings.TrimSpace(dir) != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content dir %s is not a directory", dir)
		}
		src.overlay = os.DirFS(dir)
	}

	raw, err := src.ReadFile(manifestName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestName, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if len(m.Topics) == 0 {
		return nil, fmt.Errorf("%w: no topics", ErrInvalidManifest)
	}

	lib := &Library{
		topics: make(map[string]console.Content, len(m.Topics)),
		banner: m.Banner.toBanner(),
		dir:    dir,
	}
	for i, t := range m.Topics {
		key := strings.ToLower(strings.TrimSpace(t.Key))
		if key == "" || strings.TrimSpace(t.File) == "" {
			return nil, fmt.Errorf("%w: topic %d needs key and file", ErrInvalidManifest, i)
		}
		if _, dup := lib.topics[key]; dup {
			return nil, fmt.Errorf("%w: duplicate topic %q", ErrInvalidManifest, key)
		}
		body, err := src.ReadFile(path.Clean(t.File))
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", key, err)
		}
		title := t.Title
		if title == "" {
			title = key
		}
		lib.topics[key] = console.Content{Key: key, Title: title, Markdown: string(body)}
		if t.Section {
			lib.sections = append(lib.sections, Section{Key: key, Title: title})
		}
	}
	return lib, nil
}

func (b manifestBanner) toBanner() console.Banner {
	art := strings.Split(strings.TrimRight(b.Art, "\n"), "\n")
	if len(art) == 1 && art[0] == "" {
		art = nil
	}
	return console.Banner{
		Art:     art,
		Welcome: b.Welcome,
		Info:    b.Info,
		Hint:    b.Hint,
	}
}

func (l *Library) Topic(key string) (console.Content, bool) {
	c, ok := l.topics[key]
	return c, ok
}

func (l *Library) Banner() console.Banner {
	return l.banner
}

func (l *Library) Sections() []Section {
	return append([]Section(nil), l.sections...)
}

func (l *Library) SectionKeys() []string {
	keys := make([]string, 0, len(l.sections))
	for _, s := range l.sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.topics))
	for k := range l.topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing lists the given keys the library cannot serve.
func (l *Library) Missing(keys ...string) []string {
	var out []string
	for _, k := range keys {
		if _, ok := l.topics[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func (l *Library) Dir() string { return l.dir }

// RequiredTopics are the keys the command table routes to.
func RequiredTopics() []string {
	return []string{
		console.TopicHelp, console.TopicAbout, console.TopicExperience,
		console.TopicProjects, console.TopicContact, console.TopicSkills,
		console.TopicReadme, console.TopicAchievements, console.TopicEducation,
		console.TopicHobbies, console.TopicFiles,
	}
}

type layered struct {
	overlay fs.FS
	base    fs.FS
}

func (l layered) ReadFile(name string) ([]byte, error) {
	if l.overlay != nil {
		b, err := fs.ReadFile(l.overlay, name)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return fs.ReadFile(l.base, name)
}
