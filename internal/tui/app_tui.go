package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"termfolio/internal/console"
	"termfolio/internal/content"
	"termfolio/internal/logging"
	"termfolio/internal/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	zoneModeTerminal = "mode:terminal"
	zoneModeVisual   = "mode:visual"
	zoneSectionPre   = "section:"

	downloadTimeout = 30 * time.Second
)

// Downloader saves the resume somewhere the user can find it.
type Downloader interface {
	Save(ctx context.Context) (string, error)
}

type Options struct {
	Session   *console.Session
	Library   *content.Library
	Renderer  *render.Terminal
	Saver     Downloader
	Reload    func() (*content.Library, error)
	Changes   <-chan struct{}
	Logger    *slog.Logger
	StartMode console.ViewMode
	Mouse     bool
	Version   string
}

type downloadDoneMsg struct {
	path string
	err  error
}

type contentChangedMsg struct{}

type appModel struct {
	session  *console.Session
	lib      *content.Library
	renderer *render.Terminal
	saver    Downloader
	reload   func() (*content.Library, error)
	changes  <-chan struct{}
	log      *slog.Logger
	keys     keyMap
	styles   chrome
	version  string

	input    textinput.Model
	output   viewport.Model
	section  viewport.Model
	nav      console.SectionNav
	sections []content.Section

	width      int
	height     int
	outVersion int
	shownTopic string
	status     string
	quitting   bool
}

func RunApp(opts Options) error {
	m := newAppModel(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}

func newAppModel(opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	in := textinput.New()
	in.CharLimit = 512
	in.Focus()

	m := appModel{
		session:    opts.Session,
		renderer:   opts.Renderer,
		saver:      opts.Saver,
		reload:     opts.Reload,
		changes:    opts.Changes,
		log:        log,
		keys:       defaultKeyMap(),
		styles:     newChrome(opts.Renderer.Theme()),
		version:    opts.Version,
		input:      in,
		output:     viewport.New(defaultWidth, defaultHeight),
		section:    viewport.New(defaultWidth, defaultHeight),
		outVersion: -1,
		status:     "Ready",
	}
	m.input.Prompt = m.renderer.Prompt() + " "
	m.setLibrary(opts.Library)
	m.resize(defaultWidth, defaultHeight)
	if opts.StartMode == console.ModeVisual {
		m.session.SwitchMode(console.ModeVisual)
		m.input.Blur()
	}
	m.syncOutput()
	m.syncSection()
	return m
}

func (m *appModel) setLibrary(lib *content.Library) {
	m.lib = lib
	m.shownTopic = ""
	if lib == nil {
		m.sections = nil
		m.nav = console.NewSectionNav(nil)
		return
	}
	m.sections = lib.Sections()
	m.nav.Replace(lib.SectionKeys())
	m.session.SetContent(lib)
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return contentChangedMsg{}
	}
}

func (m appModel) downloadCmd() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	saver := m.saver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		path, err := saver.Save(ctx)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.syncOutput()
		m.syncSection()
		return m, nil
	case downloadDoneMsg:
		if msg.err != nil {
			m.log.Warn("resume download failed", "session", m.session.ID, "error", msg.err)
			return m, nil
		}
		m.log.Info("resume saved", "session", m.session.ID, "path", msg.path)
		return m, nil
	case contentChangedMsg:
		return m.handleReload()
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			m.session.Interrupt()
			m.syncOutput()
			return m, nil
		}
		if key.Matches(msg, m.keys.ToggleMode) {
			if m.session.Mode() == console.ModeVisual {
				return m.enterTerminal()
			}
			return m.enterVisual(), nil
		}
		if m.session.Mode() == console.ModeVisual {
			return m.updateVisual(msg)
		}
		return m.updateTerminal(msg)
	}
	if m.session.Mode() == console.ModeTerminal {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Older):
		m.input.SetValue(m.session.RecallOlder(m.input.Value()))
		m.input.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.Newer):
		m.input.SetValue(m.session.RecallNewer())
		m.input.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		if done, ok := m.session.Complete(m.input.Value()); ok {
			m.input.SetValue(done)
			m.input.CursorEnd()
			m.status = "Ready"
		} else if matches := m.session.Completions(m.input.Value()); len(matches) > 1 {
			m.status = strings.Join(matches, "  ")
		}
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.output.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.output.PageDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	m.input.Reset()
	out := m.session.Submit(raw)
	m.status = "Ready"
	m.syncOutput()

	switch {
	case out.Quit:
		m.quitting = true
		return m, tea.Quit
	case out.Download:
		return m, m.downloadCmd()
	case out.Action.Kind == console.ActionSwitchMode && m.session.Mode() == console.ModeVisual:
		return m.enterVisual(), nil
	}
	return m, nil
}

func (m appModel) updateVisual(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitVisual):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.enterTerminal()
	case key.Matches(msg, m.keys.NextSection):
		m.nav.Next()
	case key.Matches(msg, m.keys.PrevSection):
		m.nav.Prev()
	case key.Matches(msg, m.keys.JumpSection):
		m.nav.SelectIndex(int(msg.String()[0]-'1'))
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.section, cmd = m.section.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
	m.syncSection()
	return m, nil
}

func (m appModel) enterVisual() appModel {
	m.session.SwitchMode(console.ModeVisual)
	m.input.Blur()
	m.resize(m.width, m.height)
	m.syncSection()
	return m
}

func (m appModel) enterTerminal() (tea.Model, tea.Cmd) {
	focus := m.session.SwitchMode(console.ModeTerminal)
	m.resize(m.width, m.height)
	m.syncOutput()
	if !focus {
		return m, nil
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		if z := zone.Get(zoneModeTerminal); z != nil && z.InBounds(msg) {
			return m.enterTerminal()
		}
		if z := zone.Get(zoneModeVisual); z != nil && z.InBounds(msg) {
			return m.enterVisual(), nil
		}
		if m.session.Mode() == console.ModeVisual {
			for _, s := range m.sections {
				if z := zone.Get(zoneSectionPre + s.Key); z != nil && z.InBounds(msg) {
					m.nav.Select(s.Key)
					m.syncSection()
					return m, nil
				}
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	if m.session.Mode() == console.ModeVisual {
		m.section, cmd = m.section.Update(msg)
	} else {
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleReload() (tea.Model, tea.Cmd) {
	next := waitForChange(m.changes)
	if m.reload == nil {
		return m, next
	}
	lib, err := m.reload()
	if err != nil {
		m.log.Warn("content reload failed", "session", m.session.ID, "error", err)
		m.status = "Reload failed: " + err.Error()
		return m, next
	}
	m.setLibrary(lib)
	m.syncSection()
	m.status = "Content reloaded"
	m.log.Info("content reloaded", "session", m.session.ID, "dir", lib.Dir())
	return m, next
}

func (m *appModel) resize(w, h int) {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	m.width, m.height = w, h
	if err := m.renderer.SetWidth(w); err != nil {
		m.log.Warn("markdown renderer rebuild failed", "error", err)
	}
	// header + status + help, plus the input line or the nav bar and rule
	m.output.Width = w
	m.output.Height = clampInt(h-4, 1, h)
	m.section.Width = w
	m.section.Height = clampInt(h-5, 1, h)
	m.input.Width = clampInt(w-ansi.StringWidth(m.input.Prompt)-1, 1, w)
	m.outVersion = -1
	m.shownTopic = ""
}

func (m *appModel) syncOutput() {
	v := m.session.Output.Version()
	if v == m.outVersion {
		return
	}
	m.outVersion = v
	m.output.SetContent(render.Transcript(m.renderer, m.session.Output.Blocks()))
	m.output.GotoBottom()
}

func (m *appModel) syncSection() {
	active := m.nav.Active()
	if active == m.shownTopic {
		return
	}
	m.shownTopic = active
	if m.lib == nil || active == "" {
		m.section.SetContent("")
		return
	}
	c, ok := m.lib.Topic(active)
	if !ok {
		m.section.SetContent(fmt.Sprintf("content unavailable: %s", active))
		return
	}
	m.section.SetContent(m.renderer.Markdown(c.Markdown))
	m.section.GotoTop()
}

func (m appModel) View() string {
	if m.quitting {
		return "logout\n"
	}
	lines := []string{m.renderHeader()}
	if m.session.Mode() == console.ModeVisual {
		lines = append(lines, m.renderNav(), m.styles.rule.Render(rule(m.width)), m.section.View())
	} else {
		lines = append(lines, m.output.View(), m.input.View())
	}
	lines = append(lines,
		m.styles.status.Render(clampLine(m.status, m.width)),
		m.styles.help.Render(clampLine(m.keys.help(m.session.Mode()), m.width)),
	)
	return zone.Scan(strings.Join(lines, "\n"))
}

func (m appModel) renderHeader() string {
	mode := m.session.Mode()
	tab := func(label string, active bool) string {
		text := "[ " + label + " ]"
		if active {
			return m.styles.tabActive.Render(text)
		}
		return m.styles.tabInactive.Render(text)
	}
	active := 0
	if mode == console.ModeVisual {
		active = 1
	}
	left := m.markTabs(
		[]string{zoneModeTerminal, zoneModeVisual},
		[]string{tab("terminal", mode == console.ModeTerminal), tab("visual", mode == console.ModeVisual)},
		active, " ",
	)
	right := m.styles.title.Render(m.session.Identity().Prompt.User + "@" + m.session.Identity().Prompt.Host + " " + formatVersionLabel(m.version))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderNav() string {
	ids := make([]string, len(m.sections))
	labels := make([]string, len(m.sections))
	for i, s := range m.sections {
		style := m.styles.navInactive
		if m.nav.IsActive(s.Key) {
			style = m.styles.navActive
		}
		ids[i] = zoneSectionPre + s.Key
		labels[i] = style.Render(fmt.Sprintf("%d %s", i+1, s.Title))
	}
	return m.markTabs(ids, labels, m.nav.ActiveIndex(), "")
}

// markTabs joins the run of whole tabs that fits the width around active.
// Labels are clamped before zone.Mark so no truncation splits a marker.
func (m appModel) markTabs(ids, labels []string, active int, sep string) string {
	widths := make([]int, len(labels))
	for i, l := range labels {
		widths[i] = lipgloss.Width(l) + lipgloss.Width(sep)
	}
	start, end := tabWindow(widths, active, m.width+lipgloss.Width(sep))
	parts := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := labels[i]
		if lipgloss.Width(label) > m.width {
			label = clampLine(label, m.width)
		}
		parts = append(parts, zone.Mark(ids[i], label))
	}
	return strings.Join(parts, sep)
}

// tabWindow returns the half-open range of tabs shown for width. The active
// tab is always included; the range grows right first, then left.
func tabWindow(widths []int, active, width int) (int, int) {
	if len(widths) == 0 {
		return 0, 0
	}
	active = clampInt(active, 0, len(widths)-1)
	start, end := active, active+1
	used := widths[active]
	for end < len(widths) && used+widths[end] <= width {
		used += widths[end]
		end++
	}
	for start > 0 && used+widths[start-1] <= width {
		start--
		used += widths[start]
	}
	return start, end
}

func formatVersionLabel(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "vdev"
	}
	if strings.HasPrefix(trimmed, "v") {
		return trimmed
	}
	return "v" + trimmed
}
