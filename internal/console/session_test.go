package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContent map[string]Content

func (s stubContent) Topic(key string) (Content, bool) {
	c, ok := s[key]
	return c, ok
}

func (s stubContent) Banner() Banner {
	return Banner{Art: []string{"monty"}, Welcome: "Welcome"}
}

func newStubSession(t *testing.T) *Session {
	t.Helper()
	content := stubContent{}
	for _, key := range []string{TopicHelp, TopicAbout, TopicExperience, TopicProjects, TopicContact, TopicSkills, TopicReadme, TopicAchievements, TopicEducation, TopicHobbies, TopicFiles} {
		content[key] = Content{Key: key, Title: key, Markdown: "# " + key}
	}
	return NewSession(Options{
		Content: content,
		Clock:   func() time.Time { return time.Date(2025, 12, 4, 9, 30, 0, 0, time.UTC) },
	})
}

func lastBlock(s *Session) Block {
	blocks := s.Output.Blocks()
	return blocks[len(blocks)-1]
}

func TestSessionStartsWithBanner(t *testing.T) {
	s := newStubSession(t)
	require.Equal(t, 1, s.Output.Len())
	assert.Equal(t, BlockBanner, s.Output.Blocks()[0].Kind)
	assert.Equal(t, ModeTerminal, s.Mode())
	assert.NotEmpty(t, s.ID)
}

func TestSubmitEmptyIsNoop(t *testing.T) {
	s := newStubSession(t)
	out := s.Submit("   ")
	assert.Equal(t, ActionNone, out.Action.Kind)
	assert.Equal(t, 1, s.Output.Len())
	assert.Equal(t, 0, s.History.Len())
}

func TestSubmitEchoesCommandThenContent(t *testing.T) {
	s := newStubSession(t)
	s.Submit("  About ")
	blocks := s.Output.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockCommandLine, blocks[1].Kind)
	assert.Equal(t, "About", blocks[1].Text)
	assert.Equal(t, BlockContent, blocks[2].Kind)
	assert.Equal(t, TopicAbout, blocks[2].Topic)
	assert.Equal(t, []string{"About"}, s.History.Entries())
}

func TestSynonymsRenderIdenticalBlocks(t *testing.T) {
	table := DefaultTable()
	actions := map[Action]bool{}
	for _, alias := range table.Aliases() {
		a, _ := table.Lookup(alias)
		actions[a] = true
	}
	for action := range actions {
		if action.Kind == ActionPrintDate || action.Kind == ActionQuit || action.Kind == ActionClear {
			continue
		}
		var want []Block
		for _, alias := range table.AliasesFor(action) {
			s := newStubSession(t)
			s.Submit(alias)
			got := s.Output.Blocks()[2:]
			if want == nil {
				want = got
				continue
			}
			assert.Equal(t, want, got, "alias %q", alias)
		}
	}
}

func TestSubmitNotFound(t *testing.T) {
	s := newStubSession(t)
	s.Submit("foobar")
	blocks := s.Output.Blocks()
	require.Len(t, blocks, 4)
	assert.Equal(t, Block{Kind: BlockError, Text: "bash: foobar: command not found"}, blocks[2])
	assert.Equal(t, Block{Kind: BlockHint, Text: "Type 'help' for available commands"}, blocks[3])
	assert.Equal(t, "foobar", s.RecallOlder(""))
}

func TestSubmitEchoPayload(t *testing.T) {
	s := newStubSession(t)
	s.Submit("ECHO Hello World")
	assert.Equal(t, Block{Kind: BlockSuccess, Text: "Hello World"}, lastBlock(s))
	s.Submit("echo hello")
	assert.Equal(t, Block{Kind: BlockSuccess, Text: "hello"}, lastBlock(s))
}

func TestSubmitShellBuiltins(t *testing.T) {
	s := newStubSession(t)
	s.Submit("pwd")
	assert.Equal(t, "/home/monty/portfolio", lastBlock(s).Text)
	s.Submit("uname")
	assert.Equal(t, "Linux portfolio 5.15.0 #1 SMP x86_64 GNU/Linux", lastBlock(s).Text)
	s.Submit("date")
	assert.Equal(t, "Thu Dec 04 2025 09:30:00 GMT+0000 (UTC)", lastBlock(s).Text)
	s.Submit("ls")
	assert.Equal(t, TopicFiles, lastBlock(s).Topic)
}

func TestSubmitDownloadAndQuitAreEffects(t *testing.T) {
	s := newStubSession(t)
	out := s.Submit("cv")
	assert.True(t, out.Download)
	assert.Equal(t, "✓ Downloading resume...", lastBlock(s).Text)
	out = s.Submit("exit")
	assert.True(t, out.Quit)
}

func TestClearKeepsHistory(t *testing.T) {
	s := newStubSession(t)
	s.Submit("help")
	s.Submit("projects")

	s.Submit("clear")
	require.Equal(t, 1, s.Output.Len())
	assert.Equal(t, BlockBanner, s.Output.Blocks()[0].Kind)
	assert.Equal(t, []string{"help", "projects", "clear"}, s.History.Entries())

	s.Clear()
	assert.Equal(t, 1, s.Output.Len())
	assert.Equal(t, 3, s.History.Len())

	s.Submit("projects")
	s.Submit("cls")
	assert.Equal(t, 1, s.Output.Len())
}

func TestClearDirectLeavesCursor(t *testing.T) {
	s := newStubSession(t)
	s.Submit("help")
	s.Submit("about")
	s.RecallOlder("")
	before := s.History.Cursor()
	s.Clear()
	assert.Equal(t, before, s.History.Cursor())
	assert.Equal(t, []string{"help", "about"}, s.History.Entries())
}

func TestSwitchModeIdempotent(t *testing.T) {
	s := newStubSession(t)
	out := s.Submit("gui")
	assert.Equal(t, ModeVisual, s.Mode())
	assert.False(t, out.Focus)
	s.SwitchMode(ModeVisual)
	assert.Equal(t, ModeVisual, s.Mode())

	assert.True(t, s.SwitchMode(ModeTerminal))
	assert.True(t, s.SwitchMode(ModeTerminal))
	assert.Equal(t, ModeTerminal, s.Mode())
}

func TestInterruptDoesNotSubmit(t *testing.T) {
	s := newStubSession(t)
	s.Interrupt()
	assert.Equal(t, Block{Kind: BlockHint, Text: "^C (Use 'clear' to clear terminal)"}, lastBlock(s))
	assert.Equal(t, 0, s.History.Len())
}

func TestMissingTopicReportsError(t *testing.T) {
	s := NewSession(Options{Content: stubContent{}})
	s.Submit("skills")
	assert.Equal(t, Block{Kind: BlockError, Text: "content unavailable: skills"}, lastBlock(s))
}

func TestRecallThroughSession(t *testing.T) {
	s := newStubSession(t)
	assert.Equal(t, "typed", s.RecallOlder("typed"))
	s.Submit("help")
	s.Submit("skills")
	assert.Equal(t, "skills", s.RecallOlder(""))
	assert.Equal(t, "help", s.RecallOlder("skills"))
	assert.Equal(t, "help", s.RecallOlder("help"))
	assert.Equal(t, "skills", s.RecallNewer())
	assert.Equal(t, "", s.RecallNewer())
}
