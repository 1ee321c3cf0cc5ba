package console

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout      = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"
	notFoundHint    = "Type 'help' for available commands"
	interruptNotice = "^C (Use 'clear' to clear terminal)"
	downloadNotice  = "✓ Downloading resume..."
)

// Content is one block supplied by a ContentProvider.
type Content struct {
	Key      string
	Title    string
	Markdown string
}

type ContentProvider interface {
	Topic(key string) (Content, bool)
	Banner() Banner
}

// Prompt is the decoration shown before every echoed command.
type Prompt struct {
	User string
	Host string
	Path string
}

func (p Prompt) String() string {
	return p.User + "@" + p.Host + ":" + p.Path + "$"
}

type Identity struct {
	Prompt Prompt
	Cwd    string
	Uname  string
}

func DefaultIdentity() Identity {
	return Identity{
		Prompt: Prompt{User: "monty", Host: "portfolio", Path: "~"},
		Cwd:    "/home/monty/portfolio",
		Uname:  "Linux portfolio 5.15.0 #1 SMP x86_64 GNU/Linux",
	}
}

type Options struct {
	Content    ContentProvider
	Identity   Identity
	Clock      func() time.Time
	Logger     *slog.Logger
	Table      *CommandTable
	Vocabulary []string
}

// Outcome reports the effects a submission leaves to the caller. Download
// is fire-and-forget; Quit ends the program.
type Outcome struct {
	Action   Action
	Quit     bool
	Download bool
	Focus    bool
}

// Session is the state of one console run. It is not safe for concurrent
// use; the event loop owns it.
type Session struct {
	ID        string
	History   *History
	Output    *OutputBuffer
	mode      ViewMode
	router    Router
	completer Completer
	content   ContentProvider
	identity  Identity
	clock     func() time.Time
	log       *slog.Logger
}

func NewSession(opts Options) *Session {
	table := DefaultTable()
	if opts.Table != nil {
		table = *opts.Table
	}
	vocab := opts.Vocabulary
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	identity := opts.Identity
	if identity.Prompt == (Prompt{}) {
		identity = DefaultIdentity()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	s := &Session{
		ID:        id,
		History:   NewHistory(),
		mode:      ModeTerminal,
		router:    NewRouter(table),
		completer: NewCompleter(vocab),
		content:   opts.Content,
		identity:  identity,
		clock:     clock,
		log:       logger.With("session", id),
	}
	s.Output = NewOutputBuffer(s.banner())
	return s
}

func (s *Session) Mode() ViewMode { return s.mode }

func (s *Session) Identity() Identity { return s.identity }

// SetContent swaps the provider after a reload. Existing output is kept.
func (s *Session) SetContent(p ContentProvider) {
	s.content = p
}

func (s *Session) Submit(raw string) Outcome {
	line := NewCommandLine(raw)
	if line.Empty() {
		return Outcome{Action: simple(ActionNone)}
	}
	s.History.Record(line.Trimmed)
	s.Output.Append(Block{Kind: BlockCommandLine, Text: line.Trimmed})

	action := s.router.RouteLine(line)
	s.log.Debug("command routed", "command", line.Trimmed, "action", action.Kind.String(), "topic", action.Topic)
	return s.execute(action)
}

func (s *Session) execute(a Action) Outcome {
	out := Outcome{Action: a}
	switch a.Kind {
	case ActionShowTopic:
		s.appendTopic(a.Topic)
	case ActionListFiles:
		s.appendTopic(TopicFiles)
	case ActionPrintWorkingDir:
		s.Output.Append(Block{Kind: BlockSuccess, Text: s.identity.Cwd})
	case ActionPrintDate:
		s.Output.Append(Block{Kind: BlockSuccess, Text: s.clock().Format(DateLayout)})
	case ActionPrintUname:
		s.Output.Append(Block{Kind: BlockSuccess, Text: s.identity.Uname})
	case ActionEcho:
		s.Output.Append(Block{Kind: BlockSuccess, Text: a.Payload})
	case ActionPrintHello:
		s.Output.Append(Block{Kind: BlockSuccess, Text: "hello"})
	case ActionClear:
		s.Clear()
	case ActionSwitchMode:
		out.Focus = s.SwitchMode(a.Mode)
	case ActionDownloadResume:
		out.Download = true
		s.Output.Append(Block{Kind: BlockSuccess, Text: downloadNotice})
	case ActionQuit:
		out.Quit = true
	case ActionNotFound:
		err := NotFoundError{Command: a.Payload}
		s.log.Info("unknown command", "error", err)
		s.Output.Append(
			Block{Kind: BlockError, Text: "bash: " + err.Error()},
			Block{Kind: BlockHint, Text: notFoundHint},
		)
	}
	return out
}

func (s *Session) appendTopic(key string) {
	if s.content == nil {
		s.Output.Append(Block{Kind: BlockError, Text: "content unavailable: " + key})
		return
	}
	c, ok := s.content.Topic(key)
	if !ok {
		s.log.Warn("missing content topic", "topic", key)
		s.Output.Append(Block{Kind: BlockError, Text: "content unavailable: " + key})
		return
	}
	s.Output.Append(Block{Kind: BlockContent, Topic: c.Key, Title: c.Title, Markdown: c.Markdown})
}

// Interrupt prints the ^C notice. Input is not submitted or cleared.
func (s *Session) Interrupt() {
	s.Output.Append(Block{Kind: BlockHint, Text: interruptNotice})
}

// Clear resets the output to the banner. History is untouched.
func (s *Session) Clear() {
	s.Output.Reset(s.banner())
}

// SwitchMode activates m. It reports true when m is the terminal, which
// must reclaim input focus.
func (s *Session) SwitchMode(m ViewMode) bool {
	if s.mode != m {
		s.log.Debug("view mode switched", "from", s.mode.String(), "to", m.String())
	}
	s.mode = m
	return m == ModeTerminal
}

func (s *Session) Complete(partial string) (string, bool) {
	return s.completer.Complete(partial)
}

func (s *Session) Completions(partial string) []string {
	return s.completer.Matches(partial)
}

// RecallOlder returns the previous entry, or current when there is none.
func (s *Session) RecallOlder(current string) string {
	if text, ok := s.History.RecallOlder(); ok {
		return text
	}
	return current
}

func (s *Session) RecallNewer() string {
	return s.History.RecallNewer()
}

func (s *Session) banner() Banner {
	if s.content == nil {
		return Banner{}
	}
	return s.content.Banner()
}
