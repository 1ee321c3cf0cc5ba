// Package console turns submitted input lines into routed actions and keeps
// the per-run session state: recall history, output blocks and view mode.
package console

import "strings"

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShowTopic
	ActionListFiles
	ActionPrintWorkingDir
	ActionPrintDate
	ActionPrintUname
	ActionEcho
	ActionPrintHello
	ActionClear
	ActionSwitchMode
	ActionDownloadResume
	ActionQuit
	ActionNotFound
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionShowTopic:
		return "show-topic"
	case ActionListFiles:
		return "list-files"
	case ActionPrintWorkingDir:
		return "pwd"
	case ActionPrintDate:
		return "date"
	case ActionPrintUname:
		return "uname"
	case ActionEcho:
		return "echo"
	case ActionPrintHello:
		return "echo-hello"
	case ActionClear:
		return "clear"
	case ActionSwitchMode:
		return "switch-mode"
	case ActionDownloadResume:
		return "download-resume"
	case ActionQuit:
		return "quit"
	case ActionNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Action is the result of routing one input line. Topic is set for
// ActionShowTopic, Payload for ActionEcho and ActionNotFound, Mode for
// ActionSwitchMode.
type Action struct {
	Kind    ActionKind
	Topic   string
	Payload string
	Mode    ViewMode
}

func ShowTopic(key string) Action { return Action{Kind: ActionShowTopic, Topic: key} }

func Echo(text string) Action { return Action{Kind: ActionEcho, Payload: text} }

func NotFound(command string) Action { return Action{Kind: ActionNotFound, Payload: command} }

func SwitchMode(m ViewMode) Action { return Action{Kind: ActionSwitchMode, Mode: m} }

func simple(k ActionKind) Action { return Action{Kind: k} }

// CommandLine is one submission. Normalized is what routing compares
// against; Trimmed keeps the user's casing.
type CommandLine struct {
	Literal    string
	Trimmed    string
	Normalized string
}

func NewCommandLine(raw string) CommandLine {
	trimmed := strings.TrimSpace(raw)
	return CommandLine{
		Literal:    raw,
		Trimmed:    trimmed,
		Normalized: strings.ToLower(trimmed),
	}
}

func (c CommandLine) Empty() bool {
	return c.Trimmed == ""
}
