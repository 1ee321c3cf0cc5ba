package console

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Topic keys understood by the content provider.
const (
	TopicHelp         = "help"
	TopicAbout        = "about"
	TopicExperience   = "experience"
	TopicProjects     = "projects"
	TopicContact      = "contact"
	TopicSkills       = "skills"
	TopicReadme       = "readme"
	TopicAchievements = "achievements"
	TopicEducation    = "education"
	TopicHobbies      = "hobbies"
	TopicFiles        = "files"
)

const echoPrefix = "echo "

var ErrCommandNotFound = errors.New("command not found")

type NotFoundError struct {
	Command string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, ErrCommandNotFound)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrCommandNotFound
}

// CommandTable maps lower-case aliases to actions. It is read-only once
// built.
type CommandTable struct {
	entries map[string]Action
}

type aliasGroup struct {
	aliases []string
	action  Action
}

func DefaultTable() CommandTable {
	groups := []aliasGroup{
		{[]string{"help", "--help", "-h"}, ShowTopic(TopicHelp)},
		{[]string{"about", "about-me", "whoami"}, ShowTopic(TopicAbout)},
		{[]string{"experience", "exp", "work"}, ShowTopic(TopicExperience)},
		{[]string{"projects", "ls projects", "ls -la projects", "cat projects"}, ShowTopic(TopicProjects)},
		{[]string{"contact", "contact-me", "email"}, ShowTopic(TopicContact)},
		{[]string{"skills", "tech", "technologies"}, ShowTopic(TopicSkills)},
		{[]string{"resume", "cv", "download", "download resume"}, simple(ActionDownloadResume)},
		{[]string{"clear", "cls"}, simple(ActionClear)},
		{[]string{"gui", "visual"}, SwitchMode(ModeVisual)},
		{[]string{"ls", "ls -la"}, simple(ActionListFiles)},
		{[]string{"pwd"}, simple(ActionPrintWorkingDir)},
		{[]string{"date"}, simple(ActionPrintDate)},
		{[]string{"uname", "uname -a"}, simple(ActionPrintUname)},
		{[]string{"cat readme", "cat readme.txt"}, ShowTopic(TopicReadme)},
		{[]string{"achievements", "awards", "activities"}, ShowTopic(TopicAchievements)},
		{[]string{"education"}, ShowTopic(TopicEducation)},
		{[]string{"hobbies"}, ShowTopic(TopicHobbies)},
		{[]string{"echo hello"}, simple(ActionPrintHello)},
		{[]string{"exit", "quit", "logout"}, simple(ActionQuit)},
	}
	t := CommandTable{entries: make(map[string]Action)}
	for _, g := range groups {
		for _, alias := range g.aliases {
			// first mapping wins; later duplicates are ignored
			if _, exists := t.entries[alias]; exists {
				continue
			}
			t.entries[alias] = g.action
		}
	}
	return t
}

func (t CommandTable) Lookup(normalized string) (Action, bool) {
	a, ok := t.entries[normalized]
	return a, ok
}

func (t CommandTable) Aliases() []string {
	out := make([]string, 0, len(t.entries))
	for alias := range t.entries {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// AliasesFor returns every alias routing to an action equal to a.
func (t CommandTable) AliasesFor(a Action) []string {
	var out []string
	for alias, mapped := range t.entries {
		if mapped == a {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

type Router struct {
	table CommandTable
}

func NewRouter(table CommandTable) Router {
	return Router{table: table}
}

// Route has no side effects.
func (r Router) Route(raw string) Action {
	return r.RouteLine(NewCommandLine(raw))
}

func (r Router) RouteLine(line CommandLine) Action {
	if line.Empty() {
		return simple(ActionNone)
	}
	if a, ok := r.table.Lookup(line.Normalized); ok {
		return a
	}
	if hasEchoPrefix(line.Trimmed) {
		return Echo(line.Trimmed[len(echoPrefix):])
	}
	return NotFound(line.Trimmed)
}

// The prefix is compared on the original bytes so the payload slice stays
// aligned with the user's text.
func hasEchoPrefix(s string) bool {
	return len(s) >= len(echoPrefix) && strings.EqualFold(s[:len(echoPrefix)], echoPrefix)
}
