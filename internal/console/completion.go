package console

import "strings"

// DefaultVocabulary is the curated completion list. It is deliberately a
// subset of the alias table.
func DefaultVocabulary() []string {
	return []string{
		"help", "about", "experience", "projects", "skills", "contact",
		"resume", "download", "clear", "gui", "ls", "pwd", "date",
	}
}

type Completer struct {
	vocab []string
}

func NewCompleter(vocab []string) Completer {
	return Completer{vocab: append([]string(nil), vocab...)}
}

func (c Completer) Matches(partial string) []string {
	prefix := strings.ToLower(partial)
	var out []string
	for _, word := range c.vocab {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
		}
	}
	return out
}

// Complete returns the single vocabulary entry starting with partial.
// Zero or several matches complete nothing.
func (c Completer) Complete(partial string) (string, bool) {
	matches := c.Matches(partial)
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}
