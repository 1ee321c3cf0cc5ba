package console

import "strings"

// History keeps submitted lines in order. The cursor ranges over
// [0, Len()]; Len() means no recall is in progress.
type History struct {
	entries []string
	cursor  int
}

func NewHistory() *History {
	return &History{entries: []string{}}
}

func (h *History) Record(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	h.entries = append(h.entries, text)
	h.cursor = len(h.entries)
}

// RecallOlder steps back one entry. At the oldest entry it reports false
// and the caller keeps whatever is in the input field.
func (h *History) RecallOlder() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// RecallNewer steps forward one entry, snapping to the empty line once it
// walks past the newest one.
func (h *History) RecallNewer() string {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor]
	}
	h.cursor = len(h.entries)
	return ""
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cursor() int { return h.cursor }

func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
