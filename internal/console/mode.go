package console

import (
	"fmt"
	"strings"
)

type ViewMode int

const (
	ModeTerminal ViewMode = iota
	ModeVisual
)

func (m ViewMode) String() string {
	if m == ModeVisual {
		return "visual"
	}
	return "terminal"
}

func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terminal", "":
		return ModeTerminal, nil
	case "visual", "gui":
		return ModeVisual, nil
	default:
		return ModeTerminal, fmt.Errorf("unknown view mode: %q", s)
	}
}

// SectionNav tracks which visual-mode section is shown. Exactly one
// section is active whenever the nav is non-empty.
type SectionNav struct {
	ids    []string
	active int
}

func NewSectionNav(ids []string) SectionNav {
	return SectionNav{ids: append([]string(nil), ids...)}
}

func (n SectionNav) IDs() []string { return append([]string(nil), n.ids...) }

func (n SectionNav) Len() int { return len(n.ids) }

func (n SectionNav) Active() string {
	if len(n.ids) == 0 {
		return ""
	}
	return n.ids[n.active]
}

func (n SectionNav) ActiveIndex() int { return n.active }

func (n SectionNav) IsActive(id string) bool {
	return len(n.ids) > 0 && n.ids[n.active] == id
}

func (n *SectionNav) Select(id string) bool {
	for i, candidate := range n.ids {
		if candidate == id {
			n.active = i
			return true
		}
	}
	return false
}

func (n *SectionNav) SelectIndex(i int) bool {
	if i < 0 || i >= len(n.ids) {
		return false
	}
	n.active = i
	return true
}

func (n *SectionNav) Next() {
	if len(n.ids) == 0 {
		return
	}
	n.active = (n.active + 1) % len(n.ids)
}

func (n *SectionNav) Prev() {
	if len(n.ids) == 0 {
		return
	}
	n.active = (n.active - 1 + len(n.ids)) % len(n.ids)
}

// Replace swaps the section list, keeping the active id when it survives.
func (n *SectionNav) Replace(ids []string) {
	current := n.Active()
	n.ids = append([]string(nil), ids...)
	n.active = 0
	n.Select(current)
}
