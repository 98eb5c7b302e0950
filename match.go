package replus

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

// Span is a half-open [Start, End) interval of rune offsets into the parsed
// text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Match is the root result of one pattern firing against input text. It
// wraps the underlying engine match read-only; matches from one Parse call
// must not be shared with another.
type Match struct {
	pattern *Pattern
	m       *regexp2.Match
	value   string
	start   int
	end     int
}

func newMatch(p *Pattern, m *regexp2.Match) *Match {
	return &Match{
		pattern: p,
		m:       m,
		value:   m.String(),
		start:   m.Index,
		end:     m.Index + m.Length,
	}
}

// Type returns the pattern-type key the match belongs to.
func (m *Match) Type() string { return m.pattern.Type }

// Value returns the full matched text.
func (m *Match) Value() string { return m.value }

// Template returns the raw template the pattern was built from.
func (m *Match) Template() string { return m.pattern.Template }

// Pattern returns the compiled pattern's source text.
func (m *Match) Pattern() string { return m.pattern.Source }

func (m *Match) Start() int  { return m.start }
func (m *Match) End() int    { return m.end }
func (m *Match) Length() int { return m.end - m.start }

// Span returns the match's own span.
func (m *Match) Span() Span { return Span{Start: m.start, End: m.end} }

// Groups returns every registered group the engine captured within the
// match's span, wrapped and ordered by start offset. Registration order
// breaks ties, so an enclosing group precedes the groups nested in it.
func (m *Match) Groups() []*Group {
	var groups []*Group
	for _, name := range m.pattern.GroupNames {
		if g := m.wrap(name); g != nil && m.contains(g) {
			groups = append(groups, g)
		}
	}
	sortGroups(groups)
	return groups
}

// GroupsOf returns the captured occurrences of one key (key_0, key_1, ...)
// in occurrence order. An empty slice means the key did not capture for this
// match; that is the check to use for keys that are optional in a template.
func (m *Match) GroupsOf(key string) []*Group {
	var groups []*Group
	for _, name := range m.pattern.GroupNames {
		if baseKey(name) != key {
			continue
		}
		if g := m.wrap(name); g != nil && m.contains(g) {
			groups = append(groups, g)
		}
	}
	return groups
}

// Group returns the first captured occurrence of key, or NoSuchGroupError.
func (m *Match) Group(key string) (*Group, error) {
	groups := m.GroupsOf(key)
	if len(groups) == 0 {
		return nil, &NoSuchGroupError{Key: key}
	}
	return groups[0], nil
}

// StartOf returns the start offset of the first captured occurrence of key.
func (m *Match) StartOf(key string) (int, error) {
	g, err := m.Group(key)
	if err != nil {
		return 0, err
	}
	return g.Start(), nil
}

// EndOf returns the end offset of the first captured occurrence of key.
func (m *Match) EndOf(key string) (int, error) {
	g, err := m.Group(key)
	if err != nil {
		return 0, err
	}
	return g.End(), nil
}

// SpanOf returns the span of the first captured occurrence of key.
func (m *Match) SpanOf(key string) (Span, error) {
	g, err := m.Group(key)
	if err != nil {
		return Span{}, err
	}
	return g.Span(), nil
}

// First returns the earliest-starting captured group, or nil.
func (m *Match) First() *Group {
	groups := m.Groups()
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

// Last returns the latest-starting captured group, or nil.
func (m *Match) Last() *Group {
	groups := m.Groups()
	if len(groups) == 0 {
		return nil
	}
	return groups[len(groups)-1]
}

// RootGroups returns the outermost, non-overlapping top-level groups of the
// match.
func (m *Match) RootGroups() []*Group {
	return PurgeOverlaps(m.Groups())
}

func (m *Match) String() string {
	return fmt.Sprintf("<[Match %s] span(%d, %d): %s>", m.pattern.Type, m.start, m.end, m.value)
}

// wrap builds a Group for a registered name, or nil when the engine did not
// capture it. The group's primary span is its last capture, matching the
// engine's own per-name semantics for quantified groups; Reps enumerates the
// rest.
func (m *Match) wrap(name string) *Group {
	eg := m.m.GroupByName(name)
	if eg == nil || len(eg.Captures) == 0 {
		return nil
	}
	last := len(eg.Captures) - 1
	return newGroup(m, name, last, eg.Captures[last])
}

func (m *Match) contains(g *Group) bool {
	return g.start >= m.start && g.end <= m.end
}

func sortGroups(groups []*Group) {
	slices.SortStableFunc(groups, func(a, b *Group) int { return a.start - b.start })
}
