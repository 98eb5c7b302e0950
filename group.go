package replus

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

// Group is one named capture inside a Match, or nested inside another
// Group. It back-references the owning Match for name-list lookups and never
// outlives it.
type Group struct {
	root  *Match
	name  string // full registered name, key_N
	key   string // name with the numeric suffix stripped
	index int    // capture occurrence index within the name
	value string
	start int
	end   int
}

func newGroup(root *Match, name string, index int, c regexp2.Capture) *Group {
	return &Group{
		root:  root,
		name:  name,
		key:   baseKey(name),
		index: index,
		value: c.String(),
		start: c.Index,
		end:   c.Index + c.Length,
	}
}

// Name returns the full registered name (`key_N`).
func (g *Group) Name() string { return g.name }

// Key returns the base key, without the occurrence suffix.
func (g *Group) Key() string { return g.key }

// Index returns the capture occurrence index, relevant for groups matched
// repeatedly by a quantifier.
func (g *Group) Index() int { return g.index }

// Value returns the captured text.
func (g *Group) Value() string { return g.value }

func (g *Group) Start() int  { return g.start }
func (g *Group) End() int    { return g.end }
func (g *Group) Length() int { return g.end - g.start }

// Span returns the group's span.
func (g *Group) Span() Span { return Span{Start: g.start, End: g.end} }

// Groups returns the group's captured descendants, ordered by start offset.
// A candidate qualifies when it was registered after this group's own name
// and its span is contained in this group's span. Registration order is a
// proxy for nesting: the compiler always registers an enclosing group before
// the placeholders expanded inside it. It can misjudge siblings declared out
// of textual order, which is why the span-containment test is always applied
// with it.
func (g *Group) Groups() []*Group {
	var groups []*Group
	for _, name := range g.laterNames() {
		if cand := g.root.wrap(name); cand != nil && g.contains(cand) {
			groups = append(groups, cand)
		}
	}
	sortGroups(groups)
	return groups
}

// GroupsOf returns the captured descendant occurrences of one key, in
// occurrence order.
func (g *Group) GroupsOf(key string) []*Group {
	var groups []*Group
	for _, name := range g.laterNames() {
		if baseKey(name) != key {
			continue
		}
		if cand := g.root.wrap(name); cand != nil && g.contains(cand) {
			groups = append(groups, cand)
		}
	}
	return groups
}

// Group returns the first captured descendant occurrence of key, or
// NoSuchGroupError.
func (g *Group) Group(key string) (*Group, error) {
	groups := g.GroupsOf(key)
	if len(groups) == 0 {
		return nil, &NoSuchGroupError{Key: key}
	}
	return groups[0], nil
}

// RootGroups returns the group's direct children: its descendants with
// overlaps resolved away.
func (g *Group) RootGroups() []*Group {
	return PurgeOverlaps(g.Groups())
}

// Reps enumerates the occurrences of this exact name when the engine
// captured it more than once, one Group per occurrence in input order. A
// group captured a single time has no reps.
func (g *Group) Reps() []*Group {
	eg := g.root.m.GroupByName(g.name)
	if eg == nil || len(eg.Captures) < 2 {
		return nil
	}
	reps := make([]*Group, len(eg.Captures))
	for i, c := range eg.Captures {
		reps[i] = newGroup(g.root, g.name, i, c)
	}
	return reps
}

func (g *Group) String() string {
	return fmt.Sprintf("<[Group %s] span(%d, %d): %s>", g.name, g.start, g.end, g.value)
}

// laterNames returns the registered names that follow this group's own name,
// the only possible descendants under registration order.
func (g *Group) laterNames() []string {
	names := g.root.pattern.GroupNames
	own := slices.Index(names, g.name)
	if own < 0 {
		return nil
	}
	return names[own+1:]
}

func (g *Group) contains(other *Group) bool {
	return other.start >= g.start && other.end <= g.end
}

// baseKey strips the trailing `_N` occurrence suffix from a registered name.
func baseKey(name string) string {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) || i == 0 || name[i-1] != '_' {
		return name
	}
	return name[:i-1]
}
