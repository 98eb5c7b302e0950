// Package template compiles placeholder templates into engine-ready regex
// pattern strings.
//
// A template references named pattern sources through `{{key}}` placeholders.
// Compilation expands each placeholder into a named capture group holding the
// alternation of the source's fragments, recursively expanding placeholders
// that the fragments themselves contain. Each plain occurrence of a key gets
// a deterministic engine-visible name `key_0, key_1, ...`; backreference and
// special-marker placeholders reuse or wrap those alternations without
// registering a name.
package template

import (
	"fmt"
	"strings"
)

// maxDepth bounds nested expansion so that source fragments referencing each
// other in a cycle fail instead of recursing forever.
const maxDepth = 64

// Compile expands tmpl against the source table and returns the final
// pattern string together with the ordered list of capture-group names it
// registered. The name list order is expansion order: an enclosing group's
// name always precedes the names registered inside its body.
func Compile(tmpl string, sources map[string][]string) (string, []string, error) {
	e := &expander{
		sources: sources,
		counter: make(map[string]int),
	}
	var sb strings.Builder
	if err := e.expand(tmpl, &sb); err != nil {
		return "", nil, err
	}
	return sb.String(), e.names, nil
}

// expander threads the per-template occurrence counter and registered-name
// list through the recursive expansion. It lives for one Compile call only.
type expander struct {
	sources map[string][]string
	counter map[string]int
	names   []string
	depth   int
}

func (e *expander) expand(s string, sb *strings.Builder) error {
	if e.depth >= maxDepth {
		return fmt.Errorf("template expansion exceeds %d nested levels", maxDepth)
	}
	e.depth++
	defer func() { e.depth-- }()

	for _, tok := range Lex(s) {
		if tok.Type == TokenLiteral {
			sb.WriteString(tok.Value)
			continue
		}
		var err error
		switch {
		case tok.Marker == "#":
			err = e.expandBackreference(tok, sb)
		case tok.Marker != "":
			err = e.expandSpecial(tok, sb)
		default:
			err = e.expandPlain(tok, sb)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// expandPlain handles `{{key}}`: a named capture group when key is a plain
// source entry, otherwise an anonymous special group resolved through the
// marker-prefixed source keys.
func (e *expander) expandPlain(tok Token, sb *strings.Builder) error {
	if alts, ok := e.sources[tok.Key]; ok {
		name := fmt.Sprintf("%s_%d", tok.Key, e.counter[tok.Key])
		e.names = append(e.names, name)
		e.counter[tok.Key]++
		sb.WriteString("(?<" + name + ">")
		if err := e.expand(strings.Join(alts, "|"), sb); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	}
	// The key may be defined under a marker prefix, e.g. "?:number". Such a
	// definition rewrites every occurrence of {{key}} in the template the
	// same way and never registers a name.
	for _, marker := range Markers {
		alts, ok := e.sources[marker+tok.Key]
		if !ok {
			continue
		}
		sb.WriteString(markerOpen(marker))
		if err := e.expand(strings.Join(alts, "|"), sb); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	}
	return &UnknownGroupError{Key: tok.Key}
}

// expandBackreference handles `{{#key}}` and `{{#key@N}}`: an engine
// backreference to the Nth-previous plain occurrence of key. It registers no
// name and leaves the counter untouched.
func (e *expander) expandBackreference(tok Token, sb *strings.Builder) error {
	have := e.counter[tok.Key]
	if have < tok.Back {
		return &ReferenceError{Key: tok.Key, Back: tok.Back, Have: have}
	}
	fmt.Fprintf(sb, `\k<%s_%d>`, tok.Key, have-tok.Back)
	return nil
}

// expandSpecial handles `{{?:key}}` and friends: the plain key's alternation
// wrapped in the marker's group syntax. The occurrence counter advances so
// that later plain occurrences of the key keep numbering consistent with the
// engine's group count, but no name is registered: the group is present in
// the compiled pattern and invisible to the result tree.
func (e *expander) expandSpecial(tok Token, sb *strings.Builder) error {
	alts, ok := e.sources[tok.Key]
	if !ok {
		return &SpecialGroupError{Marker: tok.Marker, Key: tok.Key}
	}
	e.counter[tok.Key]++
	sb.WriteString(markerOpen(tok.Marker))
	if err := e.expand(strings.Join(alts, "|"), sb); err != nil {
		return err
	}
	sb.WriteByte(')')
	return nil
}
