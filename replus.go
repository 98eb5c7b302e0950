// Package replus turns named regex fragments and placeholder templates into
// a registry of runnable patterns, and turns the engine's flat capture
// results into a navigable tree of named, possibly repeated, possibly nested
// matches.
//
// Pattern models are loaded from a directory of bundle files or an in-memory
// map (see the models package), compiled once through the template compiler
// (see the template package), and then matched concurrently against any
// number of inputs. Overlapping matches across pattern types are resolved to
// a single non-overlapping sequence unless the caller opts out.
package replus

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/replusdev/replus/models"
	"github.com/replusdev/replus/template"
)

// Pattern is one compiled (pattern type, template) pair. Patterns are
// immutable after engine construction and safe for concurrent use.
type Pattern struct {
	Type       string
	Template   string   // the raw template the pattern was built from
	Source     string   // the fully expanded pattern text
	GroupNames []string // capture names registered during expansion, in order
	Regex      *regexp2.Regexp
}

// Engine holds the compiled pattern registry. Construction is fail-fast:
// any template that does not compile aborts the whole build.
type Engine struct {
	patterns []Pattern

	flags           Flags
	whitespaceNoise string
	timeout         time.Duration
}

// New builds an engine from an in-memory model mapping, keyed by pattern
// type. Each model maps source keys to alternative fragments and holds its
// template list under the reserved "$PATTERNS" key.
func New(m map[string]map[string][]string, opts ...Option) (*Engine, error) {
	cfg, err := models.FromMap(m)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromDir builds an engine from a directory of model bundle files.
func NewFromDir(dir string, opts ...Option) (*Engine, error) {
	cfg, err := models.Load(dir)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds an engine from an already loaded model config.
func NewFromConfig(cfg *models.Config, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	for _, pt := range cfg.Types {
		for _, tmpl := range pt.Templates {
			p, err := e.compile(pt.Name, tmpl, cfg.Sources)
			if err != nil {
				return nil, err
			}
			e.patterns = append(e.patterns, p)
		}
	}
	return e, nil
}

func (e *Engine) compile(patternType, tmpl string, sources map[string][]string) (Pattern, error) {
	src, names, err := template.Compile(tmpl, sources)
	if err != nil {
		return Pattern{}, &BuildError{Type: patternType, Template: tmpl, Err: err}
	}
	if e.whitespaceNoise != "" {
		src = rewriteWhitespace(src, e.whitespaceNoise)
	}
	re, err := regexp2.Compile(src, e.flags.options())
	if err != nil {
		return Pattern{}, &BuildError{Type: patternType, Template: tmpl, Err: err}
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return Pattern{
		Type:       patternType,
		Template:   tmpl,
		Source:     src,
		GroupNames: names,
		Regex:      re,
	}, nil
}

// rewriteWhitespace replaces every literal space and every `\s` token in the
// expanded pattern with the parenthesized noise fragment.
func rewriteWhitespace(src, noise string) string {
	fragment := "(" + noise + ")"
	return strings.NewReplacer(" ", fragment, `\s`, fragment).Replace(src)
}

// Patterns returns the compiled registry in build order.
func (e *Engine) Patterns() []Pattern {
	return slices.Clone(e.patterns)
}

// Parse runs every retained pattern over text and returns the matches in
// start order. Unless AllowOverlap is given, overlapping matches across all
// retained pattern types are resolved to a non-overlapping sequence.
func (e *Engine) Parse(text string, opts ...ParseOption) ([]*Match, error) {
	var po parseOptions
	for _, opt := range opts {
		opt(&po)
	}

	var matches []*Match
	for i := range e.patterns {
		p := &e.patterns[i]
		if !po.retains(p.Type) {
			continue
		}
		m, err := p.Regex.FindStringMatchStartingAt(text, po.start)
		for err == nil && m != nil {
			matches = append(matches, newMatch(p, m))
			m, err = p.Regex.FindNextMatch(m)
		}
		if err != nil {
			return nil, fmt.Errorf("matching type %q: %w", p.Type, err)
		}
	}

	slices.SortStableFunc(matches, func(a, b *Match) int { return a.Start() - b.Start() })
	if po.overlapped {
		return matches, nil
	}
	return PurgeOverlaps(matches), nil
}

// Search returns the first match in start order, or nil when nothing
// matches.
func (e *Engine) Search(text string, opts ...ParseOption) (*Match, error) {
	matches, err := e.Parse(text, opts...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}
