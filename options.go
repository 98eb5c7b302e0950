package replus

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Flags selects engine-wide matching behavior, applied to every compiled
// pattern.
type Flags uint32

const (
	// IgnoreCase makes matching case-insensitive.
	IgnoreCase Flags = 1 << iota
	// Multiline makes ^ and $ match at line boundaries.
	Multiline
	// DotAll makes . match newlines.
	DotAll
	// Unicode enables unicode-aware character classes.
	Unicode
	// Extended ignores unescaped whitespace in the pattern source.
	Extended
)

// FlagsFromString converts a string of flag letters ("imsux") into Flags.
func FlagsFromString(s string) (Flags, error) {
	var flags Flags
	for _, c := range s {
		switch c {
		case 'i':
			flags |= IgnoreCase
		case 'm':
			flags |= Multiline
		case 's':
			flags |= DotAll
		case 'u':
			flags |= Unicode
		case 'x':
			flags |= Extended
		default:
			return 0, fmt.Errorf("unknown flag %q", string(c))
		}
	}
	return flags, nil
}

func (f Flags) options() regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}
	if f&Unicode != 0 {
		opts |= regexp2.Unicode
	}
	if f&Extended != 0 {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts
}

// Option configures engine construction.
type Option func(*Engine)

// WithFlags sets the matching flags for every pattern.
func WithFlags(f Flags) Option {
	return func(e *Engine) { e.flags = f }
}

// WithWhitespaceNoise replaces every literal space and every `\s` token in
// the compiled patterns with the given fragment, parenthesized. This lets
// templates written with plain spaces match input with irregular separators.
func WithWhitespaceNoise(fragment string) Option {
	return func(e *Engine) { e.whitespaceNoise = fragment }
}

// WithMatchTimeout bounds every engine invocation; the engine's own timeout
// error surfaces from Parse and Search.
func WithMatchTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// ParseOption configures one Parse or Search call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	filters    map[string]bool
	exclude    map[string]bool
	overlapped bool
	start      int
}

// Filters restricts matching to the named pattern types.
func Filters(types ...string) ParseOption {
	return func(o *parseOptions) {
		if o.filters == nil {
			o.filters = make(map[string]bool)
		}
		for _, t := range types {
			o.filters[t] = true
		}
	}
}

// Exclude removes the named pattern types from matching.
func Exclude(types ...string) ParseOption {
	return func(o *parseOptions) {
		if o.exclude == nil {
			o.exclude = make(map[string]bool)
		}
		for _, t := range types {
			o.exclude[t] = true
		}
	}
}

// AllowOverlap returns all matches sorted by start offset instead of
// resolving overlaps across pattern types.
func AllowOverlap() ParseOption {
	return func(o *parseOptions) { o.overlapped = true }
}

// StartAt begins matching at the given rune offset.
func StartAt(pos int) ParseOption {
	return func(o *parseOptions) { o.start = pos }
}

func (o *parseOptions) retains(patternType string) bool {
	if len(o.filters) > 0 && !o.filters[patternType] {
		return false
	}
	return !o.exclude[patternType]
}
