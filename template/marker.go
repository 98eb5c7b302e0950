package template

import "strings"

// Markers lists every special marker, in the order they are probed when an
// unmarked key is resolved against prefixed source-table entries. The probe
// order is part of the compiler's contract: the first prefixed key found in
// the source table wins.
var Markers = []string{
	"?:",  // non-capturing group
	"?>",  // atomic group
	"?=",  // positive lookahead
	"?!",  // negative lookahead
	"?<=", // positive lookbehind
	"?<!", // negative lookbehind
	"?i:", // case-insensitive
	"?m:", // multiline
	"?s:", // dot matches newline
	"?u:", // unicode
	"?x:", // extended syntax
	"?L:", // locale-dependent
}

// lexOrder is the marker list sorted longest-first so that `?<=` is never
// lexed as `?<` + `=`.
var lexOrder = []string{
	"?<=", "?<!",
	"?i:", "?m:", "?s:", "?u:", "?x:", "?L:",
	"?:", "?>", "?=", "?!",
}

// matchMarker reports the special marker at the start of s, if any, and its
// length in bytes.
func matchMarker(s string) (string, int) {
	for _, m := range lexOrder {
		if strings.HasPrefix(s, m) {
			return m, len(m)
		}
	}
	return "", 0
}

// markerOpen returns the group-opening text emitted for a special marker.
// The engine is Unicode-native and has no locale mode, so `?u:` and `?L:`
// compile to plain non-capturing groups.
func markerOpen(marker string) string {
	switch marker {
	case "?u:", "?L:":
		return "(?:"
	default:
		return "(" + marker
	}
}
