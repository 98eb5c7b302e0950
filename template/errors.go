package template

import "fmt"

// UnknownGroupError reports a placeholder key that resolves to nothing in
// the source table, under its plain name or any marker-prefixed form.
type UnknownGroupError struct {
	Key string
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown template group %q", e.Key)
}

// ReferenceError reports a backreference to an occurrence that does not
// exist yet at the point of the placeholder.
type ReferenceError struct {
	Key  string
	Back int // how many occurrences back the placeholder asked for
	Have int // occurrences expanded so far
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference to non-existing group: {{#%s@%d}} with %d prior occurrence(s)", e.Key, e.Back, e.Have)
}

// SpecialGroupError reports a special-marker placeholder whose key is not
// defined as a plain source key. A plain key cannot be redefined with
// conflicting markers, and a marker cannot conjure a key out of thin air.
type SpecialGroupError struct {
	Marker string
	Key    string
}

func (e *SpecialGroupError) Error() string {
	return fmt.Sprintf("invalid special group {{%s%s}}: %q is not a plain source key", e.Marker, e.Key, e.Key)
}
