package models

import "fmt"

// DuplicateKeyError reports a pattern-source key defined by two bundles.
// Redefinition is always fatal: the merged source table must stay
// unambiguous for template compilation.
type DuplicateKeyError struct {
	Key      string
	Origin   string // bundle that redefined the key
	Previous string // bundle that defined it first
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate pattern source %q in %s, already defined in %s", e.Key, e.Origin, e.Previous)
}
