package replus

import "slices"

// Spanned is any result carrying a rune-offset span: matches and groups both
// qualify.
type Spanned interface {
	Start() int
	End() int
	Length() int
}

// PurgeOverlaps returns a subset of items with no two spans overlapping.
// Items are swept left to right after a stable sort by start offset: a
// candidate overlapping the last kept result replaces it only when it ends
// at least as far and is strictly longer; otherwise it is dropped. The sweep
// is greedy and local; it never reconsiders a dropped candidate, so it does
// not maximize total coverage.
func PurgeOverlaps[T Spanned](items []T) []T {
	if len(items) <= 1 {
		return items
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return a.Start() - b.Start() })

	kept := make([]T, 0, len(sorted))
	kept = append(kept, sorted[0])
	for _, m := range sorted[1:] {
		last := kept[len(kept)-1]
		switch {
		case m.Start() >= last.End():
			kept = append(kept, m)
		case m.End() >= last.End() && m.Length() > last.Length():
			kept[len(kept)-1] = m
		}
	}
	return kept
}
