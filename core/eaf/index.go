package eaf

import "fmt"

// Key selectors for IndexBy over annotation sequences.

// ByID keys an annotation by its own ANNOTATION_ID.
func ByID(a Annotation) string { return a.ID }

// ByRef keys an annotation by its ANNOTATION_REF, i.e. the id of the
// annotation on another tier it is anchored to. Used for cross-tier joins
// from phonetic spans to their orthographic parents.
func ByRef(a Annotation) string { return a.Ref }

// BySlotID keys a time slot by its TIME_SLOT_ID.
func BySlotID(ts TimeSlot) string { return ts.ID }

// IndexBy converts an ordered sequence of records into a lookup keyed by
// key(record). On duplicate keys the last record wins; this is a known
// limitation — e.g. several phonetic spans referencing one orthographic
// span collapse to the last one, so callers needing one-to-many joins must
// re-derive from the raw sequence. Use IndexByStrict to surface
// collisions instead.
func IndexBy[T any](records []T, key func(T) string) map[string]T {
	index := make(map[string]T, len(records))
	for _, rec := range records {
		index[key(rec)] = rec
	}
	return index
}

// IndexByStrict is IndexBy with collision detection: it returns
// ErrDuplicateKey on the first key shared by two records. Silent
// overwrites can mask corpus errors, so strict indexing is the right
// choice for verification passes.
func IndexByStrict[T any](records []T, key func(T) string) (map[string]T, error) {
	index := make(map[string]T, len(records))
	for _, rec := range records {
		k := key(rec)
		if _, exists := index[k]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
		}
		index[k] = rec
	}
	return index, nil
}
