package eaf

import "errors"

// Extraction and indexing errors. All are fatal for the call that hit
// them: a failed extraction yields no partial result, since the failures
// stem from malformed input, not transient conditions.
var (
	// ErrMalformedAnnotation marks an annotation-span element that lacks
	// the expected value child or whose value child carries no text. An
	// empty transcription is a meaningful downstream signal, so a span
	// without one must not silently turn into one.
	ErrMalformedAnnotation = errors.New("malformed annotation span")

	// ErrMissingAttribute marks a required attribute (TIER_ID,
	// LINGUISTIC_TYPE_REF, ANNOTATION_ID) absent on an element expected
	// to carry it.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrDuplicateKey is returned by strict indexing when two records
	// share a key.
	ErrDuplicateKey = errors.New("duplicate key")
)
