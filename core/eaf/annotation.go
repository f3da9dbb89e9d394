// Package eaf extracts and normalizes linguistic annotations from the .eaf
// transcription files produced by the ORTOFON multi-tier spoken corpus
// project. It locates annotation tiers by linguistic role, joins annotation
// spans to time slots and to each other by reference id, and exposes the
// results as ordered sequences and keyed lookups.
package eaf

import "strconv"

// Role identifies the linguistic function of a tier. Role values are
// matched verbatim against the LINGUISTIC_TYPE_REF attribute of TIER
// elements, so they carry the corpus' own (Czech) type names.
type Role string

const (
	// RoleOrthographic selects orthographic transcription tiers.
	RoleOrthographic Role = "ortografický"
	// RolePhonetic selects phonetic transcription tiers.
	RolePhonetic Role = "fonetický"
)

// refSpanRoles maps each role whose annotation spans anchor to another
// annotation's id (REF_ANNOTATION) rather than to raw time slots
// (ALIGNABLE_ANNOTATION, the default). New reference-anchored roles are a
// table edit here.
var refSpanRoles = map[Role]bool{
	RolePhonetic: true,
}

// SpanTag returns the annotation-span element name to search for under
// tiers of this role.
func (r Role) SpanTag() string {
	if refSpanRoles[r] {
		return "REF_ANNOTATION"
	}
	return "ALIGNABLE_ANNOTATION"
}

// Annotation is a single transcribed span on one tier. The typed fields
// mirror the well-known span attributes; Attrs preserves the span
// element's complete attribute set opaquely, so attributes this package
// does not interpret survive extraction.
type Annotation struct {
	// ID is the span's ANNOTATION_ID, unique within the document for a
	// given tier family.
	ID string
	// Ref is the ANNOTATION_REF of reference-anchored spans: the id of
	// the annotation on another tier this one is aligned to. Empty for
	// alignable spans.
	Ref string
	// TimeSlotRef1 and TimeSlotRef2 anchor alignable spans to time slots.
	TimeSlotRef1 string
	TimeSlotRef2 string
	// Value is the span's text payload.
	Value string
	// Speaker is derived: the first whitespace-delimited token of the
	// owning tier's TIER_ID.
	Speaker string
	// Attrs holds every attribute of the span element as parsed.
	Attrs map[string]string
}

// TimeSlot is a point in the recording timeline. Some slots are unanchored
// placeholders and carry no TIME_VALUE.
type TimeSlot struct {
	// ID is the slot's TIME_SLOT_ID, unique within the document.
	ID string
	// Value is the raw TIME_VALUE attribute, empty when unanchored.
	Value string
	// Attrs holds every attribute of the TIME_SLOT element as parsed.
	Attrs map[string]string
}

// Milliseconds parses the slot's TIME_VALUE as a millisecond offset.
// The second return is false for unanchored slots or unparsable values.
func (ts TimeSlot) Milliseconds() (int64, bool) {
	if ts.Value == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(ts.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
