package eaf

import (
	"testing"
)

// FuzzLoad tests the document loader with fuzzing: it must never panic,
// and on success the extracted sequences must respect the document's
// basic invariants.
func FuzzLoad(f *testing.F) {
	// Seed corpus with a valid transcription
	f.Add([]byte(sessionEAF))

	// Minimal valid document
	f.Add([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT>
  <TIME_ORDER>
    <TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="0"/>
  </TIME_ORDER>
  <TIER LINGUISTIC_TYPE_REF="ortografický" TIER_ID="AB 1">
    <ANNOTATION>
      <ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts1">
        <ANNOTATION_VALUE>slovo</ANNOTATION_VALUE>
      </ALIGNABLE_ANNOTATION>
    </ANNOTATION>
  </TIER>
</ANNOTATION_DOCUMENT>`))

	// Empty document, malformed fragments
	f.Add([]byte(`<ANNOTATION_DOCUMENT/>`))
	f.Add([]byte(`<ANNOTATION_DOCUMENT><TIER LINGUISTIC_TYPE_REF="ortografický"/></ANNOTATION_DOCUMENT>`))
	f.Add([]byte(`not xml at all`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := Load(data)
		if err != nil {
			return
		}
		for _, a := range doc.Orthographic {
			if a.Speaker == "" {
				t.Errorf("extracted annotation %q has empty speaker", a.ID)
			}
			if a.Value == "" {
				t.Errorf("extracted annotation %q has empty value", a.ID)
			}
		}
		for _, a := range doc.Phonetic {
			if a.Value == "" {
				t.Errorf("extracted annotation %q has empty value", a.ID)
			}
		}
		if len(doc.TimeSlotsByID()) > len(doc.TimeSlots) {
			t.Error("time slot index larger than the slot sequence")
		}
	})
}
