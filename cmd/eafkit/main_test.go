package main

import (
	"testing"

	"github.com/czcorpus/eafkit/core/eaf"
)

func TestTranscriptLine(t *testing.T) {
	a := eaf.Annotation{ID: "a17", Speaker: "AB", Value: "dobrý den"}

	got := transcriptLine(a, []string{"dobrý", "den"})
	want := "AB-a17 dobrý den"
	if got != want {
		t.Errorf("transcriptLine = %q, want %q", got, want)
	}

	if got := transcriptLine(a, nil); got != "" {
		t.Errorf("transcriptLine with no tokens = %q, want empty", got)
	}
}

func TestSegmentWords(t *testing.T) {
	got := segmentWords("chroust hmm NJ")
	want := "ch r ou s t hmm NJ"
	if got != want {
		t.Errorf("segmentWords = %q, want %q", got, want)
	}
}

func TestRoleFromName(t *testing.T) {
	if roleFromName("fon") != eaf.RolePhonetic {
		t.Error("fon should map to the phonetic role")
	}
	if roleFromName("ort") != eaf.RoleOrthographic {
		t.Error("ort should map to the orthographic role")
	}
}
