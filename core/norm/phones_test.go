package norm

import "testing"

func TestSplitPhones(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"chroust", "ch r ou s t"},
		{"pes", "p e s"},
		{"koupil", "k ou p i l"},
		{"chechtal", "ch e ch t a l"},
		{"a", "a"},
		{"džbán", "d ž b á n"},
	}

	for _, tt := range tests {
		if got := SplitPhones(tt.word); got != tt.want {
			t.Errorf("SplitPhones(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSplitPhonesAffricate(t *testing.T) {
	// A doubled ezh spells one long affricate and must re-merge.
	if got := SplitPhones("roʒʒe"); got != "r o ʒʒ e" {
		t.Errorf("SplitPhones(roʒʒe) = %q, want %q", got, "r o ʒʒ e")
	}
}

func TestSplitPhonesAtomicUnits(t *testing.T) {
	atomic := []string{
		"hmm",       // filled pause
		"emm",       // filled pause
		"NJ",        // anonymization code
		"NN",        // anonymization code
		"slovo7",    // digits
		"a_b",       // punctuation
		"Praha",     // uppercase letter
		"co?",       // punctuation
		"dvě slova", // whitespace
	}
	for _, word := range atomic {
		if got := SplitPhones(word); got != word {
			t.Errorf("SplitPhones(%q) = %q, want unchanged", word, got)
		}
	}
}

func TestSplitPhonesEmpty(t *testing.T) {
	if got := SplitPhones(""); got != "" {
		t.Errorf("SplitPhones(\"\") = %q, want \"\"", got)
	}
}
