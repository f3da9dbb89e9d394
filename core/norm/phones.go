package norm

import (
	"regexp"
	"strings"
)

// nonPhonemic matches any character that is not a lowercase letter.
// Only all-lowercase transcriptions consist of separable phones; anything
// carrying punctuation, digits, uppercase (anonymization codes) or
// symbols is an atomic unit.
var nonPhonemic = regexp.MustCompile(`[^\p{Ll}]`)

// atomicFillers are filled-pause tokens that look like phone sequences
// but are not segmentable.
var atomicFillers = map[string]bool{
	"hmm": true,
	"emm": true,
}

// digraphs re-merges adjacent single-character tokens that spell one
// phone. Order matters: "c h" must collapse before "o u" so that a
// sequence like "c o u c h" resolves the trailing affricate first.
var digraphs = [...][2]string{
	{"c h", "ch"},
	{"o u", "ou"},
	{"ʒ ʒ", "ʒʒ"},
}

// SplitPhones converts a single phonetically transcribed word to a form
// where phones are explicitly whitespace separated, e.g. "chroust" ->
// "ch r ou s t". Atomic units — the fillers hmm and emm, anonymization
// codes, and any word containing a non-lowercase-letter character — are
// returned unchanged.
func SplitPhones(word string) string {
	if atomicFillers[word] || nonPhonemic.MatchString(word) {
		return word
	}
	spaced := strings.Join(strings.Split(word, ""), " ")
	for _, d := range digraphs {
		spaced = strings.ReplaceAll(spaced, d[0], d[1])
	}
	return spaced
}
