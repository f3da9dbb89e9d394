// Package norm provides pure text transformations over annotation
// payloads: ASR-ready tokenization of orthographic transcriptions and
// phone segmentation of phonetic transcriptions.
package norm

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// AnonymizationCodes are the placeholder tokens substituted for redacted
// content in ASR-ready transcripts: name, number, other, place, time.
var AnonymizationCodes = []string{"NJ", "NN", "NM", "NO", "NT"}

var (
	// Characters with no bearing on an ASR transcript.
	stripChars = regexp.MustCompile(`[?#$\[\]{}()=>\-*+_]`)
	// Opening markup tags such as speaker-overlap or noise markers
	// ("<NOISE ..."). Only the opener is removed.
	openMarker = regexp.MustCompile(`<[A-Z]+ `)
	// Redacted words appear as runs of digits.
	digitRun = regexp.MustCompile(`\d+`)
	// Tokens separate on pipes or runs of whitespace.
	tokenSep = regexp.MustCompile(`\||\s+`)
)

// RandomCode returns an anonymization code chosen uniformly at random.
func RandomCode() string {
	return AnonymizationCodes[rand.IntN(len(AnonymizationCodes))]
}

// TokenizeForASR converts one annotation's text into ASR transcript
// tokens: special characters are stripped, opening markup tags removed,
// every run of digits replaced with an anonymization code, and the result
// split on pipes and whitespace. Returns nil when nothing remains.
//
// The anonymization code is drawn once per call, so all digit runs within
// one annotation receive the same code. The randomness is intentional:
// the function is not deterministic and its results must never be cached.
func TokenizeForASR(annotation string) []string {
	annotation = stripChars.ReplaceAllString(annotation, "")
	annotation = openMarker.ReplaceAllString(annotation, "")
	annotation = digitRun.ReplaceAllString(annotation, RandomCode())
	annotation = strings.TrimSpace(annotation)
	if annotation == "" {
		return nil
	}
	return tokenSep.Split(annotation, -1)
}
