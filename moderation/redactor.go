// Package moderation masks sensitive outbound content before it reaches
// the data plane: deny-listed phrases and card-number-like digit runs.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Digit runs of this length range get masked wholesale. Thirteen to
// nineteen digits covers every primary account number format in use.
const (
	minDigitRun = 13
	maxDigitRun = 19
)

type Redactor struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

// textMapping links the normalized search text back to the original runes.
type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewRedactor builds the Aho-Corasick automaton over a normalized version
// of the deny list, so obfuscated spellings still match.
func NewRedactor(denyList []string, maskChar rune) (*Redactor, error) {
	r := &Redactor{maskChar: maskChar}
	if len(denyList) == 0 {
		return r, nil
	}

	patterns := make([][]rune, 0, len(denyList))
	for _, phrase := range denyList {
		normalized := normalizeRunes([]rune(phrase))
		if len(normalized) == 0 {
			continue
		}
		patterns = append(patterns, normalized)
	}
	if len(patterns) == 0 {
		return r, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	r.matcher = m
	return r, nil
}

// Redact masks every deny-listed phrase and every PAN-like digit run,
// preserving length and spacing so the rendered message stays readable.
func (r *Redactor) Redact(original string) string {
	runes := []rune(original)
	runes = r.maskDenyListed(runes)
	runes = r.maskDigitRuns(runes)
	return string(runes)
}

func (r *Redactor) maskDenyListed(origRunes []rune) []rune {
	if r.matcher == nil {
		return origRunes
	}

	mapping := normalize(origRunes)
	if len(mapping.normalized) == 0 {
		return origRunes
	}

	spans := r.matcher.MultiPatternSearch(mapping.normalized, false)
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}

		// Mask from the first to the last original rune of the match,
		// punctuation and spacing in between included.
		origStart := mapping.origIdx[normStart]
		origEnd := mapping.origIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = r.maskChar
		}
	}
	return origRunes
}

// maskDigitRuns hides digit sequences long enough to be an account number.
// Separators inside the run (spaces, dashes) don't break it.
func (r *Redactor) maskDigitRuns(runes []rune) []rune {
	digits := 0
	start := -1
	flush := func(end int) {
		if digits >= minDigitRun && digits <= maxDigitRun {
			for i := start; i < end; i++ {
				if unicode.IsDigit(runes[i]) {
					runes[i] = r.maskChar
				}
			}
		}
		digits = 0
		start = -1
	}

	for i, c := range runes {
		switch {
		case unicode.IsDigit(c):
			if start < 0 {
				start = i
			}
			digits++
		case start >= 0 && (c == ' ' || c == '-'):
			// part of a formatted number, keep scanning
		default:
			flush(i)
		}
	}
	flush(len(runes))
	return runes
}

// normalize transforms the input into a searchable form and tracks the
// original rune position of every kept rune.
func normalize(origRunes []rune) textMapping {
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet-speak characters back to their standard
// alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during pattern matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
