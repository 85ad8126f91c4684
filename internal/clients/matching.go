package clients

import (
	"strings"
	"unicode"
)

// Normalize reduces an identity string to a comparable form: lower-cased,
// punctuation stripped, whitespace collapsed to single spaces.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}

	return b.String()
}

// minLengthRatio is the shorter/longer length ratio below which a
// substring hit is considered coincidental rather than a match.
const minLengthRatio = 0.6

// matchScore rates how well a normalized candidate matches a normalized
// target. Higher is better; 0 means no match.
func matchScore(candidate, target string) float64 {
	if candidate == "" || target == "" {
		return 0
	}
	if candidate == target {
		return 1
	}

	shorter, longer := candidate, target
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if !strings.Contains(longer, shorter) {
		return 0
	}

	ratio := float64(len(shorter)) / float64(len(longer))
	if ratio < minLengthRatio {
		return 0
	}
	return ratio
}

// BestMatch returns the client whose identity best matches the given name
// and tax id, or nil when no candidate matches. An exact tax id match
// always wins; otherwise names are compared with normalized substring and
// length-ratio heuristics.
func BestMatch(candidates []Client, name, taxID string) *Client {
	normName := Normalize(name)
	normTax := Normalize(taxID)

	var best *Client
	var bestScore float64

	for i := range candidates {
		c := &candidates[i]

		if normTax != "" && Normalize(c.TaxID) == normTax {
			return c
		}

		if score := matchScore(Normalize(c.Name), normName); score > bestScore {
			best = c
			bestScore = score
		}
	}

	return best
}
