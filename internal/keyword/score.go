package keyword

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minWordLength = 3

type Score struct {
	Keyword   string `json:"keyword"`
	Relevance int    `json:"relevance"`
	InTitle   bool   `json:"inTitle"`
}

// ScoreTitle rates each keyword by the share of its significant words that
// appear in title, 0 to 100. Matching ignores case and accents.
func ScoreTitle(title string, keywords []string) []Score {
	titleWords := make(map[string]bool)
	for _, w := range significantWords(title) {
		titleWords[w] = true
	}

	out := make([]Score, 0, len(keywords))
	for _, kw := range keywords {
		words := significantWords(kw)
		found := 0
		for _, w := range words {
			if titleWords[w] {
				found++
			}
		}
		relevance := 0
		if len(words) > 0 {
			relevance = int(math.Floor(100*float64(found)/float64(len(words)) + 0.5))
		}
		out = append(out, Score{Keyword: kw, Relevance: relevance, InTitle: relevance == 100})
	}
	return out
}

// Missing returns the keywords not fully present in the title.
func Missing(scores []Score) []string {
	out := make([]string, 0)
	for _, s := range scores {
		if !s.InTitle {
			out = append(out, s.Keyword)
		}
	}
	return out
}

func significantWords(s string) []string {
	fields := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minWordLength {
			out = append(out, f)
		}
	}
	return out
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
