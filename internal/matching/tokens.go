package matching

import (
	"strings"
	"unicode"
)

// tokenize splits text into lowercase tokens, stripping punctuation.
// '+', '#' and '.' count as word characters so terms like "c++", "c#" and
// "node.js" survive; trailing dots are dropped.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range tokenize(text) {
		set[token] = struct{}{}
	}
	return set
}

// containsAll reports whether every token of want is present in set.
// An empty want never matches.
func containsAll(set map[string]struct{}, want []string) bool {
	if len(want) == 0 {
		return false
	}
	for _, token := range want {
		if _, ok := set[token]; !ok {
			return false
		}
	}
	return true
}

// jaccard returns |a ∩ b| / |a ∪ b| over two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for token := range a {
		if _, ok := b[token]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
