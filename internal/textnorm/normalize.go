package textnorm

import (
	"strings"
	"unicode"
)

const minTokenLength = 3

// DefaultStopWords returns the built-in filler words ignored during title
// comparison: articles, prepositions and generic listing vocabulary for the
// baby vertical. Deployments can replace the list via their catalog config.
func DefaultStopWords() []string {
	return []string{
		"de", "para", "con", "sin", "el", "la", "los", "las", "un", "una",
		"unos", "unas", "y", "o", "a", "en", "del", "al", "bebe", "bebé",
		"pack", "set", "unidades", "meses", "años", "mese", "ano",
	}
}

// Normalizer reduces free-text titles to comparable keyword sets.
type Normalizer struct {
	stop map[string]struct{}
}

// NewNormalizer builds a normalizer with the given stop-word list. An empty
// list falls back to DefaultStopWords.
func NewNormalizer(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords()
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stop[w] = struct{}{}
	}
	return &Normalizer{stop: stop}
}

// Keywords tokenizes a title into its significant words: lowercase, letters
// only, at least three runes, stop words removed. Splitting on any non-letter
// rune means alphanumeric codes such as platform SKUs never survive as
// tokens, which keeps them out of similarity and variant comparisons.
func (n *Normalizer) Keywords(title string) map[string]struct{} {
	keywords := make(map[string]struct{})
	if title == "" {
		return keywords
	}

	var token []rune
	flush := func() {
		if len(token) < minTokenLength {
			token = token[:0]
			return
		}
		word := string(token)
		token = token[:0]
		if _, skip := n.stop[word]; skip {
			return
		}
		keywords[word] = struct{}{}
	}

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) {
			token = append(token, r)
			continue
		}
		flush()
	}
	flush()

	return keywords
}
