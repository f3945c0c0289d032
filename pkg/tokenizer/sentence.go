package tokenizer

import (
	"strings"
	"unicode"
)

// SplitSentences partitions a grouped token stream into sentences. Every
// leaf lands in exactly one sentence and the original order is kept.
//
//	SplitSentences(Group([]string{"Cat ", "sat", ". ", "Cat ", "'s ", "named ", "Cool", "."}))
//	// [["Cat " "sat" ". "] ["Cat " "'s " "named " "Cool" "."]]
func SplitSentences(nodes []Node) [][]string {
	sentences := make([][]string, 0)
	var words []string

	for i, node := range nodes {
		leaves := node.Leaves()
		endSentence := false

		if node.IsGroup() {
			closing := trimRight(leaves[len(leaves)-2])
			if len(words) == 0 {
				// a sentence finished inside the span and nothing came before it
				endSentence = isEndSymbol(closing)
			} else {
				// a sentence finished inside quote marks
				endSentence = firstRune(leaves[0]) == '"' &&
					isEndSymbol(closing) &&
					!unicode.IsUpper(firstRune(leaves[1]))
			}
			words = append(words, leaves...)
		} else {
			token := leaves[0]
			words = append(words, token)
			if isEndSymbol(trimRight(token)) {
				endSentence = true
				if i+1 < len(nodes) {
					next := firstRune(nodes[i+1].Leaves()[0])
					if unicode.IsLower(next) || isContinuationPunct(next) {
						endSentence = false
					}
				}
			}
		}

		if endSentence {
			sentences = append(sentences, words)
			words = nil
		}
	}
	if len(words) > 0 {
		sentences = append(sentences, words)
	}

	splitTrailingPeriod(sentences)
	return sentences
}

// splitTrailingPeriod detaches a period glued to the very last word of the
// text, which happens when the final word was taken for shorthand.
func splitTrailingPeriod(sentences [][]string) {
	if len(sentences) == 0 {
		return
	}
	last := sentences[len(sentences)-1]
	word := last[len(last)-1]
	if word == "" {
		return
	}
	m, err := wordWithAlphaAndPeriod.FindStringMatch(word)
	if err != nil || m == nil {
		return
	}
	last[len(last)-1] = m.GroupByNumber(1).String()
	sentences[len(sentences)-1] = append(last, m.GroupByNumber(2).String())
}

// SentenceTokenize tokenizes text and splits the tokens into sentences.
// Unless keepWhitespace is set, trailing whitespace is trimmed from every
// token; whitespace-only tokens then become empty strings but keep their
// place.
func SentenceTokenize(text string, keepWhitespace, normalizeASCII bool) [][]string {
	sentences := SplitSentences(Group(Tokenize(text, normalizeASCII)))
	if !keepWhitespace {
		for _, sentence := range sentences {
			for i, token := range sentence {
				sentence[i] = trimRight(token)
			}
		}
	}
	return sentences
}

// isEndSymbol reports whether the first two runes of s are sentence-ending
// punctuation, so "!!!" and "...." qualify as well as ".".
func isEndSymbol(s string) bool {
	if s == "" {
		return false
	}
	prefix := s
	if r := []rune(s); len(r) > 2 {
		prefix = string(r[:2])
	}
	return isSentenceEnder(prefix)
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
