package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// protectShorthand revisits every period that ends a word and decides
// whether it is a real punctuation mark or part of shorthand such as
// "Mr." or "a.b.c.". It runs after all other rules and may override the
// decisions they made for periods.
//
//	I'm with Mr. Smith   -> "Mr. " stays one token
//	I'm with Mister.     -> "Mister" "."
func protectShorthand(text []rune, decisions []Decision) {
	words := matchSpans(wordWithPeriod, text)

	for i, w := range words {
		start, end := w[0], w[1]
		// a split placed inside the word by an earlier rule starts the
		// piece that carries the period
		for pos := start; pos < end; pos++ {
			if decisions[pos] == ShouldSplit && end-pos > 1 {
				start = pos
			}
		}
		word := text[start:end]

		if word[len(word)-1] != '.' {
			// 'chocolate.Mountains of' -> 'chocolate. Mountains of'
			if !unicode.IsDigit(word[0]) && decisions[start] == Undecided {
				decisions[start] = ShouldSplit
			}
			continue
		}

		periodPos := end - 1
		stem := string(word[:len(word)-1])
		inTable := isAbbreviation(strings.ToLower(stem))
		abbrLike := inTable || matches(oneLetterLongOrRepeating, stem)
		bareNumber := !abbrLike && isDigits(stem)

		isLastWord := i == len(words)-1
		isEnding := isLastWord && (end == len(text) || isSpaces(text[end:]))

		var next string
		if !isLastWord {
			next = string(text[words[i+1][0]:words[i+1][1]])
		}

		switch {
		case len(word) > 1 && abbrLike && !isEnding &&
			((!isLastWord && startsLower(next)) ||
				(!isLastWord && isSentenceEnder(next)) ||
				unicode.IsUpper(word[0]) ||
				inTable ||
				len(word) == 2):
			// next word is lowercase (not a new sentence), punctuation, or the
			// shorthand itself is capitalized: 'Mister. ABAGNALE called'
			keepPeriod(decisions, periodPos)
		case bareNumber && len([]rune(stem)) <= 2 && !isLastWord && isMonth(strings.ToLower(next)):
			// a date such as '14. march'
			keepPeriod(decisions, periodPos)
		case decisions[periodPos] == Undecided:
			decisions[periodPos] = ShouldSplit
		}
	}
}

// keepPeriod attaches the period at pos to the word before it. If the
// period had started a token, the boundary moves to the rune after it.
func keepPeriod(decisions []Decision, pos int) {
	if decisions[pos] == ShouldSplit && pos+1 < len(decisions) {
		decisions[pos+1] = ShouldSplit
	}
	decisions[pos] = ShouldNotSplit
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSpaces(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func startsLower(s string) bool {
	return unicode.IsLower(firstRune(s))
}

// firstRune returns the first rune of s, or utf8.RuneError when s is empty.
func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
