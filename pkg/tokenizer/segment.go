package tokenizer

import "strings"

var letterNormalizer = strings.NewReplacer("œ", "oe", "æ", "ae")

// Tokenize splits text into word-level tokens. Whitespace is kept and
// always attached to the token before it, so concatenating the result
// reproduces the (normalized) input exactly.
//
// When normalizeASCII is set, a few non-ASCII characters are replaced
// before splitting: œ -> oe, æ -> ae, runs of "--" collapse to "-", and
// the Unicode dashes become "-". Offsets into the original text are not
// preserved in that case.
func Tokenize(text string, normalizeASCII bool) []string {
	// fast path: nothing to split on
	if matches(noPunctuation, text) {
		return []string{text}
	}
	if normalizeASCII {
		text = normalizeLetters(text)
	}

	runes := []rune(text)
	decisions := make([]Decision, len(runes))

	for _, re := range endRules {
		markEnd(re, runes, decisions)
	}
	for _, re := range spanRules(normalizeASCII) {
		markBeginEnd(re, runes, decisions)
	}
	protectShorthand(runes, decisions)

	if normalizeASCII {
		canonicalizeDashes(runes)
	}
	return splitWithDecisions(runes, decisions)
}

// normalizeLetters applies the length-changing part of ASCII
// normalization. It must run before the decision array is built.
func normalizeLetters(text string) string {
	text = letterNormalizer.Replace(text)
	if out, err := repeatedDash.Replace(text, "-", -1, -1); err == nil {
		text = out
	}
	return text
}

// canonicalizeDashes rewrites Unicode dashes to '-' in place. It is rune
// for rune, so decisions computed beforehand stay aligned.
func canonicalizeDashes(runes []rune) {
	for i, r := range runes {
		if _, ok := dashVariants[r]; ok {
			runes[i] = '-'
		}
	}
}

// Normalize returns text as Tokenize sees it with normalizeASCII set;
// the tokens of Tokenize(text, true) always concatenate to this string.
func Normalize(text string) string {
	if matches(noPunctuation, text) {
		return text
	}
	runes := []rune(normalizeLetters(text))
	canonicalizeDashes(runes)
	return string(runes)
}
