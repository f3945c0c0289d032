package tokenizer

import (
	"github.com/dlclark/regexp2"
)

// Segmentation rules. regexp2 is used instead of regexp because most rules
// rely on lookahead, and because its match offsets are rune indices, which
// map directly onto decision slots.
var (
	noPunctuation = mustCompile(`^\w+$`)

	wordWithPeriod             = mustCompile(`[^\s\.]+\.{0,1}`)
	wordWithAlphaAndPeriod     = mustCompile(`^([^\.]+)(\.\s*)$`)
	oneLetterLongOrRepeating   = regexp2.MustCompile(`^(?:(?:[a-z])|(?:[a-z](?:\.[a-z])+))$`, regexp2.IgnoreCase)
	repeatedDash               = mustCompile(`--+`)
	pureWhitespace             = mustCompile(`\s+`)
	leftQuoteShifter           = mustCompile("((`‘(?!`))|(‘(?!‘))\\s*)(?=.*\\w)")
	leftQuoteConverter         = mustCompile(`([«"“]\s*)(?=.*\w)`)
	leftSingleQuoteConverter   = mustCompile(`(?:(\W|^))('\s*)(?=.*\w)`)
	remainingQuoteConverter    = mustCompile(`(.)(?=["“”»])`)
	englishNots                = mustCompile(`(.)(?=n['’]t\b)`)
	englishContractions        = mustCompile(`(.)(?=['’](ve|ll|re)\b)`)
	englishSpecificAppendages  = mustCompile(`(\w)(?=['’]([dms])\b)`)
	frenchAppendages           = mustCompile(`(\b[tjnlsmdclTJNLSMLDC]|qu)['’](?=[^tdms])`)
	rightSingleQuoteConverter  = mustCompile(`(['’]+)(?=\W|$)\s*`)
	simpleDashFinder           = mustCompile(`(-\s*)`)
	advancedDashFinder         = mustCompile(`(‐|‑|‒|–|—|―|-+)\s*`)
	numericalExpression        = mustCompile(`(\d+(?:,\d+)*(?:\.\d+)*(?![a-zA-ZÀ-ż])\s*)`)
	shiftedEllipses            = mustCompile(`([\.\!\?¿¡]{2,})\s*`)
	shiftedStandardPunctuation = mustCompile(`([\(\[\{\}\]\)\!¡\?¿#\$%;~&+=<>|/:,—…])\s*`)
	urlFileFinder              = mustCompile(`(?:[-a-zA-Z0-9@%._\+~#=]{2,256}://)?` +
		`(?:www\.)?[-a-zA-Z0-9@:%\._\+~#=]{2,256}\.[a-z]{2,6}[-a-zA-Z0-9@:%_\+.~#?&//=]*\s*`)
)

// endRules only ever add a split right after each match, in this order.
var endRules = []*regexp2.Regexp{
	pureWhitespace,
	leftQuoteShifter,
	leftQuoteConverter,
	leftSingleQuoteConverter,
	remainingQuoteConverter,
	// regex can't fix this -> regex ca n't fix this
	englishNots,
	// you'll dig this -> you 'll dig this
	englishContractions,
	// the rhino's horns -> the rhino 's horns
	englishSpecificAppendages,
	// qu'a tu fais au rhino -> qu ' a tu fais au rhino
	frenchAppendages,
}

// spanRules turn every match into a token of its own. The dash rule is
// chosen per call depending on whether dashes were normalized.
func spanRules(normalized bool) []*regexp2.Regexp {
	dashes := advancedDashFinder
	if normalized {
		dashes = simpleDashFinder
	}
	return []*regexp2.Regexp{
		rightSingleQuoteConverter,
		// the rhino--truck -> the rhino -- truck
		dashes,
		numericalExpression,
		urlFileFinder,
		shiftedEllipses,
		// the #rhino! -> the # rhino ! ; the rino[sic] -> the rino [ sic ]
		shiftedStandardPunctuation,
	}
}

func mustCompile(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.None)
}

// matches reports whether re matches s. Rules carry no match timeout, so
// the error return of regexp2 is never set.
func matches(re *regexp2.Regexp, s string) bool {
	ok, _ := re.MatchString(s)
	return ok
}

// eachMatch calls fn with the rune offsets [start, end) of every
// non-overlapping match of re in text, left to right.
func eachMatch(re *regexp2.Regexp, text []rune, fn func(start, end int)) {
	m, err := re.FindRunesMatch(text)
	for err == nil && m != nil {
		fn(m.Index, m.Index+m.Length)
		m, err = re.FindNextMatch(m)
	}
}

// matchSpans collects the offsets of every match of re in text.
func matchSpans(re *regexp2.Regexp, text []rune) [][2]int {
	var spans [][2]int
	eachMatch(re, text, func(start, end int) {
		spans = append(spans, [2]int{start, end})
	})
	return spans
}
