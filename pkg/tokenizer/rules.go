package tokenizer

// The tables below are loaded once and never mutated. Matching code that
// needs to shrink a set (see activePairs in quotes.go) works on its own copy.

var abbreviations = makeSet(
	// people
	"jr", "mr", "ms", "mrs", "dr", "prof", "esq", "sr",
	"sen", "sens", "rep", "reps", "gov", "attys",
	"supt", "det", "mssrs", "rev", "fr", "ss", "msgr",
	// army
	"col", "gen", "lt", "cmdr", "adm", "capt", "sgt", "cpl", "maj", "brig", "pt",
	// institutions
	"dept", "univ", "assn", "bros", "ph.d",
	// places
	"arc", "al", "ave", "blvd", "bld", "cl", "ct",
	"cres", "exp", "expy", "dist", "mt", "mtn", "ft",
	"fy", "fwy", "hwy", "hway", "la", "pde", "pd", "plz", "pl", "rd", "st",
	"tce",
	// companies
	"mfg", "inc", "ltd", "co", "corp",
	// states and provinces
	"ala", "ariz", "ark", "cal", "calif", "colo", "conn",
	"del", "fed", "fla", "ga", "ida", "id", "ill", "ind", "ia", "kans",
	"kan", "ken", "ky", "me", "md", "is", "mass", "mich", "minn",
	"miss", "mo", "mont", "neb", "nebr", "nev", "mex", "okla", "ok",
	"ore", "penna", "penn", "pa", "dak", "tenn", "tex", "ut", "vt",
	"va", "wash", "wis", "wisc", "wy", "wyo", "usafa", "alta",
	"man", "ont", "que", "sask", "yuk",
	// months
	"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep",
	"sept", "oct", "nov", "dec",
	// misc
	"vs", "etc", "no", "esp", "ed", "iv", "op", "i.e", "e.g", "v",
	// web
	"www",
	// currency
	"rs",
)

var months = makeSet(
	"january", "february", "march", "april", "may",
	"june", "july", "august", "september", "october",
	"november", "december",
)

// sentenceEnders holds the tokens (or two-character token prefixes) that end a sentence.
var sentenceEnders = makeSet(".", "...", "?", "!", "..", "!!", "??", "!?", "?!", "…")

// dashVariants are the single-rune dashes canonicalized to '-' when
// normalizing. U+2010 through U+2015 includes the en dash and em dash.
var dashVariants = map[rune]struct{}{
	'‐': {}, '‑': {}, '‒': {}, '–': {}, '—': {}, '―': {},
}

// continuationPunct marks punctuation after which a sentence keeps going.
var continuationPunct = func() map[rune]struct{} {
	set := map[rune]struct{}{';': {}, ',': {}, '-': {}, ':': {}}
	for r := range dashVariants {
		set[r] = struct{}{}
	}
	return set
}()

// closeToOpen pairs every closing symbol with its opening symbol. The plain
// double quote is its own pair and is resolved by heuristics in quotes.go.
var closeToOpen = map[rune]rune{
	')': '(',
	']': '[',
	'"': '"',
	'}': '{',
	'”': '“',
}

var openingSymbols = map[rune]struct{}{'(': {}, '[': {}, '"': {}, '{': {}, '“': {}}

var closingSymbols = map[rune]struct{}{')': {}, ']': {}, '"': {}, '}': {}, '”': {}}

func makeSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func isAbbreviation(lowered string) bool {
	_, ok := abbreviations[lowered]
	return ok
}

func isMonth(lowered string) bool {
	_, ok := months[lowered]
	return ok
}

func isSentenceEnder(s string) bool {
	_, ok := sentenceEnders[s]
	return ok
}

func isContinuationPunct(r rune) bool {
	_, ok := continuationPunct[r]
	return ok
}
