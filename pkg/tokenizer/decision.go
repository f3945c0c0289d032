package tokenizer

import "github.com/dlclark/regexp2"

// Decision says whether a token boundary starts at a given rune.
type Decision uint8

const (
	Undecided Decision = iota
	ShouldSplit
	ShouldNotSplit
)

// String 实现 fmt.Stringer 接口
func (d Decision) String() string {
	switch d {
	case ShouldSplit:
		return "split"
	case ShouldNotSplit:
		return "no-split"
	default:
		return "undecided"
	}
}

// markEnd puts a boundary right after every match of re.
func markEnd(re *regexp2.Regexp, text []rune, decisions []Decision) {
	eachMatch(re, text, func(_, end int) {
		if end < len(decisions) {
			decisions[end] = ShouldSplit
		}
	})
}

// markBeginEnd makes every match of re a token of its own: both ends get a
// boundary unless already decided, and the interior is locked against
// later splits.
func markBeginEnd(re *regexp2.Regexp, text []rune, decisions []Decision) {
	eachMatch(re, text, func(begin, end int) {
		for i := begin + 1; i < end; i++ {
			decisions[i] = ShouldNotSplit
		}
		if end < len(decisions) && decisions[end] == Undecided {
			decisions[end] = ShouldSplit
		}
		if decisions[begin] == Undecided {
			decisions[begin] = ShouldSplit
		}
	})
}

// splitWithDecisions cuts text at every ShouldSplit slot. Empty pieces are
// never produced.
func splitWithDecisions(text []rune, decisions []Decision) []string {
	tokens := make([]string, 0, len(text)/4+1)
	start := 0
	for pos, d := range decisions {
		if d != ShouldSplit {
			continue
		}
		if start != pos {
			tokens = append(tokens, string(text[start:pos]))
		}
		start = pos
	}
	if start != len(text) {
		tokens = append(tokens, string(text[start:]))
	}
	return tokens
}
