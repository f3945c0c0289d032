package tokenizer

import "strings"

// Node is one element of a grouped token stream: either a single token
// (a leaf) or the tokens of a matched quote/bracket span (a group). Both
// kinds share the backing array of the token slice they were built from.
type Node struct {
	tokens []string
	group  bool
}

// IsGroup reports whether n is a matched span rather than a single token.
func (n Node) IsGroup() bool { return n.group }

// Leaves returns the tokens covered by n, in order.
func (n Node) Leaves() []string { return n.tokens }

// String returns the text covered by n.
func (n Node) String() string { return strings.Join(n.tokens, "") }

type stackEntry struct {
	symbol rune
	start  int
}

type span struct {
	start, end int
}

// activePairs is the per-call view of which symbol pairs still take part in
// matching. A pair that misbehaves is switched off for the rest of the input.
type activePairs struct {
	opening map[rune]struct{}
	closing map[rune]struct{}
}

func newActivePairs() *activePairs {
	p := &activePairs{
		opening: make(map[rune]struct{}, len(openingSymbols)),
		closing: make(map[rune]struct{}, len(closingSymbols)),
	}
	for r := range openingSymbols {
		p.opening[r] = struct{}{}
	}
	for r := range closingSymbols {
		p.closing[r] = struct{}{}
	}
	return p
}

func (p *activePairs) opens(r rune) bool {
	_, ok := p.opening[r]
	return ok
}

func (p *activePairs) closes(r rune) bool {
	_, ok := p.closing[r]
	return ok
}

// decommission stops treating closer and its opening symbol as a pair.
func (p *activePairs) decommission(closer rune) {
	delete(p.closing, closer)
	delete(p.opening, closeToOpen[closer])
}

// Group matches paired symbols (brackets, braces, parentheses and quotes)
// across tokens and returns the stream with every outermost matched span
// collapsed into a group. Stray or crossing symbols never cause a failure:
// the offending pair is ignored from that point on.
func Group(tokens []string) []Node {
	pairs := newActivePairs()
	var (
		inside        []stackEntry
		observedOpens int
		matched       []span
	)

	for idx, token := range tokens {
		symbol := firstRune(token)

		var isOpen, isClose bool
		if symbol == '"' && pairs.opens(symbol) {
			isOpen = quoteOpens(tokens, idx, inside)
			isClose = !isOpen
		} else {
			isOpen = pairs.opens(symbol)
			isClose = pairs.closes(symbol)
		}

		switch {
		case isOpen:
			inside = append(inside, stackEntry{symbol: symbol, start: idx})
			observedOpens++
		case isClose:
			opener := closeToOpen[symbol]
			if len(inside) == 0 {
				if observedOpens > 0 && pairs.closes(symbol) {
					pairs.decommission(symbol)
				}
				continue
			}
			if top := inside[len(inside)-1]; top.symbol == opener {
				matched = append(matched, span{start: top.start, end: idx + 1})
				inside = inside[:len(inside)-1]
				continue
			}
			if pairs.closes(symbol) {
				pairs.decommission(symbol)
			}
			inside = dropOpener(inside, opener)
		}
	}

	return materialize(tokens, matched)
}

// quoteOpens decides whether the ambiguous '"' at tokens[idx] opens a
// quotation (true) or closes one (false).
func quoteOpens(tokens []string, idx int, inside []stackEntry) bool {
	token := tokens[idx]
	hasSpaces := len(token) > 1
	prevHasSpaces := idx > 0 && strings.HasSuffix(tokens[idx-1], " ")
	insideQuote := len(inside) > 0 && inside[len(inside)-1].symbol == '"'

	switch {
	case idx == 0:
		return true
	case hasSpaces && prevHasSpaces:
		// spaces on both sides tell nothing; if a quotation is open this
		// closes it, otherwise count how many quotes are left to pair up
		if insideQuote {
			return false
		}
		expected := 1
		for _, e := range inside {
			if e.symbol == '"' {
				expected++
			}
		}
		remaining := 0
		for _, t := range tokens[idx+1:] {
			if firstRune(t) == '"' {
				remaining++
			}
		}
		return expected == remaining
	case hasSpaces:
		// 'joe" '
		return false
	case idx+1 == len(tokens):
		return false
	}

	next := firstRune(tokens[idx+1])
	if !strings.HasSuffix(tokens[idx-1], " ") ||
		isSentenceEnder(string(next)) ||
		isContinuationPunct(next) {
		// 'joe"something"' or a quote followed by ';', ',' ...
		return !insideQuote
	}
	return true
}

func dropOpener(inside []stackEntry, opener rune) []stackEntry {
	kept := inside[:0]
	for _, e := range inside {
		if e.symbol != opener {
			kept = append(kept, e)
		}
	}
	return kept
}

// materialize keeps only outermost spans. Spans are recorded in the order
// they close, so walking them backwards meets every enclosing span before
// the spans nested in it.
func materialize(tokens []string, matched []span) []Node {
	out := make([]Node, 0, len(tokens))
	earliest := len(tokens)
	for i := len(matched) - 1; i >= 0; i-- {
		s := matched[i]
		if s.start > earliest {
			continue
		}
		for j := earliest - 1; j >= s.end; j-- {
			out = append(out, Node{tokens: tokens[j : j+1]})
		}
		out = append(out, Node{tokens: tokens[s.start:s.end], group: true})
		earliest = s.start
	}
	for j := earliest - 1; j >= 0; j-- {
		out = append(out, Node{tokens: tokens[j : j+1]})
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
