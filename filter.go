package chipflow

import (
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Chip filtering with fzf query syntax, scored by junegunn/fzf's algo package.
//
//   "go"     fuzzy subsequence match
//   "'go"    exact substring match
//   "^go"    prefix match
//   "go$"    suffix match
//   "!go"    negated match (combines with ', ^ and $)
//   "a b"    every space-separated term must match
//
// A term containing an upper-case letter matches case-sensitively.

func init() {
	algo.Init("default")
}

var (
	slabMu sync.Mutex
	slab   = util.MakeSlab(100*1024, 2048)
)

type matchKind uint8

const (
	matchFuzzy matchKind = iota
	matchExact
	matchPrefix
	matchSuffix
)

type queryTerm struct {
	pattern       []rune
	kind          matchKind
	negated       bool
	caseSensitive bool
}

// Query is a parsed filter query. Parse once, match many.
type Query struct {
	raw   string
	terms []queryTerm
}

// ParseQuery parses raw into a Query. A blank query matches everything.
func ParseQuery(raw string) Query {
	q := Query{raw: raw}
	for _, tok := range strings.Fields(raw) {
		if t, ok := parseQueryTerm(tok); ok {
			q.terms = append(q.terms, t)
		}
	}
	return q
}

func parseQueryTerm(tok string) (queryTerm, bool) {
	t := queryTerm{kind: matchFuzzy}

	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}

	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind = matchExact
		tok = tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind = matchPrefix
		tok = tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind = matchSuffix
		tok = tok[:len(tok)-1]
	}

	if tok == "" || tok == "!" {
		return t, false
	}

	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.pattern = []rune(tok)
	return t, true
}

// String returns the query as typed.
func (q Query) String() string { return q.raw }

// Empty reports whether the query has no terms.
func (q Query) Empty() bool { return len(q.terms) == 0 }

// Match scores s against every term. ok is false if any term fails.
// Negated terms contribute no score.
func (q Query) Match(s string) (score int, ok bool) {
	if len(q.terms) == 0 {
		return 0, true
	}

	chars := util.ToChars([]byte(s))

	slabMu.Lock()
	defer slabMu.Unlock()

	for _, t := range q.terms {
		var fn func(bool, bool, bool, *util.Chars, []rune, bool, *util.Slab) (algo.Result, *[]int)
		switch t.kind {
		case matchExact:
			fn = algo.ExactMatchNaive
		case matchPrefix:
			fn = algo.PrefixMatch
		case matchSuffix:
			fn = algo.SuffixMatch
		default:
			fn = algo.FuzzyMatchV2
		}

		res, _ := fn(t.caseSensitive, false, true, &chars, t.pattern, false, slab)
		matched := res.Start >= 0
		if matched == t.negated {
			return 0, false
		}
		if matched {
			score += res.Score
		}
	}
	return score, true
}

// FilterChips returns the chips whose names match q, in their original
// order. Flow layout is order sensitive, so results are not ranked.
func FilterChips[T ChipItem](q Query, chips []T) []T {
	if q.Empty() {
		return chips
	}
	out := make([]T, 0, len(chips))
	for _, c := range chips {
		if _, ok := q.Match(c.Name()); ok {
			out = append(out, c)
		}
	}
	return out
}
