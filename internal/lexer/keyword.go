package lexer

import (
	"sort"
	"strings"
)

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted alphabetically by text.
// Entries are lowercase; lookups fold case first.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"and", TokMulOp},
	{"begin", TokBegin},
	{"char", TokChar},
	{"const", TokConst},
	{"end", TokEnd},
	{"float", TokFloat},
	{"in", TokIn},
	{"inout", TokInOut},
	{"integer", TokInteger},
	{"is", TokIs},
	{"mod", TokMulOp},
	{"not", TokNot},
	{"or", TokAddOp},
	{"out", TokOut},
	{"procedure", TokProcedure},
	{"rem", TokMulOp},
}

// LookupKeyword returns the TokenKind for a reserved word, or (TokError, false)
// if text is not one. Keywords are case-insensitive.
func LookupKeyword(text string) (TokenKind, bool) {
	text = strings.ToLower(text)
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return TokError, false
}
