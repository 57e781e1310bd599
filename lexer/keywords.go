package lexer

import "sort"

// keyword pairs an English-phrase lexeme with the token kind it produces.
type keyword struct {
	phrase string
	typ    TokenType
}

// keywords is the fixed phrase table, sorted once (at init time) by
// descending phrase length so the scanner can match longest-first:
// "sweet but stout" must win over "sweet" when both match at an offset.
var keywords = buildKeywords()

func buildKeywords() []keyword {
	kw := []keyword{
		{"I would love to own a plot of land in the 1800s called", Define},
		{"and lease it to", Assign},
		{"owners", EndOfAssign},
		{"scammy", Import},
		{"American", ImportAll},
		{"sweet but stout", ElseIf},
		{"sweet", If},
		{"stout", Else},
		{"lolsie", For},
		{"yarp'", While},
		{"jump off the bandwagon", Break},
		{"get back to work boy", Continue},
		{"anywho", Yield},
		{"sir, would there happen to be any extension work?", Try},
		{"yay, homework!", Catch},
		{"europe ->", Comment},
		{"asia ->", BlockCommentStart},
		{"<- asia", BlockCommentEnd},
	}

	sort.SliceStable(kw, func(i, j int) bool {
		return len(kw[i].phrase) > len(kw[j].phrase)
	})

	return kw
}

// KeywordPhrases returns the phrase list, used by the parser for
// closest-match suggestions when a near-miss lexeme surfaces as a
// generic String token instead of the keyword the author intended.
func KeywordPhrases() []string {
	phrases := make([]string, len(keywords))
	for i, k := range keywords {
		phrases[i] = k.phrase
	}
	return phrases
}

// operatorAlphabet is the set of characters that may compose a
// BinaryOperator lexeme.
var operatorAlphabet = map[rune]bool{
	'^': true, '*': true, '/': true, '+': true, '-': true,
	'<': true, '>': true, '=': true, '≥': true, '≤': true,
}

// genericStringStop are the characters (besides whitespace) that end a
// generic String lexeme.
var genericStringStop = map[rune]bool{
	'(': true, ')': true, '{': true, '}': true, ',': true,
	'+': true, '-': true, '*': true, '/': true, '$': true, '£': true,
}
