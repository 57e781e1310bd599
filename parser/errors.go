package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vitras21/VitaLang/lexer"
)

// ParseError is the parser's single fatal error category. It carries
// enough context to build a human diagnostic without panicking.
type ParseError struct {
	TokenIndex int
	Got        lexer.Token
	Expected   []lexer.TokenType
	Message    string
	Suggestion string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at token %d: %s", e.TokenIndex, e.Message)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected %s, got %s)", joinTypes(e.Expected), e.Got.Type)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " — did you mean %q?", e.Suggestion)
	}
	return b.String()
}

func joinTypes(types []lexer.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

var keywordPhrasesForSuggestion = lexer.KeywordPhrases()

// suggestKeyword finds the keyword phrase closest to a mistyped lexeme,
// for use when a generic String token shows up where a keyword was
// almost certainly intended (e.g. "swete" instead of "sweet").
func suggestKeyword(lexeme string) string {
	ranks := fuzzy.RankFindFold(lexeme, keywordPhrasesForSuggestion)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
