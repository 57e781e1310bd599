package lexer

import (
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/vitras21/VitaLang/internal/invariant"
)

// LexerOpt configures a Lexer at construction time. Options only affect
// the ambient debug channel; they never change the tokens produced for a
// given source string.
type LexerOpt func(*Lexer)

// WithLogger overrides the default environment-gated debug logger.
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(l *Lexer) { l.logger = logger }
}

func defaultLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("VITALANG_DEBUG_LEXER") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Lexer turns a source string into a flat token sequence. It owns a
// single forward cursor over the input and an indent stack; both are
// reset by New and mutated only by Tokenize.
type Lexer struct {
	input  string
	pos    int // byte offset of the next unread rune
	ch     rune
	chSize int
	atEOF  bool

	indentStack []int
	logger      *slog.Logger
}

// New constructs a Lexer over src. Tokenize may be called exactly once
// per Lexer; construct a fresh Lexer per source string.
func New(src string, opts ...LexerOpt) *Lexer {
	l := &Lexer{
		input:       src,
		indentStack: []int{0},
		logger:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readRune()
	return l
}

// Tokenize scans the whole source and returns the token sequence,
// terminated by a single EOF token. The scanner never fails: unknown
// input becomes generic String tokens.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, more := l.next()
		tokens = append(tokens, tok...)
		if !more {
			break
		}
	}
	return tokens
}

// readRune advances the cursor by one rune, tracking EOF.
func (l *Lexer) readRune() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.chSize = 0
		l.atEOF = true
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.chSize = size
	l.atEOF = false
}

// peekRune returns the rune after the current one without consuming it.
func (l *Lexer) peekRune() (rune, bool) {
	next := l.pos + l.chSize
	if next >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r, true
}

// advance consumes the current rune and moves to the next.
func (l *Lexer) advance() rune {
	ch := l.ch
	l.pos += l.chSize
	l.readRune()
	return ch
}

// next produces zero or more tokens for the current scanner position and
// reports whether scanning should continue (false once EOF is emitted).
func (l *Lexer) next() ([]Token, bool) {
	if l.atEOF {
		return []Token{noValueToken(EOF)}, false
	}

	switch {
	case l.ch == '\n':
		l.advance()
		indentToks := l.scanIndentation()
		return append([]Token{noValueToken(Newline)}, indentToks...), true

	case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
		l.advance()
		return nil, true

	case l.ch == '(':
		l.advance()
		return []Token{charToken(LeftParen, '(')}, true
	case l.ch == ')':
		l.advance()
		return []Token{charToken(RightParen, ')')}, true
	case l.ch == '{':
		l.advance()
		return []Token{charToken(LeftCurly, '{')}, true
	case l.ch == '}':
		l.advance()
		return []Token{charToken(RightCurly, '}')}, true
	case l.ch == ',':
		l.advance()
		return []Token{charToken(Comma, ',')}, true

	case operatorAlphabet[l.ch]:
		return []Token{l.scanOperator()}, true

	case l.ch == '$':
		l.advance()
		return []Token{strToken(Const, l.scanIdentifierRun())}, true

	case l.ch == '£' || l.ch == '€':
		l.advance()
		return []Token{strToken(Variable, l.scanIdentifierRun())}, true

	default:
		return l.scanKeywordOrString(), true
	}
}

// scanIndentation measures the indentation of the line just started and
// emits Indent/Dedent pseudo-tokens relative to the indent stack.
func (l *Lexer) scanIndentation() []Token {
	indent := 0
	for {
		switch l.ch {
		case ' ':
			indent++
			l.advance()
			continue
		case '\t':
			indent += 4
			l.advance()
			continue
		}
		break
	}

	var toks []Token
	top := l.indentStack[len(l.indentStack)-1]

	if indent > top {
		l.indentStack = append(l.indentStack, indent)
		toks = append(toks, noValueToken(Indent))
	} else {
		for indent < l.indentStack[len(l.indentStack)-1] {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			invariant.Invariant(len(l.indentStack) >= 1, "indent stack must never empty below the base level")
			toks = append(toks, noValueToken(Dedent))
		}
	}

	return toks
}

// scanOperator consumes a maximal run of operator-alphabet runes.
func (l *Lexer) scanOperator() Token {
	var b []rune
	b = append(b, l.advance())
	for operatorAlphabet[l.ch] && !l.atEOF {
		b = append(b, l.advance())
	}
	return strToken(BinaryOperator, string(b))
}

// scanIdentifierRun consumes the maximal [A-Za-z0-9_] run after a sigil.
func (l *Lexer) scanIdentifierRun() string {
	var b []rune
	for !l.atEOF && isIdentChar(l.ch) {
		b = append(b, l.advance())
	}
	return string(b)
}

func isIdentChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// scanKeywordOrString tries every keyword phrase (longest first) against
// the current position; on a hit, dispatches to the kind-specific
// continuation. On a miss, falls back to a generic String token.
func (l *Lexer) scanKeywordOrString() []Token {
	if kw, ok := l.matchKeyword(); ok {
		l.logger.Debug("keyword match", "phrase", kw.phrase, "type", kw.typ.String())
		return l.consumeKeyword(kw)
	}
	return []Token{l.scanGenericString()}
}

// matchKeyword finds the first (i.e. longest, since the table is sorted
// by descending phrase length) keyword whose phrase matches literally at
// the cursor.
func (l *Lexer) matchKeyword() (keyword, bool) {
	remaining := l.input[l.pos:]
	for _, kw := range keywords {
		if len(kw.phrase) <= len(remaining) && remaining[:len(kw.phrase)] == kw.phrase {
			return kw, true
		}
	}
	return keyword{}, false
}

func (l *Lexer) consumeKeyword(kw keyword) []Token {
	l.consumeBytes(len(kw.phrase))

	switch kw.typ {
	case Comment:
		return []Token{strToken(Comment, l.consumeUntilNewline())}
	case BlockCommentStart:
		text := l.consumeUntil("<- asia")
		return []Token{strToken(BlockCommentStart, text), noValueToken(BlockCommentEnd)}
	case For:
		count := 0
		for l.ch == 's' {
			l.advance()
			count++
		}
		return []Token{numToken(For, count)}
	default:
		return []Token{strToken(kw.typ, kw.phrase)}
	}
}

// consumeBytes advances the cursor by exactly n bytes of the underlying
// input (the keyword phrase is pure ASCII, so byte and rune counts agree).
func (l *Lexer) consumeBytes(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) consumeUntilNewline() string {
	var b []rune
	for !l.atEOF && l.ch != '\n' {
		b = append(b, l.advance())
	}
	return string(b)
}

// consumeUntil reads runes until the literal terminator string is found
// immediately ahead, consuming the terminator too.
func (l *Lexer) consumeUntil(terminator string) string {
	var b []rune
	for {
		if !l.atEOF && hasPrefixAt(l.input, l.pos, terminator) {
			l.consumeBytes(len(terminator))
			return string(b)
		}
		if l.atEOF {
			return string(b)
		}
		b = append(b, l.advance())
	}
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	if pos+len(prefix) > len(s) {
		return false
	}
	return s[pos:pos+len(prefix)] == prefix
}

// scanGenericString consumes a run of non-delimiter characters as a
// fallback String token, preserving the reference implementation's
// "c != '\\'" escape check on the *initial* character (see DESIGN.md for
// why this is preserved as-is rather than fixed).
func (l *Lexer) scanGenericString() Token {
	first := l.ch
	var b []rune
	b = append(b, l.advance())

	for !l.atEOF {
		next := l.ch
		stop := (isSpace(next) || genericStringStop[next]) && first != '\\'
		if stop {
			break
		}
		b = append(b, l.advance())
	}
	return strToken(String, string(b))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
