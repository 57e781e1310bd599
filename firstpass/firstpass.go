// Package firstpass rewrites a scanned token stream, extracting
// user-defined operator declarations before the Pratt parser ever sees
// them and folding each one into a precedence table.
package firstpass

import (
	"strconv"
	"strings"

	"github.com/vitras21/VitaLang/lexer"
)

// OperatorKind classifies how a user-declared operator attaches to its
// operand(s).
type OperatorKind int

const (
	Binary OperatorKind = iota
	Prefix
	Postfix
)

func (k OperatorKind) String() string {
	switch k {
	case Prefix:
		return "Prefix"
	case Postfix:
		return "Postfix"
	default:
		return "Binary"
	}
}

// OperatorDef records one user operator declaration: the operator
// lexeme, the backing function name (if given), its precedence, and its
// fixity.
type OperatorDef struct {
	Op         string
	Func       string
	HasFunc    bool
	Precedence int
	Kind       OperatorKind
}

func defaultPrecedence() map[string]int {
	return map[string]int{
		"^^": 4,
		"^":  3,
		"*":  2,
		"/":  2,
		"+":  1,
		"-":  1,
		"<":  0,
		">":  0,
		"=":  0,
		"≥":  0,
		"≤":  0,
	}
}

// Result is the output of Run: the token stream with operator-definition
// runs removed, the resulting precedence table, and the list of
// declarations extracted, in source order.
type Result struct {
	Tokens     []lexer.Token
	Precedence map[string]int
	Defs       []OperatorDef
}

// Run scans tokens for "Define X and lease it to { ... } ... owners"
// operator-declaration forms, removes each one from the stream, and
// accumulates its precedence into the returned table. Any Define run
// that doesn't match the declaration shape is left in the stream for the
// parser's own Define handling (a variable/constant definition).
func Run(tokens []lexer.Token) Result {
	filtered := make([]lexer.Token, 0, len(tokens))
	precedence := defaultPrecedence()
	var defs []OperatorDef

	i := 0
	for i < len(tokens) {
		if def, ok := maybeParseOpDef(tokens, i); ok {
			precedence[def.Op] = def.Precedence
			defs = append(defs, def)
			i = skipUntilEndOfAssign(tokens, i+1)
			continue
		}

		filtered = append(filtered, tokens[i])
		i++
	}

	return Result{Tokens: filtered, Precedence: precedence, Defs: defs}
}

func skipUntilEndOfAssign(tokens []lexer.Token, i int) int {
	for i < len(tokens) {
		if tokens[i].Type == lexer.EndOfAssign {
			return i + 1
		}
		i++
	}
	return i
}

// maybeParseOpDef recognizes the shape:
//
//	Define BinaryOperator Assign [ '{' [func] [,] [precedence] [,] [kind] '}' ] ... EndOfAssign
//
// Any piece of the optional metadata block that's missing or malformed
// silently falls back to its default (no func, precedence 0, Binary) —
// this mirrors the reference implementation exactly, including its
// permissive refusal to ever surface a "malformed operator metadata"
// error. Returns ok=false if the run never reaches an EndOfAssign, in
// which case the Define token is left for the parser to treat as an
// ordinary variable/constant definition.
func maybeParseOpDef(tokens []lexer.Token, i int) (OperatorDef, bool) {
	if i >= len(tokens) || tokens[i].Type != lexer.Define {
		return OperatorDef{}, false
	}

	opToken, ok := at(tokens, i+1)
	if !ok || opToken.Type != lexer.BinaryOperator {
		return OperatorDef{}, false
	}
	assignToken, ok := at(tokens, i+2)
	if !ok || assignToken.Type != lexer.Assign {
		return OperatorDef{}, false
	}

	cursor := i + 3

	var funcName string
	var hasFunc bool
	precedence := 0
	kind := Binary

	if tok, ok := at(tokens, cursor); ok && tok.Type == lexer.LeftCurly {
		cursor++

		if tok, ok := at(tokens, cursor); ok && tok.Type != lexer.RightCurly {
			if tok.ValueKind == lexer.StrValue {
				funcName, hasFunc = tok.Str, true
			}
			cursor++
		}

		if tok, ok := at(tokens, cursor); ok && tok.Type == lexer.Comma {
			cursor++
		}

		if tok, ok := at(tokens, cursor); ok && tok.Type != lexer.RightCurly {
			switch tok.ValueKind {
			case lexer.NumValue:
				precedence = tok.Num
			case lexer.StrValue:
				if n, err := strconv.Atoi(tok.Str); err == nil {
					precedence = n
				}
			}
			cursor++
		}

		if tok, ok := at(tokens, cursor); ok && tok.Type == lexer.Comma {
			cursor++
		}

		if tok, ok := at(tokens, cursor); ok && tok.Type != lexer.RightCurly {
			if tok.ValueKind == lexer.StrValue {
				switch strings.ToLower(tok.Str) {
				case "prefix":
					kind = Prefix
				case "postfix", "unary":
					kind = Postfix
				case "binary":
					kind = Binary
				}
			}
			cursor++
		}

		if tok, ok := at(tokens, cursor); ok && tok.Type == lexer.RightCurly {
			cursor++
		}
	}

	for cursor < len(tokens) {
		if tokens[cursor].Type == lexer.EndOfAssign {
			if opToken.ValueKind != lexer.StrValue {
				return OperatorDef{}, false
			}
			return OperatorDef{
				Op:         opToken.Str,
				Func:       funcName,
				HasFunc:    hasFunc,
				Precedence: precedence,
				Kind:       kind,
			}, true
		}
		cursor++
	}

	return OperatorDef{}, false
}

func at(tokens []lexer.Token, i int) (lexer.Token, bool) {
	if i < 0 || i >= len(tokens) {
		return lexer.Token{}, false
	}
	return tokens[i], true
}
