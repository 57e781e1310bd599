// Package parser implements the two-pass front end's second pass: a
// Pratt-style precedence-climbing recursive-descent parser that turns a
// first-pass-filtered token stream into an Expr tree.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/vitras21/VitaLang/firstpass"
	"github.com/vitras21/VitaLang/internal/invariant"
	"github.com/vitras21/VitaLang/lexer"
)

// Parser consumes a token stream produced by the scanner and filtered by
// the first pass, and turns it into a single Expr (always a top-level
// BlockExpr).
type Parser struct {
	tokens     []lexer.Token
	pos        int
	precedence map[string]int
	prefixOps  map[string]bool
	postfixOps map[string]bool

	cfg       *config
	telemetry Telemetry
}

// New constructs a Parser. precedence and defs normally come from
// firstpass.Run; callers that want to parse without any user operator
// declarations may pass an empty defs slice and a fresh default table.
func New(tokens []lexer.Token, precedence map[string]int, defs []firstpass.OperatorDef, opts ...ParserOpt) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	prefixOps := map[string]bool{"!": true, "?": true}
	postfixOps := map[string]bool{"!": true, "?": true, "++": true}

	for _, def := range defs {
		switch def.Kind {
		case firstpass.Prefix:
			prefixOps[def.Op] = true
		case firstpass.Postfix:
			postfixOps[def.Op] = true
		}
	}

	return &Parser{
		tokens:     tokens,
		precedence: precedence,
		prefixOps:  prefixOps,
		postfixOps: postfixOps,
		cfg:        cfg,
	}
}

// Telemetry returns the parser's counters; zero-valued unless
// WithTelemetry was passed to New.
func (p *Parser) Telemetry() Telemetry {
	if p.cfg.telemetry == TelemetryOff {
		return Telemetry{}
	}
	return p.telemetry
}

// Parse consumes the whole token stream, skipping Newline/Comment/
// BlockCommentStart/BlockCommentEnd at the top level, and returns the
// resulting Block. Indent/Dedent at the top level and any malformed
// construct is a fatal *ParseError; Parse never panics on bad input.
func (p *Parser) Parse() (exprOut Expr, errOut error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				p.telemetry.ErrorCount++
				errOut = pe
				return
			}
			panic(r)
		}
	}()

	var exprs []Expr

	for {
		tok, ok := p.peek()
		if !ok || tok.Type == lexer.EOF {
			break
		}

		switch tok.Type {
		case lexer.Newline, lexer.Comment, lexer.BlockCommentStart, lexer.BlockCommentEnd:
			p.advance()
		case lexer.Indent, lexer.Dedent:
			p.advance()
			panic(p.errorf(tok, nil, "%s at top level", tok.Type))
		default:
			exprs = append(exprs, p.parseExpr())
		}
	}

	return BlockExpr{Exprs: exprs}, nil
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() lexer.Token {
	tok, ok := p.peek()
	if !ok {
		panic(p.errorf(lexer.Token{Type: lexer.EOF}, nil, "unexpected end of input"))
	}
	p.pos++
	p.telemetry.TokenCount++
	return tok
}

func (p *Parser) expect(types ...lexer.TokenType) lexer.Token {
	tok := p.advance()
	for _, t := range types {
		if tok.Type == t {
			return tok
		}
	}
	panic(p.errorf(tok, types, "unexpected token"))
}

func (p *Parser) errorf(tok lexer.Token, expected []lexer.TokenType, msg string, args ...interface{}) *ParseError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	pe := &ParseError{
		TokenIndex: p.pos - 1,
		Got:        tok,
		Expected:   expected,
		Message:    msg,
	}
	if tok.Type == lexer.String {
		pe.Suggestion = suggestKeyword(tok.Symbol())
	}
	return pe
}

// precedenceOf looks up a BinaryOperator token's precedence, defaulting
// to 0 for any operator lexeme absent from the table (unreachable for
// the built-in alphabet, reachable for a BinaryOperator glyph nobody
// declared).
func (p *Parser) precedenceOf(tok lexer.Token) int {
	return p.precedence[tok.Symbol()]
}

func (p *Parser) parseExpr() Expr {
	return p.parseBinary(0)
}

// parseBinary is precedence-climbing: it parses a left operand, then
// repeatedly folds in a binary operator and its right operand as long as
// the operator's precedence is at or above min, recursing at prec+1 for
// the right operand to get left-associativity at equal precedence.
func (p *Parser) parseBinary(min int) Expr {
	left := p.parsePrefix()

	for {
		tok, ok := p.peek()
		if !ok || tok.Type != lexer.BinaryOperator {
			break
		}
		if p.postfixOps[tok.Symbol()] {
			break
		}

		prec := p.precedenceOf(tok)
		if prec < min {
			break
		}

		opTok := p.advance()
		right := p.parseBinary(prec + 1)
		left = BinaryExpr{Left: left, Op: opTok.Symbol(), Right: right}
	}

	return left
}

func (p *Parser) parsePrefix() Expr {
	if tok, ok := p.peek(); ok && tok.Type == lexer.BinaryOperator && p.prefixOps[tok.Symbol()] {
		p.advance()
		operand := p.parsePrefix()
		return UnaryExpr{Operand: operand, Op: tok.Symbol()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		switch tok.Type {
		case lexer.BinaryOperator:
			if !p.postfixOps[tok.Symbol()] {
				return expr
			}
			p.advance()
			expr = UnaryExpr{Operand: expr, Op: tok.Symbol()}
		case lexer.While:
			p.advance()
			p.expect(lexer.LeftCurly)
			body := p.parseBlock()
			expr = WhileExpr{Cond: expr, Then: body, Else: BlockExpr{}}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() Expr {
	tok := p.advance()
	p.telemetry.ProductionCount++
	p.cfg.logger.Debug("parse_primary", slog.String("type", tok.Type.String()))

	switch tok.Type {
	case lexer.Const:
		return ConstExpr{Name: tok.Str}

	case lexer.Variable:
		return VariableExpr{Name: tok.Str}

	case lexer.String:
		return p.parseStringLead(tok.Str)

	case lexer.If:
		return p.parseIf()

	case lexer.For:
		return p.parseFor(tok)

	case lexer.Try:
		return p.parseTry()

	case lexer.Yield:
		return YieldExpr{Value: p.parseExpr()}

	case lexer.Break:
		return BreakExpr{}

	case lexer.LeftParen:
		expr := p.parseExpr()
		p.expect(lexer.RightParen)
		return expr

	case lexer.LeftCurly:
		return p.parseBlock()

	case lexer.Define:
		return p.parseDefine()

	default:
		panic(p.errorf(tok, nil, "unexpected token"))
	}
}

// parseStringLead disambiguates a generic String token into a call
// ("name(args...)"), an array ("a, b, c"), or a bare string literal,
// based on what follows it.
func (p *Parser) parseStringLead(name string) Expr {
	next, ok := p.peek()
	if !ok {
		return StringExpr{Value: name}
	}

	switch next.Type {
	case lexer.LeftParen:
		p.advance()
		var args []Expr
		for {
			tok, ok := p.peek()
			if !ok || tok.Type == lexer.RightParen {
				break
			}
			if tok.Type == lexer.Comma {
				p.advance()
				continue
			}
			args = append(args, p.parseExpr())
		}
		p.expect(lexer.RightParen)
		return FuncExpr{Name: name, Args: args}

	case lexer.Comma:
		elements := []string{name}
		for {
			tok, ok := p.peek()
			if !ok || tok.Type != lexer.Comma {
				break
			}
			p.expect(lexer.Comma)
			elem := p.expect(lexer.String)
			elements = append(elements, elem.Str)
		}
		return ArrayExpr{Elements: elements}

	default:
		return StringExpr{Value: name}
	}
}

// parseBlock accepts either form behind an already-consumed opening
// brace: inline (a single expression, or none) or indented (Newline,
// Indent, expressions separated by Newlines, Dedent).
func (p *Parser) parseBlock() Expr {
	if tok, ok := p.peek(); ok {
		if tok.Type == lexer.RightCurly {
			p.advance()
			return BlockExpr{}
		}
		if tok.Type != lexer.Newline {
			expr := p.parseExpr()
			p.expect(lexer.RightCurly)
			return BlockExpr{Exprs: []Expr{expr}}
		}
	}

	p.expect(lexer.Newline)
	p.expect(lexer.Indent)

	var exprs []Expr
	for {
		tok, ok := p.peek()
		if !ok || tok.Type == lexer.Dedent {
			break
		}
		if tok.Type == lexer.Newline {
			p.advance()
			continue
		}
		prevPos := p.pos
		exprs = append(exprs, p.parseExpr())
		invariant.Invariant(p.pos > prevPos, "parseExpr must consume at least one token")
	}

	p.expect(lexer.Dedent)
	if tok, ok := p.peek(); ok && tok.Type == lexer.Newline {
		p.advance()
	}
	p.expect(lexer.RightCurly)

	return BlockExpr{Exprs: exprs}
}

func (p *Parser) parseIf() Expr {
	cond := p.parseExpr()
	p.expect(lexer.LeftCurly)
	then := p.parseBlock()

	var elseBranch Expr = BlockExpr{}
	if tok, ok := p.peek(); ok && tok.Type == lexer.Else {
		p.advance()
		p.expect(lexer.LeftCurly)
		elseBranch = p.parseBlock()
	}

	return IfExpr{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parseFor(forTok lexer.Token) Expr {
	iter := forTok.Num

	varTok := p.expect(lexer.Variable)
	p.expect(lexer.LeftCurly)
	body := p.parseBlock()

	return ForExpr{Iter: iter, Var: varTok.Str, Then: body, Else: BlockExpr{}}
}

func (p *Parser) parseTry() Expr {
	attempt := p.parseExpr()
	p.expect(lexer.Catch)
	catch := p.parseExpr()
	return TryExpr{Attempt: attempt, Catch: catch}
}

func (p *Parser) parseDefine() Expr {
	varTok := p.expect(lexer.Variable, lexer.Const)
	p.expect(lexer.Assign)
	val := p.parseExpr()
	p.expect(lexer.EndOfAssign)
	return DefineExpr{Var: varTok.Str, Val: val}
}
