// Package vitalang wires the scanner, first pass, and parser into the
// single pipeline a driver needs: source text in, an Expr tree out.
package vitalang

import (
	"github.com/vitras21/VitaLang/firstpass"
	"github.com/vitras21/VitaLang/lexer"
	"github.com/vitras21/VitaLang/parser"
)

// Result holds every intermediate artifact of a run, so a caller (like
// the CLI's --tokens flag) can inspect stages the final AST doesn't
// expose.
type Result struct {
	Tokens    []lexer.Token
	FirstPass firstpass.Result
	AST       parser.Expr
}

// Parse runs the full pipeline: scan src into tokens, extract operator
// declarations with the first pass, then parse the filtered stream.
func Parse(src string, opts ...ParseOpt) (Result, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	tokens := lexer.New(src, cfg.lexerOpts...).Tokenize()
	fp := firstpass.Run(tokens)

	p := parser.New(fp.Tokens, fp.Precedence, fp.Defs, cfg.parserOpts...)
	ast, err := p.Parse()
	if err != nil {
		return Result{Tokens: tokens, FirstPass: fp}, err
	}

	return Result{Tokens: tokens, FirstPass: fp, AST: ast}, nil
}

// ParseOpt configures a Parse call's lexer/parser options.
type ParseOpt func(*parseConfig)

type parseConfig struct {
	lexerOpts  []lexer.LexerOpt
	parserOpts []parser.ParserOpt
}

// WithLexerOpts forwards options to the scanner.
func WithLexerOpts(opts ...lexer.LexerOpt) ParseOpt {
	return func(c *parseConfig) { c.lexerOpts = append(c.lexerOpts, opts...) }
}

// WithParserOpts forwards options to the parser.
func WithParserOpts(opts ...parser.ParserOpt) ParseOpt {
	return func(c *parseConfig) { c.parserOpts = append(c.parserOpts, opts...) }
}
