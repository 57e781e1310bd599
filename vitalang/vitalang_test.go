package vitalang

import (
	"testing"

	"github.com/vitras21/VitaLang/parser"
)

func TestParsePipeline(t *testing.T) {
	result, err := Parse("£x + £y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tokens) == 0 {
		t.Fatal("expected a non-empty token stream")
	}
	block, ok := result.AST.(parser.BlockExpr)
	if !ok || len(block.Exprs) != 1 {
		t.Fatalf("expected a single top-level expression, got %#v", result.AST)
	}
}

func TestParseSurfacesErrors(t *testing.T) {
	_, err := Parse("{")
	if err == nil {
		t.Fatal("expected a parse error for an unterminated block")
	}
}
