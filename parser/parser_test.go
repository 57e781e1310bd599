package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vitras21/VitaLang/firstpass"
	"github.com/vitras21/VitaLang/lexer"
)

func parseSrc(t *testing.T, src string) Expr {
	t.Helper()
	tokens := lexer.New(src).Tokenize()
	fp := firstpass.Run(tokens)
	p := New(fp.Tokens, fp.Precedence, fp.Defs)
	ast, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return ast
}

func assertAST(t *testing.T, src string, want Expr) {
	t.Helper()
	got := parseSrc(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch for %q (-want +got):\n%s", src, diff)
	}
}

func TestPrecedenceClimbing(t *testing.T) {
	// x + y * z parses as x + (y * z) since * binds tighter than +.
	assertAST(t, "£x + £y * £z", BlockExpr{Exprs: []Expr{
		BinaryExpr{
			Left: VariableExpr{Name: "x"},
			Op:   "+",
			Right: BinaryExpr{
				Left:  VariableExpr{Name: "y"},
				Op:    "*",
				Right: VariableExpr{Name: "z"},
			},
		},
	}})
}

func TestPrecedenceLawHigherBindsDeeper(t *testing.T) {
	// x - y ^ z parses as x - (y ^ z): prec(^)=3 > prec(-)=1.
	assertAST(t, "£x - £y ^ £z", BlockExpr{Exprs: []Expr{
		BinaryExpr{
			Left: VariableExpr{Name: "x"},
			Op:   "-",
			Right: BinaryExpr{
				Left:  VariableExpr{Name: "y"},
				Op:    "^",
				Right: VariableExpr{Name: "z"},
			},
		},
	}})
}

func TestLeftAssociativity(t *testing.T) {
	// x + y + z parses as (x + y) + z at equal precedence.
	assertAST(t, "£x + £y + £z", BlockExpr{Exprs: []Expr{
		BinaryExpr{
			Left: BinaryExpr{
				Left:  VariableExpr{Name: "x"},
				Op:    "+",
				Right: VariableExpr{Name: "y"},
			},
			Op:    "+",
			Right: VariableExpr{Name: "z"},
		},
	}})
}

func TestParenthesizedGrouping(t *testing.T) {
	assertAST(t, "(£x + £y) * £z", BlockExpr{Exprs: []Expr{
		BinaryExpr{
			Left: BinaryExpr{
				Left:  VariableExpr{Name: "x"},
				Op:    "+",
				Right: VariableExpr{Name: "y"},
			},
			Op:    "*",
			Right: VariableExpr{Name: "z"},
		},
	}})
}

func TestFuncCall(t *testing.T) {
	assertAST(t, "greet(£x, £y)", BlockExpr{Exprs: []Expr{
		FuncExpr{Name: "greet", Args: []Expr{
			VariableExpr{Name: "x"},
			VariableExpr{Name: "y"},
		}},
	}})
}

func TestFuncCallNoArgs(t *testing.T) {
	assertAST(t, "greet()", BlockExpr{Exprs: []Expr{
		FuncExpr{Name: "greet", Args: nil},
	}})
}

func TestArrayLiteral(t *testing.T) {
	assertAST(t, "a, b, c", BlockExpr{Exprs: []Expr{
		ArrayExpr{Elements: []string{"a", "b", "c"}},
	}})
}

func TestBareStringLiteral(t *testing.T) {
	assertAST(t, "hello", BlockExpr{Exprs: []Expr{
		StringExpr{Value: "hello"},
	}})
}

func TestIfElseInline(t *testing.T) {
	assertAST(t, "sweet £cond { £a } stout { £b }", BlockExpr{Exprs: []Expr{
		IfExpr{
			Cond: VariableExpr{Name: "cond"},
			Then: BlockExpr{Exprs: []Expr{VariableExpr{Name: "a"}}},
			Else: BlockExpr{Exprs: []Expr{VariableExpr{Name: "b"}}},
		},
	}})
}

func TestIfWithoutElse(t *testing.T) {
	assertAST(t, "sweet £cond { £a }", BlockExpr{Exprs: []Expr{
		IfExpr{
			Cond: VariableExpr{Name: "cond"},
			Then: BlockExpr{Exprs: []Expr{VariableExpr{Name: "a"}}},
			Else: BlockExpr{},
		},
	}})
}

func TestIfIndentedBlock(t *testing.T) {
	src := "sweet £cond {\n  £a\n  £b\n}"
	assertAST(t, src, BlockExpr{Exprs: []Expr{
		IfExpr{
			Cond: VariableExpr{Name: "cond"},
			Then: BlockExpr{Exprs: []Expr{
				VariableExpr{Name: "a"},
				VariableExpr{Name: "b"},
			}},
			Else: BlockExpr{},
		},
	}})
}

func TestForLoopTrailingS(t *testing.T) {
	assertAST(t, "lolsiesss £i { £i }", BlockExpr{Exprs: []Expr{
		ForExpr{
			Iter: 3,
			Var:  "i",
			Then: BlockExpr{Exprs: []Expr{VariableExpr{Name: "i"}}},
			Else: BlockExpr{},
		},
	}})
}

func TestWhilePostfix(t *testing.T) {
	assertAST(t, "£cond yarp' { £a }", BlockExpr{Exprs: []Expr{
		WhileExpr{
			Cond: VariableExpr{Name: "cond"},
			Then: BlockExpr{Exprs: []Expr{VariableExpr{Name: "a"}}},
			Else: BlockExpr{},
		},
	}})
}

func TestTryCatch(t *testing.T) {
	src := "sir, would there happen to be any extension work? £a yay, homework! £b"
	assertAST(t, src, BlockExpr{Exprs: []Expr{
		TryExpr{
			Attempt: VariableExpr{Name: "a"},
			Catch:   VariableExpr{Name: "b"},
		},
	}})
}

func TestYield(t *testing.T) {
	assertAST(t, "anywho £x", BlockExpr{Exprs: []Expr{
		YieldExpr{Value: VariableExpr{Name: "x"}},
	}})
}

func TestBreak(t *testing.T) {
	assertAST(t, "jump off the bandwagon", BlockExpr{Exprs: []Expr{
		BreakExpr{},
	}})
}

func TestDefine(t *testing.T) {
	src := "I would love to own a plot of land in the 1800s called £x and lease it to £y owners"
	assertAST(t, src, BlockExpr{Exprs: []Expr{
		DefineExpr{Var: "x", Val: VariableExpr{Name: "y"}},
	}})
}

func TestUserDefinedBinaryOperatorPrecedence(t *testing.T) {
	// Declaring "<>" at precedence 5 (above "*") means x * y <> z parses
	// as x * (y <> z).
	src := "I would love to own a plot of land in the 1800s called <> and lease it to {noop, 5, binary} owners\n" +
		"£x * £y <> £z"
	assertAST(t, src, BlockExpr{Exprs: []Expr{
		BinaryExpr{
			Left: VariableExpr{Name: "x"},
			Op:   "*",
			Right: BinaryExpr{
				Left:  VariableExpr{Name: "y"},
				Op:    "<>",
				Right: VariableExpr{Name: "z"},
			},
		},
	}})
}

func TestIndentDedentAtTopLevelIsFatal(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.Indent},
		{Type: lexer.EOF},
	}
	p := New(tokens, map[string]int{}, nil)
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error for top-level Indent")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}

func TestUnexpectedTokenSuggestsKeyword(t *testing.T) {
	// "andlease it to" is a mistyped "and lease it to" (Assign) sitting
	// where the Define production requires an Assign token: "andlease"
	// degrades to a generic String lexeme rather than the keyword the
	// author meant.
	src := "I would love to own a plot of land in the 1800s called £x andlease it to"
	tokens := lexer.New(src).Tokenize()
	fp := firstpass.Run(tokens)
	p := New(fp.Tokens, fp.Precedence, fp.Defs)
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Suggestion == "" {
		t.Error("expected a keyword suggestion for a mistyped keyword")
	}
}
