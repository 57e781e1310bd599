package parser

import (
	"testing"

	"github.com/vitras21/VitaLang/firstpass"
	"github.com/vitras21/VitaLang/lexer"
)

// Fuzz tests for the front end's determinism and panic-freedom. The
// parser's only permitted "failure" mode for malformed input is a
// returned *ParseError from Parse — never a panic that escapes it.

func addFuzzSeeds(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("£x"))
	f.Add([]byte("sweet £x { £a } stout { £b }"))
	f.Add([]byte("lolsiesss £i { £i }"))
	f.Add([]byte("£cond yarp' { £a }"))
	f.Add([]byte("greet(£x, £y)"))
	f.Add([]byte("a, b, c"))
	f.Add([]byte("I would love to own a plot of land in the 1800s called ^^ and lease it to owners"))
	f.Add([]byte("sir, would there happen to be any extension work? £a yay, homework! £b"))
	f.Add([]byte("europe -> a comment\n£x"))
	f.Add([]byte("asia -> block <- asia£x"))
	f.Add([]byte("\n  £a\n    £b\n£c"))
}

func FuzzParseNoPanic(f *testing.F) {
	addFuzzSeeds(f)
	f.Fuzz(func(t *testing.T, src []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on input %q: %v", src, r)
			}
		}()

		tokens := lexer.New(string(src)).Tokenize()
		fp := firstpass.Run(tokens)
		p := New(fp.Tokens, fp.Precedence, fp.Defs)
		_, _ = p.Parse()
	})
}

func FuzzParseDeterminism(f *testing.F) {
	addFuzzSeeds(f)
	f.Fuzz(func(t *testing.T, src []byte) {
		run := func() (string, bool) {
			tokens := lexer.New(string(src)).Tokenize()
			fp := firstpass.Run(tokens)
			p := New(fp.Tokens, fp.Precedence, fp.Defs)
			ast, err := p.Parse()
			if err != nil {
				return err.Error(), false
			}
			return Dump(ast), true
		}

		a, okA := run()
		b, okB := run()
		if a != b || okA != okB {
			t.Fatalf("non-deterministic parse for %q: (%q,%v) vs (%q,%v)", src, a, okA, b, okB)
		}
	})
}
