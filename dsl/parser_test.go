package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/mathbox/dsl"
	"github.com/ByLCY/mathbox/notation"
)

const sampleDSL = `
// 二次公式
math display=block {
  mi "x"
  mo "="
  mfrac linethickness=medium {
    mrow {
      mo "-" mi "b"
      mo "±"
      msqrt { msup { mi "b" mn "2" } mo "-" mn "4" mi "a" mi "c" }
    }
    mrow { mn "2" mi "a" }
  }
}

/* 第二个表达式 */
math {
  mspace width=50%
  mstyle mathcolor=#0F62FE mathbackground="light blue" { mtext "Hello, ${user.name}!" }
}
`

func TestParseFile(t *testing.T) {
	f, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Exprs) != 2 {
		t.Fatalf("expected 2 top-level expressions, got %d", len(f.Exprs))
	}

	first := f.Exprs[0]
	if first.Kind != "math" {
		t.Fatalf("expected math root, got %s", first.Kind)
	}
	if len(first.Attrs) != 1 || first.Attrs[0].Key != "display" || first.Attrs[0].Value.Raw() != "block" {
		t.Fatalf("unexpected root attributes: %+v", first.Attrs)
	}
	if len(first.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(first.Children))
	}
	if first.Pos.Line != 3 {
		t.Fatalf("expected root on line 3, got %d", first.Pos.Line)
	}

	frac := first.Children[2]
	if frac.Kind != "mfrac" || len(frac.Children) != 2 {
		t.Fatalf("unexpected fraction: %s with %d children", frac.Kind, len(frac.Children))
	}

	second := f.Exprs[1]
	space := second.Children[0]
	if space.Text != nil || len(space.Children) != 0 {
		t.Fatalf("mspace should carry neither text nor children")
	}
	if got := space.Attrs[0].Value.Raw(); got != "50%" {
		t.Fatalf("expected width 50%%, got %q", got)
	}
	style := second.Children[1]
	if got := style.Attrs[0].Value.Raw(); got != "#0F62FE" {
		t.Fatalf("expected color literal, got %q", got)
	}
	if got := style.Attrs[1].Value.Raw(); got != "light blue" {
		t.Fatalf("expected quoted value, got %q", got)
	}
	if got := string(*style.Children[0].Text); got != "Hello, ${user.name}!" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestCompileBuildsNotationTree(t *testing.T) {
	roots, err := dsl.CompileString(sampleDSL)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	root := roots[0]
	if root.Kind != notation.KindMath || root.Attrs["display"] != "block" {
		t.Fatalf("unexpected root %s %v", root.Kind, root.Attrs)
	}
	frac := root.Children[2]
	if frac.Kind != notation.KindFrac || frac.Attrs["linethickness"] != "medium" {
		t.Fatalf("unexpected fraction %s %v", frac.Kind, frac.Attrs)
	}
	num := frac.Children[0]
	if got := num.Children[0].Text; got != "-" {
		t.Fatalf("expected leading minus, got %q", got)
	}
	if !num.Children[0].IsToken() {
		t.Fatalf("mo should compile to a token node")
	}
}

func TestCompileKeepsUnknownKinds(t *testing.T) {
	roots, err := dsl.CompileString(`math { mfoo { mi "x" } }`)
	if err != nil {
		t.Fatalf("unknown kinds are left to layout: %v", err)
	}
	if got := roots[0].Children[0].Kind; got != "mfoo" {
		t.Fatalf("expected mfoo, got %s", got)
	}
}

func TestCompileRejectsMisuse(t *testing.T) {
	cases := map[string]string{
		`math { mi { mn "1" } }`:  "takes text",
		`math { mrow "x" }`:       "does not take text",
		`math { mi a=1 a=2 "x" }`: "duplicate attribute",
	}
	for input, want := range cases {
		_, err := dsl.CompileString(input)
		if err == nil {
			t.Fatalf("%s: expected error", input)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: expected %q in %v", input, want, err)
		}
	}
}

func TestParseRejectsUnterminatedBlock(t *testing.T) {
	_, err := dsl.ParseString("math {\n  mi \"x\"\n")
	if err == nil {
		t.Fatalf("expected unterminated block to fail")
	}
	if !strings.Contains(err.Error(), "unexpected") {
		t.Fatalf("expected unexpected-token error, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	roots, err := dsl.CompileString(sampleDSL)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	text := dsl.Format(roots[0])
	again, err := dsl.CompileString(text)
	if err != nil {
		t.Fatalf("formatted text should parse: %v\n%s", err, text)
	}
	if dsl.Format(again[0]) != text {
		t.Fatalf("format is not stable:\n%s\n---\n%s", text, dsl.Format(again[0]))
	}
}
