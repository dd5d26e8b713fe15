// Package dsl parses the small input syntax used by the CLI and tests to
// build notation trees:
//
//	math display=block {
//	  mfrac { mn "1" mn "2" }
//	  mo "+"
//	  msup { mi "x" mn "2" }
//	}
//
// Each expression is `kind attr=value ... ("text" | { children })`; a file
// may hold any number of top-level expressions.
package dsl

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/multierr"

	"github.com/ByLCY/mathbox/notation"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:em|ex|mu|pt|px|mm|cm|in|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[=;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// File is the root AST node: a sequence of top-level expressions.
type File struct {
	Exprs []*Expr `parser:"( @@ ';'? )*"`
}

// Expr is one notation node.
type Expr struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Kind     string         `parser:"@Ident"`
	Attrs    []*Attr        `parser:"@@*"`
	Text     *StringLiteral `parser:"( @String"`
	Children []*Expr        `parser:"| '{' ( @@ (';' | ',')? )* '}' )?"`
}

// Attr is `key=value`.
type Attr struct {
	Key   string `parser:"@Ident '='"`
	Value *Value `parser:"@@"`
}

// Value is an attribute value; bare words, numbers with units and colors
// are accepted without quotes.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Word   *string        `parser:"| @Ident"`
}

// Raw returns the value as the attribute string stored on the node.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Word != nil:
		return *v.Word
	}
	return ""
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// CompileError 指出无法转换为记号节点的表达式。
type CompileError struct {
	Pos lexer.Position
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("dsl: %s: %s", e.Pos, e.Msg)
}

// Compile converts every top-level expression into a notation tree. Kinds
// unknown to the notation package are kept so that layout can report them
// as structural errors; token/container misuse is reported here.
func Compile(f *File) ([]*notation.Node, error) {
	if f == nil {
		return nil, nil
	}
	var errs error
	out := make([]*notation.Node, 0, len(f.Exprs))
	for _, e := range f.Exprs {
		n, err := compile(e)
		errs = multierr.Append(errs, err)
		if n != nil {
			out = append(out, n)
		}
	}
	return out, errs
}

// CompileString parses and compiles in one step.
func CompileString(input string) ([]*notation.Node, error) {
	f, err := ParseString(input)
	if err != nil {
		return nil, err
	}
	return Compile(f)
}

func compile(e *Expr) (*notation.Node, error) {
	kind := notation.Kind(e.Kind)
	attrs := make(map[string]string, len(e.Attrs))
	var errs error
	for _, a := range e.Attrs {
		if _, dup := attrs[a.Key]; dup {
			errs = multierr.Append(errs, &CompileError{Pos: e.Pos, Msg: fmt.Sprintf("%s: duplicate attribute %q", e.Kind, a.Key)})
		}
		attrs[a.Key] = a.Value.Raw()
	}

	token := notation.IsTokenKind(kind)
	if e.Text != nil {
		if !token {
			errs = multierr.Append(errs, &CompileError{Pos: e.Pos, Msg: fmt.Sprintf("%s does not take text", e.Kind)})
			return nil, errs
		}
		return notation.Token(kind, string(*e.Text), attrs), errs
	}
	if token {
		if len(e.Children) > 0 {
			errs = multierr.Append(errs, &CompileError{Pos: e.Pos, Msg: fmt.Sprintf("%s takes text, not children", e.Kind)})
			return nil, errs
		}
		return notation.Token(kind, "", attrs), errs
	}

	children := make([]*notation.Node, 0, len(e.Children))
	for _, c := range e.Children {
		n, err := compile(c)
		errs = multierr.Append(errs, err)
		if n != nil {
			children = append(children, n)
		}
	}
	return notation.New(kind, attrs, children...), errs
}

// Format 把记号树写回 DSL 文本，属性按名称排序，便于测试与调试输出。
func Format(n *notation.Node) string {
	var sb strings.Builder
	format(&sb, n, 0)
	return sb.String()
}

func format(sb *strings.Builder, n *notation.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(string(n.Kind))
	for _, k := range sortedKeys(n.Attrs) {
		fmt.Fprintf(sb, " %s=%s", k, strconv.Quote(n.Attrs[k]))
	}
	if notation.IsTokenKind(n.Kind) {
		fmt.Fprintf(sb, " %s\n", strconv.Quote(n.Text))
		return
	}
	if len(n.Children) == 0 {
		sb.WriteString("\n")
		return
	}
	sb.WriteString(" {\n")
	for _, c := range n.Children {
		format(sb, c, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
