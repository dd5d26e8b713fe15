// Package tex provides the static TeX (Computer Modern) metric tables used as
// the default font of the layout engine.
package tex

import (
	"sync"

	fd "github.com/ByLCY/mathbox/fontdata"
)

// 变体名称，与 mathvariant 属性值一致；size1..size4 为放大字形。
const (
	Normal              = fd.Normal
	Italic              = "italic"
	Bold                = "bold"
	BoldItalic          = "bold-italic"
	DoubleStruck        = "double-struck"
	Script              = "script"
	Fraktur             = "fraktur"
	SansSerif           = "sans-serif"
	SansSerifItalic     = "sans-serif-italic"
	SansSerifBold       = "bold-sans-serif"
	SansSerifBoldItalic = "sans-serif-bold-italic"
	Monospace           = "monospace"
	Size1               = "size1"
	Size2               = "size2"
	Size3               = "size3"
	Size4               = "size4"
)

// boldWidth 是粗体相对直立体的宽度系数。
const boldWidth = 1.1

var (
	once   sync.Once
	shared *fd.Store
	errLd  error
)

// Store 返回进程内共享的只读 TeX 度量表，只在第一次调用时构建。
func Store() (*fd.Store, error) {
	once.Do(func() {
		shared, errLd = New()
	})
	return shared, errLd
}

// MustStore is Store for callers that treat a broken built-in table as fatal.
func MustStore() *fd.Store {
	s, err := Store()
	if err != nil {
		panic(err)
	}
	return s
}

// New builds a fresh, sealed store.
func New() (*fd.Store, error) {
	s := fd.NewStore(fd.TeXParams())

	normal := merge(normalChars, uprightLatin)
	s.AddVariant(Normal, normal)
	s.AddVariant(Italic, italicChars, Normal)
	s.AddVariant(Bold, emboldened(merge(uprightLatin, digits(normal))), Normal)
	s.AddVariant(BoldItalic, emboldened(italicChars), Bold, Italic)
	s.AddVariant(DoubleStruck, nil, Bold)
	s.AddVariant(Script, nil, Italic)
	s.AddVariant(Fraktur, nil, Normal)
	s.AddVariant(SansSerif, nil, Normal)
	s.AddVariant(SansSerifItalic, nil, SansSerif, Italic)
	s.AddVariant(SansSerifBold, nil, SansSerif, Bold)
	s.AddVariant(SansSerifBoldItalic, nil, SansSerifBold, BoldItalic)
	s.AddVariant(Monospace, nil, Normal)
	s.AddVariant(Size1, size1Chars, Normal)
	s.AddVariant(Size2, size2Chars, Normal)
	s.AddVariant(Size3, size3Chars, Normal)
	s.AddVariant(Size4, size4Chars, Normal)

	for _, r := range recipes() {
		if err := s.AddRecipe(r); err != nil {
			return nil, err
		}
	}
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}

func merge(tables ...map[rune]fd.CharMetrics) map[rune]fd.CharMetrics {
	out := map[rune]fd.CharMetrics{}
	for _, t := range tables {
		for r, m := range t {
			out[r] = m
		}
	}
	return out
}

func digits(t map[rune]fd.CharMetrics) map[rune]fd.CharMetrics {
	out := map[rune]fd.CharMetrics{}
	for r := '0'; r <= '9'; r++ {
		out[r] = t[r]
	}
	return out
}

// emboldened 由直立或斜体度量推出粗体度量。
func emboldened(t map[rune]fd.CharMetrics) map[rune]fd.CharMetrics {
	out := make(map[rune]fd.CharMetrics, len(t))
	for r, m := range t {
		m.W *= boldWidth
		m.Skew *= boldWidth
		out[r] = m
	}
	return out
}

func sized(ch rune, names ...string) []fd.GlyphRef {
	refs := make([]fd.GlyphRef, 0, len(names))
	for _, n := range names {
		refs = append(refs, fd.G(n, ch))
	}
	return refs
}

var allSizes = []string{Normal, Size1, Size2, Size3, Size4}

func vertical(ch rune, a *fd.Assembly) fd.StretchRecipe {
	return fd.StretchRecipe{Char: ch, Dir: fd.DirVertical, Variants: sized(ch, allSizes...), Assembly: a}
}

func horizontal(ch rune, variants []fd.GlyphRef, a *fd.Assembly) fd.StretchRecipe {
	return fd.StretchRecipe{Char: ch, Dir: fd.DirHorizontal, Variants: variants, Assembly: a}
}

func piece(ch rune) *fd.GlyphRef { return fd.P(Size4, ch) }

func ext(variant string, ch rune) fd.GlyphRef { return fd.G(variant, ch) }

func recipes() []fd.StretchRecipe {
	bar := &fd.Assembly{Ext: ext(Size1, '∣')}
	dbar := &fd.Assembly{Ext: ext(Size1, '∥')}
	minus := '−'
	return []fd.StretchRecipe{
		vertical('(', &fd.Assembly{Begin: piece('⎛'), Ext: ext(Size4, '⎜'), End: piece('⎝')}),
		vertical(')', &fd.Assembly{Begin: piece('⎞'), Ext: ext(Size4, '⎟'), End: piece('⎠')}),
		vertical('[', &fd.Assembly{Begin: piece('⎡'), Ext: ext(Size4, '⎢'), End: piece('⎣')}),
		vertical(']', &fd.Assembly{Begin: piece('⎤'), Ext: ext(Size4, '⎥'), End: piece('⎦')}),
		vertical('{', &fd.Assembly{Begin: piece('⎧'), Ext: ext(Size4, '⎪'), End: piece('⎩'), Mid: piece('⎨')}),
		vertical('}', &fd.Assembly{Begin: piece('⎫'), Ext: ext(Size4, '⎪'), End: piece('⎭'), Mid: piece('⎬')}),
		vertical('⌈', &fd.Assembly{Begin: piece('⎡'), Ext: ext(Size4, '⎢')}),
		vertical('⌉', &fd.Assembly{Begin: piece('⎤'), Ext: ext(Size4, '⎥')}),
		vertical('⌊', &fd.Assembly{Ext: ext(Size4, '⎢'), End: piece('⎣')}),
		vertical('⌋', &fd.Assembly{Ext: ext(Size4, '⎥'), End: piece('⎦')}),
		vertical('√', &fd.Assembly{Begin: fd.P(Size1, '┌'), Ext: ext(Size1, '⏐'), End: fd.P(Size1, '⎷')}),
		vertical('⟨', nil),
		vertical('⟩', nil),
		vertical('/', nil),
		vertical('\\', nil),
		{Char: '|', Dir: fd.DirVertical, Variants: sized('|', Normal), Assembly: bar},
		{Char: '∣', Dir: fd.DirVertical, Variants: sized('∣', Normal), Assembly: bar},
		{Char: '‖', Dir: fd.DirVertical, Variants: sized('‖', Normal), Assembly: dbar},
		{Char: '∥', Dir: fd.DirVertical, Variants: sized('∥', Normal), Assembly: dbar},

		// 大型运算符只有固定尺寸：正文用 size1，陈列式用 size2。
		{Char: '∑', Dir: fd.DirVertical, Variants: sized('∑', Size1, Size2)},
		{Char: '∏', Dir: fd.DirVertical, Variants: sized('∏', Size1, Size2)},
		{Char: '∐', Dir: fd.DirVertical, Variants: sized('∐', Size1, Size2)},
		{Char: '∫', Dir: fd.DirVertical, Variants: sized('∫', Size1, Size2)},
		{Char: '∬', Dir: fd.DirVertical, Variants: sized('∬', Size1, Size2)},
		{Char: '∮', Dir: fd.DirVertical, Variants: sized('∮', Size1, Size2)},
		{Char: '⋀', Dir: fd.DirVertical, Variants: sized('⋀', Size1, Size2)},
		{Char: '⋁', Dir: fd.DirVertical, Variants: sized('⋁', Size1, Size2)},
		{Char: '⋂', Dir: fd.DirVertical, Variants: sized('⋂', Size1, Size2)},
		{Char: '⋃', Dir: fd.DirVertical, Variants: sized('⋃', Size1, Size2)},
		{Char: '⨁', Dir: fd.DirVertical, Variants: sized('⨁', Size1, Size2)},
		{Char: '⨂', Dir: fd.DirVertical, Variants: sized('⨂', Size1, Size2)},

		horizontal('→', sized('→', Normal), &fd.Assembly{Begin: fd.P(Normal, minus), Ext: ext(Normal, minus), End: fd.P(Normal, '→')}),
		horizontal('←', sized('←', Normal), &fd.Assembly{Begin: fd.P(Normal, '←'), Ext: ext(Normal, minus), End: fd.P(Normal, minus)}),
		horizontal('↔', sized('↔', Normal), &fd.Assembly{Begin: fd.P(Normal, '←'), Ext: ext(Normal, minus), End: fd.P(Normal, '→')}),
		horizontal('⇒', sized('⇒', Normal), &fd.Assembly{Begin: fd.P(Normal, '='), Ext: ext(Normal, '='), End: fd.P(Normal, '⇒')}),
		horizontal('⇐', sized('⇐', Normal), &fd.Assembly{Begin: fd.P(Normal, '⇐'), Ext: ext(Normal, '='), End: fd.P(Normal, '=')}),
		horizontal(minus, sized(minus, Normal), &fd.Assembly{Ext: ext(Normal, minus)}),
		horizontal('=', sized('=', Normal), &fd.Assembly{Ext: ext(Normal, '=')}),
		horizontal('‾', sized('‾', Normal), &fd.Assembly{Ext: ext(Normal, '‾')}),
		horizontal('¯', sized('¯', Normal), &fd.Assembly{Ext: ext(Normal, '¯')}),
		horizontal('_', sized('_', Normal), &fd.Assembly{Ext: ext(Normal, '_')}),
		horizontal('─', sized('─', Normal), &fd.Assembly{Ext: ext(Normal, '─')}),
		horizontal('⏞', sized('⏞', Normal), &fd.Assembly{Begin: fd.P(Normal, '╭'), Ext: ext(Normal, '─'), End: fd.P(Normal, '╮'), Mid: fd.P(Normal, '┴')}),
		horizontal('⏟', sized('⏟', Normal), &fd.Assembly{Begin: fd.P(Normal, '╰'), Ext: ext(Normal, '─'), End: fd.P(Normal, '╯'), Mid: fd.P(Normal, '┬')}),
		horizontal('ˆ', sized('ˆ', Normal, Size1, Size2, Size3, Size4), nil),
		horizontal('^', sized('ˆ', Normal, Size1, Size2, Size3, Size4), nil),
		horizontal('˜', sized('˜', Normal, Size1, Size2, Size3, Size4), nil),
		horizontal('~', sized('˜', Normal, Size1, Size2, Size3, Size4), nil),
	}
}
