package fontdata

// Direction 是可伸缩字符的伸展方向。
type Direction int

const (
	DirNone Direction = iota
	DirVertical
	DirHorizontal
)

func (d Direction) String() string {
	switch d {
	case DirVertical:
		return "vertical"
	case DirHorizontal:
		return "horizontal"
	}
	return "none"
}

// GlyphRef 引用某个变体中的字符；Metrics 在 Seal 时填充。
type GlyphRef struct {
	Variant string
	Char    rune
	Metrics CharMetrics
}

// G builds a GlyphRef.
func G(variant string, ch rune) GlyphRef { return GlyphRef{Variant: variant, Char: ch} }

// P builds a pointer GlyphRef for optional assembly pieces.
func P(variant string, ch rune) *GlyphRef {
	g := G(variant, ch)
	return &g
}

// Size 返回字形沿伸展方向的自然尺寸。
func (g GlyphRef) Size(dir Direction) float64 {
	if dir == DirHorizontal {
		return g.Metrics.W
	}
	return g.Metrics.H + g.Metrics.D
}

// Assembly 描述多段拼装：Begin 为上/左端，End 为下/右端，Mid 为居中部件，
// Ext 为可重复或拉伸的中间段（必需）。
type Assembly struct {
	Begin *GlyphRef
	Ext   GlyphRef
	End   *GlyphRef
	Mid   *GlyphRef
}

// MinSize 返回不可伸缩部件尺寸之和，即拼装的最小尺寸。
func (a *Assembly) MinSize(dir Direction) float64 {
	size := 0.0
	for _, p := range []*GlyphRef{a.Begin, a.End, a.Mid} {
		if p != nil {
			size += p.Size(dir)
		}
	}
	return size
}

// StretchRecipe 是字符的伸展配方：按尺寸递增的固定变体，以及可选的拼装方式。
type StretchRecipe struct {
	Char     rune
	Dir      Direction
	Variants []GlyphRef
	Assembly *Assembly
}
