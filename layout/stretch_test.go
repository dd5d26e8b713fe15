package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/mathbox/fontdata"
)

// pieceStore 构造一个只含括号拼装件的度量表：上下端各 0.4em，延长段 0.3em。
func pieceStore(t *testing.T) *fontdata.Store {
	t.Helper()
	s := fontdata.NewStore(fontdata.TeXParams())
	s.AddVariant(fontdata.Normal, map[rune]fontdata.CharMetrics{
		'(': fontdata.C(0.75, 0.25, 0.389),
		'⎛': fontdata.C(0.4, 0, 0.875),
		'⎜': fontdata.C(0.3, 0, 0.875),
		'⎝': fontdata.C(0.4, 0, 0.875),
		'[': fontdata.C(0.75, 0.25, 0.278),
		'|': fontdata.C(0.75, 0.25, 0.278),
		'{': fontdata.C(0.75, 0.25, 0.5),
		'⎧': fontdata.C(0.3, 0, 0.889),
		'⎪': fontdata.C(0.2, 0, 0.889),
		'⎨': fontdata.C(0.5, 0, 0.889),
		'⎩': fontdata.C(0.3, 0, 0.889),
	})
	s.AddVariant("big", map[rune]fontdata.CharMetrics{
		'[': fontdata.C(1.2, 0.6, 0.417),
		'|': fontdata.C(1, 1, 0.333),
	})
	s.AddVariant("bigger", map[rune]fontdata.CharMetrics{
		'[': fontdata.C(1.6, 0.8, 0.472),
		'|': fontdata.C(1.5, 1.5, 0.333),
	})
	require.NoError(t, s.AddRecipe(fontdata.StretchRecipe{
		Char:     '(',
		Dir:      fontdata.DirVertical,
		Variants: []fontdata.GlyphRef{fontdata.G(fontdata.Normal, '(')},
		Assembly: &fontdata.Assembly{
			Begin: fontdata.P(fontdata.Normal, '⎛'),
			Ext:   fontdata.G(fontdata.Normal, '⎜'),
			End:   fontdata.P(fontdata.Normal, '⎝'),
		},
	}))
	require.NoError(t, s.AddRecipe(fontdata.StretchRecipe{
		Char: '[',
		Dir:  fontdata.DirVertical,
		Variants: []fontdata.GlyphRef{
			fontdata.G("bigger", '['), fontdata.G(fontdata.Normal, '['), fontdata.G("big", '['),
		},
	}))
	// '|' 同时有 1em、2em、3em 三个固定变体和拼装方式
	require.NoError(t, s.AddRecipe(fontdata.StretchRecipe{
		Char: '|',
		Dir:  fontdata.DirVertical,
		Variants: []fontdata.GlyphRef{
			fontdata.G(fontdata.Normal, '|'), fontdata.G("big", '|'), fontdata.G("bigger", '|'),
		},
		Assembly: &fontdata.Assembly{
			Begin: fontdata.P(fontdata.Normal, '⎛'),
			Ext:   fontdata.G(fontdata.Normal, '⎜'),
			End:   fontdata.P(fontdata.Normal, '⎝'),
		},
	}))
	require.NoError(t, s.AddRecipe(fontdata.StretchRecipe{
		Char: '{',
		Dir:  fontdata.DirVertical,
		Assembly: &fontdata.Assembly{
			Begin: fontdata.P(fontdata.Normal, '⎧'),
			Ext:   fontdata.G(fontdata.Normal, '⎪'),
			Mid:   fontdata.P(fontdata.Normal, '⎨'),
			End:   fontdata.P(fontdata.Normal, '⎩'),
		},
	}))
	require.NoError(t, s.Seal())
	return s
}

func sumPieces(st Stretched) float64 {
	total := 0.0
	for _, p := range st.Pieces {
		total += p.Size
	}
	return total
}

func TestAssembledParenMatchesTargetExactly(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	st := a.Stretch('(', fontdata.Normal, Target{H: 1.5, D: 1.5}, true)

	require.True(t, st.Assembled())
	assert.InDelta(t, 3.0, st.Box.H+st.Box.D, eps)
	assert.InDelta(t, 3.0, sumPieces(st), eps)
	assert.InDelta(t, 3.0, st.Size, eps)
	// 2.2em 的延长量需要 8 个 0.3em 的延长段，每段缩放到 0.275em
	assert.Equal(t, 8, st.Repeat)
	assert.InDelta(t, 2.2/2.4, st.Scale, eps)
	assert.Equal(t, '⎛', st.Pieces[0].Glyph.Char)
	assert.Equal(t, '⎝', st.Pieces[len(st.Pieces)-1].Glyph.Char)

	// 非精确模式下固定变体过小，同样拼装
	loose := a.Stretch('(', fontdata.Normal, Target{H: 1.5, D: 1.5}, false)
	assert.True(t, loose.Assembled())
	assert.InDelta(t, 3.0, loose.Box.H+loose.Box.D, eps)
}

func TestAssemblyHasMinimumSize(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	st := a.Stretch('(', fontdata.Normal, Target{H: 0.3, D: 0.2}, true)

	assert.InDelta(t, 0.8, st.Size, eps, "不低于端部件之和")
	assert.InDelta(t, 0.8, st.Box.H+st.Box.D, eps)
	assert.Zero(t, st.Repeat)
}

func TestAssemblyWithMiddlePiece(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	st := a.Stretch('{', fontdata.Normal, Target{H: 2, D: 1}, false)

	require.True(t, st.Assembled())
	assert.InDelta(t, 3.0, sumPieces(st), eps)
	var mid Piece
	for _, p := range st.Pieces {
		if p.Glyph.Char == '⎨' {
			mid = p
		}
	}
	// 延长量在中间部件两侧平分，中间部件居中
	assert.InDelta(t, 1.25, mid.Offset, eps)
}

func TestVariantSelection(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	sizes := []float64{1.0, 1.8, 2.4}

	st := a.Stretch('[', fontdata.Normal, Target{H: 0.3, D: 0.1}, false)
	assert.InDelta(t, sizes[0], st.Box.H+st.Box.D, eps, "目标小于最小变体时取最小变体")

	st = a.Stretch('[', fontdata.Normal, Target{H: 0.9, D: 0.4}, false)
	got := st.Box.H + st.Box.D
	assert.True(t, math.Abs(got-sizes[0]) < eps || math.Abs(got-sizes[1]) < eps, "结果只能是固定变体之一: %g", got)
	assert.Equal(t, "big", st.Variant.Variant)

	st = a.Stretch('[', fontdata.Normal, Target{H: 4, D: 4}, false)
	assert.InDelta(t, sizes[2], st.Box.H+st.Box.D, eps, "没有拼装方式时退回最大变体")
	assert.False(t, st.Assembled())
}

func TestVariantSelectionWithAssembly(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)

	// 1.2em 落在 1em 与 2em 之间，2em 超出增长上限：取更接近的 1em，不拼装
	st := a.Stretch('|', fontdata.Normal, Target{H: 0.7, D: 0.5}, false)
	require.False(t, st.Assembled())
	assert.InDelta(t, 1.0, st.Size, eps)
	assert.Equal(t, fontdata.Normal, st.Variant.Variant)

	st = a.Stretch('|', fontdata.Normal, Target{H: 1, D: 0.9}, false)
	require.False(t, st.Assembled())
	assert.InDelta(t, 2.0, st.Size, eps)

	// 超出最大变体时才拼装
	st = a.Stretch('|', fontdata.Normal, Target{H: 2, D: 2}, false)
	require.True(t, st.Assembled())
	assert.InDelta(t, 4.0, st.Size, eps)

	// exact 总是拼装到目标尺寸
	st = a.Stretch('|', fontdata.Normal, Target{H: 0.7, D: 0.5}, true)
	require.True(t, st.Assembled())
	assert.InDelta(t, 1.2, st.Size, eps)
}

func TestStretchWithoutRecipeKeepsBaseBox(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	st := a.Stretch('(', "nope", Target{W: 3}, false)
	assert.NotNil(t, st.Variant)

	plain := a.Stretch('x', fontdata.Normal, Target{H: 5}, false)
	assert.Equal(t, fontdata.DirNone, plain.Dir)
	assert.Equal(t, BBox{}, plain.Box, "没有度量的字符盒子为零")
	assert.False(t, a.CanStretch('x', fontdata.DirVertical))
	assert.True(t, a.CanStretch('(', fontdata.DirVertical))
	assert.False(t, a.CanStretch('(', fontdata.DirHorizontal))
}

func TestStretchIsCached(t *testing.T) {
	a := NewAssembler(pieceStore(t), 0, 0)
	first := a.Stretch('(', fontdata.Normal, Target{H: 2, D: 2}, true)
	second := a.Stretch('(', fontdata.Normal, Target{H: 2, D: 2}, true)
	assert.Equal(t, first, second)
	assert.Len(t, a.cache, 1)
}
