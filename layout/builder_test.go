package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/notation"
)

const eps = 1e-9

func mi(s string) *notation.Node { return notation.Token(notation.KindIdent, s, nil) }
func mn(s string) *notation.Node { return notation.Token(notation.KindNumber, s, nil) }
func mo(s string) *notation.Node { return notation.Token(notation.KindOperator, s, nil) }

func node(kind notation.Kind, attrs map[string]string, children ...*notation.Node) *notation.Node {
	return notation.New(kind, attrs, children...)
}

func mathRoot(children ...*notation.Node) *notation.Node {
	return notation.New(notation.KindMath, nil, children...)
}

func space(width string) *notation.Node {
	return node(notation.KindSpace, map[string]string{"width": width})
}

func build(t *testing.T, root *notation.Node, opts Options) *Result {
	t.Helper()
	res, err := Build(root, opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// find 返回与记号节点对应的包装节点。
func find(w *Wrapper, n *notation.Node) *Wrapper {
	if w.Node == n {
		return w
	}
	for _, c := range w.Children {
		if f := find(c, n); f != nil {
			return f
		}
	}
	return nil
}

func TestBoundingBoxIsIdempotent(t *testing.T) {
	root := mathRoot(
		mi("f"), mo("("), mi("x"), mo(")"), mo("="),
		node(notation.KindFrac, nil, mn("1"), node(notation.KindSqrt, nil, mi("x"), mo("+"), mn("1"))),
		node(notation.KindSubSup, nil, mo("∑"), mi("i"), mi("n")),
		node(notation.KindTable, nil,
			node(notation.KindTableRow, nil, node(notation.KindCell, nil, mi("a")), node(notation.KindCell, nil, mi("b"))),
		),
	)
	res := build(t, root, Options{})
	first := Summarize(res)
	res.Root.BBox()
	second := Summarize(res)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("两次计算的盒子不一致 (-first +second):\n%s", diff)
	}

	// 重新构建得到逐位相同的结果
	again := build(t, root, Options{})
	assert.Equal(t, res.Box(), again.Box())
}

func TestFractionOfDigitsAtScriptLevelOne(t *testing.T) {
	one, two := mn("1"), mn("2")
	frac := node(notation.KindFrac, nil, one, two)
	res := build(t, mathRoot(frac), Options{})
	fw := find(res.Root, frac)
	require.NotNil(t, fw)

	assert.Equal(t, 1, one.ScriptLevel())
	assert.Equal(t, 1, two.ScriptLevel())
	num := find(res.Root, one)
	assert.InDelta(t, 0.71, num.Scale, eps)
	assert.InDelta(t, 0.71, num.RScale, eps)

	p := fontdata.TeXParams()
	s := 0.71
	b := fw.BBox()
	assert.InDelta(t, 0.5*s, b.W, eps, "宽度是分子分母宽度的最大值")
	assert.InDelta(t, p.NullDelimiterSpace, b.L, eps)
	assert.InDelta(t, p.NullDelimiterSpace, b.R, eps)

	// 15d：u = a + T + max(num.D, num2 - a - T)，v = T - a + max(den.H, denom2 + a - T)
	T := 1.5 * p.RuleThickness
	a := p.AxisHeight
	u := a + T + max(0, p.Num2-a-T)
	v := T - a + max(0.666*s, p.Denom2+a-T)
	assert.InDelta(t, u+0.666*s, b.H, eps)
	assert.InDelta(t, v, b.D, eps)
	assert.InDelta(t, u, fw.Offset(0).Y, eps)
	assert.InDelta(t, -v, fw.Offset(1).Y, eps)
}

func TestDisplayFractionRaisesScriptLevel(t *testing.T) {
	one, two := mn("1"), mn("2")
	frac := node(notation.KindFrac, nil, one, two)
	res := build(t, mathRoot(frac), Options{Display: true})

	assert.True(t, frac.DisplayStyle())
	assert.Equal(t, 1, one.ScriptLevel())
	assert.Equal(t, 1, two.ScriptLevel())
	assert.False(t, one.DisplayStyle())
	assert.InDelta(t, 0.71, find(res.Root, one).Scale, eps)
	assert.InDelta(t, 0.71, find(res.Root, two).Scale, eps)
}

func TestCrampedSuperscriptUsesSup3(t *testing.T) {
	numSup := node(notation.KindSup, nil, mi("x"), mn("2"))
	denSup := node(notation.KindSup, nil, mi("x"), mn("2"))
	frac := node(notation.KindFrac, nil, numSup, denSup)
	res := build(t, mathRoot(frac), Options{})
	p := fontdata.TeXParams()

	assert.False(t, numSup.Cramped())
	assert.True(t, denSup.Cramped())
	assert.InDelta(t, p.Sup2, find(res.Root, numSup).Offset(1).Y, eps)
	assert.InDelta(t, p.Sup3, find(res.Root, denSup).Offset(1).Y, eps, "分母中的上标使用紧缩位移")
}

func TestFractionWidthIsMaximum(t *testing.T) {
	num := mi("x")
	den := node(notation.KindRow, nil, mn("1"), mo("+"), mi("y"), mo("+"), mn("2"))
	frac := node(notation.KindFrac, nil, num, den)
	res := build(t, mathRoot(frac), Options{Display: true})
	fw := find(res.Root, frac)

	nb := fw.child(0)
	db := fw.child(1)
	require.Greater(t, db.Advance(), nb.Advance())
	assert.InDelta(t, db.Advance(), fw.BBox().W, eps)
	assert.NotEqual(t, fw.BBox().W, (nb.Advance()+db.Advance())/2)

	// 分子居中
	assert.InDelta(t, (db.Advance()-nb.Advance())/2+nb.L, fw.Offset(0).X, eps)
}

func TestFractionLineThickness(t *testing.T) {
	p := fontdata.TeXParams()
	cases := map[string]float64{
		"thin":  p.RuleThickness / 2,
		"thick": 2 * p.RuleThickness,
		"3":     3 * p.RuleThickness,
		"200%":  2 * p.RuleThickness,
		"0":     0,
	}
	for v, want := range cases {
		frac := node(notation.KindFrac, map[string]string{"linethickness": v}, mn("1"), mn("2"))
		res := build(t, mathRoot(frac), Options{})
		fw := find(res.Root, frac)
		assert.InDelta(t, want, fracThickness(fw), eps, v)
	}

	frac := node(notation.KindFrac, map[string]string{"linethickness": "wide"}, mn("1"), mn("2"))
	_, err := Build(mathRoot(frac), Options{})
	var ace *notation.AttributeConfigError
	require.True(t, errors.As(err, &ace))
	assert.Equal(t, "linethickness", ace.Attr)
	assert.Equal(t, "medium", ace.Used)
}

func TestScriptsFollowItalicCorrection(t *testing.T) {
	base, sup := mi("f"), mn("2")
	msup := node(notation.KindSup, nil, base, sup)
	res := build(t, mathRoot(msup), Options{})
	w := find(res.Root, msup)

	bb := w.child(0)
	assert.InDelta(t, 0.49, bb.W, eps, "上标底数不把斜体校正计入宽度")
	assert.InDelta(t, 0.06, bb.IC, eps)
	assert.InDelta(t, bb.W+bb.IC, w.Offset(1).X, eps)

	p := fontdata.TeXParams()
	assert.GreaterOrEqual(t, w.Offset(1).Y, p.Sup2-eps)
	sb := w.child(1)
	assert.InDelta(t, bb.W+bb.IC+sb.W+p.ScriptSpace, w.BBox().W, eps)
}

func TestSubSupClearance(t *testing.T) {
	sub, sup := mi("i"), mi("n")
	ss := node(notation.KindSubSup, nil, mi("x"), sub, sup)
	res := build(t, mathRoot(ss), Options{})
	w := find(res.Root, ss)
	p := fontdata.TeXParams()

	u := w.Offset(2).Y
	v := -w.Offset(1).Y
	supB, subB := w.child(2), w.child(1)
	gap := (u - supB.D) - (subB.H - v)
	assert.GreaterOrEqual(t, gap, 4*p.RuleThickness-eps, "上下标之间至少 4 倍线宽")
	assert.Greater(t, u, 0.0)
}

func TestStructuralErrorBecomesErrorBox(t *testing.T) {
	bad := node(notation.KindFrac, nil, mn("1"))
	ok := mi("y")
	res, err := Build(mathRoot(mi("x"), bad, ok), Options{})
	require.Error(t, err)
	require.NotNil(t, res, "结构错误不影响其它子树")

	var se *notation.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "math/0/1", se.Path)

	bw := find(res.Root, bad)
	require.NotNil(t, bw)
	assert.True(t, bw.IsErrorBox())
	assert.Empty(t, bw.Children)
	assert.Greater(t, bw.BBox().W, 0.0)

	yw := find(res.Root, ok)
	require.NotNil(t, yw)
	assert.False(t, yw.IsErrorBox())
	assert.Greater(t, yw.BBox().W, 0.0)
}

type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(text, variant string) (float64, float64, float64, bool) {
	return 0.8, 0.1, 1, true
}

func TestMissingMetricsUseMeasurer(t *testing.T) {
	han := mi("中")
	res, err := Build(mathRoot(han), Options{Measurer: fixedMeasurer{}})
	require.NotNil(t, res)
	var me *fontdata.MissingMetricError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, '中', me.Char)

	b := find(res.Root, han).BBox()
	assert.InDelta(t, 0.8, b.H, eps)
	assert.InDelta(t, 0.1, b.D, eps)
	assert.InDelta(t, 1, b.W, eps)

	// 没有测量器时使用默认盒子
	res, err = Build(mathRoot(mi("中")), Options{})
	require.Error(t, err)
	assert.InDelta(t, unknownW, res.Box().W, eps)
}

func TestBuildAllIsolatesFailures(t *testing.T) {
	roots := []*notation.Node{
		mathRoot(mi("a")),
		nil,
		mathRoot(mn("2")),
	}
	out, err := BuildAll(roots, Options{})
	require.Error(t, err)
	require.Len(t, out, 3)
	assert.NotNil(t, out[0])
	assert.Nil(t, out[1])
	assert.NotNil(t, out[2])
	assert.Len(t, multierr.Errors(err), 1)
}

func TestRadicalCoversContent(t *testing.T) {
	base := node(notation.KindFrac, nil, mn("1"), mn("2"))
	sqrt := node(notation.KindSqrt, nil, base)
	res := build(t, mathRoot(sqrt), Options{Display: true})
	w := find(res.Root, sqrt)
	cb := w.child(0)
	p := fontdata.TeXParams()

	b := w.BBox()
	assert.Greater(t, b.H, cb.H+p.RuleThickness)
	assert.GreaterOrEqual(t, b.D, cb.D-eps)
	assert.Greater(t, w.Offset(0).X, 0.0, "内容位于根号右侧")
}

func TestRootIndexDoesNotChangeHeight(t *testing.T) {
	sqrt := node(notation.KindSqrt, nil, mi("x"))
	root := node(notation.KindRoot, nil, mi("x"), mn("3"))
	res := build(t, mathRoot(node(notation.KindRow, nil, sqrt, root)), Options{})
	sw, rw := find(res.Root, sqrt), find(res.Root, root)

	assert.InDelta(t, sw.BBox().H, rw.BBox().H, eps)
	assert.GreaterOrEqual(t, rw.BBox().W, sw.BBox().W-eps)
	assert.GreaterOrEqual(t, rw.Offset(1).X, 0.0)
	assert.Equal(t, 2, rw.Node.Children[1].ScriptLevel())
}

func TestLargeOperatorLimits(t *testing.T) {
	sum := mo("∑")
	uo := node(notation.KindUnderOver, nil, sum, mi("i"), mi("n"))
	res := build(t, mathRoot(uo), Options{Display: true})
	w := find(res.Root, uo)
	p := fontdata.TeXParams()

	base := w.child(0)
	over := w.child(2)
	under := w.child(1)
	assert.GreaterOrEqual(t, w.Offset(2).Y-over.D-base.H, p.BigOpSpacing1-eps)
	assert.GreaterOrEqual(t, -w.Offset(1).Y-under.H-base.D, p.BigOpSpacing2-eps)
	assert.InDelta(t, w.Offset(2).Y+over.H+p.BigOpSpacing5, w.BBox().H, eps)

	// 行内样式下 movablelimits 退化为上下标
	inline := node(notation.KindUnderOver, nil, mo("∑"), mi("i"), mi("n"))
	res = build(t, mathRoot(inline), Options{})
	iw := find(res.Root, inline)
	assert.Greater(t, iw.Offset(2).X, iw.child(0).W-eps)
}

func TestAccentSitsOnBase(t *testing.T) {
	over := node(notation.KindOver, nil, mi("x"), mo("^"))
	res := build(t, mathRoot(over), Options{})
	w := find(res.Root, over)
	require.True(t, w.Node.ScriptAccent(1))
	base := w.child(0)
	p := fontdata.TeXParams()

	assert.InDelta(t, base.H-min(base.H, p.XHeight), w.Offset(1).Y, eps)
	assert.InDelta(t, base.Advance(), w.BBox().W, eps, "重音不增加宽度")
}

func TestHorizontalStretchUnderOver(t *testing.T) {
	arrow := mo("→")
	text := notation.Token(notation.KindText, "long label", nil)
	over := node(notation.KindOver, nil, arrow, text)
	res := build(t, mathRoot(over), Options{})
	w := find(res.Root, over)

	aw := find(res.Root, arrow)
	require.NotNil(t, aw.Stretched())
	assert.InDelta(t, w.child(1).W, aw.BBox().W*aw.RScale, 1e-6)
}

func TestRowStretchesFences(t *testing.T) {
	open, close := mo("("), mo(")")
	frac := node(notation.KindFrac, nil, mi("a"), mi("b"))
	row := node(notation.KindRow, nil, open, frac, close)
	res := build(t, mathRoot(row), Options{Display: true})

	ow := find(res.Root, open)
	fw := find(res.Root, frac)
	require.NotNil(t, ow.Stretched())
	ob := ow.BBox()
	fb := fw.BBox()
	assert.GreaterOrEqual(t, ob.H+ob.D, (fb.H+fb.D)*DefaultDelimiterShortfall-eps)
	assert.Equal(t, ow.BBox(), find(res.Root, close).BBox(), "左右括号对称")
}

func TestTablePadsShortRows(t *testing.T) {
	cell := func(s string) *notation.Node { return node(notation.KindCell, nil, mn(s)) }
	tbl := node(notation.KindTable, nil,
		node(notation.KindTableRow, nil, cell("1"), cell("2")),
		node(notation.KindTableRow, nil, cell("3"), cell("4"), cell("5")),
		node(notation.KindTableRow, nil, cell("6")),
	)
	res := build(t, mathRoot(tbl), Options{})
	geo := find(res.Root, tbl).Table()
	require.NotNil(t, geo)

	require.Len(t, geo.Columns, 3)
	require.Len(t, geo.Rows, 3)
	// 第三列只有一个真实单元格，补齐的单元格不贡献宽度
	assert.InDelta(t, 0.5, geo.Columns[2].Width, eps)
	for _, r := range geo.Rows {
		assert.InDelta(t, 0.666, r.H, eps)
		assert.InDelta(t, 0, r.D, eps)
	}
	// 默认列间距 0.8em
	assert.InDelta(t, geo.Columns[0].Width+0.8, geo.Columns[1].X, eps)
}

func TestTableListRepairAndAlign(t *testing.T) {
	cell := func(s string) *notation.Node { return node(notation.KindCell, nil, mn(s)) }
	tbl := node(notation.KindTable, map[string]string{
		"columnspacing": "1em",
		"columnlines":   "solid",
		"align":         "top",
	},
		node(notation.KindTableRow, nil, cell("1"), cell("2"), cell("3")),
	)
	res := build(t, mathRoot(tbl), Options{})
	tw := find(res.Root, tbl)
	geo := tw.Table()

	// 列表不足时重复最后一项
	assert.InDelta(t, geo.Columns[1].X+geo.Columns[1].Width+1, geo.Columns[2].X, eps)
	lines := 0
	for _, op := range tw.ops {
		if op.kind == opLine {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
	assert.InDelta(t, 0, tw.BBox().H, eps, "align=top 时表格顶端在基线上")
}

func TestTableFixedWidthDistributesSurplus(t *testing.T) {
	cell := func(s string) *notation.Node { return node(notation.KindCell, nil, mn(s)) }
	tbl := node(notation.KindTable, map[string]string{
		"width":         "10em",
		"columnwidth":   "auto fit",
		"columnspacing": "0em",
	},
		node(notation.KindTableRow, nil, cell("1"), cell("2")),
	)
	res := build(t, mathRoot(tbl), Options{})
	tw := find(res.Root, tbl)
	geo := tw.Table()
	assert.InDelta(t, 0.5, geo.Columns[0].Width, eps)
	assert.InDelta(t, 9.5, geo.Columns[1].Width, eps)
	assert.InDelta(t, 10, tw.BBox().W, eps)
}

func TestTableLabels(t *testing.T) {
	label := node(notation.KindCell, nil, notation.Token(notation.KindText, "(1)", nil))
	tbl := node(notation.KindTable, map[string]string{"side": "left"},
		node(notation.KindLabeledRow, nil, label, node(notation.KindCell, nil, mi("x"))),
	)
	res := build(t, mathRoot(tbl), Options{})
	tw := find(res.Root, tbl)
	geo := tw.Table()
	require.Greater(t, geo.LabelWidth, 0.0)
	require.Len(t, geo.Columns, 1, "标签不占用表格列")

	row := tw.Children[0]
	assert.InDelta(t, geo.LabelWidth+0.8, tw.Offset(0).X, eps)
	assert.Less(t, row.Offset(0).X, 0.0, "左侧标签位于表体左边")
	assert.InDelta(t, geo.LabelWidth+0.8+geo.Width, tw.BBox().W, eps)
}

func TestPercentageWidthTwoPhase(t *testing.T) {
	pct := space("50%")
	root := mathRoot(space("10em"), pct)

	opts, err := Options{}.withDefaults()
	require.NoError(t, err)
	eng := &engine{opts: opts, store: opts.Store, asm: opts.Assembler, log: opts.Logger}
	require.NoError(t, notation.Resolve(root, notation.ResolveOptions{}))
	top := eng.build(root, nil)
	top.BBox()

	pw := find(top, pct)
	require.Len(t, eng.pending, 1)
	assert.False(t, pw.Computed(), "第一阶段后尚未确定")
	assert.InDelta(t, 0, pw.BBox().W, eps)
	assert.InDelta(t, 10, top.BBox().W, eps)

	eng.resolvePercentages(top)
	assert.True(t, pw.Computed())
	assert.InDelta(t, 5, pw.BBox().W, eps)
	assert.InDelta(t, 15, top.BBox().W, eps)
}

func TestPercentageWidthUsesCellAndContainer(t *testing.T) {
	pct := space("50%")
	tbl := node(notation.KindTable, nil,
		node(notation.KindTableRow, nil, node(notation.KindCell, nil, space("4em"))),
		node(notation.KindTableRow, nil, node(notation.KindCell, nil, pct)),
	)
	res := build(t, mathRoot(tbl), Options{})
	assert.InDelta(t, 2, find(res.Root, pct).BBox().W, eps, "容器是所在列的宽度")

	pct2 := space("25%")
	res = build(t, mathRoot(pct2), Options{ContainerWidth: 20})
	assert.InDelta(t, 5, find(res.Root, pct2).BBox().W, eps)
}

func TestPercentageWidthUsesNearestContainer(t *testing.T) {
	pct := space("50%")
	inner := node(notation.KindRow, nil, space("10em"), pct)
	res := build(t, mathRoot(space("6em"), inner), Options{})

	pw := find(res.Root, pct)
	assert.True(t, pw.Computed())
	assert.InDelta(t, 5, pw.BBox().W, eps, "容器是外层 mrow 而不是根")
	assert.InDelta(t, 15, find(res.Root, inner).BBox().W, eps)

	// ContainerWidth 只作用于根的直接内容
	pct2 := space("25%")
	inner2 := node(notation.KindRow, nil, space("8em"), pct2)
	res = build(t, mathRoot(inner2), Options{ContainerWidth: 40})
	assert.InDelta(t, 2, find(res.Root, pct2).BBox().W, eps)
}

func TestPaddedAdjustsBox(t *testing.T) {
	x := mi("x")
	pad := node(notation.KindPadded, map[string]string{
		"width":  "+1em",
		"height": "2height",
		"depth":  "0",
		"lspace": "0.5em",
	}, x)
	res := build(t, mathRoot(pad), Options{})
	w := find(res.Root, pad)
	xb := find(res.Root, x).BBox()

	b := w.BBox()
	assert.InDelta(t, xb.Advance()+1, b.W, eps)
	assert.InDelta(t, 2*xb.H, b.H, eps)
	assert.InDelta(t, 0, b.D, eps)
	assert.InDelta(t, 0.5+xb.L, w.Offset(0).X, eps)
}

func TestEnclosePaddingAndDedup(t *testing.T) {
	x := mi("x")
	enc := node(notation.KindEnclose, map[string]string{"notation": "box top updiagonalstrike"}, x)
	res := build(t, mathRoot(enc), Options{})
	w := find(res.Root, enc)
	xb := w.child(0)
	pt := enclosePadding + encloseThickness

	b := w.BBox()
	assert.InDelta(t, xb.Advance()+2*pt, b.W, eps)
	assert.InDelta(t, xb.H+pt, b.H, eps)
	assert.InDelta(t, xb.D+pt, b.D, eps)
	assert.Equal(t, []string{"box", "updiagonalstrike"}, parseNotations(w), "box 覆盖 top")

	bad := node(notation.KindEnclose, map[string]string{"notation": "box sparkle"}, mi("y"))
	_, err := Build(mathRoot(bad), Options{})
	var ace *notation.AttributeConfigError
	require.True(t, errors.As(err, &ace))
	assert.Equal(t, "notation", ace.Attr)
	assert.Equal(t, "box", ace.Used)
}
