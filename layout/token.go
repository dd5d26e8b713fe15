package layout

import (
	"fmt"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/notation"
)

// 缺失度量且没有测量器时使用的默认盒子。
const (
	unknownH = 0.75
	unknownD = 0.25
	unknownW = 0.5
)

// tokenLayout 处理 mi、mn、mtext、ms：逐字查表求和宽度，高度深度取最大值。
type tokenLayout struct{}

func (tokenLayout) layout(w *Wrapper) BBox {
	text := w.Node.Text
	if w.Node.Kind == notation.KindString {
		text = w.Node.Attr("lquote") + text + w.Node.Attr("rquote")
	}
	b := w.layoutText(text, w.Node.MathVariant())
	// 斜体单字母不作为上下标底数时把斜体校正计入宽度。
	if b.IC > 0 && !isScriptBase(w) {
		b.W += b.IC
	}
	return b
}

// layoutText 排列一段文字并记录字形绘制指令。
func (w *Wrapper) layoutText(text, variant string) BBox {
	b := emptyBox()
	color := w.color()
	x := 0.0
	var last fontdata.CharMetrics
	n := 0
	for _, r := range text {
		n++
		m, err := w.eng.store.Lookup(variant, r)
		g := Glyph{Char: r, Variant: variant, Size: 1, Color: color}
		if err != nil {
			h, d, wd := w.eng.missing(w.Node, string(r), variant, err)
			m = fontdata.CharMetrics{H: h, D: d, W: wd}
			g.Text = string(r)
		}
		w.addGlyph(g, x, 0)
		x += m.W
		b.H = math.Max(b.H, m.H)
		b.D = math.Max(b.D, m.D)
		last = m
	}
	b.W = x
	b.IC = last.IC
	if n == 1 {
		b.Skew = last.Skew
	}
	return b.clean()
}

// missing 处理缺失度量：记录警告与错误，并通过后端测量器得到替代尺寸。
func (e *engine) missing(n *notation.Node, text, variant string, err error) (h, d, w float64) {
	e.log.Warn("missing glyph metrics",
		zap.String("path", n.Path()), zap.String("text", text), zap.String("variant", variant))
	e.fail(fmt.Errorf("layout: %s: %w", n.Path(), err))
	if e.opts.Measurer != nil {
		if h, d, w, ok := e.opts.Measurer.MeasureText(text, variant); ok {
			return h, d, w
		}
	}
	return unknownH, unknownD, unknownW
}

func isScriptBase(w *Wrapper) bool {
	p := w.Parent
	if p == nil || w.Node.Index() != 0 {
		return false
	}
	switch p.Node.Kind {
	case notation.KindSub, notation.KindSup, notation.KindSubSup,
		notation.KindUnder, notation.KindOver, notation.KindUnderOver:
		return true
	}
	return false
}

// isCharBase 判断节点是否是单个未拉伸字符（决定上下标是否使用 drop 参数）。
func isCharBase(w *Wrapper) bool {
	for w != nil && (w.Node.Kind == notation.KindRow || w.Node.Kind == notation.KindStyle || w.Node.Kind == notation.KindTeXAtom) && len(w.Children) == 1 {
		w = w.Children[0]
	}
	if w == nil || !w.Node.IsToken() || w.stretch != nil {
		return false
	}
	if w.Node.Kind == notation.KindOperator && notation.OperatorInfo(w.Node).Props.LargeOp {
		return false
	}
	return utf8.RuneCountInString(w.Node.Text) == 1
}

// operatorLayout 处理 mo：大型运算符选用放大字形并以数学轴居中；
// 可伸缩运算符由父节点通过 stretchVertical/stretchHorizontal 确定尺寸。
type operatorLayout struct{}

func (operatorLayout) layout(w *Wrapper) BBox {
	info := notation.OperatorInfo(w.Node)
	var b BBox
	if ch, ok := singleRune(w.Node.Text); ok && info.Props.LargeOp {
		if r, ok := w.eng.store.Recipe(ch); ok && len(r.Variants) > 0 {
			v := r.Variants[0]
			if w.display() {
				v = r.Variants[len(r.Variants)-1]
			}
			b = w.centerOnAxis(v)
		} else {
			b = w.layoutText(w.Node.Text, w.Node.MathVariant())
		}
	} else {
		b = w.layoutText(w.Node.Text, w.Node.MathVariant())
	}
	w.operatorSpace(&b)
	return b
}

// centerOnAxis 绘制固定变体字形并把它的中心移到数学轴上。
func (w *Wrapper) centerOnAxis(v fontdata.GlyphRef) BBox {
	m := v.Metrics
	a := w.params().AxisHeight
	half := (m.H + m.D) / 2
	dy := a + half - m.H
	w.addGlyph(Glyph{Char: v.Char, Variant: v.Variant, Size: 1, Color: w.color()}, 0, dy)
	return BBox{H: half + a, D: half - a, W: m.W, IC: m.IC}
}

// operatorSpace 应用显式 lspace/rspace。
func (w *Wrapper) operatorSpace(b *BBox) {
	if _, ok := w.Node.Explicit("lspace"); ok {
		if l, ok := w.length("lspace", 0); ok {
			b.L = l
		}
	}
	if _, ok := w.Node.Explicit("rspace"); ok {
		if r, ok := w.length("rspace", 0); ok {
			b.R = r
		}
	}
}

func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// stretchDir 返回运算符可伸缩的方向；不可伸缩时返回 DirNone。
func (w *Wrapper) stretchDir() fontdata.Direction {
	if w.Node.Kind != notation.KindOperator {
		return fontdata.DirNone
	}
	info := notation.OperatorInfo(w.Node)
	if !info.Props.Stretchy || info.Props.LargeOp {
		return fontdata.DirNone
	}
	ch, ok := singleRune(w.Node.Text)
	if !ok {
		return fontdata.DirNone
	}
	r, ok := w.eng.store.Recipe(ch)
	if !ok {
		return fontdata.DirNone
	}
	return r.Dir
}

// stretchVertical 把运算符伸缩到覆盖 (h, d)（本节点 em），对称运算符以数学轴对称。
func (w *Wrapper) stretchVertical(h, d float64) BBox {
	info := notation.OperatorInfo(w.Node)
	if info.Props.Symmetric {
		a := w.params().AxisHeight
		half := math.Max(h-a, d+a)
		h, d = half+a, half-a
	}
	h, d = w.clampStretch(h, d)
	return w.applyStretch(Target{H: h, D: d})
}

// stretchHorizontal 把运算符伸缩到宽度 width（本节点 em）。
func (w *Wrapper) stretchHorizontal(width float64) BBox {
	return w.applyStretch(Target{W: width})
}

// clampStretch 应用 minsize/maxsize；无单位数值为自然尺寸的倍数。
func (w *Wrapper) clampStretch(h, d float64) (float64, float64) {
	ch, _ := singleRune(w.Node.Text)
	natural := 1.0
	if m, err := w.eng.store.Lookup(w.Node.MathVariant(), ch); err == nil && m.H+m.D > 0 {
		natural = m.H + m.D
	}
	total := h + d
	if total <= 0 {
		return h, d
	}
	scale := 1.0
	if _, ok := w.Node.Explicit("minsize"); ok {
		if v, ok := w.length("minsize", natural); ok && total < v {
			scale = v / total
		}
	}
	if _, ok := w.Node.Explicit("maxsize"); ok {
		if v, ok := w.length("maxsize", natural); ok && total*scale > v {
			scale = v / total
		}
	}
	return h * scale, d * scale
}

func (w *Wrapper) applyStretch(t Target) BBox {
	ch, _ := singleRune(w.Node.Text)
	st := w.eng.asm.Stretch(ch, w.Node.MathVariant(), t, false)
	w.offsets = make([]Point, len(w.Children))
	w.ops = w.ops[:0]
	w.drawStretched(&st, 0, 0)
	b := st.Box
	w.operatorSpace(&b)
	w.stretch = &st
	w.setBox(b)
	return b
}

// drawStretched 把伸缩结果转换为字形绘制指令，(dx, dy) 为结果原点的位置。
func (w *Wrapper) drawStretched(st *Stretched, dx, dy float64) {
	color := w.color()
	if st.Variant != nil {
		w.addGlyph(Glyph{Char: st.Variant.Char, Variant: st.Variant.Variant, Size: 1, Color: color}, dx, dy)
		return
	}
	for _, p := range st.Pieces {
		g := Glyph{Char: p.Glyph.Char, Variant: p.Glyph.Variant, Size: 1, Color: color}
		if st.Dir == fontdata.DirVertical {
			if p.Scale != 1 {
				g.ScaleY = p.Scale
			}
			top := st.Box.H - p.Offset
			w.addGlyph(g, dx, dy+top-p.Glyph.Metrics.H*p.Scale)
			continue
		}
		if p.Scale != 1 {
			g.ScaleX = p.Scale
		}
		w.addGlyph(g, dx+p.Offset, dy)
	}
}
