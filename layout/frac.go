package layout

import (
	"math"
	"strings"
)

// fracLayout 实现 TeX 附录 G 规则 15a–15e。分数宽度为分子分母宽度的最大值，
// 空定界符间距放在左右附加间距中。
type fracLayout struct{}

func (fracLayout) layout(w *Wrapper) BBox {
	if w.Node.Bool("bevelled") {
		return bevelledFrac(w)
	}
	p := w.params()
	num, den := w.child(0), w.child(1)
	t := fracThickness(w)
	a := p.AxisHeight
	display := w.display()

	var u, v float64
	if t == 0 {
		// 15c：无分数线时分子分母之间至少留 7t（陈列式）或 3t 的间隙。
		u, v = p.Num3, p.Denom2
		clr := 3 * p.RuleThickness
		if display {
			u, v = p.Num1, p.Denom1
			clr = 7 * p.RuleThickness
		}
		if q := (u - num.D) - (den.H - v); q < clr {
			u += (clr - q) / 2
			v += (clr - q) / 2
		}
	} else {
		// 15d：T 为分数线半厚度加最小间隙（陈列式 3t，否则 t）。
		T := 1.5 * t
		nu, dv := p.Num2, p.Denom2
		if display {
			T = 3.5 * t
			nu, dv = p.Num1, p.Denom1
		}
		u = a + T + math.Max(num.D, nu-a-T)
		v = T - a + math.Max(den.H, dv+a-T)
	}

	W := math.Max(num.Advance(), den.Advance())
	nx := alignOffset(W, num.Advance(), w.Node.Attr("numalign"))
	dx := alignOffset(W, den.Advance(), w.Node.Attr("denomalign"))
	w.place(0, nx+num.L, u)
	w.place(1, dx+den.L, -v)

	b := BBox{W: W, H: u + num.H, D: v + den.D}
	if t > 0 {
		w.addRect(Rect{X: 0, Y: a - t/2, W: W, H: t, Fill: true, Color: w.color()})
		b.H = math.Max(b.H, a+t/2)
		b.D = math.Max(b.D, t/2-a)
	}
	b.L = p.NullDelimiterSpace
	b.R = p.NullDelimiterSpace
	return b
}

// fracThickness 解析 linethickness：thin/medium/thick 关键字、无单位倍数、
// 百分比（相对默认线宽）或绝对长度。
func fracThickness(w *Wrapper) float64 {
	t := w.ruleThickness()
	v := strings.ToLower(strings.TrimSpace(w.Node.Attr("linethickness")))
	switch v {
	case "", "medium":
		return t
	case "thin":
		return t / 2
	case "thick":
		return 2 * t
	}
	l, err := ParseLength(v)
	if err != nil {
		w.eng.fail(w.Node.Repair("linethickness", v, "medium"))
		return t
	}
	if l.Value < 0 {
		w.eng.fail(w.Node.Repair("linethickness", v, "medium"))
		return t
	}
	return l.ToEm(w.metrics(), t)
}

// bevelledFrac 把分子抬高、分母降低，中间放一条伸缩的斜线。
func bevelledFrac(w *Wrapper) BBox {
	p := w.params()
	num, den := w.child(0), w.child(1)
	a := p.AxisHeight
	delta := 0.15
	if w.display() {
		delta = 0.4
	}
	// 分子中心在轴上方 delta，分母中心在轴下方 delta。
	ny := a + delta - (num.H-num.D)/2
	dy := a - delta - (den.H-den.D)/2

	top := math.Max(ny+num.H, a+delta)
	bottom := math.Max(den.D-dy, delta-a)
	st := w.eng.asm.Stretch('/', "normal", Target{H: top, D: bottom}, false)
	shift := (top-bottom)/2 - (st.Box.H-st.Box.D)/2

	x := num.L
	w.place(0, x, ny)
	x += num.W + num.R - 0.1
	w.drawStretched(&st, x, shift)
	x += st.Box.W - 0.1
	w.place(1, x+den.L, dy)
	x += den.Advance()

	b := BBox{W: x}
	b.H = math.Max(ny+num.H, shift+st.Box.H)
	b.D = math.Max(den.D-dy, st.Box.D-shift)
	return b
}

// alignOffset 返回宽度为 width 的内容在 container 中按 align 对齐时的左偏移。
func alignOffset(container, width float64, align string) float64 {
	if container <= width {
		return 0
	}
	switch strings.ToLower(align) {
	case "left", "start":
		return 0
	case "right", "end":
		return container - width
	}
	return (container - width) / 2
}
