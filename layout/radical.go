package layout

import "math"

// radicalLayout 处理 msqrt 与 mroot（TeX 规则 11）。根号字形伸缩到覆盖内容加间隙，
// 顶部画一条与根号等厚的横线。mroot 的指数以 scriptlevel+2 排在根号左上方。
type radicalLayout struct {
	index bool
}

func (l radicalLayout) layout(w *Wrapper) BBox {
	p := w.params()
	base := w.child(0)
	t := p.RuleThickness
	phi := t
	if w.display() {
		phi = p.XHeight
	}
	q := t + phi/4

	st := w.eng.asm.Stretch('√', "normal", Target{H: base.H + q + t, D: base.D}, false)
	surd := st.Box
	// 多出的高度平分给间隙。
	if extra := surd.H + surd.D - (base.H + base.D + q + t); extra > 0 {
		q += extra / 2
	}
	top := base.H + q + t
	surdY := top - surd.H

	x := 0.0
	var ib BBox
	if l.index && len(w.Children) > 1 {
		ib = w.child(1)
		// 指数基线抬高到根号高度的 60%。
		raise := 0.6*(top+base.D) - base.D
		kernBefore, kernAfter := 5.0/18, -10.0/18
		ix := kernBefore + ib.L
		sx := kernBefore + ib.Advance() + kernAfter
		if sx < 0 {
			ix -= sx
			sx = 0
		}
		w.place(1, ix, raise)
		x = sx
	}

	w.drawStretched(&st, x, surdY)
	x += surd.W
	w.addRect(Rect{X: x, Y: base.H + q, W: base.Advance(), H: t, Fill: true, Color: w.color()})
	w.place(0, x+base.L, 0)

	b := BBox{W: x + base.Advance()}
	b.H = top
	b.D = math.Max(base.D, surd.D-surdY)
	return b
}
