package layout

import (
	"math"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/notation"
)

// underOverLayout 处理 munder、mover、munderover。大型运算符的上下限使用
// bigopspacing 参数（TeX 规则 13a），重音紧贴底数（规则 12）；
// movablelimits 在非陈列样式下退化为上下标。
type underOverLayout struct{}

// scriptParts 把下方成员视为下标、上方成员视为上标。
func (underOverLayout) scriptParts(w *Wrapper) (int, int, int) {
	switch w.Node.Kind {
	case notation.KindUnder:
		return 0, 1, -1
	case notation.KindOver:
		return 0, -1, 1
	}
	return 0, 1, 2
}

func (l underOverLayout) layout(w *Wrapper) BBox {
	_, under, over := l.scriptParts(w)

	core := w.Node.Children[0].CoreOperator()
	var info notation.OpInfo
	if core != nil {
		info = notation.OperatorInfo(core)
	}
	if info.Props.MovableLimits && !w.display() {
		return layoutScripts(w, l)
	}

	stretchMembers(w)

	p := w.params()
	base := w.child(0)
	largeop := info.Props.LargeOp
	align := w.Node.Attr("align")

	W := base.Advance()
	var ub, ob BBox
	underAccent, overAccent := false, false
	if under >= 0 {
		ub = w.child(under)
		underAccent = w.Node.ScriptAccent(under)
		W = math.Max(W, ub.Advance())
	}
	if over >= 0 {
		ob = w.child(over)
		overAccent = w.Node.ScriptAccent(over)
		if !overAccent {
			W = math.Max(W, ob.Advance())
		}
	}

	bx := alignOffset(W, base.Advance(), "center")
	w.place(0, bx+base.L, 0)
	b := BBox{}
	b.include(base, bx+base.L, 0)
	slant := 0.0
	if largeop {
		slant = base.IC / 2
	}

	if over >= 0 {
		var x, y float64
		if overAccent {
			y = base.H - math.Min(base.H, p.XHeight)
			x = bx + base.L + (base.W-ob.W)/2 + base.Skew
		} else {
			shift := math.Max(p.BigOpSpacing1, p.BigOpSpacing3-ob.D)
			y = base.H + shift + ob.D
			x = alignOffset(W, ob.Advance(), align) + ob.L + slant
		}
		w.place(over, x, y)
		b.include(ob, x, y)
		if largeop && !overAccent {
			b.H += p.BigOpSpacing5
		}
	}
	if under >= 0 {
		var x, y float64
		if underAccent {
			y = -(base.D + ub.H)
			x = alignOffset(W, ub.Advance(), "center") + ub.L
		} else {
			shift := math.Max(p.BigOpSpacing2, p.BigOpSpacing4-ub.H)
			y = -(base.D + shift + ub.H)
			x = alignOffset(W, ub.Advance(), align) + ub.L - slant
		}
		w.place(under, x, y)
		b.include(ub, x, y)
		if largeop && !underAccent {
			b.D += p.BigOpSpacing5
		}
	}
	b.W = W
	if over < 0 || overAccent {
		b.IC = base.IC
		b.Skew = base.Skew
	}
	return b
}

// stretchMembers 把水平可伸缩的成员拉伸到其余成员的最大宽度。
// 所有成员都可伸缩时取它们的自然宽度最大值。
func stretchMembers(w *Wrapper) {
	width := 0.0
	var stretchy []*Wrapper
	for i, c := range w.Children {
		if c.stretchDir() == fontdata.DirHorizontal {
			stretchy = append(stretchy, c)
			continue
		}
		width = math.Max(width, w.child(i).W)
	}
	if len(stretchy) == 0 {
		return
	}
	if width == 0 {
		for _, c := range stretchy {
			width = math.Max(width, c.BBox().W*c.RScale)
		}
	}
	for _, c := range stretchy {
		c.stretchHorizontal(width / c.RScale)
	}
}
