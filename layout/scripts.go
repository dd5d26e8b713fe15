package layout

import (
	"math"

	"github.com/ByLCY/mathbox/notation"
)

// scripted 由带上下标的布局实现，给出底数与脚本在子节点中的下标，-1 表示缺省。
// msub/msup/msubsup 与 munder/mover/munderover 共用 layoutScripts 的位移规则。
type scripted interface {
	scriptParts(w *Wrapper) (base, sub, sup int)
}

// scriptsLayout 处理 msub、msup、msubsup（TeX 规则 18a–18f）。
type scriptsLayout struct{}

func (scriptsLayout) scriptParts(w *Wrapper) (int, int, int) {
	switch w.Node.Kind {
	case notation.KindSub:
		return 0, 1, -1
	case notation.KindSup:
		return 0, -1, 1
	}
	return 0, 1, 2
}

func (l scriptsLayout) layout(w *Wrapper) BBox {
	return layoutScripts(w, l)
}

// layoutScripts 按上下标规则排列底数与脚本。
// munderover 在非陈列样式下的可移动极限也走这里。
func layoutScripts(w *Wrapper, s scripted) BBox {
	baseIdx, subIdx, supIdx := s.scriptParts(w)
	p := w.params()
	base := w.child(baseIdx)
	charBase := isCharBase(w.Children[baseIdx])
	t := p.RuleThickness

	var sub, sup BBox
	var subScale, supScale float64
	if subIdx >= 0 {
		sub = w.child(subIdx)
		subScale = w.Children[subIdx].RScale
	}
	if supIdx >= 0 {
		sup = w.child(supIdx)
		supScale = w.Children[supIdx].RScale
	}

	x0 := base.L
	w.place(baseIdx, x0, 0)
	b := BBox{}
	b.include(base, x0, 0)
	after := x0 + base.W + base.R
	ic := base.IC

	var u, v float64
	if supIdx >= 0 {
		u0 := 0.0
		if !charBase {
			u0 = base.H - p.SupDrop*supScale
		}
		// 18c：紧缩样式用 sup3，陈列样式用 sup1。
		s := p.Sup2
		switch {
		case w.Node.Cramped():
			s = p.Sup3
		case w.display():
			s = p.Sup1
		}
		u = math.Max(u0, math.Max(s, sup.D+p.XHeight/4))
		if m, ok := explicitShift(w, "superscriptshift"); ok {
			u = math.Max(u, m)
		}
	}
	if subIdx >= 0 {
		v0 := 0.0
		if !charBase {
			v0 = base.D + p.SubDrop*subScale
		}
		if supIdx < 0 {
			v = math.Max(v0, math.Max(p.Sub1, sub.H-0.8*p.XHeight))
		} else {
			v = math.Max(v0, p.Sub2)
		}
		if m, ok := explicitShift(w, "subscriptshift"); ok {
			v = math.Max(v, m)
		}
	}
	if subIdx >= 0 && supIdx >= 0 {
		// 18e：上下标之间至少留 4t。
		if gap := (u - sup.D) - (sub.H - v); gap < 4*t {
			v = 4*t - u + sup.D + sub.H
			if psi := 0.8*p.XHeight - (u - sup.D); psi > 0 {
				u += psi
				v -= psi
			}
		}
	}

	width := 0.0
	if supIdx >= 0 {
		x := after + ic + sup.L
		w.place(supIdx, x, u)
		b.include(sup, x, u)
		width = math.Max(width, ic+sup.Advance())
	}
	if subIdx >= 0 {
		x := after + sub.L
		w.place(subIdx, x, -v)
		b.include(sub, x, -v)
		width = math.Max(width, sub.Advance())
	}
	b.W = after + width + p.ScriptSpace
	return b
}

// explicitShift 读取 superscriptshift/subscriptshift，作为最小位移使用。
func explicitShift(w *Wrapper, attr string) (float64, bool) {
	if _, ok := w.Node.Explicit(attr); !ok {
		return 0, false
	}
	return w.length(attr, 0)
}
