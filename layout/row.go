package layout

import (
	"math"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/notation"
)

// rowLayout 从左到右排列子节点并插入 TeX 原子间距；行内可垂直伸缩的运算符
// 伸缩到覆盖其余子节点的最大高度与深度。
type rowLayout struct{}

func (rowLayout) layout(w *Wrapper) BBox {
	n := len(w.Children)
	boxes := make([]BBox, n)
	stretchy := make([]bool, n)

	// 先计算不可伸缩子节点，得到伸缩目标。
	h, d := math.Inf(-1), math.Inf(-1)
	sized := false
	for i, c := range w.Children {
		if c.stretchDir() == fontdata.DirVertical {
			stretchy[i] = true
			continue
		}
		boxes[i] = w.child(i)
		h = math.Max(h, boxes[i].H)
		d = math.Max(d, boxes[i].D)
		sized = true
	}
	for i, c := range w.Children {
		if !stretchy[i] {
			continue
		}
		if sized {
			// 目标换算到子节点自身单位。
			c.stretchVertical(h/c.RScale, d/c.RScale)
		} else {
			c.BBox()
		}
		boxes[i] = c.BBox().Scaled(c.RScale)
	}

	b := emptyBox()
	x := 0.0
	for i, c := range w.Children {
		x += rowSpace(w, c)
		cb := boxes[i]
		x += cb.L
		w.place(i, x, 0)
		b.include(cb, x, 0)
		x += cb.W + cb.R
	}
	b.W = x
	if n == 1 {
		b.IC = boxes[0].IC
		b.Skew = boxes[0].Skew
	} else if n > 0 {
		b.IC = boxes[n-1].IC
	}
	return b.clean()
}

// rowSpace 返回子节点之前的 TeX 间距（行的 em 单位）。
func rowSpace(row *Wrapper, c *Wrapper) float64 {
	n := c.Node
	if n.TeXClass == notation.ClassNone || n.PrevClass == notation.ClassNone {
		return 0
	}
	return notation.TeXSpacing(n.PrevClass, n.TeXClass, n.PrevScriptLevel, n.ScriptLevel()) * c.RScale
}

// wrapLayout 处理只有一个子节点的容器（math、mstyle、mtd、mphantom、TeXAtom）。
// TeXAtom 的 VCENTER 类把内容居中到数学轴。
type wrapLayout struct {
	vcenter bool
}

func (l wrapLayout) layout(w *Wrapper) BBox {
	if len(w.Children) == 0 {
		return BBox{}
	}
	cb := w.child(0)
	y := 0.0
	if l.vcenter && w.Node.TeXClass == notation.ClassVCenter {
		y = w.params().AxisHeight - (cb.H-cb.D)/2
	}
	w.place(0, cb.L, y)
	b := BBox{W: cb.L + cb.W + cb.R, IC: cb.IC, Skew: cb.Skew}
	b.H = cb.H + y
	b.D = cb.D - y
	return b
}
