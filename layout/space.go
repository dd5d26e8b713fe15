package layout

import (
	"math"
	"strings"
)

// spaceLayout 处理 mspace。百分比宽度在第二阶段解析前暂定为 0。
type spaceLayout struct{}

func (spaceLayout) layout(w *Wrapper) BBox {
	var b BBox
	if w.pct != nil {
		if w.pct.resolved {
			b.W = w.pct.width
		}
	} else if v, ok := w.length("width", 0); ok {
		b.W = v
	}
	if v, ok := w.length("height", 0); ok {
		b.H = v
	}
	if v, ok := w.length("depth", 0); ok {
		b.D = v
	}
	return b
}

// paddedLayout 处理 mpadded：尺寸属性可以是绝对长度、相对内容尺寸的倍数或百分比，
// 也可以带 +/- 前缀表示在内容尺寸上增减。lspace 移动内容，voffset 只移动绘制位置。
type paddedLayout struct{}

func (paddedLayout) layout(w *Wrapper) BBox {
	c := w.child(0)
	content := BBox{H: c.H, D: c.D, W: c.Advance()}
	m := w.metrics()
	b := content

	apply := func(attr string, cur float64) float64 {
		v := strings.TrimSpace(w.Node.Attr(attr))
		if v == "" {
			return cur
		}
		d, err := ParseDimen(v)
		if err != nil {
			w.eng.fail(w.Node.Repair(attr, v, w.Node.KindDefault(attr)))
			return cur
		}
		return d.Apply(cur, content, m)
	}
	b.W = math.Max(0, apply("width", content.W))
	b.H = math.Max(0, apply("height", content.H))
	b.D = math.Max(0, apply("depth", content.D))
	lspace := apply("lspace", 0)
	voffset := apply("voffset", 0)

	w.place(0, lspace+c.L, voffset)
	return b
}

// errorLayout 处理 merror 以及替代结构错误子树的错误框：内容外加边框。
// text 非空时显示该文本而不是子节点。
type errorLayout struct {
	text string
}

const errorPadding = 0.1

func (l errorLayout) layout(w *Wrapper) BBox {
	var inner BBox
	if l.text != "" || len(w.Children) == 0 {
		inner = w.layoutText(l.text, "normal")
		for i := range w.ops {
			w.ops[i].at.X += errorPadding
		}
	} else {
		inner = w.child(0)
		w.place(0, errorPadding+inner.L, 0)
		inner.W = inner.Advance()
	}
	b := BBox{
		H: inner.H + errorPadding,
		D: inner.D + errorPadding,
		W: inner.W + 2*errorPadding,
	}
	color := w.color()
	if color == "" {
		color = "red"
	}
	w.addRect(Rect{X: 0, Y: -b.D, W: b.W, H: b.H + b.D, Stroke: encloseThickness, Color: color})
	return b
}
