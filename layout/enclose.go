package layout

import (
	"math"
	"strings"
)

// menclose 的默认内边距与线宽（em）。
const (
	enclosePadding   = 0.2
	encloseThickness = 0.067
)

var knownNotations = map[string]bool{
	"longdiv": true, "actuarial": true, "phasorangle": true, "radical": true,
	"box": true, "roundedbox": true, "circle": true,
	"left": true, "right": true, "top": true, "bottom": true,
	"updiagonalstrike": true, "downdiagonalstrike": true,
	"verticalstrike": true, "horizontalstrike": true,
	"madruwb": true, "updiagonalarrow": true,
}

// 记号之间的覆盖关系：键出现时删除值中的记号。
var notationRemoves = map[string][]string{
	"box":             {"left", "right", "top", "bottom"},
	"roundedbox":      {"box", "left", "right", "top", "bottom"},
	"actuarial":       {"top", "right"},
	"madruwb":         {"bottom", "right"},
	"longdiv":         {"left", "top"},
	"updiagonalarrow": {"updiagonalstrike"},
	"phasorangle":     {"bottom"},
}

// encloseLayout 处理 menclose：每种记号贡献四边的内边距，同一边取最大值。
type encloseLayout struct{}

type sides struct{ top, right, bottom, left float64 }

func (s *sides) max(o sides) {
	s.top = math.Max(s.top, o.top)
	s.right = math.Max(s.right, o.right)
	s.bottom = math.Max(s.bottom, o.bottom)
	s.left = math.Max(s.left, o.left)
}

func (encloseLayout) layout(w *Wrapper) BBox {
	notations := parseNotations(w)
	c := w.child(0)
	p, t := enclosePadding, encloseThickness
	total := c.H + c.D

	var pad sides
	var longdiv, surd *Stretched
	for _, name := range notations {
		var s sides
		switch name {
		case "box", "roundedbox":
			s = sides{p + t, p + t, p + t, p + t}
		case "left":
			s.left = p + t
		case "right":
			s.right = p + t
		case "top":
			s.top = p + t
		case "bottom":
			s.bottom = p + t
		case "actuarial":
			s.top, s.right = p+t, p+t
		case "madruwb":
			s.bottom, s.right = p+t, p+t
		case "circle":
			rx := math.Sqrt2 * (c.Advance()/2 + p)
			ry := math.Sqrt2 * (total/2 + p)
			s = sides{ry - total/2 + t, rx - c.Advance()/2 + t, ry - total/2 + t, rx - c.Advance()/2 + t}
		case "longdiv":
			st := w.eng.asm.Stretch(')', "normal", Target{H: c.H + p + t, D: c.D + p}, false)
			longdiv = &st
			s.top = p + t
			s.left = st.Box.W + p
			s.bottom = math.Max(0, st.Box.D-c.D)
		case "radical":
			st := w.eng.asm.Stretch('√', "normal", Target{H: c.H + p + t, D: c.D}, false)
			surd = &st
			s.top = p + t
			s.left = st.Box.W
			s.bottom = math.Max(0, st.Box.D-c.D)
		case "phasorangle":
			s.left = (total+2*p)/2 + p
			s.bottom = p + t
			s.top = p
		case "updiagonalarrow":
			s.top, s.right = p, p
		}
		pad.max(s)
	}

	w.place(0, pad.left+c.L, 0)
	W := pad.left + c.Advance() + pad.right
	H := c.H + pad.top
	D := c.D + pad.bottom
	color := w.color()
	h2 := t / 2

	for _, name := range notations {
		switch name {
		case "box":
			w.addRect(Rect{X: h2, Y: -D + h2, W: W - t, H: H + D - t, Stroke: t, Color: color})
		case "roundedbox":
			w.addRect(Rect{X: h2, Y: -D + h2, W: W - t, H: H + D - t, Stroke: t, Radius: p, Color: color})
		case "circle":
			w.addRect(Rect{X: h2, Y: -D + h2, W: W - t, H: H + D - t, Stroke: t, Ellipse: true, Color: color})
		case "left":
			w.addLine(Line{X1: h2, Y1: -D, X2: h2, Y2: H, Thickness: t, Color: color})
		case "right":
			w.addLine(Line{X1: W - h2, Y1: -D, X2: W - h2, Y2: H, Thickness: t, Color: color})
		case "top":
			w.addLine(Line{X1: 0, Y1: H - h2, X2: W, Y2: H - h2, Thickness: t, Color: color})
		case "bottom":
			w.addLine(Line{X1: 0, Y1: -D + h2, X2: W, Y2: -D + h2, Thickness: t, Color: color})
		case "actuarial":
			w.addLine(Line{X1: 0, Y1: H - h2, X2: W - h2, Y2: H - h2, Thickness: t, Color: color})
			w.addLine(Line{X1: W - h2, Y1: -D, X2: W - h2, Y2: H, Thickness: t, Color: color})
		case "madruwb":
			w.addLine(Line{X1: 0, Y1: -D + h2, X2: W - h2, Y2: -D + h2, Thickness: t, Color: color})
			w.addLine(Line{X1: W - h2, Y1: -D, X2: W - h2, Y2: H, Thickness: t, Color: color})
		case "longdiv":
			w.drawStretched(longdiv, 0, c.H+p+t-longdiv.Box.H)
			w.addLine(Line{X1: 0, Y1: H - h2, X2: W, Y2: H - h2, Thickness: t, Color: color})
		case "radical":
			w.drawStretched(surd, 0, H-surd.Box.H)
			w.addLine(Line{X1: surd.Box.W, Y1: H - h2, X2: W, Y2: H - h2, Thickness: t, Color: color})
		case "phasorangle":
			w.addLine(Line{X1: 0, Y1: -D + h2, X2: W, Y2: -D + h2, Thickness: t, Color: color})
			w.addLine(Line{X1: 0, Y1: -D + h2, X2: pad.left, Y2: H, Thickness: t, Color: color})
		case "updiagonalstrike":
			w.addLine(Line{X1: 0, Y1: -D, X2: W, Y2: H, Thickness: t, Color: color})
		case "downdiagonalstrike":
			w.addLine(Line{X1: 0, Y1: H, X2: W, Y2: -D, Thickness: t, Color: color})
		case "verticalstrike":
			w.addLine(Line{X1: W / 2, Y1: -D, X2: W / 2, Y2: H, Thickness: t, Color: color})
		case "horizontalstrike":
			y := (H - D) / 2
			w.addLine(Line{X1: 0, Y1: y, X2: W, Y2: y, Thickness: t, Color: color})
		case "updiagonalarrow":
			w.addLine(Line{X1: 0, Y1: -D, X2: W, Y2: H, Thickness: t, Arrow: true, Color: color})
		}
	}
	return BBox{H: H, D: D, W: W}
}

// parseNotations 拆分 notation 列表、去重并应用覆盖关系。未知记号记录
// AttributeConfigError 并从列表中删除。
func parseNotations(w *Wrapper) []string {
	raw := w.Node.Attr("notation")
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	seen := map[string]bool{}
	var known []string
	bad := false
	for _, f := range fields {
		if !knownNotations[f] {
			bad = true
			continue
		}
		if !seen[f] {
			seen[f] = true
			known = append(known, f)
		}
	}
	if bad {
		w.eng.fail(w.Node.Repair("notation", raw, strings.Join(known, " ")))
	}
	for _, n := range known {
		for _, r := range notationRemoves[n] {
			delete(seen, r)
		}
	}
	out := known[:0]
	for _, n := range known {
		if seen[n] {
			out = append(out, n)
		}
	}
	return out
}
