package layout

import "math"

// 该文件定义布局结果、包围盒与绘制指令，供布局计算、渲染与调试 JSON 共用。
// 坐标约定：x 向右、y 向上，基线 y=0；长度单位为所在包装节点字号下的 em。

// BBox 是包围盒：高度、深度、宽度、斜体校正、重音偏移以及左右附加间距。
type BBox struct {
	H    float64 `json:"h"`
	D    float64 `json:"d"`
	W    float64 `json:"w"`
	L    float64 `json:"l,omitempty"`
	R    float64 `json:"r,omitempty"`
	IC   float64 `json:"ic,omitempty"`
	Skew float64 `json:"skew,omitempty"`
}

// emptyBox 用于累积，高度与深度从负无穷开始。
func emptyBox() BBox {
	return BBox{H: math.Inf(-1), D: math.Inf(-1)}
}

// clean 把未被任何子盒更新的负无穷归零。
func (b BBox) clean() BBox {
	if math.IsInf(b.H, -1) {
		b.H = 0
	}
	if math.IsInf(b.D, -1) {
		b.D = 0
	}
	return b
}

// Advance 返回包含左右间距的总宽度。
func (b BBox) Advance() float64 { return b.L + b.W + b.R }

// Total 返回高度与深度之和。
func (b BBox) Total() float64 { return b.H + b.D }

// Scaled 返回按比例缩放后的盒子（子节点盒换算到父节点单位）。
func (b BBox) Scaled(s float64) BBox {
	return BBox{H: b.H * s, D: b.D * s, W: b.W * s, L: b.L * s, R: b.R * s, IC: b.IC * s, Skew: b.Skew * s}
}

// include 把以 (x, y) 为原点放置的盒子并入当前盒子；x 为原点横坐标，
// 不含被放置盒子的左间距。
func (b *BBox) include(o BBox, x, y float64) {
	if w := x + o.W + o.R; w > b.W {
		b.W = w
	}
	if h := y + o.H; h > b.H {
		b.H = h
	}
	if d := o.D - y; d > b.D {
		b.D = d
	}
}

// Point 是一个坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Glyph 描述一个待绘制字符。ScaleX/ScaleY 为 0 表示不缩放（用于拉伸的延长段）。
type Glyph struct {
	Char    rune    `json:"char"`
	Variant string  `json:"variant"`
	Size    float64 `json:"size"`
	Color   string  `json:"color,omitempty"`
	ScaleX  float64 `json:"scaleX,omitempty"`
	ScaleY  float64 `json:"scaleY,omitempty"`
	// Text 非空时表示后端自行测量的文本片段（缺失度量的字符）。
	Text string `json:"text,omitempty"`
}

// Rect 是矩形或椭圆；Fill 为 false 时仅描边。
type Rect struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Stroke  float64 `json:"stroke,omitempty"`
	Fill    bool    `json:"fill,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Ellipse bool    `json:"ellipse,omitempty"`
	Dashed  bool    `json:"dashed,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// Line 是线段；Arrow 为 true 时在终点画箭头。
type Line struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Thickness float64 `json:"thickness"`
	Arrow     bool    `json:"arrow,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type opKind int

const (
	opGlyph opKind = iota
	opRect
	opLine
)

// drawOp 是包装节点自身的绘制指令，坐标相对于节点原点、单位为节点 em。
type drawOp struct {
	kind  opKind
	at    Point
	glyph Glyph
	rect  Rect
	line  Line
}

// Result 保存一次布局的结果。
type Result struct {
	Root    *Wrapper
	Display bool
	// FontSize 是根节点 1em 的磅数。
	FontSize float64
}

// Box 返回根节点的包围盒。
func (r *Result) Box() BBox {
	if r == nil || r.Root == nil {
		return BBox{}
	}
	return r.Root.BBox()
}
