package layout

import (
	"fmt"
	"sort"

	"github.com/ByLCY/mathbox/notation"
)

// Emitter 由渲染后端实现。Emit 以深度优先顺序调用它，坐标单位为根节点 em，
// x 向右、y 向上，原点在根节点基线左端。
type Emitter interface {
	EmitGlyph(g Glyph, at Point) error
	EmitRect(r Rect) error
	EmitLine(l Line) error
	// EmitComposite 包围一个节点的全部输出；后端可以在 emitChildren 前后
	// 打开和关闭分组（例如 SVG 的 <g> 或 HTML 的 <span>）。
	EmitComposite(info CompositeInfo, at Point, emitChildren func() error) error
}

// CompositeInfo 描述正在输出的节点。
type CompositeInfo struct {
	Node  *notation.Node
	Kind  notation.Kind
	Path  string
	Class notation.TeXClass
	// Box 是换算到根 em 的包围盒，Scale 是节点的绝对字号比例。
	Box        BBox
	Scale      float64
	Color      string
	Background string
	ErrorBox   bool
}

// GlyphUse 是一次输出中用到的 (变体, 字符)。
type GlyphUse struct {
	Variant string
	Char    rune
}

// RenderContext 记录一次输出用到的字形，供后端裁剪字体或生成 CSS。
type RenderContext struct {
	FontSize float64
	used     map[GlyphUse]struct{}
}

func (c *RenderContext) use(variant string, ch rune) {
	c.used[GlyphUse{Variant: variant, Char: ch}] = struct{}{}
}

// Used 返回按变体与字符排序的字形列表。
func (c *RenderContext) Used() []GlyphUse {
	out := make([]GlyphUse, 0, len(c.used))
	for u := range c.used {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Variant != out[j].Variant {
			return out[i].Variant < out[j].Variant
		}
		return out[i].Char < out[j].Char
	})
	return out
}

// Uses reports whether the glyph was emitted.
func (c *RenderContext) Uses(variant string, ch rune) bool {
	_, ok := c.used[GlyphUse{Variant: variant, Char: ch}]
	return ok
}

// Emit 遍历布局结果并把绘制指令交给 em。mphantom 子树不产生输出但仍占位；
// mathbackground 转换为填充矩形，位于节点内容之下。
func Emit(res *Result, em Emitter) (*RenderContext, error) {
	if res == nil || res.Root == nil {
		return nil, fmt.Errorf("layout: 没有可输出的结果")
	}
	ctx := &RenderContext{FontSize: res.FontSize, used: map[GlyphUse]struct{}{}}
	res.Root.BBox()
	if err := emitWrapper(res.Root, Point{}, ctx, em); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func emitWrapper(w *Wrapper, at Point, ctx *RenderContext, em Emitter) error {
	if w.Node.Kind == notation.KindPhantom {
		return nil
	}
	s := w.Scale
	box := w.BBox()
	info := CompositeInfo{
		Node:       w.Node,
		Kind:       w.Node.Kind,
		Path:       w.Node.Path(),
		Class:      w.Node.TeXClass,
		Box:        box.Scaled(s),
		Scale:      s,
		Color:      w.color(),
		Background: explicitBackground(w),
		ErrorBox:   w.errorBox,
	}
	return em.EmitComposite(info, at, func() error {
		if info.Background != "" {
			r := Rect{X: at.X, Y: at.Y - box.D*s, W: box.W * s, H: (box.H + box.D) * s, Fill: true, Color: info.Background}
			if err := em.EmitRect(r); err != nil {
				return err
			}
		}
		for _, op := range w.ops {
			if err := emitOp(op, at, s, ctx, em); err != nil {
				return fmt.Errorf("%s: %w", info.Path, err)
			}
		}
		for i, c := range w.Children {
			off := w.Offset(i)
			if err := emitWrapper(c, Point{X: at.X + off.X*s, Y: at.Y + off.Y*s}, ctx, em); err != nil {
				return err
			}
		}
		return nil
	})
}

func emitOp(op drawOp, at Point, s float64, ctx *RenderContext, em Emitter) error {
	switch op.kind {
	case opGlyph:
		g := op.glyph
		g.Size *= s
		ctx.use(g.Variant, g.Char)
		return em.EmitGlyph(g, Point{X: at.X + op.at.X*s, Y: at.Y + op.at.Y*s})
	case opRect:
		r := op.rect
		r.X, r.Y = at.X+r.X*s, at.Y+r.Y*s
		r.W, r.H = r.W*s, r.H*s
		r.Stroke *= s
		r.Radius *= s
		return em.EmitRect(r)
	case opLine:
		l := op.line
		l.X1, l.Y1 = at.X+l.X1*s, at.Y+l.Y1*s
		l.X2, l.Y2 = at.X+l.X2*s, at.Y+l.Y2*s
		l.Thickness *= s
		return em.EmitLine(l)
	}
	return nil
}

// explicitBackground 只在设置了 mathbackground 的节点上返回背景色，避免子节点重复填充。
func explicitBackground(w *Wrapper) string {
	v, _ := w.Node.Explicit("mathbackground")
	return v
}
