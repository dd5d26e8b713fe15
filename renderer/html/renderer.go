// Package htmlrenderer 把布局结果输出为绝对定位的 HTML 片段。
// 字形以 span 表示；CSS 只包含本次输出实际用到的变体规则。
package htmlrenderer

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/mathbox/layout"
	"github.com/ByLCY/mathbox/notation"
	"github.com/ByLCY/mathbox/renderer"
)

// Options configures the HTML renderer.
type Options struct {
	// Standalone 为 true 时输出完整文档，否则输出 <style> 加容器片段。
	Standalone bool
	// Margin 单位 em，负值表示不留白。
	Margin float64
	// ClassPrefix 为所有类名加前缀，默认 "mb"。
	ClassPrefix string
	// Measurer 为字体表缺失的字符提供尺寸。样式表优先使用 Latin Modern，
	// 因此通常传入基于同一字体的画布测量器。
	Measurer layout.TextMeasurer
	Logger   *zap.Logger
}

// Renderer writes HTML.
type Renderer struct {
	opts Options
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

// NewRenderer creates an HTML renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.ClassPrefix == "" {
		opts.ClassPrefix = "mb"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Renderer{opts: opts}
}

// MeasureText 实现 layout.TextMeasurer，委托给 Options.Measurer；
// 未配置时 ok 为 false，布局改用默认盒子。
func (r *Renderer) MeasureText(text, variant string) (h, d, w float64, ok bool) {
	if r.opts.Measurer == nil {
		return 0, 0, 0, false
	}
	return r.opts.Measurer.MeasureText(text, variant)
}

// Render renders one expression.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	return r.RenderAll([]*layout.Result{result})
}

// RenderAll renders each expression into its own container; the style
// sheet is shared and covers the union of used variants.
func (r *Renderer) RenderAll(results []*layout.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("缺少可渲染的表达式")
	}
	used := map[string]bool{}
	var blocks []*html.Node
	for i, res := range results {
		block, ctx, err := r.block(res)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		for _, u := range ctx.Used() {
			used[u.Variant] = true
		}
		blocks = append(blocks, block)
	}

	style := element(atom.Style, "style")
	style.AppendChild(&html.Node{Type: html.TextNode, Data: r.stylesheet(used)})

	var buf bytes.Buffer
	if r.opts.Standalone {
		doc := &html.Node{Type: html.DocumentNode}
		doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
		root := element(atom.Html, "html")
		head := element(atom.Head, "head")
		meta := element(atom.Meta, "meta", html.Attribute{Key: "charset", Val: "utf-8"})
		head.AppendChild(meta)
		head.AppendChild(style)
		body := element(atom.Body, "body")
		for _, b := range blocks {
			body.AppendChild(b)
		}
		root.AppendChild(head)
		root.AppendChild(body)
		doc.AppendChild(root)
		if err := html.Render(&buf, doc); err != nil {
			return nil, fmt.Errorf("写入 HTML 失败: %w", err)
		}
		return buf.Bytes(), nil
	}

	nodes := append([]*html.Node{style}, blocks...)
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("写入 HTML 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) block(res *layout.Result) (*html.Node, *layout.RenderContext, error) {
	frame, err := renderer.FrameOf(res, r.opts.Margin)
	if err != nil {
		return nil, nil, err
	}
	size := res.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}
	cls := r.cls("math")
	if res.Display {
		cls += " " + r.cls("display")
	}
	container := element(atom.Div, "div",
		html.Attribute{Key: "class", Val: cls},
		html.Attribute{Key: "style", Val: css(
			"width", em(frame.Width),
			"height", em(frame.Height),
			"font-size", num(size)+"pt",
			"vertical-align", em(-frame.Baseline),
		)},
	)
	b := &builder{r: r, stack: []*html.Node{container}, x0: frame.Margin, y0: frame.Baseline}
	ctx, err := layout.Emit(res, b)
	if err != nil {
		return nil, nil, err
	}
	r.opts.Logger.Debug("html render", zap.Int("glyphs", len(ctx.Used())), zap.Int("variants", len(variantsOf(ctx))))
	return container, ctx, nil
}

func variantsOf(ctx *layout.RenderContext) []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range ctx.Used() {
		if !seen[u.Variant] {
			seen[u.Variant] = true
			out = append(out, u.Variant)
		}
	}
	return out
}

func (r *Renderer) cls(name string) string { return r.opts.ClassPrefix + "-" + name }

// variantFonts 是变体到 CSS 字体声明的映射。
var variantFonts = map[string][]string{
	"normal":                 {"font-family", `"Latin Modern Roman", "Times New Roman", serif`},
	"italic":                 {"font-family", `"Latin Modern Roman", "Times New Roman", serif`, "font-style", "italic"},
	"bold":                   {"font-family", `"Latin Modern Roman", "Times New Roman", serif`, "font-weight", "bold"},
	"bold-italic":            {"font-family", `"Latin Modern Roman", "Times New Roman", serif`, "font-weight", "bold", "font-style", "italic"},
	"double-struck":          {"font-family", `"Latin Modern Roman", serif`, "font-weight", "bold"},
	"script":                 {"font-family", `"Latin Modern Roman", cursive`, "font-style", "italic"},
	"fraktur":                {"font-family", `"Latin Modern Roman", fantasy`},
	"sans-serif":             {"font-family", `"Latin Modern Sans", sans-serif`},
	"sans-serif-italic":      {"font-family", `"Latin Modern Sans", sans-serif`, "font-style", "oblique"},
	"bold-sans-serif":        {"font-family", `"Latin Modern Sans", sans-serif`, "font-weight", "bold"},
	"sans-serif-bold-italic": {"font-family", `"Latin Modern Sans", sans-serif`, "font-weight", "bold", "font-style", "oblique"},
	"monospace":              {"font-family", `"Latin Modern Mono", monospace`},
}

// stylesheet 生成基础规则以及 used 中变体的字体规则。
func (r *Renderer) stylesheet(used map[string]bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ".%s{display:inline-block;position:relative;line-height:0}", r.cls("math"))
	fmt.Fprintf(&sb, ".%s{display:block;margin:1em auto}", r.cls("display"))
	fmt.Fprintf(&sb, ".%s .%s{position:absolute;white-space:pre;line-height:0;transform-origin:0 0}", r.cls("math"), r.cls("g"))
	fmt.Fprintf(&sb, ".%s .%s{position:absolute;box-sizing:border-box}", r.cls("math"), r.cls("r"))
	fmt.Fprintf(&sb, ".%s .%s{position:absolute;transform-origin:0 50%%}", r.cls("math"), r.cls("l"))

	names := make([]string, 0, len(used))
	for v := range used {
		names = append(names, v)
	}
	sort.Strings(names)
	for _, v := range names {
		decl, ok := variantFonts[v]
		if !ok {
			decl = variantFonts["normal"]
		}
		fmt.Fprintf(&sb, ".%s .%s{%s}", r.cls("math"), r.cls("v-"+v), css(decl...))
	}
	return sb.String()
}

// builder 实现 layout.Emitter。坐标以容器左下角为原点，用 left/bottom 定位。
type builder struct {
	r      *Renderer
	stack  []*html.Node
	x0, y0 float64
}

func (b *builder) top() *html.Node { return b.stack[len(b.stack)-1] }

func (b *builder) EmitGlyph(g layout.Glyph, at layout.Point) error {
	text := g.Text
	if text == "" {
		text = string(g.Char)
	}
	// span 自身的 em 随 font-size 变化，位置需按字号折算回容器 em。
	size := nonZero(g.Size)
	props := []string{
		"left", em((b.x0 + at.X) / size),
		"bottom", em((b.y0 + at.Y) / size),
		"font-size", em(size),
	}
	if g.Color != "" {
		props = append(props, "color", g.Color)
	}
	if g.ScaleX != 0 || g.ScaleY != 0 {
		// 以基线左端为缩放原点
		props = append(props,
			"transform-origin", "0 100%",
			"transform", fmt.Sprintf("scale(%s,%s)", num(nonZero(g.ScaleX)), num(nonZero(g.ScaleY))))
	}
	span := element(atom.Span, "span",
		html.Attribute{Key: "class", Val: b.r.cls("g") + " " + b.r.cls("v-"+g.Variant)},
		html.Attribute{Key: "style", Val: css(props...)},
	)
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	b.top().AppendChild(span)
	return nil
}

func (b *builder) EmitRect(rc layout.Rect) error {
	color := rc.Color
	if color == "" {
		color = "currentColor"
	}
	props := []string{
		"left", em(b.x0 + rc.X),
		"bottom", em(b.y0 + rc.Y),
		"width", em(rc.W),
		"height", em(rc.H),
	}
	if rc.Fill {
		props = append(props, "background-color", color)
	} else {
		style := "solid"
		if rc.Dashed {
			style = "dashed"
		}
		props = append(props, "border", em(rc.Stroke)+" "+style+" "+color)
	}
	switch {
	case rc.Ellipse:
		props = append(props, "border-radius", "50%")
	case rc.Radius > 0:
		props = append(props, "border-radius", em(rc.Radius))
	}
	b.top().AppendChild(element(atom.Span, "span",
		html.Attribute{Key: "class", Val: b.r.cls("r")},
		html.Attribute{Key: "style", Val: css(props...)},
	))
	return nil
}

// EmitLine 用旋转后的细矩形表示线段，箭头用 data 属性标记，交给外部样式处理。
func (b *builder) EmitLine(l layout.Line) error {
	color := l.Color
	if color == "" {
		color = "currentColor"
	}
	dx, dy := l.X2-l.X1, l.Y2-l.Y1
	length := math.Hypot(dx, dy)
	angle := -math.Atan2(dy, dx) * 180 / math.Pi
	border := "solid"
	if l.Dashed {
		border = "dashed"
	}
	props := []string{
		"left", em(b.x0 + l.X1),
		"bottom", em(b.y0 + l.Y1 - l.Thickness/2),
		"width", em(length),
		"height", "0",
		"border-top", em(l.Thickness) + " " + border + " " + color,
	}
	if angle != 0 {
		props = append(props, "transform", "rotate("+num(angle)+"deg)")
	}
	attrs := []html.Attribute{
		{Key: "class", Val: b.r.cls("l")},
		{Key: "style", Val: css(props...)},
	}
	if l.Arrow {
		attrs = append(attrs, html.Attribute{Key: "data-arrow", Val: "end"})
	}
	b.top().AppendChild(element(atom.Span, "span", attrs...))
	return nil
}

// EmitComposite 为每个节点生成一个不定位的 span，保留种类、路径与 TeX 类，
// 便于调试与样式挂钩；子节点的绝对定位仍相对于容器。
func (b *builder) EmitComposite(info layout.CompositeInfo, at layout.Point, emitChildren func() error) error {
	cls := b.r.cls("n")
	if info.ErrorBox {
		cls += " " + b.r.cls("error")
	}
	attrs := []html.Attribute{
		{Key: "class", Val: cls},
		{Key: "data-kind", Val: string(info.Kind)},
		{Key: "data-path", Val: info.Path},
	}
	if info.Class != notation.ClassNone {
		attrs = append(attrs, html.Attribute{Key: "data-class", Val: info.Class.String()})
	}
	if info.Color != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: css("color", info.Color)})
	}
	span := element(atom.Span, "span", attrs...)
	b.top().AppendChild(span)
	b.stack = append(b.stack, span)
	err := emitChildren()
	b.stack = b.stack[:len(b.stack)-1]
	return err
}

func element(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag, Attr: attrs}
}

// css 把成对的属性名与值拼成声明列表。
func css(kv ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(kv[i])
		sb.WriteByte(':')
		sb.WriteString(kv[i+1])
	}
	return sb.String()
}

func em(v float64) string {
	if v == 0 {
		return "0"
	}
	return num(v) + "em"
}

// num 保留三位小数并去掉多余的零。
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
