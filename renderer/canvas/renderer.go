package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/ByLCY/mathbox/fonts"
	"github.com/ByLCY/mathbox/layout"
	"github.com/ByLCY/mathbox/renderer"
)

// Format 选择输出格式。
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// DefaultMargin 是表达式四周的留白（em）。
const DefaultMargin = 0.25

// stackGap 是 RenderAll 在同一画布上排列多个表达式时的间距（em）。
const stackGap = 1.0

// measureSize 是测量缺失字符时使用的字号（pt），结果按 em 归一化。
const measureSize = 10.0

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	format Format
	margin float64
	title  string
	log    *zap.Logger

	fontMu   sync.Mutex
	families map[fonts.Face]*canvas.FontFamily
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Format Format
	// Margin 为负时不留白；零值使用 DefaultMargin。
	Margin float64
	// Title 写入 PDF 元数据。
	Title  string
	Logger *zap.Logger
}

// NewRenderer creates a renderer for the given format with default options.
func NewRenderer(format Format) *Renderer { return NewRendererWithOptions(Options{Format: format}) }

// NewRendererWithOptions creates a renderer.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	switch {
	case opts.Margin == 0:
		opts.Margin = DefaultMargin
	case opts.Margin < 0:
		opts.Margin = 0
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Renderer{
		format:   opts.Format,
		margin:   opts.Margin,
		title:    opts.Title,
		log:      opts.Logger,
		families: map[fonts.Face]*canvas.FontFamily{},
	}
}

// Render renders a single expression.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	return r.RenderAll([]*layout.Result{result})
}

// RenderAll renders several expressions: one page each for PDF, stacked
// top to bottom on one canvas for SVG.
func (r *Renderer) RenderAll(results []*layout.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("缺少可渲染的表达式")
	}
	frames := make([]renderer.Frame, len(results))
	for i, res := range results {
		f, err := renderer.FrameOf(res, r.margin)
		if err != nil {
			return nil, err
		}
		frames[i] = f
	}
	switch r.format {
	case FormatPDF:
		return r.renderPDF(results, frames)
	case FormatSVG:
		return r.renderSVG(results, frames)
	}
	return nil, fmt.Errorf("不支持的输出格式 %q", r.format)
}

func (r *Renderer) renderPDF(results []*layout.Result, frames []renderer.Frame) ([]byte, error) {
	var buf bytes.Buffer
	var writer *pdf.PDF
	for i, res := range results {
		unit := unitOf(res)
		w, h := frames[i].Width*unit, frames[i].Height*unit
		if i == 0 {
			writer = pdf.New(&buf, w, h, nil)
			writer.SetInfo(r.title, "", "", "", "mathbox")
		} else {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		if err := r.draw(ctx, res, frames[i].Margin*unit, frames[i].Baseline*unit); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderSVG(results []*layout.Result, frames []renderer.Frame) ([]byte, error) {
	// 所有表达式共用第一个结果的字号换算。
	unit := unitOf(results[0])
	width, height, bottoms := renderer.Stack(frames, stackGap)
	c := canvas.New(width*unit, height*unit)
	ctx := canvas.NewContext(c)
	for i, res := range results {
		scale := unitOf(res) / unit
		ctx.Push()
		ctx.ComposeView(canvas.Identity.Translate(0, bottoms[i]*unit).Scale(scale, scale))
		err := r.draw(ctx, res, frames[i].Margin*unit, frames[i].Baseline*unit)
		ctx.Pop()
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := svg.New(&buf, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 SVG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// draw 输出一个表达式，(x0, y0) 是根节点基线左端在画布中的位置（mm）。
func (r *Renderer) draw(ctx *canvas.Context, res *layout.Result, x0, y0 float64) error {
	d := &drawer{r: r, ctx: ctx, unit: unitOf(res), fontSize: res.FontSize, x0: x0, y0: y0}
	used, err := layout.Emit(res, d)
	if err != nil {
		return err
	}
	r.log.Debug("canvas render",
		zap.String("format", string(r.format)),
		zap.Int("glyphs", len(used.Used())))
	return nil
}

// MeasureText 实现 layout.TextMeasurer，为字体表缺失的字符提供尺寸（em）。
// 高度与深度取字体的上升部与下降部。
func (r *Renderer) MeasureText(text string, variant string) (h, d, w float64, ok bool) {
	family, err := r.family(fonts.ForVariant(variant))
	if err != nil {
		r.log.Warn("measure text", zap.String("variant", variant), zap.Error(err))
		return 0, 0, 0, false
	}
	face := family.Face(measureSize, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	em := measureSize * layout.PtToMm
	m := face.Metrics()
	return m.Ascent / em, m.Descent / em, face.TextWidth(text) / em, true
}

func (r *Renderer) family(f fonts.Face) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if fam, ok := r.families[f]; ok {
		return fam, nil
	}
	data, err := fonts.Load(string(f))
	if err != nil {
		return nil, err
	}
	fam := canvas.NewFontFamily(string(f))
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", f, err)
	}
	r.families[f] = fam
	return fam, nil
}

// drawer 实现 layout.Emitter，把根 em 坐标换算为画布毫米坐标。
type drawer struct {
	r        *Renderer
	ctx      *canvas.Context
	unit     float64 // mm per em
	fontSize float64
	x0, y0   float64
}

func (d *drawer) pos(p layout.Point) (float64, float64) {
	return d.x0 + p.X*d.unit, d.y0 + p.Y*d.unit
}

func (d *drawer) EmitGlyph(g layout.Glyph, at layout.Point) error {
	family, err := d.r.family(fonts.ForVariant(g.Variant))
	if err != nil {
		return err
	}
	text := g.Text
	if text == "" {
		text = string(g.Char)
	}
	face := family.Face(g.Size*d.fontSize, parseColor(g.Color), canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, text, canvas.Left)
	x, y := d.pos(at)
	if g.ScaleX == 0 && g.ScaleY == 0 {
		d.ctx.DrawText(x, y, line)
		return nil
	}
	sx, sy := nonZero(g.ScaleX), nonZero(g.ScaleY)
	d.ctx.Push()
	d.ctx.ComposeView(canvas.Identity.Translate(x, y).Scale(sx, sy))
	d.ctx.DrawText(0, 0, line)
	d.ctx.Pop()
	return nil
}

func (d *drawer) EmitRect(rc layout.Rect) error {
	x, y := d.pos(layout.Point{X: rc.X, Y: rc.Y})
	w, h := rc.W*d.unit, rc.H*d.unit
	col := parseColor(rc.Color)

	var path *canvas.Path
	switch {
	case rc.Ellipse:
		path = canvas.Ellipse(w/2, h/2)
		x, y = x+w/2, y+h/2
	case rc.Radius > 0:
		path = canvas.RoundedRectangle(w, h, rc.Radius*d.unit)
	default:
		path = canvas.Rectangle(w, h)
	}

	if rc.Fill {
		d.ctx.SetFillColor(col)
		d.ctx.SetStrokeColor(canvas.Transparent)
	} else {
		d.ctx.SetFillColor(canvas.Transparent)
		d.ctx.SetStrokeColor(col)
		d.ctx.SetStrokeWidth(rc.Stroke * d.unit)
		if rc.Dashed {
			d.ctx.SetDashes(0, 3*rc.Stroke*d.unit, 2*rc.Stroke*d.unit)
		}
	}
	d.ctx.DrawPath(x, y, path)
	d.ctx.SetDashes(0)
	return nil
}

// arrowSize 是箭头长度与线宽的比例。
const arrowSize = 4.0

func (d *drawer) EmitLine(l layout.Line) error {
	x1, y1 := d.pos(layout.Point{X: l.X1, Y: l.Y1})
	x2, y2 := d.pos(layout.Point{X: l.X2, Y: l.Y2})
	t := l.Thickness * d.unit
	col := parseColor(l.Color)

	d.ctx.SetFillColor(canvas.Transparent)
	d.ctx.SetStrokeColor(col)
	d.ctx.SetStrokeWidth(t)
	if l.Dashed {
		d.ctx.SetDashes(0, 3*t, 2*t)
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	d.ctx.DrawPath(x1, y1, p)
	d.ctx.SetDashes(0)

	if l.Arrow {
		d.arrowHead(x1, y1, x2, y2, t, col)
	}
	return nil
}

func (d *drawer) arrowHead(x1, y1, x2, y2, t float64, col color.Color) {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	size := arrowSize * t
	bx, by := -ux*size, -uy*size
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(bx-uy*size/2, by+ux*size/2)
	p.LineTo(bx+uy*size/2, by-ux*size/2)
	p.Close()
	d.ctx.SetFillColor(col)
	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.DrawPath(x2, y2, p)
}

func (d *drawer) EmitComposite(info layout.CompositeInfo, at layout.Point, emitChildren func() error) error {
	return emitChildren()
}

func unitOf(res *layout.Result) float64 {
	size := res.FontSize
	if size <= 0 {
		size = layout.DefaultFontSize
	}
	return size * layout.PtToMm
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// parseColor 接受 #rgb、#rrggbb、#rrggbbaa 以及 SVG 颜色名，未知值按黑色处理。
func parseColor(s string) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return canvas.Black
	}
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 7, 9:
			return canvas.Hex(s)
		}
		return canvas.Black
	}
	if s == "transparent" {
		return canvas.Transparent
	}
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	return canvas.Black
}
