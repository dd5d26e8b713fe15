package layout

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/notation"
)

// layouter 计算某一类节点的包围盒，并记录子节点位置与自身绘制指令。
// 每种节点类型一个实现，通过组合而非继承复用公共逻辑。
type layouter interface {
	layout(w *Wrapper) BBox
}

// Wrapper 与记号节点一一对应，由父包装节点独占；Node 与 Parent 为非拥有引用。
type Wrapper struct {
	Node     *notation.Node
	Parent   *Wrapper
	Children []*Wrapper

	// RScale 是相对父节点的字号比例，Scale 是相对根字号的绝对比例。
	RScale float64
	Scale  float64
	// Paint 供渲染后端保存私有数据，布局阶段不读取。
	Paint any

	eng        *engine
	lay        layouter
	sizeFactor float64

	bbox     BBox
	computed bool
	offsets  []Point
	ops      []drawOp

	pct     *percentWidth
	stretch *Stretched
	table   *TableGeometry
	// cellWidth 由表格布局设置，为单元格所在列宽（单元格 em）；<0 表示未设置。
	cellWidth float64
	// errorBox 表示该节点替代了一个结构错误的子树。
	errorBox bool
}

// BBox 返回节点的包围盒（节点自身 em 单位），结果被缓存直到 Invalidate。
// 百分比宽度尚未解析的节点返回暂定盒且 Computed 保持 false。
func (w *Wrapper) BBox() BBox {
	if w.computed {
		return w.bbox
	}
	w.offsets = make([]Point, len(w.Children))
	w.ops = w.ops[:0]
	w.stretch = nil
	w.bbox = w.lay.layout(w)
	w.computed = w.pct == nil || w.pct.resolved
	return w.bbox
}

// Computed reports whether the cached box is final.
func (w *Wrapper) Computed() bool { return w.computed }

// Invalidate 使该节点及其子树的缓存失效，并沿父链向上使祖先失效；
// 兄弟子树的缓存保持不变。
func (w *Wrapper) Invalidate() {
	w.invalidateDown()
	for p := w.Parent; p != nil; p = p.Parent {
		p.computed = false
	}
}

func (w *Wrapper) invalidateDown() {
	w.computed = false
	for _, c := range w.Children {
		c.invalidateDown()
	}
}

// setBox 由父节点直接确定子节点的盒子（表格行、拉伸后的运算符）。
func (w *Wrapper) setBox(b BBox) {
	w.bbox = b
	w.computed = true
}

// Offset 返回第 i 个子节点原点相对本节点原点的位置（本节点 em）。
func (w *Wrapper) Offset(i int) Point {
	if i < 0 || i >= len(w.offsets) {
		return Point{}
	}
	return w.offsets[i]
}

// Stretched returns the stretch result of a stretchy operator, if any.
func (w *Wrapper) Stretched() *Stretched { return w.stretch }

// Table returns the geometry computed for an mtable wrapper.
func (w *Wrapper) Table() *TableGeometry { return w.table }

// IsErrorBox reports whether the wrapper substitutes a broken subtree.
func (w *Wrapper) IsErrorBox() bool { return w.errorBox }

// child 返回第 i 个子节点换算到本节点单位的盒子。
func (w *Wrapper) child(i int) BBox {
	c := w.Children[i]
	return c.BBox().Scaled(c.RScale)
}

func (w *Wrapper) place(i int, x, y float64) {
	w.offsets[i] = Point{X: x, Y: y}
}

func (w *Wrapper) addGlyph(g Glyph, x, y float64) {
	w.ops = append(w.ops, drawOp{kind: opGlyph, at: Point{X: x, Y: y}, glyph: g})
}

func (w *Wrapper) addRect(r Rect) {
	w.ops = append(w.ops, drawOp{kind: opRect, rect: r})
}

func (w *Wrapper) addLine(l Line) {
	w.ops = append(w.ops, drawOp{kind: opLine, line: l})
}

func (w *Wrapper) params() fontdata.Params { return w.eng.store.Params }

func (w *Wrapper) metrics() Metrics {
	return Metrics{XHeight: w.eng.store.Params.XHeight, EmPt: w.eng.opts.FontSize * w.Scale}
}

func (w *Wrapper) display() bool { return w.Node.DisplayStyle() }

// ruleThickness 返回默认线宽（em）。
func (w *Wrapper) ruleThickness() float64 { return w.params().RuleThickness }

// color 返回生效的 mathcolor。
func (w *Wrapper) color() string { return w.Node.Attr("mathcolor") }

// length 解析长度属性；非法值记录 AttributeConfigError 并改用类型默认值。
// ok 为 false 表示属性为空（例如 mpadded 未设置 width）。
func (w *Wrapper) length(attr string, ref float64) (float64, bool) {
	v := strings.TrimSpace(w.Node.Attr(attr))
	if v == "" {
		return 0, false
	}
	l, err := ParseLength(v)
	if err != nil {
		def := w.Node.KindDefault(attr)
		w.eng.fail(w.Node.Repair(attr, v, def))
		if l, err = ParseLength(def); err != nil {
			return 0, false
		}
	}
	return l.ToEm(w.metrics(), ref), true
}

// list 解析空白分隔的属性列表并按 n 项修复：不足时重复最后一项，多余的忽略。
func (w *Wrapper) list(attr string, n int) []string {
	raw := strings.Fields(w.Node.Attr(attr))
	if len(raw) == 0 {
		raw = strings.Fields(w.Node.KindDefault(attr))
	}
	if len(raw) == 0 || n <= 0 {
		return make([]string, max(n, 0))
	}
	if len(raw) != n && n > 0 {
		w.eng.log.Debug("repair attribute list",
			zap.String("path", w.Node.Path()),
			zap.String("attr", attr),
			zap.Int("have", len(raw)),
			zap.Int("want", n))
	}
	out := make([]string, n)
	for i := range out {
		if i < len(raw) {
			out[i] = raw[i]
		} else {
			out[i] = raw[len(raw)-1]
		}
	}
	return out
}

// engine 保存一次 Build 的共享状态。
type engine struct {
	opts    Options
	store   *fontdata.Store
	asm     *Assembler
	log     *zap.Logger
	err     error
	seen    map[string]bool
	pending []*Wrapper
}

// fail 记录可恢复的错误；重新布局时重复出现的同一错误只记录一次。
func (e *engine) fail(err error) {
	for _, one := range multierr.Errors(err) {
		if e.seen == nil {
			e.seen = map[string]bool{}
		}
		if e.seen[one.Error()] {
			continue
		}
		e.seen[one.Error()] = true
		e.err = multierr.Append(e.err, one)
	}
}

// scaleFor 计算节点的绝对字号比例：scriptlevel 决定的缩放（不低于
// scriptminsize）乘以祖先链上显式 mathsize 的累积系数。
func (e *engine) scaleFor(n *notation.Node, parent *Wrapper) (scale, factor float64) {
	factor = 1
	if parent != nil {
		factor = parent.sizeFactor
	}
	if v, ok := n.Explicit("mathsize"); ok {
		factor *= e.mathsize(n, v)
	}
	mult := e.opts.ScriptSizeMultiplier
	if v := inheritedOrExplicit(n, "scriptsizemultiplier"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			mult = f
		}
	}
	minSize := e.opts.ScriptMinSize
	if v := inheritedOrExplicit(n, "scriptminsize"); v != "" {
		if l, err := ParseLength(v); err == nil && l.Unit != UnitPercent {
			minSize = l.ToEm(Metrics{XHeight: e.store.Params.XHeight, EmPt: e.opts.FontSize}, 1)
		}
	}
	level := n.ScriptLevel()
	ls := math.Pow(mult, float64(level))
	if level > 0 && ls < minSize {
		ls = minSize
	}
	return ls * factor, factor
}

func (e *engine) mathsize(n *notation.Node, v string) float64 {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "normal":
		return 1
	case "small":
		return 0.85
	case "big":
		return 1.2
	}
	l, err := ParseLength(v)
	if err != nil {
		e.fail(n.Repair("mathsize", v, "normal"))
		return 1
	}
	if l.Unit == UnitPercent || l.Unit == UnitNone {
		return l.ToEm(Metrics{}, 1)
	}
	return l.ToEm(Metrics{XHeight: e.store.Params.XHeight, EmPt: e.opts.FontSize}, 1)
}

func inheritedOrExplicit(n *notation.Node, attr string) string {
	if v, ok := n.Explicit(attr); ok {
		return v
	}
	v, _ := n.Inherited(attr)
	return v
}
