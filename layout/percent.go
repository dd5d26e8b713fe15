package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/notation"
)

// percentWidth 记录一个依赖容器宽度的百分比宽度（mspace、mtable 的 width）。
// 第一阶段 resolved 为 false，节点给出暂定盒：mspace 宽度为 0，mtable 按 auto 排版。
type percentWidth struct {
	percent  float64
	resolved bool
	// width 是解析后的宽度（节点 em）。
	width float64
}

func newPercentWidth(w *Wrapper) *percentWidth {
	switch w.Node.Kind {
	case notation.KindSpace, notation.KindTable:
	default:
		return nil
	}
	v := strings.TrimSpace(w.Node.Attr("width"))
	if !strings.HasSuffix(v, "%") {
		return nil
	}
	l, err := ParseLength(v)
	if err != nil || !l.IsPercent() {
		return nil
	}
	return &percentWidth{percent: l.Value}
}

// resolvePercentages 是第二阶段：先按第一阶段的宽度为每个百分比节点确定容器，
// 再依次写入宽度，只使该节点子树与祖先路径失效，然后重算根节点。
func (e *engine) resolvePercentages(root *Wrapper) {
	if len(e.pending) == 0 {
		return
	}
	rootWidth := e.opts.ContainerWidth
	if rootWidth <= 0 {
		rootWidth = root.BBox().Advance()
	}
	type target struct {
		w      *Wrapper
		width  float64
		source string
	}
	targets := make([]target, 0, len(e.pending))
	for _, w := range e.pending {
		width, source := containerWidth(w, root, rootWidth)
		targets = append(targets, target{w: w, width: width, source: source})
	}
	for _, t := range targets {
		w := t.w
		w.pct.width = t.width * w.pct.percent / 100
		w.pct.resolved = true
		e.log.Debug("resolve percentage width",
			zap.String("path", w.Node.Path()),
			zap.Float64("percent", w.pct.percent),
			zap.String("container", t.source),
			zap.Float64("width", w.pct.width))
		w.Invalidate()
		root.BBox()
	}
}

// containerWidth 返回 w 的容器宽度（w 的 em）：最近的表格单元格取列宽；
// 其它祖先取第一阶段宽度，隐式行与宽度为 0 的祖先跳过；到达根节点时使用
// rootWidth（ContainerWidth 或根的自然宽度）。
func containerWidth(w, root *Wrapper, rootWidth float64) (float64, string) {
	for a := w.Parent; a != nil && a != root; a = a.Parent {
		if a.cellWidth >= 0 {
			return a.cellWidth * a.Scale / w.Scale, a.Node.Path()
		}
		if a.Node.Inferred {
			continue
		}
		if width := a.BBox().Advance(); width > 0 {
			return width * a.Scale / w.Scale, a.Node.Path()
		}
	}
	return rootWidth * root.Scale / w.Scale, "root"
}
