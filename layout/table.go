package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/mathbox/notation"
)

// 表格线的默认粗细（em）。
const tableLineThickness = 0.07

// TableGeometry 记录表格布局的结果（表格 em），供渲染与调试输出使用。
type TableGeometry struct {
	Columns []ColumnGeometry `json:"columns"`
	Rows    []RowGeometry    `json:"rows"`
	// Width 不含标签列。
	Width      float64 `json:"width"`
	LabelWidth float64 `json:"labelWidth,omitempty"`
	Side       string  `json:"side,omitempty"`
}

// ColumnGeometry 是一列的左边界与宽度。
type ColumnGeometry struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// RowGeometry 是一行的基线位置、高度与深度。
type RowGeometry struct {
	Y float64 `json:"y"`
	H float64 `json:"h"`
	D float64 `json:"d"`
}

// tableRow 是表格中的一行：mtr/mlabeledtr 的包装节点，或者直接作为单格行的子节点。
type tableRow struct {
	index int
	w     *Wrapper
	cells []int
	label int
	// scale 把行内单位换算到表格单位。
	scale float64
}

func (r *tableRow) cell(j int) *Wrapper {
	if r.w == nil {
		return nil
	}
	return r.w.Children[r.cells[j]]
}

// tableLayout 处理 mtable：补齐短行、确定列宽与行高、插入间距与表格线，
// 最后按 align 属性确定表格相对基线的位置。
type tableLayout struct{}

func (tableLayout) layout(w *Wrapper) BBox {
	p := w.params()
	rows := collectRows(w)
	m := len(rows)
	n := 0
	for _, r := range rows {
		if r.w == nil {
			n = max(n, 1)
		} else {
			n = max(n, len(r.cells))
		}
	}
	geo := &TableGeometry{Side: w.Node.Attr("side")}
	w.table = geo
	if m == 0 {
		return BBox{}
	}

	// 单元格盒子（表格单位），短行补空单元格。
	boxes := make([][]BBox, m)
	for i, r := range rows {
		boxes[i] = make([]BBox, n)
		if r.w == nil {
			boxes[i][0] = w.child(r.index)
			continue
		}
		r.w.BBox()
		for j := range r.cells {
			c := r.cell(j)
			boxes[i][j] = c.BBox().Scaled(c.RScale * r.scale)
		}
	}

	colSpacing := w.lengths("columnspacing", max(n-1, 0))
	rowSpacing := w.lengths("rowspacing", max(m-1, 0))
	frame := w.Node.Attr("frame")
	frameH, frameV := 0.0, 0.0
	if frame != "" && frame != "none" {
		fs := w.lengths("framespacing", 2)
		frameH, frameV = fs[0], fs[1]
	}

	widths := columnWidths(w, boxes, n)
	tableWidth, fixedWidth := w.tableWidth()
	content := 2 * frameH
	for j := range widths {
		content += widths[j]
		if j < n-1 {
			content += colSpacing[j]
		}
	}
	if fixedWidth && tableWidth > content {
		distributeSurplus(w, widths, tableWidth-content)
		content = tableWidth
	}

	// 行高与行深。
	rowAligns := w.list("rowalign", m)
	heights := make([]float64, m)
	depths := make([]float64, m)
	a := p.AxisHeight
	for i, r := range rows {
		h, d, total := 0.0, 0.0, 0.0
		for j := 0; j < n; j++ {
			if r.w != nil && j >= len(r.cells) {
				continue
			}
			cb := boxes[i][j]
			switch cellRowAlign(r, j, rowAligns[i]) {
			case "baseline":
				h, d = math.Max(h, cb.H), math.Max(d, cb.D)
			case "axis":
				y := a - (cb.H-cb.D)/2
				h, d = math.Max(h, cb.H+y), math.Max(d, cb.D-y)
			default:
				total = math.Max(total, cb.H+cb.D)
			}
		}
		if r.w != nil && r.label >= 0 {
			lb := r.w.Children[r.label].BBox().Scaled(r.w.Children[r.label].RScale * r.scale)
			h, d = math.Max(h, lb.H), math.Max(d, lb.D)
		}
		h, d = extendHD(h, d, total)
		heights[i], depths[i] = h, d
	}
	if w.Node.Bool("equalrows") {
		hd := 0.0
		for i := range heights {
			hd = math.Max(hd, heights[i]+depths[i])
		}
		for i := range heights {
			heights[i], depths[i] = extendHD(heights[i], depths[i], hd)
		}
	}

	// 表格总高度与各行基线（相对表格顶部向下的距离）。
	baselines := make([]float64, m)
	cursor := frameV
	for i := range rows {
		baselines[i] = cursor + heights[i]
		cursor += heights[i] + depths[i]
		if i < m-1 {
			cursor += rowSpacing[i]
		}
	}
	total := cursor + frameV
	H := w.tableAlign(total, heights, depths, baselines)

	// 标签列。
	labelW := 0.0
	hasLabels := false
	for _, r := range rows {
		if r.w != nil && r.label >= 0 {
			hasLabels = true
			lb := r.w.Children[r.label].BBox().Scaled(r.w.Children[r.label].RScale * r.scale)
			labelW = math.Max(labelW, lb.Advance())
		}
	}
	labelGap := 0.0
	if hasLabels {
		labelGap, _ = w.length("minlabelspacing", 0)
	}
	bodyX := 0.0
	side := w.Node.Attr("side")
	if hasLabels && strings.HasPrefix(side, "left") {
		bodyX = labelW + labelGap
	}

	// 列位置。
	colX := make([]float64, n)
	x := frameH
	for j := 0; j < n; j++ {
		colX[j] = x
		x += widths[j]
		if j < n-1 {
			x += colSpacing[j]
		}
	}
	geo.Width = content
	geo.LabelWidth = labelW
	for j := 0; j < n; j++ {
		geo.Columns = append(geo.Columns, ColumnGeometry{X: colX[j], Width: widths[j]})
	}

	// 放置行与单元格。
	colAligns := w.list("columnalign", n)
	for i, r := range rows {
		y := H - baselines[i]
		geo.Rows = append(geo.Rows, RowGeometry{Y: y, H: heights[i], D: depths[i]})
		if r.w == nil {
			cb := boxes[i][0]
			w.place(r.index, bodyX+colX[0]+alignOffset(widths[0], cb.Advance(), colAligns[0])+cb.L, y)
			w.Children[r.index].cellWidth = widths[0] / w.Children[r.index].RScale
			continue
		}
		w.place(r.index, bodyX, y)
		for j := range r.cells {
			c := r.cell(j)
			cb := boxes[i][j]
			cx := colX[j] + alignOffset(widths[j], cb.Advance(), cellColumnAlign(r, j, colAligns[j])) + cb.L
			cy := 0.0
			switch cellRowAlign(r, j, rowAligns[i]) {
			case "axis":
				cy = a - (cb.H-cb.D)/2
			case "top":
				cy = heights[i] - cb.H
			case "bottom":
				cy = cb.D - depths[i]
			case "center":
				cy = (heights[i]-depths[i])/2 - (cb.H-cb.D)/2
			}
			r.w.offsets[r.cells[j]] = Point{X: cx / r.scale, Y: cy / r.scale}
			c.cellWidth = widths[j] / (c.RScale * r.scale)
		}
		if r.label >= 0 {
			lw := r.w.Children[r.label]
			lb := lw.BBox().Scaled(lw.RScale * r.scale)
			lx := content + labelGap + (labelW-lb.Advance()) + lb.L
			if strings.HasPrefix(side, "left") {
				lx = -bodyX + lb.L
			}
			r.w.offsets[r.label] = Point{X: lx / r.scale}
		}
		r.w.setBox(BBox{H: heights[i] / r.scale, D: depths[i] / r.scale, W: content / r.scale})
	}

	w.tableLines(rows, heights, depths, baselines, colX, widths, H, total, bodyX, content, frame)

	b := BBox{H: H, D: total - H, W: content}
	if hasLabels {
		b.W += labelW + labelGap
	}
	return b
}

// collectRows 识别表格的行：非 mtr 子节点视为单格行，mlabeledtr 的第一个子节点是标签。
func collectRows(w *Wrapper) []*tableRow {
	var rows []*tableRow
	for i, c := range w.Children {
		switch c.Node.Kind {
		case notation.KindTableRow, notation.KindLabeledRow:
			r := &tableRow{index: i, w: c, label: -1, scale: c.RScale}
			for j := range c.Children {
				if j == 0 && c.Node.Kind == notation.KindLabeledRow {
					r.label = 0
					continue
				}
				r.cells = append(r.cells, j)
			}
			rows = append(rows, r)
		default:
			rows = append(rows, &tableRow{index: i, label: -1, scale: 1})
		}
	}
	return rows
}

// extendHD 在 h+d 小于 total 时把差值平分到高度与深度。
func extendHD(h, d, total float64) (float64, float64) {
	if diff := total - (h + d); diff > 0 {
		h += diff / 2
		d += diff / 2
	}
	return h, d
}

// cellRowAlign 按 mtd > mtr > 表格列表 的优先级确定单元格的 rowalign。
func cellRowAlign(r *tableRow, j int, tableValue string) string {
	if r.w == nil {
		return tableValue
	}
	if v, ok := r.cell(j).Node.Explicit("rowalign"); ok {
		return v
	}
	if v, ok := r.w.Node.Explicit("rowalign"); ok {
		return v
	}
	return tableValue
}

// cellColumnAlign 按 mtd > mtr 列表 > 表格列表 的优先级确定 columnalign。
func cellColumnAlign(r *tableRow, j int, tableValue string) string {
	if v, ok := r.cell(j).Node.Explicit("columnalign"); ok {
		return v
	}
	if v, ok := r.w.Node.Explicit("columnalign"); ok {
		fields := strings.Fields(v)
		if len(fields) > 0 {
			return fields[min(j, len(fields)-1)]
		}
	}
	return tableValue
}

// columnWidths 计算各列宽度：auto 与 fit 取自然宽度，长度为固定宽度，
// 百分比相对于表格宽度（未指定宽度时退回自然宽度）。
func columnWidths(w *Wrapper, boxes [][]BBox, n int) []float64 {
	widths := make([]float64, n)
	for _, row := range boxes {
		for j, cb := range row {
			widths[j] = math.Max(widths[j], cb.Advance())
		}
	}
	tableWidth, fixed := w.tableWidth()
	for j, spec := range w.list("columnwidth", n) {
		switch spec {
		case "auto", "fit", "":
			continue
		}
		l, err := ParseLength(spec)
		if err != nil {
			w.eng.fail(w.Node.Repair("columnwidth", spec, "auto"))
			continue
		}
		if l.IsPercent() {
			if fixed {
				widths[j] = l.ToEm(w.metrics(), tableWidth)
			}
			continue
		}
		widths[j] = l.ToEm(w.metrics(), 0)
	}
	if w.Node.Bool("equalcolumns") {
		m := 0.0
		for _, v := range widths {
			m = math.Max(m, v)
		}
		for j := range widths {
			widths[j] = m
		}
	}
	return widths
}

// distributeSurplus 把多余宽度平分给 fit 列；没有 fit 列时平分给 auto 列。
func distributeSurplus(w *Wrapper, widths []float64, surplus float64) {
	specs := w.list("columnwidth", len(widths))
	for _, kind := range []string{"fit", "auto"} {
		var idx []int
		for j, s := range specs {
			if s == kind {
				idx = append(idx, j)
			}
		}
		if len(idx) == 0 {
			continue
		}
		for _, j := range idx {
			widths[j] += surplus / float64(len(idx))
		}
		return
	}
}

// tableWidth 返回表格的指定宽度；auto 或尚未解析的百分比返回 false。
func (w *Wrapper) tableWidth() (float64, bool) {
	if w.pct != nil {
		return w.pct.width, w.pct.resolved
	}
	v := strings.TrimSpace(w.Node.Attr("width"))
	if v == "" || v == "auto" {
		return 0, false
	}
	return w.length("width", 0)
}

// tableAlign 解析 align 属性（可带行号，负数从末行数起），返回表格在基线以上的高度。
func (w *Wrapper) tableAlign(total float64, heights, depths, baselines []float64) float64 {
	a := w.params().AxisHeight
	raw := strings.Fields(w.Node.Attr("align"))
	align := "axis"
	row := 0
	if len(raw) > 0 {
		align = raw[0]
	}
	if len(raw) > 1 {
		r, err := strconv.Atoi(raw[1])
		if err != nil || r == 0 || abs(r) > len(heights) {
			w.eng.fail(w.Node.Repair("align", strings.Join(raw, " "), align))
		} else {
			row = r
		}
	}
	switch align {
	case "axis", "baseline", "center", "top", "bottom":
	default:
		w.eng.fail(w.Node.Repair("align", strings.Join(raw, " "), "axis"))
		align, row = "axis", 0
	}
	if row == 0 {
		switch align {
		case "axis":
			return total/2 + a
		case "top":
			return 0
		case "bottom":
			return total
		}
		return total / 2
	}
	i := row - 1
	if row < 0 {
		i = len(heights) + row
	}
	top := baselines[i] - heights[i]
	switch align {
	case "top":
		return top
	case "bottom":
		return baselines[i] + depths[i]
	case "center":
		return top + (heights[i]+depths[i])/2 + a
	}
	return baselines[i]
}

// tableLines 绘制行线、列线与外框，线条位于间隙中央。
func (w *Wrapper) tableLines(rows []*tableRow, heights, depths, baselines, colX, widths []float64, H, total, bodyX, content float64, frame string) {
	m, n := len(rows), len(widths)
	color := w.color()
	rowLines := w.list("rowlines", max(m-1, 0))
	for i := 0; i < m-1; i++ {
		if rowLines[i] == "none" {
			continue
		}
		bottom := baselines[i] + depths[i]
		next := baselines[i+1] - heights[i+1]
		y := H - (bottom+next)/2
		w.addLine(Line{X1: bodyX, Y1: y, X2: bodyX + content, Y2: y, Thickness: tableLineThickness,
			Dashed: rowLines[i] == "dashed", Color: color})
	}
	colLines := w.list("columnlines", max(n-1, 0))
	for j := 0; j < n-1; j++ {
		if colLines[j] == "none" {
			continue
		}
		x := bodyX + (colX[j]+widths[j]+colX[j+1])/2
		w.addLine(Line{X1: x, Y1: H, X2: x, Y2: H - total, Thickness: tableLineThickness,
			Dashed: colLines[j] == "dashed", Color: color})
	}
	if frame == "solid" || frame == "dashed" {
		w.addRect(Rect{X: bodyX, Y: H - total, W: content, H: total, Stroke: tableLineThickness,
			Dashed: frame == "dashed", Color: color})
	}
}

// lengths 解析长度列表属性并补齐到 n 项，非法项记录错误并使用类型默认值。
func (w *Wrapper) lengths(attr string, n int) []float64 {
	out := make([]float64, n)
	for i, s := range w.list(attr, n) {
		l, err := ParseLength(s)
		if err != nil {
			w.eng.fail(w.Node.Repair(attr, s, w.Node.KindDefault(attr)))
			def := strings.Fields(w.Node.KindDefault(attr))
			if len(def) == 0 {
				continue
			}
			l = ParseRawLengthStr(def[min(i, len(def)-1)])
		}
		out[i] = l.ToEm(w.metrics(), 0)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tableRowLayout 给出行在表格之外的自然布局：单元格以 0.8em 间距并排。
// 位于表格中时，表格布局会覆盖行的盒子与单元格位置。
type tableRowLayout struct{}

func (tableRowLayout) layout(w *Wrapper) BBox {
	b := BBox{}
	x := 0.0
	for i := range w.Children {
		cb := w.child(i)
		if i > 0 {
			x += 0.8
		}
		w.place(i, x+cb.L, 0)
		b.include(cb, x+cb.L, 0)
		x += cb.Advance()
	}
	b.W = x
	return b
}
