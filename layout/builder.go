package layout

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/notation"
)

// Build 解析记号树的属性与 TeX 类，构建完整的包装树，然后计算包围盒：
// 第一阶段自底向上计算（百分比宽度暂定为 0），第二阶段把容器宽度下推，
// 解析百分比宽度并只重算受影响的路径。
//
// 返回的错误汇总了可恢复的问题（结构错误子树已被错误框替代、缺失度量、
// 非法属性），此时 Result 仍然有效；只有无法布局时 Result 才为 nil。
func Build(root *notation.Node, opts Options) (*Result, error) {
	if root == nil {
		return nil, fmt.Errorf("layout: 记号树为空")
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("layout: 加载字体度量失败: %w", err)
	}
	eng := &engine{
		opts:  opts,
		store: opts.Store,
		asm:   opts.Assembler,
		log:   opts.Logger,
	}
	eng.fail(notation.Resolve(root, notation.ResolveOptions{
		Display:        opts.Display,
		MaxScriptLevel: opts.MaxScriptLevel,
	}))
	for _, e := range multierr.Errors(eng.err) {
		var se *notation.StructuralError
		if errors.As(e, &se) {
			eng.log.Warn("structural error, substituting error box",
				zap.String("path", se.Path), zap.String("kind", string(se.Kind)))
		}
	}

	top := eng.build(root, nil)
	top.BBox()
	eng.resolvePercentages(top)

	return &Result{
		Root:     top,
		Display:  root.DisplayStyle(),
		FontSize: opts.FontSize,
	}, eng.err
}

// BuildAll 逐个布局多个表达式；某个表达式失败不影响其它表达式。
// 返回的切片与输入一一对应，失败的表达式对应 nil。
func BuildAll(roots []*notation.Node, opts Options) ([]*Result, error) {
	var errs error
	out := make([]*Result, len(roots))
	for i, r := range roots {
		res, err := Build(r, opts)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("expression %d: %w", i, err))
		}
		out[i] = res
	}
	return out, errs
}

// build 是构建阶段：一次性创建完整的包装树，之后的盒子计算不再修改树结构。
func (e *engine) build(n *notation.Node, parent *Wrapper) *Wrapper {
	w := &Wrapper{Node: n, Parent: parent, eng: e, cellWidth: -1}
	w.Scale, w.sizeFactor = e.scaleFor(n, parent)
	w.RScale = w.Scale
	if parent != nil && parent.Scale > 0 {
		w.RScale = w.Scale / parent.Scale
	}

	if n.Broken {
		w.errorBox = true
		w.lay = errorLayout{text: e.opts.ErrorText}
		return w
	}
	w.lay = layouterFor(n)
	// 先登记自身再递归，pending 保持先序。
	if pw := newPercentWidth(w); pw != nil {
		w.pct = pw
		e.pending = append(e.pending, w)
	}
	for _, c := range n.Children {
		w.Children = append(w.Children, e.build(c, w))
	}
	return w
}

func layouterFor(n *notation.Node) layouter {
	switch n.Kind {
	case notation.KindIdent, notation.KindNumber, notation.KindText, notation.KindString:
		return tokenLayout{}
	case notation.KindOperator:
		return operatorLayout{}
	case notation.KindRow:
		return rowLayout{}
	case notation.KindSpace:
		return spaceLayout{}
	case notation.KindFrac:
		return fracLayout{}
	case notation.KindSqrt:
		return radicalLayout{}
	case notation.KindRoot:
		return radicalLayout{index: true}
	case notation.KindSub, notation.KindSup, notation.KindSubSup:
		return scriptsLayout{}
	case notation.KindUnder, notation.KindOver, notation.KindUnderOver:
		return underOverLayout{}
	case notation.KindTable:
		return tableLayout{}
	case notation.KindTableRow, notation.KindLabeledRow:
		return tableRowLayout{}
	case notation.KindEnclose:
		return encloseLayout{}
	case notation.KindPadded:
		return paddedLayout{}
	case notation.KindError:
		return errorLayout{}
	case notation.KindTeXAtom:
		return wrapLayout{vcenter: true}
	}
	// math、mstyle、mphantom、mtd 只有一个（可能是隐式 mrow 的）子节点。
	return wrapLayout{}
}
