package notation

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/multierr"
)

// DefaultMaxScriptLevel 是自动缩小字号的最大层级（对应 TeX 的 scriptscript）。
const DefaultMaxScriptLevel = 2

// ResolveOptions 控制属性解析。
type ResolveOptions struct {
	// Display 强制根节点使用 display 样式；否则以 math 的 display 属性为准。
	Display bool
	// MaxScriptLevel 为 0 时使用 DefaultMaxScriptLevel。
	MaxScriptLevel int
}

// Resolve 对记号树做一次深度优先遍历：先序完成属性继承，后序完成 TeX 类的
// 确定，随后对每一行从左到右做 TeX 的上下文修正。
// 返回的错误由 *StructuralError 与 *AttributeConfigError 组成（multierr），
// 均不会中断其它子树的解析。
func Resolve(root *Node, opts ResolveOptions) error {
	if root == nil {
		return nil
	}
	Freeze(root)
	if opts.MaxScriptLevel <= 0 {
		opts.MaxScriptLevel = DefaultMaxScriptLevel
	}
	r := &resolver{opts: opts}
	display := opts.Display
	if root.Kind == KindMath && root.Attrs["display"] == "block" {
		display = true
	}
	r.inherit(root, map[string]string{}, style{display: display})
	r.classify(root)
	return r.err
}

type resolver struct {
	opts ResolveOptions
	err  error
}

func (r *resolver) fail(err error) {
	r.err = multierr.Append(r.err, err)
}

var booleanAttrs = map[string]bool{
	"displaystyle":  true,
	"stretchy":      true,
	"fence":         true,
	"symmetric":     true,
	"largeop":       true,
	"movablelimits": true,
	"accent":        true,
	"accentunder":   true,
	"separator":     true,
	"bevelled":      true,
	"equalrows":     true,
	"equalcolumns":  true,
}

var enumAttrs = map[string][]string{
	"numalign":   {"left", "center", "right"},
	"denomalign": {"left", "center", "right"},
	"side":       {"left", "right", "leftoverlap", "rightoverlap"},
	"display":    {"block", "inline"},
	"dir":        {"ltr", "rtl"},
	"form":       {"prefix", "infix", "postfix"},
	"align":      nil, // mtable 的 align 可带行号，在表格布局中校验
}

func (r *resolver) inherit(n *Node, from map[string]string, st style) {
	level, display := st.level, st.display
	n.inherited = map[string]string{}
	n.repaired = nil
	n.Broken = false
	for k, v := range from {
		if Inheritable(n.Kind, k) {
			n.inherited[k] = v
		}
	}
	r.validate(n)

	if v, ok := n.Attrs["displaystyle"]; ok && n.repaired["displaystyle"] == "" {
		display = v == "true"
	}
	if v, ok := n.Attrs["scriptlevel"]; ok {
		if lv, err := parseScriptLevel(v, level); err == nil {
			level = lv
		} else {
			r.repair(n, "scriptlevel", v, strconv.Itoa(level))
		}
	}
	level = clamp(level, 0, r.opts.MaxScriptLevel)
	n.level = level
	n.display = display
	n.cramped = st.cramped

	if !Known(n.Kind) {
		n.Broken = true
		r.fail(&StructuralError{Path: n.Path(), Kind: n.Kind, Want: -1, Got: len(n.Children)})
		return
	}
	if want := Arity(n.Kind); want >= 0 && len(n.Children) != want {
		n.Broken = true
		r.fail(&StructuralError{Path: n.Path(), Kind: n.Kind, Want: want, Got: len(n.Children)})
		return
	}

	next := make(map[string]string, len(n.inherited)+len(n.Attrs)+2)
	for k, v := range n.inherited {
		next[k] = v
	}
	for k, v := range n.Attrs {
		if inheritable[k] {
			next[k] = v
		}
	}
	for k, v := range n.repaired {
		if inheritable[k] {
			next[k] = v
		}
	}
	for i, c := range n.Children {
		cs := childStyle(n, i, style{level: level, display: display, cramped: st.cramped})
		cs.level = clamp(cs.level, 0, r.opts.MaxScriptLevel)
		next["scriptlevel"] = strconv.Itoa(cs.level)
		next["displaystyle"] = strconv.FormatBool(cs.display)
		r.inherit(c, next, cs)
	}
}

// style 是 TeX 样式：脚本层级、陈列与紧缩（cramped）。
type style struct {
	level   int
	display bool
	cramped bool
}

// childStyle 返回第 i 个子节点的样式（TeX 样式规则）。分子分母总是比父节点
// 高一级；分母、下标、根号内容、下方脚本以及重音下的底数进入紧缩样式，
// 紧缩一旦进入便沿子树传递。
func childStyle(n *Node, i int, st style) style {
	script := style{level: st.level + 1, cramped: st.cramped}
	switch n.Kind {
	case KindFrac:
		script.cramped = st.cramped || i == 1
		return script
	case KindSub, KindSup, KindSubSup:
		if i == 0 {
			return st
		}
		script.cramped = st.cramped || n.Kind != KindSup && i == 1
		return script
	case KindUnder, KindOver, KindUnderOver:
		if i == 0 {
			over := 1
			if n.Kind == KindUnderOver {
				over = 2
			}
			if n.Kind != KindUnder && n.ScriptAccent(over) {
				st.cramped = true
			}
			return st
		}
		under := n.Kind != KindOver && i == 1
		script.cramped = st.cramped || under
		if n.ScriptAccent(i) {
			script.level = st.level
		}
		return script
	case KindSqrt:
		st.cramped = true
		return st
	case KindRoot:
		if i == 1 {
			return style{level: st.level + 2, cramped: st.cramped}
		}
		st.cramped = true
		return st
	case KindTable:
		st.display = n.Attrs["displaystyle"] == "true"
		return st
	}
	return st
}

func (r *resolver) validate(n *Node) {
	for k, v := range n.Attrs {
		if booleanAttrs[k] {
			if v != "true" && v != "false" {
				r.repair(n, k, v, n.KindDefault(k))
			}
			continue
		}
		if allowed, ok := enumAttrs[k]; ok && allowed != nil {
			if !contains(allowed, v) {
				r.repair(n, k, v, n.KindDefault(k))
			}
			continue
		}
		switch k {
		case "scriptsizemultiplier":
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil || f <= 0 {
				r.repair(n, k, v, GlobalDefaults[k])
			}
		case "texClass":
			if _, ok := ParseTeXClass(v); !ok {
				r.repair(n, k, v, n.KindDefault(k))
			}
		}
	}
}

func (r *resolver) repair(n *Node, attr, value, used string) {
	if n.repaired == nil {
		n.repaired = map[string]string{}
	}
	n.repaired[attr] = used
	r.fail(&AttributeConfigError{Path: n.Path(), Kind: n.Kind, Attr: attr, Value: value, Used: used})
}

// Repair 记录布局阶段发现的非法属性值并返回对应错误，后续 Attr 调用返回替代值。
func (n *Node) Repair(attr, value, used string) error {
	if n.repaired == nil {
		n.repaired = map[string]string{}
	}
	n.repaired[attr] = used
	return &AttributeConfigError{Path: n.Path(), Kind: n.Kind, Attr: attr, Value: value, Used: used}
}

func parseScriptLevel(v string, inherited int) (int, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		d, err := strconv.Atoi(v)
		if err != nil {
			return 0, err
		}
		return inherited + d, nil
	}
	return strconv.Atoi(v)
}

// classify 后序确定 TeX 类：子节点（及其所在行的修正）先于父节点完成。
func (r *resolver) classify(n *Node) {
	if n.Broken {
		n.TeXClass = ClassOrd
		return
	}
	for _, c := range n.Children {
		r.classify(c)
	}
	if isRowLike(n) {
		adjustRow(n.Children)
	}
	n.TeXClass = r.ownClass(n)
}

func (r *resolver) ownClass(n *Node) TeXClass {
	switch n.Kind {
	case KindOperator:
		return OperatorInfo(n).Class
	case KindIdent:
		if isFunctionName(n.Text) {
			return ClassOp
		}
		return ClassOrd
	case KindNumber, KindText, KindString:
		return ClassOrd
	case KindSpace:
		return ClassNone
	case KindFrac:
		if n.IsEmbellishedOp() {
			return n.Children[0].TeXClass
		}
		return ClassInner
	case KindSub, KindSup, KindSubSup, KindUnder, KindOver, KindUnderOver:
		return n.Children[0].TeXClass
	case KindTeXAtom:
		c, _ := ParseTeXClass(n.Attr("texClass"))
		return c
	case KindRow, KindStyle, KindPadded, KindPhantom:
		var content []*Node
		for _, c := range n.Children {
			if c.TeXClass != ClassNone {
				content = append(content, c)
			}
		}
		switch {
		case len(content) == 1:
			return content[0].TeXClass
		case len(content) >= 2 && content[0].TeXClass == ClassOpen && content[len(content)-1].TeXClass == ClassClose:
			return ClassInner
		}
		return ClassOrd
	}
	return ClassOrd
}

func isRowLike(n *Node) bool {
	if n.Kind == KindRow || n.Kind == KindMath {
		return true
	}
	return spec(n.Kind).inferRow
}

// adjustRow 实现 TeX 的上下文修正：出现在行首或 Open/Bin/Rel/Punct/Op 之后的
// Bin 改为 Ord；紧接 Rel/Close/Punct 之前或位于行末的 Bin 也改为 Ord。
func adjustRow(children []*Node) {
	prev := ClassNone
	prevLevel := 0
	var prevNode *Node
	for _, c := range children {
		if c.TeXClass == ClassNone {
			c.PrevClass = prev
			c.PrevScriptLevel = prevLevel
			continue
		}
		if prevNode != nil && prevNode.TeXClass == ClassBin && oneOf(c.TeXClass, ClassRel, ClassClose, ClassPunct) {
			prevNode.setClass(ClassOrd)
			prev = ClassOrd
		}
		if c.TeXClass == ClassBin && oneOf(prev, ClassNone, ClassBin, ClassOp, ClassRel, ClassOpen, ClassPunct) {
			c.setClass(ClassOrd)
		}
		c.PrevClass = prev
		c.PrevScriptLevel = prevLevel
		prev = c.TeXClass
		prevLevel = c.ScriptLevel()
		prevNode = c
	}
	if prevNode != nil && prevNode.TeXClass == ClassBin {
		prevNode.setClass(ClassOrd)
	}
}

// setClass 同时更新嵌入式运算符的核心 mo，使两者保持一致。
func (n *Node) setClass(c TeXClass) {
	n.TeXClass = c
	if core := n.CoreOperator(); core != nil && core != n {
		core.TeXClass = c
	}
}

// OperatorForm 返回 mo 的形式：显式 form 属性优先，否则依据最外层嵌入式
// 运算符在所在行中的位置（首 prefix、尾 postfix、其余 infix）。
func OperatorForm(mo *Node) Form {
	if f := mo.Attr("form"); f != "" {
		return Form(f)
	}
	outer := mo.outermostEmbellished()
	p := outer.parent
	if p == nil || !isRowLike(p) {
		return FormInfix
	}
	var content []*Node
	for _, c := range p.Children {
		if !c.IsSpaceLike() {
			content = append(content, c)
		}
	}
	if len(content) <= 1 {
		return FormInfix
	}
	switch outer {
	case content[0]:
		return FormPrefix
	case content[len(content)-1]:
		return FormPostfix
	}
	return FormInfix
}

// OperatorInfo 返回 mo 的字典信息，并叠加显式属性（stretchy、largeop 等）。
func OperatorInfo(mo *Node) OpInfo {
	info, _ := LookupOperator(mo.Text, OperatorForm(mo))
	override := func(attr string, dst *bool) {
		if v, ok := mo.Attrs[attr]; ok && mo.repaired[attr] == "" {
			*dst = v == "true"
		}
	}
	override("stretchy", &info.Props.Stretchy)
	override("fence", &info.Props.Fence)
	override("symmetric", &info.Props.Symmetric)
	override("largeop", &info.Props.LargeOp)
	override("movablelimits", &info.Props.MovableLimits)
	override("accent", &info.Props.Accent)
	override("separator", &info.Props.Separator)
	return info
}

// ScriptAccent 判断 munder/mover/munderover 的第 i 个子节点是否作为重音：
// 显式的 accent/accentunder 属性优先，否则取脚本核心运算符的字典属性。
func (n *Node) ScriptAccent(i int) bool {
	attr := ""
	switch {
	case n.Kind == KindUnder && i == 1, n.Kind == KindUnderOver && i == 1:
		attr = "accentunder"
	case n.Kind == KindOver && i == 1, n.Kind == KindUnderOver && i == 2:
		attr = "accent"
	default:
		return false
	}
	if v := n.Attr(attr); v == "true" || v == "false" {
		return v == "true"
	}
	script := n.Child(i)
	if script == nil {
		return false
	}
	core := script.CoreOperator()
	if core == nil {
		return false
	}
	return OperatorInfo(core).Props.Accent
}

// MathVariant 返回 token 的字体变体；多字母 mi 默认使用正体。
func (n *Node) MathVariant() string {
	if v, ok := n.repaired["mathvariant"]; ok {
		return v
	}
	if v, ok := n.Attrs["mathvariant"]; ok {
		return v
	}
	if v, ok := n.inherited["mathvariant"]; ok {
		return v
	}
	if n.Kind == KindIdent && len([]rune(n.Text)) > 1 {
		return "normal"
	}
	return n.KindDefault("mathvariant")
}

func isFunctionName(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func oneOf(c TeXClass, set ...TeXClass) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
