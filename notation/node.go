package notation

import (
	"strconv"
	"strings"
)

// Kind 是记号节点的类型标签（沿用 MathML 元素名）。
type Kind string

const (
	KindMath       Kind = "math"
	KindRow        Kind = "mrow"
	KindIdent      Kind = "mi"
	KindNumber     Kind = "mn"
	KindOperator   Kind = "mo"
	KindText       Kind = "mtext"
	KindString     Kind = "ms"
	KindSpace      Kind = "mspace"
	KindFrac       Kind = "mfrac"
	KindSqrt       Kind = "msqrt"
	KindRoot       Kind = "mroot"
	KindSub        Kind = "msub"
	KindSup        Kind = "msup"
	KindSubSup     Kind = "msubsup"
	KindUnder      Kind = "munder"
	KindOver       Kind = "mover"
	KindUnderOver  Kind = "munderover"
	KindTable      Kind = "mtable"
	KindTableRow   Kind = "mtr"
	KindLabeledRow Kind = "mlabeledtr"
	KindCell       Kind = "mtd"
	KindEnclose    Kind = "menclose"
	KindStyle      Kind = "mstyle"
	KindPadded     Kind = "mpadded"
	KindPhantom    Kind = "mphantom"
	KindError      Kind = "merror"
	KindTeXAtom    Kind = "TeXAtom"
)

// Node 是记号树中的一个节点。结构在 Freeze 之后不再变化；
// 继承属性、TeX 类等计算字段由 Resolve 每次重新填充。
type Node struct {
	Kind     Kind
	Text     string
	Attrs    map[string]string
	Children []*Node

	// Inferred 标记由 Freeze 合成的隐式 mrow。
	Inferred bool

	parent    *Node
	index     int
	inherited map[string]string
	repaired  map[string]string
	frozen    bool

	TeXClass        TeXClass
	PrevClass       TeXClass
	PrevScriptLevel int

	level   int
	display bool
	cramped bool
	// Broken 表示该子树存在结构错误，布局时会替换为错误框。
	Broken bool
}

// New creates a composite node.
func New(kind Kind, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Kind: kind, Attrs: attrs, Children: children}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	return n
}

// Token creates a token node (mi, mn, mo, mtext, ms) holding text.
func Token(kind Kind, text string, attrs map[string]string) *Node {
	n := New(kind, attrs)
	n.Text = text
	return n
}

// Parent returns the parent node, nil for the root or before Freeze.
func (n *Node) Parent() *Node { return n.parent }

// Index is the position of n among its parent's children.
func (n *Node) Index() int { return n.index }

// Path 返回从根到当前节点的子节点下标路径，例如 "math/0/2"。
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.parent == nil {
			parts = append(parts, string(cur.Kind))
			break
		}
		parts = append(parts, strconv.Itoa(cur.index))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// IsToken reports whether the node carries text rather than children.
func (n *Node) IsToken() bool { return spec(n.Kind).token }

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Explicit returns the explicitly set value of an attribute.
func (n *Node) Explicit(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Inherited returns the value inherited from the nearest ancestor that set it.
func (n *Node) Inherited(name string) (string, bool) {
	v, ok := n.inherited[name]
	return v, ok
}

// Attr 按 显式 > 继承 > 类型默认 > 全局默认 的顺序解析属性值。
func (n *Node) Attr(name string) string {
	if v, ok := n.repaired[name]; ok {
		return v
	}
	if v, ok := n.Attrs[name]; ok {
		return v
	}
	if v, ok := n.inherited[name]; ok {
		return v
	}
	if v, ok := spec(n.Kind).defaults[name]; ok {
		return v
	}
	return GlobalDefaults[name]
}

// HasAttr reports whether the attribute resolves to anything at all.
func (n *Node) HasAttr(name string) bool {
	if _, ok := n.Attrs[name]; ok {
		return true
	}
	if _, ok := n.inherited[name]; ok {
		return true
	}
	if _, ok := spec(n.Kind).defaults[name]; ok {
		return true
	}
	_, ok := GlobalDefaults[name]
	return ok
}

// KindDefault returns the type default of an attribute for this node's kind.
func (n *Node) KindDefault(name string) string {
	if v, ok := spec(n.Kind).defaults[name]; ok {
		return v
	}
	return GlobalDefaults[name]
}

// ScriptLevel returns the script level computed by Resolve.
func (n *Node) ScriptLevel() int { return n.level }

// DisplayStyle returns the displaystyle flag computed by Resolve.
func (n *Node) DisplayStyle() bool { return n.display }

// Cramped reports whether the node is set in TeX's cramped style, which
// lowers superscripts.
func (n *Node) Cramped() bool { return n.cramped }

// Bool resolves a boolean attribute; anything but "true" is false.
func (n *Node) Bool(name string) bool { return n.Attr(name) == "true" }

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// IsSpaceLike 对应 TeX 中不影响嵌入式运算符判定的节点（空白、文本等）。
func (n *Node) IsSpaceLike() bool {
	switch n.Kind {
	case KindSpace, KindText:
		return true
	case KindRow, KindStyle, KindPhantom, KindPadded:
		for _, c := range n.Children {
			if !c.IsSpaceLike() {
				return false
			}
		}
		return true
	}
	return false
}

// CoreOperator 返回嵌入式运算符的核心 mo；不是嵌入式运算符时返回 nil。
func (n *Node) CoreOperator() *Node {
	switch n.Kind {
	case KindOperator:
		return n
	case KindSub, KindSup, KindSubSup, KindUnder, KindOver, KindUnderOver, KindFrac:
		if len(n.Children) == 0 {
			return nil
		}
		return n.Children[0].CoreOperator()
	case KindRow, KindStyle, KindPhantom, KindPadded:
		var core *Node
		for _, c := range n.Children {
			if c.IsSpaceLike() {
				continue
			}
			if core != nil {
				return nil
			}
			core = c.CoreOperator()
			if core == nil {
				return nil
			}
		}
		return core
	}
	return nil
}

// IsEmbellishedOp reports whether the node is an embellished operator.
func (n *Node) IsEmbellishedOp() bool { return n.CoreOperator() != nil }

// outermostEmbellished 返回以 n 为核心的最外层嵌入式运算符。
func (n *Node) outermostEmbellished() *Node {
	cur := n
	for cur.parent != nil && cur.parent.CoreOperator() == n {
		if cur.parent.Kind == KindMath || cur.parent.Kind == KindTeXAtom {
			break
		}
		cur = cur.parent
	}
	return cur
}
