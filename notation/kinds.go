package notation

// kindSpec 描述每种节点的元数据：子节点数目、是否需要隐式 mrow、属性默认值。
type kindSpec struct {
	// arity 为固定子节点数；-1 表示任意数目。
	arity int
	// inferRow 表示该类型期望恰好一个子节点，子节点数不为 1 时合成隐式 mrow。
	inferRow bool
	token    bool
	defaults map[string]string
}

// GlobalDefaults 是属性继承链顶端的全局默认值。
var GlobalDefaults = map[string]string{
	"displaystyle":         "false",
	"scriptlevel":          "0",
	"scriptsizemultiplier": "0.71",
	"scriptminsize":        "0.4em",
	"mathvariant":          "normal",
	"mathsize":             "normal",
	"mathcolor":            "",
	"mathbackground":       "",
	"dir":                  "ltr",
	"fontfamily":           "",
}

var kindSpecs = map[Kind]kindSpec{
	KindMath: {arity: 1, inferRow: true, defaults: map[string]string{
		"display": "inline",
	}},
	KindRow: {arity: -1},
	KindIdent: {token: true, defaults: map[string]string{
		"mathvariant": "italic",
	}},
	KindNumber: {token: true},
	KindOperator: {token: true, defaults: map[string]string{
		"form":          "",
		"fence":         "false",
		"separator":     "false",
		"stretchy":      "false",
		"symmetric":     "false",
		"largeop":       "false",
		"movablelimits": "false",
		"accent":        "false",
		"minsize":       "",
		"maxsize":       "",
		"lspace":        "",
		"rspace":        "",
	}},
	KindText: {token: true},
	KindString: {token: true, defaults: map[string]string{
		"lquote": "\"",
		"rquote": "\"",
	}},
	KindSpace: {arity: 0, defaults: map[string]string{
		"width":  "0em",
		"height": "0em",
		"depth":  "0em",
	}},
	KindFrac: {arity: 2, defaults: map[string]string{
		"linethickness": "medium",
		"numalign":      "center",
		"denomalign":    "center",
		"bevelled":      "false",
	}},
	KindSqrt: {arity: 1, inferRow: true},
	KindRoot: {arity: 2},
	KindSub: {arity: 2, defaults: map[string]string{
		"subscriptshift": "",
	}},
	KindSup: {arity: 2, defaults: map[string]string{
		"superscriptshift": "",
	}},
	KindSubSup: {arity: 3, defaults: map[string]string{
		"subscriptshift":   "",
		"superscriptshift": "",
	}},
	KindUnder: {arity: 2, defaults: map[string]string{
		"accentunder": "",
		"align":       "center",
	}},
	KindOver: {arity: 2, defaults: map[string]string{
		"accent": "",
		"align":  "center",
	}},
	KindUnderOver: {arity: 3, defaults: map[string]string{
		"accent":      "",
		"accentunder": "",
		"align":       "center",
	}},
	KindTable: {arity: -1, defaults: map[string]string{
		"align":           "axis",
		"rowalign":        "baseline",
		"columnalign":     "center",
		"groupalign":      "{left}",
		"alignmentscope":  "true",
		"columnwidth":     "auto",
		"width":           "auto",
		"rowspacing":      "1ex",
		"columnspacing":   "0.8em",
		"rowlines":        "none",
		"columnlines":     "none",
		"frame":           "none",
		"framespacing":    "0.4em 0.5ex",
		"equalrows":       "false",
		"equalcolumns":    "false",
		"displaystyle":    "false",
		"side":            "right",
		"minlabelspacing": "0.8em",
	}},
	KindTableRow:   {arity: -1},
	KindLabeledRow: {arity: -1},
	KindCell: {arity: 1, inferRow: true, defaults: map[string]string{
		"rowspan":    "1",
		"columnspan": "1",
	}},
	KindEnclose: {arity: 1, inferRow: true, defaults: map[string]string{
		"notation": "longdiv",
	}},
	KindStyle:   {arity: 1, inferRow: true},
	KindPadded:  {arity: 1, inferRow: true, defaults: map[string]string{"width": "", "height": "", "depth": "", "lspace": "0", "voffset": "0"}},
	KindPhantom: {arity: 1, inferRow: true},
	KindError:   {arity: 1, inferRow: true},
	KindTeXAtom: {arity: 1, inferRow: true, defaults: map[string]string{
		"texClass": "ORD",
	}},
}

func spec(k Kind) kindSpec {
	if s, ok := kindSpecs[k]; ok {
		return s
	}
	return kindSpec{arity: -1}
}

// Known reports whether k is a supported node kind.
func Known(k Kind) bool {
	_, ok := kindSpecs[k]
	return ok
}

// IsTokenKind reports whether k holds text rather than children.
func IsTokenKind(k Kind) bool { return spec(k).token }

// Arity returns the fixed child count of a kind, or -1 when variadic.
func Arity(k Kind) int {
	s := spec(k)
	if s.token {
		return 0
	}
	return s.arity
}

// inheritable 列出可沿祖先链传递的属性。
var inheritable = map[string]bool{
	"displaystyle":         true,
	"scriptlevel":          true,
	"scriptsizemultiplier": true,
	"scriptminsize":        true,
	"mathvariant":          true,
	"mathsize":             true,
	"mathcolor":            true,
	"mathbackground":       true,
	"dir":                  true,
	"fontfamily":           true,
	"linethickness":        true,
	"width":                true,
	"height":               true,
	"depth":                true,
	"lspace":               true,
	"rspace":               true,
	"columnalign":          true,
	"rowalign":             true,
	"rowspacing":           true,
	"columnspacing":        true,
}

// noInherit 是 (接收方类型, 属性) 的排除表：这些属性即使被祖先设置也不继承。
var noInherit = map[Kind]map[string]bool{
	KindPadded:   {"width": true, "height": true, "depth": true, "lspace": true, "voffset": true},
	KindTable:    {"width": true, "height": true},
	KindSpace:    {"width": true, "height": true, "depth": true},
	KindOperator: {"lspace": true, "rspace": true, "width": true, "height": true, "depth": true},
	KindEnclose:  {"width": true, "height": true, "depth": true},
	KindIdent:    {"width": true, "height": true, "depth": true, "lspace": true, "rspace": true},
	KindNumber:   {"width": true, "height": true, "depth": true, "lspace": true, "rspace": true},
	KindText:     {"width": true, "height": true, "depth": true, "lspace": true, "rspace": true},
}

// Inheritable reports whether attr may flow from an ancestor into a node of kind k.
func Inheritable(k Kind, attr string) bool {
	if !inheritable[attr] {
		return false
	}
	return !noInherit[k][attr]
}
