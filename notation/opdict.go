package notation

import "strings"

// Form 是运算符在行中的位置形式。
type Form string

const (
	FormPrefix  Form = "prefix"
	FormInfix   Form = "infix"
	FormPostfix Form = "postfix"
)

// OpInfo 是运算符字典中的一项。间距以 mu（1/18 em）为单位。
type OpInfo struct {
	Class  TeXClass
	LSpace int
	RSpace int
	Props  OpProps
}

// OpProps 是运算符的布尔属性集合。
type OpProps struct {
	Stretchy      bool
	Fence         bool
	Symmetric     bool
	LargeOp       bool
	MovableLimits bool
	Accent        bool
	Separator     bool
}

type opKey struct {
	text string
	form Form
}

var (
	propFence     = OpProps{Fence: true, Stretchy: true, Symmetric: true}
	propLargeOp   = OpProps{LargeOp: true, MovableLimits: true, Symmetric: true}
	propIntegral  = OpProps{LargeOp: true, Symmetric: true}
	propAccent    = OpProps{Accent: true}
	propWideAcc   = OpProps{Accent: true, Stretchy: true}
	propStretchy  = OpProps{Stretchy: true}
	propSeparator = OpProps{Separator: true}
	propLimits    = OpProps{MovableLimits: true}
)

func op(class TeXClass, l, r int, props OpProps) OpInfo {
	return OpInfo{Class: class, LSpace: l, RSpace: r, Props: props}
}

// opDictionary 以 (文本, 形式) 为键。数据取自 MathML 运算符字典中常用的子集。
var opDictionary = map[opKey]OpInfo{
	// fences
	{"(", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{")", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"[", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"]", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"{", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"}", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"|", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"|", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"|", FormInfix}:   op(ClassOrd, 0, 0, OpProps{Fence: true, Stretchy: true, Symmetric: true}),
	{"‖", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"‖", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"‖", FormInfix}:   op(ClassOrd, 0, 0, propFence),
	{"⟨", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"⟩", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"⌈", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"⌉", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"⌊", FormPrefix}:  op(ClassOpen, 0, 0, propFence),
	{"⌋", FormPostfix}: op(ClassClose, 0, 0, propFence),
	{"/", FormInfix}:   op(ClassOrd, 0, 0, OpProps{Stretchy: true}),

	// binary operators
	{"+", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"+", FormPrefix}: op(ClassOrd, 0, 1, OpProps{}),
	{"-", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"-", FormPrefix}: op(ClassOrd, 0, 1, OpProps{}),
	{"−", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"−", FormPrefix}: op(ClassOrd, 0, 1, OpProps{}),
	{"±", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"±", FormPrefix}: op(ClassOrd, 0, 1, OpProps{}),
	{"∓", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"×", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"÷", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"*", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∗", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"⋅", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"·", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∘", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∪", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∩", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∧", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∨", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"⊕", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"⊗", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),
	{"∖", FormInfix}:  op(ClassBin, 4, 4, OpProps{}),

	// relations
	{"=", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"<", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{">", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≠", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≤", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≥", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≡", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≈", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∼", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"≅", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∝", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∈", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∉", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∋", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"⊂", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"⊃", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"⊆", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"⊇", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"→", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"←", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"↔", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"⇒", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"⇐", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"⇔", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{"↦", FormInfix}: op(ClassRel, 5, 5, propStretchy),
	{":", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∣", FormInfix}: op(ClassRel, 5, 5, OpProps{}),
	{"∥", FormInfix}: op(ClassRel, 5, 5, OpProps{}),

	// punctuation
	{",", FormInfix}: op(ClassPunct, 0, 3, propSeparator),
	{";", FormInfix}: op(ClassPunct, 0, 3, propSeparator),
	{"…", FormInfix}: op(ClassInner, 0, 0, OpProps{}),
	{"⋯", FormInfix}: op(ClassInner, 0, 0, OpProps{}),

	// postfix
	{"!", FormPostfix}: op(ClassClose, 1, 0, OpProps{}),
	{"'", FormPostfix}: op(ClassOrd, 0, 0, OpProps{}),
	{"′", FormPostfix}: op(ClassOrd, 0, 0, OpProps{}),
	{"″", FormPostfix}: op(ClassOrd, 0, 0, OpProps{}),

	// prefix
	{"¬", FormPrefix}: op(ClassOrd, 2, 1, OpProps{}),
	{"∂", FormPrefix}: op(ClassOrd, 2, 1, OpProps{}),
	{"∇", FormPrefix}: op(ClassOrd, 2, 1, OpProps{}),
	{"∀", FormPrefix}: op(ClassOrd, 2, 1, OpProps{}),
	{"∃", FormPrefix}: op(ClassOrd, 2, 1, OpProps{}),

	// large operators
	{"∑", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"∏", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"∐", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"⋃", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"⋂", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"⨁", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"⨂", FormPrefix}:   op(ClassOp, 1, 2, propLargeOp),
	{"∫", FormPrefix}:   op(ClassOp, 0, 1, propIntegral),
	{"∬", FormPrefix}:   op(ClassOp, 0, 1, propIntegral),
	{"∮", FormPrefix}:   op(ClassOp, 0, 1, propIntegral),
	{"lim", FormPrefix}: op(ClassOp, 1, 2, propLimits),
	{"max", FormPrefix}: op(ClassOp, 1, 2, propLimits),
	{"min", FormPrefix}: op(ClassOp, 1, 2, propLimits),
	{"sup", FormPrefix}: op(ClassOp, 1, 2, propLimits),
	{"inf", FormPrefix}: op(ClassOp, 1, 2, propLimits),

	// accents (postfix form, used as over/under scripts)
	{"^", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"~", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"ˆ", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"˜", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"¯", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"‾", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"_", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"˙", FormPostfix}: op(ClassOrd, 0, 0, propAccent),
	{"¨", FormPostfix}: op(ClassOrd, 0, 0, propAccent),
	{"´", FormPostfix}: op(ClassOrd, 0, 0, propAccent),
	{"`", FormPostfix}: op(ClassOrd, 0, 0, propAccent),
	{"ˇ", FormPostfix}: op(ClassOrd, 0, 0, propAccent),
	{"→", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"←", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"⏞", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
	{"⏟", FormPostfix}: op(ClassOrd, 0, 0, propWideAcc),
}

// opRange 描述未列入字典的运算符按 Unicode 区段推断的类型。
type opRange struct {
	lo, hi rune
	class  TeXClass
}

var opRanges = []opRange{
	{0x0020, 0x007F, ClassRel},
	{0x00A0, 0x00BF, ClassOrd},
	{0x00C0, 0x024F, ClassOrd},
	{0x02B0, 0x036F, ClassOrd},
	{0x0370, 0x1A20, ClassOrd},
	{0x1AB0, 0x1AFF, ClassOrd},
	{0x1D00, 0x1DBF, ClassOrd},
	{0x1DC0, 0x1DFF, ClassOrd},
	{0x2000, 0x206F, ClassOrd},
	{0x2070, 0x209F, ClassOrd},
	{0x2100, 0x214F, ClassOrd},
	{0x2150, 0x218F, ClassOrd},
	{0x2190, 0x21FF, ClassRel},
	{0x2200, 0x22FF, ClassBin},
	{0x2300, 0x23FF, ClassOrd},
	{0x2460, 0x24FF, ClassOrd},
	{0x2500, 0x27EF, ClassOrd},
	{0x27F0, 0x27FF, ClassRel},
	{0x2800, 0x28FF, ClassOrd},
	{0x2900, 0x297F, ClassRel},
	{0x2980, 0x29FF, ClassOrd},
	{0x2A00, 0x2AFF, ClassBin},
	{0x2B00, 0x2B2F, ClassOrd},
	{0x2B30, 0x2B4F, ClassRel},
	{0x2B50, 0x2BFF, ClassOrd},
	{0x1D400, 0x1D7FF, ClassOrd},
}

// LookupOperator 按 (文本, 形式) 查询运算符字典。找不到请求的形式时按
// infix、postfix、prefix 的顺序回退；仍找不到时按 Unicode 区段推断类型，
// 第二个返回值为 false。
func LookupOperator(text string, form Form) (OpInfo, bool) {
	if info, ok := opDictionary[opKey{text, form}]; ok {
		return info, true
	}
	for _, f := range []Form{FormInfix, FormPostfix, FormPrefix} {
		if info, ok := opDictionary[opKey{text, f}]; ok {
			return info, true
		}
	}
	return OpInfo{Class: rangeClass(text), LSpace: 5, RSpace: 5}, false
}

func rangeClass(text string) TeXClass {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) != 1 {
		// 多字符的未知运算符（例如函数名）按普通原子处理。
		return ClassOrd
	}
	r := runes[0]
	for _, rg := range opRanges {
		if r >= rg.lo && r <= rg.hi {
			return rg.class
		}
	}
	return ClassRel
}
