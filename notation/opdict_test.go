package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupOperator(t *testing.T) {
	info, ok := LookupOperator("(", FormPrefix)
	assert.True(t, ok)
	assert.Equal(t, ClassOpen, info.Class)
	assert.True(t, info.Props.Stretchy)

	// 请求的形式不存在时按 infix/postfix/prefix 回退
	info, ok = LookupOperator("∑", FormInfix)
	assert.True(t, ok)
	assert.True(t, info.Props.LargeOp)

	info, ok = LookupOperator("=", FormPostfix)
	assert.True(t, ok)
	assert.Equal(t, ClassRel, info.Class)
}

func TestLookupOperatorRanges(t *testing.T) {
	cases := []struct {
		text string
		want TeXClass
	}{
		{"⇝", ClassRel},  // Arrows
		{"⊻", ClassBin},  // Mathematical Operators
		{"⌖", ClassOrd},  // Misc Technical
		{"⤀", ClassRel},  // Supplemental Arrows-B
		{"abc", ClassOrd}, // 多字符
	}
	for _, tc := range cases {
		info, ok := LookupOperator(tc.text, FormInfix)
		assert.False(t, ok, tc.text)
		assert.Equal(t, tc.want, info.Class, tc.text)
	}
}

func TestTeXSpacing(t *testing.T) {
	assert.InDelta(t, 5.0/18, TeXSpacing(ClassOrd, ClassRel, 0, 0), 1e-9)
	assert.InDelta(t, 4.0/18, TeXSpacing(ClassOrd, ClassBin, 0, 0), 1e-9)
	assert.Zero(t, TeXSpacing(ClassOrd, ClassRel, 1, 1), "上下标层级不加 thick 间距")
	assert.InDelta(t, 3.0/18, TeXSpacing(ClassOp, ClassOrd, 1, 1), 1e-9, "负值项在所有层级生效")
	assert.Zero(t, TeXSpacing(ClassOpen, ClassOrd, 0, 0))
	assert.Zero(t, TeXSpacing(ClassNone, ClassOrd, 0, 0))
	assert.Equal(t, TeXSpacing(ClassOrd, ClassOrd, 0, 0), TeXSpacing(ClassVCenter, ClassOrd, 0, 0))
}

func TestParseTeXClass(t *testing.T) {
	c, ok := ParseTeXClass("rel")
	assert.True(t, ok)
	assert.Equal(t, ClassRel, c)
	_, ok = ParseTeXClass("bogus")
	assert.False(t, ok)
	b, _ := ClassInner.MarshalText()
	assert.Equal(t, "INNER", string(b))
}
