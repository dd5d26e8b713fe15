package notation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func mi(s string) *Node { return Token(KindIdent, s, nil) }
func mn(s string) *Node { return Token(KindNumber, s, nil) }
func mo(s string) *Node { return Token(KindOperator, s, nil) }

func row(children ...*Node) *Node { return New(KindRow, nil, children...) }

func math(children ...*Node) *Node { return New(KindMath, nil, children...) }

func TestFreezeInfersRow(t *testing.T) {
	root := math(mi("x"), mo("+"), mn("1"))
	Freeze(root)

	require.Len(t, root.Children, 1)
	inferred := root.Children[0]
	assert.True(t, inferred.Inferred)
	assert.Equal(t, KindRow, inferred.Kind)
	assert.Len(t, inferred.Children, 3)
	assert.Same(t, root, inferred.Parent())
	assert.Equal(t, "math/0/2", inferred.Children[2].Path())

	// 重复 Freeze 不会再次包裹
	Freeze(root)
	assert.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 3)
}

func TestInheritanceAndNonInherit(t *testing.T) {
	x := mi("x")
	sp := New(KindSpace, nil)
	style := New(KindStyle, map[string]string{"mathcolor": "red", "width": "3em"}, x, sp)
	root := math(style)
	require.NoError(t, Resolve(root, ResolveOptions{}))

	assert.Equal(t, "red", x.Attr("mathcolor"))
	assert.Equal(t, "3em", x.Parent().Attr("width"), "隐式 mrow 继承 width")
	assert.Equal(t, "0em", sp.Attr("width"), "mspace 不继承 width，使用类型默认值")
	_, inherited := sp.Inherited("width")
	assert.False(t, inherited)

	// 未设置的属性退回类型默认值和全局默认值
	assert.Equal(t, "italic", x.Attr("mathvariant"))
	assert.Equal(t, "ltr", x.Attr("dir"))
}

func TestExplicitBeatsInherited(t *testing.T) {
	x := Token(KindIdent, "x", map[string]string{"mathvariant": "bold"})
	y := mi("y")
	root := math(New(KindStyle, map[string]string{"mathvariant": "normal"}, x, y))
	require.NoError(t, Resolve(root, ResolveOptions{}))

	assert.Equal(t, "bold", x.MathVariant())
	assert.Equal(t, "normal", y.MathVariant())
	assert.Equal(t, "normal", mi("sin").MathVariant(), "多字母标识符默认正体")
}

func TestScriptLevelAndDisplayStyle(t *testing.T) {
	num := mi("a")
	den := mi("b")
	frac := New(KindFrac, nil, num, den)
	sup := mn("2")
	deep := New(KindSup, nil, mi("x"), New(KindSup, nil, mi("y"), New(KindSup, nil, mi("z"), sup)))
	root := math(frac, deep)
	require.NoError(t, Resolve(root, ResolveOptions{Display: true}))

	assert.True(t, frac.DisplayStyle())
	assert.Equal(t, 1, num.ScriptLevel(), "display 分式的分子同样升一级")
	assert.Equal(t, 1, den.ScriptLevel())
	assert.False(t, num.DisplayStyle())

	assert.Equal(t, DefaultMaxScriptLevel, sup.ScriptLevel(), "上标层级被限制在最大值")

	require.NoError(t, Resolve(root, ResolveOptions{}))
	assert.Equal(t, 1, num.ScriptLevel())
}

func TestCrampedStyle(t *testing.T) {
	num, den := mi("a"), mi("b")
	base, sub, sup := mi("x"), mi("i"), mi("n")
	radicand := mi("r")
	inDen := mi("c")
	accented := mi("v")
	root := math(
		New(KindFrac, nil, num, New(KindRow, nil, den, New(KindSup, nil, inDen, mn("2")))),
		New(KindSubSup, nil, base, sub, sup),
		New(KindSqrt, nil, radicand),
		New(KindOver, map[string]string{"accent": "true"}, accented, mo("^")),
	)
	require.NoError(t, Resolve(root, ResolveOptions{}))

	assert.False(t, num.Cramped())
	assert.True(t, den.Cramped(), "分母紧缩")
	assert.True(t, inDen.Cramped(), "紧缩沿子树传递")
	assert.False(t, base.Cramped())
	assert.True(t, sub.Cramped(), "下标紧缩")
	assert.False(t, sup.Cramped())
	assert.True(t, radicand.Cramped())
	assert.True(t, accented.Cramped(), "重音下的底数紧缩")
}

func TestExplicitScriptLevel(t *testing.T) {
	a := mi("a")
	b := mi("b")
	root := math(
		New(KindStyle, map[string]string{"scriptlevel": "+1"}, a),
		New(KindStyle, map[string]string{"scriptlevel": "oops"}, b),
	)
	err := Resolve(root, ResolveOptions{})
	assert.Equal(t, 1, a.ScriptLevel())
	assert.Equal(t, 0, b.ScriptLevel())

	var ac *AttributeConfigError
	require.True(t, errors.As(err, &ac))
	assert.Equal(t, "scriptlevel", ac.Attr)
	assert.Equal(t, "oops", ac.Value)
}

func TestAttributeRepair(t *testing.T) {
	frac := New(KindFrac, map[string]string{"numalign": "middle", "bevelled": "yes"}, mi("a"), mi("b"))
	root := math(frac)
	err := Resolve(root, ResolveOptions{})

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	for _, e := range errs {
		var ac *AttributeConfigError
		require.True(t, errors.As(e, &ac))
		assert.Equal(t, "math/0", ac.Path)
	}
	assert.Equal(t, "center", frac.Attr("numalign"))
	assert.Equal(t, "false", frac.Attr("bevelled"))
}

func TestStructuralErrorIsLocal(t *testing.T) {
	bad := New(KindFrac, nil, mi("a"))
	good := New(KindSup, nil, mi("x"), mn("2"))
	root := math(bad, mo("+"), good)
	err := Resolve(root, ResolveOptions{})

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "math/0/0", se.Path)
	assert.Equal(t, 2, se.Want)
	assert.Equal(t, 1, se.Got)

	assert.True(t, bad.Broken)
	assert.False(t, good.Broken)
	assert.Equal(t, 1, good.Children[1].ScriptLevel())

	unknown := New("mblah", nil)
	err = Resolve(math(unknown), ResolveOptions{})
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "unknown kind")
}

func TestClassesAndBinaryAdjustment(t *testing.T) {
	minus := mo("-")
	x := mi("x")
	plus := mo("+")
	y := mi("y")
	eq := mo("=")
	plus2 := mo("+")
	root := math(minus, x, plus, y, eq, plus2)
	require.NoError(t, Resolve(root, ResolveOptions{}))

	assert.Equal(t, ClassOrd, minus.TeXClass, "行首的二元运算符改为 Ord")
	assert.Equal(t, ClassBin, plus.TeXClass)
	assert.Equal(t, ClassRel, eq.TeXClass)
	assert.Equal(t, ClassOrd, plus2.TeXClass, "行末的二元运算符改为 Ord")
	assert.Equal(t, ClassOrd, plus.PrevClass, "x 为 Ord")
}

func TestBinBeforeRelBecomesOrd(t *testing.T) {
	plus := mo("+")
	root := math(mi("a"), plus, mo("="), mi("b"))
	require.NoError(t, Resolve(root, ResolveOptions{}))
	assert.Equal(t, ClassOrd, plus.TeXClass)
}

func TestFencedRowIsInner(t *testing.T) {
	open := mo("(")
	close := mo(")")
	inner := row(open, mi("x"), close)
	fn := mi("sin")
	root := math(fn, inner)
	require.NoError(t, Resolve(root, ResolveOptions{}))

	assert.Equal(t, ClassOpen, open.TeXClass)
	assert.Equal(t, ClassClose, close.TeXClass)
	assert.Equal(t, ClassInner, inner.TeXClass)
	assert.Equal(t, ClassOp, fn.TeXClass)
	assert.Equal(t, FormPrefix, OperatorForm(open))
	assert.Equal(t, FormPostfix, OperatorForm(close))
}

func TestEmbellishedOperator(t *testing.T) {
	sum := mo("∑")
	under := New(KindUnderOver, nil, sum, mi("i"), mi("n"))
	root := math(under, mi("x"))
	require.NoError(t, Resolve(root, ResolveOptions{Display: true}))

	assert.Same(t, sum, under.CoreOperator())
	assert.Equal(t, ClassOp, under.TeXClass)
	assert.True(t, OperatorInfo(sum).Props.LargeOp)
	assert.Equal(t, FormPrefix, OperatorForm(sum), "形式取决于最外层嵌入式运算符的位置")
}

func TestTeXAtomClass(t *testing.T) {
	atom := New(KindTeXAtom, map[string]string{"texClass": "REL"}, mi("x"))
	bad := New(KindTeXAtom, map[string]string{"texClass": "WHATEVER"}, mi("y"))
	err := Resolve(math(atom, bad), ResolveOptions{})
	assert.Equal(t, ClassRel, atom.TeXClass)
	assert.Equal(t, ClassOrd, bad.TeXClass)
	assert.Error(t, err)
}

func TestAccentScriptKeepsLevel(t *testing.T) {
	hat := mo("^")
	over := New(KindOver, nil, mi("x"), hat)
	limit := mi("n")
	under := New(KindUnder, nil, mo("lim"), limit)
	require.NoError(t, Resolve(math(over, under), ResolveOptions{}))

	assert.True(t, over.ScriptAccent(1))
	assert.Equal(t, 0, hat.ScriptLevel())
	assert.False(t, under.ScriptAccent(1))
	assert.Equal(t, 1, limit.ScriptLevel())
}

func TestExplicitOperatorProps(t *testing.T) {
	o := Token(KindOperator, "(", map[string]string{"stretchy": "false"})
	require.NoError(t, Resolve(math(o, mi("x")), ResolveOptions{}))
	info := OperatorInfo(o)
	assert.False(t, info.Props.Stretchy)
	assert.True(t, info.Props.Fence)
}
