package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthToEm 覆盖常见单位到 em 的换算。
func TestLengthToEm(t *testing.T) {
	m := Metrics{XHeight: 0.442, EmPt: 12}
	cases := []struct {
		in   string
		ref  float64
		want float64
	}{
		{"2em", 0, 2},
		{"1ex", 0, 0.442},
		{"18mu", 0, 1},
		{"12pt", 0, 1},
		{"1in", 0, 6},
		{"50%", 10, 5},
		{"1.5", 2, 3},
		{"thickmathspace", 0, 5.0 / 18},
		{"negativethinmathspace", 0, -3.0 / 18},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		require.NoError(t, err, c.in)
		assert.InDelta(t, c.want, l.ToEm(m, c.ref), 1e-9, c.in)
	}
}

func TestParseLengthRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3em", "em"} {
		_, err := ParseLength(in)
		assert.Error(t, err, "%q 应该解析失败", in)
	}
	assert.Equal(t, Length{Value: 0, Unit: UnitNone}, ParseRawLengthStr("nope"))
}

func TestDimenApply(t *testing.T) {
	content := BBox{H: 0.7, D: 0.2, W: 2}
	m := Metrics{XHeight: 0.5, EmPt: 10}
	cases := []struct {
		in   string
		cur  float64
		want float64
	}{
		{"+1em", 2, 3},
		{"-0.5em", 2, 1.5},
		{"2width", 0.7, 4},
		{"150%height", 0, 1.05},
		{"150%", 2, 3},
		{"+0.5depth", 0.7, 0.8},
		{"1ex", 0, 0.5},
	}
	for _, c := range cases {
		d, err := ParseDimen(c.in)
		require.NoError(t, err, c.in)
		assert.InDelta(t, c.want, d.Apply(c.cur, content, m), 1e-9, c.in)
	}
}
