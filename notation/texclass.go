package notation

import "strings"

// TeXClass 是 TeX 的原子类型，决定相邻原子之间的默认间距。
type TeXClass int

const (
	ClassNone TeXClass = iota - 1
	ClassOrd
	ClassOp
	ClassBin
	ClassRel
	ClassOpen
	ClassClose
	ClassPunct
	ClassInner
	ClassVCenter
)

var classNames = map[TeXClass]string{
	ClassNone:    "NONE",
	ClassOrd:     "ORD",
	ClassOp:      "OP",
	ClassBin:     "BIN",
	ClassRel:     "REL",
	ClassOpen:    "OPEN",
	ClassClose:   "CLOSE",
	ClassPunct:   "PUNCT",
	ClassInner:   "INNER",
	ClassVCenter: "VCENTER",
}

func (c TeXClass) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "NONE"
}

// ParseTeXClass parses a class name such as "REL" (case-insensitive).
func ParseTeXClass(s string) (TeXClass, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range classNames {
		if name == s {
			return c, true
		}
	}
	return ClassNone, false
}

// MarshalText implements encoding.TextMarshaler for debug JSON output.
func (c TeXClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// texSpace 是 TeX 的原子间距表（TeXbook 第 170 页）。
// 0 无间距，1/2/3 分别为 thin/medium/thick，仅在非上下标层级生效；
// 负值表示任何层级都生效。
var texSpace = [8][8]int{
	//ORD OP BIN REL OPEN CLOSE PUNCT INNER
	{0, -1, 2, 3, 0, 0, 0, 1},   // ORD
	{-1, -1, 0, 3, 0, 0, 0, 1}, // OP
	{2, 2, 0, 0, 2, 0, 0, 2},   // BIN
	{3, 3, 0, 0, 3, 0, 0, 3},   // REL
	{0, 0, 0, 0, 0, 0, 0, 0},   // OPEN
	{0, -1, 2, 3, 0, 0, 0, 1},  // CLOSE
	{1, 1, 0, 1, 1, 1, 1, 1},   // PUNCT
	{1, -1, 2, 3, 1, 0, 1, 1},  // INNER
}

// spaceEm maps texSpace magnitudes to em: thin 3mu, medium 4mu, thick 5mu.
var spaceEm = [4]float64{0, 3.0 / 18, 4.0 / 18, 5.0 / 18}

// TeXSpacing 返回 prev 与 cur 两个原子之间的间距（em）。
func TeXSpacing(prev, cur TeXClass, prevLevel, level int) float64 {
	if prev == ClassVCenter {
		prev = ClassOrd
	}
	if cur == ClassVCenter {
		cur = ClassOrd
	}
	if prev < ClassOrd || prev > ClassInner || cur < ClassOrd || cur > ClassInner {
		return 0
	}
	space := texSpace[prev][cur]
	if (prevLevel > 0 || level > 0) && space >= 0 {
		return 0
	}
	if space < 0 {
		space = -space
	}
	return spaceEm[space]
}
