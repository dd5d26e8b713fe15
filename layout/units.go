package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for the lengths used in
// notation attributes (width, lspace, linethickness, rowspacing ...).

// Unit represents the original unit of a length value as written in an attribute.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers like factors
	UnitEm                  // font-relative em
	UnitEx                  // x-height of the current font
	UnitMu                  // math unit, 1/18 em
	UnitPT                  // points
	UnitPX                  // CSS pixels (0.75pt)
	UnitMM                  // millimeters
	UnitCM                  // centimeters
	UnitIN                  // inches
	UnitPercent             // percent of a reference length
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToPt = 0.75
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitEm:
		return "em"
	case UnitEx:
		return "ex"
	case UnitMu:
		return "mu"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// IsPercent reports whether the length depends on a reference length.
func (l Length) IsPercent() bool { return l.Unit == UnitPercent }

// Metrics 提供 em 换算所需的字体上下文。
type Metrics struct {
	// XHeight 以 em 计。
	XHeight float64
	// EmPt 是 1em 对应的磅数（字号）。
	EmPt float64
}

// ToEm converts the length to em of the current font. Unit-less values are
// multiples of ref and percentages are relative to ref.
func (l Length) ToEm(m Metrics, ref float64) float64 {
	emPt := m.EmPt
	if emPt <= 0 {
		emPt = DefaultFontSize
	}
	switch l.Unit {
	case UnitEm:
		return l.Value
	case UnitEx:
		return l.Value * m.XHeight
	case UnitMu:
		return l.Value / 18
	case UnitPT:
		return l.Value / emPt
	case UnitPX:
		return l.Value * PxToPt / emPt
	case UnitMM:
		return l.Value * MmToPt / emPt
	case UnitCM:
		return l.Value * 10 * MmToPt / emPt
	case UnitIN:
		return l.Value * 72 / emPt
	case UnitPercent:
		return ref * l.Value / 100
	}
	return ref * l.Value
}

// namedSpaces 是 MathML 命名空白（以 mu 计，负值对应 negative* 形式）。
var namedSpaces = map[string]float64{
	"veryverythinmathspace":  1,
	"verythinmathspace":      2,
	"thinmathspace":          3,
	"mediummathspace":        4,
	"thickmathspace":         5,
	"verythickmathspace":     6,
	"veryverythickmathspace": 7,
}

// ParseLength parses an attribute length such as "2em", "-0.5ex", "3mu",
// "50%", "12pt" or a named math space. Unit-less numbers keep UnitNone.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	if mu, ok := namedSpaces[v]; ok {
		return Length{Value: mu, Unit: UnitMu}, nil
	}
	if strings.HasPrefix(v, "negative") {
		if mu, ok := namedSpaces[strings.TrimPrefix(v, "negative")]; ok {
			return Length{Value: -mu, Unit: UnitMu}, nil
		}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"em", UnitEm}, {"ex", UnitEx}, {"mu", UnitMu}, {"pt", UnitPT}, {"px", UnitPX}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParseRawLengthStr parses a length and returns the zero length on error.
func ParseRawLengthStr(value string) Length {
	l, err := ParseLength(value)
	if err != nil {
		return Length{Value: 0, Unit: UnitNone}
	}
	return l
}

// Dimen 是 mpadded 属性值：可选的 +/- 增量前缀、数值与单位或伪单位。
type Dimen struct {
	// Sign 为 0 表示绝对值，+1/-1 表示相对原值的增减。
	Sign int
	Len  Length
	// Pseudo 为 width、height、depth 之一时，数值是该内容尺寸的倍数。
	Pseudo string
}

// ParseDimen parses mpadded-style values: "+2width", "-0.2em", "150%height", "1.5".
func ParseDimen(value string) (Dimen, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	d := Dimen{}
	switch {
	case strings.HasPrefix(v, "+"):
		d.Sign = 1
		v = v[1:]
	case strings.HasPrefix(v, "-"):
		d.Sign = -1
		v = v[1:]
	}
	for _, p := range []string{"width", "height", "depth"} {
		if strings.HasSuffix(v, p) {
			d.Pseudo = p
			v = strings.TrimSpace(strings.TrimSuffix(v, p))
			if v == "" {
				v = "1"
			}
			break
		}
	}
	l, err := ParseLength(v)
	if err != nil {
		return Dimen{}, err
	}
	d.Len = l
	return d, nil
}

// Apply 根据内容尺寸计算 mpadded 的最终取值；cur 为该属性的原值。
func (d Dimen) Apply(cur float64, content BBox, m Metrics) float64 {
	ref := cur
	switch d.Pseudo {
	case "width":
		ref = content.W
	case "height":
		ref = content.H
	case "depth":
		ref = content.D
	}
	amount := d.Len.ToEm(m, ref)
	if d.Pseudo != "" && d.Len.Unit == UnitNone {
		amount = d.Len.Value * ref
	}
	switch d.Sign {
	case 1:
		return cur + amount
	case -1:
		return cur - amount
	}
	return amount
}
