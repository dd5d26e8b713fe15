// Package fonts 提供内置的 Latin Modern 字体，按数学变体名称选取字体面。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// Face 标识一个内置字体文件。
type Face string

const (
	Regular     Face = "lmroman10-regular"
	Italic      Face = "lmroman10-italic"
	Bold        Face = "lmroman10-bold"
	BoldItalic  Face = "lmroman10-bolditalic"
	Sans        Face = "lmsans10-regular"
	SansBold    Face = "lmsans10-bold"
	SansOblique Face = "lmsans10-oblique"
	Mono        Face = "lmmono10-regular"
)

var faces = map[Face][]byte{
	Regular:     lmroman10regular.TTF,
	Italic:      lmroman10italic.TTF,
	Bold:        lmroman10bold.TTF,
	BoldItalic:  lmroman10bolditalic.TTF,
	Sans:        lmsans10regular.TTF,
	SansBold:    lmsans10bold.TTF,
	SansOblique: lmsans10oblique.TTF,
	Mono:        lmmono10regular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10-italic" 或直接 "lmroman10-italic"。
func Load(name string) ([]byte, error) {
	f := Face(strings.TrimPrefix(name, "embed:"))
	data, ok := faces[f]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s", name)
	}
	return data, nil
}

// ForVariant 把数学变体映射到内置字体面。size1..size4 等放大变体使用正体；
// 未知变体回退到正体。
func ForVariant(variant string) Face {
	switch variant {
	case "italic", "script":
		return Italic
	case "bold", "double-struck":
		return Bold
	case "bold-italic":
		return BoldItalic
	case "sans-serif":
		return Sans
	case "bold-sans-serif", "sans-serif-bold-italic":
		return SansBold
	case "sans-serif-italic":
		return SansOblique
	case "monospace":
		return Mono
	}
	return Regular
}
