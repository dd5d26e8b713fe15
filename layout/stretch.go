package layout

import (
	"math"
	"sync"

	"github.com/ByLCY/mathbox/fontdata"
)

// Target 是伸缩目标：水平方向使用 W，垂直方向使用 H 与 D。
type Target struct {
	W float64
	H float64
	D float64
}

// Piece 是拼装结果中的一个字形。Offset 为沿伸展方向距起点（上端或左端）的距离，
// Size 为缩放后的尺寸，Scale 为延长段的缩放系数（端部件为 1）。
type Piece struct {
	Glyph  fontdata.GlyphRef
	Offset float64
	Size   float64
	Scale  float64
	// Ext 标记可伸缩的延长段。
	Ext bool
}

// Stretched 是伸缩结果。Variant 非 nil 表示选用了固定尺寸变体，
// 否则 Pieces 给出拼装字形。Box 反映实际尺寸，调用方不应假设目标已被满足。
type Stretched struct {
	Char    rune
	Dir     fontdata.Direction
	Box     BBox
	Variant *fontdata.GlyphRef
	Pieces  []Piece
	// Repeat 是延长段的总重复次数，Scale 是每个延长段副本的缩放系数。
	Repeat int
	Scale  float64
	// Size 是沿伸展方向的实际尺寸。
	Size float64
}

// Assembled reports whether the result was built from pieces.
func (s Stretched) Assembled() bool { return s.Variant == nil && len(s.Pieces) > 0 }

type stretchKey struct {
	ch      rune
	variant string
	target  Target
	exact   bool
}

// Assembler 根据伸缩配方选择固定变体或拼装字形，结果按
// (字符, 变体, 目标尺寸, exact) 缓存。缓存可以在多个表达式之间共享。
type Assembler struct {
	store     *fontdata.Store
	shortfall float64
	growth    float64

	mu    sync.Mutex
	cache map[stretchKey]Stretched
}

// NewAssembler creates an assembler. shortfall is the tolerance a fixed
// variant may fall short of the target by; growth is how much larger than the
// target a fixed variant may be before assembling is preferred.
func NewAssembler(store *fontdata.Store, shortfall, growth float64) *Assembler {
	if shortfall <= 0 {
		shortfall = DefaultDelimiterShortfall
	}
	if growth <= 0 {
		growth = DefaultDelimiterGrowth
	}
	return &Assembler{store: store, shortfall: shortfall, growth: growth, cache: map[stretchKey]Stretched{}}
}

// CanStretch reports whether ch has a recipe in direction dir.
func (a *Assembler) CanStretch(ch rune, dir fontdata.Direction) bool {
	r, ok := a.store.Recipe(ch)
	return ok && r.Dir == dir && (len(r.Variants) > 0 || r.Assembly != nil)
}

// Stretch 返回 ch 伸缩到 target 的结果。没有配方的字符返回原字符的盒子，不视为错误；
// 原字符也没有度量时 Box 为零。
func (a *Assembler) Stretch(ch rune, variant string, target Target, exact bool) Stretched {
	key := stretchKey{ch: ch, variant: variant, target: target, exact: exact}
	a.mu.Lock()
	if s, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return s
	}
	a.mu.Unlock()

	s := a.stretch(ch, variant, target, exact)

	a.mu.Lock()
	a.cache[key] = s
	a.mu.Unlock()
	return s
}

func (a *Assembler) stretch(ch rune, variant string, target Target, exact bool) Stretched {
	r, ok := a.store.Recipe(ch)
	if !ok || r.Dir == fontdata.DirNone || (len(r.Variants) == 0 && r.Assembly == nil) {
		ref := fontdata.G(variant, ch)
		m, err := a.store.Lookup(variant, ch)
		if err == nil {
			ref.Metrics = m
		}
		return fixedStretch(ch, fontdata.DirNone, ref)
	}

	size := target.W
	if r.Dir == fontdata.DirVertical {
		size = target.H + target.D
	}

	if !exact || r.Assembly == nil {
		for i, v := range r.Variants {
			s := v.Size(r.Dir)
			if s < size*a.shortfall {
				continue
			}
			if i == 0 || s <= size*a.growth || r.Assembly == nil {
				return fixedStretch(ch, r.Dir, v)
			}
			// 目标落在两个变体之间：取尺寸更接近目标的一个，不做拼装。
			prev := r.Variants[i-1]
			if size-prev.Size(r.Dir) < s-size {
				return fixedStretch(ch, r.Dir, prev)
			}
			return fixedStretch(ch, r.Dir, v)
		}
		if r.Assembly == nil {
			return fixedStretch(ch, r.Dir, r.Variants[len(r.Variants)-1])
		}
	}
	return assemble(ch, r, target, size)
}

func fixedStretch(ch rune, dir fontdata.Direction, v fontdata.GlyphRef) Stretched {
	ref := v
	m := v.Metrics
	return Stretched{
		Char:    ch,
		Dir:     dir,
		Box:     BBox{H: m.H, D: m.D, W: m.W, IC: m.IC},
		Variant: &ref,
		Scale:   1,
		Size:    v.Size(dir),
	}
}

// assemble 在端部件之间填充延长段，使总尺寸恰好等于目标；目标小于端部件之和时
// 使用端部件之和作为最小尺寸。有中间部件时，延长量在其两侧平分。
func assemble(ch rune, r *fontdata.StretchRecipe, target Target, size float64) Stretched {
	a := r.Assembly
	dir := r.Dir
	minSize := a.MinSize(dir)
	total := math.Max(size, minSize)

	segments := 1
	if a.Mid != nil {
		segments = 2
	}
	seg := (total - minSize) / float64(segments)
	extSize := a.Ext.Size(dir)
	repeat, scale := 0, 1.0
	if seg > 0 && extSize > 0 {
		repeat = int(math.Ceil(seg/extSize - 1e-9))
		if repeat < 1 {
			repeat = 1
		}
		scale = seg / (float64(repeat) * extSize)
	} else {
		// 延长段无法提供尺寸时退回最小尺寸。
		seg = 0
		total = minSize
	}

	out := Stretched{Char: ch, Dir: dir, Scale: scale}
	cursor := 0.0
	addFixed := func(p *fontdata.GlyphRef) {
		if p == nil {
			return
		}
		s := p.Size(dir)
		out.Pieces = append(out.Pieces, Piece{Glyph: *p, Offset: cursor, Size: s, Scale: 1})
		cursor += s
	}
	addExt := func() {
		if seg <= 0 {
			return
		}
		step := extSize * scale
		for i := 0; i < repeat; i++ {
			out.Pieces = append(out.Pieces, Piece{Glyph: a.Ext, Offset: cursor, Size: step, Scale: scale, Ext: true})
			cursor += step
		}
		out.Repeat += repeat
	}

	addFixed(a.Begin)
	addExt()
	if a.Mid != nil {
		addFixed(a.Mid)
		addExt()
	}
	addFixed(a.End)
	out.Size = total

	var box BBox
	for _, p := range out.Pieces {
		m := p.Glyph.Metrics
		if dir == fontdata.DirVertical {
			box.W = math.Max(box.W, m.W)
		} else {
			box.H = math.Max(box.H, m.H)
			box.D = math.Max(box.D, m.D)
		}
	}
	if dir == fontdata.DirVertical {
		extra := total - (target.H + target.D)
		box.H = target.H + extra/2
		box.D = target.D + extra/2
	} else {
		box.W = total
	}
	out.Box = box
	return out
}
