// Package fontdata holds per-character metrics, stretchy-delimiter recipes and
// global font parameters. A Store is filled once, sealed, and then shared
// read-only by every layout pass.
package fontdata

import (
	"fmt"
	"sort"
)

// CharMetrics 描述单个字符在 1em 字号下的度量。
type CharMetrics struct {
	H    float64 `json:"h"`
	D    float64 `json:"d"`
	W    float64 `json:"w"`
	IC   float64 `json:"ic,omitempty"`
	Skew float64 `json:"skew,omitempty"`
}

// C is a compact constructor used by the static font tables:
// C(h, d, w) or C(h, d, w, ic) or C(h, d, w, ic, skew).
func C(h, d, w float64, extra ...float64) CharMetrics {
	m := CharMetrics{H: h, D: d, W: w}
	if len(extra) > 0 {
		m.IC = extra[0]
	}
	if len(extra) > 1 {
		m.Skew = extra[1]
	}
	return m
}

// MissingMetricError 表示请求的字符在变体链中没有度量数据。
type MissingMetricError struct {
	Char    rune
	Variant string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("fontdata: no metrics for %q (U+%04X) in variant %s", e.Char, e.Char, e.Variant)
}

// Store 保存所有变体的字符表、可伸缩字符配方与字体参数。
type Store struct {
	Params Params

	variants  map[string]map[rune]CharMetrics
	fallbacks map[string][]string
	chains    map[string][]string
	recipes   map[rune]*StretchRecipe
	sealed    bool
}

// Normal is the variant every lookup chain ends with.
const Normal = "normal"

// NewStore creates an empty store using the given font parameters.
func NewStore(params Params) *Store {
	return &Store{
		Params:    params,
		variants:  map[string]map[rune]CharMetrics{},
		fallbacks: map[string][]string{},
		chains:    map[string][]string{},
		recipes:   map[rune]*StretchRecipe{},
	}
}

// AddVariant 注册一个变体的字符表以及按优先级排列的直接回退变体。
// 同名变体再次注册时字符表合并，后注册的覆盖先注册的。
func (s *Store) AddVariant(name string, chars map[rune]CharMetrics, fallbacks ...string) {
	if s.sealed {
		panic("fontdata: AddVariant after Seal")
	}
	table, ok := s.variants[name]
	if !ok {
		table = make(map[rune]CharMetrics, len(chars))
		s.variants[name] = table
	}
	for r, m := range chars {
		table[r] = m
	}
	if len(fallbacks) > 0 {
		s.fallbacks[name] = append([]string(nil), fallbacks...)
	}
}

// AddRecipe registers the stretch recipe of a character. Piece metrics are
// resolved at Seal time.
func (s *Store) AddRecipe(r StretchRecipe) error {
	if s.sealed {
		return fmt.Errorf("fontdata: AddRecipe(%q) after Seal", r.Char)
	}
	if r.Assembly != nil && r.Assembly.Ext.Char == 0 {
		return fmt.Errorf("fontdata: assembly for %q has no extensible piece", r.Char)
	}
	if r.Dir == DirNone && (len(r.Variants) > 0 || r.Assembly != nil) {
		return fmt.Errorf("fontdata: recipe for %q has no direction", r.Char)
	}
	cp := r
	cp.Variants = append([]GlyphRef(nil), r.Variants...)
	s.recipes[r.Char] = &cp
	return nil
}

// Seal 计算每个变体的显式查找链，解析配方中各字形的度量，并把变体按尺寸排序。
// Seal 之后 Store 只读，可被多个 goroutine 并发读取。
func (s *Store) Seal() error {
	if s.sealed {
		return nil
	}
	if _, ok := s.variants[Normal]; !ok {
		s.variants[Normal] = map[rune]CharMetrics{}
	}
	for name := range s.variants {
		s.chains[name] = s.buildChain(name)
	}
	for ch, r := range s.recipes {
		if err := s.sealRecipe(r); err != nil {
			return fmt.Errorf("fontdata: recipe %q: %w", ch, err)
		}
	}
	s.sealed = true
	return nil
}

// buildChain 以广度优先顺序展开回退变体，去重后以 normal 结尾。
func (s *Store) buildChain(name string) []string {
	seen := map[string]bool{}
	var chain []string
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] || cur == Normal {
			continue
		}
		seen[cur] = true
		if _, ok := s.variants[cur]; ok {
			chain = append(chain, cur)
		}
		queue = append(queue, s.fallbacks[cur]...)
	}
	return append(chain, Normal)
}

func (s *Store) sealRecipe(r *StretchRecipe) error {
	for i := range r.Variants {
		m, err := s.lookupRaw(r.Variants[i].Variant, r.Variants[i].Char)
		if err != nil {
			return err
		}
		r.Variants[i].Metrics = m
	}
	sort.SliceStable(r.Variants, func(i, j int) bool {
		return r.Variants[i].Size(r.Dir) < r.Variants[j].Size(r.Dir)
	})
	if a := r.Assembly; a != nil {
		for _, p := range []*GlyphRef{a.Begin, &a.Ext, a.End, a.Mid} {
			if p == nil {
				continue
			}
			m, err := s.lookupRaw(p.Variant, p.Char)
			if err != nil {
				return err
			}
			p.Metrics = m
		}
	}
	return nil
}

// Chain returns the ordered list of variant tables consulted for variant.
// Unknown variants use the normal chain.
func (s *Store) Chain(variant string) []string {
	if c, ok := s.chains[variant]; ok {
		return c
	}
	if !s.sealed {
		return s.buildChain(variant)
	}
	return s.chains[Normal]
}

// Lookup 沿变体链查找字符度量；找不到时返回 *MissingMetricError。
func (s *Store) Lookup(variant string, ch rune) (CharMetrics, error) {
	return s.lookupRaw(variant, ch)
}

func (s *Store) lookupRaw(variant string, ch rune) (CharMetrics, error) {
	for _, name := range s.Chain(variant) {
		if m, ok := s.variants[name][ch]; ok {
			return m, nil
		}
	}
	return CharMetrics{}, &MissingMetricError{Char: ch, Variant: variant}
}

// Recipe returns the stretch recipe of ch; absence is a normal condition.
func (s *Store) Recipe(ch rune) (*StretchRecipe, bool) {
	r, ok := s.recipes[ch]
	return r, ok
}
