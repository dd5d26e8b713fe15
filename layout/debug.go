package layout

import (
	"os"

	json "github.com/json-iterator/go"

	"github.com/ByLCY/mathbox/notation"
)

// Summary 是包装树的可序列化摘要，坐标与尺寸均为父节点 em。
type Summary struct {
	Kind     notation.Kind     `json:"kind"`
	Path     string            `json:"path"`
	Text     string            `json:"text,omitempty"`
	Class    notation.TeXClass `json:"class"`
	Level    int               `json:"scriptlevel"`
	Scale    float64           `json:"scale"`
	Box      BBox              `json:"box"`
	Offset   Point             `json:"offset"`
	Computed bool              `json:"computed"`
	Error    bool              `json:"error,omitempty"`
	Stretch  *StretchSummary   `json:"stretch,omitempty"`
	Table    *TableGeometry    `json:"table,omitempty"`
	Children []Summary         `json:"children,omitempty"`
}

// StretchSummary 描述伸缩运算符选用的变体或拼装方式。
type StretchSummary struct {
	Variant string  `json:"variant,omitempty"`
	Pieces  int     `json:"pieces,omitempty"`
	Repeat  int     `json:"repeat,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Size    float64 `json:"size"`
}

// Summarize 返回布局结果的摘要树。
func Summarize(res *Result) *Summary {
	if res == nil || res.Root == nil {
		return nil
	}
	s := summarize(res.Root, Point{})
	return &s
}

func summarize(w *Wrapper, off Point) Summary {
	s := Summary{
		Kind:     w.Node.Kind,
		Path:     w.Node.Path(),
		Text:     w.Node.Text,
		Class:    w.Node.TeXClass,
		Level:    w.Node.ScriptLevel(),
		Scale:    w.Scale,
		Box:      w.BBox(),
		Offset:   off,
		Computed: w.Computed(),
		Error:    w.errorBox,
		Table:    w.table,
	}
	if st := w.stretch; st != nil {
		ss := &StretchSummary{Pieces: len(st.Pieces), Repeat: st.Repeat, Scale: st.Scale, Size: st.Size}
		if st.Variant != nil {
			ss.Variant = st.Variant.Variant
		}
		s.Stretch = ss
	}
	for i, c := range w.Children {
		s.Children = append(s.Children, summarize(c, w.Offset(i)))
	}
	return s
}

// WriteDebugJSON 将布局摘要输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(Summarize(res), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
