package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/fontdata"
	"github.com/ByLCY/mathbox/fontdata/tex"
	"github.com/ByLCY/mathbox/notation"
)

// 默认值。伸缩容差与增长系数可通过 Options 配置。
const (
	DefaultFontSize             = 16.0 // pt per em
	DefaultDelimiterShortfall   = 0.901
	DefaultDelimiterGrowth      = 1.5
	DefaultScriptSizeMultiplier = 0.71
	DefaultScriptMinSize        = 0.4
	DefaultErrorText            = "Math input error"
)

// Options 配置布局阶段所需的依赖与参数。
type Options struct {
	// Store 为 nil 时使用内置的 TeX 度量表。
	Store *fontdata.Store
	// Logger 为 nil 时不输出日志。
	Logger *zap.Logger
	// Measurer 为缺失度量的字符提供尺寸；可为 nil。
	Measurer TextMeasurer
	// Assembler 可在多次 Build 之间共享以复用伸缩结果缓存；为 nil 时每次新建。
	Assembler *Assembler

	// Display 强制根节点使用 display 样式。
	Display bool
	// FontSize 是 1em 对应的磅数，用于绝对单位换算。
	FontSize float64
	// ContainerWidth 是根容器宽度（em），用于百分比宽度；0 表示使用根节点的自然宽度。
	ContainerWidth float64

	DelimiterShortfall   float64
	DelimiterGrowth      float64
	ScriptSizeMultiplier float64
	ScriptMinSize        float64
	MaxScriptLevel       int

	// ErrorText 是结构错误子树的替代文本。
	ErrorText string
}

// TextMeasurer 由渲染后端实现，测量字体表中没有的字符（单位 em）。
type TextMeasurer interface {
	MeasureText(text string, variant string) (h, d, w float64, ok bool)
}

// withDefaults 填充零值字段。
func (o Options) withDefaults() (Options, error) {
	if o.Store == nil {
		s, err := tex.Store()
		if err != nil {
			return o, err
		}
		o.Store = s
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.DelimiterShortfall <= 0 {
		o.DelimiterShortfall = DefaultDelimiterShortfall
	}
	if o.DelimiterGrowth <= 0 {
		o.DelimiterGrowth = DefaultDelimiterGrowth
	}
	if o.ScriptSizeMultiplier <= 0 {
		o.ScriptSizeMultiplier = DefaultScriptSizeMultiplier
	}
	if o.ScriptMinSize <= 0 {
		o.ScriptMinSize = DefaultScriptMinSize
	}
	if o.MaxScriptLevel <= 0 {
		o.MaxScriptLevel = notation.DefaultMaxScriptLevel
	}
	if o.ErrorText == "" {
		o.ErrorText = DefaultErrorText
	}
	if o.Assembler == nil {
		o.Assembler = NewAssembler(o.Store, o.DelimiterShortfall, o.DelimiterGrowth)
	}
	return o, nil
}
