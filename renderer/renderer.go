package renderer

import (
	"fmt"

	"github.com/ByLCY/mathbox/layout"
)

// Renderer 将布局结果输出为最终文件，例如 SVG、PDF 或 HTML 片段。
// Render 返回生成的字节数据；RenderAll 把多个表达式写入同一份输出。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
	RenderAll(results []*layout.Result) ([]byte, error)
}

// Frame 是一个表达式在输出中占据的区域，单位为根 em。
// 基线位于 Baseline 处（自下而上量取），左边距为 Margin。
type Frame struct {
	Width    float64
	Height   float64
	Baseline float64
	Margin   float64
}

// FrameOf 计算带边距的输出区域。
func FrameOf(result *layout.Result, margin float64) (Frame, error) {
	if result == nil || result.Root == nil {
		return Frame{}, fmt.Errorf("渲染结果为空")
	}
	if margin < 0 {
		margin = 0
	}
	b := result.Box()
	return Frame{
		Width:    b.Advance() + 2*margin,
		Height:   b.H + b.D + 2*margin,
		Baseline: b.D + margin,
		Margin:   margin,
	}, nil
}

// Stack 把多个区域自上而下排列，返回总宽高以及每个区域底边的纵坐标（自下而上）。
func Stack(frames []Frame, gap float64) (width, height float64, bottoms []float64) {
	for i, f := range frames {
		if f.Width > width {
			width = f.Width
		}
		height += f.Height
		if i > 0 {
			height += gap
		}
	}
	bottoms = make([]float64, len(frames))
	top := height
	for i, f := range frames {
		bottoms[i] = top - f.Height
		top -= f.Height + gap
	}
	return width, height, bottoms
}
