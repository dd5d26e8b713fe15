package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/binding"
	"github.com/ByLCY/mathbox/config"
	"github.com/ByLCY/mathbox/dsl"
	"github.com/ByLCY/mathbox/layout"
	"github.com/ByLCY/mathbox/renderer"
	canvasrenderer "github.com/ByLCY/mathbox/renderer/canvas"
	htmlrenderer "github.com/ByLCY/mathbox/renderer/html"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// renderFlags 是 render 子命令中不经过 viper 的参数。
type renderFlags struct {
	cfgFile string
	in      string
	out     string
	data    string
	debug   string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mathbox",
		Short:         "mathbox lays out math notation trees and renders them to SVG, PDF or HTML.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a DSL file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, f.cfgFile)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			data, err := loadData(f.data)
			if err != nil {
				return err
			}
			if err := run(f, cfg, data, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 %s：%s\n", strings.ToUpper(cfg.Render.Format), f.out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.cfgFile, "config", "c", "", "配置文件路径（默认查找 ./mathbox.yaml）")
	flags.StringVar(&f.in, "in", "examples/demo.mathbox", "DSL 文件路径")
	flags.StringVar(&f.out, "out", "output/demo.svg", "输出路径")
	flags.StringVar(&f.data, "data", "", "绑定到 DSL 的 JSON 数据，以 @ 开头表示文件")
	flags.StringVar(&f.debug, "debug", "", "布局调试 JSON 输出路径")
	flags.String("format", "svg", "输出格式：svg、pdf 或 html")
	flags.Bool("display", false, "以陈列样式排版根节点")
	flags.Float64("font-size", layout.DefaultFontSize, "1em 对应的磅数")
	flags.Float64("container-width", 0, "百分比宽度的容器宽度（em）")
	flags.String("log-level", "info", "日志级别")

	_ = v.BindPFlag("render.format", flags.Lookup("format"))
	_ = v.BindPFlag("layout.display", flags.Lookup("display"))
	_ = v.BindPFlag("layout.font_size", flags.Lookup("font-size"))
	_ = v.BindPFlag("layout.container_width", flags.Lookup("container-width"))
	_ = v.BindPFlag("logger.level", flags.Lookup("log-level"))
	return cmd
}

// loadData 解析 --data 的值：JSON 文本，或 @path 指向的 JSON 文件。
func loadData(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	body := []byte(raw)
	if strings.HasPrefix(raw, "@") {
		b, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		body = b
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// run 串联解析、绑定、布局与渲染。可恢复的布局错误只记录日志。
func run(f renderFlags, cfg *config.Config, data any, logger *zap.Logger) error {
	file, err := os.Open(f.in)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", f.in, err)
	}
	defer file.Close()

	ast, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}
	roots, err := dsl.Compile(ast)
	if err != nil {
		return fmt.Errorf("转换 DSL 失败: %w", err)
	}
	if len(roots) == 0 {
		return fmt.Errorf("%s 中没有表达式", f.in)
	}
	for _, root := range roots {
		for _, path := range binding.Apply(root, data) {
			logger.Warn("unresolved placeholder", zap.String("path", path))
		}
	}

	r, measurer := newRenderer(cfg, logger)
	opts := cfg.LayoutOptions(logger)
	opts.Measurer = measurer

	results, err := layout.BuildAll(roots, opts)
	for _, e := range multierr.Errors(err) {
		logger.Warn("layout", zap.Error(e))
	}
	for i, res := range results {
		if res == nil {
			return fmt.Errorf("表达式 %d 布局失败: %w", i, err)
		}
	}

	if f.debug != "" {
		if err := writeDebug(results, f.debug); err != nil {
			return err
		}
	}

	out, err := r.RenderAll(results)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(f.out, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// newRenderer 按格式选择后端；缺失字符统一由画布后端的 Latin Modern 字体测量。
func newRenderer(cfg *config.Config, logger *zap.Logger) (renderer.Renderer, layout.TextMeasurer) {
	if cfg.Render.Format == "html" {
		h := htmlrenderer.NewRenderer(htmlrenderer.Options{
			Standalone: cfg.Render.Standalone,
			Margin:     cfg.Render.Margin,
			Measurer:   canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Logger: logger}),
			Logger:     logger,
		})
		return h, h
	}
	c := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Format: canvasrenderer.Format(cfg.Render.Format),
		Margin: cfg.Render.Margin,
		Title:  cfg.Render.Title,
		Logger: logger,
	})
	return c, c
}

// writeDebug 输出调试 JSON；多个表达式时在文件名后追加序号。
func writeDebug(results []*layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	ext := filepath.Ext(debugPath)
	base := strings.TrimSuffix(debugPath, ext)
	for i, res := range results {
		path := debugPath
		if len(results) > 1 {
			path = fmt.Sprintf("%s.%d%s", base, i, ext)
		}
		if err := layout.WriteDebugJSON(res, path); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return nil
}
