// Package config 加载 CLI 配置：配置文件、MATHBOX_ 前缀的环境变量以及命令行参数，
// 并转换为布局与渲染选项。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ByLCY/mathbox/layout"
)

// EnvPrefix 是环境变量前缀，例如 MATHBOX_LAYOUT_FONT_SIZE。
const EnvPrefix = "MATHBOX"

type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

type LoggerConfig struct {
	// Level 取 debug/info/warn/error。
	Level string `mapstructure:"level" yaml:"level"`
	// Format 取 console 或 json；console 使用开发模式编码器。
	Format string `mapstructure:"format" yaml:"format"`
	// File 非空时额外写入按大小轮转的 JSON 日志。
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
}

type LayoutConfig struct {
	Display              bool    `mapstructure:"display" yaml:"display"`
	FontSize             float64 `mapstructure:"font_size" yaml:"font_size"`
	ContainerWidth       float64 `mapstructure:"container_width" yaml:"container_width"`
	DelimiterShortfall   float64 `mapstructure:"delimiter_shortfall" yaml:"delimiter_shortfall"`
	DelimiterGrowth      float64 `mapstructure:"delimiter_growth" yaml:"delimiter_growth"`
	ScriptSizeMultiplier float64 `mapstructure:"script_size_multiplier" yaml:"script_size_multiplier"`
	ScriptMinSize        float64 `mapstructure:"script_min_size" yaml:"script_min_size"`
	MaxScriptLevel       int     `mapstructure:"max_script_level" yaml:"max_script_level"`
	ErrorText            string  `mapstructure:"error_text" yaml:"error_text"`
}

type RenderConfig struct {
	// Format 取 svg、pdf 或 html。
	Format     string  `mapstructure:"format" yaml:"format"`
	Margin     float64 `mapstructure:"margin" yaml:"margin"`
	Standalone bool    `mapstructure:"standalone" yaml:"standalone"`
	Title      string  `mapstructure:"title" yaml:"title"`
}

// SetDefaults 写入所有键的默认值；未设置默认值的键不会被环境变量覆盖。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)

	v.SetDefault("layout.display", false)
	v.SetDefault("layout.font_size", layout.DefaultFontSize)
	v.SetDefault("layout.container_width", 0.0)
	v.SetDefault("layout.delimiter_shortfall", layout.DefaultDelimiterShortfall)
	v.SetDefault("layout.delimiter_growth", layout.DefaultDelimiterGrowth)
	v.SetDefault("layout.script_size_multiplier", layout.DefaultScriptSizeMultiplier)
	v.SetDefault("layout.script_min_size", layout.DefaultScriptMinSize)
	v.SetDefault("layout.max_script_level", 2)
	v.SetDefault("layout.error_text", layout.DefaultErrorText)

	v.SetDefault("render.format", "svg")
	v.SetDefault("render.margin", 0.25)
	v.SetDefault("render.standalone", true)
	v.SetDefault("render.title", "")
}

// Load 读取配置。path 为空时在当前目录查找 mathbox.yaml，找不到则只使用默认值与环境变量。
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mathbox")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查取值范围，汇总所有问题。
func (c *Config) Validate() error {
	var errs error
	switch c.Render.Format {
	case "svg", "pdf", "html":
	default:
		errs = multierr.Append(errs, fmt.Errorf("render.format 必须是 svg、pdf 或 html，得到 %q", c.Render.Format))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logger.format 必须是 console 或 json，得到 %q", c.Logger.Format))
	}
	if _, err := zap.ParseAtomicLevel(c.Logger.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logger.level: %w", err))
	}
	if c.Layout.FontSize <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.font_size 必须为正数"))
	}
	if c.Layout.ContainerWidth < 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.container_width 不能为负"))
	}
	if s := c.Layout.DelimiterShortfall; s <= 0 || s > 1 {
		errs = multierr.Append(errs, fmt.Errorf("layout.delimiter_shortfall 必须在 (0, 1] 内"))
	}
	if c.Layout.DelimiterGrowth < 1 {
		errs = multierr.Append(errs, fmt.Errorf("layout.delimiter_growth 不能小于 1"))
	}
	if m := c.Layout.ScriptSizeMultiplier; m <= 0 || m > 1 {
		errs = multierr.Append(errs, fmt.Errorf("layout.script_size_multiplier 必须在 (0, 1] 内"))
	}
	if c.Layout.MaxScriptLevel < 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.max_script_level 不能为负"))
	}
	return errs
}

// LayoutOptions 把配置转换为 layout.Options。
func (c *Config) LayoutOptions(logger *zap.Logger) layout.Options {
	return layout.Options{
		Logger:               logger,
		Display:              c.Layout.Display,
		FontSize:             c.Layout.FontSize,
		ContainerWidth:       c.Layout.ContainerWidth,
		DelimiterShortfall:   c.Layout.DelimiterShortfall,
		DelimiterGrowth:      c.Layout.DelimiterGrowth,
		ScriptSizeMultiplier: c.Layout.ScriptSizeMultiplier,
		ScriptMinSize:        c.Layout.ScriptMinSize,
		MaxScriptLevel:       c.Layout.MaxScriptLevel,
		ErrorText:            c.Layout.ErrorText,
	}
}

// NewLogger 按配置创建 zap 日志器：控制台输出到 stderr，设置了 File 时再以 JSON
// 写入轮转文件。
func NewLogger(lc LoggerConfig) (*zap.Logger, error) {
	return newLogger(lc, zapcore.Lock(os.Stderr))
}

func newLogger(lc LoggerConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	cores := []zapcore.Core{zapcore.NewCore(encoder(lc.Format), console, level)}
	if lc.File != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSize,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAge,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("mathbox"), nil
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}
