// Package config 描述 jsml 命令行工具的配置文件（YAML）。
//
//	encoding: utf-8
//	max_depth: 512
//	max_size: 10485760
//	color: auto
//	indent: "┼──"
//	log_level: info
//	drill_keys: [data, result]
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/icloudza/jsml/convert"
	"github.com/icloudza/jsml/encoder"
	"github.com/icloudza/jsml/parser"
	"github.com/icloudza/jsml/printer"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	ErrInvalidColor    = errors.New("invalid color mode")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidMaxSize  = errors.New("invalid max size")
	ErrEmptyIndent     = errors.New("empty indent")
)

type Config struct {
	Encoding  string   `yaml:"encoding"`
	MaxDepth  int      `yaml:"max_depth"`
	MaxSize   int64    `yaml:"max_size"`
	Color     string   `yaml:"color"`
	Indent    string   `yaml:"indent"`
	LogLevel  string   `yaml:"log_level"`
	DrillKeys []string `yaml:"drill_keys"`
}

func Default() *Config {
	return &Config{
		Encoding:  "utf-8",
		MaxDepth:  parser.DefaultMaxDepth,
		MaxSize:   convert.MaxJSONSize,
		Color:     ColorAuto,
		Indent:    printer.DefaultIndent,
		LogLevel:  "info",
		DrillKeys: []string{"data"},
	}
}

// Load 读取 fs 上的 YAML 文件，未出现的字段保留默认值。
func Load(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(b, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查取值范围；所有问题合并为一个错误返回。
func (c *Config) Validate() error {
	var errs []error
	if _, err := encoder.ByName(c.Encoding); err != nil {
		errs = append(errs, err)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidColor, c.Color))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMaxSize, c.MaxSize))
	}
	if c.Indent == "" {
		errs = append(errs, ErrEmptyIndent)
	}
	return errors.Join(errs...)
}

// Level 把 log_level 转成 slog.Level。
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}

// ParserOptions 把配置翻译成解析器选项，解析失败写入 logger。
func (c *Config) ParserOptions(logger *slog.Logger) ([]parser.Option, error) {
	enc, err := encoder.ByName(c.Encoding)
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{
		parser.WithEncoder(enc),
		parser.WithMaxDepth(c.MaxDepth),
	}
	if logger != nil {
		opts = append(opts, parser.WithLogger(logger), parser.WithReporter(parser.LogReporter(logger)))
	}
	return opts, nil
}

// PrinterOptions 返回打印选项；color 为 true 时启用默认配色。
func (c *Config) PrinterOptions(color bool) []printer.Option {
	opts := []printer.Option{printer.WithIndent(c.Indent)}
	if color {
		opts = append(opts, printer.WithColors(printer.NewColors()))
	}
	return opts
}

// UseColor 根据 color 模式和输出是否为终端决定是否着色。
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return isTerminal
}
