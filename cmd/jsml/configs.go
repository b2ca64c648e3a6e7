package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"

	"github.com/icloudza/jsml/config"
	"github.com/icloudza/jsml/parser"
	"github.com/icloudza/jsml/picker"
	"github.com/icloudza/jsml/printer"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Encoding   string `cli:"name=enc aliases=encoding desc='unicode escape target: utf-8, latin1, windows-1252 or none'"`
	MaxDepth   int    `cli:"name=depth desc='maximum container nesting, 0 for unlimited'"`
	Color      bool   `cli:"name=color desc='print with color'"`
	NoColor    bool   `cli:"name=nocolor desc='print without color'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='debug logging'"`

	ctx  context.Context
	fs   afero.Fs
	conf *config.Config
	log  *slog.Logger

	Main *cli.Command
}

// optSet 判断命令行是否显式给出了某个选项。
func optSet(cmd *cli.Command, name string) bool {
	if cmd == nil {
		return false
	}
	for _, opt := range cmd.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// settings 载入配置文件（如有），再用命令行选项覆盖。
func (cfg *MainConfig) settings() error {
	conf := config.Default()
	if cfg.ConfigFile != "" {
		c, err := config.Load(cfg.fs, cfg.ConfigFile)
		if err != nil {
			return err
		}
		conf = c
	}
	if optSet(cfg.Main, "enc") {
		conf.Encoding = cfg.Encoding
	}
	if optSet(cfg.Main, "depth") {
		conf.MaxDepth = cfg.MaxDepth
	}
	switch {
	case cfg.Color && cfg.NoColor:
		return fmt.Errorf("%w: -color and -nocolor are exclusive", cli.ErrUsage)
	case cfg.Color:
		conf.Color = config.ColorAlways
	case cfg.NoColor:
		conf.Color = config.ColorNever
	}
	if cfg.Verbose {
		conf.LogLevel = "debug"
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	level, _ := conf.Level()
	cfg.conf = conf
	cfg.log = newLogger(os.Stderr, level)
	picker.SetDefaultDrillKeys(conf.DrillKeys...)
	return nil
}

func (cfg *MainConfig) newParser() (*parser.Parser, error) {
	opts, err := cfg.conf.ParserOptions(cfg.log)
	if err != nil {
		return nil, err
	}
	// 读入的缓冲区只属于本次解析
	opts = append(opts, parser.WithInPlace(true))
	return parser.New(opts...), nil
}

func (cfg *MainConfig) newPrinter(w io.Writer) *printer.Printer {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}
	return printer.New(w, cfg.conf.PrinterOptions(cfg.conf.UseColor(tty))...)
}

type PrintConfig struct {
	*MainConfig

	Print *cli.Command
}

type GetConfig struct {
	*MainConfig
	Data bool `cli:"name=data desc='drill into the configured envelope keys first'"`

	Get *cli.Command
}

type FetchConfig struct {
	*MainConfig
	Timeout int    `cli:"name=timeout desc='request timeout in seconds'"`
	Path    string `cli:"name=path desc='only print the value at this dotted path'"`

	Fetch *cli.Command
}
