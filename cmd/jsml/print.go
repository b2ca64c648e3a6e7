package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/icloudza/jsml/convert"
	"github.com/icloudza/jsml/source"
	"github.com/icloudza/jsml/tree"
)

func printFiles(cfg *PrintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Print.Parse(cc, args)
	if err != nil {
		cfg.Print.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	p := cfg.newPrinter(cc.Out)
	for _, arg := range args {
		err := withTree(cfg.MainConfig, cc.In, arg, func(t *tree.Tree) error {
			return p.Print(t.Root())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// withTree 读取并解析 arg（"-" 表示 in），在 fn 返回后释放解析树。
func withTree(cfg *MainConfig, in io.Reader, arg string, fn func(*tree.Tree) error) error {
	var (
		b   []byte
		err error
	)
	if arg == "-" {
		b, err = convert.ReadAll(in)
	} else {
		b, err = source.NewReader(cfg.fs).WithMaxSize(cfg.conf.MaxSize).Read(arg)
	}
	if err != nil {
		return err
	}
	p, err := cfg.newParser()
	if err != nil {
		return err
	}
	t, err := p.Parse(b)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", arg, err)
	}
	defer t.Release()
	cfg.log.Debug("loaded", "src", arg, "bytes", len(b), "nodes", t.Nodes())
	return fn(t)
}
