package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/icloudza/jsml/picker"
	"github.com/icloudza/jsml/tree"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path, files := args[0], args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	p := cfg.newPrinter(cc.Out)
	for _, arg := range files {
		err := withTree(cfg.MainConfig, cc.In, arg, func(t *tree.Tree) error {
			root := t.Root()
			if cfg.Data {
				root = picker.DrillDefault(root)
			}
			n, ok := root.LookupPath(path)
			if !ok {
				// 不存在时不输出，也不报错
				cfg.log.Debug("path not found", "src", arg, "path", path)
				return nil
			}
			return p.Print(n)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
