package main

import (
	"context"

	"github.com/scott-cotton/cli"
	"github.com/spf13/afero"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx, fs: afero.NewOsFs()}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsml").
		WithSynopsis("jsml [opts] command [opts]").
		WithDescription("jsml parses JSON documents and prints or queries the resulting tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsmlMain(cfg, cc, args)
		}).
		WithSubs(
			PrintCommand(cfg),
			GetCommand(cfg),
			FetchCommand(cfg))
}

func PrintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PrintConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Print, "print").
		WithAliases("p").
		WithSynopsis("print [files]").
		WithDescription("print the parse tree of each file, or of stdin when no file or '-' is given").
		WithRun(func(cc *cli.Context, args []string) error {
			return printFiles(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [opts] <dotted.path> [files]").
		WithDescription("print the value at a dotted key path in each file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func FetchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FetchConfig{MainConfig: mainCfg, Timeout: 10}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fetch, "fetch").
		WithAliases("f").
		WithSynopsis("fetch [opts] <url>").
		WithDescription("fetch a JSON document over HTTP and print its parse tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fetch(cfg, cc, args)
		})
}
