package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/icloudza/jsml/convert"
)

func fetch(cfg *FetchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fetch.Parse(cc, args)
	if err != nil {
		cfg.Fetch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fetch requires exactly one url", cli.ErrUsage)
	}
	b, err := download(cfg.ctx, args[0], time.Duration(cfg.Timeout)*time.Second)
	if err != nil {
		return err
	}
	p, err := cfg.newParser()
	if err != nil {
		return err
	}
	t, err := p.Parse(b)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[0], err)
	}
	defer t.Release()

	n := t.Root()
	if cfg.Path != "" {
		var ok bool
		if n, ok = n.LookupPath(cfg.Path); !ok {
			return fmt.Errorf("%s: path %q not found", args[0], cfg.Path)
		}
	}
	return cfg.newPrinter(cc.Out).Print(n)
}

// download 以 GET 获取 url 的响应体，timeout <= 0 表示不设超时。
func download(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return convert.ReadAll(resp.Body)
}
