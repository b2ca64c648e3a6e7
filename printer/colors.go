package printer

import (
	"github.com/fatih/color"

	"github.com/icloudza/jsml/tree"
)

// Colors 为缩进引导线、key 以及各类型的值分配颜色。
type Colors struct {
	Guide *color.Color
	Key   *color.Color
	Kind  map[tree.Kind]*color.Color
}

// NewColors 返回默认配色。颜色被强制启用，是否着色由调用方（例如根据 isatty）决定。
func NewColors() *Colors {
	c := &Colors{
		Guide: color.RGB(96, 96, 96),
		Key:   color.RGB(196, 96, 16),
		Kind: map[tree.Kind]*color.Color{
			tree.Null:    color.RGB(168, 0, 196),
			tree.Object:  color.RGB(128, 168, 196),
			tree.Array:   color.RGB(196, 128, 128),
			tree.String:  color.RGB(8, 196, 16),
			tree.Integer: color.RGB(128, 216, 236),
			tree.Double:  color.RGB(128, 216, 236),
			tree.Bool:    color.New(color.FgCyan),
		},
	}
	c.Guide.EnableColor()
	c.Key.EnableColor()
	for _, k := range c.Kind {
		k.EnableColor()
	}
	return c
}

func (c *Colors) guide(s string) string {
	if c == nil || c.Guide == nil {
		return s
	}
	return c.Guide.Sprint(s)
}

func (c *Colors) key(s string) string {
	if c == nil || c.Key == nil {
		return s
	}
	return c.Key.Sprint(s)
}

func (c *Colors) value(k tree.Kind, s string) string {
	if c == nil {
		return s
	}
	f := c.Kind[k]
	if f == nil {
		return s
	}
	return f.Sprint(s)
}
