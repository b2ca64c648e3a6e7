// Package printer 以缩进树的形式输出解析结果，仅用于诊断。
//
// 每个节点一行：缩进（深度 + 1 个缩进单元）、可选的 key、类型标签或值。
//
//	┼── OBJECT
//	┼──┼── int: 195 (int)
//	┼──┼── array: ARRAY
//	┼──┼──┼── 3 (int)
//
// 传入的节点本身也占一行，所以打印整棵树时第一行是根，
// 根的成员从两个缩进单元开始。只想看成员时可以逐个打印 Children。
package printer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/icloudza/jsml/tree"
)

const DefaultIndent = "┼──"

type Option func(*Printer)

// WithColors 启用着色，nil 表示不着色。
func WithColors(c *Colors) Option {
	return func(p *Printer) { p.colors = c }
}

func WithIndent(unit string) Option {
	return func(p *Printer) { p.indent = unit }
}

type Printer struct {
	w      io.Writer
	colors *Colors
	indent string
}

func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, indent: DefaultIndent}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Print 输出以 root 为根的整棵子树；root 为 nil 或哨兵时不输出任何内容。
func (p *Printer) Print(root *tree.Node) error {
	if root.IsSentinel() {
		return nil
	}
	bw := bufio.NewWriter(p.w)
	root.Walk(func(n *tree.Node, depth int) bool {
		p.line(bw, n, depth)
		return true
	})
	return bw.Flush()
}

func (p *Printer) line(w *bufio.Writer, n *tree.Node, depth int) {
	w.WriteString(p.colors.guide(strings.Repeat(p.indent, depth+1)))
	if k, ok := n.Key(); ok {
		w.WriteByte(' ')
		w.WriteString(p.colors.key(k))
		w.WriteString(": ")
	} else {
		w.WriteByte(' ')
	}
	w.WriteString(p.colors.value(n.Kind(), Label(n)))
	w.WriteByte('\n')
}

// Label 返回节点的单行描述，例如 "OBJECT"、"195 (int)"、"5.100000 (double)"。
func Label(n *tree.Node) string {
	switch n.Kind() {
	case tree.Object:
		return "OBJECT"
	case tree.Array:
		return "ARRAY"
	case tree.String:
		s, _ := n.Text()
		return s + " (string)"
	case tree.Integer:
		v, _ := n.Int()
		return strconv.FormatInt(v, 10) + " (int)"
	case tree.Double:
		v, _ := n.Float()
		return strconv.FormatFloat(v, 'f', 6, 64) + " (double)"
	case tree.Bool:
		v, _ := n.Bool()
		return strconv.FormatBool(v) + " (bool)"
	default:
		return "NULL"
	}
}
