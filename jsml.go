package jsml

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/icloudza/jsml/convert"
	"github.com/icloudza/jsml/encoder"
	"github.com/icloudza/jsml/iterator"
	"github.com/icloudza/jsml/parser"
	"github.com/icloudza/jsml/picker"
	"github.com/icloudza/jsml/printer"
	"github.com/icloudza/jsml/source"
	"github.com/icloudza/jsml/tree"
)

type (
	Tree = tree.Tree
	Node = tree.Node
	Kind = tree.Kind
)

const (
	Null    = tree.Null
	Object  = tree.Object
	Array   = tree.Array
	String  = tree.String
	Integer = tree.Integer
	Double  = tree.Double
	Bool    = tree.Bool
)

// SetDefaultDrillKeys 默认下钻键配置
func SetDefaultDrillKeys(keys ...string) {
	picker.SetDefaultDrillKeys(keys...)
}

//
// ========================= 解析 =========================
//

// Parse 以 UTF-8 编码解析 text，text 本身不会被修改。
func Parse(text []byte, opts ...parser.Option) (*Tree, error) {
	return parser.New(opts...).Parse(text)
}

func ParseString(s string, opts ...parser.Option) (*Tree, error) {
	return parser.New(opts...).ParseString(s)
}

// ParseWith 使用指定编码器解析，enc 为 nil 时 \uXXXX 原样保留。
func ParseWith(text []byte, enc encoder.Encoder) (*Tree, error) {
	return parser.New(parser.WithEncoder(enc)).Parse(text)
}

// ParseAny 解析 string / *string / []byte / io.Reader 或任意可序列化的 Go 值。
func ParseAny(v any, opts ...parser.Option) (*Tree, error) {
	b, err := convert.From(v)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case string, *string:
		// b 是字符串的只读视图；不能写进调用方切片的底层数组
		opts = append(opts[:len(opts):len(opts)], parser.WithInPlace(false))
	case []byte:
	default:
		// b 是新分配的私有缓冲区
		opts = append([]parser.Option{parser.WithInPlace(true)}, opts...)
	}
	return parser.New(opts...).Parse(b)
}

// ParseFile 读取并解析操作系统文件系统中的 path。
// 文件大小上限为 convert.MaxJSONSize，需要其他上限时使用 ParseSource。
func ParseFile(path string, opts ...parser.Option) (*Tree, error) {
	return ParseFileFS(afero.NewOsFs(), path, opts...)
}

// ParseFileFS 同 ParseFile，从 fs 读取，同样受 convert.MaxJSONSize 限制。
func ParseFileFS(fs afero.Fs, path string, opts ...parser.Option) (*Tree, error) {
	return ParseSource(source.NewReader(fs), path, opts...)
}

// ParseSource 用 r 读取 path 并原地解析，文件大小上限由 r.WithMaxSize 决定。
func ParseSource(r *source.Reader, path string, opts ...parser.Option) (*Tree, error) {
	b, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	opts = append([]parser.Option{parser.WithInPlace(true)}, opts...)
	t, err := parser.New(opts...).Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Free 释放整棵树，nil 或已释放的树无副作用。
func Free(t *Tree) {
	t.Release()
}

//
// ========================= 查询 =========================
//

func Get(n *Node, key string) *Node { return n.Get(key) }

func Item(n *Node, idx int) *Node { return n.Item(idx) }

func GetNested(n *Node, path string) *Node { return n.GetNested(path) }

func Lookup(n *Node, key string) (*Node, bool) { return n.Lookup(key) }

func Index(n *Node, idx int) (*Node, bool) { return n.Index(idx) }

func LookupPath(n *Node, path string) (*Node, bool) { return n.LookupPath(path) }

// GetData 先按默认下钻键进入载荷，再按 path 查询。
func GetData(n *Node, path string) *Node {
	return picker.DrillDefault(n).GetNested(path)
}

func GetDataWithKeys(n *Node, keys []string, path string) *Node {
	return picker.Drill(n, keys).GetNested(path)
}

// Any 自动类型推断，不存在时返回 nil
func Any(n *Node, path string) any {
	return n.GetNested(path).Value()
}

func AnyOr(n *Node, path string, def any) any {
	if x := Any(n, path); x != nil {
		return x
	}
	return def
}

// AnyAs 泛型直达
func AnyAs[T any](n *Node, path string) (T, bool) {
	c, ok := n.LookupPath(path)
	if !ok {
		var zero T
		return zero, false
	}
	return tree.As[T](c)
}

func AnyOrAs[T any](n *Node, path string, def T) T {
	if v, ok := AnyAs[T](n, path); ok {
		return v
	}
	return def
}

// TypeOf 类型检测，不存在的路径返回 "missing"
func TypeOf(n *Node, path string) string {
	c, ok := n.LookupPath(path)
	if !ok {
		return "missing"
	}
	return c.Kind().String()
}

// EachObject 迭代器 API
func EachObject(n *Node, path string, fn func(k string, v *Node) bool) bool {
	return iterator.EachObject(n, path, fn)
}

func EachArray(n *Node, path string, fn func(i int, v *Node) bool) bool {
	return iterator.EachArray(n, path, fn)
}

//
// ========================= 输出 =========================
//

// Print 把整棵树以诊断格式写到标准输出。
func Print(t *Tree) error {
	return Fprint(os.Stdout, t)
}

func Fprint(w io.Writer, t *Tree, opts ...printer.Option) error {
	return printer.New(w, opts...).Print(t.Root())
}

// UnquoteLiteral 把 Go 源码里手写的 JSON 字面量中的 \" 还原为 "。
func UnquoteLiteral(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
