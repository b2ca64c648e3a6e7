package tree

import (
	"iter"
	"strconv"
)

// Kind 表示节点类型。
type Kind uint8

const (
	Null Kind = iota
	Object
	Array
	String
	Integer
	Double
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Double:
		return "double"
	case Bool:
		return "bool"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node 表示解析树中的一个 JSON 节点。
//
// 字段全部不导出：载荷只能通过与 kind 匹配的访问器读取，
// 读错类型时访问器返回 ok=false，而不是零值冒充真实数据。
//
// 子节点组成单向链表 first → … → last，顺序与源文本一致；
// 节点不保存父指针，每个非根节点只归属于它的父节点。
type Node struct {
	kind  Kind
	keyed bool
	key   string

	str string  // String
	i   int64   // Integer
	f   float64 // Double；Integer 节点同时保存其 float64 影子值
	b   bool    // Bool

	n     int // 直接子节点数量
	off   int // 值在源文本中的起始偏移
	first *Node
	last  *Node
	next  *Node
}

// sentinel 是查找失败时返回的固定 Null 节点，永远不会被修改。
var sentinel Node

// Sentinel 返回共享的哨兵节点（kind 为 Null，无 key，无子节点）。
func Sentinel() *Node { return &sentinel }

//
// ========================= 类型与 key =========================
//

// Kind 返回节点类型，nil 节点视为 Null。
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

// Key 返回节点在父对象中的 key；数组元素和根节点没有 key。
func (n *Node) Key() (string, bool) {
	if n == nil || !n.keyed {
		return "", false
	}
	return n.key, true
}

// IsSentinel 判断节点是否为查找失败时返回的哨兵。
func (n *Node) IsSentinel() bool { return n == nil || n == &sentinel }

func (n *Node) IsNull() bool { return n.Kind() == Null }

// Offset 返回值在源文本中的起始字节偏移，哨兵返回 -1。
func (n *Node) Offset() int {
	if n.IsSentinel() {
		return -1
	}
	return n.off
}

//
// ========================= 载荷访问 =========================
//

// Text 返回 String 节点解码后的文本。
func (n *Node) Text() (string, bool) {
	if n.Kind() != String {
		return "", false
	}
	return n.str, true
}

// Int 返回 Integer 节点的值。
func (n *Node) Int() (int64, bool) {
	if n.Kind() != Integer {
		return 0, false
	}
	return n.i, true
}

// Float 返回 Double 节点的值；Integer 节点返回其 float64 影子值。
func (n *Node) Float() (float64, bool) {
	switch n.Kind() {
	case Double, Integer:
		return n.f, true
	}
	return 0, false
}

func (n *Node) Bool() (bool, bool) {
	if n.Kind() != Bool {
		return false, false
	}
	return n.b, true
}

//
// ========================= 子节点遍历 =========================
//

// Len 返回直接子节点数量（仅对 Object / Array 有意义）。
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return n.n
}

func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.first
}

func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Children 按源文本顺序遍历直接子节点。
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.FirstChild(); c != nil; c = c.next {
			if !yield(c) {
				return
			}
		}
	}
}

// Members 遍历带 key 的直接子节点（即对象成员）。
func (n *Node) Members() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for c := n.FirstChild(); c != nil; c = c.next {
			if !c.keyed {
				continue
			}
			if !yield(c.key, c) {
				return
			}
		}
	}
}

// Walk 先序遍历以 n 为根的子树，fn 返回 false 时跳过该节点的子树。
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	if n.IsSentinel() {
		return
	}
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for c := n.first; c != nil; c = c.next {
		walk(c, depth+1, fn)
	}
}
