package tree

import (
	pathplan "github.com/icloudza/jsml/internal"
)

//
// ========================= 查询（哨兵语义） =========================
//
// Get / Item / GetNested 永远不返回 nil：找不到时返回哨兵。
// 哨兵的 kind 是 Null，因此仅看 Kind() 无法区分“不存在”和“值为 null”；
// 需要区分时使用 Lookup / Index / LookupPath，或 IsSentinel。

// Get 返回第一个 key 完全匹配的直接子节点。
func (n *Node) Get(key string) *Node {
	if c, ok := n.Lookup(key); ok {
		return c
	}
	return &sentinel
}

// Item 返回第 idx 个直接子节点（从 0 开始）。
func (n *Node) Item(idx int) *Node {
	if c, ok := n.Index(idx); ok {
		return c
	}
	return &sentinel
}

// GetNested 按点分路径逐段 Get，例如 "a.b.c" 等价于 Get("a").Get("b").Get("c")。
// 空路径返回节点本身。
func (n *Node) GetNested(path string) *Node {
	if c, ok := n.LookupPath(path); ok {
		return c
	}
	return &sentinel
}

// Path 与 GetNested 相同，但直接接收各段 key，不做切分。
func (n *Node) Path(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == &sentinel {
			break
		}
	}
	if cur == nil {
		return &sentinel
	}
	return cur
}

//
// ========================= 查询（显式存在性） =========================
//

func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for c := n.first; c != nil; c = c.next {
		if c.keyed && c.key == key {
			return c, true
		}
	}
	return nil, false
}

func (n *Node) Index(idx int) (*Node, bool) {
	if n == nil || idx < 0 || idx >= n.n {
		return nil, false
	}
	c := n.first
	for ; idx > 0 && c != nil; idx-- {
		c = c.next
	}
	return c, c != nil
}

func (n *Node) LookupPath(path string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	cur := n
	for _, k := range pathplan.Compile(path).Keys {
		next, ok := cur.Lookup(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
