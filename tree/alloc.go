package tree

import "sync"

// Allocator 决定节点如何获取与归还。
//
// Alloc 必须返回零值节点；Free 在整棵树释放时对每个节点恰好调用一次。
type Allocator interface {
	Alloc() *Node
	Free(n *Node)
}

// HeapAllocator 是默认分配器：直接 new，Free 时清零，
// 使残留的旧引用只能读到一个空的 Null 节点。
type HeapAllocator struct{}

func (HeapAllocator) Alloc() *Node { return new(Node) }

func (HeapAllocator) Free(n *Node) { *n = Node{} }

// PoolAllocator 通过 sync.Pool 复用节点，适合反复解析同类文档的场景。
// 释放后的节点会被后续解析复用，树释放后不得再访问其中的节点。
type PoolAllocator struct {
	pool sync.Pool
}

func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{pool: sync.Pool{New: func() any { return new(Node) }}}
}

func (p *PoolAllocator) Alloc() *Node { return p.pool.Get().(*Node) }

func (p *PoolAllocator) Free(n *Node) {
	*n = Node{}
	p.pool.Put(n)
}
