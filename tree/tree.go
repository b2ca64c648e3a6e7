package tree

// Tree 持有一次解析得到的根节点以及节点字符串引用的缓冲区。
// 整棵树由持有者通过 Release 一次性释放。
type Tree struct {
	root  *Node
	src   []byte
	alloc Allocator
	nodes int
}

// Root 返回根节点；树已释放时返回 nil（导航操作会得到哨兵）。
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Nodes 返回树中的节点总数。
func (t *Tree) Nodes() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.nodes
}

func (t *Tree) Released() bool { return t == nil || t.root == nil }

// Release 把每个节点恰好归还分配器一次，重复调用无副作用。
func (t *Tree) Release() {
	if t == nil || t.root == nil {
		return
	}
	release(t.root, t.alloc)
	t.root = nil
	t.src = nil
	t.nodes = 0
}

// release 先释放子节点再释放自身；next 必须在递归前取出，因为 Free 会清空节点。
func release(n *Node, a Allocator) {
	for c := n.first; c != nil; {
		next := c.next
		release(c, a)
		c = next
	}
	a.Free(n)
}

//
// ========================= 构建 =========================
//

// Key 是可选的成员名，仅对象成员携带。
type Key struct {
	name string
	ok   bool
}

// NoKey 用于数组元素与根节点。
var NoKey Key

func KeyOf(name string) Key { return Key{name: name, ok: true} }

// Builder 供解析器按发现顺序挂接节点。parent 为 nil 表示文档根。
type Builder struct {
	alloc  Allocator
	holder Node
	count  int
}

func NewBuilder(a Allocator) *Builder {
	if a == nil {
		a = HeapAllocator{}
	}
	return &Builder{alloc: a}
}

func (b *Builder) attach(parent *Node, kind Kind, key Key, off int) *Node {
	if parent == nil {
		parent = &b.holder
		key = NoKey
	} else {
		switch parent.kind {
		case Object:
			if !key.ok {
				panic("tree: object member without key")
			}
		case Array:
			key = NoKey
		default:
			panic("tree: attach to scalar " + parent.kind.String())
		}
	}
	n := b.alloc.Alloc()
	n.kind = kind
	n.key, n.keyed = key.name, key.ok
	n.off = off
	if parent.last == nil {
		parent.first = n
	} else {
		parent.last.next = n
	}
	parent.last = n
	parent.n++
	b.count++
	return n
}

func (b *Builder) Object(parent *Node, key Key, off int) *Node {
	return b.attach(parent, Object, key, off)
}

func (b *Builder) Array(parent *Node, key Key, off int) *Node {
	return b.attach(parent, Array, key, off)
}

func (b *Builder) String(parent *Node, key Key, off int, s string) *Node {
	n := b.attach(parent, String, key, off)
	n.str = s
	return n
}

// Integer 同时填充 float64 影子值。
func (b *Builder) Integer(parent *Node, key Key, off int, v int64) *Node {
	n := b.attach(parent, Integer, key, off)
	n.i = v
	n.f = float64(v)
	return n
}

func (b *Builder) Double(parent *Node, key Key, off int, v float64) *Node {
	n := b.attach(parent, Double, key, off)
	n.f = v
	return n
}

func (b *Builder) Bool(parent *Node, key Key, off int, v bool) *Node {
	n := b.attach(parent, Bool, key, off)
	n.b = v
	return n
}

func (b *Builder) Null(parent *Node, key Key, off int) *Node {
	return b.attach(parent, Null, key, off)
}

// Count 返回已挂接的节点数。
func (b *Builder) Count() int { return b.count }

// Finish 把已构建的根节点交给新的 Tree，src 为节点字符串引用的缓冲区。
// 没有根节点时返回 nil。
func (b *Builder) Finish(src []byte) *Tree {
	root := b.holder.first
	if root == nil {
		return nil
	}
	t := &Tree{root: root, src: src, alloc: b.alloc, nodes: b.count}
	b.holder = Node{}
	b.count = 0
	return t
}

// Discard 释放解析失败时残留的部分树。
func (b *Builder) Discard() {
	for c := b.holder.first; c != nil; {
		next := c.next
		release(c, b.alloc)
		c = next
	}
	b.holder = Node{}
	b.count = 0
}
