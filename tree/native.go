package tree

// Value 把以 n 为根的子树转为 Go 原生类型：
// null -> nil
// true/false -> bool
// "str" -> string
// 123 -> int64，1.5 / 1e3 -> float64
// [ ... ] -> []any（递归）
// { ... } -> map[string]any（递归；重复 key 以第一个为准，与 Get 一致）
func (n *Node) Value() any {
	switch n.Kind() {
	case String:
		return n.str
	case Integer:
		return n.i
	case Double:
		return n.f
	case Bool:
		return n.b
	case Array:
		out := make([]any, 0, n.n)
		for c := n.first; c != nil; c = c.next {
			out = append(out, c.Value())
		}
		return out
	case Object:
		m := make(map[string]any, n.n)
		for c := n.first; c != nil; c = c.next {
			if _, dup := m[c.key]; dup {
				continue
			}
			m[c.key] = c.Value()
		}
		return m
	default:
		return nil
	}
}

// As 把节点转为 Go 原生值后断言为 T。
func As[T any](n *Node) (T, bool) {
	var zero T
	if out, ok := n.Value().(T); ok {
		return out, true
	}
	return zero, false
}
