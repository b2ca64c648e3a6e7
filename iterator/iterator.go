package iterator

import (
	"github.com/icloudza/jsml/tree"
)

// EachObject 遍历 n 下点分路径 path 指向的对象成员（path 为空表示 n 本身）。
// 回调返回 false 时中止；至少访问到一个成员时返回 true。
func EachObject(n *tree.Node, path string, fn func(k string, v *tree.Node) bool) bool {
	obj, ok := n.LookupPath(path)
	if !ok || obj.Kind() != tree.Object {
		return false
	}
	hit := false
	for k, v := range obj.Members() {
		hit = true
		if !fn(k, v) {
			break
		}
	}
	return hit
}

// EachArray 遍历 path 指向的数组元素。
func EachArray(n *tree.Node, path string, fn func(i int, v *tree.Node) bool) bool {
	arr, ok := n.LookupPath(path)
	if !ok || arr.Kind() != tree.Array {
		return false
	}
	i := 0
	for v := range arr.Children() {
		keep := fn(i, v)
		i++
		if !keep {
			break
		}
	}
	return i > 0
}

// Collect 把 path 指向的数组元素逐个转换后收集起来，转换失败的元素被跳过。
func Collect[T any](n *tree.Node, path string) []T {
	var out []T
	EachArray(n, path, func(_ int, v *tree.Node) bool {
		if x, ok := tree.As[T](v); ok {
			out = append(out, x)
		}
		return true
	})
	return out
}
