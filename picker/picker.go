// Package picker 负责“下钻”：很多接口把有效载荷包在 {"data": ...} 之类的外壳里，
// Drill 找到外壳中的载荷节点，后续查询即可省略前缀。
package picker

import (
	"sync/atomic"

	"github.com/icloudza/jsml/tree"
)

var defaultDrillKeys atomic.Pointer[[]string]

func init() {
	keys := []string{"data"}
	defaultDrillKeys.Store(&keys)
}

// SetDefaultDrillKeys 替换默认下钻键，可并发调用。
func SetDefaultDrillKeys(keys ...string) {
	cp := append([]string(nil), keys...)
	defaultDrillKeys.Store(&cp)
}

func GetDefaultDrillKeys() []string {
	return *defaultDrillKeys.Load()
}

//go:nosplit
func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		b := make([]byte, len(s))
		b[0] = s[0] - 32
		copy(b[1:], s[1:])
		return string(b)
	}
	return s
}

// Drill 按 keys 的顺序查找 n 的直接成员（同时尝试首字母大写形式），
// 返回第一个命中的成员；都没有命中或 n 不是对象时返回 n 本身。
func Drill(n *tree.Node, keys []string) *tree.Node {
	if n.Kind() != tree.Object {
		return n
	}
	for _, k := range keys {
		if v, ok := n.Lookup(k); ok {
			return v
		}
		if v, ok := n.Lookup(capitalizeFirst(k)); ok {
			return v
		}
	}
	return n
}

// DrillDefault 使用默认下钻键。
func DrillDefault(n *tree.Node) *tree.Node {
	return Drill(n, GetDefaultDrillKeys())
}
