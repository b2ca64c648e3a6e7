package pathplan

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Plan 是编译后的点分路径：按顺序逐段按 key 查找。
type Plan struct {
	Keys []string
}

// ===== 小对象池，减少切片分配 =====
var keyPool = sync.Pool{New: func() any { b := make([]string, 0, 8); return &b }}

// ===== 热缓存：无锁读，多写覆盖 =====
const hotCap = 512

type hotEntry struct {
	key  string
	plan *Plan
}

var (
	hot     [hotCap]atomic.Pointer[hotEntry]
	hotNext uint64
)

func loadHot(k string) *Plan {
	// 4 路探测，降低碰撞
	h := fnv1a(k)
	for i := 0; i < 4; i++ {
		slot := int((h + uint32(i)*0x9e3779b9) & (hotCap - 1))
		if e := hot[slot].Load(); e != nil && e.key == k {
			return e.plan
		}
	}
	return nil
}

func storeHot(k string, p *Plan) {
	h := fnv1a(k)
	i := atomic.AddUint64(&hotNext, 1)
	slot := int((h + uint32(i&3)*0x9e3779b9) & (hotCap - 1))
	hot[slot].Store(&hotEntry{key: k, plan: p})
}

func fnv1a(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// ===== 编译器 =====

// Compile 按 '.' 切分路径，空段被忽略（"a..b" 等价于 "a.b"）。
// key 中的 '.' 没有转义方式。返回的 Plan 只读，可被多个 goroutine 共享。
func Compile(path string) *Plan {
	if path == "" {
		return &Plan{}
	}
	if p := loadHot(path); p != nil {
		return p
	}

	sb := keyPool.Get().(*[]string)
	keys := (*sb)[:0]

	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				keys = append(keys, path[start:i])
			}
			start = i + 1
		}
	}

	plan := &Plan{Keys: make([]string, len(keys))}
	copy(plan.Keys, keys)

	clear(keys)
	*sb = keys[:0]
	keyPool.Put(sb)

	storeHot(path, plan)
	return plan
}

// ===== 批量编译 =====
func CompileMany(paths []string) []*Plan {
	out := make([]*Plan, len(paths))
	for i, p := range paths {
		out[i] = Compile(p)
	}
	return out
}

func (p *Plan) String() string {
	return strings.Join(p.Keys, ".")
}
