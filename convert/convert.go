// Package convert 把各种输入统一转为待解析的 JSON 字节。
package convert

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
	"unsafe"

	"github.com/bytedance/sonic"
)

const MaxJSONSize = 10 << 20 // 10MB

var (
	ErrNilInput    = errors.New("nil input")
	ErrInvalidUTF8 = errors.New("invalid UTF-8 input")
	ErrTooLarge    = errors.New("json too large")
)

//go:nosplit
func UnsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// From 返回 v 对应的 JSON 字节：
//   - string / *string：零拷贝视图，调用方不得写入；
//   - []byte：原样返回；
//   - io.Reader：读取全部内容（最多 MaxJSONSize）；
//   - 其他 Go 值：用 sonic 序列化。
//
// 文本输入要求是合法 UTF-8。
func From(v any) ([]byte, error) {
	var b []byte
	switch x := v.(type) {
	case nil:
		return nil, ErrNilInput
	case string:
		b = UnsafeStringToBytes(x)
	case *string:
		if x == nil {
			return nil, ErrNilInput
		}
		b = UnsafeStringToBytes(*x)
	case []byte:
		b = x
	case io.Reader:
		var err error
		if b, err = ReadAll(x); err != nil {
			return nil, err
		}
	default:
		out, err := sonic.ConfigStd.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %T: %w", v, err)
		}
		return out, nil
	}
	if len(b) > MaxJSONSize {
		return nil, ErrTooLarge
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	return b, nil
}

// ReadAll 读取 r 的全部内容，超过 MaxJSONSize 时返回 ErrTooLarge。
func ReadAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(b) > MaxJSONSize {
		return nil, ErrTooLarge
	}
	return b, nil
}
