// Package encoder 提供 \uXXXX 转义解码时使用的码点编码策略。
//
// Encoder 采用 append 风格：把码点编码后追加到 dst 末尾并返回新切片。
// 解析器会把 dst 的容量限制在已消费的转义字节范围内，实现原地写入；
// 编码器只需保证不依赖 dst 之外的内存。
package encoder

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoder 把一个码点编码追加到 dst。
// 返回 false 表示该码点无法用目标编码表示。
type Encoder func(dst []byte, cp rune) ([]byte, bool)

// UTF8 是默认编码器：输出标准 UTF-8，拒绝代理区 [0xD800, 0xDFFF] 和超出 0x10FFFF 的码点。
func UTF8(dst []byte, cp rune) ([]byte, bool) {
	if cp < 0 || cp > utf8.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
		return dst, false
	}
	return utf8.AppendRune(dst, cp), true
}

// Charmap 基于 x/text 的单字节码表构造编码器，无法映射的码点返回 false。
func Charmap(cm *charmap.Charmap) Encoder {
	return func(dst []byte, cp rune) ([]byte, bool) {
		b, ok := cm.EncodeRune(cp)
		if !ok {
			return dst, false
		}
		return append(dst, b), true
	}
}

var (
	Latin1      = Charmap(charmap.ISO8859_1)
	Windows1252 = Charmap(charmap.Windows1252)
)

// ByName 按名称查找编码器（大小写不敏感）。
// "none" 返回 nil 编码器：解析时 \uXXXX 原样保留。
func ByName(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	case "none":
		return nil, nil
	}
	return nil, ErrUnknownEncoding
}
