package parser

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/icloudza/jsml/encoder"
	"github.com/icloudza/jsml/tree"
)

// DefaultMaxDepth 是默认允许的最大容器嵌套层数。
const DefaultMaxDepth = 512

// Reporter 在每次解析失败时被调用一次。
type Reporter func(err *SyntaxError)

type Option func(*Parser)

// WithEncoder 设置 \uXXXX 的编码器；nil 表示保留原始转义文本。
func WithEncoder(e encoder.Encoder) Option {
	return func(p *Parser) { p.enc = e }
}

func WithAllocator(a tree.Allocator) Option {
	return func(p *Parser) {
		if a == nil {
			a = tree.HeapAllocator{}
		}
		p.alloc = a
	}
}

func WithReporter(r Reporter) Option {
	return func(p *Parser) { p.report = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		p.log = l
	}
}

// WithMaxDepth 限制容器嵌套层数，n <= 0 表示不限制。
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// WithInPlace 为 true 时直接在调用方传入的缓冲区上解码字符串，不做拷贝。
// 缓冲区随后归解析树所有：节点中的字符串引用它，调用方不得再修改。
func WithInPlace(on bool) Option {
	return func(p *Parser) { p.inPlace = on }
}

//
// ========================= 内置 Reporter =========================
//

// LogReporter 把解析错误写入结构化日志。
func LogReporter(l *slog.Logger) Reporter {
	return func(e *SyntaxError) {
		l.Error("jsml parse error",
			"err", e.Err,
			"offset", e.Offset,
			"line", e.Line,
			"col", e.Col,
			"near", e.Near)
	}
}

// WriterReporter 以单行文本形式写出错误，例如写到 os.Stderr。
func WriterReporter(w io.Writer) Reporter {
	return func(e *SyntaxError) {
		fmt.Fprintf(w, "JSML PARSE ERROR: %s\n", e)
	}
}
