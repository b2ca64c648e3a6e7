// Package parser 实现递归下降 JSON 解析器，把文本构建成 tree.Tree。
//
// 解析一次性完成：任何位置的第一个错误都会中止整个解析，
// 已构建的部分树会被释放，调用方只会拿到一个 *SyntaxError。
package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"unsafe"

	"github.com/icloudza/jsml/encoder"
	"github.com/icloudza/jsml/tree"
)

// Parser 只保存不可变配置，可被多个 goroutine 同时使用；
// 每次 Parse 都有独立的解析状态与缓冲区。
type Parser struct {
	enc      encoder.Encoder
	alloc    tree.Allocator
	report   Reporter
	log      *slog.Logger
	maxDepth int
	inPlace  bool
}

func New(opts ...Option) *Parser {
	p := &Parser{
		enc:      encoder.UTF8,
		alloc:    tree.HeapAllocator{},
		log:      slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse 解析 text。默认先拷贝一份私有缓冲区再原地解码，text 保持不变。
func (p *Parser) Parse(text []byte) (*tree.Tree, error) {
	buf := text
	if !p.inPlace {
		buf = bytes.Clone(text)
	}
	return p.parse(text, buf, p.inPlace)
}

func (p *Parser) ParseString(s string) (*tree.Tree, error) {
	src := unsafe.Slice(unsafe.StringData(s), len(s)) // 只读
	return p.parse(src, []byte(s), false)
}

// aliased 为 true 时 src 与 buf 是同一块内存，错误位置改由 lines 跟踪。
func (p *Parser) parse(src, buf []byte, aliased bool) (*tree.Tree, error) {
	st := &state{
		src:      src,
		buf:      buf,
		enc:      p.enc,
		b:        tree.NewBuilder(p.alloc),
		maxDepth: p.maxDepth,
	}
	if aliased {
		st.lines = newLines(len(buf))
	}
	err := st.document()
	if err != nil {
		st.b.Discard()
		var se *SyntaxError
		if !errors.As(err, &se) {
			se = st.syntaxError(err, 0)
		}
		if p.report != nil {
			p.report(se)
		}
		p.log.Debug("parse failed", "bytes", len(buf), "offset", se.Offset, "err", se.Err)
		return nil, se
	}
	t := st.b.Finish(buf)
	p.log.Debug("parsed", "bytes", len(buf), "nodes", t.Nodes(), "depth", st.deepest)
	return t, nil
}

//
// ========================= 解析状态 =========================
//

type state struct {
	src      []byte // 源文本，仅用于错误定位；原地模式下不使用
	buf      []byte // 原地解码的工作缓冲区
	lines    *lines // 仅原地模式
	enc      encoder.Encoder
	b        *tree.Builder
	depth    int
	deepest  int
	maxDepth int
}

func (s *state) fail(err error, off int) error {
	return s.syntaxError(err, off)
}

func (s *state) syntaxError(err error, off int) *SyntaxError {
	if s.lines != nil {
		return s.lines.syntaxError(err, s.buf, off)
	}
	return newSyntaxError(err, s.src, off)
}

// document 解析根值，根值之后只允许空白。
func (s *state) document() error {
	i, _, err := s.value(nil, tree.NoKey, 0)
	if err != nil {
		return err
	}
	for i < len(s.buf) && isSpace(s.buf[i]) {
		i++
	}
	if i < len(s.buf) {
		return s.fail(ErrUnexpectedCharacter, i)
	}
	return nil
}

// value 解析一个值并挂到 parent 下（parent 为 nil 表示文档根），返回值之后的位置。
// 在数组中遇到 ']' 时不创建节点，返回 closed=true 且位置停在 ']' 上。
// 逗号只作为分隔符跳过，不校验个数。
func (s *state) value(parent *tree.Node, key tree.Key, i int) (next int, closed bool, err error) {
	for {
		if i >= len(s.buf) {
			return i, false, s.fail(ErrUnexpectedEnd, i)
		}
		switch c := s.buf[i]; c {
		case ' ', '\t', '\n', '\r', ',':
			i++
		case '{':
			return s.object(parent, key, i)
		case '[':
			return s.array(parent, key, i)
		case ']':
			if parent != nil && parent.Kind() == tree.Array {
				return i, true, nil
			}
			return i, false, s.fail(ErrUnexpectedCharacter, i)
		case '"':
			str, end, err := s.unescape(i + 1)
			if err != nil {
				return end, false, err
			}
			s.b.String(parent, key, i, str)
			return end, false, nil
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return s.number(parent, key, i)
		case 't':
			return s.literal(parent, key, i, "true")
		case 'f':
			return s.literal(parent, key, i, "false")
		case 'n':
			return s.literal(parent, key, i, "null")
		default:
			return i, false, s.fail(ErrUnexpectedCharacter, i)
		}
	}
}

func (s *state) enter(i int) error {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return s.fail(ErrMaxDepthExceeded, i)
	}
	s.deepest = max(s.deepest, s.depth)
	return nil
}

func (s *state) object(parent *tree.Node, key tree.Key, i int) (int, bool, error) {
	if err := s.enter(i); err != nil {
		return i, false, err
	}
	obj := s.b.Object(parent, key, i)
	i++
	for {
		name, next, closed, err := s.key(i)
		if err != nil {
			return next, false, err
		}
		if closed {
			s.depth--
			return next + 1, false, nil
		}
		i, _, err = s.value(obj, tree.KeyOf(name), next)
		if err != nil {
			return i, false, err
		}
	}
}

// array 不对 "[]" 做特殊处理：第一次 value 调用就会看到 ']'。
func (s *state) array(parent *tree.Node, key tree.Key, i int) (int, bool, error) {
	if err := s.enter(i); err != nil {
		return i, false, err
	}
	arr := s.b.Array(parent, key, i)
	i++
	for {
		next, closed, err := s.value(arr, tree.NoKey, i)
		if err != nil {
			return next, false, err
		}
		if closed {
			s.depth--
			return next + 1, false, nil
		}
		i = next
	}
}

// key 解析对象成员名以及其后的 ':'。遇到 '}' 时返回 closed=true，位置停在 '}' 上。
func (s *state) key(i int) (name string, next int, closed bool, err error) {
	for i < len(s.buf) {
		c := s.buf[i]
		switch {
		case c == '"':
			name, end, err := s.unescape(i + 1)
			if err != nil {
				return "", end, false, err
			}
			for end < len(s.buf) && s.buf[end] <= ' ' {
				end++
			}
			if end >= len(s.buf) {
				return "", end, false, s.fail(ErrUnexpectedEnd, end)
			}
			if s.buf[end] != ':' {
				return "", end, false, s.fail(ErrUnexpectedCharacter, end)
			}
			return name, end + 1, false, nil
		case c <= ' ' || c == ',':
			i++
		case c == '}':
			return "", i, true, nil
		default:
			return "", i, false, s.fail(ErrUnexpectedCharacter, i)
		}
	}
	return "", i, false, s.fail(ErrUnexpectedEnd, i)
}

// literal 精确匹配 true / false / null（大小写敏感）。
func (s *state) literal(parent *tree.Node, key tree.Key, i int, word string) (int, bool, error) {
	rest := s.buf[i:]
	if len(rest) >= len(word) && string(rest[:len(word)]) == word {
		switch word {
		case "true":
			s.b.Bool(parent, key, i, true)
		case "false":
			s.b.Bool(parent, key, i, false)
		default:
			s.b.Null(parent, key, i)
		}
		return i + len(word), false, nil
	}
	if len(rest) < len(word) && word[:len(rest)] == string(rest) {
		return len(s.buf), false, s.fail(ErrUnexpectedEnd, len(s.buf))
	}
	return i, false, s.fail(ErrUnexpectedCharacter, i)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// bytesToString 零拷贝地把工作缓冲区的一段转为 string；
// 缓冲区归解析树所有，解析结束后不再被写入。
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
