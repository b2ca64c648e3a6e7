package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrSyntax = errors.New("syntax error")

	ErrUnexpectedCharacter  = fmt.Errorf("%w: unexpected character", ErrSyntax)
	ErrUnterminatedString   = fmt.Errorf("%w: unterminated string", ErrSyntax)
	ErrInvalidEscape        = fmt.Errorf("%w: invalid escape", ErrSyntax)
	ErrInvalidUnicodeEscape = fmt.Errorf("%w: invalid unicode escape", ErrSyntax)
	ErrUnpairedSurrogate    = fmt.Errorf("%w: unpaired surrogate", ErrSyntax)
	ErrInvalidNumber        = fmt.Errorf("%w: invalid number", ErrSyntax)
	ErrUnexpectedEnd        = fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	ErrMaxDepthExceeded     = fmt.Errorf("%w: max depth exceeded", ErrSyntax)
)

// SyntaxError 描述一次解析失败及其在源文本中的位置。
// Line 与 Col 从 1 开始，Col 按字节计。
type SyntaxError struct {
	Err    error
	Offset int
	Line   int
	Col    int
	Near   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d (line=%d, col=%d) near `...%s...`",
		e.Err, e.Offset, e.Line, e.Col, e.Near)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// newSyntaxError 根据未被改写的源文本计算行列与附近片段。
func newSyntaxError(err error, src []byte, off int) *SyntaxError {
	off = max(0, min(off, len(src)))
	line := 1 + bytes.Count(src[:off], []byte{'\n'})
	col := off + 1
	if nl := bytes.LastIndexByte(src[:off], '\n'); nl >= 0 {
		col = off - nl
	}
	return &SyntaxError{
		Err:    err,
		Offset: off,
		Line:   line,
		Col:    col,
		Near:   quoteNear(src[max(0, off-5):min(off+5, len(src))]),
	}
}

func quoteNear(b []byte) string {
	q := strconv.Quote(string(b))
	return q[1 : len(q)-1]
}
