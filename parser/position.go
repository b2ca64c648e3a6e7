package parser

import "slices"

// lines 在原地模式下记录原始文本的换行位置。
//
// 原地解码会改写已读过的字符串字节，出错时缓冲区里的内容已经不是原文，
// 所以换行要在被改写之前记下来，附近片段也只取仍是原文的字节。
type lines struct {
	mark  int   // [mark, len) 的字节尚未被改写
	nls   []int // [0, mark) 内原始换行的偏移，递增
	clean int   // [clean, mark) 的字节与原文一致
	limit int   // 附近片段的上界；未闭合字符串内已改写的字节不参与展示
}

func newLines(n int) *lines {
	return &lines{limit: n}
}

// advance 把 [mark, to) 中的换行登记下来，这段字节必须还未被改写。
func (l *lines) advance(buf []byte, to int) {
	for k := l.mark; k < to; k++ {
		if buf[k] == '\n' {
			l.nls = append(l.nls, k)
		}
	}
	l.mark = max(l.mark, to)
}

func (l *lines) syntaxError(err error, buf []byte, off int) *SyntaxError {
	off = max(0, min(off, len(buf)))
	if off > l.mark {
		l.advance(buf, off)
	}
	k, _ := slices.BinarySearch(l.nls, off)
	col := off + 1
	if k > 0 {
		col = off - l.nls[k-1]
	}
	lo := min(off, max(0, off-5, l.clean))
	hi := max(off, min(off+5, len(buf), l.limit))
	return &SyntaxError{
		Err:    err,
		Offset: off,
		Line:   k + 1,
		Col:    col,
		Near:   quoteNear(buf[lo:hi]),
	}
}

//
// ========================= state 辅助 =========================
//

// newline 登记字符串内读到的原始换行。
func (s *state) newline(i int) {
	if s.lines != nil {
		s.lines.nls = append(s.lines.nls, i)
	}
}

// settle 标记字符串已读到 i：[d, i) 没有被写过，esc 之前的字节也与原文一致。
func (s *state) settle(i, d, esc int) {
	if s.lines == nil {
		return
	}
	s.lines.mark = i
	if esc >= 0 {
		s.lines.clean = d
	}
}
