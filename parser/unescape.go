package parser

// unescape 从开引号之后的位置 i 开始原地解码字符串，返回解码结果与闭引号之后的位置。
//
// 所有转义序列解码后都不会变长，写指针 d 永远不超过读指针 i，
// 因此可以直接写回同一块缓冲区。
func (s *state) unescape(i int) (string, int, error) {
	buf := s.buf
	start := i
	d := i
	esc := -1 // 第一个转义处的写位置，从这里起字节可能被改写
	if s.lines != nil {
		s.lines.advance(buf, start)
	}
	for i < len(buf) {
		c := buf[i]
		if c == '"' {
			s.settle(i+1, d, esc)
			return bytesToString(buf[start:d]), i + 1, nil
		}
		if c != '\\' {
			if c == '\n' {
				s.newline(i)
			}
			buf[d] = c
			d++
			i++
			continue
		}
		if esc < 0 {
			esc = d
		}
		if i+1 >= len(buf) {
			s.settle(i, d, esc)
			return "", i, s.fail(ErrInvalidEscape, i)
		}
		switch e := buf[i+1]; e {
		case '\\', '/', '"':
			buf[d] = e
		case 'b':
			buf[d] = '\b'
		case 'f':
			buf[d] = '\f'
		case 'n':
			buf[d] = '\n'
		case 'r':
			buf[d] = '\r'
		case 't':
			buf[d] = '\t'
		case 'u':
			if s.enc == nil {
				// 没有编码器：保留 \uXXXX 原文，后续字节按普通字符拷贝
				buf[d] = '\\'
				d++
				i++
				continue
			}
			nd, ni, err := s.unicode(d, i)
			if err != nil {
				s.settle(i, d, esc)
				return "", i, s.fail(err, i)
			}
			d, i = nd, ni
			continue
		default:
			// 未知转义：去掉反斜杠，保留后一个字节
			if e == '\n' {
				s.newline(i + 1)
			}
			buf[d] = e
		}
		d++
		i += 2
	}
	if s.lines != nil {
		s.lines.mark = len(buf)
		if esc >= 0 {
			s.lines.limit = esc
		}
	}
	return "", i, s.fail(ErrUnterminatedString, start-1)
}

// unicode 解码位于 i 的 \uXXXX（必要时连同紧随的低代理），
// 编码结果写到 d，返回新的写位置与读位置。出错时返回哨兵错误，由调用方定位。
func (s *state) unicode(d, i int) (int, int, error) {
	buf := s.buf
	cp, ok := hex4(buf, i+2)
	if !ok {
		return d, i, ErrInvalidUnicodeEscape
	}
	end := i + 6
	switch {
	case cp >= 0xD800 && cp <= 0xDBFF:
		if end+1 >= len(buf) || buf[end] != '\\' || buf[end+1] != 'u' {
			return d, i, ErrUnpairedSurrogate
		}
		lo, ok := hex4(buf, end+2)
		if !ok || lo < 0xDC00 || lo > 0xDFFF {
			return d, i, ErrUnpairedSurrogate
		}
		cp = 0x10000 + (cp-0xD800)<<10 + (lo - 0xDC00)
		end += 6
	case cp >= 0xDC00 && cp <= 0xDFFF:
		return d, i, ErrUnpairedSurrogate
	}

	// 容量限制在已读完的转义字节内，编码器无法覆盖尚未读取的输入
	out, ok := s.enc(buf[:d:end], cp)
	if !ok || len(out) < d || len(out) > end {
		return d, i, ErrInvalidUnicodeEscape
	}
	n := copy(buf[d:end], out[d:])
	return d + n, end, nil
}

func hex4(b []byte, i int) (rune, bool) {
	if i+4 > len(b) {
		return 0, false
	}
	var r rune
	for _, c := range b[i : i+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r += rune(c - '0')
		case c >= 'a' && c <= 'f':
			r += rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r += rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}
