package parser

import (
	"strconv"

	"github.com/icloudza/jsml/tree"
)

// number 先按整数（base-0：0x 十六进制、前导 0 八进制、其余十进制）解析；
// 若整数字面量后紧跟 '.'、'e'、'E'，则从同一起点重新按浮点数解析。
func (s *state) number(parent *tree.Node, key tree.Key, i int) (int, bool, error) {
	buf := s.buf
	end, ok := scanInteger(buf, i)
	if !ok {
		return i, false, s.fail(ErrInvalidNumber, i)
	}
	if end < len(buf) && (buf[end] == '.' || buf[end] == 'e' || buf[end] == 'E') {
		fend, ok := scanDouble(buf, i)
		if !ok || !delimited(buf, fend) {
			return i, false, s.fail(ErrInvalidNumber, i)
		}
		f, err := strconv.ParseFloat(bytesToString(buf[i:fend]), 64)
		if err != nil {
			return i, false, s.fail(ErrInvalidNumber, i)
		}
		s.b.Double(parent, key, i, f)
		return fend, false, nil
	}
	if !delimited(buf, end) {
		return i, false, s.fail(ErrInvalidNumber, i)
	}
	v, err := strconv.ParseInt(bytesToString(buf[i:end]), 0, 64)
	if err != nil {
		// 包括超出 int64 范围
		return i, false, s.fail(ErrInvalidNumber, i)
	}
	s.b.Integer(parent, key, i, v)
	return end, false, nil
}

// scanInteger 返回整数字面量的结束位置；至少需要一位数字。
func scanInteger(b []byte, i int) (int, bool) {
	if i < len(b) && b[i] == '-' {
		i++
	}
	if i >= len(b) || !isDigit(b[i]) {
		return i, false
	}
	switch {
	case b[i] == '0' && i+2 < len(b) && b[i+1]|0x20 == 'x' && isHex(b[i+2]):
		i += 2
		for i < len(b) && isHex(b[i]) {
			i++
		}
	case b[i] == '0':
		i++
		for i < len(b) && b[i] >= '0' && b[i] <= '7' {
			i++
		}
	default:
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	}
	return i, true
}

// scanDouble 扫描十进制浮点字面量：[-]digits[.digits][(e|E)[+|-]digits]。
// 指数部分缺少数字时不计入字面量。
func scanDouble(b []byte, i int) (int, bool) {
	if i < len(b) && b[i] == '-' {
		i++
	}
	digits := 0
	for i < len(b) && isDigit(b[i]) {
		i++
		digits++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(b[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return i, false
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		ds := j
		for j < len(b) && isDigit(b[j]) {
			j++
		}
		if j > ds {
			i = j
		}
	}
	return i, true
}

// delimited 数字之后只能是空白、分隔符或输入结尾，"09"、"1.5.2" 之类视为非法数字。
func delimited(b []byte, i int) bool {
	if i >= len(b) {
		return true
	}
	switch b[i] {
	case ' ', '\t', '\n', '\r', ',', ']', '}':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}
