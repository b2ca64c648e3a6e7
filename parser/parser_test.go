package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/icloudza/jsml/tree"
)

func mustParse(t testing.TB, s string, opts ...Option) *tree.Tree {
	t.Helper()
	tr, err := New(opts...).ParseString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tr
}

func TestScenario(t *testing.T) {
	tr := mustParse(t, `{"int": 195, "array": [3, 5.1, -7, "nine"], "bool": true, "double": -1e-4, "null-value": null}`)
	defer tr.Release()
	root := tr.Root()

	if root.Kind() != tree.Object || root.Len() != 5 {
		t.Fatalf("root %v with %d children", root.Kind(), root.Len())
	}
	var keys []string
	for k := range root.Members() {
		keys = append(keys, k)
	}
	if strings.Join(keys, ",") != "int,array,bool,double,null-value" {
		t.Fatalf("order %v", keys)
	}

	in := root.Get("int")
	if v, ok := in.Int(); in.Kind() != tree.Integer || !ok || v != 195 {
		t.Fatalf("int: %v %d", in.Kind(), v)
	}
	el := root.Get("array").Item(1)
	if v, ok := el.Float(); el.Kind() != tree.Double || !ok || v != 5.1 {
		t.Fatalf("array[1]: %v %v", el.Kind(), v)
	}
	if v, _ := root.Get("array").Item(2).Int(); v != -7 {
		t.Fatalf("array[2]: %d", v)
	}
	if s, _ := root.Get("array").Item(3).Text(); s != "nine" {
		t.Fatalf("array[3]: %q", s)
	}
	if b, ok := root.Get("bool").Bool(); !ok || !b {
		t.Fatal("bool")
	}
	if d, _ := root.Get("double").Float(); d != -1e-4 {
		t.Fatalf("double: %v", d)
	}
	nv, ok := root.Lookup("null-value")
	if !ok || nv.Kind() != tree.Null {
		t.Fatal("null-value")
	}
	if tr.Nodes() != 10 {
		t.Fatalf("nodes %d", tr.Nodes())
	}
}

func TestMissingKeyLooksLikeNull(t *testing.T) {
	tr := mustParse(t, `{"n":null}`)
	defer tr.Release()
	present, missing := tr.Root().Get("n"), tr.Root().Get("m")
	if present.Kind() != missing.Kind() || present.Len() != missing.Len() {
		t.Fatal("missing and null should look the same through Get")
	}
	if present.IsSentinel() || !missing.IsSentinel() {
		t.Fatal("IsSentinel tells them apart")
	}
}

func TestGetNestedEqualsGetChain(t *testing.T) {
	tr := mustParse(t, `{"a":{"b":{"c":{"d":[1]}}},"x":1}`)
	defer tr.Release()
	root := tr.Root()
	chains := map[string]*tree.Node{
		"a":         root.Get("a"),
		"a.b":       root.Get("a").Get("b"),
		"a.b.c":     root.Get("a").Get("b").Get("c"),
		"a.b.c.d":   root.Get("a").Get("b").Get("c").Get("d"),
		"a.b.c.d.e": root.Get("a").Get("b").Get("c").Get("d").Get("e"),
		"x.y":       root.Get("x").Get("y"),
		"q.b":       root.Get("q").Get("b"),
	}
	for path, want := range chains {
		if got := root.GetNested(path); got != want {
			t.Errorf("%s: GetNested differs from the Get chain", path)
		}
	}
}

func TestItemOutOfRange(t *testing.T) {
	tr := mustParse(t, `[1,2]`)
	defer tr.Release()
	for _, i := range []int{-1, 2, 100} {
		if !tr.Root().Item(i).IsSentinel() {
			t.Errorf("Item(%d) should be the sentinel", i)
		}
	}
}

func TestEmptyContainers(t *testing.T) {
	for _, in := range []string{`[]`, `{}`, ` [ ] `, "{\n}", `[[],{}]`, `{"a":[],"b":{}}`} {
		tr := mustParse(t, in)
		tr.Root().Walk(func(n *tree.Node, _ int) bool {
			if n.Kind() != tree.Object && n.Kind() != tree.Array {
				t.Errorf("%s: unexpected %v", in, n.Kind())
			}
			return true
		})
		tr.Release()
	}
}

func TestPermissiveCommas(t *testing.T) {
	for in, want := range map[string]int{
		`[1,2,]`:          2,
		`[1 2]`:           2,
		`[,1,,2]`:         2,
		`{"a":1,,"b":2,}`: 2,
		`{"a":1 "b":2}`:   2,
	} {
		tr := mustParse(t, in)
		if tr.Root().Len() != want {
			t.Errorf("%s: %d children", in, tr.Root().Len())
		}
		tr.Release()
	}
}

func TestLiterals(t *testing.T) {
	tr := mustParse(t, `[true,false,null]`)
	defer tr.Release()
	if b, ok := tr.Root().Item(0).Bool(); !ok || !b {
		t.Fatal("true")
	}
	if b, ok := tr.Root().Item(1).Bool(); !ok || b {
		t.Fatal("false")
	}
	if n := tr.Root().Item(2); n.Kind() != tree.Null || n.IsSentinel() {
		t.Fatal("null")
	}
}

func TestScalarRoot(t *testing.T) {
	tr := mustParse(t, ` "solo" `)
	defer tr.Release()
	if s, _ := tr.Root().Text(); s != "solo" || tr.Nodes() != 1 {
		t.Fatalf("got %q", s)
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		in  string
		err error
		off int
	}{
		{`{"a": }`, ErrUnexpectedCharacter, 6},
		{`{"a": "oops`, ErrUnterminatedString, 6},
		{``, ErrUnexpectedEnd, 0},
		{"  \n ", ErrUnexpectedEnd, 4},
		{`[1,2`, ErrUnexpectedEnd, 4},
		{`{"a"`, ErrUnexpectedEnd, 4},
		{`{"a" 1}`, ErrUnexpectedCharacter, 5},
		{`{a:1}`, ErrUnexpectedCharacter, 1},
		{`{"a":1]`, ErrUnexpectedCharacter, 6},
		{`]`, ErrUnexpectedCharacter, 0},
		{`tru`, ErrUnexpectedEnd, 3},
		{`trux`, ErrUnexpectedCharacter, 0},
		{`True`, ErrUnexpectedCharacter, 0},
		{`nul`, ErrUnexpectedEnd, 3},
		{`[1] x`, ErrUnexpectedCharacter, 4},
		{`{"a":1}}`, ErrUnexpectedCharacter, 7},
		{`"abc\`, ErrInvalidEscape, 4},
		{`+1`, ErrUnexpectedCharacter, 0},
	}
	for _, c := range cases {
		tr, err := New().ParseString(c.in)
		if tr != nil {
			t.Errorf("%q: got a tree on failure", c.in)
		}
		if !errors.Is(err, c.err) || !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v, want %v", c.in, err, c.err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: not a *SyntaxError", c.in)
			continue
		}
		if se.Offset != c.off {
			t.Errorf("%q: offset %d, want %d", c.in, se.Offset, c.off)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := New().ParseString("{\n  \"a\": }")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v", err)
	}
	if se.Offset != 9 || se.Line != 2 || se.Col != 8 {
		t.Fatalf("offset=%d line=%d col=%d", se.Offset, se.Line, se.Col)
	}
	if !strings.Contains(se.Near, ": }") {
		t.Fatalf("near %q", se.Near)
	}
	msg := se.Error()
	if !strings.Contains(msg, "unexpected character") || !strings.Contains(msg, "line=2, col=8") {
		t.Fatalf("message %q", msg)
	}
}

func TestErrorSampleUsesInputText(t *testing.T) {
	_, err := New().Parse([]byte(`["\n"x]`))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v", err)
	}
	if se.Offset != 5 {
		t.Fatalf("offset %d", se.Offset)
	}
	if se.Near != `[\"\\n\"x]` {
		t.Fatalf("near %q", se.Near)
	}
}

func syntaxErrorOf(t *testing.T, err error) *SyntaxError {
	t.Helper()
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v", err)
	}
	return se
}

// 原地模式下字符串已被解码改写，错误位置仍须对应原文。
func TestInPlaceErrorPosition(t *testing.T) {
	cases := []struct {
		in        string
		off       int
		line, col int
	}{
		{`{"k":"\n\n\n\n\n\n", "x": ?}`, 26, 1, 27},
		{"{\n\"k\":\"\\n\\n\",\n\"x\": ?}", 19, 3, 6},
		{"[\"a\nb\\t\",\n\n?]", 11, 4, 1},
	}
	for _, c := range cases {
		_, err := New().Parse([]byte(c.in))
		want := syntaxErrorOf(t, err)
		_, err = New(WithInPlace(true)).Parse([]byte(c.in))
		got := syntaxErrorOf(t, err)
		if got.Offset != c.off || got.Line != c.line || got.Col != c.col {
			t.Errorf("%q: offset=%d line=%d col=%d", c.in, got.Offset, got.Line, got.Col)
		}
		if got.Offset != want.Offset || got.Line != want.Line || got.Col != want.Col || got.Near != want.Near {
			t.Errorf("%q: in-place %+v, copy %+v", c.in, got, want)
		}
	}
}

func TestInPlaceErrorInsideString(t *testing.T) {
	_, err := New(WithInPlace(true)).Parse([]byte("[\"\\n\nz\\u12G\"]"))
	se := syntaxErrorOf(t, err)
	if !errors.Is(err, ErrInvalidUnicodeEscape) || se.Offset != 6 || se.Line != 2 || se.Col != 2 {
		t.Fatalf("got %v", se)
	}
	if se.Near != `z\\u12G` {
		t.Fatalf("near %q", se.Near)
	}

	// 未闭合字符串：开引号之后已被改写的字节不出现在片段里
	_, err = New(WithInPlace(true)).Parse([]byte(`{"a":"\n\nabc`))
	se = syntaxErrorOf(t, err)
	if !errors.Is(err, ErrUnterminatedString) || se.Offset != 5 || se.Line != 1 || se.Col != 6 {
		t.Fatalf("got %v", se)
	}
	if se.Near != `{\"a\":\"` {
		t.Fatalf("near %q", se.Near)
	}
}

func TestTrailingWhitespaceAllowed(t *testing.T) {
	tr := mustParse(t, "{\"a\":1} \t\r\n")
	tr.Release()
}

func TestDepthLimit(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("[", n) + "1" + strings.Repeat("]", n)
	}

	p := New(WithMaxDepth(3))
	if tr, err := p.ParseString(nest(3)); err != nil {
		t.Fatalf("depth 3: %v", err)
	} else {
		tr.Release()
	}
	if _, err := p.ParseString(nest(4)); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("depth 4: %v", err)
	}
	if _, err := p.ParseString(`{"a":{"b":{"c":{}}}}`); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("objects count too: %v", err)
	}

	if _, err := New().ParseString(nest(DefaultMaxDepth + 1)); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("default limit: %v", err)
	}
	tr, err := New(WithMaxDepth(0)).ParseString(nest(10000))
	if err != nil {
		t.Fatalf("unlimited: %v", err)
	}
	tr.Release()
}

func TestSiblingContainersDoNotAccumulateDepth(t *testing.T) {
	tr, err := New(WithMaxDepth(2)).ParseString(`[[1],[2],[3],{"a":1}]`)
	if err != nil {
		t.Fatal(err)
	}
	tr.Release()
}

func TestInPlace(t *testing.T) {
	src := `["a\nb",{"k\"":"v"}]`

	buf := []byte(src)
	tr, err := New().Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != src {
		t.Fatalf("default parse modified input: %q", buf)
	}
	tr.Release()

	buf = []byte(src)
	tr, err = New(WithInPlace(true)).Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Release()
	if s, _ := tr.Root().Item(0).Text(); s != "a\nb" {
		t.Fatalf("got %q", s)
	}
	if string(buf) == src {
		t.Fatal("in-place parse should decode into the input buffer")
	}
	if !bytes.HasPrefix(buf[2:], []byte("a\nb")) {
		t.Fatalf("buffer %q", buf)
	}
	if s, _ := tr.Root().Item(1).Get(`k"`).Text(); s != "v" {
		t.Fatalf("escaped key lookup: %q", s)
	}
}

func TestParseStringKeepsSource(t *testing.T) {
	s := strings.Repeat(`"x\ty",`, 3)
	in := "[" + s + "1]"
	tr := mustParse(t, in)
	defer tr.Release()
	if in != "["+s+"1]" {
		t.Fatal("string changed")
	}
	if v, _ := tr.Root().Item(0).Text(); v != "x\ty" {
		t.Fatalf("got %q", v)
	}
}

func TestReporter(t *testing.T) {
	var calls []*SyntaxError
	p := New(WithReporter(func(e *SyntaxError) { calls = append(calls, e) }))

	tr, err := p.ParseString(`{"ok":true}`)
	if err != nil {
		t.Fatal(err)
	}
	tr.Release()
	if len(calls) != 0 {
		t.Fatal("reporter called on success")
	}

	_, err = p.ParseString(`{"a":[1,2,{"b":}]}`)
	if len(calls) != 1 {
		t.Fatalf("reporter called %d times", len(calls))
	}
	if calls[0] != err {
		t.Fatal("reporter should see the returned error")
	}
}

func TestBuiltinReporters(t *testing.T) {
	var w bytes.Buffer
	New(WithReporter(WriterReporter(&w))).ParseString(`[1,}`)
	if !strings.HasPrefix(w.String(), "JSML PARSE ERROR: syntax error: unexpected character at offset 3") {
		t.Fatalf("writer reporter: %q", w.String())
	}

	var lb bytes.Buffer
	l := slog.New(slog.NewTextHandler(&lb, nil))
	New(WithReporter(LogReporter(l))).ParseString(`[1,}`)
	out := lb.String()
	if !strings.Contains(out, "jsml parse error") || !strings.Contains(out, "offset=3") {
		t.Fatalf("log reporter: %q", out)
	}
}

func TestLogger(t *testing.T) {
	var lb bytes.Buffer
	l := slog.New(slog.NewTextHandler(&lb, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(WithLogger(l))

	tr, err := p.ParseString(`{"a":[[1]]}`)
	if err != nil {
		t.Fatal(err)
	}
	tr.Release()
	if out := lb.String(); !strings.Contains(out, "msg=parsed") || !strings.Contains(out, "nodes=4") || !strings.Contains(out, "depth=3") {
		t.Fatalf("success log: %q", out)
	}

	lb.Reset()
	p.ParseString(`{`)
	if out := lb.String(); !strings.Contains(out, `msg="parse failed"`) {
		t.Fatalf("failure log: %q", out)
	}
}

func TestConcurrentParse(t *testing.T) {
	p := New(WithAllocator(tree.NewPoolAllocator()))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				tr, err := p.ParseString(`{"a":[1,2,{"b":"cA"}]}`)
				if err != nil {
					t.Error(err)
					return
				}
				if s, _ := tr.Root().GetNested("a").Item(2).Get("b").Text(); s != "cA" {
					t.Errorf("got %q", s)
				}
				tr.Release()
			}
		}()
	}
	wg.Wait()
}
