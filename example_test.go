package jsml_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/icloudza/jsml"
)

func Example_usage() {
	t, err := jsml.ParseString(`{"name":"Alice","age":30,"tags":["a","b"],"data":{"id":7}}`)
	if err != nil {
		panic(err)
	}
	defer jsml.Free(t)

	name, _ := t.Root().Get("name").Text()
	age, _ := jsml.AnyAs[int64](t.Root(), "age")
	id, _ := jsml.GetData(t.Root(), "id").Int()
	fmt.Println(name, age, id)
	fmt.Println(t.Root().Get("tags").Item(5).IsSentinel())
	// Output:
	// Alice 30 7
	// true
}

func ExampleFprint() {
	t, err := jsml.ParseString(`{"int":195,"dbl":5.1,"ok":true,"nil":null,"arr":[3]}`)
	if err != nil {
		panic(err)
	}
	defer jsml.Free(t)
	jsml.Fprint(os.Stdout, t)
	// Output:
	// ┼── OBJECT
	// ┼──┼── int: 195 (int)
	// ┼──┼── dbl: 5.100000 (double)
	// ┼──┼── ok: true (bool)
	// ┼──┼── nil: NULL
	// ┼──┼── arr: ARRAY
	// ┼──┼──┼── 3 (int)
}

func TestExample_FromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"slideshow":{"title":"Sample Slide Show","slides":[{"title":"Wake up"}]}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	// 直接喂给 jsml
	tr, err := jsml.ParseAny(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	defer jsml.Free(tr)

	title := jsml.AnyOrAs[string](tr.Root(), "slideshow.title", "")
	if title != "Sample Slide Show" {
		t.Fatalf("title %q", title)
	}
	first, _ := tr.Root().GetNested("slideshow.slides").Item(0).Get("title").Text()
	if first != "Wake up" {
		t.Fatalf("first slide %q", first)
	}
}
