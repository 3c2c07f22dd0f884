package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/store"
)

func TestFilterWords(t *testing.T) {
	got := filterWords([]string{"我", " ", "，", "中国", "go", "!", "ab1"}, 2)
	want := []string{"中国", "go", "ab1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterWords = %v, want %v", got, want)
	}
	got = filterWords([]string{"我", "爱"}, 0)
	if len(got) != 2 {
		t.Errorf("minLength 0 should keep all words, got %v", got)
	}
}

func TestSimple_ExtractWords(t *testing.T) {
	words, err := Simple{}.ExtractWords(context.Background(), "The Quick-brown fox, 2024!", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"the", "quick", "brown", "fox", "2024"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Simple = %v, want %v", words, want)
	}
}

func TestUnavailable(t *testing.T) {
	if Unavailable(nil) != nil {
		t.Errorf("Unavailable(nil) should be nil")
	}
	cause := errors.New("boom")
	err := Unavailable(cause)
	if !core.IsAnalyzerUnavailable(err) || !errors.Is(err, cause) {
		t.Errorf("Unavailable(cause) = %v", err)
	}
	if Unavailable(err) != err {
		t.Errorf("already-unavailable error should be returned as is")
	}
}

func TestSegmenter_Chinese(t *testing.T) {
	seg, err := NewSegmenter(nil)
	if err != nil {
		t.Fatalf("NewSegmenter() error = %v", err)
	}
	ctx := context.Background()
	text := "我爱我的中国"

	words, err := seg.ExtractWords(ctx, text, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) == 0 {
		t.Fatalf("expected tokens for %q", text)
	}
	joined := ""
	for _, w := range words {
		joined += w
	}
	if joined != text {
		t.Errorf("tokens %v do not cover the input %q", words, text)
	}

	again, _ := seg.ExtractWords(ctx, text, 0)
	if !reflect.DeepEqual(words, again) {
		t.Errorf("segmentation not deterministic: %v vs %v", words, again)
	}

	long, _ := seg.ExtractWords(ctx, text, 2)
	for _, w := range long {
		if len([]rune(w)) < 2 {
			t.Errorf("word %q shorter than minLength 2", w)
		}
	}
}

func TestSegmenter_DefaultDictionaryIsEmbedded(t *testing.T) {
	seg, err := NewSegmenter(nil)
	if err != nil {
		t.Fatalf("NewSegmenter() error = %v", err)
	}
	words, err := seg.ExtractWords(context.Background(), "我爱我的中国", 2)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range words {
		if w == "中国" {
			found = true
		}
	}
	if !found {
		t.Errorf("embedded dictionary should know 中国, got %v", words)
	}
}

func TestSegmenter_DictionaryFiles(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.txt")
	if err := os.WriteFile(custom, []byte("打分器 1000 n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	seg, err := NewSegmenter([]string{custom}, WithHMM(false))
	if err != nil {
		t.Fatalf("NewSegmenter(%s) error = %v", custom, err)
	}
	words, err := seg.ExtractWords(context.Background(), "打分器", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(words, []string{"打分器"}) {
		t.Errorf("custom dictionary word not kept whole: %v", words)
	}

	_, err = NewSegmenter([]string{filepath.Join(dir, "missing.txt")})
	if !core.IsAnalyzerUnavailable(err) {
		t.Errorf("missing dictionary error = %v, want ANALYZER_UNAVAILABLE", err)
	}
}

func TestSegmenter_Concurrent(t *testing.T) {
	seg, err := NewSegmenter(nil)
	if err != nil {
		t.Fatalf("NewSegmenter() error = %v", err)
	}
	want, _ := seg.ExtractWords(context.Background(), "我爱我的中国", 0)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := seg.ExtractWords(context.Background(), "我爱我的中国", 0)
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent ExtractWords = %v, %v", got, err)
			}
		}()
	}
	wg.Wait()
}

func TestSegmenter_CanceledContext(t *testing.T) {
	seg, err := NewSegmenter(nil)
	if err != nil {
		t.Fatalf("NewSegmenter() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := seg.ExtractWords(ctx, "中国", 0); !core.IsAnalyzerUnavailable(err) {
		t.Errorf("canceled context error = %v, want ANALYZER_UNAVAILABLE", err)
	}
}

func TestRPC_ExtractWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text      string `json:"text"`
			MinLength int    `json:"min_length"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Text != "我爱我的中国" || req.MinLength != 2 {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"words": []string{"我", "爱", "我的", "中国"}})
	}))
	defer srv.Close()

	words, err := NewRPC(srv.URL, 0).ExtractWords(context.Background(), "我爱我的中国", 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"我的", "中国"}; !reflect.DeepEqual(words, want) {
		t.Errorf("RPC words = %v, want %v", words, want)
	}
}

func TestRPC_Failures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer garbage.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	for name, endpoint := range map[string]string{
		"status":  failing.URL,
		"decode":  garbage.URL,
		"network": closedURL,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewRPC(endpoint, 0).ExtractWords(context.Background(), "x", 0)
			if !core.IsAnalyzerUnavailable(err) {
				t.Errorf("error = %v, want ANALYZER_UNAVAILABLE", err)
			}
		})
	}
}

type countingAnalyzer struct {
	calls int
	inner Analyzer
}

func (c *countingAnalyzer) ExtractWords(ctx context.Context, text string, minLength int) ([]string, error) {
	c.calls++
	return c.inner.ExtractWords(ctx, text, minLength)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	inner := &countingAnalyzer{inner: Simple{}}
	c := NewCached(inner, kv, 60)

	first, err := c.ExtractWords(ctx, "Hello big World", 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.ExtractWords(ctx, "Hello big World", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hello", "big", "world"}
	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
		t.Errorf("got %v then %v, want %v", first, second, want)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	// minLength 属于缓存 key 的一部分
	if _, err := c.ExtractWords(ctx, "Hello big World", 4); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCached_WithoutStore(t *testing.T) {
	inner := &countingAnalyzer{inner: Simple{}}
	c := NewCached(inner, nil, 0)
	for i := 0; i < 2; i++ {
		words, err := c.ExtractWords(context.Background(), "go fast", 0)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(words, []string{"go", "fast"}) {
			t.Errorf("words = %v", words)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 without a store", inner.calls)
	}

	_, err := (&Cached{}).ExtractWords(context.Background(), "x", 0)
	if !core.IsAnalyzerUnavailable(err) {
		t.Errorf("nil analyzer error = %v, want ANALYZER_UNAVAILABLE", err)
	}
}

func TestCached_InnerFailure(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	c := NewCached(Func(func(context.Context, string, int) ([]string, error) {
		return nil, errors.New("down")
	}), kv, 0)
	_, err := c.ExtractWords(ctx, "x", 0)
	if !core.IsAnalyzerUnavailable(err) {
		t.Errorf("err = %v, want ANALYZER_UNAVAILABLE", err)
	}
	if _, err := kv.Get(ctx, c.key("x", 0)); !errors.Is(err, core.ErrStoreNotFound) {
		t.Errorf("failure must not be cached, Get err = %v", err)
	}
}
