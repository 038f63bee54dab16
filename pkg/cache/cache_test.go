package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want nil, false", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit, want miss")
	}

	if err := c.Set(ctx, "key", []byte("bac"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "bac" {
		t.Errorf("Get() = %q, %v, %v, want \"bac\", true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete hit, want miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry hit, want miss")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("key")
	os.MkdirAll(filepath.Dir(path), 0755)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want miss without error", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Clear should keep the root: %v", err)
	}
}

func TestFileCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte("bac"), 0)
			if data, hit, _ := c.Get(ctx, "shared"); hit && string(data) != "bac" {
				t.Errorf("Get() = %q, want \"bac\"", data)
			}
		}()
	}
	wg.Wait()
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	words := []string{"bca", "aaa", "acb"}

	if k.OrderKey(words) != k.OrderKey([]string{"bca", "aaa", "acb"}) {
		t.Error("OrderKey should be deterministic")
	}
	if k.OrderKey(words) == k.OrderKey([]string{"aaa", "bca", "acb"}) {
		t.Error("OrderKey should depend on word order")
	}
	// Joining must not be ambiguous.
	if k.OrderKey([]string{"ab", "c"}) == k.OrderKey([]string{"a", "bc"}) {
		t.Error("OrderKey should distinguish word boundaries")
	}
	if k.GraphKey(words, "dot", false) == k.GraphKey(words, "svg", false) {
		t.Error("GraphKey should depend on format")
	}
	if k.GraphKey(words, "dot", false) == k.GraphKey(words, "dot", true) {
		t.Error("GraphKey should depend on detail")
	}
	if k.OrderKey(words) == k.GraphKey(words, "dot", false) {
		t.Error("OrderKey and GraphKey should not collide")
	}
}

func TestScopedKeyer(t *testing.T) {
	words := []string{"a", "b"}
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	if got, want := scoped.OrderKey(words), "staging:"+inner.OrderKey(words); got != want {
		t.Errorf("OrderKey() = %q, want %q", got, want)
	}
	if got, want := scoped.GraphKey(words, "svg", true), "staging:"+inner.GraphKey(words, "svg", true); got != want {
		t.Errorf("GraphKey() = %q, want %q", got, want)
	}

	// nil inner falls back to DefaultKeyer.
	if got := NewScopedKeyer(nil, "p:").OrderKey(words); got != "p:"+inner.OrderKey(words) {
		t.Errorf("nil inner OrderKey() = %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file) error: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(file) = %T, want *FileCache", c)
	}

	c, err = Open(ctx, Config{Backend: BackendNone})
	if err != nil {
		t.Fatalf("Open(none) error: %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T, want NullCache", c)
	}

	if _, err := Open(ctx, Config{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(memcached) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrUnavailable.Error())
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Retryable should unwrap to the original error")
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should return nil")
	}
	if IsRetryable(transient(context.Canceled)) {
		t.Error("context.Canceled should not be retried")
	}
	if IsRetryable(transient(context.DeadlineExceeded)) {
		t.Error("context.DeadlineExceeded should not be retried")
	}
	if !IsRetryable(transient(ErrUnavailable)) {
		t.Error("backend errors should be retried")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err = %v, calls = %d, want nil, 1", err, calls)
	}

	errFatal := errors.New("fatal")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errFatal
	})
	if err != errFatal || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d, want fatal, 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("recovering: err = %v, calls = %d, want nil, 2", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d, want ErrUnavailable, 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
}
