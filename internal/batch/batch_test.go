package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunPreservesOrder(t *testing.T) {
	paths := make([]string, 50)
	for i := range paths {
		paths[i] = fmt.Sprintf("img-%02d.png", i)
	}

	items := Run(context.Background(), paths, Options{Workers: 4}, func(_ context.Context, p string) (string, error) {
		return strings.ToUpper(p), nil
	})

	if len(items) != len(paths) {
		t.Fatalf("Run() returned %d items, want %d", len(items), len(paths))
	}
	for i, it := range items {
		if it.Path != paths[i] {
			t.Errorf("items[%d].Path = %s, want %s", i, it.Path, paths[i])
		}
		if it.Value != strings.ToUpper(paths[i]) {
			t.Errorf("items[%d].Value = %s", i, it.Value)
		}
	}
}

func TestRunCollectsErrors(t *testing.T) {
	paths := []string{"ok-1", "bad", "ok-2"}
	var mu sync.Mutex
	done := map[string]error{}

	items := Run(context.Background(), paths, Options{
		Workers: 2,
		OnDone: func(p string, err error) {
			mu.Lock()
			defer mu.Unlock()
			done[p] = err
		},
	}, func(_ context.Context, p string) (int, error) {
		if p == "bad" {
			return 0, errors.New("decode failed")
		}
		return len(p), nil
	})

	if got := Failed(items); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
	if items[1].Err == nil {
		t.Error("items[1] should carry the error")
	}
	if items[2].Value != 4 {
		t.Errorf("items[2].Value = %d, want 4", items[2].Value)
	}
	if len(done) != 3 {
		t.Errorf("OnDone called for %d items, want 3", len(done))
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var active, peak atomic.Int32
	paths := make([]string, 30)

	Run(context.Background(), paths, Options{Workers: 3}, func(_ context.Context, _ string) (struct{}, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		active.Add(-1)
		return struct{}{}, nil
	})

	if got := peak.Load(); got > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", got)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := Run(ctx, []string{"a", "b", "c"}, Options{Workers: 1}, func(ctx context.Context, _ string) (int, error) {
		return 1, ctx.Err()
	})

	for i, it := range items {
		if !errors.Is(it.Err, context.Canceled) {
			t.Errorf("items[%d].Err = %v, want context.Canceled", i, it.Err)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	items := Run(context.Background(), nil, Options{}, func(_ context.Context, _ string) (int, error) {
		t.Error("fn called for empty input")
		return 0, nil
	})
	if len(items) != 0 {
		t.Errorf("Run(nil) returned %d items", len(items))
	}
}
