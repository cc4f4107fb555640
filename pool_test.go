package resume2pdf

import (
	"context"
	"runtime"
	"sync"
	"testing"
)

func TestNewServicePool_SizeClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{4, 4},
	}

	for _, tt := range tests {
		p := NewServicePool(tt.in)
		if p.Size() != tt.want {
			t.Errorf("NewServicePool(%d).Size() = %d, want %d", tt.in, p.Size(), tt.want)
		}
		p.Close()
	}
}

func TestServicePool_LazyCreation(t *testing.T) {
	p := NewServicePool(4, withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))
	defer p.Close()

	if p.created != 0 {
		t.Errorf("pool created %d services before first acquire", p.created)
	}

	svc := p.Acquire()
	if svc == nil {
		t.Fatal("Acquire() returned nil")
	}
	if p.created != 1 {
		t.Errorf("pool created %d services, want 1", p.created)
	}
	p.Release(svc)

	// A release-then-acquire must reuse the existing service.
	again := p.Acquire()
	if again != svc {
		t.Error("Acquire() should reuse the released service before creating another")
	}
	p.Release(again)
}

func TestServicePool_OptionsReachServices(t *testing.T) {
	renderer := &mockRenderer{}
	p := NewServicePool(1, withRenderer(renderer), withRasterizer(&mockRasterizer{}))
	defer p.Close()

	svc := p.Acquire()
	defer p.Release(svc)

	if _, err := svc.Render(context.Background(), Input{HTML: "<p>x</p>"}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !renderer.called {
		t.Error("pool service did not use the injected renderer")
	}
}

func TestServicePool_ConcurrentAcquire(t *testing.T) {
	const workers = 8
	p := NewServicePool(2, withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc := p.Acquire()
			defer p.Release(svc)
			_, _ = svc.Render(context.Background(), Input{HTML: "<p>x</p>"})
		}()
	}
	wg.Wait()

	if p.created > 2 {
		t.Errorf("pool created %d services, capacity is 2", p.created)
	}
}

func TestServicePool_ReleaseAfterClose(t *testing.T) {
	p := NewServicePool(2, withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))

	svc := p.Acquire()
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Must not panic on the closed channel.
	p.Release(svc)
}

func TestServicePool_ConcurrentReleaseAndClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := NewServicePool(2, withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))
		svc := p.Acquire()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Release(svc)
		}()
		go func() {
			defer wg.Done()
			_ = p.Close()
		}()
		wg.Wait()
	}
}

func TestServicePool_CloseIdempotent(t *testing.T) {
	p := NewServicePool(2)
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestResolvePoolSize(t *testing.T) {
	if got := ResolvePoolSize(3); got != 3 {
		t.Errorf("ResolvePoolSize(3) = %d, explicit value must win", got)
	}

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, out of [%d,%d]", got, MinPoolSize, MaxPoolSize)
	}

	want := runtime.GOMAXPROCS(0) / cpuDivisor
	if want < MinPoolSize {
		want = MinPoolSize
	}
	if want > MaxPoolSize {
		want = MaxPoolSize
	}
	if got != want {
		t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
	}
}
