//go:build bench

package md2docx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 4, 32} {
		b.Run(fmt.Sprintf("workers_%d", w), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

// BenchmarkConverterPool_AcquireRelease benchmarks the slot cycle alone.
func BenchmarkConverterPool_AcquireRelease(b *testing.B) {
	for _, size := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			pool, err := NewConverterPool(size)
			if err != nil {
				b.Fatalf("NewConverterPool() error = %v", err)
			}
			defer func() { _ = pool.Close() }()
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				conv, err := pool.Acquire(ctx)
				if err != nil {
					b.Fatalf("Acquire() error = %v", err)
				}
				pool.Release(conv)
			}
		})
	}
}

// BenchmarkConverterPool_Contention converts a small document from more
// goroutines than the pool has slots.
func BenchmarkConverterPool_Contention(b *testing.B) {
	md := strings.Repeat("## Section\n\nSome *text* with `code` and $x^2$.\n\n- a\n- b\n\n", 20)
	const poolSize = 4

	for _, g := range []int{4, 16} {
		b.Run(fmt.Sprintf("goroutines_%d", g), func(b *testing.B) {
			pool, err := NewConverterPool(poolSize)
			if err != nil {
				b.Fatalf("NewConverterPool() error = %v", err)
			}
			defer func() { _ = pool.Close() }()
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				for j := 0; j < g; j++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						conv, err := pool.Acquire(ctx)
						if err != nil {
							return
						}
						defer pool.Release(conv)
						_, _ = conv.Convert(ctx, Input{Markdown: md})
					}()
				}
				wg.Wait()
			}
		})
	}
}
