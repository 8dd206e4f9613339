package md2docx

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each holds a whole document
	// and its images in memory.
	MaxPoolSize = 16
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool closed")

// ConverterPool bounds the number of concurrent conversions for batch
// processing. Converters are safe for concurrent use, so every slot shares
// one Converter; the pool only limits how many run at once.
type ConverterPool struct {
	size   int
	conv   *Converter
	slots  chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewConverterPool creates a pool with n slots sharing one Converter built
// from opts. n < 1 is treated as 1.
func NewConverterPool(n int, opts ...Option) (*ConverterPool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return &ConverterPool{
		size:  n,
		conv:  conv,
		slots: make(chan struct{}, n),
	}, nil
}

// Acquire takes a slot, blocking while all are in use. It returns ctx.Err()
// if ctx ends first and ErrPoolClosed after Close.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	if p.isClosed() {
		return nil, ErrPoolClosed
	}
	select {
	case p.slots <- struct{}{}:
		return p.conv, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (p *ConverterPool) Release(*Converter) {
	select {
	case <-p.slots:
	default:
	}
}

// Close stops the pool from handing out further slots. Conversions already
// running are not interrupted.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *ConverterPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0)

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
