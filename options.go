// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import "code.hybscloud.com/chunkq/internal/pow2"

const (
	// MinCapacity is the smallest accepted maximum capacity.
	MinCapacity = 16
	// MinChunkSize is the smallest chunk size. Smaller hints round up to it.
	// Eight slots keep the look-ahead step at two or more.
	MinChunkSize = 8
)

// Options configures queue creation.
type Options struct {
	// Maximum number of queued elements (rounds up to next power of 2)
	capacity int

	// Slots per chunk (rounds up to next power of 2, at least 8).
	// Zero derives the chunk size from capacity.
	chunkSize int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// 64Ki elements in 256-slot chunks
//	q, err := chunkq.BuildSPSC[Event](chunkq.New(1 << 16).ChunkSize(256))
//
//	// Chunk size derived from capacity (capacity/8)
//	q, err := chunkq.Build[Event](chunkq.New(4096))
//
//	// uintptr and unsafe.Pointer flavors
//	qi, err := chunkq.New(4096).BuildIndirect()
//	qp, err := chunkq.New(4096).BuildPtr()
type Builder struct {
	opts Options
}

// New creates a queue builder with the given maximum capacity.
//
// Capacity rounds up to the next power of 2 and must be at least
// [MinCapacity]. Validation happens when the queue is built.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// ChunkSize sets the number of slots per chunk.
//
// The value rounds up to the next power of 2 and to at least
// [MinChunkSize]; the result must stay below the rounded capacity.
func (b *Builder) ChunkSize(n int) *Builder {
	b.opts.chunkSize = n
	return b
}

func (b *Builder) config() (chunkedConfig, error) {
	hint := b.opts.chunkSize
	if hint == 0 {
		hint = defaultChunkHint(b.opts.capacity)
	}
	return newChunkedConfig(hint, b.opts.capacity)
}

// Build creates a Queue[T] from the builder's configuration.
func Build[T any](b *Builder) (Queue[T], error) {
	q, err := BuildSPSC[T](b)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// MustBuild is like Build but panics on an invalid configuration.
func MustBuild[T any](b *Builder) Queue[T] {
	q, err := Build[T](b)
	if err != nil {
		panic(err)
	}
	return q
}

// BuildSPSC creates an SPSC queue with its concrete type.
func BuildSPSC[T any](b *Builder) (*SPSC[T], error) {
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}
	q := &SPSC[T]{}
	q.init(cfg)
	return q, nil
}

// BuildIndirect creates an SPSC queue for uintptr values.
func (b *Builder) BuildIndirect() (*SPSCIndirect, error) {
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}
	q := &SPSCIndirect{}
	q.q.init(cfg)
	return q, nil
}

// BuildPtr creates an SPSC queue for unsafe.Pointer values.
func (b *Builder) BuildPtr() (*SPSCPtr, error) {
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}
	q := &SPSCPtr{}
	q.q.init(cfg)
	return q, nil
}

// chunkedConfig is a validated queue geometry.
type chunkedConfig struct {
	chunkCapacity int
	capacity      int
}

func newChunkedConfig(chunkHint, maxCapacity int) (chunkedConfig, error) {
	if maxCapacity < MinCapacity {
		return chunkedConfig{}, invalidConfig("capacity %d is less than %d", maxCapacity, MinCapacity)
	}
	if chunkHint < 1 {
		return chunkedConfig{}, invalidConfig("chunk size %d is less than 1", chunkHint)
	}
	capacity := pow2.RoundUp(maxCapacity)
	if capacity == 0 {
		return chunkedConfig{}, invalidConfig("capacity %d overflows", maxCapacity)
	}
	chunkCapacity := pow2.RoundUp(chunkHint)
	if chunkCapacity == 0 {
		return chunkedConfig{}, invalidConfig("chunk size %d overflows", chunkHint)
	}
	chunkCapacity = max(MinChunkSize, chunkCapacity)
	if chunkCapacity >= capacity {
		return chunkedConfig{}, invalidConfig("chunk size %d must be less than capacity %d (both rounded up to a power of 2)",
			chunkCapacity, capacity)
	}
	return chunkedConfig{chunkCapacity: chunkCapacity, capacity: capacity}, nil
}

// defaultChunkHint picks capacity/8 slots per chunk, at least MinChunkSize.
func defaultChunkHint(capacity int) int {
	return max(MinChunkSize, pow2.RoundUp(capacity/8))
}
