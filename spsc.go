// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// SPSC is a single-producer single-consumer bounded queue backed by a
// chain of fixed-size chunks.
//
// Each chunk is a ring. The producer keeps writing into its current chunk
// for as long as the consumer frees slots ahead of it, and links a new
// chunk of the same size only when the ring is full and the global bound
// still has room. The consumer follows links by observing a jump marker
// in the slot the producer abandoned, so it never reads the producer's
// index. Chunks the consumer has left become garbage.
//
// Both operations are wait-free: Enqueue allocates at most one chunk and
// never loops, Dequeue never loops.
//
// Memory: allocated slots may exceed Cap. A chunk the producer has left but
// the consumer has not reached holds ChunkCap-1 elements and the jump
// marker, and the consumer's and producer's chunks may be partly empty, so
// the chain spans at most Cap/(ChunkCap-1) + 2 chunks. With 8-slot chunks
// and Cap 16 a full queue already spans three chunks.
type SPSC[T any] struct {
	_             cpu.CacheLinePad
	consumerIndex atomix.Uint64 // Consumer reads from here
	consumerChunk *chunk[T]
	consumerMask  uint64
	_             cpu.CacheLinePad
	producerIndex atomix.Uint64 // Producer writes here
	producerChunk *chunk[T]
	producerMask  uint64
	// Indices below producerChunkLimit are known to address empty slots
	// of producerChunk.
	producerChunkLimit uint64
	// Cached consumerIndex + capacity; refreshed when reached.
	producerQueueLimit uint64
	_                  cpu.CacheLinePad
	capacity           uint64
	chunkCapacity      uint64
}

// NewSPSC creates a new chunked SPSC queue.
//
// The chunk size is max(8, chunkHint) and the capacity is maxCapacity,
// both rounded up to the next power of 2. Returns an error wrapping
// [ErrInvalidConfiguration] when maxCapacity < 16, chunkHint < 1, or the
// rounded chunk size is not strictly less than the rounded capacity.
func NewSPSC[T any](chunkHint, maxCapacity int) (*SPSC[T], error) {
	cfg, err := newChunkedConfig(chunkHint, maxCapacity)
	if err != nil {
		return nil, err
	}
	q := &SPSC[T]{}
	q.init(cfg)
	return q, nil
}

// NewSPSCWithCapacity creates a new chunked SPSC queue whose chunk size is
// derived from the capacity: max(8, capacity/8) rounded up to a power of 2.
func NewSPSCWithCapacity[T any](maxCapacity int) (*SPSC[T], error) {
	return NewSPSC[T](defaultChunkHint(maxCapacity), maxCapacity)
}

func (q *SPSC[T]) init(cfg chunkedConfig) {
	c := newChunk[T](cfg.chunkCapacity)
	mask := c.mask()

	q.capacity = uint64(cfg.capacity)
	q.chunkCapacity = uint64(cfg.chunkCapacity)
	q.consumerChunk = c
	q.consumerMask = mask
	q.producerChunk = c
	q.producerMask = mask
	// The last slot of a fresh chunk is kept for the look-ahead decision.
	q.producerChunkLimit = mask - 1
	q.producerQueueLimit = q.capacity
	q.consumerIndex.Store(0)
	q.producerIndex.Store(0)
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrQueueFull if the queue holds Cap() elements,
// ErrNilElement if elem is nil.
func (q *SPSC[T]) Enqueue(elem *T) error {
	if elem == nil {
		return ErrNilElement
	}
	return q.enqueue(elem, nil)
}

// enqueue stores *elem, or fn() when fn is not nil. fn is only called
// once the element is certain to be enqueued.
func (q *SPSC[T]) enqueue(elem *T, fn func() T) error {
	c := q.producerChunk
	index := q.producerIndex.LoadRelaxed()
	offset := index & q.producerMask
	if index < q.producerChunkLimit {
		q.write(c, offset, index, elem, fn)
		return nil
	}
	return q.enqueueSlow(c, index, offset, elem, fn)
}

// enqueueSlow decides, at a look-ahead boundary, whether to keep writing
// into the current chunk, link a new one, or report the queue full.
func (q *SPSC[T]) enqueueSlow(c *chunk[T], index, offset uint64, elem *T, fn func() T) error {
	mask := q.producerMask

	queueLimit := q.producerQueueLimit
	if index >= queueLimit {
		queueLimit = q.consumerIndex.LoadAcquire() + q.capacity
		q.producerQueueLimit = queueLimit
		if index >= queueLimit {
			return ErrQueueFull
		}
	}

	// Look a quarter chunk ahead, never past the queue limit.
	chunkLimit := min(index+(mask+1)/4, queueLimit)

	switch {
	case chunkLimit > index+1 && c.slots[chunkLimit&mask].state.LoadAcquire() == slotEmpty:
		// The consumer drains in order: every slot before chunkLimit is free.
		q.producerChunkLimit = chunkLimit - 1
		q.write(c, offset, index, elem, fn)
	case c.slots[(index+1)&mask].state.LoadAcquire() == slotEmpty:
		// One more slot after this one stays free to hold a jump marker.
		q.write(c, offset, index, elem, fn)
	default:
		q.link(c, index, offset, elem, fn)
	}
	return nil
}

// write stores the element and publishes it.
//
// producerIndex is released before the slot: a consumer that takes the
// element implies Len already counts it, so Len never goes negative.
func (q *SPSC[T]) write(c *chunk[T], offset, index uint64, elem *T, fn func() T) {
	s := &c.slots[offset]
	s.store(elem, fn)
	q.producerIndex.StoreRelease(index + 1)
	s.state.StoreRelease(slotFull)
}

// link allocates a chunk of the same size, writes the element into it,
// then publishes the link by marking the abandoned slot with slotJump.
// A consumer that observes the marker observes the link and the element.
func (q *SPSC[T]) link(old *chunk[T], index, offset uint64, elem *T, fn func() T) {
	next := newChunk[T](int(q.chunkCapacity))
	q.producerChunk = next

	s := &next.slots[index&q.producerMask]
	s.store(elem, fn)
	s.state.StoreRelease(slotFull)
	old.next = next
	q.producerIndex.StoreRelease(index + 1)
	old.slots[offset].state.StoreRelease(slotJump)
}

func (s *slot[T]) store(elem *T, fn func() T) {
	if fn != nil {
		s.data = fn()
		return
	}
	s.data = *elem
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrEmpty) if no element is visible.
//
// ErrEmpty at a chunk boundary is transient: the producer may be
// between writing into a new chunk and publishing the link.
func (q *SPSC[T]) Dequeue() (T, error) {
	c := q.consumerChunk
	index := q.consumerIndex.LoadRelaxed()
	s := &c.slots[index&q.consumerMask]
	switch s.state.LoadAcquire() {
	case slotFull:
		return q.take(s, index), nil
	case slotJump:
		return q.take(q.jump(c, index), index), nil
	}
	var zero T
	return zero, ErrEmpty
}

// Peek returns the next element without removing it (consumer only).
// Returns (zero-value, ErrEmpty) if no element is visible.
func (q *SPSC[T]) Peek() (T, error) {
	c := q.consumerChunk
	index := q.consumerIndex.LoadRelaxed()
	s := &c.slots[index&q.consumerMask]
	switch s.state.LoadAcquire() {
	case slotFull:
		return s.data, nil
	case slotJump:
		return q.jump(c, index).data, nil
	}
	var zero T
	return zero, ErrEmpty
}

// take clears the slot for garbage collection and hands it back.
func (q *SPSC[T]) take(s *slot[T], index uint64) T {
	elem := s.data
	var zero T
	s.data = zero
	s.state.StoreRelease(slotEmpty)
	q.consumerIndex.StoreRelease(index + 1)
	return elem
}

// jump moves the consumer to the chunk linked from c and returns the
// slot holding the element for index.
func (q *SPSC[T]) jump(c *chunk[T], index uint64) *slot[T] {
	next := c.next
	q.consumerChunk = next
	q.consumerMask = next.mask()

	s := &next.slots[index&q.consumerMask]
	if s.state.LoadAcquire() != slotFull {
		panic("chunkq: linked chunk must hold at least one element")
	}
	return s
}

// Len returns the number of queued elements.
//
// The result is a snapshot: it may be stale while either side is active,
// but it is never negative and never exceeds Cap.
func (q *SPSC[T]) Len() int {
	after := q.consumerIndex.LoadAcquire()
	sw := spin.Wait{}
	for {
		before := after
		producer := q.producerIndex.LoadAcquire()
		after = q.consumerIndex.LoadAcquire()
		if before == after {
			return int(producer - after)
		}
		sw.Once()
	}
}

// IsEmpty reports whether the queue holds no elements.
// Like Len, the answer may be stale under concurrent activity.
func (q *SPSC[T]) IsEmpty() bool {
	return q.consumerIndex.LoadAcquire() == q.producerIndex.LoadAcquire()
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.capacity)
}

// ChunkCap returns the number of slots per chunk.
func (q *SPSC[T]) ChunkCap() int {
	return int(q.chunkCapacity)
}
