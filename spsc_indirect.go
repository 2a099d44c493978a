// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import "unsafe"

// SPSCIndirect is a chunked SPSC queue for uintptr values.
type SPSCIndirect struct {
	q SPSC[uintptr]
}

// NewSPSCIndirect creates a new chunked SPSC queue for uintptr values.
// Arguments follow [NewSPSC].
func NewSPSCIndirect(chunkHint, maxCapacity int) (*SPSCIndirect, error) {
	cfg, err := newChunkedConfig(chunkHint, maxCapacity)
	if err != nil {
		return nil, err
	}
	q := &SPSCIndirect{}
	q.q.init(cfg)
	return q, nil
}

// Enqueue adds an element (producer only).
// Returns ErrQueueFull if the queue is full.
func (q *SPSCIndirect) Enqueue(elem uintptr) error {
	return q.q.enqueue(&elem, nil)
}

// Dequeue removes and returns an element (consumer only).
// Returns (0, ErrEmpty) if the queue is empty.
func (q *SPSCIndirect) Dequeue() (uintptr, error) {
	return q.q.Dequeue()
}

// Peek returns the next element without removing it (consumer only).
func (q *SPSCIndirect) Peek() (uintptr, error) {
	return q.q.Peek()
}

// Len returns a snapshot of the number of queued elements.
func (q *SPSCIndirect) Len() int {
	return q.q.Len()
}

// IsEmpty reports whether the queue holds no elements.
func (q *SPSCIndirect) IsEmpty() bool {
	return q.q.IsEmpty()
}

// Cap returns the queue capacity.
func (q *SPSCIndirect) Cap() int {
	return q.q.Cap()
}

// ChunkCap returns the number of slots per chunk.
func (q *SPSCIndirect) ChunkCap() int {
	return q.q.ChunkCap()
}

// SPSCPtr is a chunked SPSC queue for unsafe.Pointer values.
// Useful for zero-copy pointer passing between goroutines.
type SPSCPtr struct {
	q SPSC[unsafe.Pointer]
}

// NewSPSCPtr creates a new chunked SPSC queue for unsafe.Pointer values.
// Arguments follow [NewSPSC].
func NewSPSCPtr(chunkHint, maxCapacity int) (*SPSCPtr, error) {
	cfg, err := newChunkedConfig(chunkHint, maxCapacity)
	if err != nil {
		return nil, err
	}
	q := &SPSCPtr{}
	q.q.init(cfg)
	return q, nil
}

// Enqueue adds an element (producer only).
// Returns ErrNilElement for nil, ErrQueueFull if the queue is full.
func (q *SPSCPtr) Enqueue(elem unsafe.Pointer) error {
	if elem == nil {
		return ErrNilElement
	}
	return q.q.enqueue(&elem, nil)
}

// Dequeue removes and returns an element (consumer only).
// Returns (nil, ErrEmpty) if the queue is empty.
func (q *SPSCPtr) Dequeue() (unsafe.Pointer, error) {
	return q.q.Dequeue()
}

// Peek returns the next element without removing it (consumer only).
func (q *SPSCPtr) Peek() (unsafe.Pointer, error) {
	return q.q.Peek()
}

// Len returns a snapshot of the number of queued elements.
func (q *SPSCPtr) Len() int {
	return q.q.Len()
}

// IsEmpty reports whether the queue holds no elements.
func (q *SPSCPtr) IsEmpty() bool {
	return q.q.IsEmpty()
}

// Cap returns the queue capacity.
func (q *SPSCPtr) Cap() int {
	return q.q.Cap()
}

// ChunkCap returns the number of slots per chunk.
func (q *SPSCPtr) ChunkCap() int {
	return q.q.ChunkCap()
}
