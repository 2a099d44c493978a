// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import "unsafe"

// Queue is the combined producer-consumer interface for a chunked FIFO queue.
//
// Enqueue and Dequeue never block: Enqueue returns ErrQueueFull when the
// queue holds Cap() elements, Dequeue returns ErrEmpty when nothing is
// visible yet. Exactly one goroutine may produce and one may consume.
//
// Example:
//
//	q, _ := chunkq.NewSPSC[int](64, 1024)
//
//	// Producer
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue
//	}
//
//	// Consumer
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns a snapshot of the number of queued elements.
	Len() int
	// IsEmpty reports whether the queue holds no elements.
	IsEmpty() bool
	// Cap returns the maximum number of queued elements.
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs on the
// call. The queue stores a copy of the pointed-to value, so the original
// can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking, producer only).
	// Returns nil on success, ErrQueueFull if the queue is full, or
	// ErrNilElement if elem is nil.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value. The slot is cleared to allow garbage
// collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element (non-blocking, consumer only).
	// Returns (zero-value, ErrEmpty) if the queue is empty.
	Dequeue() (T, error)
	// Peek returns the next element without removing it.
	// Returns (zero-value, ErrEmpty) if the queue is empty.
	Peek() (T, error)
}

// QueueIndirect is the combined interface for uintptr queues.
//
// Useful for passing pool indices or handles between two goroutines.
type QueueIndirect interface {
	// Enqueue adds an element. Returns ErrQueueFull if the queue is full.
	Enqueue(elem uintptr) error
	// Dequeue removes an element. Returns (0, ErrEmpty) if the queue is empty.
	Dequeue() (uintptr, error)
	Len() int
	Cap() int
}

// QueuePtr is the combined interface for unsafe.Pointer queues.
//
// QueuePtr passes pointers without copying. The producer transfers
// ownership of the pointed-to object to the consumer; nil is rejected
// with ErrNilElement.
type QueuePtr interface {
	// Enqueue adds an element. Returns ErrQueueFull if the queue is full.
	Enqueue(elem unsafe.Pointer) error
	// Dequeue removes an element. Returns (nil, ErrEmpty) if the queue is empty.
	Dequeue() (unsafe.Pointer, error)
	Len() int
	Cap() int
}

var (
	_ Queue[int]    = (*SPSC[int])(nil)
	_ QueueIndirect = (*SPSCIndirect)(nil)
	_ QueuePtr      = (*SPSCPtr)(nil)
)
