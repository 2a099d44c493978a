// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chunkq provides a bounded single-producer single-consumer FIFO
// queue that grows in fixed-size chunks.
//
// A plain ring buffer must allocate its full capacity up front. chunkq
// starts with one chunk and links further chunks of the same size only
// when the producer runs out of room, up to a hard maximum capacity. Both
// Enqueue and Dequeue are wait-free: no locks, no retry loops, at most one
// allocation per Enqueue.
//
// # Quick Start
//
//	// 256-slot chunks, at most 64Ki queued elements
//	q, err := chunkq.NewSPSC[Event](256, 1<<16)
//
//	// Chunk size derived from capacity (capacity/8, at least 8)
//	q, err := chunkq.NewSPSCWithCapacity[Event](4096)
//
//	// Builder
//	q, err := chunkq.BuildSPSC[Event](chunkq.New(4096).ChunkSize(64))
//
// # Basic Usage
//
//	value := 42
//	err := q.Enqueue(&value)
//	if chunkq.IsWouldBlock(err) {
//	    // Queue is full (ErrQueueFull) - handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if chunkq.IsWouldBlock(err) {
//	    // Queue is empty (ErrEmpty) - try again later
//	}
//
// # Pipeline Stage
//
//	q, _ := chunkq.NewSPSC[Data](64, 4096)
//
//	go func() { // Producer
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer
//	    q.DrainUntil(process, stopped)
//	}()
//
// # Chunks and Capacity
//
// Chunk size and capacity both round up to the next power of 2. The
// capacity must be at least 16, and the chunk size (at least 8) must be
// strictly smaller than the capacity, so a queue always has room to grow
// at least once:
//
//	chunkq.NewSPSC[int](4, 64)   // chunk 8, capacity 64
//	chunkq.NewSPSC[int](8, 8)    // ErrInvalidConfiguration: capacity < 16
//	chunkq.NewSPSC[int](64, 64)  // ErrInvalidConfiguration: chunk >= capacity
//
// Each chunk is a ring. The producer reuses slots the consumer has freed
// and links a new chunk only when its ring is full. The number of queued
// elements never exceeds Cap(); a full queue accepts a new element as soon
// as the consumer removes one.
//
// Len is a best-effort snapshot. It is never negative and never exceeds
// Cap, but may lag behind either side.
//
// # Error Handling
//
// [ErrQueueFull] and [ErrEmpty] both wrap [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox]. They are control flow signals, not failures:
//
//	chunkq.IsWouldBlock(err)         // true for ErrQueueFull and ErrEmpty
//	errors.Is(err, chunkq.ErrEmpty)  // exact condition
//
// Constructors return errors wrapping [ErrInvalidConfiguration].
//
// # Thread Safety
//
// Exactly one goroutine may call the producer methods (Enqueue, Fill,
// FillUntil) and exactly one goroutine may call the consumer methods
// (Dequeue, Peek, Drain, DrainUntil). Len, IsEmpty and Cap are safe from
// any goroutine. Violating these constraints causes undefined behavior.
//
// # Race Detection
//
// The generic queue protects plain element fields with acquire-release
// slot states. Go's race detector cannot see that ordering and may report
// false positives; concurrent tests for the generic variant are skipped
// when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and [golang.org/x/sys/cpu] for cache line padding.
package chunkq
