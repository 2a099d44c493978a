// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import "code.hybscloud.com/iox"

// batchLimit bounds the work done between exit checks in the Until loops.
const batchLimit = 4096

// Drain removes up to limit elements and passes each to fn (consumer only).
// Returns the number of elements removed; stops early when the queue is empty.
func (q *SPSC[T]) Drain(fn func(T), limit int) int {
	n := 0
	for n < limit {
		elem, err := q.Dequeue()
		if err != nil {
			return n
		}
		fn(elem)
		n++
	}
	return n
}

// Fill enqueues up to limit elements produced by fn (producer only).
// fn is called only when its result is certain to be enqueued.
// Returns the number of elements added; stops early when the queue is full.
func (q *SPSC[T]) Fill(fn func() T, limit int) int {
	n := 0
	for n < limit {
		if q.enqueue(nil, fn) != nil {
			return n
		}
		n++
	}
	return n
}

// DrainUntil drains the queue into fn until exit reports true
// (consumer only). While the queue is empty it waits with [iox.Backoff].
//
// exit is checked between batches; elements still queued when it
// reports true are left in place.
func (q *SPSC[T]) DrainUntil(fn func(T), exit func() bool) {
	backoff := iox.Backoff{}
	for !exit() {
		if q.Drain(fn, batchLimit) == 0 {
			backoff.Wait()
			continue
		}
		backoff.Reset()
	}
}

// FillUntil fills the queue from fn until exit reports true
// (producer only). While the queue is full it waits with [iox.Backoff].
func (q *SPSC[T]) FillUntil(fn func() T, exit func() bool) {
	backoff := iox.Backoff{}
	for !exit() {
		if q.Fill(fn, batchLimit) == 0 {
			backoff.Wait()
			continue
		}
		backoff.Reset()
	}
}
