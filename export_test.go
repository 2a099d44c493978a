// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

// Chunks returns the number of chunks from the consumer cursor to the
// producer cursor, both included. Callers must hold both sides quiescent.
func Chunks[T any](q *SPSC[T]) int {
	n := 1
	for c := q.consumerChunk; c != q.producerChunk; c = c.next {
		n++
	}
	return n
}
