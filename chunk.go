// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import "code.hybscloud.com/atomix"

// Slot states. A slot moves empty → full → empty for as long as the chunk
// is in use, and empty → jump exactly once when the producer leaves it.
const (
	slotEmpty uint64 = iota
	slotFull
	slotJump
)

// slot holds one element. The state word orders access to data: the
// producer writes data before StoreRelease(slotFull), the consumer reads
// data after LoadAcquire observes slotFull.
type slot[T any] struct {
	state atomix.Uint64
	data  T
}

// chunk is one fixed-capacity ring segment of the queue.
//
// next is the link slot. It is written once, before the producer
// release-stores slotJump into the slot it abandons, and is read by the
// consumer only after acquiring that marker. A chunk is never unlinked.
type chunk[T any] struct {
	slots []slot[T]
	next  *chunk[T]
}

// newChunk allocates a chunk with n empty slots. n must be a power of 2.
func newChunk[T any](n int) *chunk[T] {
	return &chunk[T]{slots: make([]slot[T], n)}
}

// mask returns the index mask for this chunk.
func (c *chunk[T]) mask() uint64 {
	return uint64(len(c.slots)) - 1
}
