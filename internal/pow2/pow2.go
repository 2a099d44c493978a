// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pow2 provides power-of-two arithmetic for ring and chunk sizing.
package pow2

import "math/bits"

// MaxInt is the largest power of two representable by int.
const MaxInt = 1 << (bits.UintSize - 2)

// RoundUp returns the smallest power of two >= n.
//
// Returns 1 for n <= 1 and 0 when the result would not fit in an int,
// so callers can reject oversized requests without overflow checks.
func RoundUp(n int) int {
	if n <= 1 {
		return 1
	}
	if n > MaxInt {
		return 0
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
