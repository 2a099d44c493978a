// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chunkq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// Both [ErrQueueFull] and [ErrEmpty] wrap it, so callers that only care
// about "retry later" can test a single value:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if chunkq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
//
// It is the same value as [iox.ErrWouldBlock].
var ErrWouldBlock = iox.ErrWouldBlock

// ErrQueueFull is returned by Enqueue when the queue already holds Cap()
// elements. The element is not enqueued. It wraps [ErrWouldBlock].
var ErrQueueFull = fmt.Errorf("chunkq: queue full: %w", ErrWouldBlock)

// ErrEmpty is returned by Dequeue and Peek when no element is visible to
// the consumer. It wraps [ErrWouldBlock].
var ErrEmpty = fmt.Errorf("chunkq: queue empty: %w", ErrWouldBlock)

// ErrInvalidConfiguration is returned by constructors when the requested
// chunk size or capacity cannot form a bounded chunked queue.
var ErrInvalidConfiguration = errors.New("chunkq: invalid configuration")

// ErrNilElement is returned by Enqueue when given a nil element.
var ErrNilElement = errors.New("chunkq: nil element")

// IsWouldBlock reports whether err is, or wraps, [ErrWouldBlock].
// It holds for both [ErrQueueFull] and [ErrEmpty].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is an iox control flow signal.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or an iox control flow signal,
// as classified by [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
