// Package ringbuffer implements a bounded, single-producer/single-consumer
// queue suitable for fan-in/fan-out around the matching core. It has no
// knowledge of orders or events and is not part of the core's correctness —
// it exists so a caller running ingestion on one goroutine and matching on
// another has a non-blocking handoff primitive that does not allocate once
// constructed.
package ringbuffer

import "sync/atomic"

// cacheLinePad reserves enough bytes to keep head and tail apart on their
// own cache lines, so the producer spinning on head and the consumer
// spinning on tail never false-share.
type cacheLinePad [64 - 8]byte

// Ring is a fixed-capacity circular buffer. One slot is always left empty
// to distinguish "full" from "empty" without a separate counter — the same
// trade-off the queue this was adapted from makes. Ring must be used by
// exactly one producer goroutine calling TryPush and exactly one consumer
// goroutine calling TryPop; it is not safe for multiple producers or
// multiple consumers.
type Ring[T any] struct {
	buffer []T

	head uint64
	_    cacheLinePad
	tail uint64
	_    cacheLinePad
}

// New constructs a Ring that can hold up to capacity items. Internally it
// allocates capacity+1 slots to keep the full/empty disambiguation working.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buffer: make([]T, capacity+1)}
}

// Capacity returns the maximum number of items Ring can hold at once.
func (r *Ring[T]) Capacity() int { return len(r.buffer) - 1 }

// TryPush appends item without blocking. It returns false, leaving item
// unconsumed, if the ring is full.
func (r *Ring[T]) TryPush(item T) bool {
	currentHead := atomic.LoadUint64(&r.head)
	nextHead := r.advance(currentHead)

	if nextHead == atomic.LoadUint64(&r.tail) {
		return false
	}

	r.buffer[currentHead] = item
	atomic.StoreUint64(&r.head, nextHead)
	return true
}

// TryPop removes and returns the oldest item without blocking. ok is false,
// and the zero value is returned, if the ring is empty.
func (r *Ring[T]) TryPop() (item T, ok bool) {
	currentTail := atomic.LoadUint64(&r.tail)

	if currentTail == atomic.LoadUint64(&r.head) {
		return item, false
	}

	item = r.buffer[currentTail]
	var zero T
	r.buffer[currentTail] = zero
	atomic.StoreUint64(&r.tail, r.advance(currentTail))
	return item, true
}

func (r *Ring[T]) advance(index uint64) uint64 {
	next := index + 1
	if next == uint64(len(r.buffer)) {
		return 0
	}
	return next
}
