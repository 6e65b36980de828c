// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"math"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a fixed-capacity single-producer single-consumer FIFO queue.
//
// The ring holds capacity physical slots of which capacity-1 are usable:
// one slot is sacrificed so that full and empty are distinguishable from
// the two cursors alone, without a shared counter.
//
//   - empty: head == tail
//   - full:  (head+1) % capacity == tail
//
// head is the next write slot and is written only by the producer; tail is
// the next read slot and is written only by the consumer. Each side caches
// the opposite cursor to keep the hot path free of cross-core traffic; the
// cache is refreshed with an acquire load only when it claims no progress
// is possible. All cursors and caches live on separate cache lines.
//
// The buffer carries one cache line of slack slots before and after the
// logical range so that slot 0 and slot capacity-1 never share a line with
// a neighboring allocation. Slack slots are never addressed.
//
// A Ring must not be copied after first use.
type Ring[T any] struct {
	noCopy noCopy

	_          pad
	head       atomix.Uint64 // next write slot, producer-owned
	_          pad
	cachedTail uint64 // producer's cached view of tail
	_          pad
	tail       atomix.Uint64 // next read slot, consumer-owned
	_          pad
	cachedHead uint64 // consumer's cached view of head
	_          pad

	buffer   []T
	capacity uint64
	slack    uint64
	closed   bool
}

// New creates a ring with the given capacity.
//
// Capacity is used exactly as given (no power-of-2 rounding); usable
// capacity is capacity-1 elements. Returns ErrCapacity if capacity < 2
// and ErrAllocation if the backing store cannot be sized.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}

	var zero T
	size := unsafe.Sizeof(zero)
	slack := slotSlack(size)
	slots, ok := slotCount(uintptr(capacity), slack, size)
	if !ok {
		return nil, ErrAllocation
	}
	return &Ring[T]{
		buffer:   make([]T, slots),
		capacity: uint64(capacity),
		slack:    uint64(slack),
	}, nil
}

// slotSlack returns the number of elements covering one cache line,
// rounded up, and at least one slot even for zero-size elements.
func slotSlack(elemSize uintptr) uintptr {
	if elemSize == 0 {
		return 1
	}
	return (cacheLineSize-1)/elemSize + 1
}

// slotCount returns the physical slot count including slack on both sides,
// or ok=false when the slot count or resulting byte size overflows.
func slotCount(capacity, slack, elemSize uintptr) (uintptr, bool) {
	slots := capacity + 2*slack
	if slots < capacity || slots > math.MaxInt {
		return 0, false
	}
	if elemSize > 0 && slots > math.MaxInt/elemSize {
		return 0, false
	}
	return slots, true
}

// Push adds an element, busy-waiting until a slot is free (producer only).
//
// The spin re-loads tail with acquire ordering; that load is what makes the
// consumer's destruction of the slot visible before the slot is rewritten.
// Push blocks indefinitely if the consumer stalls.
func (q *Ring[T]) Push(elem *T) {
	head := q.head.LoadRelaxed()
	next := head + 1
	if next == q.capacity {
		next = 0
	}
	if next == q.cachedTail {
		sw := spin.Wait{}
		for {
			q.cachedTail = q.tail.LoadAcquire()
			if next != q.cachedTail {
				break
			}
			sw.Once()
		}
	}

	q.buffer[q.slack+head] = *elem
	q.head.StoreRelease(next)
}

// TryPush adds an element without waiting (producer only).
// Returns ErrWouldBlock if the ring is full; nothing is written or
// published in that case.
func (q *Ring[T]) TryPush(elem *T) error {
	head := q.head.LoadRelaxed()
	next := head + 1
	if next == q.capacity {
		next = 0
	}
	if next == q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if next == q.cachedTail {
			return ErrWouldBlock
		}
	}

	q.buffer[q.slack+head] = *elem
	q.head.StoreRelease(next)
	return nil
}

// Front returns a pointer to the oldest element without consuming it
// (consumer only). Returns (nil, ErrWouldBlock) if the ring is empty.
//
// The acquire load on head synchronizes with the producer's release store,
// so the element is fully written before the pointer is handed out. The
// pointer stays valid until the next Pop.
func (q *Ring[T]) Front() (*T, error) {
	tail := q.tail.LoadRelaxed()
	if tail == q.cachedHead {
		q.cachedHead = q.head.LoadAcquire()
		if tail == q.cachedHead {
			return nil, ErrWouldBlock
		}
	}
	return &q.buffer[q.slack+tail], nil
}

// Pop destroys the oldest element and frees its slot (consumer only).
//
// The slot is zeroed before the cursor is published so any references held
// by the element are released to the garbage collector, and the release
// store on tail is what hands the slot back to the producer.
//
// The ring must not be empty: confirm with Front first. Pop panics on a
// contract violation.
func (q *Ring[T]) Pop() {
	tail := q.tail.LoadRelaxed()
	if tail == q.cachedHead {
		q.cachedHead = q.head.LoadAcquire()
		if tail == q.cachedHead {
			panic("ringq: Pop on empty ring")
		}
	}

	var zero T
	q.buffer[q.slack+tail] = zero
	next := tail + 1
	if next == q.capacity {
		next = 0
	}
	q.tail.StoreRelease(next)
}

// Len returns an estimate of the number of resident elements.
//
// The two cursor loads are not atomic as a pair, so the result is valid
// only as of some instant between the two reads. A torn read can observe
// tail wrapped past head; the raw difference is corrected by capacity.
// Use for monitoring and backpressure heuristics only.
func (q *Ring[T]) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if head < tail {
		head += q.capacity
	}
	return int(head - tail)
}

// Empty reports whether the ring appears empty. Same racy caveat as Len.
func (q *Ring[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the construction-time capacity.
// Usable capacity is Cap()-1 elements.
func (q *Ring[T]) Cap() int {
	return int(q.capacity)
}

// Close drains any resident elements in FIFO order and releases the
// backing store. Draining zeroes every live slot, so resources referenced
// by un-popped elements are not leaked to the end of the process.
//
// Close is idempotent. It must only be called once neither the producer
// nor the consumer goroutine is still operating on the ring; all other
// operations are undefined after Close.
func (q *Ring[T]) Close() {
	if q.closed {
		return
	}
	q.closed = true
	for {
		if _, err := q.Front(); err != nil {
			break
		}
		q.Pop()
	}
	q.buffer = nil
}
