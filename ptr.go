// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// RingPtr is a ring for unsafe.Pointer values.
//
// Useful for zero-copy handoff: the producer enqueues a pointer and the
// consumer receives the same pointer, transferring ownership. The ring
// never dereferences the pointees; Pop and Close only drop the ring's own
// reference to them.
//
// Same protocol and contract as [Ring]; see its documentation.
// A RingPtr must not be copied after first use.
type RingPtr struct {
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

	buffer   []unsafe.Pointer
	capacity uint64
	slack    uint64
	closed   bool
}

// NewPtr creates a ring for unsafe.Pointer values with the given capacity.
// Capacity is used exactly as given; usable capacity is capacity-1.
// Returns ErrCapacity if capacity < 2 and ErrAllocation if the backing
// store cannot be sized.
func NewPtr(capacity int) (*RingPtr, error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}

	slack := slotSlack(uintptr(ptrSize))
	slots, ok := slotCount(uintptr(capacity), slack, uintptr(ptrSize))
	if !ok {
		return nil, ErrAllocation
	}
	return &RingPtr{
		buffer:   make([]unsafe.Pointer, slots),
		capacity: uint64(capacity),
		slack:    uint64(slack),
	}, nil
}

// Push adds a pointer, busy-waiting until a slot is free (producer only).
func (q *RingPtr) Push(elem unsafe.Pointer) {
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

	// Pointer arithmetic avoids slice bounds checking in hot path.
	// Equivalent to q.buffer[q.slack+head] = elem
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(q.slack+head)*ptrSize)) = elem
	q.head.StoreRelease(next)
}

// TryPush adds a pointer without waiting (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *RingPtr) TryPush(elem unsafe.Pointer) error {
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

	// Pointer arithmetic avoids slice bounds checking in hot path.
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(q.slack+head)*ptrSize)) = elem
	q.head.StoreRelease(next)
	return nil
}

// Front returns the oldest pointer without consuming it (consumer only).
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (q *RingPtr) Front() (unsafe.Pointer, error) {
	tail := q.tail.LoadRelaxed()
	if tail == q.cachedHead {
		q.cachedHead = q.head.LoadAcquire()
		if tail == q.cachedHead {
			return nil, ErrWouldBlock
		}
	}
	// Pointer arithmetic avoids slice bounds checking in hot path.
	return *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(q.slack+tail)*ptrSize)), nil
}

// Pop drops the oldest pointer and frees its slot (consumer only).
// The slot is cleared so the ring does not pin the pointee.
// The ring must not be empty: confirm with Front first. Pop panics on a
// contract violation.
func (q *RingPtr) Pop() {
	tail := q.tail.LoadRelaxed()
	if tail == q.cachedHead {
		q.cachedHead = q.head.LoadAcquire()
		if tail == q.cachedHead {
			panic("ringq: Pop on empty ring")
		}
	}

	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(q.buffer)), int(q.slack+tail)*ptrSize)) = nil
	next := tail + 1
	if next == q.capacity {
		next = 0
	}
	q.tail.StoreRelease(next)
}

// Len returns an estimate of the number of resident pointers.
// Same racy caveat as [Ring.Len].
func (q *RingPtr) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if head < tail {
		head += q.capacity
	}
	return int(head - tail)
}

// Empty reports whether the ring appears empty. Same racy caveat as Len.
func (q *RingPtr) Empty() bool {
	return q.Len() == 0
}

// Cap returns the construction-time capacity.
// Usable capacity is Cap()-1 elements.
func (q *RingPtr) Cap() int {
	return int(q.capacity)
}

// Close clears any resident slots in FIFO order and releases the backing
// store. Close is idempotent and must only be called once neither side is
// still operating on the ring.
func (q *RingPtr) Close() {
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
