// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "unsafe"

// Producer is the insert-side view of a ring.
//
// Hand a Producer to the producing goroutine so it cannot accidentally
// call consumer-side operations. The element is passed by pointer to avoid
// copying large structs; the ring stores a copy of the pointed-to value,
// so the original can be modified after the call returns.
//
// Exactly one goroutine may use the Producer side of a given ring.
type Producer[T any] interface {
	// Push adds an element, busy-waiting until a slot is free.
	// Push never fails; it blocks (spins) while the ring is full, so it
	// must only be used when the consumer is expected to drain promptly.
	Push(elem *T)

	// TryPush adds an element without waiting.
	// Returns nil on success, ErrWouldBlock if the ring is full.
	TryPush(elem *T) error
}

// Consumer is the remove-side view of a ring.
//
// Exactly one goroutine may use the Consumer side of a given ring.
// The contract is peek-then-pop: confirm an element is present with Front
// before calling Pop.
type Consumer[T any] interface {
	// Front returns a pointer to the oldest element without consuming it.
	// Returns (nil, ErrWouldBlock) if the ring is empty.
	// The pointer is valid until the next Pop.
	Front() (*T, error)

	// Pop destroys the oldest element and frees its slot.
	// The ring must not be empty; Pop panics if the contract is violated.
	Pop()
}

// Queue is the combined producer-consumer interface for a ring.
//
// Len and Empty are racy estimates by design: the two cursor loads are not
// atomic as a pair, so the result is valid only as of some instant between
// the two reads. Use them for monitoring and backpressure heuristics, never
// for correctness decisions. Cap is exact; usable capacity is Cap()-1
// because one slot is sacrificed to distinguish full from empty.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Len() int
	Empty() bool
	Cap() int
	Close()
}

// cacheLineSize is the false-sharing granularity the layout defends against.
const cacheLineSize = 64

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [cacheLineSize]byte

// noCopy triggers `go vet -copylocks` on rings copied by value.
// A ring's cursor offsets and live cross-goroutine protocol make any
// copy or relocation unsafe, so the type must stay where it was built.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
