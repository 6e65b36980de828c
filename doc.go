// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides a fixed-capacity lock-free single-producer
// single-consumer FIFO ring queue.
//
// The ring coordinates exactly two goroutines through two atomic cursors
// over a contiguous buffer: no locks, no compare-and-swap, plain
// acquire/release loads and stores under a single-writer-per-cursor
// discipline. Cursors are kept on separate cache lines and the buffer
// carries slack slots on both sides so independent state never shares a
// line.
//
// # Quick Start
//
//	q, err := ringq.New[Event](1024)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	// Producer goroutine
//	ev := Event{ID: 1}
//	q.Push(&ev)           // blocking (busy-spin while full)
//	err = q.TryPush(&ev)  // non-blocking, ErrWouldBlock when full
//
//	// Consumer goroutine
//	e, err := q.Front()   // peek, ErrWouldBlock when empty
//	if err == nil {
//	    handle(*e)
//	    q.Pop()           // destroy front element, free the slot
//	}
//
// # Protocol
//
// head is the next write slot (producer-owned), tail the next read slot
// (consumer-owned); both wrap modulo capacity. One slot is sacrificed so
// full and empty are distinguishable without a shared counter, so a ring
// of capacity n holds at most n-1 elements.
//
// Every handoff rides one release/acquire chain per slot: the producer
// writes the element, then release-stores head; the consumer acquire-loads
// head before touching the element, zeroes the slot on Pop, then
// release-stores tail; the producer acquire-loads tail before reusing the
// slot. No stronger ordering is needed because each cursor has exactly one
// writer.
//
// # Pipeline Pattern
//
//	q, _ := ringq.New[Data](1024)
//
//	go func() { // Producer
//	    for data := range input {
//	        q.Push(&data)
//	    }
//	}()
//
//	go func() { // Consumer
//	    backoff := iox.Backoff{}
//	    for {
//	        d, err := q.Front()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(*d)
//	        q.Pop()
//	    }
//	}()
//
// # Blocking and Backpressure
//
// Push is the only blocking operation: it busy-spins (no OS parking) until
// the consumer frees a slot, trading CPU for minimal latency. Use it only
// when the consumer drains promptly. For bounded waits, build a retry loop
// from TryPush and [code.hybscloud.com/iox].Backoff; the ring itself has
// no timeouts.
//
// The consumer side never blocks: Front reports an empty ring via
// ErrWouldBlock and Pop requires a prior successful Front.
//
// # Length and Capacity
//
// Len and Empty are racy estimates: the two cursor loads are not atomic as
// a pair. They are fit for monitoring and backpressure heuristics only.
// Cap is exact and capacity is used exactly as constructed — no power-of-2
// rounding, since slots are addressed modulo capacity rather than masked.
//
// # Teardown
//
// Close drains un-popped elements in FIFO order, zeroing each slot so
// referenced resources are released to the garbage collector, then drops
// the backing store. The caller must ensure both goroutines have stopped
// using the ring first.
//
// # Thread Safety
//
// Exactly one goroutine may push and exactly one may pop. Violating the
// SPSC constraint causes undefined behavior including data corruption.
// The [Producer] and [Consumer] interfaces exist so each goroutine can be
// handed only its half of the protocol.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic memory orderings on separate variables, so it
// reports false positives on the ring's element slots. The algorithm is
// correct; concurrent tests are skipped under the race detector via
// [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic cursors with
// explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions in the Push busy-wait, and [code.hybscloud.com/iox] for
// semantic errors.
package ringq
