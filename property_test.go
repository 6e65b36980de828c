// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/ringq"
	"pgregory.net/rapid"
)

// mutexRing is a deliberately slow mutex-guarded reference queue with the
// same observable semantics as Ring: capacity-1 usable slots, peek-then-pop.
// It serves as the oracle for the property suite.
type mutexRing struct {
	mu       sync.Mutex
	elems    []int
	capacity int
}

func newMutexRing(capacity int) *mutexRing {
	return &mutexRing{capacity: capacity}
}

func (m *mutexRing) tryPush(v int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.elems) == m.capacity-1 {
		return false
	}
	m.elems = append(m.elems, v)
	return true
}

func (m *mutexRing) front() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.elems) == 0 {
		return 0, false
	}
	return m.elems[0], true
}

func (m *mutexRing) pop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elems = m.elems[1:]
}

func (m *mutexRing) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.elems)
}

// TestRingMatchesReference drives a random single-threaded operation mix
// against the ring and the reference queue; every observable result must
// agree. Single-threaded use keeps Len exact, so it is checked verbatim.
func TestRingMatchesReference(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(2, 17).Draw(rt, "capacity")
		q, err := ringq.New[int](capacity)
		if err != nil {
			rt.Fatalf("New(%d): %v", capacity, err)
		}
		defer q.Close()
		ref := newMutexRing(capacity)

		steps := rapid.IntRange(1, 400).Draw(rt, "steps")
		next := 0
		for range steps {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0: // TryPush
				v := next
				next++
				accepted := q.TryPush(&v) == nil
				if want := ref.tryPush(v); accepted != want {
					rt.Fatalf("TryPush(%d): accepted=%v, want %v", v, accepted, want)
				}
			case 1: // Front
				front, err := q.Front()
				want, ok := ref.front()
				if ok != (err == nil) {
					rt.Fatalf("Front: err=%v, oracle ok=%v", err, ok)
				}
				if ok && *front != want {
					rt.Fatalf("Front: got %d, want %d", *front, want)
				}
			case 2: // Pop, only when the oracle confirms non-empty
				if _, ok := ref.front(); ok {
					ref.pop()
					q.Pop()
				}
			case 3: // Len / Empty
				if got, want := q.Len(), ref.len(); got != want {
					rt.Fatalf("Len: got %d, want %d", got, want)
				}
				if got, want := q.Empty(), ref.len() == 0; got != want {
					rt.Fatalf("Empty: got %v, want %v", got, want)
				}
			}
		}

		// Full drain must replay the oracle's residue in order.
		for {
			want, ok := ref.front()
			front, err := q.Front()
			if ok != (err == nil) {
				rt.Fatalf("drain: err=%v, oracle ok=%v", err, ok)
			}
			if !ok {
				break
			}
			if *front != want {
				rt.Fatalf("drain: got %d, want %d", *front, want)
			}
			ref.pop()
			q.Pop()
		}
	})
}

// TestCapacityBoundProperty checks the resident bound for arbitrary
// capacities: exactly capacity-1 TryPushes are accepted from empty, and
// the next one is rejected.
func TestCapacityBoundProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(2, 1024).Draw(rt, "capacity")
		q, err := ringq.New[int](capacity)
		if err != nil {
			rt.Fatalf("New(%d): %v", capacity, err)
		}
		defer q.Close()

		accepted := 0
		for i := range capacity + 1 {
			if q.TryPush(&i) == nil {
				accepted++
			}
		}
		if accepted != capacity-1 {
			rt.Fatalf("accepted %d pushes, want %d", accepted, capacity-1)
		}
		if q.Len() != capacity-1 {
			rt.Fatalf("Len: got %d, want %d", q.Len(), capacity-1)
		}
	})
}
