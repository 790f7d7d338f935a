// Package resource implements the generational-index handle arena used by
// the RHI to name GPU objects, replacing the original engine's smart-pointer
// reference-counted resource model per its REDESIGN notes: a handle is a
// plain (index, generation) pair, cheap to copy and store anywhere, and a
// lookup against a stale generation fails instead of aliasing a reused slot.
package resource

import (
	"fmt"
	"sync"
)

// Handle names a slot in a Manager's arena. The zero Handle is never valid
// (Generation 0 slots start at generation 1 on first insert).
type Handle struct {
	Index      uint32
	Generation uint32
}

func (h Handle) IsValid() bool { return h.Generation != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.Index, h.Generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Manager is a mutex-guarded arena of T, addressed by Handle. One Manager
// instance is typically used per GPU resource kind (textures, programs,
// framebuffers, uniform buffers) inside rhi.Device.
type Manager[T any] struct {
	mu    sync.Mutex
	slots []slot[T]
	free  []uint32
}

func NewManager[T any]() *Manager[T] {
	return &Manager[T]{}
}

// Insert stores value and returns a fresh handle, reusing a freed slot's
// index with its generation bumped so any handle still referencing the old
// occupant fails Lookup instead of silently aliasing value.
func (m *Manager[T]) Insert(value T) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		m.slots[idx].value = value
		m.slots[idx].occupied = true
		return Handle{Index: idx, Generation: m.slots[idx].generation}
	}

	m.slots = append(m.slots, slot[T]{value: value, generation: 1, occupied: true})
	return Handle{Index: uint32(len(m.slots) - 1), Generation: 1}
}

func (m *Manager[T]) Lookup(h Handle) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !h.IsValid() || int(h.Index) >= len(m.slots) {
		return zero, false
	}
	s := m.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return zero, false
	}
	return s.value, true
}

// Release frees h's slot, bumping its generation so outstanding copies of h
// become invalid.
func (m *Manager[T]) Release(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !h.IsValid() || int(h.Index) >= len(m.slots) {
		return false
	}
	s := &m.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	m.free = append(m.free, h.Index)
	return true
}

// Replace overwrites the value stored at h without changing its generation,
// used for in-place resize (e.g. a framebuffer's attachments on viewport
// resize) where existing handles should keep pointing at the same resource.
func (m *Manager[T]) Replace(h Handle, value T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !h.IsValid() || int(h.Index) >= len(m.slots) {
		return false
	}
	s := &m.slots[h.Index]
	if !s.occupied || s.generation != h.Generation {
		return false
	}
	s.value = value
	return true
}

// Each visits every currently-occupied slot. Used for bulk teardown
// (Device.Destroy) where the caller needs every live GPU handle, not a
// specific lookup.
func (m *Manager[T]) Each(fn func(Handle, T)) {
	m.mu.Lock()
	snapshot := make([]Handle, 0, len(m.slots))
	values := make([]T, 0, len(m.slots))
	for i, s := range m.slots {
		if s.occupied {
			snapshot = append(snapshot, Handle{Index: uint32(i), Generation: s.generation})
			values = append(values, s.value)
		}
	}
	m.mu.Unlock()

	for i, h := range snapshot {
		fn(h, values[i])
	}
}

// Len returns the number of currently-occupied slots.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.slots {
		if s.occupied {
			n++
		}
	}
	return n
}
