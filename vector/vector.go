package vector

import (
	"bytes"
	"math"
	"sort"
	"unsafe"

	"github.com/juju/errors"
)

// Vector is a growable array of elements of type T. Unlike a plain slice,
// it grows according to a caller-chosen GrowthPolicy, and the storage past
// Size() is always kept zeroed, so a freshly grown slot reads as the zero
// value of T.
//
// The zero Vector is empty and ready to use, with the default linear growth
// policy.
type Vector[T any] struct {
	// data always has len(data) == capacity.
	data []T
	size int

	grow GrowthPolicy
}

// GrowthPolicy returns by how many elements the capacity should grow when an
// element is appended to a full vector. Values less than 1 are treated as 1.
type GrowthPolicy func(size, capacity int) int

// DefaultGrowthStep is used by the zero Vector.
const DefaultGrowthStep = 10

// LinearGrowth grows the capacity by the fixed step.
func LinearGrowth(step int) GrowthPolicy {
	return func(size, capacity int) int {
		return step
	}
}

// LogGrowth grows the capacity by floor(ln(2+size)), so that the increment
// gets slowly bigger as the vector grows.
func LogGrowth() GrowthPolicy {
	return func(size, capacity int) int {
		return int(math.Log(float64(2 + size)))
	}
}

// SortMode specifies the order used by Sort.
type SortMode int

const (
	Asc SortMode = iota
	Desc
)

// AfterFunc returns true iff a must sort strictly after b.
type AfterFunc[T any] func(a, b *T) bool

// EqualFunc returns true if a and b are considered equal.
type EqualFunc[T any] func(a, b *T) bool

// New creates a vector with the given number of preallocated, zeroed slots.
// Negative capacity is treated as 0.
func New[T any](capacity int) *Vector[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Vector[T]{
		data: make([]T, capacity),
		grow: LinearGrowth(DefaultGrowthStep),
	}
}

// SetGrowthPolicy sets the policy used when appending to a full vector; nil
// resets it to the default.
func (v *Vector[T]) SetGrowthPolicy(p GrowthPolicy) *Vector[T] {
	v.grow = p
	return v
}

// Size returns the number of elements in the vector.
func (v *Vector[T]) Size() int {
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	return len(v.data)
}

// Stride returns the size in bytes of one element.
func (v *Vector[T]) Stride() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Slice returns the live elements. The returned slice aliases the vector
// storage and is only valid until the next growth.
func (v *Vector[T]) Slice() []T {
	return v.data[:v.size]
}

// Append copies item into the next free slot, growing the storage first if
// the vector is full.
func (v *Vector[T]) Append(item T) {
	if v.size >= len(v.data) {
		v.Grow(v.growthStep())
	}

	v.data[v.size] = item
	v.size++
}

func (v *Vector[T]) growthStep() int {
	p := v.grow
	if p == nil {
		p = LinearGrowth(DefaultGrowthStep)
	}

	step := p(v.size, len(v.data))
	if step < 1 {
		step = 1
	}

	return step
}

// Grow reallocates the storage to Cap()+extra slots and copies the live
// elements over.
func (v *Vector[T]) Grow(extra int) error {
	if extra < 0 {
		return errors.NotValidf("growing by %d elements", extra)
	}

	newData := make([]T, len(v.data)+extra)
	copy(newData, v.data[:v.size])
	v.data = newData

	return nil
}

// Get returns a pointer to the element at index i, which stays valid until
// the next growth. If i is out of range, it returns nil and false.
func (v *Vector[T]) Get(i int) (*T, bool) {
	if i < 0 || i >= v.size {
		return nil, false
	}

	return &v.data[i], true
}

// Last returns the last element, or nil and false if the vector is empty.
func (v *Vector[T]) Last() (*T, bool) {
	return v.Get(v.size - 1)
}

// Remove removes the element at the given index, preserving the order of the
// rest. O(n).
func (v *Vector[T]) Remove(index int) error {
	if index < 0 || index >= v.size {
		return errors.NotValidf("index %d with size %d", index, v.size)
	}

	for i := index; i < v.size-1; i++ {
		v.data[i], v.data[i+1] = v.data[i+1], v.data[i]
	}

	v.shrink()
	return nil
}

// RemoveFast removes the element at the given index by swapping it with the
// last one, so the order is not preserved. O(1).
func (v *Vector[T]) RemoveFast(index int) error {
	if index < 0 || index >= v.size {
		return errors.NotValidf("index %d with size %d", index, v.size)
	}

	last := v.size - 1
	v.data[index], v.data[last] = v.data[last], v.data[index]

	v.shrink()
	return nil
}

func (v *Vector[T]) shrink() {
	var zero T
	v.size--
	v.data[v.size] = zero
}

// Sort sorts the vector in the given mode. The sort is stable.
func (v *Vector[T]) Sort(after AfterFunc[T], mode SortMode) {
	if after == nil || v.size == 0 {
		return
	}

	live := v.data[:v.size]
	sort.SliceStable(live, func(i, j int) bool {
		if mode == Desc {
			return after(&live[i], &live[j])
		}

		return after(&live[j], &live[i])
	})
}

// Contains returns whether the vector has an element equal to obj. If eq is
// nil, the raw memory of one element is compared.
func (v *Vector[T]) Contains(obj T, eq EqualFunc[T]) bool {
	for i := 0; i < v.size; i++ {
		if eq != nil {
			if eq(&obj, &v.data[i]) {
				return true
			}
			continue
		}

		if rawEqual(&obj, &v.data[i]) {
			return true
		}
	}

	return false
}

// Destroy releases the storage and resets the vector to the empty state.
func (v *Vector[T]) Destroy() {
	v.data = nil
	v.size = 0
	v.grow = nil
}

func rawEqual[T any](a, b *T) bool {
	n := unsafe.Sizeof(*a)
	if n == 0 {
		return true
	}

	return bytes.Equal(
		unsafe.Slice((*byte)(unsafe.Pointer(a)), n),
		unsafe.Slice((*byte)(unsafe.Pointer(b)), n),
	)
}
