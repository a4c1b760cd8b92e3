package datastructures

import (
	"errors"
)

// ErrDequeEmpty is returned when popping or peeking an empty deque.
var ErrDequeEmpty = errors.New("deque is empty")

const minDequeCapacity = 4

// Deque represents a double-ended queue over a ring buffer. It grows when
// full. DestroyList uses it to hold a chain while releasing it tail first.
type Deque[T any] struct {
	data     []T
	size     int
	head     int
	tail     int
	capacity int
}

// NewDeque creates a new Deque sized for at least capacity elements.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < minDequeCapacity {
		capacity = minDequeCapacity
	}
	return &Deque[T]{
		data:     make([]T, capacity),
		capacity: capacity,
		head:     0,
		tail:     capacity - 1,
	}
}

// PushFront adds an element to the front of the deque.
func (d *Deque[T]) PushFront(value T) error {
	if d.size == d.capacity {
		d.grow()
	}
	d.head = (d.head - 1 + d.capacity) % d.capacity
	d.data[d.head] = value
	d.size++
	return nil
}

// PushBack adds an element to the back of the deque.
func (d *Deque[T]) PushBack(value T) error {
	if d.size == d.capacity {
		d.grow()
	}
	d.tail = (d.tail + 1) % d.capacity
	d.data[d.tail] = value
	d.size++
	return nil
}

// PopFront removes an element from the front of the deque.
func (d *Deque[T]) PopFront() (T, error) {
	var zeroValue T
	if d.size == 0 {
		return zeroValue, ErrDequeEmpty
	}
	value := d.data[d.head]
	d.data[d.head] = zeroValue
	d.head = (d.head + 1) % d.capacity
	d.size--
	return value, nil
}

// PopBack removes an element from the back of the deque.
func (d *Deque[T]) PopBack() (T, error) {
	var zeroValue T
	if d.size == 0 {
		return zeroValue, ErrDequeEmpty
	}
	value := d.data[d.tail]
	d.data[d.tail] = zeroValue
	d.tail = (d.tail - 1 + d.capacity) % d.capacity
	d.size--
	return value, nil
}

// Front returns the element at the front of the deque.
func (d *Deque[T]) Front() (T, error) {
	if d.size == 0 {
		var zeroValue T
		return zeroValue, ErrDequeEmpty
	}
	return d.data[d.head], nil
}

// Back returns the element at the back of the deque.
func (d *Deque[T]) Back() (T, error) {
	if d.size == 0 {
		var zeroValue T
		return zeroValue, ErrDequeEmpty
	}
	return d.data[d.tail], nil
}

// Size returns the number of elements in the deque.
func (d *Deque[T]) Size() int {
	return d.size
}

// Empty checks if the deque is empty.
func (d *Deque[T]) Empty() bool {
	return d.size == 0
}

// grow doubles the buffer and lays the elements out from index 0.
func (d *Deque[T]) grow() {
	data := make([]T, d.capacity*2)
	for i := 0; i < d.size; i++ {
		data[i] = d.data[(d.head+i)%d.capacity]
	}
	d.data = data
	d.capacity *= 2
	d.head = 0
	d.tail = d.size - 1
}
