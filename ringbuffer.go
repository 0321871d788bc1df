// Package circbuf implements a bounded FIFO ring buffer of uint32 values
// backed by storage owned by the caller.
package circbuf

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrFull            = errors.New("buffer is full")
	ErrEmpty           = errors.New("buffer is empty")
	ErrNotFound        = errors.New("value not found")
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// RingBuffer is a fixed-capacity circular queue. One slot of storage is
// always left unused so that a full buffer can be told apart from an empty
// one, which means at most capacity-1 values are held at a time.
//
// The buffer borrows its storage: it never allocates, grows or frees it,
// and the caller must keep the slice alive for as long as the buffer is used.
// A RingBuffer is not safe for concurrent use.
type RingBuffer struct {
	data     []uint32
	capacity int
	head     int
	tail     int
	count    int
	logger   zerolog.Logger
}

// New binds a buffer to the first capacity slots of storage.
func New(storage []uint32, capacity int, opts ...Option) (*RingBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d must be at least 1", ErrInvalidCapacity, capacity)
	}
	if capacity > len(storage) {
		return nil, fmt.Errorf("%w: %d exceeds storage length %d", ErrInvalidCapacity, capacity, len(storage))
	}

	r := &RingBuffer{
		data:     storage[:capacity:capacity],
		capacity: capacity,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *RingBuffer) Cap() int {
	return r.capacity
}

// Size returns the number of values currently stored.
func (r *RingBuffer) Size() int {
	return r.count
}

func (r *RingBuffer) IsEmpty() bool {
	return r.head == r.tail
}

func (r *RingBuffer) IsFull() bool {
	return increment(r.capacity, r.tail) == r.head
}

// Contains reports whether value is stored, returning it when found.
func (r *RingBuffer) Contains(value uint32) (uint32, bool) {
	for i := r.head; i != r.tail; i = increment(r.capacity, i) {
		if r.data[i] == value {
			return value, true
		}
	}
	return 0, false
}

// InsertTail appends value behind the newest element. It never overwrites
// unread data: a full buffer is left untouched and ErrFull is returned.
func (r *RingBuffer) InsertTail(value uint32) (uint32, error) {
	if r.IsFull() {
		return 0, ErrFull
	}

	r.data[r.tail] = value
	r.tail = increment(r.capacity, r.tail)
	r.count++

	return value, nil
}

// RemoveValue removes every element equal to value, keeping the remaining
// elements contiguous between head and tail. It returns value if at least
// one element was removed and ErrNotFound otherwise.
func (r *RingBuffer) RemoveValue(value uint32) (uint32, error) {
	removed := false
	i := r.head
	for i != r.tail {
		if r.data[i] != value {
			i = increment(r.capacity, i)
			continue
		}

		for j := increment(r.capacity, i); j != r.tail; j = increment(r.capacity, j) {
			r.data[decrement(r.capacity, j)] = r.data[j]
		}
		r.tail = decrement(r.capacity, r.tail)
		r.count--
		removed = true
		// slot i now holds the element that followed the match
	}

	if !removed {
		return 0, ErrNotFound
	}
	return value, nil
}

// RemoveHead removes and returns the oldest element.
func (r *RingBuffer) RemoveHead() (uint32, error) {
	if r.IsEmpty() {
		return 0, ErrEmpty
	}

	value := r.data[r.head]
	r.head = increment(r.capacity, r.head)
	r.count--

	return value, nil
}

// Reset empties the buffer. Storage contents are left as they are.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.tail = 0
	r.count = 0
}

// Values returns a copy of the stored elements from oldest to newest.
func (r *RingBuffer) Values() []uint32 {
	out := make([]uint32, 0, r.count)
	for i := r.head; i != r.tail; i = increment(r.capacity, i) {
		out = append(out, r.data[i])
	}
	return out
}

func (r *RingBuffer) String() string {
	return fmt.Sprint(r.Values())
}

func (r *RingBuffer) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// Print logs the buffer contents in logical order. The output is meant for
// debugging and has no stable format.
func (r *RingBuffer) Print() {
	r.logger.Debug().
		Int("size", r.count).
		Int("capacity", r.capacity).
		Int("head", r.head).
		Int("tail", r.tail).
		Uints32("values", r.Values()).
		Msg("ring buffer")
}

func increment(capacity, index int) int {
	return (index + 1) % capacity
}

func decrement(capacity, index int) int {
	if index == 0 {
		return capacity - 1
	}
	return index - 1
}
