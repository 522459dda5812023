package utils

// Ring keeps the last cap elements pushed into it. Once full, a push overwrites the oldest element.
// not goroutine-safe
type Ring[T any] struct {
	buf  []T
	tail int
	size int
}

func NewRing[T any](cap int) *Ring[T] {
	if cap <= 0 {
		panic("ring capacity should be positive")
	}
	return &Ring[T]{buf: make([]T, cap)}
}

func (q *Ring[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Ring[T]) Count() int {
	return q.size
}

func (q *Ring[T]) Push(vs ...T) *Ring[T] {
	for _, v := range vs {
		q.buf[q.tail] = v
		q.tail = (q.tail + 1) % len(q.buf)
		if q.size < len(q.buf) {
			q.size++
		}
	}
	return q
}

// Elements returns the kept elements, oldest first.
func (q *Ring[T]) Elements() []T {
	result := make([]T, q.size)
	if q.size < len(q.buf) {
		copy(result, q.buf[:q.size])
		return result
	}
	n := copy(result, q.buf[q.tail:])
	copy(result[n:], q.buf[:q.tail])
	return result
}
