package pool

// ObjectPool is a bounded free list. Unlike sync.Pool, it never drops objects on its own
// and isn't safe for concurrent use.
type ObjectPool[T any] struct {
	queue []T
}

func NewObjectPool[T any](queueSize int) ObjectPool[T] {
	return ObjectPool[T]{
		queue: make([]T, 0, queueSize),
	}
}

// Acquire returns the most recently released object. If there's none, ok is false.
func (o *ObjectPool[T]) Acquire() (obj T, ok bool) {
	if len(o.queue) == 0 {
		return obj, false
	}

	obj = o.queue[len(o.queue)-1]
	o.queue = o.queue[:len(o.queue)-1]

	return obj, true
}

// Release puts the object back. Objects beyond the pool capacity are dropped.
func (o *ObjectPool[T]) Release(obj T) {
	if len(o.queue) == cap(o.queue) {
		return
	}

	o.queue = append(o.queue, obj)
}

// Len returns the number of objects ready to be acquired.
func (o *ObjectPool[T]) Len() int {
	return len(o.queue)
}
