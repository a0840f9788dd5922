package hashtable

import (
	"iter"

	"go.uber.org/zap"
)

const (
	DefaultCapacity = 10
	loadFactor      = 0.75
)

type entry[T any] struct {
	value T
	next  *entry[T]
}

type config struct {
	capacity int
	logger   *zap.Logger
}

// Option configures a HashTable.
type Option func(c *config)

// WithCapacity sets the initial number of buckets.
// Values below 1 fall back to DefaultCapacity.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithLogger sets the logger used to report table growth.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// HashTable stores unique elements in chained buckets.
// It is not safe for concurrent use.
type HashTable[T any] struct {
	buckets  []*entry[T]
	capacity int
	count    int
	logger   *zap.Logger
}

func New[T any](opts ...Option) *HashTable[T] {
	cfg := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity < 1 {
		cfg.capacity = DefaultCapacity
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return &HashTable[T]{
		buckets:  make([]*entry[T], cfg.capacity),
		capacity: cfg.capacity,
		logger:   cfg.logger,
	}
}

// Insert adds value unless an equal element is already stored.
func (h *HashTable[T]) Insert(value T) bool {
	if h.Contains(value) {
		return false
	}

	// Grow before placing so the new element lands in the final bucket array
	if float64(h.count)/float64(h.capacity) >= loadFactor {
		h.resize()
	}

	h.place(value)
	return true
}

func (h *HashTable[T]) place(value T) {
	index := h.index(value)
	h.buckets[index] = &entry[T]{value: value, next: h.buckets[index]}
	h.count++
}

func (h *HashTable[T]) resize() {
	oldCapacity := h.capacity
	oldBuckets := h.buckets

	h.capacity = oldCapacity * 2
	h.buckets = make([]*entry[T], h.capacity)
	h.count = 0 // re-counted while placing

	for _, e := range oldBuckets {
		for e != nil {
			h.place(e.value)
			e = e.next
		}
	}

	h.logger.Debug("hashtable resized",
		zap.Int("from", oldCapacity),
		zap.Int("to", h.capacity),
		zap.Int("count", h.count),
	)
}

// Remove unlinks the element equal to value, if any.
func (h *HashTable[T]) Remove(value T) bool {
	index := h.index(value)
	head := h.buckets[index]
	if head == nil {
		return false
	}

	if Equal(head.value, value) {
		h.buckets[index] = head.next
		h.count--
		return true
	}

	prev := head
	curr := head.next
	for curr != nil {
		if Equal(curr.value, value) {
			prev.next = curr.next
			h.count--
			return true
		}
		prev = curr
		curr = curr.next
	}

	return false
}

func (h *HashTable[T]) Contains(value T) bool {
	for curr := h.buckets[h.index(value)]; curr != nil; curr = curr.next {
		if Equal(curr.value, value) {
			return true
		}
	}
	return false
}

// Clear drops every element but keeps the grown capacity.
func (h *HashTable[T]) Clear() {
	h.count = 0
	h.buckets = make([]*entry[T], h.capacity)
}

// Len returns the number of elements in the hash table
func (h *HashTable[T]) Len() int {
	return h.count
}

// Capacity returns the current number of buckets.
func (h *HashTable[T]) Capacity() int {
	return h.capacity
}

// Empty returns true if the hash table is empty
func (h *HashTable[T]) Empty() bool {
	return h.count == 0
}

// All yields every element, bucket by bucket, newest first within a bucket.
// The order changes whenever the table grows. The table must not be
// mutated while the sequence is being consumed.
func (h *HashTable[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range h.buckets {
			for ; e != nil; e = e.next {
				if !yield(e.value) {
					return
				}
			}
		}
	}
}

func (h *HashTable[T]) Items() []T {
	items := make([]T, 0, h.count)
	for v := range h.All() {
		items = append(items, v)
	}
	return items
}

func (h *HashTable[T]) index(value T) int {
	return int(absHash(Hash(value)) % uint64(h.capacity))
}

// absHash returns |hash| as an unsigned value. math.MinInt has no positive
// int counterpart, so the magnitude is computed in uint64.
func absHash(hash int) uint64 {
	if hash < 0 {
		return uint64(-(hash + 1)) + 1
	}
	return uint64(hash)
}
