package set

import (
	"iter"
)

type (
	// Sequence is any finite input the set operations can iterate.
	Sequence[T any] interface {
		All() iter.Seq[T]
	}

	// Collection is a Sequence that knows its number of distinct elements
	// up front and answers membership queries. The subset and superset
	// family only accepts collections.
	Collection[T any] interface {
		Sequence[T]
		Len() int
		Contains(item T) bool
	}

	// Slice adapts a slice. It may hold duplicates, so it is not a Collection.
	Slice[T any] []T

	// Seq adapts an iterator function.
	Seq[T any] iter.Seq[T]
)

var (
	_ Sequence[int]   = Slice[int](nil)
	_ Sequence[int]   = Seq[int](nil)
	_ Collection[int] = (*Set[int])(nil)
)

func (s Slice[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func (s Seq[T]) All() iter.Seq[T] {
	return iter.Seq[T](s)
}
