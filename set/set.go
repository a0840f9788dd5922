// Package set implements a mutable, unordered set with the full algebra of
// set operations on top of a chained hash table.
//
// Elements may implement hashtable.Hasher and hashtable.Equaler to supply
// their own hash and equality; other types use the built-in contract.
// Nil elements are never stored. A Set is not safe for concurrent use.
package set

import (
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fzft/chainset/hashtable"
)

// Option configures the table backing a Set.
type Option = hashtable.Option

// WithCapacity sets the initial bucket count, 10 by default.
func WithCapacity(capacity int) Option {
	return hashtable.WithCapacity(capacity)
}

// WithLogger reports table growth to logger.
func WithLogger(logger *zap.Logger) Option {
	return hashtable.WithLogger(logger)
}

type Set[T any] struct {
	table *hashtable.HashTable[T]
	opts  []Option
}

func New[T any](opts ...Option) *Set[T] {
	return &Set[T]{
		table: hashtable.New[T](opts...),
		opts:  opts,
	}
}

// From builds a set from source, dropping duplicates. A nil source gives an empty set.
func From[T any](source Sequence[T], opts ...Option) *Set[T] {
	s := New[T](opts...)
	if isNil(source) {
		return s
	}

	for v := range source.All() {
		s.Add(v)
	}
	return s
}

func Of[T any](items ...T) *Set[T] {
	return From[T](Slice[T](items))
}

// Union returns a new set holding the elements of first and second.
// Neither input is modified.
func Union[T any](first, second *Set[T]) (*Set[T], error) {
	if err := validate(first, "first"); err != nil {
		return nil, err
	}
	if err := validate(second, "second"); err != nil {
		return nil, err
	}

	result := first.Clone()
	for v := range second.All() {
		result.table.Insert(v)
	}
	return result, nil
}

// Add inserts item and reports whether it was not present yet.
func (s *Set[T]) Add(item T) bool {
	if isNil(item) {
		return false
	}
	return s.table.Insert(item)
}

func (s *Set[T]) Remove(item T) bool {
	if isNil(item) {
		return false
	}
	return s.table.Remove(item)
}

func (s *Set[T]) Contains(item T) bool {
	if isNil(item) {
		return false
	}
	return s.table.Contains(item)
}

func (s *Set[T]) Clear() {
	s.table.Clear()
}

// Len is the number of elements in the set.
func (s *Set[T]) Len() int {
	return s.table.Len()
}

// Capacity is the current bucket count of the backing table.
func (s *Set[T]) Capacity() int {
	return s.table.Capacity()
}

// All iterates the set in no particular order. The order may change after
// any mutation.
func (s *Set[T]) All() iter.Seq[T] {
	return s.table.All()
}

func (s *Set[T]) Items() []T {
	return s.table.Items()
}

// Clone returns an independent copy with the same options.
func (s *Set[T]) Clone() *Set[T] {
	c := New[T](s.opts...)
	for v := range s.All() {
		c.table.Insert(v)
	}
	return c
}

// CopyTo writes the elements into dst starting at index start.
func (s *Set[T]) CopyTo(dst []T, start int) error {
	if dst == nil {
		return errors.Wrap(ErrInvalidArgument, "destination must not be nil")
	}
	if start < 0 {
		return errors.Wrapf(ErrOutOfRange, "start index %d is negative", start)
	}
	if start > len(dst)-1 || len(dst)-start < s.Len() {
		return errors.Wrapf(ErrInsufficientCapacity,
			"destination of length %d cannot hold %d elements from index %d", len(dst), s.Len(), start)
	}

	i := start
	for v := range s.All() {
		dst[i] = v
		i++
	}
	return nil
}

// ExceptWith removes every element of other from the set.
func (s *Set[T]) ExceptWith(other Sequence[T]) error {
	if err := validate(other, "other"); err != nil {
		return err
	}
	if s.Len() == 0 {
		return nil
	}

	if s.same(other) {
		s.Clear()
		return nil
	}

	for v := range other.All() {
		s.Remove(v)
	}
	return nil
}

// IntersectWith keeps only the elements also present in other.
func (s *Set[T]) IntersectWith(other Sequence[T]) error {
	if err := validate(other, "other"); err != nil {
		return err
	}
	if s.Len() == 0 {
		return nil
	}

	if c, ok := other.(Collection[T]); ok && c.Len() == 0 {
		s.Clear()
		return nil
	}

	scratch := New[T](s.opts...)
	for v := range other.All() {
		if s.Contains(v) {
			scratch.table.Insert(v)
		}
	}

	s.Clear()
	for v := range scratch.All() {
		s.table.Insert(v)
	}
	return nil
}

// UnionWith adds every element of other that is not present yet.
func (s *Set[T]) UnionWith(other Sequence[T]) error {
	if err := validate(other, "other"); err != nil {
		return err
	}
	if s.same(other) {
		return nil
	}

	for v := range other.All() {
		s.Add(v)
	}
	return nil
}

// SymmetricExceptWith keeps the elements present in exactly one of the set
// and other.
func (s *Set[T]) SymmetricExceptWith(other Sequence[T]) error {
	if err := validate(other, "other"); err != nil {
		return err
	}

	if s.same(other) {
		s.Clear()
		return nil
	}

	// a repeated element in a plain sequence must toggle only once
	if _, ok := other.(Collection[T]); !ok {
		other = From[T](other, s.opts...)
	}

	for v := range other.All() {
		if !s.Remove(v) {
			s.Add(v)
		}
	}
	return nil
}

// SetEquals reports whether the set and other hold the same elements.
// A plain sequence is collected into a set first so duplicates do not count.
func (s *Set[T]) SetEquals(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}

	c, ok := other.(Collection[T])
	if !ok {
		c = From[T](other, s.opts...)
	}

	if c.Len() != s.Len() {
		return false, nil
	}
	return s.containsAll(c), nil
}

// IsSubsetOf reports whether every element of the set is in other.
// other must be a Collection, any other sequence yields false.
func (s *Set[T]) IsSubsetOf(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}

	c, ok := other.(Collection[T])
	if !ok || c.Len() < s.Len() {
		return false, nil
	}
	return s.containedIn(c), nil
}

// IsProperSubsetOf is IsSubsetOf with other strictly larger.
func (s *Set[T]) IsProperSubsetOf(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}

	c, ok := other.(Collection[T])
	if !ok || c.Len() <= s.Len() {
		return false, nil
	}
	return s.containedIn(c), nil
}

// IsSupersetOf reports whether every element of other is in the set.
// other must be a Collection, any other sequence yields false.
func (s *Set[T]) IsSupersetOf(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}

	c, ok := other.(Collection[T])
	if !ok || s.Len() < c.Len() {
		return false, nil
	}
	return s.containsAll(c), nil
}

// IsProperSupersetOf is IsSupersetOf with the set strictly larger.
func (s *Set[T]) IsProperSupersetOf(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}

	c, ok := other.(Collection[T])
	if !ok || s.Len() <= c.Len() {
		return false, nil
	}
	return s.containsAll(c), nil
}

// Overlaps reports whether the set and other share at least one element.
func (s *Set[T]) Overlaps(other Sequence[T]) (bool, error) {
	if err := validate(other, "other"); err != nil {
		return false, err
	}
	if s.Len() == 0 {
		return false, nil
	}

	for v := range other.All() {
		if s.Contains(v) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Set[T]) same(other Sequence[T]) bool {
	o, ok := other.(*Set[T])
	return ok && o == s
}

func (s *Set[T]) containsAll(other Sequence[T]) bool {
	for v := range other.All() {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s *Set[T]) containedIn(other Collection[T]) bool {
	for v := range s.All() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}
