package hashtable

import (
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Hasher is implemented by elements that supply their own hash code.
// Equal elements must return equal hashes.
type Hasher interface {
	Hash() int
}

// Equaler is implemented by elements that supply their own equality.
// An Equaler that is not also a Hasher must agree with the default hash.
type Equaler[T any] interface {
	Equal(other T) bool
}

// maxHashDepth bounds the walk into nested values. Deeper parts do not
// contribute to the hash, which keeps cyclic values finite.
const maxHashDepth = 16

// Hash returns the hash code of v. Elements implementing Hasher decide
// for themselves. Everything else is hashed by walking its value the same
// way Equal compares it: comparable values as == sees them, other values
// as reflect.DeepEqual sees them.
func Hash[T any](v T) int {
	switch x := any(v).(type) {
	case nil:
		return 0
	case Hasher:
		return x.Hash()
	case string:
		return int(xxhash.Sum64String(x))
	case int:
		return integer(x)
	}

	rv := reflect.ValueOf(v)
	return hashValue(rv, !rv.Comparable(), 0)
}

// hashValue hashes rv. In deep mode pointers are followed, matching
// reflect.DeepEqual; otherwise they hash by address, matching ==.
func hashValue(rv reflect.Value, deep bool, depth int) int {
	if depth > maxHashDepth {
		return 0
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return integer(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return float(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return combine(float(real(c)), float(imag(c)))
	case reflect.String:
		return int(xxhash.Sum64String(rv.String()))
	case reflect.Interface:
		if rv.IsNil() {
			return 0
		}
		return hashValue(rv.Elem(), deep, depth+1)
	case reflect.Pointer:
		if !deep {
			return integer(rv.Pointer())
		}
		if rv.IsNil() {
			return 0
		}
		return hashValue(rv.Elem(), deep, depth+1)
	case reflect.Chan, reflect.UnsafePointer:
		return integer(rv.Pointer())
	case reflect.Struct:
		h := 0
		for i := 0; i < rv.NumField(); i++ {
			h = combine(h, hashValue(rv.Field(i), deep, depth+1))
		}
		return h
	case reflect.Array, reflect.Slice:
		h := rv.Len()
		for i := 0; i < rv.Len(); i++ {
			h = combine(h, hashValue(rv.Index(i), deep, depth+1))
		}
		return h
	case reflect.Map:
		// entries are summed so iteration order does not matter
		h := rv.Len()
		iter := rv.MapRange()
		for iter.Next() {
			h += combine(hashValue(iter.Key(), deep, depth+1), hashValue(iter.Value(), deep, depth+1))
		}
		return h
	}

	// funcs are only ever equal when both are nil
	return 0
}

// Equal reports whether a and b are the same element. Elements implementing
// Equaler decide for themselves, comparable values use ==, anything else
// falls back to reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	if e, ok := any(a).(Equaler[T]); ok {
		return e.Equal(b)
	}

	if any(a) == nil || any(b) == nil {
		return any(a) == nil && any(b) == nil
	}

	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return any(a) == any(b)
	}

	return reflect.DeepEqual(a, b)
}

func integer[I constraints.Integer](i I) int {
	return int(i)
}

func float[F constraints.Float](f F) int {
	if f == 0 {
		// 0 and -0 are equal and must share a bucket
		return 0
	}
	bits := math.Float64bits(float64(f))
	return int(bits ^ (bits >> 32))
}

func combine(h, v int) int {
	return h*31 + v
}
