package hashtable

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type caseless string

func (c caseless) Hash() int {
	return Hash(strings.ToLower(string(c)))
}

func (c caseless) Equal(other caseless) bool {
	return strings.EqualFold(string(c), string(other))
}

type node struct {
	name string
}

type point struct {
	x, y float64
}

type cyclic struct {
	self *cyclic
	tags []string
}

func TestHash(t *testing.T) {
	t.Run("integers hash to themselves", func(t *testing.T) {
		assert.Equal(t, 42, Hash(42))
		assert.Equal(t, -7, Hash(int8(-7)))
		assert.Equal(t, 9, Hash(uint16(9)))
	})

	t.Run("signed zeros share a hash", func(t *testing.T) {
		assert.Equal(t, Hash(0.0), Hash(math.Copysign(0, -1)))
		assert.True(t, Equal(0.0, math.Copysign(0, -1)))
	})

	t.Run("strings are deterministic", func(t *testing.T) {
		assert.Equal(t, Hash("foo"), Hash("foo"))
		assert.NotEqual(t, Hash("foo"), Hash("bar"))
	})

	t.Run("element hash is used when present", func(t *testing.T) {
		assert.Equal(t, Hash(caseless("FOO")), Hash(caseless("foo")))
	})

	t.Run("pointers hash by address", func(t *testing.T) {
		n := &node{name: "a"}
		h := Hash(n)
		n.name = "b"
		assert.Equal(t, h, Hash(n), "mutating the pointee must not move the element")
	})

	t.Run("structs and slices hash by content", func(t *testing.T) {
		assert.Equal(t, Hash(node{name: "a"}), Hash(node{name: "a"}))
		assert.Equal(t, Hash([]int{1, 2}), Hash([]int{1, 2}))
	})

	t.Run("signed zeros inside composites share a hash", func(t *testing.T) {
		negZero := math.Copysign(0, -1)

		assert.True(t, Equal(point{x: 0, y: 1}, point{x: negZero, y: 1}))
		assert.Equal(t, Hash(point{x: 0, y: 1}), Hash(point{x: negZero, y: 1}))

		assert.True(t, Equal([2]float64{0, 1}, [2]float64{negZero, 1}))
		assert.Equal(t, Hash([2]float64{0, 1}), Hash([2]float64{negZero, 1}))

		assert.True(t, Equal([]float32{0}, []float32{float32(negZero)}))
		assert.Equal(t, Hash([]float32{0}), Hash([]float32{float32(negZero)}))

		assert.True(t, Equal[any](point{}, point{x: negZero}))
		assert.Equal(t, Hash[any](point{}), Hash[any](point{x: negZero}))
	})

	t.Run("deep values follow pointers", func(t *testing.T) {
		a := []*node{{name: "a"}}
		b := []*node{{name: "a"}}

		assert.True(t, Equal(a, b))
		assert.Equal(t, Hash(a), Hash(b))
	})

	t.Run("maps hash regardless of order", func(t *testing.T) {
		a := map[string]int{}
		b := map[string]int{}
		for i := 0; i < 20; i++ {
			a[strings.Repeat("k", i+1)] = i
			b[strings.Repeat("k", 20-i)] = 19 - i
		}

		assert.True(t, Equal(a, b))
		assert.Equal(t, Hash(a), Hash(b))
	})

	t.Run("cyclic values terminate", func(t *testing.T) {
		c := &cyclic{tags: []string{"x"}}
		c.self = c

		assert.Equal(t, Hash([]*cyclic{c}), Hash([]*cyclic{c}))
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(caseless("Foo"), caseless("fOO")))
	assert.False(t, Equal(caseless("Foo"), caseless("bar")))

	assert.True(t, Equal(node{name: "a"}, node{name: "a"}))
	assert.False(t, Equal(&node{name: "a"}, &node{name: "a"}), "distinct pointers are distinct elements")

	assert.True(t, Equal([]int{1, 2}, []int{1, 2}))
	assert.False(t, Equal([]int{1, 2}, []int{2, 1}))

	assert.True(t, Equal[any](nil, nil))
	assert.False(t, Equal[any](nil, 1))
	assert.False(t, Equal[any]([]int{1}, 1))
}

func TestHashTableCustomEquality(t *testing.T) {
	ht := New[caseless]()
	assert.True(t, ht.Insert("Go"))
	assert.False(t, ht.Insert("GO"))
	assert.True(t, ht.Contains("go"))
	assert.True(t, ht.Remove("gO"))
	assert.Equal(t, 0, ht.Len())
}

func TestHashTableSignedZeroElements(t *testing.T) {
	negZero := math.Copysign(0, -1)

	points := New[point]()
	assert.True(t, points.Insert(point{x: 0, y: 2}))
	assert.False(t, points.Insert(point{x: negZero, y: 2}))
	assert.True(t, points.Contains(point{x: negZero, y: 2}))
	assert.Equal(t, 1, points.Len())

	arrays := New[[2]float64]()
	assert.True(t, arrays.Insert([2]float64{negZero, negZero}))
	assert.False(t, arrays.Insert([2]float64{0, 0}))
	assert.Equal(t, 1, arrays.Len())
}

func TestHashTableSliceElements(t *testing.T) {
	ht := New[[]string]()
	assert.True(t, ht.Insert([]string{"a", "b"}))
	assert.False(t, ht.Insert([]string{"a", "b"}))
	assert.True(t, ht.Insert([]string{"b", "a"}))
	assert.True(t, ht.Contains([]string{"b", "a"}))
	assert.Equal(t, 2, ht.Len())
}
