package hashtable

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixedHash struct {
	id   int
	hash int
}

func (f fixedHash) Hash() int {
	return f.hash
}

func TestHashTableInsertAndContains(t *testing.T) {
	ht := New[string]()
	assert.True(t, ht.Insert("one"), "first insert of 'one' should succeed")
	assert.True(t, ht.Insert("two"))

	assert.True(t, ht.Contains("one"), "Key 'one' should exist")
	assert.True(t, ht.Contains("two"), "Key 'two' should exist")
	assert.False(t, ht.Contains("three"), "Key 'three' should not exist")
	assert.Equal(t, 2, ht.Len())
}

func TestHashTableInsertDuplicate(t *testing.T) {
	ht := New[int]()
	assert.True(t, ht.Insert(7))
	assert.False(t, ht.Insert(7), "second insert of the same value should be rejected")
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableRemove(t *testing.T) {
	t.Run("remove decrements the size", func(t *testing.T) {
		ht := New[string]()
		ht.Insert("one")
		ht.Insert("two")

		assert.True(t, ht.Remove("one"))
		assert.False(t, ht.Contains("one"), "Expected key 'one' to be deleted")
		assert.Equal(t, 1, ht.Len())
	})

	t.Run("remove absent value is a no-op", func(t *testing.T) {
		ht := New[string]()
		ht.Insert("one")

		assert.False(t, ht.Remove("two"))
		assert.Equal(t, 1, ht.Len())
	})

	t.Run("remove from the middle of a chain", func(t *testing.T) {
		ht := New[fixedHash](WithCapacity(4))
		for i := 0; i < 3; i++ {
			ht.Insert(fixedHash{id: i, hash: 1})
		}

		assert.True(t, ht.Remove(fixedHash{id: 1, hash: 1}))
		assert.True(t, ht.Contains(fixedHash{id: 0, hash: 1}))
		assert.False(t, ht.Contains(fixedHash{id: 1, hash: 1}))
		assert.True(t, ht.Contains(fixedHash{id: 2, hash: 1}))
		assert.Equal(t, 2, ht.Len())
	})
}

func TestHashTableResize(t *testing.T) {
	ht := New[string]()

	for i := 0; i < 100; i++ {
		assert.True(t, ht.Insert(fmt.Sprintf("key%d", i)))
	}

	assert.Equal(t, 100, ht.Len())
	assert.Equal(t, 160, ht.Capacity())
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		assert.True(t, ht.Contains(key), "Key '%s' should exist", key)
	}
	assert.Len(t, ht.Items(), 100)
	assert.LessOrEqual(t, float64(ht.Len())/float64(ht.Capacity()), loadFactor)
}

func TestHashTableResizeThreshold(t *testing.T) {
	ht := New[int](WithCapacity(4))

	ht.Insert(1)
	ht.Insert(2)
	ht.Insert(3)
	assert.Equal(t, 4, ht.Capacity(), "3/4 elements should not trigger growth yet")

	ht.Insert(4)
	assert.Equal(t, 8, ht.Capacity(), "load factor 0.75 should double the capacity before inserting")
	assert.Equal(t, 4, ht.Len())

	ht.Insert(4)
	assert.Equal(t, 8, ht.Capacity(), "duplicates never grow the table")
}

func TestHashTableResizeLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ht := New[int](WithCapacity(2), WithLogger(zap.New(core)))

	ht.Insert(1)
	ht.Insert(2)
	ht.Insert(3)

	entries := logs.FilterMessage("hashtable resized").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["from"])
	assert.EqualValues(t, 4, fields["to"])
	assert.EqualValues(t, 2, fields["count"])
}

func TestHashTableClear(t *testing.T) {
	ht := New[int](WithCapacity(2))
	for i := 0; i < 10; i++ {
		ht.Insert(i)
	}
	grown := ht.Capacity()

	ht.Clear()

	assert.Equal(t, 0, ht.Len())
	assert.True(t, ht.Empty())
	assert.Equal(t, grown, ht.Capacity(), "clear must not shrink the table")
	assert.Empty(t, ht.Items())
	assert.False(t, ht.Contains(3))

	assert.True(t, ht.Insert(3))
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableAll(t *testing.T) {
	t.Run("newest element comes first within a chain", func(t *testing.T) {
		ht := New[fixedHash](WithCapacity(10))
		ht.Insert(fixedHash{id: 1, hash: 3})
		ht.Insert(fixedHash{id: 2, hash: 3})
		ht.Insert(fixedHash{id: 3, hash: 1})

		assert.Equal(t, []fixedHash{
			{id: 3, hash: 1},
			{id: 2, hash: 3},
			{id: 1, hash: 3},
		}, ht.Items())
	})

	t.Run("early stop", func(t *testing.T) {
		ht := New[int]()
		for i := 0; i < 5; i++ {
			ht.Insert(i)
		}

		seen := 0
		for range ht.All() {
			seen++
			if seen == 2 {
				break
			}
		}
		assert.Equal(t, 2, seen)
	})
}

func TestHashTableCapacityFallback(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New[int]().Capacity())
	assert.Equal(t, DefaultCapacity, New[int](WithCapacity(0)).Capacity())
	assert.Equal(t, DefaultCapacity, New[int](WithCapacity(-3)).Capacity())
	assert.Equal(t, 32, New[int](WithCapacity(32)).Capacity())
}

func TestHashTableMinIntHash(t *testing.T) {
	assert.Equal(t, uint64(1)<<63, absHash(math.MinInt))
	assert.Equal(t, uint64(math.MaxInt), absHash(-math.MaxInt))
	assert.Equal(t, uint64(5), absHash(-5))
	assert.Equal(t, uint64(5), absHash(5))

	ht := New[fixedHash](WithCapacity(7))
	v := fixedHash{id: 1, hash: math.MinInt}
	require.True(t, ht.Insert(v))
	assert.True(t, ht.Contains(v))
	assert.True(t, ht.Remove(v))
	assert.Equal(t, 0, ht.Len())

	index := ht.index(v)
	assert.GreaterOrEqual(t, index, 0)
	assert.Less(t, index, ht.Capacity())
}
