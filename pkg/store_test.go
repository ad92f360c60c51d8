package dirchecksums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func storeOf(generation string, kv ...string) *HashStore {
	hs := NewHashStore(generation)
	for i := 0; i+1 < len(kv); i += 2 {
		hs.Put(kv[i], kv[i+1])
	}
	return hs
}

func TestHashStoreOrderAndReplace(t *testing.T) {
	hs := storeOf(CurrentGeneration, "b.txt", "BB", "a.txt", "AA", "dir/c.txt", "CC")
	hs.Put("a.txt", "A2")

	assert.Equal(t, 3, hs.Len())
	assert.Equal(t, []string{"a.txt", "b.txt", "dir/c.txt"}, hs.Paths())

	hash, ok := hs.Get("a.txt")
	assert.True(t, ok)
	assert.Equal(t, "A2", hash)
	assert.Equal(t, CurrentGeneration, hs.Generation())
	assert.Equal(t, 9, hs.MaxPathLen())
	assert.Equal(t, 2, hs.HashLen())
}

func TestHashStoreCopyIsIndependent(t *testing.T) {
	hs := storeOf(LoadedGeneration, "a", "11", "b", "22")
	cp := hs.Copy()

	assert.True(t, cp.Delete("a"))
	cp.Put("c", "33")

	assert.True(t, hs.Has("a"))
	assert.False(t, hs.Has("c"))
	assert.Equal(t, 2, hs.Len())
	assert.Equal(t, LoadedGeneration, cp.Generation())
}

func TestHashStoreEmpty(t *testing.T) {
	hs := NewHashStore(CurrentGeneration)
	assert.True(t, hs.IsEmpty())
	assert.Equal(t, 0, hs.HashLen())
	assert.Empty(t, hs.Records())
	assert.False(t, hs.Delete("missing"))
}

func TestHashStoreEqual(t *testing.T) {
	a := storeOf(CurrentGeneration, "x", "01", "y", "02")
	b := storeOf(LoadedGeneration, "y", "02", "x", "01")
	assert.True(t, a.Equal(b))

	b.Put("y", "03")
	assert.False(t, a.Equal(b))
}
