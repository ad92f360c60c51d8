package dirchecksums

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// HashRecord is one row of a hash table
type HashRecord struct {
	Path string `json:"path" yaml:"path"`
	Hash string `json:"hash" yaml:"hash"`
}

// HashStore is an ordered map from relative path to hash. Iteration is in
// lexical path order. Every record carries the store's generation label as
// its skiplist context.
type HashStore struct {
	skiplist   *zcsl.ZeroCopySkiplist[HashRecord, string, string]
	generation string
}

// NewHashStore creates an empty store for a generation (CurrentGeneration or LoadedGeneration)
func NewHashStore(generation string) *HashStore {
	getKeyFromItem := func(rec *HashRecord) string {
		return rec.Path
	}

	getItemSize := func(rec *HashRecord) int {
		return len(rec.Path) + len(rec.Hash)
	}

	skiplist := zcsl.MakeZeroCopySkiplist[HashRecord, string, string](
		skiplistLevels,
		getKeyFromItem,
		getItemSize,
		strings.Compare,
	)

	return &HashStore{skiplist: skiplist, generation: generation}
}

// Generation returns the generation label
func (hs *HashStore) Generation() string {
	return hs.generation
}

// Put inserts or replaces the hash for path
func (hs *HashStore) Put(path, hash string) {
	hs.skiplist.Delete(path)
	hs.skiplist.Insert(&HashRecord{Path: path, Hash: hash}, hs.generation)
}

// Get returns the hash for path
func (hs *HashStore) Get(path string) (string, bool) {
	itemPtr, _ := hs.skiplist.Find(path)
	if itemPtr == nil {
		return "", false
	}
	return itemPtr.Item().Hash, true
}

// Has reports whether path is present
func (hs *HashStore) Has(path string) bool {
	_, ok := hs.Get(path)
	return ok
}

// Delete removes path, reporting whether it was present
func (hs *HashStore) Delete(path string) bool {
	return hs.skiplist.Delete(path)
}

// Len returns the number of records
func (hs *HashStore) Len() int {
	return hs.skiplist.Length()
}

// IsEmpty returns true if the store has no records
func (hs *HashStore) IsEmpty() bool {
	return hs.skiplist.IsEmpty()
}

// ForEach iterates through all records in path order; returning false stops
func (hs *HashStore) ForEach(callback func(HashRecord) bool) {
	for current := hs.skiplist.First(); current != nil; current = current.Next() {
		if !callback(*current.Item()) {
			break
		}
	}
}

// Records returns all records in path order
func (hs *HashStore) Records() []HashRecord {
	records := make([]HashRecord, 0, hs.Len())
	hs.ForEach(func(rec HashRecord) bool {
		records = append(records, rec)
		return true
	})
	return records
}

// Paths returns all keys in path order
func (hs *HashStore) Paths() []string {
	paths := make([]string, 0, hs.Len())
	hs.ForEach(func(rec HashRecord) bool {
		paths = append(paths, rec.Path)
		return true
	})
	return paths
}

// First returns the first record in path order
func (hs *HashStore) First() (HashRecord, bool) {
	first := hs.skiplist.First()
	if first == nil {
		return HashRecord{}, false
	}
	return *first.Item(), true
}

// Copy returns an independent store with the same records and generation.
// Records are never mutated in place so they can be shared.
func (hs *HashStore) Copy() *HashStore {
	return &HashStore{
		skiplist:   hs.skiplist.Copy(),
		generation: hs.generation,
	}
}

// HashLen returns the length of an arbitrary stored hash, 0 when empty
func (hs *HashStore) HashLen() int {
	rec, ok := hs.First()
	if !ok {
		return 0
	}
	return len(rec.Hash)
}

// MaxPathLen returns the length of the longest key
func (hs *HashStore) MaxPathLen() int {
	width := 0
	hs.ForEach(func(rec HashRecord) bool {
		width = max(width, len(rec.Path))
		return true
	})
	return width
}

// Equal reports whether both stores hold identical records
func (hs *HashStore) Equal(other *HashStore) bool {
	if hs.Len() != other.Len() {
		return false
	}
	equal := true
	hs.ForEach(func(rec HashRecord) bool {
		hash, ok := other.Get(rec.Path)
		equal = ok && hash == rec.Hash
		return equal
	})
	return equal
}
