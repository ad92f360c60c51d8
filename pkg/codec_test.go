package dirchecksums

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHashStoreFormat(t *testing.T) {
	store := storeOf(CurrentGeneration, "bb/c.txt", "BBBB", "a.txt", "AAAA")

	var buf bytes.Buffer
	require.NoError(t, WriteHashStore(&buf, store, "data.hash", 4))

	want := "a.txt      AAAA\n" +
		"bb/c.txt   BBBB\n" +
		"data.hash  ----\n"
	assert.Equal(t, want, buf.String())

	// the caller's store does not gain the self-row
	assert.False(t, store.Has("data.hash"))
}

func TestWriteHashStoreToFile(t *testing.T) {
	store := NewHashStore(CurrentGeneration)
	for i := 0; i < 2*iovMax+17; i++ {
		store.Put(fmt.Sprintf("dir%d/file%05d", i%7, i), "0123")
	}

	path := filepath.Join(t.TempDir(), "out.hash")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteHashStore(file, store, "out.hash", 4))
	require.NoError(t, file.Close())

	var want bytes.Buffer
	require.NoError(t, WriteHashStore(&want, store, "out.hash", 4))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.String(), string(got))
}

func TestParseHashStore(t *testing.T) {
	pattern := NewLinePattern()

	t.Run("RoundTrip", func(t *testing.T) {
		store := storeOf(CurrentGeneration, "a.txt", "AAAA", "my file.txt", "0F0F", "sub/b.txt", "----")
		var buf bytes.Buffer
		require.NoError(t, WriteHashStore(&buf, store, "data.hash", 4))

		loaded, err := ParseHashStore(&buf, pattern)
		require.NoError(t, err)
		assert.Equal(t, LoadedGeneration, loaded.Generation())

		hash, ok := loaded.Get("data.hash")
		require.True(t, ok)
		assert.Equal(t, "----", hash)

		loaded.Delete("data.hash")
		assert.True(t, store.Equal(loaded))
	})

	t.Run("MalformedLine", func(t *testing.T) {
		input := "a.txt  AAAA\nweird   not-hex-!!\nb.txt  BBBB\n"
		_, err := ParseHashStore(strings.NewReader(input), pattern)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, []int{2}, perr.Lines)
		assert.Equal(t, ExitParse, ExitCode(err))
	})

	t.Run("EveryMalformedLineReported", func(t *testing.T) {
		input := "a.txt  AAAA\nsingle ABCD\n\nc.txt  CCCC\nd.txt\te.txt  xyz\n"
		_, err := ParseHashStore(strings.NewReader(input), pattern)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, []int{2, 5}, perr.Lines)
		assert.Contains(t, perr.Error(), "2, 5")
	})

	t.Run("BlankAndCRLF", func(t *testing.T) {
		input := "a.txt  abcd\r\n\r\n\nb.txt   ef01\r\n"
		loaded, err := ParseHashStore(strings.NewReader(input), pattern)
		require.NoError(t, err)

		assert.Equal(t, []string{"a.txt", "b.txt"}, loaded.Paths())
		hash, _ := loaded.Get("a.txt")
		assert.Equal(t, "ABCD", hash)
	})

	t.Run("LastDuplicateWins", func(t *testing.T) {
		loaded, err := ParseHashStore(strings.NewReader("a.txt  1111\na.txt  2222\n"), pattern)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Len())
		hash, _ := loaded.Get("a.txt")
		assert.Equal(t, "2222", hash)
	})

	t.Run("Empty", func(t *testing.T) {
		loaded, err := ParseHashStore(strings.NewReader(""), pattern)
		require.NoError(t, err)
		assert.True(t, loaded.IsEmpty())
	})
}

func TestLoadHashStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/data.hash", []byte("ok.txt  AA\nbroken\n"), 0644))

	_, err := LoadHashStore(fs, "/data/data.hash", NewLinePattern())
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/data/data.hash", perr.Path)
	assert.Equal(t, []int{2}, perr.Lines)

	_, err = LoadHashStore(fs, "/data/missing.hash", NewLinePattern())
	require.Error(t, err)
	var notParse *ParseError
	assert.False(t, errors.As(err, &notParse))
}

func TestSaveHashStore(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.hash")
	store := storeOf(CurrentGeneration, "a.txt", "AAAA")

	require.NoError(t, SaveHashStore(fs, path, store, "tree.hash", 4, false))

	err := SaveHashStore(fs, path, storeOf(CurrentGeneration, "b.txt", "BBBB"), "tree.hash", 4, false)
	var optErr *OptionsError
	require.ErrorAs(t, err, &optErr)
	assert.ErrorIs(t, err, ErrOutputExists)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a.txt      AAAA\ntree.hash  ----\n", string(content))

	require.NoError(t, SaveHashStore(fs, path, storeOf(CurrentGeneration, "b.txt", "BBBB"), "tree.hash", 4, true))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b.txt      BBBB\ntree.hash  ----\n", string(content))
}
