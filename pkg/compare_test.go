package dirchecksums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curStore(kv ...string) *HashStore { return storeOf(CurrentGeneration, kv...) }
func oldStore(kv ...string) *HashStore { return storeOf(LoadedGeneration, kv...) }

func TestCompareIdentical(t *testing.T) {
	a := curStore("a.txt", "AAAA", "b.txt", "BBBB", "dir/c.txt", "CCCC")
	b := oldStore("dir/c.txt", "CCCC", "a.txt", "AAAA", "b.txt", "BBBB")

	outcome, err := Compare(a, b, "")
	require.NoError(t, err)

	assert.Empty(t, outcome.Changes)
	require.Len(t, outcome.Files, 3)
	for _, f := range outcome.Files {
		assert.Equal(t, FileMatches, f.Kind, f.Path)
	}
	assert.Equal(t, "a.txt", outcome.Files[0].Path)
	assert.Equal(t, "dir/c.txt", outcome.Files[2].Path)
	assert.Equal(t, Verified, Classify(outcome))
	assert.NoError(t, Summarize(outcome))
}

func TestCompareOneFileDiffers(t *testing.T) {
	outcome, err := Compare(
		curStore("a.txt", "AAAA", "b.txt", "CCCC"),
		oldStore("a.txt", "AAAA", "b.txt", "BBBB"),
		"")
	require.NoError(t, err)

	assert.Empty(t, outcome.Changes)
	assert.Equal(t, []FileResult{
		{Kind: FileMatches, Path: "a.txt"},
		{Kind: FileDiffers, Path: "b.txt", Was: "BBBB", Now: "CCCC"},
	}, outcome.Files)

	assert.Equal(t, 1, outcome.DiffCount())
	err = Summarize(outcome)
	var diffErr *FilesDifferError
	require.ErrorAs(t, err, &diffErr)
	assert.Equal(t, 1, diffErr.N)
	assert.Equal(t, 4, ExitCode(err))
}

func TestCompareHashLengthMismatch(t *testing.T) {
	outcome, err := Compare(curStore("a.txt", "AAAAAAAA"), oldStore("a.txt", "AAAA"), "")
	assert.Nil(t, outcome)

	var lenErr *HashLengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, HashLengthError{PreviousLen: 4, CurrentLen: 8}, *lenErr)
	assert.Equal(t, "Hash lengths do not match; selected: 8, loaded: 4", err.Error())
}

func TestCompareLengthCheckSkipsEmptySide(t *testing.T) {
	outcome, err := Compare(curStore("a.txt", "AAAAAAAA"), oldStore(), "")
	require.NoError(t, err)
	assert.Equal(t, []CompareResult{{Kind: FileAdded, Path: "a.txt"}}, outcome.Changes)
	assert.Empty(t, outcome.Files)
	assert.Equal(t, NoFilesToVerify, Classify(outcome))
}

func TestCompareAddedAndRemoved(t *testing.T) {
	outcome, err := Compare(
		curStore("keep.txt", "1111", "new.txt", "2222"),
		oldStore("keep.txt", "1111", "old.txt", "3333"),
		"")
	require.NoError(t, err)

	assert.Equal(t, []CompareResult{
		{Kind: FileAdded, Path: "new.txt"},
		{Kind: FileRemoved, Path: "old.txt"},
	}, outcome.Changes)
	assert.Equal(t, []FileResult{{Kind: FileMatches, Path: "keep.txt"}}, outcome.Files)
}

func TestCompareIgnored(t *testing.T) {
	tests := []struct {
		name    string
		current *HashStore
		loaded  *HashStore
	}{
		{"SentinelInCurrent", curStore("x", "----", "y", "1111"), oldStore("x", "ABCD", "y", "1111")},
		{"SentinelInLoaded", curStore("x", "ABCD", "y", "1111"), oldStore("x", "----", "y", "1111")},
		{"SentinelBoth", curStore("x", "----", "y", "1111"), oldStore("x", "----", "y", "1111")},
		{"LoadedSentinelFileDeleted", curStore("y", "1111"), oldStore("x", "----", "y", "1111")},
		{"CurrentSentinelNewFile", curStore("x", "----", "y", "1111"), oldStore("y", "1111")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Compare(tt.current, tt.loaded, "")
			require.NoError(t, err)
			assert.Equal(t, []CompareResult{{Kind: FileIgnored, Path: "x"}}, outcome.Changes)
			assert.Equal(t, []FileResult{{Kind: FileMatches, Path: "y"}}, outcome.Files)
		})
	}
}

func TestCompareSecretIgnored(t *testing.T) {
	stored := oldStore("a.txt", "AAAA", "secret.bin", "----")

	t.Run("Deleted", func(t *testing.T) {
		outcome, err := Compare(curStore("a.txt", "AAAA"), stored, "")
		require.NoError(t, err)
		assert.Equal(t, []CompareResult{{Kind: FileIgnored, Path: "secret.bin"}}, outcome.Changes)
		assert.Equal(t, 0, outcome.DiffCount())
	})

	t.Run("Changed", func(t *testing.T) {
		outcome, err := Compare(curStore("a.txt", "AAAA", "secret.bin", "9999"), stored, "")
		require.NoError(t, err)
		assert.Equal(t, []CompareResult{{Kind: FileIgnored, Path: "secret.bin"}}, outcome.Changes)
		assert.Equal(t, 0, outcome.DiffCount())
	})
}

func TestCompareStripsSelf(t *testing.T) {
	outcome, err := Compare(
		curStore("a.txt", "AAAA", "data.hash", "FFFF"),
		oldStore("a.txt", "AAAA", "data.hash", "----"),
		"data.hash")
	require.NoError(t, err)
	assert.Empty(t, outcome.Changes)
	assert.Equal(t, []FileResult{{Kind: FileMatches, Path: "a.txt"}}, outcome.Files)
}

func TestCompareDoesNotModifyInputs(t *testing.T) {
	a := curStore("a.txt", "AAAA", "new.txt", "BBBB", "data.hash", "CCCC")
	b := oldStore("a.txt", "AAAA", "gone.txt", "DDDD", "data.hash", "----")

	_, err := Compare(a, b, "data.hash")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestCompareEmpty(t *testing.T) {
	outcome, err := Compare(curStore(), oldStore(), "data.hash")
	require.NoError(t, err)
	assert.NotNil(t, outcome.Changes)
	assert.NotNil(t, outcome.Files)
	assert.Equal(t, NothingToVerify, Classify(outcome))
	assert.NoError(t, Summarize(outcome))
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, isSentinel("--"))
	assert.True(t, isSentinel(SHA1.Sentinel()))
	assert.False(t, isSentinel(""))
	assert.False(t, isSentinel("-A-"))
}
