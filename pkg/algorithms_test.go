package dirchecksums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name string
		want Algorithm
	}{
		{"SHA1", SHA1},
		{"sha-1", SHA1},
		{"SHA2", SHA2512},
		{"sha2-256", SHA2256},
		{"SHA_2_256", SHA2256},
		{"sha-2-224", SHA2224},
		{"sha3", SHA3512},
		{"SHA3-256", SHA3256},
		{"blake", BLAKE},
		{"BLAKE2", BLAKE2B},
		{"blake2s", BLAKE2S},
		{"Blake3", BLAKE3},
		{"crc32-castagnoli", CRC32C},
		{"CRC32C", CRC32C},
		{"crc64", CRC64},
		{"crc16", CRC16},
		{"crc8", CRC8},
		{"md5", MD5},
		{"MD6_256", MD6256},
		{"xor8", XOR8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseAlgorithm("whirlpool")
		require.Error(t, err)
		assert.Equal(t, `"whirlpool" is not a recognised hashing algorithm`, err.Error())
	})
}

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		algo  Algorithm
		input string
		want  string
	}{
		{SHA1, "abc", "A9993E364706816ABA3E25717850C26C9CD0D89D"},
		{SHA2256, "abc", "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD"},
		{SHA3256, "abc", "3A985DA74FE225B2045C172D6BD390BD855F086E3E9D525B46BFE24511431532"},
		{MD5, "abc", "900150983CD24FB0D6963F7D28E17F72"},
		{BLAKE2B, "abc", "BA80A53F981C4D0D6A2797B69F12F6E94C212F14685AC4B74B12BB6FDBFFA2D17D87C5392AAB792DC252D5DE4533CC9518D38AA8DBF1925AB92386EDD4009923"},
		{CRC32, "123456789", "CBF43926"},
		{CRC32C, "123456789", "E3069283"},
		{CRC64, "123456789", "B90956C775A41001"},
		{CRC16, "123456789", "BB3D"},
		{CRC8, "123456789", "F4"},
		{XOR8, "123456789", "23"},
	}

	for _, tt := range tests {
		t.Run(tt.algo.String(), func(t *testing.T) {
			algorithm, err := Resolve(tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, HashBytes([]byte(tt.input), algorithm))
		})
	}
}

func TestHexLenMatchesDigest(t *testing.T) {
	for a := SHA1; a <= XOR8; a++ {
		t.Run(a.String(), func(t *testing.T) {
			algorithm, err := Resolve(a)
			if a == MD6128 || a == MD6256 || a == MD6512 {
				require.ErrorIs(t, err, ErrAlgorithmUnavailable)
				assert.NotZero(t, a.HexLen())
				return
			}
			require.NoError(t, err)
			digest := HashBytes([]byte("dirchecksums"), algorithm)
			assert.Len(t, digest, a.HexLen())
			assert.Equal(t, a.HexLen(), algorithm.HexLen)
			assert.Len(t, a.Sentinel(), a.HexLen())
		})
	}
}

func TestHasherReset(t *testing.T) {
	for _, a := range []Algorithm{CRC8, CRC16, XOR8} {
		algorithm, err := Resolve(a)
		require.NoError(t, err)

		h := algorithm.NewFunc()
		h.Write([]byte("garbage"))
		h.Reset()
		h.Write([]byte("123456789"))
		assert.Equal(t, HashBytes([]byte("123456789"), algorithm), HashString(h.Sum(nil)), a.String())
	}
}

func TestHashString(t *testing.T) {
	assert.Equal(t, "", HashString(nil))
	assert.Equal(t, "00FF0AA0", HashString([]byte{0x00, 0xff, 0x0a, 0xa0}))
}
