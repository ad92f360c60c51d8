package dirchecksums

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"hash/crc64"
	"strings"

	"github.com/dchest/blake512"
	"github.com/snksoft/crc"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Algorithm identifies a hashing algorithm
type Algorithm int

const (
	SHA1 Algorithm = iota + 1
	SHA2224
	SHA2256
	SHA2384
	SHA2512
	SHA3256
	SHA3512
	BLAKE
	BLAKE2B
	BLAKE2S
	BLAKE3
	CRC64
	CRC32
	CRC32C // CRC-32-Castagnoli
	CRC16
	CRC8
	MD5
	MD6128
	MD6256
	MD6512
	XOR8
)

// BLAKE2 is a compatibility alias
const BLAKE2 = BLAKE2B

// ErrAlgorithmUnavailable is returned by Resolve for algorithms with no hasher in this build
var ErrAlgorithmUnavailable = errors.New("hashing algorithm not available in this build")

var algorithmNames = map[Algorithm]string{
	SHA1:    "SHA1",
	SHA2224: "SHA2-224",
	SHA2256: "SHA2-256",
	SHA2384: "SHA2-384",
	SHA2512: "SHA2-512",
	SHA3256: "SHA3-256",
	SHA3512: "SHA3-512",
	BLAKE:   "BLAKE",
	BLAKE2B: "BLAKE2B",
	BLAKE2S: "BLAKE2S",
	BLAKE3:  "BLAKE3",
	CRC64:   "CRC64",
	CRC32:   "CRC32",
	CRC32C:  "CRC32C",
	CRC16:   "CRC16",
	CRC8:    "CRC8",
	MD5:     "MD5",
	MD6128:  "MD6-128",
	MD6256:  "MD6-256",
	MD6512:  "MD6-512",
	XOR8:    "XOR8",
}

var algorithmAliases = map[string]Algorithm{
	"sha-1": SHA1, "sha1": SHA1,
	"sha2256": SHA2256, "sha2-256": SHA2256, "sha-2-256": SHA2256,
	"sha2224": SHA2224, "sha2-224": SHA2224, "sha-2-224": SHA2224,
	"sha2384": SHA2384, "sha2-384": SHA2384, "sha-2-384": SHA2384,
	"sha2": SHA2512, "sha-2": SHA2512, "sha2512": SHA2512, "sha2-512": SHA2512, "sha-2-512": SHA2512,
	"sha3256": SHA3256, "sha3-256": SHA3256, "sha-3-256": SHA3256,
	"sha3": SHA3512, "sha-3": SHA3512, "sha3512": SHA3512, "sha3-512": SHA3512, "sha-3-512": SHA3512,
	"blake":  BLAKE,
	"blake2": BLAKE2B, "blake2b": BLAKE2B,
	"blake2s": BLAKE2S,
	"blake3":  BLAKE3,
	"crc64":   CRC64,
	"crc32c": CRC32C, "crc32-c": CRC32C, "crc32castagnoli": CRC32C, "crc32-castagnoli": CRC32C,
	"crc32":  CRC32,
	"crc16":  CRC16,
	"crc8":   CRC8,
	"md5":    MD5,
	"md6128": MD6128, "md6-128": MD6128,
	"md6256": MD6256, "md6-256": MD6256,
	"md6512": MD6512, "md6-512": MD6512,
	"xor8": XOR8,
}

// ParseAlgorithm returns the algorithm for a name (case-insensitive, '_' treated as '-')
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	if algo, ok := algorithmAliases[key]; ok {
		return algo, nil
	}
	return 0, fmt.Errorf("%q is not a recognised hashing algorithm", name)
}

// String returns the canonical name
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// HexLen returns the length of the algorithm's hex output
func (a Algorithm) HexLen() int {
	switch a {
	case XOR8, CRC8:
		return 2
	case CRC16:
		return 4
	case CRC32, CRC32C:
		return 8
	case CRC64:
		return 16
	case MD5, MD6128:
		return 32
	case SHA1:
		return 40
	case SHA2224:
		return 56
	case SHA2256, SHA3256, BLAKE2S, BLAKE3, MD6256:
		return 64
	case SHA2384:
		return 96
	case SHA2512, SHA3512, BLAKE, BLAKE2B, MD6512:
		return 128
	default:
		return 0
	}
}

// Sentinel returns the placeholder hash recorded for ignored files
func (a Algorithm) Sentinel() string {
	return Sentinel(a.HexLen())
}

// Sentinel returns the all-'-' string of the given hex length
func Sentinel(hexLen int) string {
	return strings.Repeat(string(SentinelRune), hexLen)
}

// SupportedAlgorithms returns the canonical names of every known algorithm
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(algorithmNames))
	for a := SHA1; a <= XOR8; a++ {
		names = append(names, a.String())
	}
	return names
}

// HashAlgorithm represents a resolved hash algorithm
type HashAlgorithm struct {
	Algo    Algorithm
	Name    string
	HexLen  int
	NewFunc func() hash.Hash
}

var (
	crc8Params = &crc.Parameters{Width: 8, Polynomial: 0x07, Init: 0x00, ReflectIn: false, ReflectOut: false, FinalXor: 0x00}
	// CRC-16/ARC
	crc16Params    = &crc.Parameters{Width: 16, Polynomial: 0x8005, Init: 0x0000, ReflectIn: true, ReflectOut: true, FinalXor: 0x0000}
	castagnoliTable = crc32.MakeTable(crc32.Castagnoli)
	crc64ISOTable   = crc64.MakeTable(crc64.ISO)
)

// Resolve returns the hashing configuration for an algorithm
func Resolve(a Algorithm) (*HashAlgorithm, error) {
	var newFunc func() hash.Hash

	switch a {
	case SHA1:
		newFunc = sha1.New
	case SHA2224:
		newFunc = sha256.New224
	case SHA2256:
		newFunc = sha256.New
	case SHA2384:
		newFunc = sha512.New384
	case SHA2512:
		newFunc = sha512.New
	case SHA3256:
		newFunc = sha3.New256
	case SHA3512:
		newFunc = sha3.New512
	case BLAKE:
		newFunc = blake512.New
	case BLAKE2B:
		newFunc = func() hash.Hash {
			h, _ := blake2b.New512(nil)
			return h
		}
	case BLAKE2S:
		newFunc = func() hash.Hash {
			h, _ := blake2s.New256(nil)
			return h
		}
	case BLAKE3:
		newFunc = func() hash.Hash { return blake3.New(32, nil) }
	case CRC64:
		newFunc = func() hash.Hash { return crc64.New(crc64ISOTable) }
	case CRC32:
		newFunc = func() hash.Hash { return crc32.NewIEEE() }
	case CRC32C:
		newFunc = func() hash.Hash { return crc32.New(castagnoliTable) }
	case CRC16:
		newFunc = func() hash.Hash { return newCRCDigest(crc16Params) }
	case CRC8:
		newFunc = func() hash.Hash { return newCRCDigest(crc8Params) }
	case MD5:
		newFunc = md5.New
	case XOR8:
		newFunc = func() hash.Hash { return new(xor8Digest) }
	case MD6128, MD6256, MD6512:
		return nil, fmt.Errorf("%s: %w", a, ErrAlgorithmUnavailable)
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %d", int(a))
	}

	return &HashAlgorithm{
		Algo:    a,
		Name:    a.String(),
		HexLen:  a.HexLen(),
		NewFunc: newFunc,
	}, nil
}

// crcDigest adapts a table-driven CRC of width 8 or 16 to hash.Hash,
// summing big-endian like hash/crc32 and hash/crc64
type crcDigest struct {
	h     *crc.Hash
	width int
}

func newCRCDigest(params *crc.Parameters) *crcDigest {
	return &crcDigest{h: crc.NewHash(params), width: int(params.Width / 8)}
}

func (d *crcDigest) Write(p []byte) (int, error) {
	d.h.Update(p)
	return len(p), nil
}

func (d *crcDigest) Sum(b []byte) []byte {
	v := d.h.CRC()
	for i := d.width - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}

func (d *crcDigest) Reset()         { d.h.Reset() }
func (d *crcDigest) Size() int      { return d.width }
func (d *crcDigest) BlockSize() int { return 1 }

// xor8Digest is the longitudinal redundancy check: the two's complement
// of the byte sum modulo 256
type xor8Digest struct {
	sum byte
}

func (d *xor8Digest) Write(p []byte) (int, error) {
	for _, b := range p {
		d.sum += b
	}
	return len(p), nil
}

func (d *xor8Digest) Sum(b []byte) []byte { return append(b, -d.sum) }
func (d *xor8Digest) Reset()              { d.sum = 0 }
func (d *xor8Digest) Size() int           { return 1 }
func (d *xor8Digest) BlockSize() int      { return 1 }
