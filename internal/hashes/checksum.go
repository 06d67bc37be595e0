package hashes

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// checksumDigester covers the non-cryptographic hashes that show up as
// cache keys and dedup ids. Output is the big-endian encoding of the sum.
type checksumDigester struct {
	algo string
	size int
	sum  func([]byte) []byte
}

func (c checksumDigester) Name() string { return c.algo }

func (c checksumDigester) Size() int { return c.size }

func (c checksumDigester) Digest(plain []byte) []byte { return c.sum(plain) }

func be64(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

func init() {
	Register(checksumDigester{"xxh64", 8, func(b []byte) []byte { return be64(xxhash.Sum64(b)) }})
	Register(checksumDigester{"xxh3-64", 8, func(b []byte) []byte { return be64(xxh3.Hash(b)) }})
	Register(checksumDigester{"xxh3-128", 16, func(b []byte) []byte {
		s := xxh3.Hash128(b).Bytes()
		return s[:]
	}})
	Register(checksumDigester{"murmur3-32", 4, func(b []byte) []byte {
		return binary.BigEndian.AppendUint32(nil, murmur3.Sum32(b))
	}})
	Register(checksumDigester{"murmur3-128", 16, func(b []byte) []byte {
		h1, h2 := murmur3.Sum128(b)
		return binary.BigEndian.AppendUint64(be64(h1), h2)
	}})
}
