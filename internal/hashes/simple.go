package hashes

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"sync"

	"golang.org/x/crypto/sha3"

	md5simd "github.com/minio/md5-simd"
	sha256simd "github.com/minio/sha256-simd"
)

type simpleDigester struct { algo string }

func (s simpleDigester) Name() string { return s.algo }

func (s simpleDigester) Size() int { return hashLen(s.algo) }

func (s simpleDigester) Digest(b []byte) []byte {
	switch s.algo {
	case "md5":
		v := md5.Sum(b); return v[:]
	case "sha1":
		v := sha1.Sum(b); return v[:]
	case "sha224":
		v := sha256.Sum224(b); return v[:]
	case "sha256":
		// sha256-simd picks SHA-NI/AVX512 when the cpu has it
		v := sha256simd.Sum256(b); return v[:]
	case "sha384":
		v := sha512.Sum384(b); return v[:]
	case "sha512":
		v := sha512.Sum512(b); return v[:]
	case "sha3-224":
		v := sha3.Sum224(b); return v[:]
	case "sha3-256":
		v := sha3.Sum256(b); return v[:]
	case "sha3-384":
		v := sha3.Sum384(b); return v[:]
	case "sha3-512":
		v := sha3.Sum512(b); return v[:]
	default:
		return nil
	}
}

// DigestMany hashes md5 candidates through the md5-simd server in groups of
// md5Lanes; other algorithms fall back to Digest.
func (s simpleDigester) DigestMany(plains [][]byte) [][]byte {
	out := make([][]byte, len(plains))
	if s.algo != "md5" {
		for i, b := range plains { out[i] = s.Digest(b) }
		return out
	}
	srv := getMD5Server()
	for lo := 0; lo < len(plains); lo += md5Lanes {
		hi := min(lo+md5Lanes, len(plains))
		hs := make([]md5simd.Hasher, 0, hi-lo)
		for _, b := range plains[lo:hi] {
			h := srv.NewHash()
			_, _ = h.Write(b)
			hs = append(hs, h)
		}
		for i, h := range hs {
			out[lo+i] = h.Sum(nil)
			h.Close()
		}
	}
	return out
}

func hashLen(algo string) int {
	switch algo {
	case "md5":
		return 16
	case "sha1":
		return 20
	case "sha224", "sha3-224":
		return 28
	case "sha256", "sha3-256":
		return 32
	case "sha384", "sha3-384":
		return 48
	case "sha512", "sha3-512":
		return 64
	default:
		return 0
	}
}

const md5Lanes = 16

var (
	md5Once   sync.Once
	md5Server md5simd.Server
)

func getMD5Server() md5simd.Server {
	md5Once.Do(func() {
		md5Server = md5simd.NewServer()
	})
	return md5Server
}

func init() {
	for _, algo := range []string{
		"md5", "sha1", "sha224", "sha256", "sha384", "sha512",
		"sha3-224", "sha3-256", "sha3-384", "sha3-512",
	} {
		Register(simpleDigester{algo})
	}
}
