package hashes

import (
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	ripemd160pkg "golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/c0mm4nd/go-ripemd"
	"github.com/ddulesov/gogost/gost34112012256"
	"github.com/ddulesov/gogost/gost34112012512"
	"github.com/emmansun/gmsm/sm3"
	"github.com/pedroalbanese/whirlpool"
)

// extendedDigester wraps any streaming hash.Hash constructor. These are the
// unsalted digests beyond the sha families, kept so wordlists can be run
// against dumps from other systems without changing the engine.
type extendedDigester struct {
	algo string
	size int
	new  func() hash.Hash
}

func (h extendedDigester) Name() string { return h.algo }

func (h extendedDigester) Size() int { return h.size }

func (h extendedDigester) Digest(plain []byte) []byte {
	hh := h.new()
	hh.Write(plain)
	return hh.Sum(nil)
}

// shakeDigester produces a fixed-length SHAKE output.
type shakeDigester struct {
	algo string
	size int
}

func (s shakeDigester) Name() string { return s.algo }

func (s shakeDigester) Size() int { return s.size }

func (s shakeDigester) Digest(plain []byte) []byte {
	out := make([]byte, s.size)
	if s.algo == "shake128" {
		sha3.ShakeSum128(out, plain)
	} else {
		sha3.ShakeSum256(out, plain)
	}
	return out
}

func mustNew(f func([]byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := f(nil)
		if err != nil { panic(err) } // unkeyed constructors never fail
		return h
	}
}

func init() {
	for _, d := range []extendedDigester{
		{"sha512-224", 28, sha512.New512_224},
		{"sha512-256", 32, sha512.New512_256},
		{"keccak-256", 32, sha3.NewLegacyKeccak256},
		{"keccak-512", 64, sha3.NewLegacyKeccak512},
		{"md4", 16, md4.New},
		{"ripemd128", 16, ripemd.New128},
		{"ripemd160", 20, ripemd160pkg.New},
		{"ripemd256", 32, ripemd.New256},
		{"ripemd320", 40, ripemd.New320},
		{"blake2b-256", 32, mustNew(blake2b.New256)},
		{"blake2b-512", 64, mustNew(blake2b.New512)},
		{"blake2s-256", 32, mustNew(blake2s.New256)},
		{"whirlpool", 64, whirlpool.New},
		{"sm3", 32, sm3.New},
		{"streebog-256", 32, func() hash.Hash { return gost34112012256.New() }},
		{"streebog-512", 64, func() hash.Hash { return gost34112012512.New() }},
	} {
		Register(d)
	}
	Register(shakeDigester{"shake128", 32})
	Register(shakeDigester{"shake256", 64})
}
