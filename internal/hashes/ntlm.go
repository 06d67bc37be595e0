package hashes

import (
	"golang.org/x/crypto/md4"
	"golang.org/x/text/encoding/unicode"
)

// ntlmDigester is md4 over the UTF-16LE encoding of the candidate.
type ntlmDigester struct{}

func (ntlmDigester) Name() string { return "ntlm" }

func (ntlmDigester) Size() int { return 16 }

func (ntlmDigester) Digest(plain []byte) []byte {
	h := md4.New()
	_, _ = h.Write(toUTF16LE(plain))
	return h.Sum(nil)
}

func toUTF16LE(b []byte) []byte {
	// encoders are stateful, so one per call
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes(b)
	if err != nil {
		return nil
	}
	return out
}

func init() { Register(ntlmDigester{}) }
