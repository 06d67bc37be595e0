package hashes

import (
	"sort"
	"strings"
)

// preferred order for colliding lengths; the common algorithms go first
var detectRank = map[string]int{
	"md5": 0, "ntlm": 1, "md4": 2, "ripemd128": 3,
	"sha1": 0, "ripemd160": 1,
	"sha224": 0, "sha3-224": 1, "sha512-224": 2,
	"sha256": 0, "sha3-256": 1, "blake2b-256": 2, "blake2s-256": 3, "keccak-256": 4,
	"sha384": 0, "sha3-384": 1,
	"sha512": 0, "sha3-512": 1, "blake2b-512": 2, "whirlpool": 3, "keccak-512": 4,
}

// Detect returns the registered algorithms whose digest length matches
// target, most likely first.
func Detect(target string) []string {
	t := strings.TrimSpace(target)
	if t == "" || !reHex.MatchString(t) || len(t)%2 != 0 { return nil }

	var out []string
	for _, name := range List() {
		d, _ := Get(name)
		if d.Size()*2 == len(t) { out = append(out, name) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := detectRank[out[i]]
		rj, jok := detectRank[out[j]]
		if iok && jok { return ri < rj }
		if iok { return true }
		if jok { return false }
		return out[i] < out[j]
	})
	return out
}
