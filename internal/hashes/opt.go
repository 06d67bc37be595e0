package hashes

// BatchDigester is implemented by digesters that can hash several candidates
// in one call faster than hashing them one at a time.
type BatchDigester interface {
	DigestMany(plains [][]byte) [][]byte
}
