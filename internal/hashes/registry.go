package hashes

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedAlgorithm is returned by Get for names outside the registry.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Digester is a pure bytes -> digest function.
type Digester interface {
	Name() string
	Size() int
	Digest(plain []byte) []byte
}

var registry = map[string]Digester{}

func Register(d Digester) { registry[d.Name()] = d }

// Get resolves an algorithm name. Underscored spellings (sha3_256) are
// accepted as aliases of the dashed form.
func Get(name string) (Digester, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if d, ok := registry[key]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

func List() []string {
	out := make([]string, 0, len(registry))
	for k := range registry { out = append(out, k) }
	sort.Strings(out)
	return out
}

// Hex returns the lower-case hex digest of plain.
func Hex(d Digester, plain []byte) string {
	return hex.EncodeToString(d.Digest(plain))
}
