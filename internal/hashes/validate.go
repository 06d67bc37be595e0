package hashes

import (
	"fmt"
	"regexp"
	"strings"
)

var reHex = regexp.MustCompile(`^[0-9a-fA-F]+$`) // hex lol

// Validate reports whether target looks like a digest of algo. The message
// explains a mismatch; it is empty when the target is fine.
func Validate(algo, target string) (bool, string) {
	d, err := Get(algo)
	if err != nil {
		return false, err.Error()
	}
	t := strings.TrimSpace(target)
	want := d.Size() * 2
	if len(t) != want || !reHex.MatchString(t) {
		return false, fmt.Sprintf("%s must be %d hex chars", strings.ToUpper(d.Name()), want)
	}
	return true, ""
}
