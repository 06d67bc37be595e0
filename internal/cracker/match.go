package cracker

// Cracked answers whether a digest has already been recovered.
type Cracked interface {
	Has(digest string) bool
}

// Match looks every outstanding target up in dm and returns the hits in
// target order. Neither dm, targets nor already is modified.
func Match(dm DigestMap, targets *Targets, already Cracked) []Crack {
	var out []Crack
	for _, h := range targets.All() {
		if already != nil && already.Has(h) {
			continue
		}
		if w, ok := dm[h]; ok {
			out = append(out, Crack{Hash: h, Word: w})
		}
	}
	return out
}
