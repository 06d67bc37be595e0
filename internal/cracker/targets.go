package cracker

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Targets is the de-duplicated, lower-cased set of digests to recover, kept
// in first-seen order. It is not modified after LoadTargets returns.
type Targets struct {
	list []string
	set  map[string]struct{}
	// Duplicates counts input entries dropped because they repeat a digest.
	Duplicates int
}

// NewTargets builds a target set from literal digests.
func NewTargets(digests ...string) *Targets {
	t := &Targets{set: make(map[string]struct{}, len(digests))}
	for _, d := range digests { t.add(d) }
	return t
}

func (t *Targets) add(d string) {
	d = strings.ToLower(strings.TrimSpace(d))
	if d == "" {
		return
	}
	if _, dup := t.set[d]; dup {
		t.Duplicates++
		return
	}
	t.set[d] = struct{}{}
	t.list = append(t.list, d)
}

func (t *Targets) Len() int {
	if t == nil { return 0 }
	return len(t.list)
}

func (t *Targets) Contains(d string) bool {
	_, ok := t.set[d]
	return ok
}

// All returns the targets in load order. Callers must not modify it.
func (t *Targets) All() []string { return t.list }

// LoadTargets resolves --hash entries: an entry naming a regular file
// contributes one digest per line, anything else is taken as a digest.
// Blank lines are ignored.
func LoadTargets(entries []string) (*Targets, error) {
	t := NewTargets()
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if st, err := os.Stat(e); err == nil && st.Mode().IsRegular() {
			if err := t.addFile(e); err != nil {
				return nil, err
			}
			continue
		}
		t.add(e)
	}
	return t, nil
}

func (t *Targets) addFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: hash file %s: %w", ErrConfiguration, path, err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		t.add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: hash file %s: %w", ErrConfiguration, path, err)
	}
	return nil
}
