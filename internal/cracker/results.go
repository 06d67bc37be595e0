package cracker

import (
	"bytes"
	"encoding/json"
)

// Crack is one recovered digest.
type Crack struct {
	Hash string `json:"hash"`
	Word string `json:"word"`
}

// Results maps cracked digests to their words in the order they were first
// cracked. Entries are never removed.
type Results struct {
	order []string
	words map[string]string
}

func NewResults() *Results {
	return &Results{words: map[string]string{}}
}

// Put records hash -> word and reports whether hash is new. A later word for
// the same hash overwrites the earlier one but keeps its position.
func (r *Results) Put(hash, word string) bool {
	_, seen := r.words[hash]
	r.words[hash] = word
	if !seen {
		r.order = append(r.order, hash)
	}
	return !seen
}

func (r *Results) Has(hash string) bool {
	_, ok := r.words[hash]
	return ok
}

func (r *Results) Get(hash string) (string, bool) {
	w, ok := r.words[hash]
	return w, ok
}

func (r *Results) Len() int { return len(r.order) }

// Pairs returns a copy of the results in crack order.
func (r *Results) Pairs() []Crack {
	out := make([]Crack, len(r.order))
	for i, h := range r.order {
		out[i] = Crack{Hash: h, Word: r.words[h]}
	}
	return out
}

// Map returns a copy of the results as a plain map.
func (r *Results) Map() map[string]string {
	out := make(map[string]string, len(r.words))
	for h, w := range r.words { out[h] = w }
	return out
}

// MarshalJSON encodes the results as a single object in crack order.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range r.order {
		if i > 0 { buf.WriteString(", ") }
		k, err := json.Marshal(h)
		if err != nil { return nil, err }
		v, err := json.Marshal(r.words[h])
		if err != nil { return nil, err }
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
