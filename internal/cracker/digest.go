package cracker

import (
	"context"
	"encoding/hex"

	"edu/dictcrack/internal/hashes"
	"edu/dictcrack/pkg/workerpool"
)

// DigestMap maps a hex digest to the candidate that produced it.
type DigestMap map[string]string

// how many candidates a worker hashes between context checks
const cancelCheckEvery = 4096

// ComputeDigests hashes words with d across workers goroutines and returns
// the merged digest map together with the number of candidates hashed.
//
// words is split into contiguous slices, one per worker. Each worker fills a
// private map; the maps are merged in slice order, so when two candidates
// share a digest the one later in the batch wins regardless of worker count.
func ComputeDigests(ctx context.Context, words []string, d hashes.Digester, workers int, transform func(string) []string) (DigestMap, uint64, error) {
	ranges := workerpool.Partition(len(words), workers)
	if len(ranges) == 0 {
		return DigestMap{}, 0, nil
	}
	type partial struct {
		m DigestMap
		n uint64
	}
	parts, err := workerpool.Map(ctx, ranges, func(ctx context.Context, r workerpool.Range) (partial, error) {
		m, n, err := digestSlice(ctx, words[r.Lo:r.Hi], d, transform)
		return partial{m, n}, err
	})
	if err != nil {
		return nil, 0, err
	}

	size := 0
	for _, p := range parts { size += len(p.m) }
	out := make(DigestMap, size)
	var hashed uint64
	for _, p := range parts {
		for k, v := range p.m { out[k] = v }
		hashed += p.n
	}
	return out, hashed, nil
}

func digestSlice(ctx context.Context, words []string, d hashes.Digester, transform func(string) []string) (DigestMap, uint64, error) {
	candidates := words
	if transform != nil {
		candidates = make([]string, 0, len(words))
		for _, w := range words {
			if xs := transform(w); len(xs) > 0 {
				candidates = append(candidates, xs...)
			} else {
				candidates = append(candidates, w)
			}
		}
	}

	m := make(DigestMap, len(candidates))
	if bd, ok := d.(hashes.BatchDigester); ok {
		for lo := 0; lo < len(candidates); lo += cancelCheckEvery {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			hi := min(lo+cancelCheckEvery, len(candidates))
			plains := make([][]byte, hi-lo)
			for i, c := range candidates[lo:hi] { plains[i] = []byte(c) }
			for i, sum := range bd.DigestMany(plains) {
				m[hex.EncodeToString(sum)] = candidates[lo+i]
			}
		}
		return m, uint64(len(candidates)), nil
	}

	for i, c := range candidates {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		m[hex.EncodeToString(d.Digest([]byte(c)))] = c
	}
	return m, uint64(len(candidates)), nil
}
