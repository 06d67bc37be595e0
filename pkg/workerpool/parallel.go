// Package workerpool fans work out over goroutines and joins it back in a
// fixed order.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Range is a half-open [Lo, Hi) index range.
type Range struct {
	Lo, Hi int
}

func (r Range) Len() int { return r.Hi - r.Lo }

// Partition splits n items into at most parts contiguous ranges whose sizes
// differ by at most one. The first n%parts ranges get the extra item.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 { parts = 1 }
	if parts > n { parts = n }
	out := make([]Range, parts)
	base, extra := n/parts, n%parts
	lo := 0
	for i := range out {
		size := base
		if i < extra { size++ }
		out[i] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	return out
}

// Map runs fn once per part, each in its own goroutine, and waits for all of
// them. Results are indexed like parts, whatever order the workers finish in.
// The first error cancels the context handed to the remaining calls.
func Map[T, R any](ctx context.Context, parts []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			r, err := fn(gctx, p)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
