package workerpool

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestPartition(t *testing.T) {
	cases := []struct {
		n, parts int
		sizes    []int
	}{
		{0, 4, nil},
		{3, 8, []int{1, 1, 1}},
		{10, 3, []int{4, 3, 3}},
		{12, 4, []int{3, 3, 3, 3}},
		{5, 0, []int{5}},
	}
	for _, tc := range cases {
		rs := Partition(tc.n, tc.parts)
		if len(rs) != len(tc.sizes) {
			t.Fatalf("n=%d parts=%d: got %d ranges", tc.n, tc.parts, len(rs))
		}
		next := 0
		for i, r := range rs {
			if r.Lo != next || r.Len() != tc.sizes[i] {
				t.Fatalf("n=%d parts=%d: range %d = %+v", tc.n, tc.parts, i, r)
			}
			next = r.Hi
		}
		if len(rs) > 0 && next != tc.n {
			t.Fatalf("n=%d: ranges end at %d", tc.n, next)
		}
	}
}

func TestMapKeepsPartOrder(t *testing.T) {
	parts := []int{5, 1, 4, 2, 3}
	got, err := Map(context.Background(), parts, func(_ context.Context, p int) (int, error) {
		// later parts finish first
		time.Sleep(time.Duration(p) * time.Millisecond)
		return p * 10, nil
	})
	if err != nil { t.Fatal(err) }
	for i, p := range parts {
		if got[i] != p*10 { t.Fatalf("index %d: got %d", i, got[i]) }
	}
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Map(context.Background(), []int{1, 2, 3}, func(ctx context.Context, p int) (int, error) {
		if p == 2 { return 0, boom }
		return p, nil
	})
	if !errors.Is(err, boom) { t.Fatalf("expected boom, got %v", err) }
}

func TestMapJoinsWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		if _, err := Map(context.Background(), make([]int, 16), func(context.Context, int) (int, error) { return 0, nil }); err != nil {
			t.Fatal(err)
		}
	}
	// allow unrelated runtime goroutines a little slack
	if after := runtime.NumGoroutine(); after > before+2 {
		t.Fatalf("goroutines leaked: %d -> %d", before, after)
	}
}
