package console

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixed() time.Time { return time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local) }

func TestLine(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, fixed)
	p.Line(Good, "Words Loaded = %d", 42)
	if got := buf.String(); got != "[+] [2024-03-09 07:05:03] Words Loaded = 42\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEventSkip(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, fixed)
	p.Event("skip", map[string]any{"path": "a.txt", "reason": "not_found"})
	p.Event("skip", map[string]any{"path": "b.txt", "reason": "read_error"})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "File a.txt not found!") || !strings.HasSuffix(lines[1], "Error while reading File b.txt") {
		t.Fatalf("got %q", lines)
	}
}

func TestEventQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, fixed)
	p.Event("batch", map[string]any{"batch": 1})
	p.Event("cracked", map[string]any{"hash": "h", "word": "w"})
	p.Event("unknown", nil)
	if buf.Len() != 0 { t.Fatalf("got %q", buf.String()) }

	p.Verbose = true
	p.Event("cracked", map[string]any{"hash": "h", "word": "w"})
	if !strings.HasPrefix(buf.String(), "[+] ") || !strings.HasSuffix(buf.String(), "h:w\n") { t.Fatalf("got %q", buf.String()) }
}

func TestEventWordlistDone(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, fixed)
	p.Event("wordlist_done", map[string]any{
		"words": uint64(3), "hash_ms": int64(1500), "compare_ms": int64(0),
		"hash_rate": 2.0, "cracked": 1, "total_cracked": 1,
	})
	out := buf.String()
	for _, want := range []string{"Hashes Calculated = 3", "Time Taken = 1.50 seconds", "Rate = 2.00 hashes/second", "Total Cracked Hashes = 1"} {
		if !strings.Contains(out, want) { t.Fatalf("missing %q in %q", want, out) }
	}
}

func TestEventAbortListsAlgorithms(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, fixed).Event("abort", map[string]any{"reason": "bad algo", "algorithms": []string{"md5", "sha1"}})
	if !strings.Contains(buf.String(), "Hashing Algorithms = md5,sha1") { t.Fatalf("got %q", buf.String()) }
}
