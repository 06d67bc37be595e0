// Package console renders engine events as human readable status lines.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Status symbols.
const (
	Good = '+'
	Bad  = '-'
	Busy = '*'
	Info = ':'
)

type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
	// Verbose also prints per-batch lines.
	Verbose bool
}

// New returns a Printer writing to w. A nil clock means time.Now.
func New(w io.Writer, now func() time.Time) *Printer {
	if now == nil {
		now = time.Now
	}
	return &Printer{w: w, now: now}
}

// Line prints one "[s] [date time] msg" line.
func (p *Printer) Line(status rune, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%c] [%s] %s\n", status, p.now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

// Event is an Options.Event callback for the cracker.
func (p *Printer) Event(event string, kv map[string]any) {
	switch event {
	case "targets":
		p.Line(Info, "Hashes Loaded = %v (duplicates dropped = %v)", kv["loaded"], kv["duplicates"])
	case "invalid_target":
		p.Line(Bad, "Malformed hash %v: %v", kv["hash"], kv["reason"])
	case "abort":
		p.Line(Bad, "%v", kv["reason"])
		if algos, ok := kv["algorithms"].([]string); ok {
			p.Line(Info, "Hashing Algorithms = %v", strings.Join(algos, ","))
		}
	case "start":
		p.Line(Info, "Hashing Algorithm = %v", kv["algo"])
		p.Line(Info, "Total Wordlists = %v", kv["wordlists"])
		if n, ok := kv["seeded"].(int); ok && n > 0 {
			p.Line(Good, "Already cracked in potfile = %d", n)
		}
	case "load":
		p.Line(Info, "Loading File %v/%v => %v (%v)", kv["index"], kv["total"], kv["path"], kv["mode"])
	case "skip":
		if kv["reason"] == "not_found" {
			p.Line(Bad, "File %v not found!", kv["path"])
		} else {
			p.Line(Bad, "Error while reading File %v", kv["path"])
		}
	case "batch":
		if p.Verbose {
			p.Line(Busy, "Batch %v: %v words, %v hashes, %v cracked", kv["batch"], kv["words"], kv["hashed"], kv["cracked"])
		}
	case "progress":
		p.Line(Busy, "Hashes Calculated = %v, Cracked = %v/%v", kv["words"], kv["total_cracked"], kv["targets"])
	case "cracked":
		if p.Verbose {
			p.Line(Good, "%v:%v", kv["hash"], kv["word"])
		}
	case "wordlist_done":
		p.Line(Good, "Done Calculating Hashes")
		p.Line(Info, "\tHashes Calculated = %v", kv["words"])
		p.Line(Info, "\tTime Taken = %.2f seconds", ms(kv["hash_ms"]))
		p.Line(Info, "\tRate = %.2f hashes/second", kv["hash_rate"])
		p.Line(Good, "Done Comparing Hashes")
		p.Line(Info, "\tTime Taken = %.2f seconds", ms(kv["compare_ms"]))
		p.Line(Info, "\tHashes Cracked from Current file = %v", kv["cracked"])
		p.Line(Info, "Total Cracked Hashes = %v", kv["total_cracked"])
	case "all_cracked":
		p.Line(Good, "Done Cracking all the Hashes!")
	case "interrupted":
		p.Line(Bad, "Interrupted (%v), keeping %v cracked hashes", kv["reason"], kv["cracked"])
	}
}

func ms(v any) float64 {
	if n, ok := v.(int64); ok {
		return float64(n) / 1000
	}
	return 0
}
