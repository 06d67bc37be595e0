package cracker

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"edu/dictcrack/internal/hashes"
	"edu/dictcrack/internal/wordlist"
)

var (
	// ErrConfiguration marks a missing or invalid option.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoTargets is returned by Run when there is nothing to crack.
	ErrNoTargets = errors.New("no target hashes")
)

type Options struct {
	Workers      int
	BatchSize    int
	MemoryBudget int64
	Logger       *zap.Logger
	Event        func(event string, kv map[string]any)
	// ProgressEvery throttles "progress" events while streaming; 0 means 1s.
	ProgressEvery time.Duration
	// Transform expands a wordlist entry into candidates. nil hashes the
	// word as it is.
	Transform func(string) []string
	// Registry receives the run metrics when set.
	Registry prometheus.Registerer
}

// Job is the input of one run.
type Job struct {
	Algorithm string
	Targets   *Targets
	Wordlists []string
	// Seed holds digests already known from an earlier run. Entries that are
	// not targets are ignored.
	Seed map[string]string
}

// Report is the outcome of Run.
type Report struct {
	RunID     string
	Algorithm string
	Results   *Results
	Stats     *Stats
	// Interrupted is set when the context ended the run before the
	// wordlists were exhausted or every target was cracked.
	Interrupted bool
}

func (r Report) AllCracked() bool {
	return r.Stats != nil && r.Results.Len() == r.Stats.TargetsLoaded
}

type Cracker struct {
	opts    Options
	log     *zap.Logger
	metrics *metrics
	runID   string
}

func New(opts Options) *Cracker {
	c := &Cracker{opts: opts, log: opts.Logger, metrics: newMetrics()}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.Registry != nil {
		for _, col := range c.metrics.collectors() {
			if err := opts.Registry.Register(col); err != nil {
				c.log.Warn("metrics registration failed", zap.Error(err))
			}
		}
	}
	return c
}

// Close flushes the logger and unregisters the run metrics.
func (c *Cracker) Close() error {
	if c.opts.Registry != nil {
		for _, col := range c.metrics.collectors() {
			c.opts.Registry.Unregister(col)
		}
	}
	_ = c.log.Sync()
	return nil
}

func (c *Cracker) workers() int {
	w := c.opts.Workers
	if w <= 0 { w = runtime.NumCPU() }
	return w
}

var eventLevels = map[string]zapcore.Level{
	"abort":          zapcore.ErrorLevel,
	"skip":           zapcore.WarnLevel,
	"invalid_target": zapcore.WarnLevel,
	"batch":          zapcore.DebugLevel,
	"cracked":        zapcore.DebugLevel,
	"progress":       zapcore.DebugLevel,
}

func (c *Cracker) logEvent(event string, kv map[string]any) {
	rec := map[string]any{"ts": time.Now().Format(time.RFC3339Nano), "event": event}
	for k, v := range kv { rec[k] = v }

	lvl, ok := eventLevels[event]
	if !ok { lvl = zapcore.InfoLevel }
	if ce := c.log.Check(lvl, event); ce != nil {
		keys := make([]string, 0, len(kv))
		for k := range kv { keys = append(keys, k) }
		sort.Strings(keys)
		fields := make([]zap.Field, 0, len(keys)+1)
		fields = append(fields, zap.String("run_id", c.runID))
		for _, k := range keys { fields = append(fields, zap.Any(k, kv[k])) }
		ce.Write(fields...)
	}
	if c.opts.Event != nil {
		c.opts.Event(event, rec)
	}
}

// Run cracks job.Targets against job.Wordlists, one wordlist and one batch
// at a time, and stops as soon as every target is cracked. Missing or
// unreadable wordlists are skipped. Cancelling ctx stops the run between
// batches; partial results are still returned.
func (c *Cracker) Run(ctx context.Context, job Job) (Report, error) {
	start := time.Now()
	c.runID = uuid.NewString()
	stats := &Stats{WordlistsTotal: len(job.Wordlists)}
	results := NewResults()
	rep := Report{RunID: c.runID, Algorithm: job.Algorithm, Results: results, Stats: stats}

	targets := job.Targets
	if targets.Len() == 0 {
		c.logEvent("abort", map[string]any{"reason": "no target hashes loaded"})
		return rep, ErrNoTargets
	}
	stats.TargetsLoaded = targets.Len()
	stats.Duplicates = targets.Duplicates
	c.metrics.targets.Set(float64(targets.Len()))
	c.logEvent("targets", map[string]any{"loaded": targets.Len(), "duplicates": targets.Duplicates})

	d, err := hashes.Get(job.Algorithm)
	if err != nil {
		c.logEvent("abort", map[string]any{"reason": err.Error(), "algorithms": hashes.List()})
		return rep, err
	}
	rep.Algorithm = d.Name()

	for _, h := range targets.All() {
		if ok, msg := hashes.Validate(d.Name(), h); !ok {
			stats.InvalidTargets++
			c.logEvent("invalid_target", map[string]any{"hash": h, "reason": msg})
		}
	}
	for _, h := range targets.All() {
		if w, ok := job.Seed[h]; ok {
			results.Put(h, w)
			stats.Seeded++
		}
	}
	stats.Cracked = results.Len()

	workers := c.workers()
	c.logEvent("start", map[string]any{
		"algo": d.Name(), "workers": workers, "wordlists": len(job.Wordlists),
		"targets": targets.Len(), "seeded": stats.Seeded,
	})

	every := c.opts.ProgressEvery
	if every <= 0 { every = time.Second }
	limiter := rate.NewLimiter(rate.Every(every), 1)

	done := results.Len() == targets.Len()
	for i, path := range job.Wordlists {
		if done || ctx.Err() != nil {
			break
		}
		done = c.crackWordlist(ctx, i, path, d, targets, results, stats, limiter)
	}
	if done {
		c.logEvent("all_cracked", map[string]any{"cracked": results.Len()})
	} else if ctx.Err() != nil {
		rep.Interrupted = true
		c.logEvent("interrupted", map[string]any{"reason": ctx.Err().Error(), "cracked": results.Len()})
	}

	stats.Cracked = results.Len()
	stats.Duration = time.Since(start)
	c.logEvent("done", map[string]any{
		"loaded":       stats.TargetsLoaded,
		"hashed":       stats.WordsHashed,
		"cracked":      stats.Cracked,
		"success_rate": stats.SuccessRate(),
		"skipped":      stats.WordlistsSkipped,
		"duration_ms":  stats.Duration.Milliseconds(),
	})
	return rep, nil
}

// crackWordlist runs every batch of one wordlist and reports whether all
// targets are cracked.
func (c *Cracker) crackWordlist(ctx context.Context, idx int, path string, d hashes.Digester, targets *Targets, results *Results, stats *Stats, limiter *rate.Limiter) bool {
	src, err := wordlist.Open(path, wordlist.Options{BatchSize: c.opts.BatchSize, MemoryBudget: c.opts.MemoryBudget})
	if err != nil {
		c.skip(path, err, stats)
		return false
	}
	defer src.Close()

	c.logEvent("load", map[string]any{
		"index": idx + 1, "total": stats.WordlistsTotal, "path": path, "mode": src.Mode(),
	})
	ws := WordlistStats{Path: path, Mode: src.Mode()}
	defer func() {
		stats.Wordlists = append(stats.Wordlists, ws)
		c.logEvent("wordlist_done", map[string]any{
			"path":          path,
			"batches":       ws.Batches,
			"words":         ws.Words,
			"cracked":       ws.Cracked,
			"total_cracked": results.Len(),
			"hash_ms":       ws.HashTime.Milliseconds(),
			"compare_ms":    ws.CompareTime.Milliseconds(),
			"hash_rate":     perSecond(ws.Words, ws.HashTime),
		})
	}()
	stats.WordlistsProcessed++

	for {
		if ctx.Err() != nil {
			return false
		}
		words, err := src.Next()
		if err == io.EOF {
			return false
		}
		if err != nil {
			// batches already matched stay in results
			ws.Err = err.Error()
			c.skip(path, err, stats)
			return false
		}

		t0 := time.Now()
		dm, n, err := ComputeDigests(ctx, words, d, c.workers(), c.opts.Transform)
		if err != nil {
			return false
		}
		hashTime := time.Since(t0)

		t1 := time.Now()
		outstanding := targets.Len() - results.Len()
		found := Match(dm, targets, results)
		for _, cr := range found {
			results.Put(cr.Hash, cr.Word)
			c.logEvent("cracked", map[string]any{"hash": cr.Hash, "word": cr.Word})
		}
		compareTime := time.Since(t1)

		ws.Batches++
		ws.Words += n
		ws.Cracked += len(found)
		ws.HashTime += hashTime
		ws.CompareTime += compareTime
		stats.Batches++
		stats.WordsHashed += n
		stats.Compared += uint64(outstanding)
		stats.HashTime += hashTime
		stats.CompareTime += compareTime
		stats.Cracked = results.Len()

		c.metrics.batches.Inc()
		c.metrics.words.Add(float64(n))
		c.metrics.cracked.Add(float64(len(found)))
		c.metrics.stageTime.WithLabelValues("hash").Observe(hashTime.Seconds())
		c.metrics.stageTime.WithLabelValues("compare").Observe(compareTime.Seconds())

		c.logEvent("batch", map[string]any{
			"path": path, "batch": ws.Batches, "words": len(words), "hashed": n,
			"cracked": len(found), "hash_ms": hashTime.Milliseconds(), "compare_ms": compareTime.Milliseconds(),
		})
		if src.Mode() == "stream" && limiter.Allow() {
			c.logEvent("progress", map[string]any{
				"path": path, "words": ws.Words, "total_cracked": results.Len(), "targets": targets.Len(),
			})
		}

		if results.Len() == targets.Len() {
			return true
		}
	}
}

func (c *Cracker) skip(path string, err error, stats *Stats) {
	reason := "read_error"
	if errors.Is(err, wordlist.ErrFileNotFound) {
		reason = "not_found"
	}
	stats.WordlistsSkipped++
	c.metrics.skipped.WithLabelValues(reason).Inc()
	c.logEvent("skip", map[string]any{"path": path, "reason": reason, "error": err.Error()})
}
