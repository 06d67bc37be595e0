package cracker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats are the counters of one run. They are owned by the run that fills
// them and only read once Run returns.
type Stats struct {
	TargetsLoaded  int
	Duplicates     int
	InvalidTargets int
	Seeded         int

	WordlistsTotal     int
	WordlistsProcessed int
	WordlistsSkipped   int

	Batches     int
	WordsHashed uint64
	// Compared counts target lookups done by the match stage.
	Compared uint64
	Cracked  int

	HashTime    time.Duration
	CompareTime time.Duration
	Duration    time.Duration

	Wordlists []WordlistStats
}

// WordlistStats describes one wordlist that was opened.
type WordlistStats struct {
	Path        string        `json:"path"`
	Mode        string        `json:"mode"`
	Batches     int           `json:"batches"`
	Words       uint64        `json:"words"`
	Cracked     int           `json:"cracked"`
	HashTime    time.Duration `json:"hash_time_ns"`
	CompareTime time.Duration `json:"compare_time_ns"`
	Err         string        `json:"error,omitempty"`
}

// HashRate is candidates hashed per second of hashing time.
func (s *Stats) HashRate() float64 { return perSecond(s.WordsHashed, s.HashTime) }

// CompareRate is target lookups per second of match time.
func (s *Stats) CompareRate() float64 { return perSecond(s.Compared, s.CompareTime) }

// SuccessRate is the cracked share of the loaded targets, in percent.
func (s *Stats) SuccessRate() float64 {
	if s.TargetsLoaded == 0 {
		return 0
	}
	return float64(s.Cracked) / float64(s.TargetsLoaded) * 100
}

func perSecond(n uint64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// metrics mirrors Stats as prometheus collectors. They are created per
// Cracker and only exported when Options.Registry is set.
type metrics struct {
	words     prometheus.Counter
	cracked   prometheus.Counter
	batches   prometheus.Counter
	skipped   *prometheus.CounterVec
	stageTime *prometheus.HistogramVec
	targets   prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		words: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dictcrack",
			Name:      "words_hashed_total",
			Help:      "Candidates hashed across all wordlists.",
		}),
		cracked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dictcrack",
			Name:      "hashes_cracked_total",
			Help:      "Target digests recovered.",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dictcrack",
			Name:      "batches_total",
			Help:      "Candidate batches processed.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dictcrack",
			Name:      "wordlists_skipped_total",
			Help:      "Wordlists skipped, by reason.",
		}, []string{"reason"}),
		stageTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dictcrack",
			Name:      "batch_stage_duration_seconds",
			Help:      "Time spent per batch in the hash and compare stages.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"stage"}),
		targets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dictcrack",
			Name:      "targets_loaded",
			Help:      "Distinct target digests of the current run.",
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.words, m.cracked, m.batches, m.skipped, m.stageTime, m.targets}
}
