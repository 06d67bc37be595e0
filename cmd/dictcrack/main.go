package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"edu/dictcrack/internal/console"
	"edu/dictcrack/internal/cracker"
	"edu/dictcrack/internal/hashes"
	"edu/dictcrack/internal/output"
	"edu/dictcrack/internal/potfile"
	"edu/dictcrack/internal/wordlist"
)

var (
	workers int
	timeout time.Duration
	config  string
	logPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dictcrack",
	Short: "dictcrack - batch dictionary attack against unsalted digests",
	Long: `dictcrack hashes every word of one or more wordlists with a single
algorithm and reports which of the loaded target digests were recovered.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if config != "" {
			viper.SetConfigFile(config)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("%w: read config %s: %w", cracker.ErrConfiguration, config, err)
			}
		}
		if workers > 0 {
			viper.Set("workers", workers)
		}
		return nil
	},
}

var crackCmd = &cobra.Command{
	Use:   "crack",
	Short: "Crack target digests with wordlists",
	Long: `Load the target digests, then hash every wordlist entry with the chosen
algorithm until all targets are cracked or the wordlists are exhausted.`,
	RunE: runCrack,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Supported algorithms:")
		for _, algo := range hashes.List() {
			fmt.Fprintf(out, "  - %s\n", algo)
		}
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect <hash>",
	Short: "Guess the algorithm of a hex digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guesses := hashes.Detect(args[0])
		if len(guesses) == 0 {
			return fmt.Errorf("no supported algorithm produces a digest like %q", args[0])
		}
		for i, g := range guesses {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, g)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "t", 0, "Number of hashing workers (default: CPU cores)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Stop the run after this long and keep partial results")
	rootCmd.PersistentFlags().StringVar(&config, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Log file path for JSON events")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print every batch and crack, and debug logs to stderr")

	f := crackCmd.Flags()
	f.StringP("load", "l", "", "List of wordlists (separated by ',')")
	f.StringP("hash", "H", "", "Hashes or hash files to load (separated by ',')")
	f.StringP("hashing-algorithm", "a", "", "Hashing algorithm (see 'dictcrack list')")
	f.Int("hashes", wordlist.DefaultBatchSize, "Words per batch when streaming a wordlist")
	f.Int64("memory-budget", wordlist.DefaultMemoryBudget, "Largest wordlist in bytes that is loaded whole")
	f.StringP("write", "w", "", "File to dump cracked hashes to (default: current date and time)")
	f.StringP("save-type", "s", output.Text, "Dump format: text, csv, json, binary (pickle)")
	f.String("rules", "", "Comma-separated candidate rules (+u,+l,+c,+d1,+d2)")
	f.String("potfile", "", "Store of previously cracked hashes, read before and updated after the run")
	f.String("metrics-file", "", "Write run metrics in Prometheus text format to this file")
	for _, name := range []string{"load", "hash", "hashing-algorithm", "hashes", "memory-budget", "write", "save-type", "rules", "potfile", "metrics-file"} {
		_ = viper.BindPFlag(name, f.Lookup(name))
	}

	rootCmd.AddCommand(crackCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detectCmd)

	viper.SetEnvPrefix("HASHCRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("workers", runtime.NumCPU())
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newLogger(path string, debug bool, stderr io.Writer) (*zap.Logger, error) {
	var cores []zapcore.Core
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%w: open log %s: %w", cracker.ErrConfiguration, path, err)
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel))
	}
	if debug {
		enc := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(stderr), zapcore.DebugLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

func runCrack(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pr := console.New(out, nil)
	pr.Verbose = verbose

	hashList := splitList(viper.GetString("hash"))
	if len(hashList) == 0 {
		pr.Line(console.Bad, "Please specify Hashes/Hash Files to Load!")
		return fmt.Errorf("%w: --hash is required", cracker.ErrConfiguration)
	}
	algo := viper.GetString("hashing-algorithm")
	if strings.TrimSpace(algo) == "" {
		pr.Line(console.Bad, "Please specify a Valid Hashing Algorithm!")
		pr.Line(console.Info, "Hashing Algorithms = %s", strings.Join(hashes.List(), ","))
		return fmt.Errorf("%w: --hashing-algorithm is required", cracker.ErrConfiguration)
	}
	wordlists := splitList(viper.GetString("load"))
	if len(wordlists) == 0 {
		pr.Line(console.Bad, "Please specify Wordlists to Load!")
		return fmt.Errorf("%w: --load is required", cracker.ErrConfiguration)
	}
	saveType, err := output.Normalize(viper.GetString("save-type"))
	if err != nil {
		return err
	}
	transform, err := cracker.ParseRules(splitList(viper.GetString("rules")))
	if err != nil {
		return err
	}
	dest := viper.GetString("write")
	if dest == "" {
		dest = time.Now().Format("2006-01-02 15_04_05")
	}

	targets, err := cracker.LoadTargets(hashList)
	if err != nil {
		return err
	}

	logger, err := newLogger(logPath, verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// The potfile is keyed by canonical algorithm name; an unknown algorithm
	// is reported by the run itself.
	var pot *potfile.Store
	var seed map[string]string
	if p := viper.GetString("potfile"); p != "" {
		if d, err := hashes.Get(algo); err == nil {
			pot, err = potfile.Open(p)
			if err != nil {
				return err
			}
			defer pot.Close()
			if seed, err = pot.Lookup(d.Name(), targets.All()); err != nil {
				logger.Warn("potfile lookup failed", zap.Error(err))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	c := cracker.New(cracker.Options{
		Workers:      viper.GetInt("workers"),
		BatchSize:    viper.GetInt("hashes"),
		MemoryBudget: viper.GetInt64("memory-budget"),
		Logger:       logger,
		Event:        pr.Event,
		Transform:    transform,
		Registry:     reg,
	})
	defer c.Close()

	rep, err := c.Run(ctx, cracker.Job{
		Algorithm: algo,
		Targets:   targets,
		Wordlists: wordlists,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, p := range rep.Results.Pairs() {
		fmt.Fprintf(out, "%s:%s\n", p.Hash, p.Word)
	}
	fmt.Fprintln(out)
	s := rep.Stats
	pr.Line(console.Info, "Total Hashes Loaded = %d", s.TargetsLoaded)
	pr.Line(console.Info, "Total Hashes Calculated = %d", s.WordsHashed)
	pr.Line(console.Info, "Total Hashes Cracked = %d", s.Cracked)
	pr.Line(console.Info, "Success Rate = %.2f%%", s.SuccessRate())

	pr.Line(console.Info, "Dumping Cracked Hashes to File %s", dest)
	if err := output.Write(dest, saveType, rep.Results); err != nil {
		pr.Line(console.Bad, "Failed to dump cracked hashes: %v", err)
		return err
	}
	pr.Line(console.Good, "Dumped Cracked Hashes to File %s", dest)

	if pot != nil && rep.Results.Len() > 0 {
		n, err := pot.Save(rep.Algorithm, rep.Results.Pairs())
		if err != nil {
			logger.Warn("potfile save failed", zap.Error(err))
		} else if n > 0 {
			pr.Line(console.Good, "Added %d hashes to potfile", n)
		}
	}
	if p := viper.GetString("metrics-file"); p != "" {
		if err := prometheus.WriteToTextfile(p, reg); err != nil {
			logger.Warn("metrics write failed", zap.String("path", p), zap.Error(err))
		}
	}
	if rep.Interrupted {
		pr.Line(console.Bad, "Run interrupted before all wordlists were processed")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
