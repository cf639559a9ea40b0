// Package cli holds the decoder's command-line plumbing: flag parsing and
// logging setup, per spec.md §1's "CLI tool" framing. Running the pipeline
// is left to cmd/simbadump.
package cli

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
	env "github.com/xyproto/env/v2"
)

// Config holds the parsed command-line/environment configuration.
type Config struct {
	PcapPath    string
	OutPath     string
	ChunkSize   int
	MetricsAddr string
	LogLevel    string
	Verbose     bool
}

// ParseArgs parses args (excluding the program name) into a Config.
// Defaults for -o, -chunk_size, -metrics_addr and -log_level fall back to
// environment variables (SIMBA_OUT, SIMBA_CHUNK_SIZE, SIMBA_METRICS_ADDR,
// SIMBA_LOG_LEVEL) before the flag package's own hardcoded defaults, the
// same env-then-flag layering xyproto/env is built for.
func ParseArgs(progName string, args []string) (Config, error) {
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)

	pcapPath := fs.String("p", "", "path to the PCAP capture to decode (required)")
	fs.StringVar(pcapPath, "pcap_dump", "", "path to the PCAP capture to decode (required)")

	outPath := fs.String("o", env.Str("SIMBA_OUT", "output.json"), "path to write decoded JSON to")
	fs.StringVar(outPath, "out", *outPath, "path to write decoded JSON to")

	chunkSize := fs.Int("chunk_size", env.Int("SIMBA_CHUNK_SIZE", 1<<20), "byte source read-ahead chunk size")
	metricsAddr := fs.String("metrics_addr", env.Str("SIMBA_METRICS_ADDR", ""), "if set, serve Prometheus metrics on this address")
	logLevel := fs.String("log_level", env.Str("SIMBA_LOG_LEVEL", "info"), "logrus level (panic, fatal, error, warn, info, debug, trace)")
	verbose := fs.Bool("v", false, "enable debug logging (overrides -log_level/SIMBA_LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *pcapPath == "" {
		return Config{}, fmt.Errorf("cli: -p/--pcap_dump is required")
	}

	return Config{
		PcapPath:    *pcapPath,
		OutPath:     *outPath,
		ChunkSize:   *chunkSize,
		MetricsAddr: *metricsAddr,
		LogLevel:    *logLevel,
		Verbose:     *verbose,
	}, nil
}

// NewLogger builds a logrus.Logger matching cfg's verbosity. cfg.LogLevel
// (SIMBA_LOG_LEVEL) sets the base level; an unparseable level falls back to
// logrus.InfoLevel. cfg.Verbose/-v takes precedence over both, forcing
// debug output regardless of what SIMBA_LOG_LEVEL requested.
func NewLogger(cfg Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
