package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/moex-tools/simba-decode/cli"
	"github.com/moex-tools/simba-decode/jsonemit"
	"github.com/moex-tools/simba-decode/metrics"
	"github.com/moex-tools/simba-decode/pipeline"
)

// progressInterval is how often a progress line is logged, mirroring the
// 50,000-packet counter in the original decoder's parse loop (spec.md §4,
// SPEC_FULL.md §4).
const progressInterval = 50000

// runSummary is the JSON footer printed to stderr once a run finishes,
// identified by RunID so separate runs over the same capture can be told
// apart in aggregated logs.
type runSummary struct {
	RunID        string `json:"run_id"`
	PcapPath     string `json:"pcap_path"`
	OutPath      string `json:"out_path"`
	Records      uint64 `json:"records"`
	Messages     int    `json:"messages"`
	Success      bool   `json:"success"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := cli.ParseArgs("simbadump", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	runID := xid.New().String()
	log := cli.NewLogger(cfg).WithField("run_id", runID)

	out, err := os.Create(cfg.OutPath)
	if err != nil {
		log.WithError(err).Error("create output file")
		return 1
	}
	defer out.Close()

	writer, err := jsonemit.NewWriter(out)
	if err != nil {
		log.WithError(err).Error("open json writer")
		return 1
	}

	collector := metrics.New("simba")
	prometheus.MustRegister(collector)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	opts := pipeline.Options{
		ChunkSize: cfg.ChunkSize,
		Metrics:   collector,
		Log:       log,
	}

	var records uint64
	var messages int

	sinkErr := pipeline.Run(cfg.PcapPath, opts, func(rec pipeline.Record) error {
		frame := jsonemit.Frame{
			Sequence: rec.Sequence,
			Header:   rec.Frame,
		}

		if rec.Net != nil {
			frame.SrcAddr = rec.Net.Src.Addr
			frame.SrcPort = rec.Net.Src.Port
			frame.DstAddr = rec.Net.Dst.Addr
			frame.DstPort = rec.Net.Dst.Port
		}

		records++
		messages += len(rec.Packet.Messages)

		if records%progressInterval == 0 {
			log.WithFields(logrus.Fields{"records": records, "messages": messages}).Info("progress")
		}

		return writer.Write(frame, rec.Packet)
	})

	summary := runSummary{
		RunID:    runID,
		PcapPath: cfg.PcapPath,
		OutPath:  cfg.OutPath,
		Records:  records,
		Messages: messages,
		Success:  sinkErr == nil,
	}

	if sinkErr != nil {
		log.WithError(sinkErr).Error("decode failed")

		if closeErr := writer.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("close json writer")
		}

		writeSummary(summary)

		return 1
	}

	if err := writer.Close(); err != nil {
		log.WithError(err).Error("close json writer")
		writeSummary(summary)

		return 1
	}

	log.WithFields(logrus.Fields{"out": cfg.OutPath, "records": records}).Info("decode complete")
	writeSummary(summary)

	return 0
}

func writeSummary(s runSummary) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}

	fmt.Fprintln(os.Stderr, string(raw))
}
