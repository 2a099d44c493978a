// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code.hybscloud.com/chunkq/internal/pipeline"
)

const (
	// FlagConfig is the name of config flag.
	FlagConfig = "config"
	// FlagCapacity is the name of capacity flag.
	FlagCapacity = "capacity"
	// FlagChunkSize is the name of chunk-size flag.
	FlagChunkSize = "chunk-size"
	// FlagMessages is the name of messages flag.
	FlagMessages = "messages"
	// FlagBatch is the name of batch flag.
	FlagBatch = "batch"
	// FlagLogLevel is the name of log-level flag.
	FlagLogLevel = "log-level"
	// FlagStatusAddr is the name of status-addr flag.
	FlagStatusAddr = "status-addr"

	shutdownTimeout = 5 * time.Second
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "chunkqbench",
		Short:        "chunkqbench streams messages through a chunked SPSC queue.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runBench,
	}
	defineFlags(cmd)
	return cmd
}

func defineFlags(cmd *cobra.Command) {
	def := pipeline.DefaultConfig()
	cmd.Flags().StringP(FlagConfig, "C", "",
		"Set the TOML config file; flags override its values")
	cmd.Flags().Int(FlagCapacity, def.Capacity,
		"Set the queue's maximum capacity")
	cmd.Flags().Int(FlagChunkSize, def.ChunkSize,
		"Set the chunk size hint, 0 derives it from the capacity")
	cmd.Flags().IntP(FlagMessages, "n", def.Messages,
		"Set the number of messages to send")
	cmd.Flags().Int(FlagBatch, def.Batch,
		"Set the largest fill/drain batch")
	cmd.Flags().StringP(FlagLogLevel, "L", def.LogLevel,
		"Set the log level")
	cmd.Flags().String(FlagStatusAddr, def.StatusAddr,
		"Set the HTTP listening address for /metrics. Set to empty string to disable")
}

// configFromFlags loads the config file, if any, and applies the flags the
// user set explicitly.
func configFromFlags(cmd *cobra.Command) (*pipeline.Config, error) {
	flags := cmd.Flags()
	cfg := pipeline.DefaultConfig()
	path, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if path != "" {
		if cfg, err = pipeline.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	ints := map[string]*int{
		FlagCapacity:  &cfg.Capacity,
		FlagChunkSize: &cfg.ChunkSize,
		FlagMessages:  &cfg.Messages,
		FlagBatch:     &cfg.Batch,
	}
	for name, dst := range ints {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetInt(name); err != nil {
			return nil, errors.Trace(err)
		}
	}
	strs := map[string]*string{
		FlagLogLevel:   &cfg.LogLevel,
		FlagStatusAddr: &cfg.StatusAddr,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return cfg, errors.Trace(cfg.Validate())
}

func initLogger(level string) error {
	lg, props, err := log.InitLogger(&log.Config{Level: level})
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := initLogger(cfg.LogLevel); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := pipeline.NewMetrics(reg)
	if cfg.StatusAddr != "" {
		status, err := startStatusServer(cfg.StatusAddr, reg)
		if err != nil {
			return err
		}
		defer status.Close()
		log.Info("status server started", zap.String("addr", status.Addr()))
	}

	res, err := pipeline.Run(cmd.Context(), cfg, m)
	if err != nil {
		return err
	}
	cmd.Printf("messages:    %d\n", res.Messages)
	cmd.Printf("capacity:    %d (chunk %d)\n", res.Capacity, res.ChunkSize)
	cmd.Printf("elapsed:     %v\n", res.Elapsed)
	cmd.Printf("throughput:  %.0f msg/s\n", res.Throughput())
	cmd.Printf("full waits:  %d\n", res.FullWaits)
	cmd.Printf("empty waits: %d\n", res.EmptyWaits)
	cmd.Printf("max length:  %d\n", res.MaxLen)
	return nil
}

// statusServer serves the metrics registry over HTTP.
type statusServer struct {
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
}

func startStatusServer(addr string, reg *prometheus.Registry) (*statusServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Annotatef(err, "listen on %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	s := &statusServer{
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout},
		ln:   ln,
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Warn("status server stopped", zap.Error(err))
		}
	}()
	return s, nil
}

// Addr returns the address the server listens on.
func (s *statusServer) Addr() string {
	return s.ln.Addr().String()
}

// Close shuts the server down and waits for it to exit.
func (s *statusServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Warn("status server shutdown", zap.Error(err))
	}
	<-s.done
}
