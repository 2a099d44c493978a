// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipeline drives messages through a chunked SPSC queue from one
// producer goroutine to one consumer goroutine and reports what happened.
package pipeline

import (
	"context"
	"time"

	"code.hybscloud.com/iox"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/chunkq"
)

// message is the element type carried by the queue.
type message struct {
	seq   uint64
	check uint64
}

func newMessage(seq uint64) message {
	return message{seq: seq, check: ^seq}
}

// Result summarizes a completed run.
type Result struct {
	Messages   int
	Capacity   int
	ChunkSize  int
	Elapsed    time.Duration
	FullWaits  int64
	EmptyWaits int64
	// MaxLen is the largest queue length the consumer observed.
	MaxLen int
}

// Throughput returns messages per second.
func (r *Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Messages) / r.Elapsed.Seconds()
}

// Run sends cfg.Messages messages through a new queue and checks that the
// consumer receives each exactly once and in order. It returns early with
// the context error when ctx is cancelled.
func Run(ctx context.Context, cfg *Config, m *Metrics) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = NewMetrics(nil)
	}
	q, err := chunkq.BuildSPSC[message](cfg.builder())
	if err != nil {
		return nil, errors.Trace(err)
	}

	res := &Result{
		Messages:  cfg.Messages,
		Capacity:  q.Cap(),
		ChunkSize: q.ChunkCap(),
	}
	log.Info("pipeline started",
		zap.Int("capacity", res.Capacity),
		zap.Int("chunk-size", res.ChunkSize),
		zap.Int("messages", cfg.Messages),
		zap.Int("batch", cfg.Batch))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		waits, err := produce(gctx, q, uint64(cfg.Messages), cfg.Batch, m)
		res.FullWaits = waits
		return err
	})
	g.Go(func() error {
		waits, maxLen, err := consume(gctx, q, uint64(cfg.Messages), cfg.Batch, m)
		res.EmptyWaits, res.MaxLen = waits, maxLen
		return err
	})
	err = g.Wait()
	res.Elapsed = time.Since(start)
	m.duration.Observe(res.Elapsed.Seconds())
	if err != nil {
		log.Warn("pipeline stopped", zap.Duration("elapsed", res.Elapsed), zap.Error(err))
		return nil, err
	}

	log.Info("pipeline finished",
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("msgs-per-sec", res.Throughput()),
		zap.Int64("full-waits", res.FullWaits),
		zap.Int64("empty-waits", res.EmptyWaits),
		zap.Int("max-len", res.MaxLen))
	return res, nil
}

func produce(ctx context.Context, q *chunkq.SPSC[message], total uint64, batch int, m *Metrics) (int64, error) {
	var seq, waits uint64
	next := func() message {
		msg := newMessage(seq)
		seq++
		return msg
	}

	backoff := iox.Backoff{}
	for seq < total {
		if err := ctx.Err(); err != nil {
			return int64(waits), errors.Trace(err)
		}
		n := q.Fill(next, int(min(uint64(batch), total-seq)))
		if n == 0 {
			waits++
			m.fullWaits.Inc()
			backoff.Wait()
			continue
		}
		backoff.Reset()
		m.enqueued.Add(float64(n))
	}
	return int64(waits), nil
}

func consume(ctx context.Context, q *chunkq.SPSC[message], total uint64, batch int, m *Metrics) (int64, int, error) {
	var want, waits, expected uint64
	var bad *message
	maxLen := 0
	check := func(msg message) {
		if bad == nil && (msg.seq != want || msg.check != ^want) {
			bad, expected = &msg, want
		}
		want++
	}

	backoff := iox.Backoff{}
	for want < total {
		if err := ctx.Err(); err != nil {
			return int64(waits), maxLen, errors.Trace(err)
		}
		if l := q.Len(); l > maxLen {
			maxLen = l
		}
		n := q.Drain(check, batch)
		if bad != nil {
			return int64(waits), maxLen, errors.Errorf("message %d arrived as seq %d check %#x", expected, bad.seq, bad.check)
		}
		if n == 0 {
			waits++
			m.emptyWaits.Inc()
			backoff.Wait()
			continue
		}
		backoff.Reset()
		m.dequeued.Add(float64(n))
		m.length.Set(float64(q.Len()))
	}
	return int64(waits), maxLen, nil
}
