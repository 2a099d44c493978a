// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"go.uber.org/zap/zapcore"

	"code.hybscloud.com/chunkq"
)

// Config describes one producer/consumer run.
type Config struct {
	// Capacity is the queue's maximum number of queued messages.
	Capacity int `toml:"capacity" json:"capacity"`
	// ChunkSize is the chunk size hint. Zero derives it from Capacity.
	ChunkSize int `toml:"chunk-size" json:"chunk-size"`
	// Messages is the number of messages sent through the queue.
	Messages int `toml:"messages" json:"messages"`
	// Batch is the largest Fill or Drain batch.
	Batch int `toml:"batch" json:"batch"`
	// LogLevel is one of "debug", "info", "warn" and "error".
	LogLevel string `toml:"log-level" json:"log-level"`
	// StatusAddr serves /metrics when set.
	StatusAddr string `toml:"status-addr" json:"status-addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Capacity: 1 << 16,
		Messages: 1 << 22,
		Batch:    64,
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Annotatef(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}
	return cfg, nil
}

// Validate rejects configurations the queue or the runner cannot use.
func (c *Config) Validate() error {
	if _, err := c.builder().BuildIndirect(); err != nil {
		return errors.Annotatef(err, "capacity %d, chunk-size %d", c.Capacity, c.ChunkSize)
	}
	if c.Messages < 1 {
		return errors.Errorf("messages must be positive, got %d", c.Messages)
	}
	if c.Batch < 1 {
		return errors.Errorf("batch must be positive, got %d", c.Batch)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Annotatef(err, "log-level")
	}
	return nil
}

func (c *Config) builder() *chunkq.Builder {
	return chunkq.New(c.Capacity).ChunkSize(c.ChunkSize)
}
