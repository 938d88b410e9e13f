package health

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 32
	defaultReadBytes   = 1024
	defaultUserAgent   = "TheIndieBeat-ChannelLister/1.0"
)

type Config struct {
	Enabled          bool          `yaml:"enabled"`
	Timeout          time.Duration `yaml:"timeout,omitempty"`     // bound on a single probe, connect through first read
	Concurrency      int           `yaml:"concurrency,omitempty"` // 0 probes every URL at once
	ReadBytes        int           `yaml:"read-bytes,omitempty"`
	UserAgent        string        `yaml:"user-agent,omitempty"`
	RequireFrameSync bool          `yaml:"require-frame-sync,omitempty"`
	Progress         bool          `yaml:"progress,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.BoolVar(&cfg.Enabled, util.PrefixConfig(prefix, "enabled"), true, "Probe every stream and drop unreachable ones. When disabled every stream is published.")
	f.DurationVar(&cfg.Timeout, util.PrefixConfig(prefix, "timeout"), defaultTimeout, "Maximum time for one probe, including connect, response headers and the first read.")
	f.IntVar(&cfg.Concurrency, util.PrefixConfig(prefix, "concurrency"), defaultConcurrency, "Maximum number of probes in flight. 0 removes the limit.")
	f.IntVar(&cfg.ReadBytes, util.PrefixConfig(prefix, "read-bytes"), defaultReadBytes, "Size of the initial chunk read from each stream.")
	f.StringVar(&cfg.UserAgent, util.PrefixConfig(prefix, "user-agent"), defaultUserAgent, "User-Agent sent to stream servers.")
	f.BoolVar(&cfg.RequireFrameSync, util.PrefixConfig(prefix, "require-frame-sync"), false, "Also require an MP3 frame sync word in the initial chunk.")
	f.BoolVar(&cfg.Progress, util.PrefixConfig(prefix, "progress"), false, "Log every stream as its probe completes.")
}

func (cfg *Config) applyDefaults() {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ReadBytes <= 0 {
		cfg.ReadBytes = defaultReadBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Concurrency < 0 {
		cfg.Concurrency = 0
	}
}
