package azuracast

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	defaultURL       = "https://azura.theindiebeat.fm/api"
	defaultUserAgent = "TheIndieBeat-ChannelLister/1.0"
	defaultTimeout   = 30 * time.Second
)

type Config struct {
	URL       string        `yaml:"url,omitempty"`
	UserAgent string        `yaml:"user-agent,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.URL, util.PrefixConfig(prefix, "url"), defaultURL, "Base URL of the AzuraCast API that lists the stations.")
	f.StringVar(&cfg.UserAgent, util.PrefixConfig(prefix, "user-agent"), defaultUserAgent, "User-Agent sent to the station directory.")
	f.DurationVar(&cfg.Timeout, util.PrefixConfig(prefix, "timeout"), defaultTimeout, "Timeout for fetching the station directory.")
}
