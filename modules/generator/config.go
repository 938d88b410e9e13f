package generator

import (
	"flag"

	"github.com/grafana/dskit/flagext"
	"github.com/zachfi/zkit/pkg/util"

	"github.com/zachfi/radiolist/pkg/playlist"
	"github.com/zachfi/radiolist/pkg/station"
)

const defaultOutput = "the_indie_beat_radio"

type Config struct {
	Formats      flagext.StringSliceCSV `yaml:"formats,omitempty"`
	Output       string                 `yaml:"output,omitempty"` // file name without extension
	Dir          string                 `yaml:"dir,omitempty"`
	Title        string                 `yaml:"title,omitempty"`
	Creator      string                 `yaml:"creator,omitempty"`
	StreamFormat string                 `yaml:"stream-format,omitempty"`
	ListStreams  bool                   `yaml:"list-streams,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.Var(&cfg.Formats, util.PrefixConfig(prefix, "formats"), "Comma separated playlist formats to write: xspf, m3u, pls. Empty writes all of them.")
	f.StringVar(&cfg.Output, util.PrefixConfig(prefix, "output"), defaultOutput, "Base name of the playlist files, without extension.")
	f.StringVar(&cfg.Dir, util.PrefixConfig(prefix, "dir"), ".", "The directory to write the playlists to.")
	f.StringVar(&cfg.Title, util.PrefixConfig(prefix, "title"), playlist.DefaultTitle, "Title of the XSPF playlist.")
	f.StringVar(&cfg.Creator, util.PrefixConfig(prefix, "creator"), playlist.DefaultCreator, "Creator set on every XSPF track.")
	f.StringVar(&cfg.StreamFormat, util.PrefixConfig(prefix, "stream-format"), station.DefaultFormat, "Only mounts with this audio format are included.")
	f.BoolVar(&cfg.ListStreams, util.PrefixConfig(prefix, "list-streams"), false, "Print the stream URLs to stdout instead of writing playlists.")
}
