package app

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/zachfi/zkit/pkg/tracing"

	"github.com/zachfi/radiolist/modules/generator"
	"github.com/zachfi/radiolist/pkg/azuracast"
	"github.com/zachfi/radiolist/pkg/health"
)

type Config struct {
	Target    string           `yaml:"target"`
	LogLevel  string           `yaml:"log-level,omitempty"`
	Tracing   tracing.Config   `yaml:"tracing,omitempty"`
	Metrics   MetricsConfig    `yaml:"metrics,omitempty"`
	Directory azuracast.Config `yaml:"directory,omitempty"`
	Health    health.Config    `yaml:"health,omitempty"`
	Playlist  generator.Config `yaml:"playlist,omitempty"`
}

// LoadConfig receives a file path for a configuration to load.
func LoadConfig(file string) (Config, error) {
	filename, _ := filepath.Abs(file)

	config := Config{}
	config.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("", flag.ContinueOnError))

	err := loadYamlFile(filename, &config)
	if err != nil {
		return config, errors.Wrap(err, "failed to load yaml file")
	}

	return config, nil
}

// loadYamlFile unmarshals a YAML file into the received interface{} or returns an error.
func loadYamlFile(filename string, d interface{}) error {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	err = yaml.UnmarshalStrict(yamlFile, d)
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Target, "target", All, "Module to run: all, or generator.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Log level: debug, info, warn or error.")

	c.Tracing.RegisterFlagsAndApplyDefaults("tracing", f)
	c.Metrics.RegisterFlagsAndApplyDefaults("metrics", f)
	c.Directory.RegisterFlagsAndApplyDefaults("directory", f)
	c.Health.RegisterFlagsAndApplyDefaults("health", f)
	c.Playlist.RegisterFlagsAndApplyDefaults("playlist", f)
}
