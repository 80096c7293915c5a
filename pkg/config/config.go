package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

// EnvPrefix prefixes every environment variable read by Load (GRAPHAR_WORKERS, ...).
const EnvPrefix = "GRAPHAR"

type Config struct {
	Workers        int           `mapstructure:"workers"`
	VectorCapacity int           `mapstructure:"vector_capacity"`
	CacheChunks    int           `mapstructure:"cache_chunks"`
	Output         OutputConfig  `mapstructure:"output"`
	Log            LogConfig     `mapstructure:"log"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // jsonl, table
	Pretty bool   `mapstructure:"pretty"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	SeqURL string `mapstructure:"seq_url"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("vector_capacity", database.DefaultVectorCapacity)
	v.SetDefault("cache_chunks", graph.DefaultCacheChunks)
	v.SetDefault("output.format", "jsonl")
	v.SetDefault("output.pretty", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.seq_url", "")
	v.SetDefault("metrics.addr", "")
}

// New returns a viper instance with defaults and environment binding. file,
// when not empty, is read as a yaml, json or toml config file.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}
	return v, nil
}

// Load reads defaults, file and environment into a Config.
func Load(file string) (*Config, error) {
	v, err := New(file)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.VectorCapacity < 1 {
		errs = append(errs, fmt.Errorf("vector_capacity must be at least 1, got %d", c.VectorCapacity))
	}
	if c.CacheChunks < 1 {
		errs = append(errs, fmt.Errorf("cache_chunks must be at least 1, got %d", c.CacheChunks))
	}
	switch c.Output.Format {
	case "jsonl", "table":
	default:
		errs = append(errs, fmt.Errorf("output.format must be jsonl or table, got %q", c.Output.Format))
	}
	return errors.Join(errs...)
}
