package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Bus      BusConfig      `yaml:"bus"`
	Weighing WeighingConfig `yaml:"weighing"`
	Summary  SummaryConfig  `yaml:"summary"`
	Stats    StatsConfig    `yaml:"stats"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type BusConfig struct {
	URL string `yaml:"url"`
}

// WeighingConfig sets the defaults applied when a request leaves a
// weighing parameter empty.
type WeighingConfig struct {
	Algorithm  string `yaml:"algorithm"`
	Channel    string `yaml:"channel"`
	HeavyShift string `yaml:"heavy_shift"`
	LightShift string `yaml:"light_shift"`
}

// SummaryConfig shapes the weight histogram attached to batch summaries.
type SummaryConfig struct {
	HistBins int     `yaml:"hist_bins"`
	HistMin  float64 `yaml:"hist_min"`
	HistMax  float64 `yaml:"hist_max"`
}

type StatsConfig struct {
	PublishIntervalMs int `yaml:"publish_interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Stats.PublishIntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Bus: BusConfig{
			URL: "nats://localhost:4222",
		},
		Weighing: WeighingConfig{
			Algorithm:  "csvm",
			Channel:    "muon",
			HeavyShift: "nominal",
			LightShift: "nominal",
		},
		Summary: SummaryConfig{
			HistBins: 40,
			HistMin:  0.5,
			HistMax:  1.5,
		},
		Stats: StatsConfig{
			PublishIntervalMs: 60000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BTAG_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("BTAG_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("BTAG_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("BTAG_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("BTAG_BUS_URL"); v != "" {
		cfg.Bus.URL = v
	}
	if v := os.Getenv("BTAG_ALGORITHM"); v != "" {
		cfg.Weighing.Algorithm = v
	}
	if v := os.Getenv("BTAG_CHANNEL"); v != "" {
		cfg.Weighing.Channel = v
	}
	if v := os.Getenv("BTAG_HEAVY_SHIFT"); v != "" {
		cfg.Weighing.HeavyShift = v
	}
	if v := os.Getenv("BTAG_LIGHT_SHIFT"); v != "" {
		cfg.Weighing.LightShift = v
	}
	if v := os.Getenv("BTAG_STATS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Stats.PublishIntervalMs = n
		}
	}
	if v := os.Getenv("BTAG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
