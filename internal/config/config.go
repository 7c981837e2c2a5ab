package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	envListen   = "GG_LISTEN"
	envRedisURL = "GG_REDIS_URL"
	envHosts    = "GG_ALLOWED_HOSTS"

	defaultListen       = ":8080"
	defaultMaxFiles     = 50
	defaultWorkers      = 20
	defaultFetchTimeoutSec = 10
	defaultPreviewSize  = "800x800"
	defaultTitle        = "File Gallery"
)

type FetcherConfig struct {
	Workers    int `yaml:"workers"`
	TimeoutSec int `yaml:"timeout_sec"`
}

func (c *FetcherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

type PreviewConfig struct {
	Size  string `yaml:"size"`
	PDF   *bool  `yaml:"pdf"`
	Audio *bool  `yaml:"audio"`
}

type BrandingConfig struct {
	Title            string `yaml:"title"`
	LogoURL          string `yaml:"logo_url"`
	AccentColor      string `yaml:"accent_color"`
	FileName         string `yaml:"filename"`
	TemplateFileName string `yaml:"template_filename"`
}

type Config struct {
	URL           string         `yaml:"url"`
	Listen        string         `yaml:"listen"`
	AllowedHosts  string         `yaml:"allowed_hosts"`
	MaxFiles      int            `yaml:"max_files"`
	RedisURL      string         `yaml:"redis_url"`
	LogLevel      string         `yaml:"log_level"`
	FetcherConfig FetcherConfig  `yaml:"fetcher"`
	PreviewConfig PreviewConfig  `yaml:"preview"`
	Branding      BrandingConfig `yaml:"branding"`
}

func (c *Config) SetDefaults() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.MaxFiles < 1 {
		c.MaxFiles = defaultMaxFiles
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}
	if c.FetcherConfig.Workers < 1 {
		c.FetcherConfig.Workers = defaultWorkers
	}
	if c.FetcherConfig.TimeoutSec < 1 {
		c.FetcherConfig.TimeoutSec = defaultFetchTimeoutSec
	}
	if c.PreviewConfig.Size == "" {
		c.PreviewConfig.Size = defaultPreviewSize
	}
	if c.PreviewConfig.PDF == nil {
		c.PreviewConfig.PDF = boolPtr(true)
	}
	if c.PreviewConfig.Audio == nil {
		c.PreviewConfig.Audio = boolPtr(true)
	}
	if c.Branding.Title == "" {
		c.Branding.Title = defaultTitle
	}
}

// Hosts splits the configured allow-list on commas and trims every entry.
// Empty entries are dropped.
func (c *Config) Hosts() []string {
	var hosts []string
	for _, host := range strings.Split(c.AllowedHosts, ",") {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}

		hosts = append(hosts, host)
	}

	return hosts
}

func (c *Config) PDFPreview() bool {
	return c.PreviewConfig.PDF != nil && *c.PreviewConfig.PDF
}

func (c *Config) AudioPreview() bool {
	return c.PreviewConfig.Audio != nil && *c.PreviewConfig.Audio
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}

	// The .env file is optional. Environment always wins over yaml.
	_ = godotenv.Load()

	if listen := os.Getenv(envListen); listen != "" {
		cfg.Listen = listen
	}
	if redisURL := os.Getenv(envRedisURL); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if hosts := os.Getenv(envHosts); hosts != "" {
		cfg.AllowedHosts = hosts
	}

	cfg.SetDefaults()

	if len(cfg.Hosts()) < 1 {
		return nil, fmt.Errorf("allowed_hosts must not be empty")
	}

	return &cfg, nil
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

func boolPtr(b bool) *bool {
	return &b
}
