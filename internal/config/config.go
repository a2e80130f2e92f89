package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/pingwatch/internal/domain"
)

type HostEntry struct {
	Address string `yaml:"address"`
	Label   string `yaml:"label"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type API struct {
	Addr string   `yaml:"addr"` // empty disables the status API
	Keys []string `yaml:"keys"` // empty allows all (local use)
}

type Ping struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	Privileged     bool `yaml:"privileged"`
}

type Config struct {
	Hosts              []HostEntry `yaml:"hosts"`
	Attempts           int         `yaml:"attempts"`
	RetryDelaySeconds  int         `yaml:"retry_delay_seconds"`
	IntervalSeconds    int         `yaml:"interval_seconds"`
	MaxConcurrentHosts int         `yaml:"max_concurrent_hosts"` // 0 = unbounded
	Recipients         []string    `yaml:"recipients"`
	Subject            string      `yaml:"subject"`
	SMTP               SMTP        `yaml:"smtp"`
	SlackWebhook       string      `yaml:"slack_webhook"`
	API                API         `yaml:"api"`
	LogDir             string      `yaml:"log_dir"`
	Ping               Ping        `yaml:"ping"`
}

func Default() Config {
	return Config{
		Attempts:          3,
		RetryDelaySeconds: 30,
		IntervalSeconds:   300,
		LogDir:            "logs",
		Ping:              Ping{TimeoutSeconds: 3},
	}
}

// Load reads the YAML file over the defaults, applies env overrides and
// validates. A missing file is an error: there is no useful host list to
// fall back to.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv lets deployment override the file for secrets and bind address.
func (c *Config) applyEnv() {
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.LogDir = v
	}
}

func (c Config) Validate() error {
	for i, h := range c.Hosts {
		if h.Address == "" {
			return fmt.Errorf("config: hosts[%d] has an empty address", i)
		}
	}
	if c.Attempts < 1 {
		return fmt.Errorf("config: attempts must be >= 1, got %d", c.Attempts)
	}
	if c.RetryDelaySeconds < 0 {
		return fmt.Errorf("config: retry_delay_seconds must be >= 0, got %d", c.RetryDelaySeconds)
	}
	if c.IntervalSeconds < 0 {
		return fmt.Errorf("config: interval_seconds must be >= 0, got %d", c.IntervalSeconds)
	}
	if c.Ping.TimeoutSeconds < 1 {
		return fmt.Errorf("config: ping.timeout_seconds must be >= 1, got %d", c.Ping.TimeoutSeconds)
	}
	if c.SMTP.Host != "" && len(c.Recipients) == 0 {
		return fmt.Errorf("config: smtp is configured but recipients is empty")
	}
	return nil
}

func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c Config) PingTimeout() time.Duration {
	return time.Duration(c.Ping.TimeoutSeconds) * time.Second
}

// DomainHosts converts the entries in configuration order.
func (c Config) DomainHosts() []domain.Host {
	out := make([]domain.Host, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		out = append(out, domain.Host{Address: h.Address, Label: h.Label})
	}
	return out
}
