package config

import (
	"fmt"
	"time"
)

const defaultCheckTimeoutSeconds = 5

// FailoverConfig describes a router CNAME that flips between a primary
// and a secondary target based on HTTP health checks.
type FailoverConfig struct {
	Domain            string `yaml:"domain"`
	RouterRecord      string `yaml:"router_record"`
	PrimaryTarget     string `yaml:"primary_target"`
	SecondaryTarget   string `yaml:"secondary_target"`
	PrimaryCheckURL   string `yaml:"primary_check_url"`
	SecondaryCheckURL string `yaml:"secondary_check_url"`
	ExpectedStatus    int    `yaml:"expected_status"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

// LoadFailover reads and validates a failover config file. Every key is
// required except timeout_seconds, which defaults to 5.
func LoadFailover(path string) (FailoverConfig, error) {
	var cfg FailoverConfig
	if err := loadStrict(path, &cfg); err != nil {
		return FailoverConfig{}, err
	}

	required := []struct {
		key   string
		value string
	}{
		{"domain", cfg.Domain},
		{"router_record", cfg.RouterRecord},
		{"primary_target", cfg.PrimaryTarget},
		{"secondary_target", cfg.SecondaryTarget},
		{"primary_check_url", cfg.PrimaryCheckURL},
		{"secondary_check_url", cfg.SecondaryCheckURL},
	}
	for _, r := range required {
		if r.value == "" {
			return FailoverConfig{}, fmt.Errorf("missing required key in failover config: %s", r.key)
		}
	}
	if cfg.ExpectedStatus == 0 {
		return FailoverConfig{}, fmt.Errorf("missing required key in failover config: expected_status")
	}

	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaultCheckTimeoutSeconds
	}
	if cfg.TimeoutSeconds < 0 {
		return FailoverConfig{}, fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	return cfg, nil
}

// Timeout is the per-health-check HTTP timeout.
func (c FailoverConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
