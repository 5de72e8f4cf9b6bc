// AngelaMos | 2026
// client.go

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const clientEnvPrefix = "INTERNHUB_"

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL    string    `koanf:"api_url"`
	StatePath string    `koanf:"state_path"`
	Log       LogConfig `koanf:"log"`
}

// LoadClient reads defaults, then the optional YAML file, then
// INTERNHUB_* environment variables (INTERNHUB_API_URL, INTERNHUB_STATE_PATH,
// INTERNHUB_LOG_LEVEL).
func LoadClient(configPath string) (*ClientConfig, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"api_url":    "http://localhost:5000",
		"state_path": "internhub.db",
		"log.level":  "warn",
		"log.format": "text",
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load client config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(clientEnvPrefix, ".", clientEnvKey), nil); err != nil {
		return nil, fmt.Errorf("load client env vars: %w", err)
	}

	c := &ClientConfig{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal client config: %w", err)
	}

	if err := validateClient(c); err != nil {
		return nil, fmt.Errorf("validate client config: %w", err)
	}

	return c, nil
}

func clientEnvKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, clientEnvPrefix))
	switch key {
	case "log_level":
		return "log.level"
	case "log_format":
		return "log.format"
	default:
		return key
	}
}

func validateClient(c *ClientConfig) error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute url", c.APIURL)
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	return nil
}
