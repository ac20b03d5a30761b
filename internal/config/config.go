package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"winsbygroup.com/appmachineid/internal/source"
)

// Config holds all configuration values
type Config struct {
	Addr           string        `yaml:"addr"`
	DBPath         string        `yaml:"db_path"`
	AdminAPIKey    string        `yaml:"admin_api_key"`
	MachineIDPaths []string      `yaml:"machine_id_paths"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	Demo           bool          `yaml:"demo"` // seed sample applications into a new database

	DBPathSource string // where DBPath was set from: "default", "yaml file", or "env var"
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:           ":8080",
		DBPath:         "./appmachineid.db",
		DBPathSource:   "default",
		MachineIDPaths: append([]string(nil), source.DefaultPaths...),
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
	}

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevDBPath := cfg.DBPath
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
		if cfg.DBPath != prevDBPath {
			cfg.DBPathSource = "yaml file"
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
		cfg.DBPathSource = "env var"
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		cfg.AdminAPIKey = v
	}
	if v := os.Getenv("MACHINE_ID_PATH"); v != "" {
		cfg.MachineIDPaths = splitList(v)
	}

	if len(cfg.MachineIDPaths) == 0 {
		cfg.MachineIDPaths = append([]string(nil), source.DefaultPaths...)
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
