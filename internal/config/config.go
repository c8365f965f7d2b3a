package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root    string   `yaml:"root"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"project"`
	Analysis struct {
		FatInterfaceThreshold int `yaml:"fat_interface_threshold"`
	} `yaml:"analysis"`
	Output struct {
		Format string `yaml:"format"` // "text" or "json"
	} `yaml:"output"`
	Baseline struct {
		Path string `yaml:"path"`
	} `yaml:"baseline"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Analysis.FatInterfaceThreshold = 5
	cfg.Output.Format = "text"
	cfg.Baseline.Path = "php-solid.db"
	return cfg
}

// LoadConfig reads the YAML config file and applies .env plus environment
// variable overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("PHPSOLID_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.FatInterfaceThreshold = n
		}
	}
	if v := os.Getenv("PHPSOLID_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("PHPSOLID_BASELINE"); v != "" {
		cfg.Baseline.Path = v
	}

	if cfg.Analysis.FatInterfaceThreshold < 1 {
		cfg.Analysis.FatInterfaceThreshold = 5
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	return cfg, nil
}
