package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Env string `yaml:"env"`
	} `yaml:"server"`

	Storage struct {
		Type     string `yaml:"type"`      // memory, local
		BasePath string `yaml:"base_path"` // For local storage
	} `yaml:"storage"`

	Admin struct {
		Emails   []string `yaml:"emails"`
		Password string   `yaml:"password"`
	} `yaml:"admin"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // Max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // Allowed MIME types
	} `yaml:"upload"`

	Seed bool `yaml:"seed"` // Seed demo data when the backing store is empty
}

var AppConfig *Config

// LoadConfig reads config/config.yaml (or CONFIG_PATH) and applies
// environment overrides. Falls back to built-in defaults when no
// config file is present, so the demo runs out of the box.
func LoadConfig() {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		log.Printf("No config file at %s, using defaults", configPath)
		AppConfig = Defaults()
		applyEnvOverrides(AppConfig)
		return
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	fillMissing(&cfg)
	applyEnvOverrides(&cfg)
	AppConfig = &cfg
}

// Defaults returns the built-in demo configuration.
func Defaults() *Config {
	var cfg Config
	fillMissing(&cfg)
	cfg.Seed = true
	return &cfg
}

func fillMissing(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./data"
	}
	if len(cfg.Admin.Emails) == 0 {
		cfg.Admin.Emails = []string{"admin@grantes.com", "admin@grantes.local"}
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"application/pdf",
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	if env := os.Getenv("SERVER_ENV"); env != "" {
		cfg.Server.Env = env
	}
	if st := os.Getenv("STORAGE_TYPE"); st != "" {
		cfg.Storage.Type = st
	}
	if bp := os.Getenv("STORAGE_BASE_PATH"); bp != "" {
		cfg.Storage.BasePath = bp
	}
}
