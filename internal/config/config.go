// Package config resolves runtime settings from defaults, a YAML file, a
// .env file, the environment and command line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "pomotask"
	configFileName = "config.yaml"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Logger LoggerConfig `yaml:"logger"`
}

type StoreConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	RedisURL string `yaml:"redis_url"`
}

type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	File     string `yaml:"file"`
}

// Overrides come from the command line and win over everything else.
type Overrides struct {
	Backend string
	Path    string
}

// storeFiles names the default data file of each file based backend.
var storeFiles = map[string]string{
	"json": "tasks.json",
	"bolt": "tasks.db",
}

// Default returns settings that work without any file or environment. The
// store path is left empty; it is filled once the backend is known.
func Default() Config {
	dir := dataDir()
	return Config{
		Store: StoreConfig{
			Backend:  "json",
			RedisURL: "redis://localhost:6379/0",
		},
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "json",
			File:     filepath.Join(dir, AppName+".log"),
		},
	}
}

// Load reads the YAML file at path (DefaultPath when empty) and then applies
// .env, environment and command line overrides. A missing file is not an
// error.
func Load(path string, o Overrides) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if err := applyFile(&cfg, path); err != nil {
		return cfg, err
	}

	_ = godotenv.Load(".env")
	applyEnv(&cfg)
	merge(&cfg.Store.Backend, o.Backend)
	merge(&cfg.Store.Path, o.Path)
	cfg.fillPath()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath is <user config dir>/pomotask/config.yaml.
func DefaultPath() string {
	return filepath.Join(dataDir(), configFileName)
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case "json", "bolt", "memory":
		if c.Store.Backend != "memory" && c.Store.Path == "" {
			return fmt.Errorf("store path is required for the %s backend", c.Store.Backend)
		}
	case "redis":
		if c.Store.RedisURL == "" {
			return errors.New("redis url is required for the redis backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}
	return nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	bs, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// fillPath picks the default data file for the chosen backend when no path
// was given.
func (c *Config) fillPath() {
	if c.Store.Path != "" {
		return
	}
	if name, ok := storeFiles[c.Store.Backend]; ok {
		c.Store.Path = filepath.Join(dataDir(), name)
	}
}

func applyFile(cfg *Config, path string) error {
	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(bs, &file); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	merge(&cfg.Store.Backend, file.Store.Backend)
	merge(&cfg.Store.Path, file.Store.Path)
	merge(&cfg.Store.RedisURL, file.Store.RedisURL)
	merge(&cfg.Logger.Level, file.Logger.Level)
	merge(&cfg.Logger.Encoding, file.Logger.Encoding)
	merge(&cfg.Logger.File, file.Logger.File)
	return nil
}

func applyEnv(cfg *Config) {
	merge(&cfg.Store.Backend, os.Getenv("POMOTASK_BACKEND"))
	merge(&cfg.Store.Path, os.Getenv("POMOTASK_PATH"))
	merge(&cfg.Store.RedisURL, os.Getenv("POMOTASK_REDIS_URL"))
	merge(&cfg.Logger.Level, os.Getenv("POMOTASK_LOG_LEVEL"))
	merge(&cfg.Logger.Encoding, os.Getenv("POMOTASK_LOG_ENCODING"))
	merge(&cfg.Logger.File, os.Getenv("POMOTASK_LOG_FILE"))
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func dataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}
