package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/store"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend string      `mapstructure:"backend" toml:"backend"`
	DataDir string      `mapstructure:"data_dir" toml:"data_dir"`
	IDs     string      `mapstructure:"ids" toml:"ids"`
	Redis   RedisConfig `mapstructure:"redis" toml:"redis"`
	Log     LogConfig   `mapstructure:"log" toml:"log"`
	Web     WebConfig   `mapstructure:"web" toml:"web"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" toml:"-"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" toml:"addr"`
	Password string `mapstructure:"password" toml:"password"`
	DB       int    `mapstructure:"db" toml:"db"`
	Prefix   string `mapstructure:"prefix" toml:"prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	JSON  bool   `mapstructure:"json" toml:"json"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// FlagBindings maps config keys to the CLI flags that override them.
var FlagBindings = map[string]string{
	"backend":    "backend",
	"data_dir":   "data-dir",
	"redis.addr": "redis-addr",
	"log.level":  "log-level",
	"log.json":   "log-json",
	"ids":        "ids",
}

type LoadOptions struct {
	// Path is an explicit config file (--config). It must exist.
	Path string
	// Flags, when set, override file and env values for the keys in
	// FlagBindings, but only for flags the user actually set.
	Flags *pflag.FlagSet
}

// Dir is the directory holding config.toml.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); v != "" {
		return filepath.Join(v, "kanban"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kanban"), nil
}

// DefaultDataDir is where the file and sqlite backends keep the board.
func DefaultDataDir() string {
	if v := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); v != "" {
		return filepath.Join(v, "kanban")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kanban")
	}
	return filepath.Join(home, ".local", "share", "kanban")
}

// Load reads configuration from defaults, the TOML file, KANBAN_* env vars and
// flags, in increasing order of precedence.
func Load(opt LoadOptions) (Config, error) {
	v := viper.New()

	v.SetDefault("backend", string(store.BackendFile))
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("ids", "timestamp")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "kanban:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("web.addr", "127.0.0.1:3340")

	v.SetConfigType("toml")

	path := strings.TrimSpace(opt.Path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("KANBAN_CONFIG"))
	}
	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}

	v.SetEnvPrefix("KANBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opt.Flags != nil {
		for key, name := range FlagBindings {
			f := opt.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	source := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			source = path
		} else if explicit {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source = source
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.IDs = strings.ToLower(strings.TrimSpace(c.IDs))
	c.DataDir = strings.TrimSpace(c.DataDir)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := store.ParseBackendKind(c.Backend); err != nil {
		return err
	}
	if _, err := board.NewIDSource(c.IDs); err != nil {
		return err
	}
	if c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	return nil
}

// StoreOptions translates the config into backend options.
func (c Config) StoreOptions() (store.OpenOptions, error) {
	kind, err := store.ParseBackendKind(c.Backend)
	if err != nil {
		return store.OpenOptions{}, err
	}
	return store.OpenOptions{
		Kind:    kind,
		DataDir: c.DataDir,
		Redis: store.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		},
	}, nil
}

// TOML renders the effective configuration. The redis password is masked.
func (c Config) TOML() ([]byte, error) {
	if c.Redis.Password != "" {
		c.Redis.Password = "********"
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
