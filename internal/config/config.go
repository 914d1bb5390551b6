package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port" validate:"required,numeric"`
	Mode string `toml:"mode" validate:"omitempty,oneof=debug release test"`
}

type StoreConfig struct {
	Backend string `toml:"backend" validate:"required,oneof=memory memgraph sqlite"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" validate:"required_if=Enabled true"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	Enabled  bool   `toml:"-"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type GraphConfig struct {
	MinGroupSize int `toml:"min_group_size" validate:"gte=0"`
}

type ClusteringConfig struct {
	Algorithm     string  `toml:"algorithm" validate:"required,oneof=louvain lpa components"`
	Seed          uint64  `toml:"seed"`
	Resolution    float64 `toml:"resolution" validate:"gt=0"`
	MaxIterations int     `toml:"max_iterations" validate:"gte=0"`
}

type LogConfig struct {
	JSON  bool   `toml:"json"`
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type TracingConfig struct {
	Enabled bool     `toml:"enabled"`
	Marks   []string `toml:"marks"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Store      StoreConfig      `toml:"store"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	SQLite     SQLiteConfig     `toml:"sqlite"`
	Graph      GraphConfig      `toml:"graph"`
	Clustering ClusteringConfig `toml:"clustering"`
	Log        LogConfig        `toml:"log"`
	Tracing    TracingConfig    `toml:"tracing"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "release"},
		Store:  StoreConfig{Backend: "memory"},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		SQLite: SQLiteConfig{Path: "kinship.db"},
		Graph:  GraphConfig{MinGroupSize: 20},
		Clustering: ClusteringConfig{
			Algorithm:     "louvain",
			Seed:          1,
			Resolution:    1.0,
			MaxIterations: 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("MEMGRAPH_DATABASE"); v != "" {
		c.Memgraph.Database = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.SQLite.Path = v
	}
	if v := os.Getenv("CLUSTER_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CLUSTER_SEED '%s': %w", v, err)
		}
		c.Clustering.Seed = seed
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		jsonOutput, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_JSON '%s': %w", v, err)
		}
		c.Log.JSON = jsonOutput
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	c.Memgraph.Enabled = c.Store.Backend == "memgraph"
	if c.Store.Backend == "sqlite" && c.SQLite.Path == "" {
		return fmt.Errorf("invalid configuration: sqlite.path is required for the sqlite backend")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
