package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.schema.json
var configSchema string

type Config struct {
	// World Dimensions. A zero depth keeps the flock in the XY plane.
	WorldWidth  float32 `json:"worldWidth"`
	WorldHeight float32 `json:"worldHeight"`
	WorldDepth  float32 `json:"worldDepth"`

	// Population
	NumBoids     int     `json:"numBoids"`
	InitialSpeed float32 `json:"initialSpeed"`

	// Runtime
	Workers int    `json:"workers"` // goroutines for the force pass, <= 1 is sequential
	Seed    uint64 `json:"seed"`    // 0 draws from the global generator
	Bounce  bool   `json:"bounce"`  // straight-line bouncing instead of flocking

	Targets []geometry.Vector3 `json:"targets"`
	Flock   flock.Params       `json:"flock"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:   1000,
		WorldHeight:  800,
		NumBoids:     300,
		InitialSpeed: 20,
		Workers:      1,
		Flock:        flock.DefaultParams(),
	}
}

// Planar reports whether the world has no depth.
func (c *Config) Planar() bool {
	return c.WorldDepth == 0
}

// EngineOptions translates the config into flock engine options.
func (c *Config) EngineOptions() []flock.Option {
	opts := []flock.Option{
		flock.WithParams(c.Flock),
		flock.WithWorkers(c.Workers),
	}
	if c.Seed != 0 {
		opts = append(opts, flock.WithRandom(flock.NewSeededRandom(c.Seed)))
	}
	if c.Planar() {
		opts = append(opts, flock.WithPlanar())
	}
	return opts
}

// LoadConfig loads configuration from a JSON or YAML file, validates it against
// the embedded schema and applies it over DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// YAML is normalised to JSON so both formats go through one validator.
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		b, err = yamlToJSON(b)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func yamlToJSON(b []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}
