package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults carried over from the Douglas County pipeline.
const (
	DefaultCoordinates  = "wells.csv"
	DefaultDetails      = "DWR_Well_Geophysical_Log.csv"
	DefaultTargetCounty = "DOUGLAS"
	DefaultQueryName    = "Castle Rock"
	DefaultQueryLat     = 39.3722
	DefaultQueryLon     = -104.8561
	DefaultQueryCount   = 10
	DefaultQueryOutput  = "example_nearest_wells.json"
)

// Config holds the wellfinder configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources"`
	Merge   MergeConfig   `yaml:"merge"`
	Output  OutputConfig  `yaml:"output"`
	Queries []QueryConfig `yaml:"queries"`
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`

	mergedDerived bool // Output.Merged was filled from the county
}

// SourcesConfig locates the two row-aligned input tables.
type SourcesConfig struct {
	Coordinates  string `yaml:"coordinates"`
	Details      string `yaml:"details"`
	DetailsSheet string `yaml:"details_sheet"` // xlsx only; empty = first sheet
}

// MergeConfig holds merge settings.
type MergeConfig struct {
	TargetCounty string `yaml:"target_county"`
}

// OutputConfig holds snapshot destinations.
type OutputConfig struct {
	Merged     string `yaml:"merged"`      // default: <county>_county_wells.json
	QueriesDir string `yaml:"queries_dir"` // relative query outputs are joined to this
}

// QueryConfig is one nearest-neighbor query run by the pipeline.
type QueryConfig struct {
	Name   string  `yaml:"name"`
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Count  *int    `yaml:"count"` // nil = 10; 0 is a valid count
	Output string  `yaml:"output"`
}

// HTTPConfig holds query API server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // empty = auth disabled
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Sources.Coordinates == "" {
		c.Sources.Coordinates = DefaultCoordinates
	}
	if c.Sources.Details == "" {
		c.Sources.Details = DefaultDetails
	}
	if c.Merge.TargetCounty == "" {
		c.Merge.TargetCounty = DefaultTargetCounty
	}
	if c.Output.Merged == "" {
		c.Output.Merged = MergedFileName(c.Merge.TargetCounty)
		c.mergedDerived = true
	}
	if c.Output.QueriesDir == "" {
		c.Output.QueriesDir = "."
	}
	if len(c.Queries) == 0 {
		c.Queries = []QueryConfig{{
			Name:   DefaultQueryName,
			Lat:    DefaultQueryLat,
			Lon:    DefaultQueryLon,
			Output: DefaultQueryOutput,
		}}
	}
	for i := range c.Queries {
		q := &c.Queries[i]
		if q.Count == nil {
			n := DefaultQueryCount
			q.Count = &n
		}
		if q.Output == "" {
			q.Output = fmt.Sprintf("query_%d_nearest_wells.json", i+1)
		}
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Sources.Coordinates == "" || c.Sources.Details == "" {
		return fmt.Errorf("sources.coordinates and sources.details are required")
	}
	for i, q := range c.Queries {
		if math.IsNaN(q.Lat) || math.IsInf(q.Lat, 0) || math.IsNaN(q.Lon) || math.IsInf(q.Lon, 0) {
			return fmt.Errorf("queries[%d]: lat/lon must be finite", i)
		}
		if q.Count != nil && *q.Count < 0 {
			return fmt.Errorf("queries[%d].count must be >= 0, got %d", i, *q.Count)
		}
	}
	return nil
}

// QueryOutputPath resolves where query i is written.
func (c *Config) QueryOutputPath(i int) string {
	out := c.Queries[i].Output
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.Output.QueriesDir, out)
}

// SetTargetCounty switches the merge county. A merged path that was derived
// from the previous county follows the new one; a configured path is kept.
func (c *Config) SetTargetCounty(county string) {
	c.Merge.TargetCounty = county
	if c.mergedDerived || c.Output.Merged == "" {
		c.Output.Merged = MergedFileName(county)
		c.mergedDerived = true
	}
}

// MergedFileName derives the merged snapshot name from a county, e.g.
// "DOUGLAS" -> "douglas_county_wells.json".
func MergedFileName(county string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(county)), "_")
	return slug + "_county_wells.json"
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
