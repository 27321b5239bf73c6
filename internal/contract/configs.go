package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/huangsam/rtps/schema"
)

// Default values for configuration.
const (
	DefaultDataDir   = "Data"
	DefaultOutputDir = "Plots"
	DefaultBasename  = "rtps"
	DefaultFigWidth  = 10.0 // Inches
	DefaultFigHeight = 8.0  // Inches
	DefaultPrecision = 3
	MaxPrecision     = 12
)

// DefaultFormats are the image formats written when none are configured.
var DefaultFormats = []string{".png", ".pdf"}

// DefaultWorkers is the default number of concurrent table loaders.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a render.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir string
	Inputs  map[string]string // Per-class table path overrides keyed by class key

	Show      bool
	Save      bool
	Basename  string
	Formats   []string // Normalized extensions such as ".png"
	OutputDir string
	FigWidth  float64
	FigHeight float64

	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir        string   `mapstructure:"data-dir"`
	Workers        int      `mapstructure:"workers"`
	Precision      int      `mapstructure:"precision"`
	Output         string   `mapstructure:"output"`
	OutputFile     string   `mapstructure:"output-file"`
	Width          int      `mapstructure:"width"`
	Color          string   `mapstructure:"color"`
	CacheBackend   string   `mapstructure:"cache-backend"`
	CacheDBConnect string   `mapstructure:"cache-db-connect"`
	RunsBackend    string   `mapstructure:"runs-backend"`
	RunsDBConnect  string   `mapstructure:"runs-db-connect"`
	InputsStr      string   `mapstructure:"inputs-override"`
	Formats        []string `mapstructure:"formats"`

	// --- Fields from plotCmd.Flags() ---
	Show      bool    `mapstructure:"show"`
	Save      bool    `mapstructure:"save"`
	Basename  string  `mapstructure:"basename"`
	OutputDir string  `mapstructure:"output-dir"`
	FigWidth  float64 `mapstructure:"fig-width"`
	FigHeight float64 `mapstructure:"fig-height"`

	// --- Per-class paths from config file ---
	Inputs map[string]string `mapstructure:"inputs"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Inputs != nil {
		clone.Inputs = maps.Clone(c.Inputs)
	}
	if c.Formats != nil {
		clone.Formats = slices.Clone(c.Formats)
	}
	return &clone
}

// ResolveInput returns the table path of a class: the override when one is
// configured, otherwise fileName inside the data directory.
func (c *Config) ResolveInput(key, fileName string) string {
	if p, ok := c.Inputs[key]; ok && p != "" {
		return p
	}
	return filepath.Join(c.DataDir, fileName)
}

// OutputPaths returns the files a render writes, one per format, in format order.
func (c *Config) OutputPaths() []string {
	paths := make([]string, 0, len(c.Formats))
	for _, f := range c.Formats {
		paths = append(paths, filepath.Join(c.OutputDir, c.Basename+f))
	}
	return paths
}

// Params returns the configuration as a flat map for run tracking.
func (c *Config) Params() map[string]any {
	return map[string]any{
		"data_dir":   c.DataDir,
		"inputs":     c.Inputs,
		"show":       c.Show,
		"save":       c.Save,
		"basename":   c.Basename,
		"formats":    c.Formats,
		"output_dir": c.OutputDir,
		"fig_width":  c.FigWidth,
		"fig_height": c.FigHeight,
		"workers":    c.Workers,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every failure wraps ErrInvalidConfig.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := processPlotInputs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := processInputOverrides(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' followed by host:port")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and runs backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = parseBackend(input.CacheBackend)
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = parseBackend(input.RunsBackend)
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("runs-db-connect: %w", err)
	}

	// The two stores must not share a SQLite file.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		runsDBPath := cfg.RunsDBConnect
		if runsDBPath == "" {
			runsDBPath = GetRunsDBFilePath()
		}
		if cacheDBPath == runsDBPath {
			return fmt.Errorf("cache and runs storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// parseBackend lower-cases a backend name, defaulting to none when empty.
func parseBackend(s string) schema.DatabaseBackend {
	if strings.TrimSpace(s) == "" {
		return schema.NoneBackend
	}
	return schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
}

// validateSimpleInputs processes and validates the fields shared by all commands.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Data directory ---
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	if cfg.DataDir == "" {
		return fmt.Errorf("data-dir cannot be empty")
	}

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processPlotInputs validates the figure and output settings.
func processPlotInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Show = input.Show
	cfg.Save = input.Save
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	basename, err := ValidateBasename(input.Basename)
	if err != nil {
		return err
	}
	cfg.Basename = basename

	formats, err := ParseFormats(input.Formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		formats = slices.Clone(DefaultFormats)
	}
	cfg.Formats = formats

	if input.FigWidth <= 0 || input.FigHeight <= 0 {
		return fmt.Errorf("figure size must be positive (received %gx%g)", input.FigWidth, input.FigHeight)
	}
	cfg.FigWidth = input.FigWidth
	cfg.FigHeight = input.FigHeight
	return nil
}

// ParseFormats normalizes and de-duplicates image extensions, preserving order.
// Entries may themselves be comma-separated, as they are when read from env.
func ParseFormats(raw []string) ([]string, error) {
	var formats []string
	seen := make(map[string]struct{})
	for _, entry := range raw {
		for part := range strings.SplitSeq(entry, ",") {
			f := schema.NormalizeFormat(part)
			if f == "" {
				continue
			}
			if _, ok := schema.ValidImageFormats[f]; !ok {
				return nil, fmt.Errorf("unsupported image format '%s'", strings.TrimSpace(part))
			}
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profilePrefix = strings.TrimSpace(profilePrefix)
	if profilePrefix == "" {
		return nil
	}
	if strings.HasSuffix(profilePrefix, string(filepath.Separator)) {
		return fmt.Errorf("%w: profile prefix must name a file (received %q)", ErrInvalidConfig, profilePrefix)
	}
	profile.Enabled = true
	profile.Prefix = profilePrefix
	return nil
}

// ValidateBasename trims an output basename and rejects empty names or names
// containing path separators.
func ValidateBasename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("basename cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("basename must not contain path separators (received %q)", name)
	}
	return name, nil
}

// processInputOverrides merges per-class paths from the config file and the
// --inputs-override flag, the flag taking precedence.
func processInputOverrides(cfg *Config, input *ConfigRawInput) error {
	inputs := make(map[string]string)
	for k, v := range input.Inputs {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || strings.TrimSpace(v) == "" {
			return fmt.Errorf("inputs entry %q must have a class key and a path", k)
		}
		inputs[key] = strings.TrimSpace(v)
	}

	parsed, err := parseInputsString(input.InputsStr)
	if err != nil {
		return fmt.Errorf("invalid --inputs-override format: %w", err)
	}
	maps.Copy(inputs, parsed)

	cfg.Inputs = inputs
	return nil
}

// parseInputsString parses a string like "pulsars:a.csv,rrats:b.parquet"
// into a map of class key to path.
func parseInputsString(s string) (map[string]string, error) {
	inputs := make(map[string]string)

	if s == "" {
		return inputs, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, path, ok := strings.Cut(part, ":")
		key = strings.ToLower(strings.TrimSpace(key))
		path = strings.TrimSpace(path)
		if !ok || key == "" || path == "" {
			return nil, fmt.Errorf("invalid input format '%s', expected 'class:path'", part)
		}

		inputs[key] = path
	}

	return inputs, nil
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the table cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rtps_cache.db"
	}
	return filepath.Join(homeDir, ".rtps_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rtps_runs.db"
	}
	return filepath.Join(homeDir, ".rtps_runs.db")
}
