package dirchecksums

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/afero"
)

// Config represents the dcsum configuration file
type Config struct {
	fs         afero.Fs
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default    string // Default hash algorithm
	HashBuffer string // Read buffer per hashing task (default: "64KiB")
}

// WalkConfig represents directory traversal configuration
type WalkConfig struct {
	Depth          int      // Default depth (negative = infinite)
	FollowSymlinks bool     // Follow symbolic links (default: true)
	Ignore         []string // Bare names skipped on every run
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	Jobs string // Worker count: auto, -1 or a positive number
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // Default output format: human, json, yaml
	Color  string // auto, always, never
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Walk        *WalkConfig
	Performance *PerformanceConfig
	Output      *OutputConfig
	Verbose     *VerboseConfig
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dcsum/config, falling back to
// ~/.config/dcsum/config
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName, DefaultConfigName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", ConfigDirName, DefaultConfigName)
}

// LoadConfig loads the configuration file at configPath (DefaultConfigPath
// when empty). A missing file yields the built-in defaults without writing.
func LoadConfig(fs afero.Fs, configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	cfg := &Config{
		fs:         fs,
		configPath: configPath,
	}

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	if !exists {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	iniFile, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// Path returns the file the configuration is loaded from and saved to
func (c *Config) Path() string {
	return c.configPath
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	defaults := []struct {
		section, key, value string
	}{
		{"filehash", "default", DefaultAlgorithm},
		{"filehash", "hash_buffer", DefaultHashBuffer},
		{"walk", "depth", "0"},
		{"walk", "follow_symlinks", "true"},
		{"walk", "ignore", ""},
		{"performance", "jobs", "auto"},
		{"output", "format", DefaultFormat},
		{"output", "color", "auto"},
		{"verbose", "level", "0"},
		{"verbose", "debug", ""},
	}

	for _, d := range defaults {
		section, err := c.ini.NewSection(d.section)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", d.section, err)
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}

	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default:    DefaultAlgorithm,
		HashBuffer: DefaultHashBuffer,
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if v := section.Key("default").String(); v != "" {
			hashConfig.Default = v
		}
		if v := section.Key("hash_buffer").String(); v != "" {
			hashConfig.HashBuffer = v
		}
	}

	return hashConfig
}

// GetWalkConfig returns the traversal configuration
func (c *Config) GetWalkConfig() *WalkConfig {
	walkConfig := &WalkConfig{
		Depth:          0,
		FollowSymlinks: true,
	}

	if c.ini.HasSection("walk") {
		section := c.ini.Section("walk")
		if section.HasKey("depth") {
			if depth, err := section.Key("depth").Int(); err == nil {
				walkConfig.Depth = depth
			}
		}
		if section.HasKey("follow_symlinks") {
			if follow, err := section.Key("follow_symlinks").Bool(); err == nil {
				walkConfig.FollowSymlinks = follow
			}
		}
		if section.HasKey("ignore") {
			for _, name := range section.Key("ignore").Strings(",") {
				if name != "" {
					walkConfig.Ignore = append(walkConfig.Ignore, name)
				}
			}
		}
	}

	return walkConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		Jobs: "auto",
	}

	if c.ini.HasSection("performance") {
		if v := c.ini.Section("performance").Key("jobs").String(); v != "" {
			performanceConfig.Jobs = v
		}
	}

	return performanceConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: DefaultFormat,
		Color:  "auto",
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if v := section.Key("format").String(); v != "" {
			outputConfig.Format = v
		}
		if v := section.Key("color").String(); v != "" {
			outputConfig.Color = v
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		verboseConfig.Debug = section.Key("debug").String()
	}

	return verboseConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Walk:        c.GetWalkConfig(),
		Performance: c.GetPerformanceConfig(),
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
	}
}

// overrideKeys maps the short override names onto their section
var overrideKeys = map[string]string{
	"default":         "filehash",
	"hash_buffer":     "filehash",
	"depth":           "walk",
	"follow_symlinks": "walk",
	"ignore":          "walk",
	"jobs":            "performance",
	"format":          "output",
	"color":           "output",
	"level":           "verbose",
	"debug":           "verbose",
}

// ApplyOverrides applies "key:value" overrides to the configuration.
// Accepts strings like "default:sha256", "format:json", "level:2", "jobs:-1"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		sectionName, ok := overrideKeys[key]
		if !ok {
			return fmt.Errorf("unsupported override key '%s' (supported: default, hash_buffer, depth, follow_symlinks, ignore, jobs, format, color, level, debug)", key)
		}
		if err := ValidateSetting(key, value); err != nil {
			return err
		}

		c.ini.Section(sectionName).Key(key).SetValue(value)
	}

	return nil
}

// ValidateSetting checks a value for an override key
func ValidateSetting(key, value string) error {
	switch key {
	case "default":
		return ValidateHashAlgorithm(value)
	case "hash_buffer":
		_, err := ParseHumanSize(value)
		return err
	case "depth":
		_, err := ParseDepth(value)
		return err
	case "follow_symlinks":
		return ValidateBool(value)
	case "jobs":
		_, err := ParseJobs(value)
		return err
	case "format":
		return ValidateOutputFormat(value)
	case "color":
		return ValidateColorMode(value)
	case "level":
		var level int
		if _, err := fmt.Sscanf(value, "%d", &level); err != nil {
			return fmt.Errorf("invalid verbose level: %s", value)
		}
		return ValidateVerboseLevel(level)
	case "debug":
		return ValidateDebugFlags(value)
	}
	return nil
}

// Save writes the configuration to disk, creating its directory
func (c *Config) Save() error {
	if err := c.fs.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if _, err := c.ini.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// WriteTo renders the configuration in INI form
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	return c.ini.WriteTo(w)
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(SupportedAlgorithms(), ", "))
	}
	if _, err := Resolve(algo); err != nil {
		return err
	}
	return nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "human", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
}

// ValidateColorMode validates a colour setting
func ValidateColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("unsupported color mode: %s (supported: auto, always, never)", mode)
	}
}

// ValidateBool validates an INI boolean
func ValidateBool(value string) error {
	switch strings.ToLower(value) {
	case "1", "t", "true", "y", "yes", "on", "0", "f", "false", "n", "no", "off":
		return nil
	default:
		return fmt.Errorf("invalid boolean value: %s", value)
	}
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateDebugFlags validates debug flags (lenient - allows any comma-separated values)
func ValidateDebugFlags(debug string) error {
	return nil
}
