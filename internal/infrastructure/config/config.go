// Package config loads scopeshot settings from defaults, an optional YAML
// file, SCOPESHOT_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. SCOPESHOT_TIMEOUT
	EnvPrefix = "SCOPESHOT"
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "SCOPESHOT_CONFIG"
	// DefaultFileName is looked up in the home and working directories
	DefaultFileName = ".scopeshot.yaml"
)

// Configuration keys
const (
	KeyTimeout   = "timeout"
	KeyPort      = "port"
	KeyOutputDir = "output_dir"
	KeyPlugin    = "plugin"
	KeyDebug     = "debug"
)

// Config is the effective configuration
type Config struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Port      int           `mapstructure:"port"`
	OutputDir string        `mapstructure:"output_dir"`
	Plugin    string        `mapstructure:"plugin"`
	Debug     bool          `mapstructure:"debug"`

	// File is the config file that was read, empty when none
	File string `mapstructure:"-"`
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Timeout:   10 * time.Second,
		Port:      5025,
		OutputDir: ".",
	}
}

// fileView is the on-disk layout of a config file
type fileView struct {
	Timeout   string `yaml:"timeout"`
	Port      int    `yaml:"port"`
	OutputDir string `yaml:"output_dir"`
	Plugin    string `yaml:"plugin"`
	Debug     bool   `yaml:"debug"`
}

// Encode writes c as a YAML document that Load accepts
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileView{
		Timeout:   c.Timeout.String(),
		Port:      c.Port,
		OutputDir: c.OutputDir,
		Plugin:    c.Plugin,
		Debug:     c.Debug,
	}); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"timeout":    KeyTimeout,
	"port":       KeyPort,
	"output-dir": KeyOutputDir,
	"plugin":     KeyPlugin,
	"debug":      KeyDebug,
}

// Loader layers configuration sources with viper
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader seeded with the defaults and environment binding
func NewLoader() *Loader {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyTimeout, def.Timeout)
	v.SetDefault(KeyPort, def.Port)
	v.SetDefault(KeyOutputDir, def.OutputDir)
	v.SetDefault(KeyPlugin, def.Plugin)
	v.SetDefault(KeyDebug, def.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlags binds the known flags present in flags. Flags only override
// other sources when set explicitly on the command line.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file (explicit path, SCOPESHOT_CONFIG, or the first
// of ~/.scopeshot.yaml and ./.scopeshot.yaml), merges all sources and
// validates the result
func (l *Loader) Load(configPath string) (*Config, error) {
	file, err := l.readFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.File = file

	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) readFile(configPath string) (string, error) {
	explicit := true
	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if configPath == "" {
		explicit = false
		configPath = discoverFile()
	}
	if configPath == "" {
		return "", nil
	}

	l.v.SetConfigFile(configPath)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !explicit && errors.As(err, &pathErr) && errors.Is(pathErr.Err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return configPath, nil
}

func discoverFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, DefaultFileName))
	}
	if wd, err := os.Getwd(); err == nil && wd != "" {
		candidates = append(candidates, filepath.Join(wd, DefaultFileName))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
