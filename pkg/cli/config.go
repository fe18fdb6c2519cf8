package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/cambai/pkg/jsontime"
	"github.com/haivivi/cambai/pkg/storage"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".giztoy"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the main configuration structure for a CLI app
type Config struct {
	// AppName is the application name (e.g., "cambai")
	AppName string `yaml:"-"`

	// CurrentContext is the name of the currently active context
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts is a map of context name to context configuration
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// Context represents a single API context configuration
type Context struct {
	// Name is the context name
	Name string `yaml:"name"`

	// APIKey is sent as the x-api-key header
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL is the API base URL (optional, uses default if empty)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout is the per-request HTTP timeout (optional), "30s" or seconds
	Timeout jsontime.Duration `yaml:"timeout,omitempty"`

	// Storage is where binary artifacts are written (optional)
	Storage *StorageConfig `yaml:"storage,omitempty"`
}

// StorageConfig selects an artifact sink. Exactly one of Dir or S3 is set.
type StorageConfig struct {
	// Dir is a local output directory
	Dir string `yaml:"dir,omitempty"`

	// S3 is an S3-compatible bucket
	S3 *storage.S3Config `yaml:"s3,omitempty"`
}

// Open returns the sink described by the configuration.
func (s *StorageConfig) Open(ctx context.Context) (storage.Sink, error) {
	switch {
	case s == nil:
		return nil, fmt.Errorf("no storage configured")
	case s.Dir != "" && s.S3 != nil:
		return nil, fmt.Errorf("storage: dir and s3 are mutually exclusive")
	case s.S3 != nil:
		return storage.DialS3(ctx, *s.S3)
	case s.Dir != "":
		return storage.NewLocal(expandHome(s.Dir))
	default:
		return nil, fmt.Errorf("storage: neither dir nor s3 is set")
	}
}

// Describe returns a short human readable form of the sink.
func (s *StorageConfig) Describe() string {
	switch {
	case s == nil:
		return "(none)"
	case s.S3 != nil:
		if s.S3.Prefix != "" {
			return "s3://" + s.S3.Bucket + "/" + strings.Trim(s.S3.Prefix, "/")
		}
		return "s3://" + s.S3.Bucket
	default:
		return s.Dir
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// LoadConfig loads or creates configuration for the specified app
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from a custom path
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	var configPath string

	if customPath != "" {
		configPath = customPath
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultBaseDir, appName, DefaultConfigFile)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Contexts:   make(map[string]*Context),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	for name, ctx := range cfg.Contexts {
		if ctx == nil {
			cfg.Contexts[name] = &Context{Name: name}
		}
	}

	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk. The file holds API keys and is
// written with 0600 permissions.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// AddContext adds a new context, replacing any context with the same name
func (c *Config) AddContext(name string, ctx *Context) error {
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext sets the current context
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// GetCurrentContext returns the current context
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}
	return c.GetContext(c.CurrentContext)
}

// ResolveContext returns the context by name, or current context if name is empty
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name == "" {
		return c.GetCurrentContext()
	}
	return c.GetContext(name)
}

// ListContexts returns all context names in sorted order
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
