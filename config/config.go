package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/action"
	"github.com/skosovsky/geminikit/schema"
)

// ErrInvalidConfig is returned for files that fail validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Transport names.
const (
	TransportHTTP  = "http"
	TransportGenAI = "genai"
)

// Defaults applied to unset fields.
const (
	DefaultListen     = ":8080"
	DefaultTimeout    = 60 * time.Second
	DefaultCatalogTTL = 5 * time.Minute
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config is the decoded geminikit.yaml.
type Config struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Transport string        `yaml:"transport"`
	Timeout   time.Duration `yaml:"timeout"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`

	Catalog struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"catalog"`

	Actions map[string]Action `yaml:"actions"`

	// dir resolves relative schema_file paths.
	dir string
}

// Action is one entry of the actions map.
type Action struct {
	Kind             string            `yaml:"kind"`
	Model            string            `yaml:"model"`
	SafetySettings   []map[string]any  `yaml:"safety_settings"`
	GenerationConfig map[string]any    `yaml:"generation_config"`
	Schema           []schema.Field    `yaml:"schema"`
	SchemaFile       string            `yaml:"schema_file"`
	MaxWords         int               `yaml:"max_words"`
	MessageType      string            `yaml:"message_type"`
	From             string            `yaml:"from"`
	To               string            `yaml:"to"`
	Categories       schema.Categories `yaml:"categories"`
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by trusted flag.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes data; dir resolves relative schema_file paths.
func Parse(data []byte, dir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.dir = dir
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Transport) == "" {
		cfg.Transport = TransportHTTP
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Catalog.TTL <= 0 {
		cfg.Catalog.TTL = DefaultCatalogTTL
	}
}

func applyEnvOverrides(cfg *Config) {
	for _, key := range []string{"GEMINI_API_KEY", "GEMINIKIT_API_KEY"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cfg.APIKey = v
		}
	}
	if v := strings.TrimSpace(os.Getenv("GEMINIKIT_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINIKIT_TRANSPORT")); v != "" {
		cfg.Transport = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINIKIT_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINIKIT_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}

func validate(cfg *Config) error {
	if cfg.Transport != TransportHTTP && cfg.Transport != TransportGenAI {
		return fmt.Errorf("%w: transport must be %q or %q, got %q", ErrInvalidConfig, TransportHTTP, TransportGenAI, cfg.Transport)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, cfg.Log.Format)
	}
	for name, a := range cfg.Actions {
		if !action.Kind(a.Kind).Valid() {
			return fmt.Errorf("%w: action %q has unknown kind %q", ErrInvalidConfig, name, a.Kind)
		}
		if len(a.Schema) > 0 && a.SchemaFile != "" {
			return fmt.Errorf("%w: action %q sets both schema and schema_file", ErrInvalidConfig, name)
		}
		if a.MessageType != "" && a.MessageType != string(action.SingleMessage) && a.MessageType != string(action.ChatTranscript) {
			return fmt.Errorf("%w: action %q has unknown message_type %q", ErrInvalidConfig, name, a.MessageType)
		}
	}
	return nil
}

// Definitions resolves the actions map into sorted action definitions.
func (c *Config) Definitions() ([]action.Definition, error) {
	names := make([]string, 0, len(c.Actions))
	for name := range c.Actions {
		names = append(names, name)
	}
	slices.Sort(names)

	defs := make([]action.Definition, 0, len(names))
	for _, name := range names {
		d, err := c.definition(name, c.Actions[name])
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func (c *Config) definition(name string, a Action) (action.Definition, error) {
	raw := map[string]any{}
	if len(a.SafetySettings) > 0 {
		raw["safetySettings"] = a.SafetySettings
	}
	if len(a.GenerationConfig) > 0 {
		raw["generationConfig"] = a.GenerationConfig
	}
	settings, err := geminikit.ParseSettings(raw)
	if err != nil {
		return action.Definition{}, fmt.Errorf("%w: action %q: %w", ErrInvalidConfig, name, err)
	}
	d := action.Definition{
		Name:        name,
		Kind:        action.Kind(a.Kind),
		Model:       a.Model,
		Settings:    settings,
		MessageType: action.MessageType(a.MessageType),
		MaxWords:    a.MaxWords,
		From:        a.From,
		To:          a.To,
		Categories:  a.Categories,
	}
	switch {
	case len(a.Schema) > 0:
		d.Schema, err = schema.New(a.Schema)
	case a.SchemaFile != "":
		d.Schema, err = c.loadSchema(a.SchemaFile)
	}
	if err != nil {
		return action.Definition{}, fmt.Errorf("%w: action %q: %w", ErrInvalidConfig, name, err)
	}
	return d, nil
}

// loadSchema reads a JSON or YAML (by extension) field list.
func (c *Config) loadSchema(path string) (schema.Schema, error) {
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	// #nosec G304 -- path comes from the trusted config file.
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Schema{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.ParseYAML(data)
	default:
		return schema.Parse(data)
	}
}
