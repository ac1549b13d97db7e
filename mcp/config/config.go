package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	mcp "github.com/viant/mcp"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultListTimeout bounds dbt list, which is slow on large projects.
	DefaultListTimeout = 10 * time.Second
	// DefaultCallTimeout bounds any single tool call.
	DefaultCallTimeout = 15 * time.Minute
)

// Environment variables overriding file settings.
const (
	EnvDbtPath       = "DBT_PATH"
	EnvProjectDir    = "DBT_PROJECT_DIR"
	EnvDisableDbtCLI = "DISABLE_DBT_CLI"
	EnvLogLevel      = "DBT_MCP_LOG_LEVEL"
)

type Config struct {
	Server        *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	DbtCLI        *DbtCLI            `yaml:"dbtCli,omitempty" json:"dbtCli,omitempty"`
	Tools         []string           `yaml:"tools,omitempty" json:"tools,omitempty"`
	DisabledTools []string           `yaml:"disabledTools,omitempty" json:"disabledTools,omitempty"`
	CallTimeout   time.Duration      `yaml:"callTimeout,omitempty" json:"callTimeout,omitempty"`
	Logging       *Logging           `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// DbtCLI locates the dbt executable and the project it operates on.
type DbtCLI struct {
	Path        string        `yaml:"path,omitempty" json:"path,omitempty"`
	ProjectDir  string        `yaml:"projectDir,omitempty" json:"projectDir,omitempty"`
	ListTimeout time.Duration `yaml:"listTimeout,omitempty" json:"listTimeout,omitempty"`
	Disabled    bool          `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

type Logging struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Pretty bool   `yaml:"pretty,omitempty" json:"pretty,omitempty"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

// LoadEnv reads an optional .env file from the working directory and applies
// the environment overrides. Variables already set are never replaced by the
// file.
func (c *Config) LoadEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	c.ApplyEnv()
	return nil
}

// ApplyEnv overlays DBT_PATH, DBT_PROJECT_DIR, DISABLE_DBT_CLI and
// DBT_MCP_LOG_LEVEL on top of the file settings.
func (c *Config) ApplyEnv() {
	c.Init()
	if v := os.Getenv(EnvDbtPath); v != "" {
		c.DbtCLI.Path = v
	}
	if v := os.Getenv(EnvProjectDir); v != "" {
		c.DbtCLI.ProjectDir = v
	}
	switch strings.ToLower(os.Getenv(EnvDisableDbtCLI)) {
	case "1", "true", "yes":
		c.DbtCLI.Disabled = true
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Init applies defaults for unset sections.
func (c *Config) Init() {
	if c.DbtCLI == nil {
		c.DbtCLI = &DbtCLI{}
	}
	if c.DbtCLI.ListTimeout == 0 {
		c.DbtCLI.ListTimeout = DefaultListTimeout
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	if len(c.Tools) == 0 {
		c.Tools = append(c.Tools, "*")
	}
	if c.Logging == nil {
		c.Logging = &Logging{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.CallTimeout < 0 {
		return fmt.Errorf("invalid callTimeout %s: must not be negative", c.CallTimeout)
	}
	if c.DbtCLI == nil || c.DbtCLI.Disabled {
		return nil
	}
	if c.DbtCLI.Path == "" {
		return fmt.Errorf("dbtCli.path is required (or set %s)", EnvDbtPath)
	}
	if c.DbtCLI.ProjectDir == "" {
		return fmt.Errorf("dbtCli.projectDir is required (or set %s)", EnvProjectDir)
	}
	if c.DbtCLI.ListTimeout < 0 {
		return fmt.Errorf("invalid dbtCli.listTimeout %s: must not be negative", c.DbtCLI.ListTimeout)
	}
	return nil
}
