package cmd

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/viant/dbt-mcp/internal/logging"
	"github.com/viant/dbt-mcp/mcp"
	mcpconfig "github.com/viant/dbt-mcp/mcp/config"
)

var (
	cfgPath string
	options *Options

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is executed
// first.
func setConfigPath(p string) { cfgPath = p }

// setOptions remembers the root options; go-flags fills them before any
// sub-command executes.
func setOptions(o *Options) { options = o }

// loadConfig reads the config file (when given), overlays .env and environment
// variables and finally the command-line overrides.
func loadConfig() (*mcpconfig.Config, error) {
	cfg := &mcpconfig.Config{}
	if cfgPath != "" {
		var err error
		if cfg, err = mcpconfig.Load(cfgPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	if options != nil {
		if options.DbtPath != "" {
			cfg.DbtCLI.Path = options.DbtPath
		}
		if options.ProjectDir != "" {
			cfg.DbtCLI.ProjectDir = options.ProjectDir
		}
		if options.LogLevel != "" {
			cfg.Logging.Level = options.LogLevel
		}
	}
	return cfg, nil
}

// serviceSingleton initialises an mcp.Service only once and reuses the instance
// across sub-commands within the same CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		cfg, err := loadConfig()
		if err != nil {
			svcErr = err
			return
		}
		logging.New(logging.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty}, os.Stderr)
		// Pretty-print the effective config if the user asked for it via env for debug.
		if debug := os.Getenv("DBT_MCP_DEBUG_CONFIG"); debug == "1" {
			_ = json.NewEncoder(os.Stderr).Encode(cfg)
		}
		svcInst, svcErr = mcp.NewWithConfig(context.Background(), cfg)
	})
	return svcInst, svcErr
}
