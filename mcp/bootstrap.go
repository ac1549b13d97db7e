package mcp

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/viant/dbt-mcp/mcp/config"
	"github.com/viant/dbt-mcp/mcp/dbtcli"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied.
func (s *Service) init(_ context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.initDbtService()
	s.buildToolRegistry()

	log.Debug().
		Strs("tools", s.ToolNames()).
		Msg("registered tools")
	return nil
}

// initDefaults applies fall-back values for optional settings that were not
// supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	s.config.Init()
}

// initDbtService creates the dbt action service unless the dbt CLI tools are
// disabled.
func (s *Service) initDbtService() {
	if s.config.DbtCLI.Disabled {
		return
	}
	var opts []dbtcli.Option
	if s.runner != nil {
		opts = append(opts, dbtcli.WithRunner(s.runner))
	}
	s.dbt = dbtcli.New(s.config.DbtCLI, opts...)
	s.services = append(s.services, s.dbt)
}

// buildToolRegistry converts every enabled method of the registered action
// services into a tool entry.
func (s *Service) buildToolRegistry() {
	for _, svc := range s.services {
		s.addToolEntries(serviceToToolEntries(svc, s.enabled))
	}
}
