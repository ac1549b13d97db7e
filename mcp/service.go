package mcp

import (
	"context"
	"sync"

	"github.com/viant/dbt-mcp/mcp/config"
	"github.com/viant/dbt-mcp/mcp/dbtcli"
	"github.com/viant/fluxor/model/types"
)

// Service bundles configuration, the action services backing the tools and the
// MCP tool entries derived from them. Bootstrap lives in bootstrap.go.
type Service struct {
	config *config.Config
	runner dbtcli.Runner

	dbt      *dbtcli.Service
	services []types.Service

	// guard concurrent modifications.
	mu sync.RWMutex
	// tool entries in registration order.
	tools []toolEntry
}

// Config returns the effective configuration instance passed to the service at
// construction time.  Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Dbt returns the dbt action service, nil when the dbt CLI tools are disabled.
func (s *Service) Dbt() *dbtcli.Service { return s.dbt }

// ToolNames returns all MCP tool names registered on the service.  The
// slice is a copy and therefore safe for callers to modify.
func (s *Service) ToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.tools))
	for i, e := range s.tools {
		names[i] = e.name
	}
	return names
}

// toolEntryByName returns a pointer to the internal entry with the given name
// and a bool indicating presence.
func (s *Service) toolEntryByName(name string) (*toolEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, e := range s.tools {
		if e.name == name {
			return &s.tools[i], true
		}
	}
	return nil, false
}

// ToolMetadata returns description and input schema for a named tool when
// present. The second return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	e, ok := s.toolEntryByName(name)
	if !ok {
		return "", nil, false
	}
	return e.description, e.inputSchema, true
}

// Option modifies a service instance before it is initialised. Users can pass
// an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithRunner replaces the dbt process executor.
func WithRunner(runner dbtcli.Runner) Option {
	return func(s *Service) {
		s.runner = runner
	}
}

// New constructs a new service instance. The actual bootstrap is handled by
// init() in bootstrap.go.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig is a shorthand for New(ctx, WithConfig(cfg), opts...).
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}
