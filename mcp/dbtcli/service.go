package dbtcli

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/viant/dbt-mcp/internal/conv"
	"github.com/viant/dbt-mcp/mcp/config"
	"github.com/viant/dbt-mcp/mcp/prompts"
	"github.com/viant/fluxor/model/types"
)

// Name is the action service name of the dbt tool set.
const Name = "dbt"

// Tool names exposed by the service.
const (
	MethodBuild       = "build"
	MethodCompile     = "compile"
	MethodDocs        = "docs"
	MethodList        = "list"
	MethodParse       = "parse"
	MethodRun         = "run"
	MethodTest        = "test"
	MethodShow        = "show"
	MethodGetProfiles = "get_profiles"
)

// ListTimeoutMessage replaces the output of a dbt list that did not finish in time.
const ListTimeoutMessage = "Timeout: dbt list command took too long to complete. " +
	"Try using a more specific selector to narrow down the list of models."

// SelectorInput is accepted by commands operating on a node selection.
type SelectorInput struct {
	// Selector limits the command to the selected nodes (--select).
	Selector string `json:"selector,omitempty"`
	// Target overrides the profile target (--target).
	Target string `json:"target,omitempty"`
}

// TargetInput is accepted by commands operating on the whole project.
type TargetInput struct {
	// Target overrides the profile target (--target).
	Target string `json:"target,omitempty"`
}

// ShowInput is accepted by dbt show.
type ShowInput struct {
	// SQLQuery is the inline query to preview.
	SQLQuery string `json:"sql_query"`
	// Limit caps returned rows unless the query has its own limit; zero omits it.
	Limit int `json:"limit,omitempty"`
	// Target overrides the profile target (--target).
	Target string `json:"target,omitempty"`
}

// ProfilesInput is accepted by get_profiles, which takes no arguments.
type ProfilesInput struct{}

// Argument holds the description of one input property.
type Argument struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// method describes one tool: its signature and how it turns an input into an
// invocation or a direct result.
type method struct {
	name      string
	input     reflect.Type
	arguments []Argument
	plan      func(input interface{}) (*Invocation, error)
	call      func(ctx context.Context, input interface{}) (string, error)
}

// Service exposes dbt CLI commands as actions. Every call builds a fresh
// invocation; nothing is shared between calls.
type Service struct {
	config   *config.DbtCLI
	runner   Runner
	profiles *Profiles
	methods  map[string]*method
	sigs     types.Signatures
}

// Option customises the service.
type Option func(*Service)

// WithRunner replaces the process executor, mostly for tests.
func WithRunner(runner Runner) Option {
	return func(s *Service) {
		s.runner = runner
	}
}

// New creates the dbt action service for the supplied configuration.
func New(cfg *config.DbtCLI, opts ...Option) *Service {
	s := &Service{
		config:   cfg,
		profiles: NewProfiles(cfg.ProjectDir),
		methods:  map[string]*method{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = NewExecutor(cfg)
	}

	selector := Argument{Name: "selector", Type: "string", Description: prompts.Get("dbt_cli/args/selectors")}
	target := Argument{Name: "target", Type: "string", Description: prompts.Get("dbt_cli/args/target")}
	selectorInput := reflect.TypeOf(&SelectorInput{})
	targetInput := reflect.TypeOf(&TargetInput{})

	s.register(&method{name: MethodBuild, input: selectorInput, arguments: []Argument{selector, target}, plan: s.selection("build")})
	s.register(&method{name: MethodCompile, input: selectorInput, arguments: []Argument{selector, target}, plan: s.selection("compile")})
	s.register(&method{name: MethodDocs, input: targetInput, arguments: []Argument{target}, plan: s.project("docs", "generate")})
	s.register(&method{name: MethodList, input: selectorInput, arguments: []Argument{selector, target}, plan: s.list})
	s.register(&method{name: MethodParse, input: targetInput, arguments: []Argument{target}, plan: s.project("parse")})
	s.register(&method{name: MethodRun, input: selectorInput, arguments: []Argument{selector, target}, plan: s.selection("run")})
	s.register(&method{name: MethodTest, input: selectorInput, arguments: []Argument{selector, target}, plan: s.selection("test")})
	s.register(&method{
		name:  MethodShow,
		input: reflect.TypeOf(&ShowInput{}),
		arguments: []Argument{
			{Name: "sql_query", Type: "string", Description: prompts.Get("dbt_cli/args/sql_query"), Required: true},
			{Name: "limit", Type: "integer", Description: prompts.Get("dbt_cli/args/limit")},
			target,
		},
		plan: s.show,
	})
	s.register(&method{
		name:  MethodGetProfiles,
		input: reflect.TypeOf(&ProfilesInput{}),
		call: func(ctx context.Context, _ interface{}) (string, error) {
			return s.profiles.Summarize(ctx), nil
		},
	})
	return s
}

func (s *Service) register(m *method) {
	s.methods[m.name] = m
	s.sigs = append(s.sigs, types.Signature{
		Name:        m.name,
		Description: prompts.Get("dbt_cli/" + m.name),
		Input:       m.input,
		Output:      reflect.TypeOf(""),
	})
}

func (s *Service) Name() string { return Name }

func (s *Service) Methods() types.Signatures { return s.sigs }

// Arguments returns property descriptions of the named method input.
func (s *Service) Arguments(name string) []Argument {
	if m, ok := s.methods[name]; ok {
		return m.arguments
	}
	return nil
}

// Method returns an executable writing the command output into a *string.
func (s *Service) Method(name string) (types.Executable, error) {
	m, ok := s.methods[name]
	if !ok {
		return nil, types.NewMethodNotFoundError(name)
	}
	return func(ctx context.Context, input, output interface{}) error {
		text, err := s.call(ctx, m, input)
		if err != nil {
			return err
		}
		switch actual := output.(type) {
		case *string:
			*actual = text
		case *interface{}:
			*actual = text
		case nil:
		default:
			return fmt.Errorf("unsupported output type %T for %s", output, name)
		}
		return nil
	}, nil
}

// Call runs the named method and returns its text result.
func (s *Service) Call(ctx context.Context, name string, input interface{}) (string, error) {
	m, ok := s.methods[name]
	if !ok {
		return "", types.NewMethodNotFoundError(name)
	}
	return s.call(ctx, m, input)
}

// Plan returns the invocation the named method would run for input without
// running it.
func (s *Service) Plan(name string, input interface{}) (*Invocation, error) {
	m, ok := s.methods[name]
	if !ok {
		return nil, types.NewMethodNotFoundError(name)
	}
	if m.plan == nil {
		return nil, fmt.Errorf("%s does not run dbt", name)
	}
	return m.plan(input)
}

func (s *Service) call(ctx context.Context, m *method, input interface{}) (string, error) {
	if m.call != nil {
		return m.call(ctx, input)
	}
	inv, err := m.plan(input)
	if err != nil {
		return "", err
	}
	output, err := s.runner.Run(ctx, inv)
	if err != nil && m.name == MethodList && errors.Is(err, ErrTimeout) {
		return ListTimeoutMessage, nil
	}
	return output, err
}

func (s *Service) selection(command ...string) func(interface{}) (*Invocation, error) {
	return func(input interface{}) (*Invocation, error) {
		in := &SelectorInput{}
		if err := conv.Decode(input, in); err != nil {
			return nil, err
		}
		return &Invocation{Command: command, Selector: in.Selector, Target: in.Target}, nil
	}
}

func (s *Service) project(command ...string) func(interface{}) (*Invocation, error) {
	return func(input interface{}) (*Invocation, error) {
		in := &TargetInput{}
		if err := conv.Decode(input, in); err != nil {
			return nil, err
		}
		return &Invocation{Command: command, Target: in.Target}, nil
	}
}

func (s *Service) list(input interface{}) (*Invocation, error) {
	inv, err := s.selection("list")(input)
	if err != nil {
		return nil, err
	}
	inv.Timeout = s.config.ListTimeout
	if inv.Timeout == 0 {
		inv.Timeout = config.DefaultListTimeout
	}
	return inv, nil
}

func (s *Service) show(input interface{}) (*Invocation, error) {
	in := &ShowInput{}
	if err := conv.Decode(input, in); err != nil {
		return nil, err
	}
	if in.SQLQuery == "" {
		return nil, fmt.Errorf("sql_query is required")
	}
	return &Invocation{Command: ShowCommand(in.SQLQuery, in.Limit), Target: in.Target}, nil
}
