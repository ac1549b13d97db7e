package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config     string `short:"f" long:"config" description:"dbt MCP service configuration YAML/JSON path"`
	DbtPath    string `long:"dbt-path" description:"dbt executable (overrides DBT_PATH and config)"`
	ProjectDir string `long:"project-dir" description:"dbt project directory (overrides DBT_PROJECT_DIR and config)"`
	LogLevel   string `long:"log-level" description:"log level: debug, info, warn, error"`

	ListTools *ListToolsCmd `command:"list-tools" description:"List all registered tools"`
	Tool      *ToolCmd      `command:"tool"       description:"Show detailed info about one MCP tool"`
	Exec      *ExecCmd      `command:"exec"       description:"Execute a tool locally and print its output"`
	Args      *ArgsCmd      `command:"args"       description:"Print the dbt argument vector a tool would run"`
	Serve     *ServeCmd     `command:"serve"      description:"Start MCP server exposing the dbt tools"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "args":
		o.Args = &ArgsCmd{}
	case "serve":
		o.Serve = &ServeCmd{}
	}
}
