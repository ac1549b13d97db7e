package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractConfigPath(t *testing.T) {
	var testCases = []struct {
		args   []string
		expect string
	}{
		{args: []string{"serve", "-f", "dbt.yaml"}, expect: "dbt.yaml"},
		{args: []string{"--config", "/etc/dbt-mcp.yaml", "list-tools"}, expect: "/etc/dbt-mcp.yaml"},
		{args: []string{"exec", "--config=cfg.yaml", "-n", "run"}, expect: "cfg.yaml"},
		{args: []string{"serve", "-f"}, expect: ""},
		{args: nil, expect: ""},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, extractConfigPath(testCase.args), "%v", testCase.args)
	}
}

func TestToolInput(t *testing.T) {
	args, err := toolInput(`{"selector":"my_model"}`, "")
	require.NoError(t, err)
	assert.EqualValues(t, map[string]interface{}{"selector": "my_model"}, args)

	location := filepath.Join(t.TempDir(), "args.json")
	require.NoError(t, os.WriteFile(location, []byte(`{"sql_query":"select 1","limit":3}`), 0o644))
	args, err = toolInput("", location)
	require.NoError(t, err)
	assert.EqualValues(t, "select 1", args["sql_query"])

	args, err = toolInput("", "")
	require.NoError(t, err)
	assert.Nil(t, args)

	_, err = toolInput("{}", location)
	assert.EqualError(t, err, "-i/--input and --file are mutually exclusive")
	_, err = toolInput("{", "")
	assert.ErrorContains(t, err, "invalid inline JSON")
}

func TestLoadConfig(t *testing.T) {
	location := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte("dbtCli:\n  path: dbt\n  projectDir: /srv/file\n"), 0o644))
	t.Setenv("DBT_PATH", "")
	t.Setenv("DBT_PROJECT_DIR", "/srv/env")
	t.Setenv("DISABLE_DBT_CLI", "")
	t.Setenv("DBT_MCP_LOG_LEVEL", "")

	setConfigPath(location)
	setOptions(&Options{DbtPath: "/opt/dbt/bin/dbt", LogLevel: "debug"})
	defer func() {
		setConfigPath("")
		setOptions(nil)
	}()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.EqualValues(t, "/opt/dbt/bin/dbt", cfg.DbtCLI.Path)
	assert.EqualValues(t, "/srv/env", cfg.DbtCLI.ProjectDir)
	assert.EqualValues(t, "debug", cfg.Logging.Level)
}

func TestFirstLine(t *testing.T) {
	assert.EqualValues(t, "a", firstLine("a\nb"))
	assert.EqualValues(t, "single", firstLine("single"))
}
