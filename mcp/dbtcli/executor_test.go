package dbtcli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dbt-mcp/mcp/config"
)

// fakeDbt writes an executable shell script standing in for dbt.
func fakeDbt(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	location := filepath.Join(t.TempDir(), "dbt")
	require.NoError(t, os.WriteFile(location, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return location
}

func TestExecutor_Run(t *testing.T) {
	projectDir := t.TempDir()
	var testCases = []struct {
		description string
		script      string
		invocation  *Invocation
		expect      string
	}{
		{
			description: "arguments passed in order",
			script:      `echo "$@"`,
			invocation:  &Invocation{Command: []string{"run"}, Selector: "my_model"},
			expect:      "run --quiet --select my_model --log-format json\n",
		},
		{
			description: "stderr merged into output",
			script:      `echo out; echo err 1>&2`,
			invocation:  &Invocation{Command: []string{"parse"}},
			expect:      "out\nerr\n",
		},
		{
			description: "empty output",
			script:      `exit 0`,
			invocation:  &Invocation{Command: []string{"build"}},
			expect:      "OK",
		},
		{
			description: "non-zero exit returns output",
			script:      `echo "Compilation Error"; exit 2`,
			invocation:  &Invocation{Command: []string{"compile"}},
			expect:      "Compilation Error\n",
		},
		{
			description: "runs inside project directory",
			script:      `pwd`,
			invocation:  &Invocation{Command: []string{"list"}},
			expect:      projectDir + "\n",
		},
	}

	for _, testCase := range testCases {
		executor := NewExecutor(&config.DbtCLI{Path: fakeDbt(t, testCase.script), ProjectDir: projectDir})
		actual, err := executor.Run(context.Background(), testCase.invocation)
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestExecutor_RunTimeout(t *testing.T) {
	executor := NewExecutor(&config.DbtCLI{Path: fakeDbt(t, `exec sleep 30`), ProjectDir: t.TempDir()})

	start := time.Now()
	output, err := executor.Run(context.Background(), &Invocation{Command: []string{"list"}, Timeout: 200 * time.Millisecond})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, output)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestExecutor_RunMissingExecutable(t *testing.T) {
	executor := NewExecutor(&config.DbtCLI{Path: filepath.Join(t.TempDir(), "missing-dbt"), ProjectDir: t.TempDir()})

	_, err := executor.Run(context.Background(), &Invocation{Command: []string{"run"}})

	assert.ErrorContains(t, err, "failed to run")
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestExecutor_RunCanceled(t *testing.T) {
	executor := NewExecutor(&config.DbtCLI{Path: fakeDbt(t, `exec sleep 30`), ProjectDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := executor.Run(ctx, &Invocation{Command: []string{"run"}})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimedOut(t *testing.T) {
	killed := errors.New("signal: killed")
	testCases := []struct {
		description string
		runErr      error
		ctxErr      error
		expect      bool
	}{
		{description: "killed at deadline", runErr: killed, ctxErr: context.DeadlineExceeded, expect: true},
		{description: "clean exit racing the deadline", runErr: nil, ctxErr: context.DeadlineExceeded, expect: false},
		{description: "non-zero exit in time", runErr: killed, ctxErr: nil, expect: false},
		{description: "canceled", runErr: killed, ctxErr: context.Canceled, expect: false},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, timedOut(testCase.runErr, testCase.ctxErr), testCase.description)
	}
}
