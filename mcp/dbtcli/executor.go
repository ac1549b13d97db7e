package dbtcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/viant/dbt-mcp/mcp/config"
)

// ErrTimeout is returned when dbt does not exit within the invocation timeout.
var ErrTimeout = errors.New("dbt command timed out")

// emptyOutput is returned when dbt exits without writing anything.
const emptyOutput = "OK"

// defaultWaitDelay bounds how long Run waits for output pipes after the child
// has been killed; grandchildren may keep them open.
const defaultWaitDelay = 2 * time.Second

// Runner runs dbt invocations and returns their combined output.
type Runner interface {
	Run(ctx context.Context, inv *Invocation) (string, error)
}

// Executor runs dbt as a child process of the current one.
type Executor struct {
	path       string
	projectDir string
	waitDelay  time.Duration
}

// NewExecutor creates an executor for the configured dbt executable and project.
func NewExecutor(cfg *config.DbtCLI) *Executor {
	return &Executor{
		path:       cfg.Path,
		projectDir: cfg.ProjectDir,
		waitDelay:  defaultWaitDelay,
	}
}

// Run launches dbt with the invocation arguments inside the project directory,
// merging stderr into stdout. A non-zero exit status is not an error: the
// output is returned as is. ErrTimeout is returned when the invocation
// timeout expires, in which case the child is killed.
func (e *Executor) Run(ctx context.Context, inv *Invocation) (string, error) {
	execCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := inv.Args()
	cmd := exec.CommandContext(execCtx, e.path, args...)
	cmd.Dir = e.projectDir
	cmd.WaitDelay = e.waitDelay

	// Same writer for both streams: exec shares one pipe and keeps ordering.
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if timedOut(err, execCtx.Err()) {
		log.Warn().
			Strs("args", args).
			Dur("timeout", inv.Timeout).
			Msg("dbt command timed out")
		return "", fmt.Errorf("%w after %s", ErrTimeout, duration.Round(time.Millisecond))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to run %s: %w", e.path, err)
		}
		exitCode = exitErr.ExitCode()
	}

	log.Debug().
		Str("command", e.path).
		Strs("args", args).
		Int("exit_code", exitCode).
		Dur("duration", duration).
		Msg("dbt command executed")

	if output.Len() == 0 {
		return emptyOutput, nil
	}
	return output.String(), nil
}

// timedOut reports whether a run failed because its deadline expired. A child
// that exited cleanly keeps its output even if the deadline passed meanwhile.
func timedOut(runErr, ctxErr error) bool {
	return runErr != nil && errors.Is(ctxErr, context.DeadlineExceeded)
}
