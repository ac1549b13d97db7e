package dbtcli

import (
	"strconv"
	"strings"
	"time"
)

// quietCommands lists dbt commands that get --quiet right after the command
// token to keep the output small.
var quietCommands = map[string]bool{
	"build":   true,
	"compile": true,
	"docs":    true,
	"parse":   true,
	"run":     true,
	"test":    true,
}

// Invocation describes a single dbt call.
type Invocation struct {
	// Command holds the base command tokens, e.g. ["run"] or ["docs", "generate"].
	Command []string
	// Selector, when non-empty, is split on single spaces and appended as
	// --select <tokens...>.
	Selector string
	// Target, when non-empty, is split on single spaces and appended as
	// --target <tokens...>.
	Target string
	// Timeout bounds the wait for the child process. Zero waits until exit.
	Timeout time.Duration
}

// Args returns the argument vector passed to the dbt executable (without the
// executable itself). --log-format json always closes the vector.
func (i *Invocation) Args() []string {
	args := make([]string, 0, len(i.Command)+6)
	args = append(args, i.Command...)
	if i.Selector != "" {
		args = append(args, "--select")
		args = append(args, strings.Split(i.Selector, " ")...)
	}
	if i.Target != "" {
		args = append(args, "--target")
		args = append(args, strings.Split(i.Target, " ")...)
	}
	if len(args) > 0 && quietCommands[args[0]] {
		spliced := make([]string, 0, len(args)+3)
		spliced = append(spliced, args[0], "--quiet")
		args = append(spliced, args[1:]...)
	}
	return append(args, "--log-format", "json")
}

// ShowCommand builds the base tokens for dbt show.
//
// A query mentioning "limit" anywhere (case-insensitive) is assumed to carry
// its own row limit, so --limit -1 disables the one dbt would add. Otherwise a
// non-zero limit is passed through and zero omits the flag.
func ShowCommand(sqlQuery string, limit int) []string {
	command := []string{"show", "--inline", sqlQuery, "--favor-state"}
	switch {
	case strings.Contains(strings.ToLower(sqlQuery), "limit"):
		command = append(command, "--limit", "-1")
	case limit != 0:
		command = append(command, "--limit", strconv.Itoa(limit))
	}
	return append(command, "--output", "json")
}
