package dbtcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvocation_Args(t *testing.T) {
	var testCases = []struct {
		description string
		invocation  Invocation
		expect      []string
	}{
		{description: "build", invocation: Invocation{Command: []string{"build"}}, expect: []string{"build", "--quiet", "--log-format", "json"}},
		{description: "compile", invocation: Invocation{Command: []string{"compile"}}, expect: []string{"compile", "--quiet", "--log-format", "json"}},
		{description: "run", invocation: Invocation{Command: []string{"run"}}, expect: []string{"run", "--quiet", "--log-format", "json"}},
		{description: "test", invocation: Invocation{Command: []string{"test"}}, expect: []string{"test", "--quiet", "--log-format", "json"}},
		{description: "parse", invocation: Invocation{Command: []string{"parse"}}, expect: []string{"parse", "--quiet", "--log-format", "json"}},
		{description: "docs generate", invocation: Invocation{Command: []string{"docs", "generate"}}, expect: []string{"docs", "--quiet", "generate", "--log-format", "json"}},
		{description: "list is not quiet", invocation: Invocation{Command: []string{"list"}}, expect: []string{"list", "--log-format", "json"}},
		{
			description: "selector",
			invocation:  Invocation{Command: []string{"run"}, Selector: "my_model"},
			expect:      []string{"run", "--quiet", "--select", "my_model", "--log-format", "json"},
		},
		{
			description: "selector and target split on spaces",
			invocation:  Invocation{Command: []string{"build"}, Selector: "+orders tag:nightly", Target: "prod"},
			expect:      []string{"build", "--quiet", "--select", "+orders", "tag:nightly", "--target", "prod", "--log-format", "json"},
		},
		{
			description: "consecutive spaces keep empty tokens",
			invocation:  Invocation{Command: []string{"list"}, Selector: "a  b"},
			expect:      []string{"list", "--select", "a", "", "b", "--log-format", "json"},
		},
		{
			description: "docs with target",
			invocation:  Invocation{Command: []string{"docs", "generate"}, Target: "dev"},
			expect:      []string{"docs", "--quiet", "generate", "--target", "dev", "--log-format", "json"},
		},
		{
			description: "show keeps its tokens",
			invocation:  Invocation{Command: ShowCommand("select 1", 0), Target: "dev"},
			expect:      []string{"show", "--inline", "select 1", "--favor-state", "--output", "json", "--target", "dev", "--log-format", "json"},
		},
	}

	for _, testCase := range testCases {
		actual := testCase.invocation.Args()
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestInvocation_ArgsDoesNotMutateCommand(t *testing.T) {
	command := []string{"docs", "generate"}
	inv := &Invocation{Command: command, Selector: "x"}
	_ = inv.Args()
	_ = inv.Args()
	assert.EqualValues(t, []string{"docs", "generate"}, command)
}

func TestShowCommand(t *testing.T) {
	var testCases = []struct {
		description string
		sql         string
		limit       int
		expect      []string
	}{
		{
			description: "uppercase LIMIT in query",
			sql:         "SELECT * FROM my_model LIMIT 10",
			expect:      []string{"show", "--inline", "SELECT * FROM my_model LIMIT 10", "--favor-state", "--limit", "-1", "--output", "json"},
		},
		{
			description: "lowercase limit in query",
			sql:         "select * from my_model limit 5",
			expect:      []string{"show", "--inline", "select * from my_model limit 5", "--favor-state", "--limit", "-1", "--output", "json"},
		},
		{
			description: "query limit wins over parameter",
			sql:         "select * from my_model limit 5",
			limit:       100,
			expect:      []string{"show", "--inline", "select * from my_model limit 5", "--favor-state", "--limit", "-1", "--output", "json"},
		},
		{
			description: "limit parameter",
			sql:         "SELECT * FROM my_model",
			limit:       10,
			expect:      []string{"show", "--inline", "SELECT * FROM my_model", "--favor-state", "--limit", "10", "--output", "json"},
		},
		{
			description: "no limit",
			sql:         "SELECT * FROM my_model",
			expect:      []string{"show", "--inline", "SELECT * FROM my_model", "--favor-state", "--output", "json"},
		},
		{
			description: "word limit inside identifier still matches",
			sql:         "select credit_limit from accounts",
			limit:       3,
			expect:      []string{"show", "--inline", "select credit_limit from accounts", "--favor-state", "--limit", "-1", "--output", "json"},
		},
	}

	for _, testCase := range testCases {
		actual := ShowCommand(testCase.sql, testCase.limit)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}
