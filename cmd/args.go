package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ArgsCmd prints the command line a dbt tool would run without running it.
type ArgsCmd struct {
	Name   string `short:"n" long:"name" positional-arg-name:"tool" description:"Tool name, e.g. show" required:"yes"`
	Inline string `short:"i" long:"input" description:"Inline JSON arguments (object)"`
	File   string `long:"file" description:"Path to JSON file with arguments (use - for stdin)"`
	JSON   bool   `long:"json" description:"Print the argument vector as JSON array"`
}

func (c *ArgsCmd) Execute(_ []string) error {
	args, err := toolInput(c.Inline, c.File)
	if err != nil {
		return err
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	dbt := svc.Dbt()
	if dbt == nil {
		return fmt.Errorf("dbt CLI tools are disabled")
	}

	var input interface{}
	if args != nil {
		input = args
	}
	inv, err := dbt.Plan(c.Name, input)
	if err != nil {
		return err
	}
	argv := append([]string{svc.Config().DbtCLI.Path}, inv.Args()...)

	if c.JSON {
		data, _ := json.Marshal(argv)
		fmt.Println(string(data))
		return nil
	}
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		quoted[i] = arg
	}
	fmt.Println(strings.Join(quoted, " "))
	if inv.Timeout > 0 {
		fmt.Printf("# timeout: %s\n", inv.Timeout)
	}
	return nil
}
