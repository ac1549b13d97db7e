package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ExecCmd executes a registered tool from the CLI.  Arguments can be supplied
// either inline via -i/--input or loaded from a JSON file via --file.
type ExecCmd struct {
	Name       string `short:"n" long:"name" positional-arg-name:"tool" description:"Tool name, e.g. run" required:"yes"`
	Inline     string `short:"i" long:"input" description:"Inline JSON arguments (object)"`
	File       string `long:"file" description:"Path to JSON file with arguments (use - for stdin)"`
	TimeoutSec int    `long:"timeout" description:"Seconds to wait for completion (0 uses callTimeout from config)"`
	JSON       bool   `long:"json" description:"Print result as JSON string"`
}

func (c *ExecCmd) Execute(_ []string) error {
	args, err := toolInput(c.Inline, c.File)
	if err != nil {
		return err
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = svc.Config().CallTimeout
	}
	out, err := svc.ExecuteTool(context.Background(), c.Name, args, timeout)
	if err != nil {
		return err
	}

	if c.JSON {
		data, _ := json.Marshal(out)
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(out)
	return nil
}
