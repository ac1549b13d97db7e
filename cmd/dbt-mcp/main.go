package main

import (
	"os"

	"github.com/viant/dbt-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
