package cmd

import (
	"fmt"
	"sort"
)

// ListToolsCmd prints every registered tool with its description.
type ListToolsCmd struct{}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	names := svc.ToolNames()
	// Sorting for deterministic output (helpful for tests & scripting).
	sort.Strings(names)
	for _, name := range names {
		desc, _, _ := svc.ToolMetadata(name)
		fmt.Printf("%s\t%s\n", name, firstLine(desc))
	}
	return nil
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}
