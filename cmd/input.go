package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// toolInput decodes tool arguments supplied either inline or through a JSON
// file ("-" reads stdin). No input yields nil arguments.
func toolInput(inline, file string) (map[string]interface{}, error) {
	if inline != "" && file != "" {
		return nil, fmt.Errorf("-i/--input and --file are mutually exclusive")
	}
	var args map[string]interface{}
	switch {
	case inline != "":
		if err := json.Unmarshal([]byte(inline), &args); err != nil {
			return nil, fmt.Errorf("invalid inline JSON: %w", err)
		}
	case file != "":
		var rdr io.Reader
		if file == "-" {
			rdr = os.Stdin
		} else {
			f, err := os.Open(file)
			if err != nil {
				return nil, fmt.Errorf("open input file: %w", err)
			}
			defer f.Close()
			rdr = f
		}
		data, err := io.ReadAll(rdr)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if err := json.Unmarshal(data, &args); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	}
	return args, nil
}
