package dbtcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	profilesFileName = "profiles.yml"
	// ProfilesDirEnv optionally points at a directory holding profiles.yml.
	ProfilesDirEnv = "DBT_PROFILES_DIR"
)

const mergeTag = "!!merge"

const (
	errProfilesNotFound = "Error: Could not find profiles.yml file in project directory, ~/.dbt/, or DBT_PROFILES_DIR"
	errProfilesEmpty    = "Error: profiles.yml file is empty or invalid"
)

// Target summarises one output of a profile.
type Target struct {
	Name     string      `json:"name"`
	Type     interface{} `json:"type,omitempty"`
	Database interface{} `json:"database,omitempty"`
	Host     interface{} `json:"host,omitempty"`
	Port     interface{} `json:"port,omitempty"`
	Schema   interface{} `json:"schema,omitempty"`
}

// Profile lists the targets of a named profile and its default target.
type Profile struct {
	Targets       map[string]*Target `json:"targets"`
	DefaultTarget interface{}        `json:"default_target"`
}

// ProfilesSummary is the report produced by Profiles.Summarize.
type ProfilesSummary struct {
	ProfilesFile string              `json:"profiles_file"`
	Profiles     map[string]*Profile `json:"profiles"`
}

// Profiles locates and summarises the dbt connection profiles file.
type Profiles struct {
	fs         afs.Service
	projectDir string
}

// NewProfiles creates a profile summariser for the given project directory.
func NewProfiles(projectDir string) *Profiles {
	return &Profiles{fs: afs.New(), projectDir: projectDir}
}

// Candidates returns the profile file locations in search order: the project
// directory, ~/.dbt and $DBT_PROFILES_DIR when set.
func (p *Profiles) Candidates() []string {
	candidates := []string{filepath.Join(p.projectDir, profilesFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".dbt", profilesFileName))
	}
	if dir := os.Getenv(ProfilesDirEnv); dir != "" {
		candidates = append(candidates, filepath.Join(dir, profilesFileName))
	}
	return candidates
}

// Locate returns the first existing candidate or an empty string.
func (p *Profiles) Locate(ctx context.Context) string {
	for _, candidate := range p.Candidates() {
		if ok, err := p.fs.Exists(ctx, fileURL(candidate)); err == nil && ok {
			return candidate
		}
	}
	return ""
}

// Summarize returns the JSON report of all profiles and targets, or a
// human-readable error string. It never fails.
func (p *Profiles) Summarize(ctx context.Context) string {
	location := p.Locate(ctx)
	if location == "" {
		return errProfilesNotFound
	}
	data, err := p.fs.DownloadWithURL(ctx, fileURL(location))
	if err != nil {
		return fmt.Sprintf("Error: Failed to read profiles.yml: %v", err)
	}
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Sprintf("Error: Failed to parse profiles.yml: %v", err)
	}
	root := documentRoot(&document)
	if root == nil {
		return errProfilesEmpty
	}
	profiles, err := summarizeProfiles(root)
	if err != nil {
		return fmt.Sprintf("Error: Failed to read profiles.yml: %v", err)
	}
	var report bytes.Buffer
	encoder := json.NewEncoder(&report)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&ProfilesSummary{ProfilesFile: location, Profiles: profiles}); err != nil {
		return fmt.Sprintf("Error: Failed to read profiles.yml: %v", err)
	}
	return string(bytes.TrimSuffix(report.Bytes(), []byte("\n")))
}

// documentRoot returns the top-level node, or nil for an empty or null document
// and an empty mapping.
func documentRoot(document *yaml.Node) *yaml.Node {
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return nil
	}
	root := resolve(document.Content[0])
	switch {
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return nil
	case root.Kind == yaml.MappingNode && len(root.Content) == 0:
		return nil
	}
	return root
}

func summarizeProfiles(root *yaml.Node) (map[string]*Profile, error) {
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of profiles at line %d", root.Line)
	}
	profiles := map[string]*Profile{}
	for _, entry := range mappingPairs(root) {
		name, config := entry.key, entry.value
		if config.Kind != yaml.MappingNode {
			continue
		}
		outputs := lookup(config, "outputs")
		if outputs == nil || outputs.Kind != yaml.MappingNode {
			continue
		}
		profile := &Profile{Targets: map[string]*Target{}}
		var first string
		for j, output := range mappingPairs(outputs) {
			if j == 0 {
				first = output.key
			}
			profile.Targets[output.key] = summarizeTarget(output.key, output.value)
		}
		if explicit := lookup(config, "target"); explicit != nil {
			if err := explicit.Decode(&profile.DefaultTarget); err != nil {
				return nil, fmt.Errorf("profile %q target: %w", name, err)
			}
		} else if len(profile.Targets) > 0 {
			profile.DefaultTarget = first
		}
		profiles[name] = profile
	}
	return profiles, nil
}

func summarizeTarget(name string, node *yaml.Node) *Target {
	target := &Target{Name: name}
	if node.Kind != yaml.MappingNode {
		return target
	}
	attributes := map[string]interface{}{}
	if err := node.Decode(&attributes); err != nil {
		return target
	}
	target.Type = attributes["type"]
	// adapters name the database differently
	for _, key := range []string{"database", "dbname", "catalog"} {
		if value, ok := attributes[key]; ok {
			if isSet(value) {
				target.Database = value
			}
			break
		}
	}
	target.Host = attributes["host"]
	target.Port = attributes["port"]
	target.Schema = attributes["schema"]
	return target
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for _, entry := range mappingPairs(mapping) {
		if entry.key == key {
			return entry.value
		}
	}
	return nil
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the entries of a mapping node in document order with
// "<<" merge keys expanded. Merged entries come first; explicit keys override
// their values and, within a merged sequence, earlier mappings win.
func mappingPairs(mapping *yaml.Node) []pair {
	var merged, explicit []pair
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], resolve(mapping.Content[i+1])
		if key.Kind == yaml.ScalarNode && key.ShortTag() == mergeTag {
			merged = append(merged, mergedPairs(value)...)
			continue
		}
		explicit = append(explicit, pair{key: key.Value, value: value})
	}
	var result []pair
	index := map[string]int{}
	for _, entry := range append(merged, explicit...) {
		if i, ok := index[entry.key]; ok {
			result[i].value = entry.value
			continue
		}
		index[entry.key] = len(result)
		result = append(result, entry)
	}
	return result
}

func mergedPairs(value *yaml.Node) []pair {
	switch value.Kind {
	case yaml.MappingNode:
		return mappingPairs(value)
	case yaml.SequenceNode:
		var result []pair
		for i := len(value.Content) - 1; i >= 0; i-- {
			if item := resolve(value.Content[i]); item.Kind == yaml.MappingNode {
				result = append(result, mappingPairs(item)...)
			}
		}
		return result
	}
	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isSet(value interface{}) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case string:
		return actual != ""
	case bool:
		return actual
	case int:
		return actual != 0
	case float64:
		return actual != 0
	}
	return true
}

func fileURL(location string) string {
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return "file://" + filepath.ToSlash(location)
}
