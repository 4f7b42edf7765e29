package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads one Homepage YAML file into T
type Loader[T any] struct {
	filePath string
	kind     string
}

// NewServicesLoader creates a loader for services.yaml
func NewServicesLoader(filePath string) *Loader[ServicesConfig] {
	return &Loader[ServicesConfig]{filePath: filePath, kind: "services"}
}

// NewBookmarksLoader creates a loader for bookmarks.yaml
func NewBookmarksLoader(filePath string) *Loader[BookmarksConfig] {
	return &Loader[BookmarksConfig]{filePath: filePath, kind: "bookmarks"}
}

// Path returns the file the loader reads
func (l *Loader[T]) Path() string {
	return l.filePath
}

// Load reads and parses the file
func (l *Loader[T]) Load() (T, error) {
	var config T

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return config, fmt.Errorf("failed to read %s file: %w", l.kind, err)
	}

	// Homepage template variables ({{HOMEPAGE_VAR_...}}) are resolved by
	// Homepage itself and are meaningless here
	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s yaml: %w", l.kind, err)
	}

	return config, nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
