// Package seed loads user-authored recipes from a YAML file at startup.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the seed recipes file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the recipes file. A missing file yields an empty
// result, the seed file is optional.
func (l *Loader) Load() (RecipesFile, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RecipesFile{}, nil
		}
		return RecipesFile{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	// ${VAR} references are expanded so thumbnails can point at a
	// deployment-specific host
	data = []byte(os.ExpandEnv(string(data)))

	var file RecipesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RecipesFile{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return file, nil
}
