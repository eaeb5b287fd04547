package locator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// labelMapFile is the on-disk shape of a label mapping table:
//
//	labels:
//	  Username: user-name-input
//	  Password: pass-word-input
type labelMapFile struct {
	Labels map[string]string `yaml:"labels"`
}

// LoadLabelMap reads a label-text to element-id mapping table from a
// YAML file. A missing path returns an empty map rather than an error so
// the resolver can run without a mapping table; a malformed file is an
// error.
func LoadLabelMap(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read label map %s: %w", path, err)
	}

	var file labelMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse label map %s: %w", path, err)
	}

	if file.Labels == nil {
		file.Labels = map[string]string{}
	}
	return file.Labels, nil
}
