// ABOUTME: YAML loader for operator-supplied reference tables
// ABOUTME: Strictly decodes and validates table files before they reach a calculator

package reference

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/markalston/evse-calc/backend/models"
	"gopkg.in/yaml.v3"
)

// LoadFile reads reference tables from a YAML file.
func LoadFile(path string) (*models.ReferenceData, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open reference directory: %w", err)
	}
	defer root.Close()

	f, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes reference tables from YAML. Unknown fields are rejected and the
// decoded tables must pass validation.
func Load(r io.Reader) (*models.ReferenceData, error) {
	var data models.ReferenceData

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse reference YAML: %w", err)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return &data, nil
}

// LoadOrDefault loads tables from path, or returns the built-in tables when
// path is empty.
func LoadOrDefault(path string) (*models.ReferenceData, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Marshal encodes tables as YAML, suitable as a starting point for an override file.
func Marshal(data *models.ReferenceData) ([]byte, error) {
	return yaml.Marshal(data)
}
