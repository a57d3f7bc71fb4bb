package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Catalog is a shareable file of generator definitions
//
//	generators:
//	  - title: BOM
//	    command: xsltproc -o "%O.csv" "bom2csv.xsl" "%I"
type Catalog struct {
	Generators []Target `json:"generators" yaml:"generators"`
}

// LoadCatalog reads a generator catalog. The format follows the file
// extension: .json and .jsonc accept comments and trailing commas, .yaml and
// .yml are YAML.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read generator catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes catalog data for the given file extension
func ParseCatalog(data []byte, ext string) (*Catalog, error) {
	var catalog Catalog

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json", "jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse generator catalog: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse generator catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported generator catalog format %q", ext)
	}

	for i, g := range catalog.Generators {
		if strings.TrimSpace(g.Title) == "" {
			return nil, fmt.Errorf("generator %d has no title", i+1)
		}
		if strings.TrimSpace(g.Command) == "" {
			return nil, fmt.Errorf("generator %q has no command", g.Title)
		}
	}

	return &catalog, nil
}
