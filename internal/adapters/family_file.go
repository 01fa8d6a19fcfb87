package adapters

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

//go:embed defaults/families.yaml
var defaultFamilies []byte

// FamilyFileAdapter loads family definitions from YAML or TOML files. The
// format follows the file extension; anything that is not .toml is YAML.
type FamilyFileAdapter struct{}

func NewFamilyFileAdapter() FamilyFileAdapter {
	return FamilyFileAdapter{}
}

func (a FamilyFileAdapter) LoadFamilies(path string) ([]types.Family, error) {
	if strings.TrimSpace(path) == "" {
		return decodeFamilies(defaultFamilies, "yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("family file not found").
			WithCause(err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	return decodeFamilies(data, format)
}

func decodeFamilies(data []byte, format string) ([]types.Family, error) {
	var file types.FamilyFile
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse family " + format).
			WithCause(err)
	}
	return file.Families, nil
}

var _ ports.FamilySourcePort = FamilyFileAdapter{}
