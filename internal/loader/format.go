package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, &LoadError{
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path)),
		}
	}
}
