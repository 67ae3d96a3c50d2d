package loader

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/roach88/streamtv/internal/model"
)

// Decode parses data into an input document. In strict mode unknown
// fields are rejected.
func Decode(data []byte, f Format, strict bool) (model.Input, error) {
	var in model.Input

	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(&in); err != nil {
			return model.Input{}, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("parse YAML: %v", err), Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&in); err != nil {
			return model.Input{}, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("parse JSON: %v", err), Err: err}
		}
	}
	return in, nil
}
