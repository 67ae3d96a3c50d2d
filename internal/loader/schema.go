package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// CheckSchema unifies the raw document with the embedded #Input
// definition and returns every mismatch. name labels positions in
// messages.
func CheckSchema(data []byte, f Format, name string) []error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeGeneric, Message: "embedded schema does not compile", Err: err}}
	}

	var doc cue.Value
	switch f {
	case FormatYAML:
		var raw any
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return []error{&LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("parse YAML: %v", err), Err: err}}
		}
		doc = cctx.Encode(raw)
	default:
		doc = cctx.CompileBytes(data, cue.Filename(name))
	}
	if err := doc.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeDecode, Message: err.Error(), Err: err}}
	}

	v := schema.LookupPath(cue.ParsePath("#Input")).Unify(doc)
	err := v.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []error
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		errs = append(errs, &LoadError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf(format, args...),
			Path:    schemaPath(e.Path()),
			Err:     e,
		})
	}
	if len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Err: err})
	}
	return errs
}

// schemaPath renders a CUE error path relative to the document root,
// dropping the definition selector the document was unified under.
func schemaPath(sel []string) string {
	if len(sel) > 0 && strings.HasPrefix(sel[0], "#") {
		sel = sel[1:]
	}
	return strings.Join(sel, ".")
}
