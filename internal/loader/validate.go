package loader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/streamtv/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
	})
	return validate
}

// jsonName reports fields by their document name.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// messages for the tags used by model.
var messages = map[string]string{
	"required": "is required",
	"gte":      "must be greater than or equal to %s",
	"oneof":    "must be one of: %s",
}

// Validate checks the decoded document's structural rules and returns one
// error per violated field.
func Validate(in *model.Input) []error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{&LoadError{Code: ErrCodeInvalid, Message: err.Error(), Err: err}}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &LoadError{
			Code:    ErrCodeInvalid,
			Message: translate(fe),
			Path:    documentPath(fe.Namespace()),
		})
	}
	return errs
}

func translate(fe validator.FieldError) string {
	tmpl, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, fe.Param())
	}
	return tmpl
}

// documentPath turns "Input.actions[3].credentials.name" into
// "actions.3.credentials.name".
func documentPath(ns string) string {
	_, ns, _ = strings.Cut(ns, ".")
	r := strings.NewReplacer("[", ".", "]", "")
	return r.Replace(ns)
}
