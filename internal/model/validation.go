package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	if err := validateSchema(op.RequestBody); err != nil {
		return fmt.Errorf("model builder: invalid request body: %w", err)
	}
	return nil
}

func validateSchema(schema pkgopenapi.Schema) error {
	if schema.Type != "" && schema.Type != "object" {
		return fmt.Errorf("request body must be an object, got %q", schema.Type)
	}
	for name, prop := range schema.Properties {
		if prop.Type == "object" || prop.Type == "array" {
			return fmt.Errorf("property %q: nested %s values are not supported", name, prop.Type)
		}
		if prop.MinLength != nil && prop.MaxLength != nil && *prop.MinLength > *prop.MaxLength {
			return fmt.Errorf("property %q: minLength %d exceeds maxLength %d", name, *prop.MinLength, *prop.MaxLength)
		}
	}
	return nil
}
