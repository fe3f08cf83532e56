package cvparse

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv_extraction.schema.json
var extractionSchema string

// SchemaError reports where the extractor output diverged from the
// extraction contract.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("cv extraction failed schema validation: %s", strings.Join(e.Fields, "; "))
}

// validateExtraction checks the raw extractor JSON against the embedded
// extraction schema before it is trusted.
func validateExtraction(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(extractionSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ParseError{Message: "schema validation could not run", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		fields = append(fields, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &SchemaError{Fields: fields}
}
