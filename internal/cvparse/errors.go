package cvparse

import "fmt"

// ExtractError indicates the PDF text extraction failed.
type ExtractError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cv extract error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("cv extract error for %s: %s", e.Path, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// APICallError indicates the extraction model call failed.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cv parse API error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cv parse API error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the model output could not be turned into a
// structured CV, either as JSON or against the extraction schema.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cv parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cv parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
