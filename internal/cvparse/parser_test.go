package cvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validExtraction = `{
  "basic_details": {"full_name": "Jane Doe", "location": "Berlin", "email": "jane@example.com", "contact_number": "+49 30 1234567"},
  "experience": [
    {"company": "Acme", "role": "Engineer", "start_date": "2020-01", "end_date": "2023-06", "summary": "Billing migration."},
    {"company": "Beta Corp", "role": "Senior Engineer", "start_date": "2023-07"}
  ],
  "education": [
    {"institution": "State University", "degree": "BSc Computer Science", "start_date": "2016", "end_date": "2020"}
  ]
}`

func TestDecodeExtraction_Valid(t *testing.T) {
	cv, err := DecodeExtraction(validExtraction)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cv.BasicDetails.FullName)
	require.Len(t, cv.Experience, 2)
	assert.Equal(t, "Acme", cv.Experience[0].Company)
	assert.Empty(t, cv.Experience[1].EndDate)
	require.Len(t, cv.Education, 1)
	assert.Equal(t, "State University", cv.Education[0].Institution)
}

func TestDecodeExtraction_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validExtraction + "\n```"
	cv, err := DecodeExtraction(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cv.BasicDetails.FullName)

	bare := "```\n" + validExtraction + "\n```"
	cv, err = DecodeExtraction(bare)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cv.BasicDetails.FullName)
}

func TestDecodeExtraction_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing required sections",
			raw:  `{"basic_details": {}}`,
		},
		{
			name: "experience entry without role",
			raw:  `{"basic_details": {}, "experience": [{"company": "Acme"}], "education": []}`,
		},
		{
			name: "unknown top-level field",
			raw:  `{"basic_details": {}, "experience": [], "education": [], "skills": []}`,
		},
		{
			name: "wrong type for experience",
			raw:  `{"basic_details": {}, "experience": "none", "education": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv, err := DecodeExtraction(tt.raw)
			assert.Nil(t, cv)
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.NotEmpty(t, schemaErr.Fields)
		})
	}
}

func TestDecodeExtraction_NotJSON(t *testing.T) {
	cv, err := DecodeExtraction("Sorry, I could not read the document.")
	assert.Nil(t, cv)
	require.Error(t, err)
}

func TestExtractText_MissingFile(t *testing.T) {
	text, err := ExtractText("/nonexistent/cv.pdf")
	assert.Empty(t, text)
	var extractErr *ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "/nonexistent/cv.pdf", extractErr.Path)
}

func TestNewParser_RequiresAPIKey(t *testing.T) {
	p, err := NewParser(t.Context(), "", "")
	assert.Nil(t, p)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripJSONFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripJSONFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripJSONFences(`  {"a": 1}  `))
}
