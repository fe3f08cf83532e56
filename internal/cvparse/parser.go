// Package cvparse implements the CV-parse collaborator: PDF text
// extraction, LLM structured extraction, and schema validation of the
// result. Callers treat it as opaque; a failure only means the candidate
// falls back to manual entry.
package cvparse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/talenthq/onboarding-engine/internal/types"
)

// DefaultModel is the extraction model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// extractionPrompt instructs the model to emit only the extraction JSON.
const extractionPrompt = `You are extracting structured data from a CV. Return ONLY a JSON object with this exact shape, no prose and no markdown fences:

{
  "basic_details": {"full_name": "", "location": "", "email": "", "contact_number": ""},
  "experience": [{"company": "", "role": "", "start_date": "", "end_date": "", "summary": ""}],
  "education": [{"institution": "", "degree": "", "start_date": "", "end_date": ""}]
}

Omit fields you cannot find rather than guessing. Dates as written in the CV. CV text follows:

%s`

// Parser extracts a structured CV from a PDF file.
type Parser struct {
	client *genai.Client
	model  string
}

// NewParser creates a Gemini-backed parser.
func NewParser(ctx context.Context, apiKey, model string) (*Parser, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}
	return &Parser{client: client, model: model}, nil
}

// Close releases the underlying client.
func (p *Parser) Close() error {
	return p.client.Close()
}

// Parse extracts a structured CV from the PDF at path: text extraction,
// model extraction, schema validation, then unmarshal.
func (p *Parser) Parse(ctx context.Context, path string) (*types.ParsedCV, error) {
	text, err := ExtractText(path)
	if err != nil {
		return nil, err
	}

	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.1) // extraction wants determinism
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractionPrompt, text)))
	if err != nil {
		return nil, &APICallError{Message: "failed to generate extraction", Cause: err}
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return DecodeExtraction(raw)
}

// DecodeExtraction validates raw extractor JSON against the extraction
// schema and unmarshals it. Split out from Parse so it can be tested
// without a live model.
func DecodeExtraction(raw string) (*types.ParsedCV, error) {
	raw = stripJSONFences(raw)

	if err := validateExtraction(raw); err != nil {
		return nil, err
	}

	var cv types.ParsedCV
	if err := json.Unmarshal([]byte(raw), &cv); err != nil {
		return nil, &ParseError{Message: "failed to parse extraction JSON", Cause: err}
	}
	return &cv, nil
}

// responseText flattens the model response into a single string.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ParseError{Message: "empty model response"}
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", &ParseError{Message: "model response contained no text"}
	}
	return out, nil
}

// stripJSONFences removes markdown code fences some models wrap around
// JSON output.
func stripJSONFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
