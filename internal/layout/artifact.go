package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildArtifactSchema returns the JSON-Schema constraint for a per-page span
// artifact: a list of {label, text, boxes} records, page optional per item.
func buildArtifactSchema() map[string]any {
	boxProp := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "integer"},
		"minItems": 4,
		"maxItems": 4,
	}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{"type": "string", "minLength": 1},
				"text":  map[string]any{"type": "string"},
				"boxes": map[string]any{"type": "array", "items": boxProp},
				"page":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []string{"label", "text", "boxes"},
		},
	}
}

// buildExtractionSchema returns the constraint for the raw upstream form: the
// page's pixel dimensions plus the ordered token predictions.
func buildExtractionSchema() map[string]any {
	boxProp := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "integer"},
		"minItems": 4,
		"maxItems": 4,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"width":  map[string]any{"type": "integer", "minimum": 1},
			"height": map[string]any{"type": "integer", "minimum": 1},
			"predictions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":       map[string]any{"type": "string"},
						"box":        boxProp,
						"label":      map[string]any{"type": "string", "minLength": 1},
						"confidence": map[string]any{"type": "number"},
					},
					"required": []string{"word", "box", "label"},
				},
			},
			"page": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"width", "height", "predictions"},
	}
}

var (
	artifactSchema   = mustCompileSchema(buildArtifactSchema())
	extractionSchema = mustCompileSchema(buildExtractionSchema())
)

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("artifact.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	schema, err := compiler.Compile("artifact.json")
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// DecodeArtifact parses and validates a span artifact.
func DecodeArtifact(data []byte) ([]EntitySpan, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal artifact: %w", err)
	}
	if err := artifactSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("artifact does not match schema: %w", err)
	}
	var spans []EntitySpan
	if err := json.Unmarshal(data, &spans); err != nil {
		return nil, fmt.Errorf("decode spans: %w", err)
	}
	return spans, nil
}

// PageExtraction is the raw upstream form of a page artifact: one page's
// token predictions plus the pixel dimensions needed to denormalize boxes.
type PageExtraction struct {
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Predictions []TokenPrediction `json:"predictions"`
	Page        int               `json:"page,omitempty"`
}

// DecodeExtraction parses and validates a raw token-prediction artifact.
func DecodeExtraction(data []byte) (PageExtraction, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return PageExtraction{}, fmt.Errorf("unmarshal extraction: %w", err)
	}
	if err := extractionSchema.Validate(v); err != nil {
		return PageExtraction{}, fmt.Errorf("extraction does not match schema: %w", err)
	}
	var ex PageExtraction
	if err := json.Unmarshal(data, &ex); err != nil {
		return PageExtraction{}, fmt.Errorf("decode extraction: %w", err)
	}
	return ex, nil
}

// LoadArtifact reads and decodes a span artifact from disk.
func LoadArtifact(path string) ([]EntitySpan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return DecodeArtifact(data)
}

// Load reads a page artifact in either form. A JSON array is a prebuilt span
// list; a JSON object is a raw extraction whose spans are built here, gated
// by minConfidence.
func Load(path string, minConfidence float32) ([]EntitySpan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		ex, err := DecodeExtraction(data)
		if err != nil {
			return nil, err
		}
		spans := NewBuilder(ex.Width, ex.Height, minConfidence).Build(ex.Predictions)
		if ex.Page > 0 {
			for i := range spans {
				spans[i].Page = ex.Page
			}
		}
		return spans, nil
	}
	return DecodeArtifact(data)
}
