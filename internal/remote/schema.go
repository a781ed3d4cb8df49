package remote

import "github.com/abhisek/mindscope/internal/llm"

// ResultSchema is sent to the provider as the structured-output hint. It
// sticks to the keywords every provider's native mode accepts.
var ResultSchema = &llm.Schema{
	Name:        "assessment-result",
	Description: "A psychological self-assessment report",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overall summary",
			},
			"dimensions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"score":       map[string]any{"type": "integer", "description": "0-100"},
						"description": map[string]any{"type": "string"},
					},
					"required":             []any{"name", "score", "description"},
					"additionalProperties": false,
				},
			},
			"strengths":       stringArray("distinct strengths"),
			"weaknesses":      stringArray("areas to improve"),
			"recommendations": stringArray("actionable suggestions"),
		},
		"required":             []any{"summary", "dimensions", "strengths", "weaknesses", "recommendations"},
		"additionalProperties": false,
	},
}

// resultContract is what a decoded reply must satisfy before it is
// accepted. Stricter than ResultSchema: non-empty lists, bounded scores and
// unique strengths.
var resultContract = &llm.Schema{
	Name: "assessment-result-contract",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "minLength": 1},
			"dimensions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string", "minLength": 1},
						"score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
						"description": map[string]any{"type": "string"},
					},
					"required": []any{"name", "score", "description"},
				},
			},
			"strengths": map[string]any{
				"type":        "array",
				"minItems":    1,
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "minLength": 1},
			},
			"weaknesses": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"recommendations": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []any{"summary", "dimensions", "strengths", "weaknesses", "recommendations"},
	},
}

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
}
