package catalog

// fileSchema is the JSON Schema for catalog override files. Structural
// rules that span tables (known node ids, category codes) are checked
// afterwards by validate.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"nodes": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"label":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "label"},
				"additionalProperties": false,
			},
		},
		"categories": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code":   map[string]any{"type": "string", "minLength": 1},
					"name":   map[string]any{"type": "string", "minLength": 1},
					"stride": map[string]any{"type": "string", "minLength": 1},
					"color":  map[string]any{"type": "string"},
				},
				"required":             []any{"code", "name", "stride"},
				"additionalProperties": false,
			},
		},
		"threats": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "minLength": 1},
					"category": map[string]any{"type": "string", "minLength": 1},
					"nodes": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string"},
					},
					"prompt":     map[string]any{"type": "string", "minLength": 1},
					"mitigation": map[string]any{"type": "string", "minLength": 1},
					"distractors": map[string]any{
						"type":     "array",
						"minItems": ChoiceCount - 1,
						"maxItems": ChoiceCount - 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"hint": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "category", "nodes", "prompt", "mitigation", "distractors"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"nodes", "categories", "threats"},
	"additionalProperties": false,
}
