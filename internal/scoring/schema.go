package scoring

// responseSchema pins down the fields the shortlist engine relies on. Extra
// fields from the scoring service are allowed and ignored.
var responseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"shortlist"},
	"properties": map[string]interface{}{
		"shortlist": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"application_id"},
				"anyOf": []interface{}{
					map[string]interface{}{"required": []interface{}{"final_score"}},
					map[string]interface{}{"required": []interface{}{"ats_score"}},
				},
				"properties": map[string]interface{}{
					"application_id": map[string]interface{}{"type": "string", "minLength": 1},
					"final_score":    map[string]interface{}{"type": "number"},
					"ats_score":      map[string]interface{}{"type": "number"},
					"component_scores": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"semantic_similarity": map[string]interface{}{"type": "number"},
							"skill_match":         map[string]interface{}{"type": "number"},
							"experience_match":    map[string]interface{}{"type": "number"},
							"education_match":     map[string]interface{}{"type": "number"},
							"llm_score":           map[string]interface{}{"type": "number"},
						},
					},
					"skill_analysis": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"matching_skills":  stringArray,
							"missing_skills":   stringArray,
							"match_percentage": map[string]interface{}{"type": "number"},
						},
					},
					"llm_evaluation": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"decision":                 map[string]interface{}{"type": "string"},
							"reasoning":                map[string]interface{}{"type": "string"},
							"interview_recommendation": map[string]interface{}{"type": "string"},
							"key_strengths":            map[string]interface{}{"type": "string"},
							"development_areas":        map[string]interface{}{"type": "string"},
						},
					},
				},
			},
		},
	},
}

var stringArray = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}
