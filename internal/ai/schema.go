package ai

import "encoding/json"

const planSchemaName = "workout_plan"

// planSchema constrains the completion to the planWire shape GeneratePlan
// decodes: summary figures plus exactly the three ordered session blocks.
var planSchema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "summary": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "est_total_minutes": {"type": "integer"},
        "est_total_kcal": {"type": "integer"}
      },
      "required": ["title", "est_total_minutes", "est_total_kcal"]
    },
    "blocks": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "kind": {"type": "string", "enum": ["warmup", "main", "cooldown"]},
          "est_minutes": {"type": "integer"},
          "est_kcal": {"type": "integer"},
          "exercises": {
            "type": "array",
            "maxItems": 3,
            "items": {
              "type": "object",
              "additionalProperties": false,
              "properties": {
                "name": {"type": "string"},
                "sets": {"type": "integer"},
                "reps": {"type": "string"},
                "rest": {"type": "string"},
                "intensity": {"type": "string"},
                "notes": {"type": "string"}
              },
              "required": ["name", "sets", "reps", "rest", "intensity", "notes"]
            }
          }
        },
        "required": ["kind", "est_minutes", "est_kcal", "exercises"]
      }
    }
  },
  "required": ["summary", "blocks"]
}`)
