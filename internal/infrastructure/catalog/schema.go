package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/unimatch/backend/internal/domain"
)

// documentSchema describes a catalog document as it appears on disk or over the wire
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["institutions"],
  "properties": {
    "institutions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "area", "fields", "tuitionRange"],
        "properties": {
          "id":              {"type": "string", "minLength": 1, "pattern": "^[A-Za-z0-9_-]+$"},
          "name":            {"type": "string", "minLength": 1},
          "logo":            {"type": "string"},
          "type":            {"enum": ["university", "college", "mechina"]},
          "location":        {"type": "string"},
          "area":            {"enum": ["north", "haifa", "center", "tel-aviv", "jerusalem", "south", "sharon", "shfela"]},
          "description":     {"type": "string"},
          "fields":          {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
          "studyFormats":    {"type": "array", "items": {"enum": ["frontal", "online", "hybrid"]}},
          "studyTimes":      {"type": "array", "items": {"enum": ["morning", "evening", "flexible"]}},
          "tuitionRange":    {"enum": ["low", "medium", "high", "premium"]},
          "minBagrut":       {"type": "number", "minimum": 0, "maximum": 120},
          "minPsychometric": {"type": "number", "minimum": 0, "maximum": 800},
          "acceptsMechina":  {"type": "boolean"},
          "rating":          {"type": "number", "minimum": 0, "maximum": 5},
          "studentsCount":   {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateDocument checks a decoded document against documentSchema
func validateDocument(doc interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", domain.ErrCatalogInvalid, strings.Join(errs, "; "))
	}

	return nil
}
