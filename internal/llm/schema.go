package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hansol-kim/building-ledger/constants"
)

// BuildListingJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// fallback response must satisfy before we decode it. It pins the section
// shapes and value types but tolerates extra keys: models pad responses and
// normalization drops what we don't recognize.
func BuildListingJSONSchema() map[string]any {
	ratingProps := make(map[string]any, 25)
	for _, key := range constants.RatingKeys() {
		ratingProps[key] = map[string]any{"type": []string{"integer", "null"}}
	}

	number := map[string]any{"type": "number"}
	str := map[string]any{"type": "string"}

	return map[string]any{
		"type":     "object",
		"required": []string{"building", "landInfo", "buildingInfo", "priceInfo", "leases"},
		"properties": map[string]any{
			"building": map[string]any{
				"type":     "object",
				"required": []string{"name", "address"},
				"properties": map[string]any{
					"name":         str,
					"address":      str,
					"roadFrontage": str,
				},
			},
			"landInfo": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"areaSqm":                number,
					"areaPyeong":             number,
					"zoning":                 str,
					"assessedPricePerPyeong": number,
					"assessedPriceTotal":     number,
					"landCategory":           str,
				},
			},
			"buildingInfo": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"totalAreaSqm":          number,
					"totalAreaPyeong":       number,
					"footprintAreaSqm":      number,
					"footprintAreaPyeong":   number,
					"coverageRatioPercent":  number,
					"floorAreaRatioPercent": number,
					"floorsLabel":           str,
					"basementFloors":        number,
					"aboveGroundFloors":     number,
					"parkingSpaces":         number,
					"completionDate":        str,
					"hasElevator":           map[string]any{"type": "boolean"},
					"structureType":         str,
					"primaryUse":            str,
				},
			},
			"priceInfo": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"salePrice":           number,
					"deposit":             number,
					"monthlyRent":         number,
					"yieldPercent":        number,
					"pricePerPyeong":      number,
					"aiEstimate":          number,
					"aiEstimatePerPyeong": number,
				},
			},
			"leases": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"floor":       str,
						"tenant":      str,
						"areaSqm":     number,
						"areaPyeong":  number,
						"deposit":     number,
						"monthlyRent": number,
						"notes":       str,
						"note":        str, // model-side alias, renamed during normalization
					},
				},
			},
			"analysisScore": map[string]any{
				"type":       []string{"object", "null"},
				"properties": ratingProps,
			},
			"analysisNotes": map[string]any{
				"type":                 []string{"object", "null"},
				"additionalProperties": str,
			},
		},
	}
}

// ValidateJSONAgainstSchema validates data against schemaMap.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
