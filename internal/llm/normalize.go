package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hansol-kim/building-ledger/constants"
	"github.com/hansol-kim/building-ledger/internal/entity"
)

var reFencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// IsolateJSON locates the single JSON object expected inside a model
// response. It strips an optional ``` fence, then cuts from the first "{"
// to the last "}" to shed any surrounding prose. Returns "" when no object
// is present.
func IsolateJSON(text string) string {
	text = strings.TrimSpace(text)
	if m := reFencedJSON.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	open := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if open < 0 || end < open {
		return ""
	}
	return text[open : end+1]
}

// Wire-side payload types. Money fields decode as float64 because models
// frequently emit them with a fractional part; they are truncated to won.
type leasePayload struct {
	Floor       string  `json:"floor"`
	Tenant      string  `json:"tenant"`
	AreaSqm     float64 `json:"areaSqm"`
	AreaPyeong  float64 `json:"areaPyeong"`
	Deposit     float64 `json:"deposit"`
	MonthlyRent float64 `json:"monthlyRent"`
	Notes       string  `json:"notes"`
	Note        string  `json:"note"` // alias some responses use; folded into Notes
}

type pricePayload struct {
	SalePrice           float64 `json:"salePrice"`
	Deposit             float64 `json:"deposit"`
	MonthlyRent         float64 `json:"monthlyRent"`
	YieldPercent        float64 `json:"yieldPercent"`
	PricePerPyeong      float64 `json:"pricePerPyeong"`
	AIEstimate          float64 `json:"aiEstimate"`
	AIEstimatePerPyeong float64 `json:"aiEstimatePerPyeong"`
}

type landPayload struct {
	AreaSqm                float64 `json:"areaSqm"`
	AreaPyeong             float64 `json:"areaPyeong"`
	Zoning                 string  `json:"zoning"`
	AssessedPricePerPyeong float64 `json:"assessedPricePerPyeong"`
	AssessedPriceTotal     float64 `json:"assessedPriceTotal"`
	LandCategory           string  `json:"landCategory"`
}

type buildingInfoPayload struct {
	TotalAreaSqm        float64 `json:"totalAreaSqm"`
	TotalAreaPyeong     float64 `json:"totalAreaPyeong"`
	FootprintAreaSqm    float64 `json:"footprintAreaSqm"`
	FootprintAreaPyeong float64 `json:"footprintAreaPyeong"`
	CoverageRatio       float64 `json:"coverageRatioPercent"`
	FloorAreaRatio      float64 `json:"floorAreaRatioPercent"`
	FloorsLabel         string  `json:"floorsLabel"`
	BasementFloors      float64 `json:"basementFloors"`
	AboveGroundFloors   float64 `json:"aboveGroundFloors"`
	ParkingSpaces       float64 `json:"parkingSpaces"`
	CompletionDate      string  `json:"completionDate"`
	HasElevator         bool    `json:"hasElevator"`
	StructureType       string  `json:"structureType"`
	PrimaryUse          string  `json:"primaryUse"`
}

type listingPayload struct {
	Building      entity.BuildingSummary `json:"building"`
	LandInfo      landPayload            `json:"landInfo"`
	BuildingInfo  buildingInfoPayload    `json:"buildingInfo"`
	PriceInfo     pricePayload           `json:"priceInfo"`
	Leases        []leasePayload         `json:"leases"`
	AnalysisScore map[string]*int        `json:"analysisScore"`
	AnalysisNotes map[string]string      `json:"analysisNotes"`
}

// ParseListingResponse isolates the JSON block from a model response,
// validates it against the listing schema, and normalizes it into the same
// shape the deterministic path produces. Unrecognized rating keys are
// dropped; a lease "note" field is folded into "notes".
func ParseListingResponse(raw []byte) (entity.ExtractedListing, error) {
	jsonStr := IsolateJSON(string(raw))
	if jsonStr == "" {
		return entity.ExtractedListing{}, fmt.Errorf("no JSON object in model response: %s", Excerpt(string(raw), 200))
	}

	if err := ValidateJSONAgainstSchema(BuildListingJSONSchema(), []byte(jsonStr)); err != nil {
		return entity.ExtractedListing{}, fmt.Errorf("model response failed schema validation: %w (response: %s)", err, Excerpt(jsonStr, 200))
	}

	var p listingPayload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return entity.ExtractedListing{}, fmt.Errorf("decode model response: %w (response: %s)", err, Excerpt(jsonStr, 200))
	}

	leases := make([]entity.LeaseRow, 0, len(p.Leases))
	for _, l := range p.Leases {
		notes := l.Notes
		if notes == "" {
			notes = l.Note
		}
		leases = append(leases, entity.LeaseRow{
			Floor:       l.Floor,
			Tenant:      l.Tenant,
			AreaSqm:     l.AreaSqm,
			AreaPyeong:  l.AreaPyeong,
			Deposit:     int64(l.Deposit),
			MonthlyRent: int64(l.MonthlyRent),
			Notes:       notes,
		})
	}

	var ratings map[string]*int
	if len(p.AnalysisScore) > 0 {
		ratings = make(map[string]*int, len(p.AnalysisScore))
		for key, val := range p.AnalysisScore {
			if constants.IsRatingKey(key) {
				ratings[key] = val
			}
		}
	}
	var notes map[string]string
	if len(p.AnalysisNotes) > 0 {
		notes = make(map[string]string, len(p.AnalysisNotes))
		for key, val := range p.AnalysisNotes {
			if constants.IsRatingKey(key) && val != "" {
				notes[key] = val
			}
		}
	}

	return entity.ExtractedListing{
		Building: p.Building,
		LandInfo: entity.LandFields{
			AreaSqm:                p.LandInfo.AreaSqm,
			AreaPyeong:             p.LandInfo.AreaPyeong,
			Zoning:                 p.LandInfo.Zoning,
			AssessedPricePerPyeong: int64(p.LandInfo.AssessedPricePerPyeong),
			AssessedPriceTotal:     int64(p.LandInfo.AssessedPriceTotal),
			LandCategory:           p.LandInfo.LandCategory,
		},
		BuildingInfo: entity.BuildingFields{
			TotalAreaSqm:        p.BuildingInfo.TotalAreaSqm,
			TotalAreaPyeong:     p.BuildingInfo.TotalAreaPyeong,
			FootprintAreaSqm:    p.BuildingInfo.FootprintAreaSqm,
			FootprintAreaPyeong: p.BuildingInfo.FootprintAreaPyeong,
			CoverageRatio:       p.BuildingInfo.CoverageRatio,
			FloorAreaRatio:      p.BuildingInfo.FloorAreaRatio,
			FloorsLabel:         p.BuildingInfo.FloorsLabel,
			BasementFloors:      int(p.BuildingInfo.BasementFloors),
			AboveGroundFloors:   int(p.BuildingInfo.AboveGroundFloors),
			ParkingSpaces:       int(p.BuildingInfo.ParkingSpaces),
			CompletionDate:      p.BuildingInfo.CompletionDate,
			HasElevator:         p.BuildingInfo.HasElevator,
			StructureType:       p.BuildingInfo.StructureType,
			PrimaryUse:          p.BuildingInfo.PrimaryUse,
		},
		PriceInfo: entity.PriceFields{
			SalePrice:           int64(p.PriceInfo.SalePrice),
			Deposit:             int64(p.PriceInfo.Deposit),
			MonthlyRent:         int64(p.PriceInfo.MonthlyRent),
			YieldPercent:        p.PriceInfo.YieldPercent,
			PricePerPyeong:      int64(p.PriceInfo.PricePerPyeong),
			AIEstimate:          int64(p.PriceInfo.AIEstimate),
			AIEstimatePerPyeong: int64(p.PriceInfo.AIEstimatePerPyeong),
		},
		Leases:        leases,
		AnalysisScore: ratings,
		AnalysisNotes: notes,
	}, nil
}

// Excerpt truncates s for inclusion in error messages and logs.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
