package entity

import "time"

// AnalysisScore holds the per-criterion investment ratings for a building.
// Nil means the criterion could not be judged; the scoring engine fills it
// with the neutral default. TotalScore is a derived cache, recomputed on
// every rating write and never set by callers directly.
type AnalysisScore struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	BuildingID uint      `gorm:"not null;uniqueIndex" json:"buildingId"`
	UpdatedAt  time.Time `json:"updatedAt"`

	AccessibilityScore     *int `json:"accessibilityScore"`
	TransportScore         *int `json:"transportScore"`
	DevelopmentPlanScore   *int `json:"developmentPlanScore"`
	BuildingSizeScore      *int `json:"buildingSizeScore"`
	StructureScore         *int `json:"structureScore"`
	BuildingAgeScore       *int `json:"buildingAgeScore"`
	MaintenanceScore       *int `json:"maintenanceScore"`
	IllegalBuildingScore   *int `json:"illegalBuildingScore"`
	HarmfulFacilityScore   *int `json:"harmfulFacilityScore"`
	ConstructionLimitScore *int `json:"constructionLimitScore"`
	SalesComparisonScore   *int `json:"salesComparisonScore"`
	MarketPriceScore       *int `json:"marketPriceScore"`
	AIEstimateScore        *int `gorm:"column:ai_estimate_score" json:"aiEstimateScore"`
	LandPriceGrowthScore   *int `json:"landPriceGrowthScore"`
	RentalStabilityScore   *int `json:"rentalStabilityScore"`
	OperatingCostScore     *int `json:"operatingCostScore"`
	TaxScore               *int `json:"taxScore"`
	YieldScore             *int `json:"yieldScore"`
	VacancyScore           *int `json:"vacancyScore"`
	UsageChangeScore       *int `json:"usageChangeScore"`
	NewConstructionScore   *int `json:"newConstructionScore"`
	RemodelingScore        *int `json:"remodelingScore"`
	AdditionalInvestScore  *int `json:"additionalInvestScore"`
	ProfitabilityScore     *int `json:"profitabilityScore"`
	VacatingScore          *int `json:"vacatingScore"`

	TotalScore float64 `json:"totalScore"`
}

// fieldRef returns the pointer cell for a criterion key, or nil for an
// unrecognized key.
func (s *AnalysisScore) fieldRef(key string) **int {
	switch key {
	case "accessibilityScore":
		return &s.AccessibilityScore
	case "transportScore":
		return &s.TransportScore
	case "developmentPlanScore":
		return &s.DevelopmentPlanScore
	case "buildingSizeScore":
		return &s.BuildingSizeScore
	case "structureScore":
		return &s.StructureScore
	case "buildingAgeScore":
		return &s.BuildingAgeScore
	case "maintenanceScore":
		return &s.MaintenanceScore
	case "illegalBuildingScore":
		return &s.IllegalBuildingScore
	case "harmfulFacilityScore":
		return &s.HarmfulFacilityScore
	case "constructionLimitScore":
		return &s.ConstructionLimitScore
	case "salesComparisonScore":
		return &s.SalesComparisonScore
	case "marketPriceScore":
		return &s.MarketPriceScore
	case "aiEstimateScore":
		return &s.AIEstimateScore
	case "landPriceGrowthScore":
		return &s.LandPriceGrowthScore
	case "rentalStabilityScore":
		return &s.RentalStabilityScore
	case "operatingCostScore":
		return &s.OperatingCostScore
	case "taxScore":
		return &s.TaxScore
	case "yieldScore":
		return &s.YieldScore
	case "vacancyScore":
		return &s.VacancyScore
	case "usageChangeScore":
		return &s.UsageChangeScore
	case "newConstructionScore":
		return &s.NewConstructionScore
	case "remodelingScore":
		return &s.RemodelingScore
	case "additionalInvestScore":
		return &s.AdditionalInvestScore
	case "profitabilityScore":
		return &s.ProfitabilityScore
	case "vacatingScore":
		return &s.VacatingScore
	}
	return nil
}

// RatingMap flattens the record into a sparse criterion -> rating map.
func (s *AnalysisScore) RatingMap() map[string]*int {
	m := make(map[string]*int, 25)
	for key := range ratingKeys {
		if ref := s.fieldRef(key); ref != nil && *ref != nil {
			m[key] = *ref
		}
	}
	return m
}

// ApplyRatings copies recognized keys from a sparse submission onto the
// record. Unrecognized keys are silently ignored; a present key with a nil
// value clears that rating.
func (s *AnalysisScore) ApplyRatings(ratings map[string]*int) {
	for key, val := range ratings {
		if ref := s.fieldRef(key); ref != nil {
			*ref = val
		}
	}
}

// ratingKeys mirrors constants.RatingDescriptions without importing it, to
// keep entity free of upward dependencies.
var ratingKeys = map[string]struct{}{
	"accessibilityScore": {}, "transportScore": {}, "developmentPlanScore": {},
	"buildingSizeScore": {}, "structureScore": {}, "buildingAgeScore": {}, "maintenanceScore": {},
	"illegalBuildingScore": {}, "harmfulFacilityScore": {}, "constructionLimitScore": {},
	"salesComparisonScore": {}, "marketPriceScore": {}, "aiEstimateScore": {}, "landPriceGrowthScore": {},
	"rentalStabilityScore": {}, "operatingCostScore": {}, "taxScore": {}, "yieldScore": {}, "vacancyScore": {},
	"usageChangeScore": {}, "newConstructionScore": {}, "remodelingScore": {},
	"additionalInvestScore": {}, "profitabilityScore": {}, "vacatingScore": {},
}
