package entity

// ExtractedListing is the transient result of parsing one brochure. It is
// returned to the caller to seed a creation form and is never persisted
// itself; only the Building aggregate built from it is.
type ExtractedListing struct {
	Building      BuildingSummary   `json:"building"`
	LandInfo      LandFields        `json:"landInfo"`
	BuildingInfo  BuildingFields    `json:"buildingInfo"`
	PriceInfo     PriceFields       `json:"priceInfo"`
	Leases        []LeaseRow        `json:"leases"`
	AnalysisScore map[string]*int   `json:"analysisScore,omitempty"`
	AnalysisNotes map[string]string `json:"analysisNotes,omitempty"`
}

type BuildingSummary struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	RoadFrontage string `json:"roadFrontage,omitempty"`
}

type LandFields struct {
	AreaSqm    float64 `json:"areaSqm"`
	AreaPyeong float64 `json:"areaPyeong"`
	Zoning     string  `json:"zoning"`
	// Government-assessed land valuation, distinct from the asking price.
	AssessedPricePerPyeong int64  `json:"assessedPricePerPyeong"`
	AssessedPriceTotal     int64  `json:"assessedPriceTotal"`
	LandCategory           string `json:"landCategory,omitempty"`
}

type BuildingFields struct {
	TotalAreaSqm        float64 `json:"totalAreaSqm"`
	TotalAreaPyeong     float64 `json:"totalAreaPyeong"`
	FootprintAreaSqm    float64 `json:"footprintAreaSqm"`
	FootprintAreaPyeong float64 `json:"footprintAreaPyeong"`
	CoverageRatio       float64 `json:"coverageRatioPercent"`
	FloorAreaRatio      float64 `json:"floorAreaRatioPercent"`
	FloorsLabel         string  `json:"floorsLabel"` // e.g. "B1/4F"
	BasementFloors      int     `json:"basementFloors"`
	AboveGroundFloors   int     `json:"aboveGroundFloors"`
	ParkingSpaces       int     `json:"parkingSpaces"`
	CompletionDate      string  `json:"completionDate,omitempty"`
	HasElevator         bool    `json:"hasElevator"`
	StructureType       string  `json:"structureType,omitempty"`
	PrimaryUse          string  `json:"primaryUse,omitempty"`
}

type PriceFields struct {
	SalePrice           int64   `json:"salePrice"`
	Deposit             int64   `json:"deposit"`
	MonthlyRent         int64   `json:"monthlyRent"`
	YieldPercent        float64 `json:"yieldPercent"`
	PricePerPyeong      int64   `json:"pricePerPyeong"`
	AIEstimate          int64   `json:"aiEstimate,omitempty"`
	AIEstimatePerPyeong int64   `json:"aiEstimatePerPyeong,omitempty"`
}

// LeaseRow is one occupied unit, in brochure row order.
type LeaseRow struct {
	Floor       string  `json:"floor"`
	Tenant      string  `json:"tenant"`
	AreaSqm     float64 `json:"areaSqm"`
	AreaPyeong  float64 `json:"areaPyeong"`
	Deposit     int64   `json:"deposit"`
	MonthlyRent int64   `json:"monthlyRent"`
	Notes       string  `json:"notes,omitempty"`
}
