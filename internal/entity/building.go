package entity

import (
	"time"
)

// Building is the aggregate root for one listed property. Child records are
// 1:1 except leases (1:N) and are destroyed with the building.
type Building struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name"`
	Address      string    `gorm:"type:varchar(300)" json:"address"`
	RoadFrontage string    `gorm:"type:varchar(100)" json:"roadFrontage,omitempty"`

	LandInfo      *LandInfo      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"landInfo,omitempty"`
	BuildingInfo  *BuildingInfo  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"buildingInfo,omitempty"`
	PriceInfo     *PriceInfo     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"priceInfo,omitempty"`
	AnalysisScore *AnalysisScore `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"analysisScore,omitempty"`
	Leases        []Lease        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"leases"`
}

type LandInfo struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BuildingID uint `gorm:"not null;uniqueIndex" json:"buildingId"`

	AreaSqm    float64 `json:"areaSqm"`
	AreaPyeong float64 `json:"areaPyeong"`
	Zoning     string  `gorm:"type:varchar(100)" json:"zoning"`

	AssessedPricePerPyeong int64  `json:"assessedPricePerPyeong"`
	AssessedPriceTotal     int64  `json:"assessedPriceTotal"`
	LandCategory           string `gorm:"type:varchar(50)" json:"landCategory,omitempty"`
}

type BuildingInfo struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BuildingID uint `gorm:"not null;uniqueIndex" json:"buildingId"`

	TotalAreaSqm        float64 `json:"totalAreaSqm"`
	TotalAreaPyeong     float64 `json:"totalAreaPyeong"`
	FootprintAreaSqm    float64 `json:"footprintAreaSqm"`
	FootprintAreaPyeong float64 `json:"footprintAreaPyeong"`
	CoverageRatio       float64 `json:"coverageRatioPercent"`
	FloorAreaRatio      float64 `json:"floorAreaRatioPercent"`

	FloorsLabel       string     `gorm:"type:varchar(30)" json:"floorsLabel"`
	BasementFloors    int        `json:"basementFloors"`
	AboveGroundFloors int        `json:"aboveGroundFloors"`
	ParkingSpaces     int        `json:"parkingSpaces"`
	CompletionDate    *time.Time `json:"completionDate,omitempty"`
	HasElevator       bool       `json:"hasElevator"`
	StructureType     string     `gorm:"type:varchar(100)" json:"structureType,omitempty"`
	PrimaryUse        string     `gorm:"type:varchar(100)" json:"primaryUse,omitempty"`
}

type PriceInfo struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BuildingID uint `gorm:"not null;uniqueIndex" json:"buildingId"`

	SalePrice           int64   `json:"salePrice"`
	Deposit             int64   `json:"deposit"`
	MonthlyRent         int64   `json:"monthlyRent"`
	YieldPercent        float64 `json:"yieldPercent"`
	PricePerPyeong      int64   `json:"pricePerPyeong"`
	AIEstimate          int64   `json:"aiEstimate,omitempty"`
	AIEstimatePerPyeong int64   `json:"aiEstimatePerPyeong,omitempty"`
}

type Lease struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BuildingID uint `gorm:"not null;index" json:"buildingId"`

	Floor       string  `gorm:"type:varchar(30)" json:"floor"`
	Tenant      string  `gorm:"type:varchar(200)" json:"tenant"`
	AreaSqm     float64 `json:"areaSqm"`
	AreaPyeong  float64 `json:"areaPyeong"`
	Deposit     int64   `json:"deposit"`
	MonthlyRent int64   `json:"monthlyRent"`
	Notes       string  `gorm:"type:varchar(300)" json:"notes,omitempty"`
}

func (Building) TableName() string      { return "buildings" }
func (LandInfo) TableName() string      { return "land_infos" }
func (BuildingInfo) TableName() string  { return "building_infos" }
func (PriceInfo) TableName() string     { return "price_infos" }
func (Lease) TableName() string         { return "leases" }
func (AnalysisScore) TableName() string { return "analysis_scores" }
