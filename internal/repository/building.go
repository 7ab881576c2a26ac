package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/scoring"
)

// SaveBuildingRequest wraps one create or update submission. Nil sections
// are left untouched on update and omitted on create; a nil Leases slice
// keeps existing rows while an empty one clears them.
type SaveBuildingRequest struct {
	Name         string
	Address      string
	RoadFrontage string

	LandInfo     *entity.LandFields
	BuildingInfo *entity.BuildingFields
	PriceInfo    *entity.PriceFields
	Leases       []entity.LeaseRow
	Ratings      map[string]*int
}

type BuildingRepository interface {
	List(ctx context.Context) ([]entity.Building, error)
	Get(ctx context.Context, id uint) (*entity.Building, error)
	Create(ctx context.Context, req *SaveBuildingRequest) (*entity.Building, error)
	Update(ctx context.Context, id uint, req *SaveBuildingRequest) (*entity.Building, error)
	Delete(ctx context.Context, id uint) error

	AddLease(ctx context.Context, buildingID uint, row entity.LeaseRow) (*entity.Lease, error)
	DeleteLease(ctx context.Context, leaseID uint) error

	UpsertScore(ctx context.Context, buildingID uint, ratings map[string]*int) (*entity.AnalysisScore, error)
}

type buildingRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBuildingRepository(db *gorm.DB, logger *slog.Logger) BuildingRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &buildingRepository{db: db, logger: logger}
}

func (r *buildingRepository) List(ctx context.Context) ([]entity.Building, error) {
	var buildings []entity.Building
	err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		Order("created_at DESC, id DESC").
		Find(&buildings).Error
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

func (r *buildingRepository) Get(ctx context.Context, id uint) (*entity.Building, error) {
	var b entity.Building
	err := r.db.WithContext(ctx).Preload(clause.Associations).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("building %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get building %d: %w", id, err)
	}
	return &b, nil
}

func (r *buildingRepository) Create(ctx context.Context, req *SaveBuildingRequest) (*entity.Building, error) {
	b := entity.Building{
		Name:         req.Name,
		Address:      req.Address,
		RoadFrontage: req.RoadFrontage,
	}
	if req.LandInfo != nil {
		b.LandInfo = landInfoFromFields(req.LandInfo)
	}
	if req.BuildingInfo != nil {
		b.BuildingInfo = buildingInfoFromFields(req.BuildingInfo)
	}
	if req.PriceInfo != nil {
		b.PriceInfo = priceInfoFromFields(req.PriceInfo)
	}
	for _, row := range req.Leases {
		b.Leases = append(b.Leases, leaseFromRow(row))
	}
	if len(req.Ratings) > 0 {
		score := &entity.AnalysisScore{}
		score.ApplyRatings(req.Ratings)
		score.TotalScore = scoring.ComputeTotalScore(score.RatingMap())
		b.AnalysisScore = score
	}

	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}
	r.logger.Info("repository.building.created",
		"building_id", b.ID, "name", b.Name, "leases", len(b.Leases))
	return r.Get(ctx, b.ID)
}

func (r *buildingRepository) Update(ctx context.Context, id uint, req *SaveBuildingRequest) (*entity.Building, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":          req.Name,
			"address":       req.Address,
			"road_frontage": req.RoadFrontage,
		}
		if err := tx.Model(&entity.Building{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update building %d: %w", id, err)
		}

		if req.LandInfo != nil {
			land := landInfoFromFields(req.LandInfo)
			land.BuildingID = id
			if err := upsertChild(tx, land); err != nil {
				return fmt.Errorf("upsert land info: %w", err)
			}
		}
		if req.BuildingInfo != nil {
			info := buildingInfoFromFields(req.BuildingInfo)
			info.BuildingID = id
			if err := upsertChild(tx, info); err != nil {
				return fmt.Errorf("upsert building info: %w", err)
			}
		}
		if req.PriceInfo != nil {
			price := priceInfoFromFields(req.PriceInfo)
			price.BuildingID = id
			if err := upsertChild(tx, price); err != nil {
				return fmt.Errorf("upsert price info: %w", err)
			}
		}
		if req.Leases != nil {
			if err := tx.Where("building_id = ?", id).Delete(&entity.Lease{}).Error; err != nil {
				return fmt.Errorf("replace leases: %w", err)
			}
			for _, row := range req.Leases {
				lease := leaseFromRow(row)
				lease.BuildingID = id
				if err := tx.Create(&lease).Error; err != nil {
					return fmt.Errorf("replace leases: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(req.Ratings) > 0 {
		if _, err := r.UpsertScore(ctx, id, req.Ratings); err != nil {
			return nil, err
		}
	}
	r.logger.Info("repository.building.updated", "building_id", id)
	return r.Get(ctx, id)
}

// upsertChild writes a 1:1 child record keyed by its building_id unique
// index, replacing the existing row if one is present.
func upsertChild(tx *gorm.DB, child any) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "building_id"}},
		UpdateAll: true,
	}).Create(child).Error
}

func (r *buildingRepository) Delete(ctx context.Context, id uint) error {
	b, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(b).Error; err != nil {
		return fmt.Errorf("delete building %d: %w", id, err)
	}
	r.logger.Info("repository.building.deleted", "building_id", id)
	return nil
}

func (r *buildingRepository) AddLease(ctx context.Context, buildingID uint, row entity.LeaseRow) (*entity.Lease, error) {
	if _, err := r.Get(ctx, buildingID); err != nil {
		return nil, err
	}
	lease := leaseFromRow(row)
	lease.BuildingID = buildingID
	if err := r.db.WithContext(ctx).Create(&lease).Error; err != nil {
		return nil, fmt.Errorf("add lease: %w", err)
	}
	return &lease, nil
}

func (r *buildingRepository) DeleteLease(ctx context.Context, leaseID uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Lease{}, leaseID)
	if res.Error != nil {
		return fmt.Errorf("delete lease %d: %w", leaseID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lease %d: %w", leaseID, common.ErrNotFound)
	}
	return nil
}

func landInfoFromFields(f *entity.LandFields) *entity.LandInfo {
	return &entity.LandInfo{
		AreaSqm:                f.AreaSqm,
		AreaPyeong:             f.AreaPyeong,
		Zoning:                 f.Zoning,
		AssessedPricePerPyeong: f.AssessedPricePerPyeong,
		AssessedPriceTotal:     f.AssessedPriceTotal,
		LandCategory:           f.LandCategory,
	}
}

func buildingInfoFromFields(f *entity.BuildingFields) *entity.BuildingInfo {
	return &entity.BuildingInfo{
		TotalAreaSqm:        f.TotalAreaSqm,
		TotalAreaPyeong:     f.TotalAreaPyeong,
		FootprintAreaSqm:    f.FootprintAreaSqm,
		FootprintAreaPyeong: f.FootprintAreaPyeong,
		CoverageRatio:       f.CoverageRatio,
		FloorAreaRatio:      f.FloorAreaRatio,
		FloorsLabel:         f.FloorsLabel,
		BasementFloors:      f.BasementFloors,
		AboveGroundFloors:   f.AboveGroundFloors,
		ParkingSpaces:       f.ParkingSpaces,
		CompletionDate:      parseCompletionDate(f.CompletionDate),
		HasElevator:         f.HasElevator,
		StructureType:       f.StructureType,
		PrimaryUse:          f.PrimaryUse,
	}
}

func priceInfoFromFields(f *entity.PriceFields) *entity.PriceInfo {
	return &entity.PriceInfo{
		SalePrice:           f.SalePrice,
		Deposit:             f.Deposit,
		MonthlyRent:         f.MonthlyRent,
		YieldPercent:        f.YieldPercent,
		PricePerPyeong:      f.PricePerPyeong,
		AIEstimate:          f.AIEstimate,
		AIEstimatePerPyeong: f.AIEstimatePerPyeong,
	}
}

func leaseFromRow(row entity.LeaseRow) entity.Lease {
	return entity.Lease{
		Floor:       row.Floor,
		Tenant:      row.Tenant,
		AreaSqm:     row.AreaSqm,
		AreaPyeong:  row.AreaPyeong,
		Deposit:     row.Deposit,
		MonthlyRent: row.MonthlyRent,
		Notes:       row.Notes,
	}
}

// completionDateLayouts covers the date shapes brochures actually carry,
// from a full date down to a bare year.
var completionDateLayouts = []string{
	"2006-01-02", "2006.01.02", "2006.01", "2006-01", "2006",
}

func parseCompletionDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range completionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
