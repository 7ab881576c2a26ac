package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

func newTestRepo(t *testing.T) BuildingRepository {
	t.Helper()
	return NewBuildingRepository(newTestDB(t), nil)
}

func intp(v int) *int { return &v }

func sampleRequest() *SaveBuildingRequest {
	return &SaveBuildingRequest{
		Name:         "암사동 바이스트릿",
		Address:      "서울시 강동구 암사동 510-22",
		RoadFrontage: "8m * 6m",
		LandInfo: &entity.LandFields{
			AreaSqm:    250.3,
			AreaPyeong: 75.7,
			Zoning:     "제2종일반주거지역",
		},
		BuildingInfo: &entity.BuildingFields{
			TotalAreaSqm:      1020.5,
			FloorsLabel:       "B1/4F",
			BasementFloors:    1,
			AboveGroundFloors: 4,
			CompletionDate:    "2019.05",
			HasElevator:       true,
		},
		PriceInfo: &entity.PriceFields{
			SalePrice:   5_200_000_000,
			Deposit:     300_000_000,
			MonthlyRent: 15_000_000,
		},
		Leases: []entity.LeaseRow{
			{Floor: "1층", Tenant: "편의점", AreaSqm: 80, Deposit: 30_000_000, MonthlyRent: 2_000_000},
			{Floor: "2층", Tenant: "사무실", AreaSqm: 80, Deposit: 20_000_000, MonthlyRent: 1_500_000},
		},
		Ratings: map[string]*int{"accessibilityScore": intp(9)},
	}
}

func TestCreateAndGetBuilding(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "암사동 바이스트릿", got.Name)

	require.NotNil(t, got.LandInfo)
	assert.InDelta(t, 250.3, got.LandInfo.AreaSqm, 0.001)

	require.NotNil(t, got.BuildingInfo)
	assert.Equal(t, "B1/4F", got.BuildingInfo.FloorsLabel)
	require.NotNil(t, got.BuildingInfo.CompletionDate)
	assert.Equal(t, 2019, got.BuildingInfo.CompletionDate.Year())

	require.NotNil(t, got.PriceInfo)
	assert.Equal(t, int64(5_200_000_000), got.PriceInfo.SalePrice)

	require.Len(t, got.Leases, 2)
	assert.Equal(t, "편의점", got.Leases[0].Tenant)

	// one submitted rating of 9 lifts its 15% group mean above the default
	require.NotNil(t, got.AnalysisScore)
	require.NotNil(t, got.AnalysisScore.AccessibilityScore)
	assert.Equal(t, 9, *got.AnalysisScore.AccessibilityScore)
	assert.InDelta(t, 5.2, got.AnalysisScore.TotalScore, 0.001)
}

func TestCreateWithoutRatingsHasNoScoreRow(t *testing.T) {
	repo := newTestRepo(t)
	req := sampleRequest()
	req.Ratings = nil

	created, err := repo.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.AnalysisScore)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &SaveBuildingRequest{Name: "먼저 등록"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &SaveBuildingRequest{Name: "나중 등록"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetMissingBuilding(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdateBuilding(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRequest())
	require.NoError(t, err)

	t.Run("base fields and child upsert", func(t *testing.T) {
		got, err := repo.Update(ctx, created.ID, &SaveBuildingRequest{
			Name:      "바이스트릿 (계약완료)",
			Address:   created.Address,
			PriceInfo: &entity.PriceFields{SalePrice: 5_000_000_000},
		})
		require.NoError(t, err)
		assert.Equal(t, "바이스트릿 (계약완료)", got.Name)
		require.NotNil(t, got.PriceInfo)
		assert.Equal(t, int64(5_000_000_000), got.PriceInfo.SalePrice)
		// untouched sections survive
		require.NotNil(t, got.LandInfo)
		assert.InDelta(t, 250.3, got.LandInfo.AreaSqm, 0.001)
		require.Len(t, got.Leases, 2)
	})

	t.Run("empty lease slice clears rows", func(t *testing.T) {
		got, err := repo.Update(ctx, created.ID, &SaveBuildingRequest{
			Name:    "바이스트릿 (계약완료)",
			Address: created.Address,
			Leases:  []entity.LeaseRow{},
		})
		require.NoError(t, err)
		assert.Empty(t, got.Leases)
	})

	t.Run("missing building", func(t *testing.T) {
		_, err := repo.Update(ctx, 9999, &SaveBuildingRequest{Name: "x"})
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}

func TestDeleteBuildingCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	r := repo.(*buildingRepository)

	created, err := repo.Create(ctx, sampleRequest())
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	for _, model := range []any{&entity.LandInfo{}, &entity.BuildingInfo{}, &entity.PriceInfo{}, &entity.AnalysisScore{}, &entity.Lease{}} {
		var n int64
		require.NoError(t, r.db.Model(model).Where("building_id = ?", created.ID).Count(&n).Error)
		assert.Zero(t, n)
	}

	assert.True(t, errors.Is(repo.Delete(ctx, created.ID), common.ErrNotFound))
}

func TestLeaseAddAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &SaveBuildingRequest{Name: "테스트"})
	require.NoError(t, err)

	lease, err := repo.AddLease(ctx, created.ID, entity.LeaseRow{
		Floor: "3층", Tenant: "학원", AreaSqm: 90, MonthlyRent: 1_800_000,
	})
	require.NoError(t, err)
	require.NotZero(t, lease.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Leases, 1)
	assert.Equal(t, "학원", got.Leases[0].Tenant)

	require.NoError(t, repo.DeleteLease(ctx, lease.ID))
	assert.True(t, errors.Is(repo.DeleteLease(ctx, lease.ID), common.ErrNotFound))

	_, err = repo.AddLease(ctx, 9999, entity.LeaseRow{Floor: "1층"})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
