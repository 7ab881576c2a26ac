package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/scoring"
)

// UpsertScore merges a sparse rating submission into the building's score
// record and recomputes the weighted total from the full rating set.
// Unknown keys are ignored; an explicit null clears a rating.
func (r *buildingRepository) UpsertScore(ctx context.Context, buildingID uint, ratings map[string]*int) (*entity.AnalysisScore, error) {
	if _, err := r.Get(ctx, buildingID); err != nil {
		return nil, err
	}

	var score entity.AnalysisScore
	err := r.db.WithContext(ctx).Where("building_id = ?", buildingID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		score = entity.AnalysisScore{BuildingID: buildingID}
	} else if err != nil {
		return nil, fmt.Errorf("load analysis score for building %d: %w", buildingID, err)
	}

	score.ApplyRatings(ratings)
	score.TotalScore = scoring.ComputeTotalScore(score.RatingMap())

	if err := r.db.WithContext(ctx).Save(&score).Error; err != nil {
		return nil, fmt.Errorf("save analysis score for building %d: %w", buildingID, err)
	}
	r.logger.Info("repository.score.upserted",
		"building_id", buildingID, "total_score", score.TotalScore)
	return &score, nil
}
