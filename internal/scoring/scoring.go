// Package scoring converts a sparse set of per-criterion ratings into the
// single weighted investment score stored on a building.
package scoring

import (
	"math"

	"github.com/hansol-kim/building-ledger/constants"
)

// ComputeTotalScore computes the weighted total for a sparse rating map.
// Missing or nil criteria count as constants.DefaultRating, each category's
// ratings are averaged, category means are combined by their fixed weights
// (which sum to 1.00), and the result is rounded to 2 decimal places.
//
// The function is pure: callers re-invoke it over the full rating set on
// every rating write rather than patching the stored total.
func ComputeTotalScore(ratings map[string]*int) float64 {
	var total float64
	for _, group := range constants.RatingGroups {
		sum := 0
		for _, key := range group.Keys {
			if v, ok := ratings[key]; ok && v != nil {
				sum += *v
			} else {
				sum += constants.DefaultRating
			}
		}
		mean := float64(sum) / float64(len(group.Keys))
		total += mean * group.Weight
	}
	return math.Round(total*100) / 100
}

// YieldRating maps a gross yield percentage to a rating. Thresholds follow
// the office-building market convention that 3.5% is a strong yield.
func YieldRating(yieldPercent float64) int {
	switch {
	case yieldPercent >= 3.5:
		return 10
	case yieldPercent >= 3.0:
		return 8
	case yieldPercent >= 2.5:
		return 6
	case yieldPercent >= 2.0:
		return 4
	default:
		return 2
	}
}

// BuildingAgeRating maps a building's age in years to a rating.
func BuildingAgeRating(ageYears int) int {
	switch {
	case ageYears <= 5:
		return 10
	case ageYears <= 10:
		return 8
	case ageYears <= 20:
		return 6
	case ageYears <= 30:
		return 4
	default:
		return 2
	}
}

// AIEstimateRating compares the asking price against the model-estimated
// value. An estimate at or above the asking price is the best case; each
// 10% shortfall drops one tier.
func AIEstimateRating(salePrice, aiEstimate int64) int {
	if salePrice <= 0 {
		return constants.DefaultRating
	}
	if aiEstimate >= salePrice {
		return 10
	}
	diff := float64(salePrice-aiEstimate) / float64(salePrice) * 100
	switch {
	case diff < 10:
		return 8
	case diff < 20:
		return 6
	case diff < 30:
		return 4
	default:
		return 2
	}
}
