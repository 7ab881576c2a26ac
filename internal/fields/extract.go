package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/numparse"
)

// ExtractListing runs the full battery over brochure text and assembles a
// listing. Fields are extracted independently; no derived consistency (e.g.
// coverage ratio vs footprint/land area) is checked. The deterministic path
// never produces analysis ratings.
func ExtractListing(text string) entity.ExtractedListing {
	floorsLabel := firstMatch(text, floorsLabelRules)
	basement, above := ParseFloors(floorsLabel)

	return entity.ExtractedListing{
		Building: entity.BuildingSummary{
			Name:         firstMatch(text, buildingNameRules),
			Address:      firstMatch(text, addressRules),
			RoadFrontage: firstMatch(text, roadFrontageRules),
		},
		LandInfo: entity.LandFields{
			AreaSqm:                numparse.ParseNumber(firstMatch(text, landAreaSqmRules)),
			AreaPyeong:             numparse.ParseNumber(firstMatch(text, landAreaPyeongRules)),
			Zoning:                 firstMatch(text, zoningRules),
			AssessedPricePerPyeong: int64(numparse.ParseNumber(firstMatch(text, assessedPerPyeongRules))),
			AssessedPriceTotal:     int64(numparse.ParseNumber(firstMatch(text, assessedTotalRules))),
		},
		BuildingInfo: entity.BuildingFields{
			TotalAreaSqm:        numparse.ParseNumber(firstMatch(text, totalAreaSqmRules)),
			TotalAreaPyeong:     numparse.ParseNumber(firstMatch(text, totalAreaPyeongRules)),
			FootprintAreaSqm:    numparse.ParseNumber(firstMatch(text, footprintSqmRules)),
			FootprintAreaPyeong: numparse.ParseNumber(firstMatch(text, footprintPyeongRules)),
			CoverageRatio:       numparse.ParseNumber(firstMatch(text, coverageRatioRules)),
			FloorAreaRatio:      numparse.ParseNumber(firstMatch(text, floorAreaRatioRules)),
			FloorsLabel:         floorsLabel,
			BasementFloors:      basement,
			AboveGroundFloors:   above,
			ParkingSpaces:       int(numparse.ParseNumber(firstMatch(text, parkingRules))),
			CompletionDate:      firstMatch(text, completionDateRules),
			HasElevator:         HasElevator(text),
		},
		PriceInfo: entity.PriceFields{
			SalePrice:      numparse.ParseKoreanWon(firstMatch(text, salePriceRules)),
			Deposit:        numparse.ParseKoreanWon(firstMatch(text, depositRules)),
			MonthlyRent:    int64(numparse.ParseNumber(firstMatch(text, monthlyRentRules))) * 10_000,
			YieldPercent:   numparse.ParseNumber(firstMatch(text, yieldRules)),
			PricePerPyeong: int64(numparse.ParseNumber(firstMatch(text, pricePerPyeongRules))) * 10_000,
			AIEstimate:     numparse.ParseKoreanWon(firstMatch(text, aiEstimateRules)),
		},
		Leases: ExtractLeases(text),
	}
}

var (
	reBasement    = regexp.MustCompile(`(?i)B(\d+)`)
	reAboveGround = regexp.MustCompile(`(?i)(\d+)F`)
)

// ParseFloors splits a scale label like "B1/4F" into basement and
// above-ground counts. The sub-patterns are independent: either may be
// absent and defaults to 0 without invalidating the other.
func ParseFloors(label string) (basement, above int) {
	if m := reBasement.FindStringSubmatch(label); m != nil {
		basement, _ = strconv.Atoi(m[1])
	}
	if m := reAboveGround.FindStringSubmatch(label); m != nil {
		above, _ = strconv.Atoi(m[1])
	}
	return basement, above
}

var reElevator = regexp.MustCompile(`승강기\s*(\S+)`)

// HasElevator inspects the token following the elevator label. Presence is
// assumed unless the token carries a "none" marker or a placeholder dash.
// No label at all means no elevator. Heuristic; unexpected tokens read as
// true.
func HasElevator(text string) bool {
	m := reElevator.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	tok := m[1]
	return !strings.Contains(tok, "-") && !strings.Contains(tok, "없")
}

// One lease row: floor label, tenant, area ㎡, area 평, deposit, rent, and
// optional Korean notes, in strict sequence. A row whose shape deviates
// (say a missing area unit) simply fails to match and is dropped.
var reLeaseRow = regexp.MustCompile(
	`(지하?\d+층|[1-9]층)\s+([가-힣a-zA-Z\s()]+?)\s+([\d.]+)㎡\s+([\d.]+)평\s+([\d,]+만?)\s+([\d,]+만?)\s*([가-힣]*)`)

// ExtractLeases scans the whole text for lease rows. Emission order is
// appearance order in the document.
func ExtractLeases(text string) []entity.LeaseRow {
	var leases []entity.LeaseRow
	for _, m := range reLeaseRow.FindAllStringSubmatch(text, -1) {
		areaSqm, _ := strconv.ParseFloat(m[3], 64)
		areaPyeong, _ := strconv.ParseFloat(m[4], 64)
		leases = append(leases, entity.LeaseRow{
			Floor:       strings.TrimSpace(m[1]),
			Tenant:      strings.TrimSpace(m[2]),
			AreaSqm:     areaSqm,
			AreaPyeong:  areaPyeong,
			Deposit:     numparse.ParseKoreanWon(m[5]),
			MonthlyRent: numparse.ParseKoreanWon(m[6]),
			Notes:       strings.TrimSpace(m[7]),
		})
	}
	return leases
}
