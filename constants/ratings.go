package constants

// Rating scale for analysis criteria. The brochure analysis prompt and the
// manual scoring form use the same 1-10 integer scale; DefaultRating fills
// criteria that could not be judged.
const (
	RatingMin     = 1
	RatingMax     = 10
	DefaultRating = 5
)

// RatingGroup is one weighted category of the investment score.
type RatingGroup struct {
	Name   string
	Weight float64
	Keys   []string
}

// RatingGroups is the canonical grouping of all analysis criteria.
// Weights sum to 1.00.
var RatingGroups = []RatingGroup{
	{
		Name:   "locationTransport",
		Weight: 0.15,
		Keys:   []string{"accessibilityScore", "transportScore", "developmentPlanScore"},
	},
	{
		Name:   "buildingCondition",
		Weight: 0.10,
		Keys:   []string{"buildingSizeScore", "structureScore", "buildingAgeScore", "maintenanceScore"},
	},
	{
		Name:   "legalReview",
		Weight: 0.10,
		Keys:   []string{"illegalBuildingScore", "harmfulFacilityScore", "constructionLimitScore"},
	},
	{
		Name:   "salesComparison",
		Weight: 0.15,
		Keys:   []string{"salesComparisonScore"},
	},
	{
		Name:   "marketPrice",
		Weight: 0.10,
		Keys:   []string{"marketPriceScore"},
	},
	{
		Name:   "aiEstimate",
		Weight: 0.10,
		Keys:   []string{"aiEstimateScore"},
	},
	{
		Name:   "landPriceGrowth",
		Weight: 0.10,
		Keys:   []string{"landPriceGrowthScore"},
	},
	{
		Name:   "profitability",
		Weight: 0.10,
		Keys:   []string{"rentalStabilityScore", "operatingCostScore", "taxScore", "yieldScore", "vacancyScore"},
	},
	{
		Name:   "redevelopment",
		Weight: 0.10,
		Keys:   []string{"usageChangeScore", "newConstructionScore", "remodelingScore", "additionalInvestScore", "profitabilityScore", "vacatingScore"},
	},
}

// RatingDescriptions maps each criterion to the semantic description handed
// to the document-understanding fallback.
var RatingDescriptions = map[string]string{
	"accessibilityScore":     "접근성 (대중교통, 도보 접근성)",
	"transportScore":         "교통 (지하철역 거리, 버스 노선)",
	"developmentPlanScore":   "개발호재 (주변 개발 계획)",
	"buildingSizeScore":      "건물규모 (연면적, 층수)",
	"structureScore":         "구조형식 (건물 구조)",
	"buildingAgeScore":       "건물연식 (준공년도 기준)",
	"maintenanceScore":       "유지관리 상태",
	"illegalBuildingScore":   "위반건축물 여부",
	"harmfulFacilityScore":   "혐오시설 여부",
	"constructionLimitScore": "건축제한 사항",
	"salesComparisonScore":   "실거래 비교",
	"marketPriceScore":       "호가 시세 비교",
	"aiEstimateScore":        "AI 추정가 비교",
	"landPriceGrowthScore":   "공시지가 상승률",
	"rentalStabilityScore":   "임대 안정성",
	"operatingCostScore":     "운영비용",
	"taxScore":               "세금 (취득세, 재산세)",
	"yieldScore":             "수익률",
	"vacancyScore":           "공실률",
	"usageChangeScore":       "용도변경 가능성",
	"newConstructionScore":   "신축 가능성",
	"remodelingScore":        "리모델링 가능성",
	"additionalInvestScore":  "추가투자 필요성",
	"profitabilityScore":     "사업 수익성",
	"vacatingScore":          "명도 난이도",
}

// RatingKeys returns every criterion key in group order.
func RatingKeys() []string {
	keys := make([]string, 0, 25)
	for _, g := range RatingGroups {
		keys = append(keys, g.Keys...)
	}
	return keys
}

// IsRatingKey reports whether name is a recognized criterion key.
// Unrecognized keys in score submissions are silently ignored.
func IsRatingKey(name string) bool {
	_, ok := RatingDescriptions[name]
	return ok
}
