// Package fields runs the deterministic pattern battery over brochure text.
// Every extractor is a pure function of the full text: candidate patterns
// are tried in a fixed order, the first structural match wins, and a field
// with no match degrades to its zero value. Nothing here returns an error;
// a mostly-unextractable document still yields a complete, sparse record.
package fields

import (
	"regexp"
	"strings"
)

// rule is one candidate pattern for a field and the capture group that
// carries its value.
type rule struct {
	re    *regexp.Regexp
	group int
}

func pat(expr string, group int) rule {
	return rule{re: regexp.MustCompile(expr), group: group}
}

// firstMatch evaluates rules in priority order and returns the first
// structural match, trimmed. An earlier pattern wins even when a later one
// would also match; exhaustion yields "".
func firstMatch(text string, rules []rule) string {
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[r.group])
		}
	}
	return ""
}

// Candidate pattern tables, one per field. Brochures are Korean-labeled;
// the higher-priority pattern in each table matches the dominant layout and
// the rest cover looser variants seen in the wild.
var (
	buildingNameRules = []rule{
		pat(`([가-힣]+동\s+[가-힣a-zA-Z]+(?:\s*\([^)]+\))?)`, 1),
		pat(`빌딩PT\s+프레젠테이션\s*([가-힣a-zA-Z\s()]+)`, 1),
	}

	addressRules = []rule{
		pat(`서울시?\s*[가-힣]+구\s*[가-힣]+동\s*[\d-]+`, 0),
	}

	roadFrontageRules = []rule{
		pat(`(?i)도로상황\s*(\d+m\s*\*\s*\d+m[^가-힣]*(?:\([^)]+\))?)`, 1),
		pat(`(\d+m\s*\*\s*\d+m\s*(?:\([^)]+\))?)`, 1),
	}

	landAreaSqmRules = []rule{
		pat(`면적\s*([\d,.]+)\s*㎡`, 1),
		pat(`(?s)토지.*?면적.*?([\d,.]+)\s*㎡`, 1),
	}

	// Pyeong normally rides next to the ㎡ figure; it is extracted
	// independently and never derived from the metric value.
	landAreaPyeongRules = []rule{
		pat(`[\d,.]+\s*㎡\s*([\d,.]+)\s*평`, 1),
		pat(`(?s)면적.*?([\d,.]+)\s*평`, 1),
	}

	zoningRules = []rule{
		pat(`용도지역\s*([가-힣\d]+지역)`, 1),
	}

	assessedPerPyeongRules = []rule{
		pat(`(?i)공시지가\s*\(평\)\s*([\d,]+)\s*원`, 1),
		pat(`공시지가[^합]*?([\d,]+)\s*원`, 1),
	}

	assessedTotalRules = []rule{
		pat(`합계\s*([\d,]+)\s*원`, 1),
	}

	totalAreaSqmRules = []rule{
		pat(`연면적\s*([\d,.]+)\s*㎡`, 1),
	}

	totalAreaPyeongRules = []rule{
		pat(`(?s)연면적.*?[\d,.]+\s*㎡.*?([\d,.]+)\s*평`, 1),
	}

	footprintSqmRules = []rule{
		pat(`건축면적\s*([\d,.]+)\s*㎡`, 1),
	}

	footprintPyeongRules = []rule{
		pat(`(?s)건축면적.*?[\d,.]+\s*㎡.*?([\d,.]+)\s*평`, 1),
	}

	coverageRatioRules = []rule{
		pat(`건폐율\s*([\d.]+)\s*%`, 1),
	}

	floorAreaRatioRules = []rule{
		pat(`용적률\s*([\d.]+)\s*%`, 1),
	}

	floorsLabelRules = []rule{
		pat(`(?i)규모\s*(B?\d+/?\d*F?)`, 1),
	}

	parkingRules = []rule{
		pat(`주차대수\s*(?:총\s*)?(\d+)\s*대`, 1),
		pat(`총\s*(\d+)\s*대`, 1),
	}

	completionDateRules = []rule{
		pat(`준공년도\s*([\d-]+)`, 1),
	}

	salePriceRules = []rule{
		pat(`매매가\s*(\d+억)`, 1),
		pat(`매매가\s*([\d억만,]+원?)`, 1),
	}

	depositRules = []rule{
		pat(`보증금\s*([\d억만,]+)`, 1),
	}

	monthlyRentRules = []rule{
		pat(`임대료\s*([\d,]+)\s*만`, 1),
		pat(`월세\s*([\d,]+)\s*만`, 1),
	}

	yieldRules = []rule{
		pat(`수익률\s*([\d.]+)\s*%`, 1),
	}

	pricePerPyeongRules = []rule{
		pat(`평단가\s*([\d,]+)\s*만`, 1),
	}

	aiEstimateRules = []rule{
		pat(`(?i)AI\s*추정가?\s*([\d억만,]+)`, 1),
		pat(`(?si)AI시세.*?([\d억만,]+)`, 1),
	}
)
