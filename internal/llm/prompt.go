package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hansol-kim/building-ledger/constants"
)

// BuildSystemPrompt frames the model as a property-investment analyst and
// pins the output conventions: pure won amounts, zero/empty for unknowns,
// null for ratings it cannot judge from the document alone.
func BuildSystemPrompt() string {
	parts := []string{
		"당신은 빌딩 매물 정보 PDF를 분석하는 부동산 투자 전문가입니다.",
		"PDF에서 정보를 추출하고, 투자 관점에서 각 항목별 점수를 평가해주세요.",
		fmt.Sprintf("분석 점수는 %d-%d점 사이의 정수로 평가하고, PDF 정보만으로 판단이 어려운 항목은 null로 표시해주세요.",
			constants.RatingMin, constants.RatingMax),
		"숫자는 모두 순수 숫자로 변환해주세요 (억, 만 단위는 원 단위로 변환).",
		"찾을 수 없는 정보는 0 또는 빈 문자열로 반환해주세요.",
		"반드시 아래 JSON 형식으로만 응답하세요 (다른 텍스트 없이).",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt enumerates every listing field and every rating criterion
// with its semantic description, followed by the exact JSON skeleton the
// response must fill in.
func BuildUserPrompt() string {
	var b strings.Builder

	b.WriteString("이 빌딩 매물 PDF에서 다음 정보를 추출해주세요:\n\n")
	b.WriteString("1. 건물 기본 정보: 건물명(name), 주소(address), 도로상황(roadFrontage, 예: 8m * 6m)\n")
	b.WriteString("2. 토지 정보(landInfo): 토지면적 ㎡(areaSqm), 토지면적 평(areaPyeong), 용도지역(zoning), ")
	b.WriteString("공시지가 평당 원(assessedPricePerPyeong), 공시지가 합계 원(assessedPriceTotal), 지목(landCategory)\n")
	b.WriteString("3. 건물 정보(buildingInfo): 연면적 ㎡/평(totalAreaSqm/totalAreaPyeong), 건축면적 ㎡/평(footprintAreaSqm/footprintAreaPyeong), ")
	b.WriteString("건폐율 %(coverageRatioPercent), 용적률 %(floorAreaRatioPercent), 규모(floorsLabel, 예: B1/5F), 지하층수(basementFloors), ")
	b.WriteString("지상층수(aboveGroundFloors), 주차대수(parkingSpaces), 준공년도(completionDate), 승강기 유무(hasElevator), ")
	b.WriteString("구조(structureType), 주용도(primaryUse)\n")
	b.WriteString("4. 금액 정보(priceInfo): 매매가(salePrice), 보증금 합계(deposit), 월 임대료 합계(monthlyRent), ")
	b.WriteString("수익률 %(yieldPercent), 평단가(pricePerPyeong), AI 추정가(aiEstimate), AI 추정 평단가(aiEstimatePerPyeong)\n")
	b.WriteString("5. 임대차 현황(leases, 각 층별): 층(floor), 임차인(tenant), 면적 ㎡(areaSqm), 면적 평(areaPyeong), ")
	b.WriteString("보증금(deposit), 월세(monthlyRent), 비고(notes)\n\n")

	fmt.Fprintf(&b, "6. 투자 분석 점수(analysisScore, %d-%d점, PDF 정보로 판단 불가시 null):\n",
		constants.RatingMin, constants.RatingMax)
	for _, group := range constants.RatingGroups {
		fmt.Fprintf(&b, "   [%s - %.0f%%]\n", group.Name, group.Weight*100)
		for _, key := range group.Keys {
			fmt.Fprintf(&b, "   - %s: %s\n", key, constants.RatingDescriptions[key])
		}
	}
	b.WriteString("\n각 점수에 대한 평가 근거를 analysisNotes에 한 문장씩 담아주세요.\n\n")

	b.WriteString("다음 JSON 형식으로만 응답해주세요 (다른 텍스트 없이):\n")
	b.WriteString(responseSkeleton())
	return b.String()
}

// responseSkeleton renders an empty instance of the expected response so
// the model has the exact key set in front of it.
func responseSkeleton() string {
	ratings := make(map[string]any, 25)
	for _, key := range constants.RatingKeys() {
		ratings[key] = nil
	}
	skeleton := map[string]any{
		"building": map[string]any{"name": "", "address": "", "roadFrontage": ""},
		"landInfo": map[string]any{
			"areaSqm": 0, "areaPyeong": 0, "zoning": "",
			"assessedPricePerPyeong": 0, "assessedPriceTotal": 0, "landCategory": "",
		},
		"buildingInfo": map[string]any{
			"totalAreaSqm": 0, "totalAreaPyeong": 0,
			"footprintAreaSqm": 0, "footprintAreaPyeong": 0,
			"coverageRatioPercent": 0, "floorAreaRatioPercent": 0,
			"floorsLabel": "", "basementFloors": 0, "aboveGroundFloors": 0,
			"parkingSpaces": 0, "completionDate": "", "hasElevator": false,
			"structureType": "", "primaryUse": "",
		},
		"priceInfo": map[string]any{
			"salePrice": 0, "deposit": 0, "monthlyRent": 0,
			"yieldPercent": 0, "pricePerPyeong": 0,
			"aiEstimate": 0, "aiEstimatePerPyeong": 0,
		},
		"leases": []map[string]any{{
			"floor": "", "tenant": "", "areaSqm": 0, "areaPyeong": 0,
			"deposit": 0, "monthlyRent": 0, "notes": "",
		}},
		"analysisScore": ratings,
		"analysisNotes": map[string]string{},
	}
	out, _ := json.MarshalIndent(skeleton, "", "  ")
	return string(out)
}
