// Package numparse parses the numeric and currency tokens that appear in
// Korean building brochures: comma-grouped digits and amounts split across
// 억 (x100,000,000) and 만 (x10,000) magnitude suffixes.
package numparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNumber = regexp.MustCompile(`[\d.]+`)
	reDigits = regexp.MustCompile(`\d+`)
	reEok    = regexp.MustCompile(`(\d+)억`)
	reMan    = regexp.MustCompile(`(\d[\d,]*)만`)
)

// ParseNumber extracts the first decimal number from text, ignoring comma
// group separators. Returns 0 when no numeric substring is present.
func ParseNumber(text string) float64 {
	cleaned := strings.ReplaceAll(text, ",", "")
	m := reNumber.FindString(cleaned)
	if m == "" {
		return 0
	}
	// A run of dots with no digits ("...") still matches the character
	// class; ParseFloat rejects it and we fall back to 0.
	v, err := strconv.ParseFloat(strings.Trim(m, "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseKoreanWon converts a price token into won. The 억 and 만 components
// are summed when both appear ("5억 1,300만" = 513,000,000). When neither
// suffix is present the first plain digit run is taken at face value.
// Returns 0 when nothing numeric is found.
func ParseKoreanWon(text string) int64 {
	var total int64

	if m := reEok.FindStringSubmatch(text); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		total += n * 100_000_000
	}
	if m := reMan.FindStringSubmatch(text); m != nil {
		n, _ := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		total += n * 10_000
	}
	if total == 0 {
		if m := reDigits.FindString(strings.ReplaceAll(text, ",", "")); m != "" {
			total, _ = strconv.ParseInt(m, 10, 64)
		}
	}
	return total
}
