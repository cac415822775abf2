package report

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Letter grades rank A > B > C > D > F, with +/- refining each step.
var letterLadder = map[string]float64{
	"A+": 100, "A": 97, "A-": 94,
	"B+": 89, "B": 86, "B-": 83,
	"C+": 78, "C": 75, "C-": 72,
	"D+": 67, "D": 64, "D-": 61,
	"F": 0,
}

// Ordinal class ranks, best first.
var ordinalScale = []struct {
	word string
	key  float64
}{
	{"first", 90},
	{"second", 80},
	{"third", 70},
	{"fourth", 60},
	{"fifth", 50},
}

var romanScale = map[string]float64{
	"I": 60, "II": 50, "III": 40, "IV": 30, "V": 20, "VI": 10,
}

// GradeSortKey maps a display grade to a comparable rank so grade scale rows
// can be ordered best-first. Numeric grades and ranges rank by their largest
// number; otherwise letter grades, ordinal words and Roman numerals rank on
// fixed scales. Unrecognized grades rank last.
func GradeSortKey(grade string) float64 {
	s := strings.TrimSpace(grade)
	if s == "" {
		return 0
	}

	if nums := numberPattern.FindAllString(s, -1); len(nums) > 0 {
		max := math.Inf(-1)
		for _, n := range nums {
			if v, err := strconv.ParseFloat(n, 64); err == nil && v > max {
				max = v
			}
		}
		if !math.IsInf(max, -1) {
			return max
		}
	}

	upper := strings.ToUpper(s)
	if v, ok := letterLadder[upper]; ok {
		return v
	}

	lower := strings.ToLower(s)
	for _, ord := range ordinalScale {
		if strings.Contains(lower, ord.word) {
			return ord.key
		}
	}

	if v, ok := romanScale[upper]; ok {
		return v
	}
	return 0
}

// SortGradeMappings orders grade scale rows best grade first. The sort is
// stable so rows with equal ranks keep their input order.
func SortGradeMappings(mappings []GradeMapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return GradeSortKey(mappings[i].OriginalGrade) > GradeSortKey(mappings[j].OriginalGrade)
	})
}
