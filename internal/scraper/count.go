package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	compactThousands = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)k$`)
	compactMillions  = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)m$`)
)

// ParseCompactCount turns display counts like "122.8K", "11,6k", "1.2M" or
// "9,240" into integers. Unparseable input yields zero; missing metrics are
// never an error in this pipeline.
func ParseCompactCount(raw string) int64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, `"`, "")
	if s == "" {
		return 0
	}

	if m := compactThousands.FindStringSubmatch(s); m != nil {
		return scaleDecimal(m[1], 1_000)
	}
	if m := compactMillions.FindStringSubmatch(s); m != nil {
		return scaleDecimal(m[1], 1_000_000)
	}

	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f + 0.5)
}

// scaleDecimal handles both "122.8" and the European "11,6" decimal comma.
func scaleDecimal(num string, factor float64) int64 {
	if strings.Contains(num, ",") && !strings.Contains(num, ".") {
		num = strings.ReplaceAll(num, ",", ".")
	} else {
		num = strings.ReplaceAll(num, ",", "")
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f*factor + 0.5)
}
