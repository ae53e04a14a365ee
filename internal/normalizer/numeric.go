package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingIntRe = regexp.MustCompile(`(\d+)\s*([kK])?`)

// LenientInt extracts an integer from noisy raw values. Strings with
// embedded currency or units ("55K€", "5 ans") yield their first digit
// run, a trailing k multiplies by 1000. Unparseable values degrade to 0,
// never an error; the scoring engine treats 0 as "unspecified".
func LenientInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case float32:
		return int(n)
	case string:
		return lenientIntFromString(n)
	}
	return 0
}

func lenientIntFromString(s string) int {
	m := leadingIntRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if m[2] != "" {
		n *= 1000
	}
	return n
}

func lenientFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func lenientBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "oui", "1":
			return true
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return false
}
