package market

import (
	"fmt"
	"math"
	"strings"
)

// Comma formats v with comma thousands separators: whole numbers render
// without decimals (1234567 -> "1,234,567"), fractional ones keep two.
func Comma(v float64) string {
	var s string
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		s = fmt.Sprintf("%.0f", v)
	} else {
		s = fmt.Sprintf("%.2f", v)
	}

	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
