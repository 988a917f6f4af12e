package delivery

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// parseAmount reads a supplier price into cents. Both "1 234,56" and
// "1,234.56" are accepted: the right-most separator is the decimal one.
func parseAmount(s string) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '€', '$':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimSuffix(strings.TrimSuffix(clean, "FC"), "CDF")

	comma := strings.LastIndex(clean, ",")
	dot := strings.LastIndex(clean, ".")

	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}
