package repository

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Column limits from migrations/00001_storefront.sql. Lengths count
// characters, as VARCHAR does.
const (
	MaxUserNameLength    = 100
	MaxAddressLength     = 200
	MaxEmailLength       = 100
	MaxProductNameLength = 100
)

// maxPrice is the exclusive bound of NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// FitsLength reports whether s fits a VARCHAR(limit) column.
func FitsLength(s string, limit int) bool {
	return utf8.RuneCountInString(s) <= limit
}

// FitsPrice reports whether price, once rounded to two places, fits
// NUMERIC(12,2).
func FitsPrice(price decimal.Decimal) bool {
	return price.Round(2).Abs().LessThan(maxPrice)
}
