package model

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents an item that can be added to orders.
type Product struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// ProductInput carries the fields of a new product.
type ProductInput struct {
	ProductName *string
	Price       *decimal.Decimal
}

// ProductPatch lists the mutable product fields.
type ProductPatch struct {
	ProductName Optional[string]
	Price       Optional[decimal.Decimal]
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return !p.ProductName.Set && !p.Price.Set
}
