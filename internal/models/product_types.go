package models

// Product is the supplier product imported in the first step of the workflow.
// It is created once by the import action and never modified afterwards.
type Product struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Variations    []string `json:"variations"`
	SupplierPrice float64  `json:"supplierPrice"`
}

// DefaultMargin is the markup (in percent) applied to the supplier price
// until the user picks another one.
const DefaultMargin = 150

// MinMargin is the lowest accepted margin; anything below would make the
// selling price negative.
const MinMargin = -100

// SellingPrice derives the shop price from the supplier price and a margin in percent.
func SellingPrice(supplierPrice, margin float64) float64 {
	return supplierPrice * (1 + margin/100)
}

// Clone returns a deep copy so snapshots never share slices.
func (p Product) Clone() Product {
	out := p
	out.Images = cloneStrings(p.Images)
	out.Variations = cloneStrings(p.Variations)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
