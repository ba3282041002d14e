package product

// PriceBand is an inclusive [Min, Max] price range.
type PriceBand struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Contains reports whether price lies within the band, bounds included.
func (b PriceBand) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// PriceBands maps category ids to their acceptable price band.
// Categories missing from ByCategory use Default.
type PriceBands struct {
	ByCategory map[string]PriceBand
	Default    PriceBand
}

// DefaultPriceBands returns the standard catalog price table.
func DefaultPriceBands() PriceBands {
	return PriceBands{
		ByCategory: map[string]PriceBand{
			"category_1": {Min: 10.00, Max: 1000.00},
			"category_2": {Min: 50.00, Max: 2000.00},
			"category_3": {Min: 100.00, Max: 5000.00},
		},
		Default: PriceBand{Min: 1.00, Max: 10000.00},
	}
}

// For returns the band that applies to categoryID.
func (b PriceBands) For(categoryID string) PriceBand {
	if band, ok := b.ByCategory[categoryID]; ok {
		return band
	}
	return b.Default
}
