package product

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxNameLength is the maximum length of a product name after trimming.
const MaxNameLength = 255

// =============================================================================
// Name Value Object
// =============================================================================

// Name represents a validated product name.
type Name struct {
	value string
}

// NewName creates a new validated Name value object.
func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Name{}, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: name}, nil
}

// String returns the string representation of the name.
func (n Name) String() string {
	return n.value
}

// Equals checks if two names are equal.
func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// =============================================================================
// Price Value Object
// =============================================================================

// currencySymbol prefixes formatted prices.
const currencySymbol = "R$"

// displayLocale drives the thousands and decimal separators of Format.
var displayLocale = language.BrazilianPortuguese

// Price represents a non-negative monetary amount.
type Price struct {
	value float64
}

// NewPrice creates a new validated Price value object. Zero is accepted.
func NewPrice(value float64) (Price, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Price{}, ErrInvalidPrice
	}
	if value < 0 {
		return Price{}, ErrNegativePrice
	}
	return Price{value: value}, nil
}

// Value returns the raw amount.
func (p Price) Value() float64 {
	return p.value
}

// Decimal returns the amount as an exact decimal for arithmetic.
func (p Price) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(p.value)
}

// Equals checks if two prices are equal.
func (p Price) Equals(other Price) bool {
	return p.value == other.value
}

// Format returns the display form, e.g. "R$ 1.234,56". Not meant for comparison.
func (p Price) Format() string {
	printer := message.NewPrinter(displayLocale)
	return currencySymbol + " " + printer.Sprint(number.Decimal(p.value, number.Scale(2)))
}

// String implements fmt.Stringer using Format.
func (p Price) String() string {
	return p.Format()
}
