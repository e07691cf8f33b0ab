package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidUnit    = errors.New("invalid product unit")
	ErrInvalidProduct = errors.New("invalid product")
)

type Unit string

const (
	UnitPiece Unit = "piece"
	UnitPack  Unit = "pack"
	UnitGram  Unit = "gm"
	UnitKilo  Unit = "kg"
	UnitML    Unit = "ml"
	UnitSet   Unit = "set"
)

var units = []Unit{UnitPiece, UnitPack, UnitGram, UnitKilo, UnitML, UnitSet}

func Units() []Unit {
	result := make([]Unit, len(units))
	copy(result, units)
	return result
}

func ParseUnit(s string) (Unit, error) {
	for _, u := range units {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

var categories = []string{
	"Prasad",
	"Pooja Samagri",
	"Rudraksha & Malas",
	"Dhup / Shankh",
	"Tulsi Mala",
	"Chandan",
	"Tabeez",
	"Books",
	"Mantra Books",
	"God Idols & Frames",
	"Kanwar Yatra Samagri",
	"Sindoor",
	"Roli",
	"Haldi",
	"Akshat (Chawal)",
	"Festival Kits",
	"Digital Items (Aarti / Video / Pen drive)",
	"Custom Tabeez",
}

func Categories() []string {
	result := make([]string, len(categories))
	copy(result, categories)
	return result
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Product struct {
	ID            string           `json:"_id,omitempty"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Quantity      int              `json:"quantity"`
	Unit          Unit             `json:"unit"`
	Images        []string         `json:"images,omitempty"`
	Rating        Rating           `json:"rating"`
	Material      string           `json:"material,omitempty"`
	Size          string           `json:"size,omitempty"`
	Weight        string           `json:"weight,omitempty"`
	Deity         string           `json:"deity,omitempty"`
	Occasion      string           `json:"occasion,omitempty"`
	Language      string           `json:"language,omitempty"`
	IsAvailable   bool             `json:"isAvailable"`
}

// DiscountPercent returns the whole-number percentage off the list price, or
// zero when no usable discount is set.
func (p Product) DiscountPercent() int64 {
	if p.DiscountPrice == nil || !p.Price.IsPositive() || !p.DiscountPrice.IsPositive() {
		return 0
	}
	off := p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(decimal.NewFromInt(100))
	return off.Round(0).IntPart()
}

func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	if _, err := ParseUnit(string(p.Unit)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	return nil
}
