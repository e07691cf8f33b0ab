package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_DiscountPercent(t *testing.T) {
	price := decimal.NewFromInt(200)
	discount := decimal.NewFromInt(150)
	zero := decimal.Zero

	tests := []struct {
		name    string
		product Product
		want    int64
	}{
		{name: "no discount", product: Product{Price: price}, want: 0},
		{name: "quarter off", product: Product{Price: price, DiscountPrice: &discount}, want: 25},
		{name: "zero discount price", product: Product{Price: price, DiscountPrice: &zero}, want: 0},
		{name: "zero list price", product: Product{Price: decimal.Zero, DiscountPrice: &discount}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.DiscountPercent())
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{
		Name:     "Rudraksha Mala",
		Category: "Rudraksha & Malas",
		Price:    decimal.NewFromInt(499),
		Quantity: 10,
		Unit:     UnitPiece,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Product)
	}{
		{name: "missing name", mutate: func(p *Product) { p.Name = "" }},
		{name: "missing category", mutate: func(p *Product) { p.Category = "" }},
		{name: "negative price", mutate: func(p *Product) { p.Price = decimal.NewFromInt(-1) }},
		{name: "negative quantity", mutate: func(p *Product) { p.Quantity = -1 }},
		{name: "unknown unit", mutate: func(p *Product) { p.Unit = "litre" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)
		})
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range Units() {
		got, err := ParseUnit(string(u))
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}

	_, err := ParseUnit("dozen")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}
