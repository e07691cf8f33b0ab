// Package aggregate derives read-only summary figures from orders and users.
// Nothing here is cached; callers recompute whenever the source changes.
package aggregate

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
)

func OrderCount(orders []domain.Order) int {
	return len(orders)
}

func LineTotal(item domain.LineItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums the line totals of an order. It ignores the order's amount,
// which is computed by the remote service.
func Subtotal(order domain.Order) decimal.Decimal {
	return lo.Reduce(order.Products, func(sum decimal.Decimal, item domain.LineItem, _ int) decimal.Decimal {
		return sum.Add(LineTotal(item))
	}, decimal.Zero)
}

func LineItemCount(order domain.Order) int {
	return len(order.Products)
}

func UnitCount(order domain.Order) int {
	return lo.SumBy(order.Products, func(item domain.LineItem) int {
		return item.Quantity
	})
}

type UserCounts struct {
	Favorites int `json:"favorites"`
	Cart      int `json:"cart"`
	Addresses int `json:"addresses"`
	Orders    int `json:"orders"`
}

func CountsForUser(user domain.User) UserCounts {
	return UserCounts{
		Favorites: len(user.FavoriteProducts),
		Cart:      len(user.Cart),
		Addresses: len(user.Addresses),
		Orders:    len(user.Orders),
	}
}

type OrderTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	LineItems int             `json:"lineItems"`
	Units     int             `json:"units"`
}

func TotalsForOrder(order domain.Order) OrderTotals {
	return OrderTotals{
		Subtotal:  Subtotal(order),
		LineItems: LineItemCount(order),
		Units:     UnitCount(order),
	}
}

type Summary struct {
	OrderCount       int                           `json:"orderCount"`
	Subtotal         decimal.Decimal               `json:"subtotal"`
	Currency         string                        `json:"currency"`
	ByDeliveryStatus map[domain.DeliveryStatus]int `json:"byDeliveryStatus"`
	ByPaymentStatus  map[domain.PaymentStatus]int  `json:"byPaymentStatus"`
}

// Summarize reports totals for a scope. Every delivery status appears in
// ByDeliveryStatus, with zero when no order has it.
func Summarize(orders []domain.Order, unit currency.Unit) Summary {
	byDelivery := make(map[domain.DeliveryStatus]int, len(domain.DeliveryStatuses()))
	for _, s := range domain.DeliveryStatuses() {
		byDelivery[s] = 0
	}
	for status, n := range lo.CountValuesBy(orders, func(o domain.Order) domain.DeliveryStatus {
		return o.DeliveryStatus
	}) {
		byDelivery[status] = n
	}

	return Summary{
		OrderCount: OrderCount(orders),
		Subtotal: lo.Reduce(orders, func(sum decimal.Decimal, o domain.Order, _ int) decimal.Decimal {
			return sum.Add(Subtotal(o))
		}, decimal.Zero),
		Currency:         unit.String(),
		ByDeliveryStatus: byDelivery,
		ByPaymentStatus: lo.CountValuesBy(orders, func(o domain.Order) domain.PaymentStatus {
			return o.PaymentStatus
		}),
	}
}
