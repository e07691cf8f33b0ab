package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is whatever label the payment gateway reported. It is not
// validated against a fixed set.
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type Address struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
	Street         string `json:"street"`
	Landmark       string `json:"landmark,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	AddressType    string `json:"addressType,omitempty"`
}

type Image struct {
	URL string `json:"url"`
}

type LineItem struct {
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Unit     string          `json:"unit,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Images   []Image         `json:"images,omitempty"`
}

// Customer is the user summary the recent-orders endpoint embeds in each order.
type Customer struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID                string          `json:"_id"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	PaymentMode       string          `json:"paymentMode,omitempty"`
	PaymentMethod     string          `json:"paymentMethod,omitempty"`
	DeliveryStatus    DeliveryStatus  `json:"deliveryStatus"`
	Address           *Address        `json:"address,omitempty"`
	Products          []LineItem      `json:"products"`
	User              *Customer       `json:"user,omitempty"`
	RazorpayOrderID   string          `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string          `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string          `json:"razorpaySignature,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// UnmarshalJSON defaults an absent delivery status to pending.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	decoded := plain{DeliveryStatus: DeliveryStatusPending}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*o = Order(decoded)
	return nil
}
