package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_UnmarshalJSON(t *testing.T) {
	t.Run("decodes remote payload", func(t *testing.T) {
		payload := `{
			"_id": "o1",
			"amount": 130,
			"paymentStatus": "paid",
			"deliveryStatus": "processing",
			"address": {"fullName": "Asha", "phone": "999", "street": "1 Temple Rd", "city": "Ujjain", "state": "MP", "pincode": "456001"},
			"products": [{"name": "Laddu", "quantity": 2, "price": 50}, {"name": "Diya", "quantity": 1, "price": "30"}],
			"razorpayOrderId": "order_x",
			"createdAt": "2024-05-01T10:00:00Z"
		}`

		var o Order
		require.NoError(t, json.Unmarshal([]byte(payload), &o))

		assert.Equal(t, "o1", o.ID)
		assert.True(t, o.Amount.Equal(decimal.NewFromInt(130)))
		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
		assert.Equal(t, DeliveryStatusProcessing, o.DeliveryStatus)
		require.NotNil(t, o.Address)
		assert.Equal(t, "Ujjain", o.Address.City)
		require.Len(t, o.Products, 2)
		assert.True(t, o.Products[1].Price.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, "order_x", o.RazorpayOrderID)
	})

	t.Run("missing delivery status defaults to pending", func(t *testing.T) {
		var o Order
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o2","amount":10,"products":[]}`), &o))
		assert.Equal(t, DeliveryStatusPending, o.DeliveryStatus)
	})

	t.Run("unknown payment status is kept", func(t *testing.T) {
		var o Order
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"o3","paymentStatus":"refund_initiated"}`), &o))
		assert.Equal(t, PaymentStatus("refund_initiated"), o.PaymentStatus)
	})

	t.Run("unknown delivery status fails decoding", func(t *testing.T) {
		var o Order
		err := json.Unmarshal([]byte(`{"_id":"o4","deliveryStatus":"teleported"}`), &o)
		require.ErrorIs(t, err, ErrInvalidDeliveryStatus)
	})
}
