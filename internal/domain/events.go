package domain

import "time"

// OrderStatusChangedEventType is the event-type header value for
// OrderStatusChangedEvent messages.
const OrderStatusChangedEventType = "order.status.changed"

type OrderStatusChangedEvent struct {
	EventID   string         `json:"event_id"`
	OrderID   string         `json:"order_id"`
	From      DeliveryStatus `json:"from"`
	To        DeliveryStatus `json:"to"`
	Timestamp time.Time      `json:"timestamp"`
}

type StatusTransition struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	OrderID    string         `json:"order_id"`
	FromStatus DeliveryStatus `json:"from_status"`
	ToStatus   DeliveryStatus `json:"to_status"`
	OccurredAt time.Time      `json:"occurred_at"`
}
