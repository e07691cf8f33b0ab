package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidDeliveryStatus = errors.New("invalid delivery status")

type DeliveryStatus string

// remember to add new statuses to the orderedDeliveryStatuses slice
const (
	DeliveryStatusPending        DeliveryStatus = "pending"
	DeliveryStatusProcessing     DeliveryStatus = "processing"
	DeliveryStatusShipped        DeliveryStatus = "shipped"
	DeliveryStatusOutForDelivery DeliveryStatus = "out-for-delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
	DeliveryStatusCancelled      DeliveryStatus = "cancelled"
)

var orderedDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusProcessing,
	DeliveryStatusShipped,
	DeliveryStatusOutForDelivery,
	DeliveryStatusDelivered,
	DeliveryStatusCancelled,
}

var validDeliveryStatuses = func() map[DeliveryStatus]struct{} {
	m := make(map[DeliveryStatus]struct{}, len(orderedDeliveryStatuses))
	for _, s := range orderedDeliveryStatuses {
		m[s] = struct{}{}
	}
	return m
}()

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if _, ok := validDeliveryStatuses[status]; ok {
		return status, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDeliveryStatus, s)
}

// DeliveryStatuses returns every status in fulfillment order.
func DeliveryStatuses() []DeliveryStatus {
	result := make([]DeliveryStatus, len(orderedDeliveryStatuses))
	copy(result, orderedDeliveryStatuses)
	return result
}

func (s DeliveryStatus) Valid() bool {
	_, ok := validDeliveryStatuses[s]
	return ok
}

// UnmarshalJSON treats a missing or empty status as pending and rejects
// anything outside the known set.
func (s *DeliveryStatus) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode delivery status: %w", err)
	}

	if raw == nil || *raw == "" {
		*s = DeliveryStatusPending
		return nil
	}

	status, err := ParseDeliveryStatus(*raw)
	if err != nil {
		return err
	}

	*s = status
	return nil
}
