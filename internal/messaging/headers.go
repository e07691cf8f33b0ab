package messaging

import (
	"github.com/samber/lo"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
)

const eventTypeHeader = "event-type"

var _ propagation.TextMapCarrier = headerCarrier{}

// headerCarrier lets OpenTelemetry propagators read and write trace context
// in kafka headers, so a status change keeps one trace from console to auditor.
type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	value, _ := header(*c.msg, key)
	return value
}

// Set overwrites an existing header rather than appending a duplicate.
func (c headerCarrier) Set(key, value string) {
	_, i, found := lo.FindIndexOf(c.msg.Headers, func(h kafka.Header) bool { return h.Key == key })
	if found {
		c.msg.Headers[i].Value = []byte(value)
		return
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	return lo.Uniq(lo.Map(c.msg.Headers, func(h kafka.Header, _ int) string { return h.Key }))
}

func header(msg kafka.Message, key string) (string, bool) {
	h, found := lo.Find(msg.Headers, func(h kafka.Header) bool { return h.Key == key })
	return string(h.Value), found
}

// EventType reports the event-type header the producer stamped on msg.
func EventType(msg kafka.Message) string {
	value, _ := header(msg, eventTypeHeader)
	return value
}
