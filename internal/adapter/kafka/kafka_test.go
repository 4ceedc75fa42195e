package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
)

func TestMapMessageToRawClaim(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("claim-1"),
		Value:     []byte(`{"claim_id":"claim-1"}`),
		Topic:     "claim-submissions",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("intake-web")},
		},
	}

	raw := mapMessageToRawClaim(msg)

	assert.Equal(t, []byte("claim-1"), raw.Key)
	assert.JSONEq(t, `{"claim_id":"claim-1"}`, string(raw.Value))
	assert.Equal(t, "claim-submissions", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "intake-web", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestEventToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("claim-1"),
		Value: []byte(`{"claim_id":"claim-1","status":"evaluated"}`),
		Headers: map[string]string{
			"status":      "evaluated",
			"reason_code": "eligible",
		},
	}

	msg := eventToMessage(event)

	assert.Equal(t, []byte("claim-1"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "reason_code", msg.Headers[0].Key)
	assert.Equal(t, []byte("eligible"), msg.Headers[0].Value)
	assert.Equal(t, "status", msg.Headers[1].Key)
	assert.Equal(t, []byte("evaluated"), msg.Headers[1].Value)
}

func TestEventToMessage_NoHeaders(t *testing.T) {
	msg := eventToMessage(domain.OutputEvent{Key: []byte("claim-2"), Value: []byte(`{}`)})
	assert.Empty(t, msg.Headers)
}
