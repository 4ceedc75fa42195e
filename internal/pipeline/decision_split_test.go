package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
)

func TestDecisionSplit(t *testing.T) {
	events := []domain.OutputEvent{
		{Headers: map[string]string{"status": "evaluated", "reason_code": "eligible"}},
		{Headers: map[string]string{"status": "evaluated", "reason_code": "insufficient_delay"}},
		{Headers: map[string]string{"status": "rejected"}},
		{Headers: nil}, // no headers: counted as neither
	}

	evaluated, rejected := decisionSplit(events)
	assert.Equal(t, 2, evaluated)
	assert.Equal(t, 1, rejected)
}

func TestDecisionSplit_Empty(t *testing.T) {
	evaluated, rejected := decisionSplit(nil)
	assert.Zero(t, evaluated)
	assert.Zero(t, rejected)
}
