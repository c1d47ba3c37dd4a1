// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("refunded").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	number := generateOrderNumber(now)

	assert.Len(t, number, 13)
	assert.Equal(t, "20260831-", number[:9])
}
