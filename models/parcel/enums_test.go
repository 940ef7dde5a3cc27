package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatusIsValid(t *testing.T) {
	for _, status := range GetAllDeliveryStatuses() {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}

	assert.False(t, DeliveryStatus("").IsValid())
	assert.False(t, DeliveryStatus("delivered").IsValid())
	assert.False(t, DeliveryStatus("Created").IsValid())
	assert.False(t, DeliveryStatus("lost").IsValid())
}

func TestDeliveryStatusIsCompleted(t *testing.T) {
	assert.True(t, DeliveryStatusDelivered.IsCompleted())

	for _, status := range GetAllDeliveryStatuses() {
		if status == DeliveryStatusDelivered {
			continue
		}
		assert.False(t, status.IsCompleted(), "expected %s to be non-terminal", status)
	}
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentStatusUnpaid.IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.False(t, PaymentStatus("pending").IsValid())
}
