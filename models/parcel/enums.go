package parcel

// Helper methods for DeliveryStatus
func (ds DeliveryStatus) String() string {
	return string(ds)
}

// IsValid reports whether the status code is one of the enumerated codes.
// Progression between codes is intentionally unrestricted: delivery status is
// operator-driven, and only the assign/deliver side effects are hard-coded in
// the parcel service.
func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case DeliveryStatusCreated, DeliveryStatusPendingPickup, DeliveryStatusDriverAssigned,
		DeliveryStatusRiderArriving, DeliveryStatusInTransit, DeliveryStatusReachedDestination,
		DeliveryStatusDelivered, DeliveryStatusRejected:
		return true
	default:
		return false
	}
}

// IsCompleted returns true if the parcel is in the terminal delivered state.
func (ds DeliveryStatus) IsCompleted() bool {
	return ds == DeliveryStatusDelivered
}

func (ps PaymentStatus) String() string {
	return string(ps)
}

func (ps PaymentStatus) IsValid() bool {
	return ps == PaymentStatusUnpaid || ps == PaymentStatusPaid
}

// GetAllDeliveryStatuses returns all valid delivery statuses.
func GetAllDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{
		DeliveryStatusCreated,
		DeliveryStatusPendingPickup,
		DeliveryStatusDriverAssigned,
		DeliveryStatusRiderArriving,
		DeliveryStatusInTransit,
		DeliveryStatusReachedDestination,
		DeliveryStatusDelivered,
		DeliveryStatusRejected,
	}
}
