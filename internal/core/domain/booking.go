package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentPlan is the payment structure agreed for a booking.
type PaymentPlan string

const (
	PaymentFull               PaymentPlan = "full"
	PaymentInstallment        PaymentPlan = "installment"
	PaymentConstructionLinked PaymentPlan = "construction-linked"
)

// validTransitions defines the allowed booking state machine transitions.
// Cancellation is a distinct operation, not a generic update.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking reserves a unit for a lead. The remote API owns all payment and
// availability rules; the console only relays state transitions.
type Booking struct {
	ID          string        `json:"id"`
	LeadID      string        `json:"leadId"`
	LeadName    string        `json:"leadName,omitempty"`
	UnitID      string        `json:"unitId"`
	UnitNumber  string        `json:"unitNumber,omitempty"`
	ProjectName string        `json:"projectName,omitempty"`
	PaymentPlan PaymentPlan   `json:"paymentPlan"`
	TokenAmount float64       `json:"tokenAmount"`
	BookingDate string        `json:"bookingDate"`
	Notes       string        `json:"notes,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
