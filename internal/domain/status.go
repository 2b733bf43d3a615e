package domain

import "strings"

// BookingStatus is the canonical, already-normalized booking state.
// Raw server values vary in casing and separators ("PENDING_PAYMENT",
// "pending-payment"); NormalizeStatus collapses them all to these.
type BookingStatus string

const (
	StatusPendingPayment  BookingStatus = "pending payment"
	StatusPendingApproval BookingStatus = "pending approval"
	StatusApproved        BookingStatus = "approved"
	StatusRoomAllocated   BookingStatus = "room allocated"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
	StatusRejected        BookingStatus = "rejected"
	StatusExpired         BookingStatus = "expired"
	StatusUnknown         BookingStatus = ""
)

// NormalizeStatus lower-cases the raw value and treats underscores and
// dashes as spaces. Unrecognized values map to StatusUnknown. The function
// is idempotent: feeding a canonical value back returns it unchanged.
func NormalizeStatus(raw string) BookingStatus {
	s := strings.ToLower(raw)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	switch BookingStatus(s) {
	case StatusPendingPayment, StatusPendingApproval, StatusApproved,
		StatusRoomAllocated, StatusCompleted, StatusCancelled,
		StatusRejected, StatusExpired:
		return BookingStatus(s)
	}
	return StatusUnknown
}

// Action is something the UI may offer for a booking right now.
type Action string

const (
	ActionProceedToPayment Action = "proceed_to_payment"
	ActionViewPayment      Action = "view_payment"
	ActionViewReceipt      Action = "view_receipt"
	ActionViewRoom         Action = "view_room"
	ActionViewMoveIn       Action = "view_move_in"
	ActionDownloadReceipt  Action = "download_receipt"
	ActionLeaveReview      Action = "leave_review"
	ActionCancel           Action = "cancel"
	ActionDelete           Action = "delete"
	ActionContactSupport   Action = "contact_support"
	ActionCreateNewBooking Action = "create_new_booking"
)

// AvailableActions is a pure function of (status, payment presence, payment
// status). No other booking field participates.
func AvailableActions(status BookingStatus, hasPayment bool, ps PaymentStatus) []Action {
	switch status {
	case StatusPendingPayment:
		actions := []Action{}
		if hasPayment {
			actions = append(actions, ActionViewPayment)
		} else {
			actions = append(actions, ActionProceedToPayment)
		}
		if CanCancel(status, hasPayment, ps) {
			actions = append(actions, ActionCancel)
		}
		return actions
	case StatusPendingApproval:
		// payment under review; cancellation locked out
		return []Action{ActionViewReceipt}
	case StatusApproved:
		return []Action{ActionViewReceipt}
	case StatusRoomAllocated:
		return []Action{ActionViewRoom, ActionViewMoveIn}
	case StatusCompleted:
		return []Action{ActionDownloadReceipt, ActionLeaveReview}
	case StatusCancelled:
		return []Action{ActionDelete}
	case StatusRejected:
		return []Action{ActionContactSupport}
	case StatusExpired:
		return []Action{ActionCreateNewBooking}
	}
	return nil
}

// CanCancel reports whether cancellation is allowed. Only a booking still in
// pending payment may be cancelled, and not once an in-flight payment has
// reached AWAITING_VERIFICATION or CONFIRMED (an orphaned payment would
// otherwise be left behind).
func CanCancel(status BookingStatus, hasPayment bool, ps PaymentStatus) bool {
	if status != StatusPendingPayment {
		return false
	}
	if hasPayment && (ps == PaymentAwaitingVerification || ps == PaymentConfirmed) {
		return false
	}
	return true
}

// CanDelete reports whether the booking may be removed entirely. Delete is
// irreversible and only offered from cancelled.
func CanDelete(status BookingStatus) bool {
	return status == StatusCancelled
}
