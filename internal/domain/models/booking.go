package models

// Booking is one student's reservation. Price is the grand total as a
// decimal string, exactly as the API carries it. Allocation fields stay
// empty until a room has been assigned.
type Booking struct {
	ID                  int64  `json:"id"`
	BookingCode         string `json:"bookingId"`
	UserID              int64  `json:"userId,omitempty"`
	HostelID            int64  `json:"hostelId"`
	RoomID              int64  `json:"roomId"`
	HostelName          string `json:"hostelName"`
	RoomTitle           string `json:"roomTitle"`
	HostelImage         string `json:"hostelImage,omitempty"`
	Status              string `json:"status"`
	Price               string `json:"price"`
	AllocatedRoomNumber string `json:"allocatedRoomNumber,omitempty"`
	FloorNumber         string `json:"floorNumber,omitempty"`
	ReportingDate       string `json:"reportingDate,omitempty"`
	CancelReason        string `json:"cancelReason,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
}

// BookingPatch supports PATCH-style updates via pointer presence.
type BookingPatch struct {
	Status              *string `json:"status,omitempty"`
	AllocatedRoomNumber *string `json:"allocatedRoomNumber,omitempty"`
	FloorNumber         *string `json:"floorNumber,omitempty"`
	ReportingDate       *string `json:"reportingDate,omitempty"`
}

// CreateBookingInput is the payload for POST /bookings.
type CreateBookingInput struct {
	HostelID int64 `json:"hostelId"`
	RoomID   int64 `json:"roomId"`
}
