package models

// Hostel is a property students can browse.
type Hostel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Room belongs to a hostel. Price is the per-term grand total as a decimal
// string.
type Room struct {
	ID        int64  `json:"id"`
	HostelID  int64  `json:"hostelId"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}
