// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID   int64   `json:"booking_id"`
	UserID      int64   `json:"user_id"`
	HotelID     int64   `json:"hotel_id"`
	HotelName   string  `json:"hotel_name"`
	HotelCity   string  `json:"hotel_city"`
	RoomID      int64   `json:"room_id"`
	RoomType    string  `json:"room_type"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Guests      int     `json:"guests"`
	TotalAmount float64 `json:"total_amount"`
	ConfirmedAt string  `json:"confirmed_at"`
}
