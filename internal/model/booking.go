package model

import "time"

// Booking records a user's confirmed reservation of a room at a hotel
// for a date range, one row in the `bookings` table. Bookings are
// created exactly once by the booking transaction and never mutated
// or deleted afterwards. The referenced user, hotel and room rows are
// plain foreign keys; the booking does not own their lifetimes.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – user who made the booking.
//	HotelID     – hotel being booked.
//	RoomID      – room type being booked.
//	CheckIn     – first night of the stay.
//	CheckOut    – day of departure (after CheckIn).
//	Guests      – number of guests.
//	TotalAmount – total price for the stay.
//	Status      – booking state; this service only ever writes "confirmed".
//	CreatedAt   – creation timestamp.
type Booking struct {
	ID          int64     // bookings.id
	UserID      int64     // bookings.user_id
	HotelID     int64     // bookings.hotel_id
	RoomID      int64     // bookings.room_id
	CheckIn     time.Time // bookings.check_in
	CheckOut    time.Time // bookings.check_out
	Guests      int       // bookings.guests
	TotalAmount float64   // bookings.total_amount
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
}
