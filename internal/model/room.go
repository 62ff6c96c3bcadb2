package model

// Room represents a bookable room type within a hotel, one row in the
// `rooms` table. AvailableRooms is the inventory counter for the room
// type and is the only mutable shared state in the system: it is
// decremented by exactly one on each successful booking and must never
// drop below zero.
//
// Fields:
//
//	ID             – primary key identifier.
//	HotelID        – owning hotel (rooms.hotel_id, FK to hotels).
//	RoomType       – room category (e.g. "Deluxe King").
//	Capacity       – maximum number of guests.
//	Price          – nightly price for this room type.
//	Amenities      – raw amenities column, comma separated.
//	AvailableRooms – remaining bookable inventory, >= 0 at all times.
type Room struct {
	ID             int64   // rooms.id
	HotelID        int64   // rooms.hotel_id
	RoomType       string  // rooms.room_type
	Capacity       int     // rooms.capacity
	Price          float64 // rooms.price
	Amenities      string  // rooms.amenities (comma separated)
	AvailableRooms int     // rooms.available_rooms
}
