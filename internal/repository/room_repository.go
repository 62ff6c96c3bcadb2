package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkoval23/hotel-booking-api/internal/model"
)

// ErrRoomNotFound is returned when no room matches the requested
// (room_id, hotel_id) pair.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo encapsulates database operations on the rooms table,
// including the availability counter that the booking transaction
// decrements.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo given a DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, hotel_id, room_type, capacity, price, amenities, available_rooms"

// ListAvailableByHotel returns the hotel's rooms that still have
// inventory, cheapest first. Used by the hotel detail endpoint.
func (r *RoomRepo) ListAvailableByHotel(ctx context.Context, hotelID int64) ([]model.Room, error) {
	const q = "SELECT " + roomColumns + ` FROM rooms
               WHERE hotel_id = ? AND available_rooms > 0
               ORDER BY price ASC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Capacity,
			&rm.Price, &rm.Amenities, &rm.AvailableRooms); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTx loads a room by (room_id, hotel_id) within a transaction. It is
// used by the booking transaction to distinguish an unknown room (404)
// from an exhausted one (conflict). Returns ErrRoomNotFound when the
// pair matches no row.
func (r *RoomRepo) GetTx(ctx context.Context, tx *sql.Tx, roomID, hotelID int64) (model.Room, error) {
	var rm model.Room
	err := tx.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ? AND hotel_id = ?",
		roomID, hotelID).
		Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Capacity,
			&rm.Price, &rm.Amenities, &rm.AvailableRooms)
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// DecrementAvailabilityTx performs the single conditional decrement that
// guards the availability invariant. The available_rooms > 0 condition
// makes check and decrement one atomic statement: under concurrent
// bookings for the last room, exactly one UPDATE matches and every
// other caller observes zero affected rows and gets ErrRoomUnavailable.
func (r *RoomRepo) DecrementAvailabilityTx(ctx context.Context, tx *sql.Tx, roomID, hotelID int64) error {
	const q = `UPDATE rooms SET available_rooms = available_rooms - 1
               WHERE id = ? AND hotel_id = ? AND available_rooms > 0`
	res, err := tx.ExecContext(ctx, q, roomID, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomUnavailable
	}
	return nil
}
