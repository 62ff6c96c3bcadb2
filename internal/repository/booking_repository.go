package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkoval23/hotel-booking-api/internal/model"
)

// BookingRepo provides persistence for bookings. Creation always runs
// inside a transaction owned by the caller, paired with the availability
// decrement in RoomRepo, so that either both persist or neither does.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so the booking handler can open the
// transaction that spans the availability decrement and the insert.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new booking within the scope of an existing
// transaction. It populates the generated ID and creation timestamp on
// the provided record. The caller must commit or rollback the
// transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
               (user_id, hotel_id, room_id, check_in, check_out, guests, total_amount, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.UserID, b.HotelID, b.RoomID, b.CheckIn, b.CheckOut, b.Guests, b.TotalAmount, b.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	// Query back the row to pick up the DB-generated creation timestamp.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// BookingDetail is a booking joined with the hotel and room columns the
// booking-history page displays. It is returned by ListByUser.
type BookingDetail struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	HotelID     int64     `json:"hotel_id"`
	RoomID      int64     `json:"room_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Guests      int       `json:"guests"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	HotelName   string    `json:"hotel_name"`
	HotelCity   string    `json:"hotel_city"`
	HotelImage  string    `json:"hotel_image"`
	RoomType    string    `json:"room_type"`
	RoomPrice   float64   `json:"room_price"`
}

// ListByUser returns the user's bookings joined with hotel and room
// details, newest first. When no bookings exist an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID int64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.hotel_id, b.room_id,
                      b.check_in, b.check_out, b.guests, b.total_amount, b.status, b.created_at,
                      h.name, h.city, h.image_url,
                      r.room_type, r.price
               FROM bookings b
               JOIN hotels h ON h.id = b.hotel_id
               JOIN rooms r ON r.id = b.room_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var checkIn, checkOut time.Time
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.HotelID, &d.RoomID,
			&checkIn, &checkOut, &d.Guests, &d.TotalAmount, &d.Status, &d.CreatedAt,
			&d.HotelName, &d.HotelCity, &d.HotelImage,
			&d.RoomType, &d.RoomPrice,
		); err != nil {
			return nil, err
		}
		// Stay dates are calendar dates; render them without a time part.
		d.CheckIn = checkIn.Format("2006-01-02")
		d.CheckOut = checkOut.Format("2006-01-02")
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
