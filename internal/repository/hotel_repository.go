package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkoval23/hotel-booking-api/internal/model"
)

// ErrHotelNotFound is returned when a hotel lookup matches no row.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelFilter captures the optional query parameters of the hotel listing.
// Zero values mean "not set"; pointer fields distinguish an absent bound
// from an explicit zero.
type HotelFilter struct {
	City     string   // substring matched against city OR name
	MinPrice *float64 // lower bound on price_per_night
	MaxPrice *float64 // upper bound on price_per_night
	Rating   *float64 // lower bound on rating
}

// HotelRepo provides read access to the hotels table. Hotels are seeded
// out of band, so the repository exposes no write paths.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = "id, name, city, country, price_per_night, rating, description, amenities, image_url"

// List returns hotels matching the filter, ordered by rating descending
// then price ascending. The WHERE clause is built incrementally so that
// unset filters add no conditions, mirroring how the listing page drives
// this query.
func (r *HotelRepo) List(ctx context.Context, f HotelFilter) ([]model.Hotel, error) {
	query := "SELECT " + hotelColumns + " FROM hotels WHERE 1=1"
	args := make([]interface{}, 0, 4)
	if f.City != "" {
		query += " AND (city LIKE ? OR name LIKE ?)"
		pat := "%" + f.City + "%"
		args = append(args, pat, pat)
	}
	if f.MinPrice != nil {
		query += " AND price_per_night >= ?"
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query += " AND price_per_night <= ?"
		args = append(args, *f.MaxPrice)
	}
	if f.Rating != nil {
		query += " AND rating >= ?"
		args = append(args, *f.Rating)
	}
	query += " ORDER BY rating DESC, price_per_night ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Country, &h.PricePerNight,
			&h.Rating, &h.Description, &h.Amenities, &h.ImageURL); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

// GetByID returns a single hotel or ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id int64) (model.Hotel, error) {
	var h model.Hotel
	err := r.db.QueryRowContext(ctx,
		"SELECT "+hotelColumns+" FROM hotels WHERE id = ?", id).
		Scan(&h.ID, &h.Name, &h.City, &h.Country, &h.PricePerNight,
			&h.Rating, &h.Description, &h.Amenities, &h.ImageURL)
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrHotelNotFound
	}
	return h, err
}
