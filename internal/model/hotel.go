package model

// Hotel represents a row in the `hotels` table. Hotels are seeded by an
// administrator and are read-only as far as this service is concerned.
// Amenities are stored as a single comma-separated column and split into
// a list at the repository boundary.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – display name of the hotel.
//	City          – city the hotel is located in.
//	Country       – country the hotel is located in.
//	PricePerNight – representative nightly price used for listing filters.
//	Rating        – aggregate guest rating (0–5).
//	Description   – free-text marketing description.
//	Amenities     – raw amenities column ("wifi,pool,spa").
//	ImageURL      – reference to the hotel's cover image.
type Hotel struct {
	ID            int64   // hotels.id
	Name          string  // hotels.name
	City          string  // hotels.city
	Country       string  // hotels.country
	PricePerNight float64 // hotels.price_per_night
	Rating        float64 // hotels.rating
	Description   string  // hotels.description
	Amenities     string  // hotels.amenities (comma separated)
	ImageURL      string  // hotels.image_url
}
