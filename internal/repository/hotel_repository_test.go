package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hotelCols = []string{"id", "name", "city", "country", "price_per_night", "rating", "description", "amenities", "image_url"}

func TestHotelRepoListNoFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM hotels WHERE 1=1 ORDER BY rating DESC, price_per_night ASC")).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand", "Paris", "France", 250.0, 4.8, "desc", "wifi,pool", "grand.jpg").
			AddRow(2, "Budget Inn", "Paris", "France", 60.0, 3.9, "desc", "wifi", "inn.jpg"))

	hotels, err := repo.List(context.Background(), HotelFilter{})
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Grand", hotels[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelRepoListAllFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)

	min, max, rating := 100.0, 200.0, 4.0
	mock.ExpectQuery(regexp.QuoteMeta("AND (city LIKE ? OR name LIKE ?) AND price_per_night >= ? AND price_per_night <= ? AND rating >= ?")).
		WithArgs("%Paris%", "%Paris%", 100.0, 200.0, 4.0).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand", "Paris", "France", 150.0, 4.8, "desc", "wifi", "grand.jpg"))

	hotels, err := repo.List(context.Background(), HotelFilter{
		City: "Paris", MinPrice: &min, MaxPrice: &max, Rating: &rating,
	})
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelRepoGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)

	mock.ExpectQuery("FROM hotels WHERE id =").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(hotelCols))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestHotelRepoGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)

	mock.ExpectQuery("FROM hotels WHERE id =").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand", "Paris", "France", 250.0, 4.8, "desc", "wifi,pool,spa", "grand.jpg"))

	h, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Grand", h.Name)
	assert.Equal(t, "wifi,pool,spa", h.Amenities)
}
