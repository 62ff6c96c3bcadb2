package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval23/hotel-booking-api/internal/repository"
)

var hotelCols = []string{"id", "name", "city", "country", "price_per_night", "rating", "description", "amenities", "image_url"}

func newHotelHandler(t *testing.T) (*HotelHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewHotelHandler(repository.NewHotelRepo(db), repository.NewRoomRepo(db)), mock
}

func TestListHotels(t *testing.T) {
	h, mock := newHotelHandler(t)

	mock.ExpectQuery("FROM hotels WHERE 1=1 ORDER BY rating DESC, price_per_night ASC").
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand", "Paris", "France", 180.0, 4.7, "Near the river", "wifi, pool, spa", "grand.jpg").
			AddRow(2, "Budget Inn", "Paris", "France", 60.0, 3.9, "", "", "inn.jpg"))

	rec := doJSON(t, h.List, http.MethodGet, "/hotels", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The response is a plain array, not wrapped in an envelope.
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Grand", out[0]["name"])
	assert.Equal(t, []any{"wifi", "pool", "spa"}, out[0]["amenities"])
	// An empty amenities column still serializes as [], never null.
	assert.Equal(t, []any{}, out[1]["amenities"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHotelsFilters(t *testing.T) {
	h, mock := newHotelHandler(t)

	mock.ExpectQuery(`FROM hotels WHERE 1=1 AND \(city LIKE \? OR name LIKE \?\) AND price_per_night >= \? AND price_per_night <= \? AND rating >= \?`).
		WithArgs("%paris%", "%paris%", 50.0, 200.0, 4.0).
		WillReturnRows(sqlmock.NewRows(hotelCols))

	rec := doJSON(t, h.List, http.MethodGet,
		"/hotels?city=paris&minPrice=50&maxPrice=200&rating=4", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHotelsIgnoresBadNumericFilters(t *testing.T) {
	h, mock := newHotelHandler(t)

	// minPrice=abc drops silently; only the city condition survives.
	mock.ExpectQuery(`FROM hotels WHERE 1=1 AND \(city LIKE \? OR name LIKE \?\) ORDER BY`).
		WithArgs("%Rome%", "%Rome%").
		WillReturnRows(sqlmock.NewRows(hotelCols))

	rec := doJSON(t, h.List, http.MethodGet, "/hotels?city=Rome&minPrice=abc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHotelInvalidID(t *testing.T) {
	h, _ := newHotelHandler(t)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := doJSON(t, h.Get, http.MethodGet, "/hotels/"+id, "", func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(id)
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid hotel id", errField(t, rec))
	}
}

func TestGetHotelNotFound(t *testing.T) {
	h, mock := newHotelHandler(t)

	mock.ExpectQuery("FROM hotels WHERE id = \\?").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(hotelCols))

	rec := doJSON(t, h.Get, http.MethodGet, "/hotels/42", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("42")
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "hotel not found", errField(t, rec))
}

func TestGetHotelWithRooms(t *testing.T) {
	h, mock := newHotelHandler(t)

	mock.ExpectQuery("FROM hotels WHERE id = \\?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand", "Paris", "France", 180.0, 4.7, "Near the river", "wifi, pool", "grand.jpg"))
	mock.ExpectQuery(`FROM rooms\s+WHERE hotel_id = \? AND available_rooms > 0\s+ORDER BY price ASC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roomCols).
			AddRow(10, 1, "Standard", 2, 90.0, "wifi", 4).
			AddRow(11, 1, "Deluxe", 3, 140.0, "wifi, balcony", 1))

	rec := doJSON(t, h.Get, http.MethodGet, "/hotels/1", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("1")
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hotel hotelResp  `json:"hotel"`
		Rooms []roomResp `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Grand", body.Hotel.Name)
	assert.Equal(t, []string{"wifi", "pool"}, body.Hotel.Amenities)
	require.Len(t, body.Rooms, 2)
	assert.Equal(t, "Standard", body.Rooms[0].RoomType)
	assert.Equal(t, []string{"wifi", "balcony"}, body.Rooms[1].Amenities)
	assert.NoError(t, mock.ExpectationsWereMet())
}
