package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval23/hotel-booking-api/internal/model"
	"github.com/dkoval23/hotel-booking-api/internal/repository"
)

var roomCols = []string{"id", "hotel_id", "room_type", "capacity", "price", "amenities", "available_rooms"}

// newBookingHandler builds a handler over a mocked store with the
// post-commit publish hook stubbed out, so tests never touch a broker.
func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	h := NewBookingHandler(repository.NewBookingRepo(db), repository.NewRoomRepo(db), repository.NewHotelRepo(db))
	h.publish = func(model.Booking, model.Room) {}
	return h, mock
}

func asUser(uid int64) func(echo.Context) {
	return func(c echo.Context) { c.Set("user_id", uid) }
}

// stay returns a valid future stay as wire-format dates.
func stay() (string, string) {
	ci := time.Now().UTC().AddDate(0, 0, 30)
	co := ci.AddDate(0, 0, 3)
	return ci.Format(dateLayout), co.Format(dateLayout)
}

func bookingBody(overrides map[string]any) string {
	ci, co := stay()
	m := map[string]any{
		"user_id": 7, "hotel_id": 1, "room_id": 10,
		"check_in": ci, "check_out": co,
		"guests": 2, "total_amount": 420.0,
	}
	for k, v := range overrides {
		if v == nil {
			delete(m, k)
		} else {
			m[k] = v
		}
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func TestCreateBookingMissingFieldOrder(t *testing.T) {
	h, _ := newBookingHandler(t)

	// Walk the fixed field list: dropping a field reports that field, and
	// with several missing the first in order wins.
	for _, field := range []string{"user_id", "hotel_id", "room_id", "check_in", "check_out", "guests", "total_amount"} {
		rec := doJSON(t, h.Create, http.MethodPost, "/bookings",
			bookingBody(map[string]any{field: nil}), asUser(7))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, fmt.Sprintf("missing required field: %s", field), errField(t, rec))
	}

	rec := doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"room_id": nil, "guests": nil}), asUser(7))
	assert.Equal(t, "missing required field: room_id", errField(t, rec))

	// Blank strings count as missing, not as zero values.
	rec = doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"guests": "  "}), asUser(7))
	assert.Equal(t, "missing required field: guests", errField(t, rec))

	// So does the number zero: a zero-guest or zero-amount booking is
	// rejected before any coercion runs.
	rec = doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"guests": 0}), asUser(7))
	assert.Equal(t, "missing required field: guests", errField(t, rec))
	rec = doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"total_amount": 0}), asUser(7))
	assert.Equal(t, "missing required field: total_amount", errField(t, rec))
}

func TestCreateBookingDateValidation(t *testing.T) {
	h, _ := newBookingHandler(t)
	ci, _ := stay()

	rec := doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"check_out": ci}), asUser(7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "check_out must be after check_in", errField(t, rec))

	past := time.Now().UTC().AddDate(0, 0, -2).Format(dateLayout)
	pastOut := time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
	rec = doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"check_in": past, "check_out": pastOut}), asUser(7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "check_in must not be in the past", errField(t, rec))

	rec = doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"check_in": "not-a-date"}), asUser(7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid value for field: check_in", errField(t, rec))
}

func TestCreateBookingForeignUserForbidden(t *testing.T) {
	h, _ := newBookingHandler(t)

	// The token says user 7; the body claims user 8. The token wins.
	rec := doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"user_id": 8}), asUser(7))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateBookingSuccess(t *testing.T) {
	h, mock := newBookingHandler(t)
	ci, co := stay()
	checkIn, _ := time.Parse(dateLayout, ci)
	checkOut, _ := time.Parse(dateLayout, co)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id = \\? AND hotel_id = \\?").
		WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(10, 1, "Deluxe", 3, 140.0, "wifi", 2))
	mock.ExpectExec("UPDATE rooms SET available_rooms = available_rooms - 1").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(7), int64(1), int64(10), checkIn, checkOut, 2, 420.0, "confirmed").
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings WHERE id =").
		WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
	mock.ExpectCommit()

	// Numeric fields arrive as strings from the booking form; the core
	// coerces them.
	rec := doJSON(t, h.Create, http.MethodPost, "/bookings",
		bookingBody(map[string]any{"user_id": "7", "total_amount": "420"}), asUser(7))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Booking struct {
			ID       int64  `json:"id"`
			UserID   int64  `json:"user_id"`
			Status   string `json:"status"`
			CheckIn  string `json:"check_in"`
			CheckOut string `json:"check_out"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(33), body.Booking.ID)
	assert.Equal(t, int64(7), body.Booking.UserID)
	assert.Equal(t, "confirmed", body.Booking.Status)
	assert.Equal(t, ci, body.Booking.CheckIn)
	assert.Equal(t, co, body.Booking.CheckOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingLastRoomSingleWinner(t *testing.T) {
	// Five callers race for one remaining room. The store hands out the
	// guarded decrement to exactly one transaction; the rest observe zero
	// affected rows. Expectations are unordered so the goroutines may
	// interleave freely.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	h := NewBookingHandler(repository.NewBookingRepo(db), repository.NewRoomRepo(db), repository.NewHotelRepo(db))
	h.publish = func(model.Booking, model.Room) {}

	const callers = 5
	for i := 0; i < callers; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM rooms WHERE id = \\? AND hotel_id = \\?").
			WithArgs(int64(10), int64(1)).
			WillReturnRows(sqlmock.NewRows(roomCols).AddRow(10, 1, "Deluxe", 3, 140.0, "wifi", 1))
	}
	mock.ExpectExec("UPDATE rooms SET available_rooms = available_rooms - 1").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i := 1; i < callers; i++ {
		mock.ExpectExec("UPDATE rooms SET available_rooms = available_rooms - 1").
			WithArgs(int64(10), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings WHERE id =").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
	mock.ExpectCommit()
	for i := 1; i < callers; i++ {
		mock.ExpectRollback()
	}

	e := echo.New()
	codes := make(chan int, callers)
	body := bookingBody(nil)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("user_id", int64(7))
			if err := h.Create(c); err != nil {
				codes <- http.StatusInternalServerError
				return
			}
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	won, lost := 0, 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			won++
		case http.StatusBadRequest:
			lost++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, callers-1, lost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id = \\? AND hotel_id = \\?").
		WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectRollback()

	rec := doJSON(t, h.Create, http.MethodPost, "/bookings", bookingBody(nil), asUser(7))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "room not found", errField(t, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRoomUnavailable(t *testing.T) {
	h, mock := newBookingHandler(t)

	// The guarded decrement matches nothing: inventory is exhausted. The
	// transaction rolls back and no booking insert is ever attempted.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id = \\? AND hotel_id = \\?").
		WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(10, 1, "Deluxe", 3, 140.0, "wifi", 0))
	mock.ExpectExec("UPDATE rooms SET available_rooms = available_rooms - 1").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rec := doJSON(t, h.Create, http.MethodPost, "/bookings", bookingBody(nil), asUser(7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "room is no longer available", errField(t, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInsertFailureRollsBack(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM rooms WHERE id = \\? AND hotel_id = \\?").
		WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(10, 1, "Deluxe", 3, 140.0, "wifi", 2))
	mock.ExpectExec("UPDATE rooms SET available_rooms = available_rooms - 1").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	rec := doJSON(t, h.Create, http.MethodPost, "/bookings", bookingBody(nil), asUser(7))
	// The decrement is rolled back with the failed insert: either both
	// writes persist or neither does.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to create booking", errField(t, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnauthenticated(t *testing.T) {
	h, _ := newBookingHandler(t)
	rec := doJSON(t, h.Create, http.MethodPost, "/bookings", bookingBody(nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListBookingsForeignFilterForbidden(t *testing.T) {
	h, _ := newBookingHandler(t)
	rec := doJSON(t, h.List, http.MethodGet, "/bookings?user_id=8", "", asUser(7))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListBookings(t *testing.T) {
	h, mock := newBookingHandler(t)

	cols := []string{
		"id", "user_id", "hotel_id", "room_id",
		"check_in", "check_out", "guests", "total_amount", "status", "created_at",
		"name", "city", "image_url", "room_type", "price",
	}
	ci := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	co := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, 7, 1, 10, ci, co, 2, 420.0, "confirmed", time.Now(), "Grand", "Paris", "grand.jpg", "Deluxe", 140.0))

	// Matching own filter is allowed.
	rec := doJSON(t, h.List, http.MethodGet, "/bookings?user_id=7", "", asUser(7))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Grand", out[0]["hotel_name"])
	assert.Equal(t, "Paris", out[0]["hotel_city"])
	assert.Equal(t, "Deluxe", out[0]["room_type"])
}
