package handler

import (
	"context"  // detached context for post-commit event publishing
	"errors"   // errors.Is comparisons against repository sentinels
	"fmt"      // building validation messages
	"net/http" // HTTP status codes
	"strconv"  // query parameter parsing
	"strings"  // trimming and normalization
	"time"     // date parsing and timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/dkoval23/hotel-booking-api/internal/model"
	"github.com/dkoval23/hotel-booking-api/internal/queue"
	"github.com/dkoval23/hotel-booking-api/internal/repository"
	queue_publisher "github.com/dkoval23/hotel-booking-api/internal/service"
)

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// BookingHandler groups the repositories required to create bookings and
// list booking history. All methods assume JWT authentication has been
// performed by middleware; the identity extracted from the token is
// authoritative and any client-supplied user id is validated against it.
// The create path runs its store operations inside one transaction so
// the booking insert and the availability decrement are atomic as a unit.
type BookingHandler struct {
	Bookings *repository.BookingRepo // bookings and booking history
	Rooms    *repository.RoomRepo    // room lookup and the availability counter
	Hotels   *repository.HotelRepo   // hotel lookup for event enrichment

	// publish is the post-commit side effect; substitutable in tests.
	publish func(b model.Booking, room model.Room)
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories. All dependencies must be non-nil.
func NewBookingHandler(bookings *repository.BookingRepo, rooms *repository.RoomRepo, hotels *repository.HotelRepo) *BookingHandler {
	if bookings == nil || rooms == nil || hotels == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	h := &BookingHandler{Bookings: bookings, Rooms: rooms, Hotels: hotels}
	h.publish = h.publishConfirmed
	return h
}

// createBookingReq deliberately binds every field as an untyped value:
// the booking form submits ids and amounts either as JSON numbers or as
// strings, and validation has to report the first field that is missing
// altogether, which a typed struct cannot distinguish from a zero value.
type createBookingReq struct {
	UserID      interface{} `json:"user_id"`
	HotelID     interface{} `json:"hotel_id"`
	RoomID      interface{} `json:"room_id"`
	CheckIn     interface{} `json:"check_in"`
	CheckOut    interface{} `json:"check_out"`
	Guests      interface{} `json:"guests"`
	TotalAmount interface{} `json:"total_amount"`
	Status      interface{} `json:"status"`
}

// orderedFields returns the request fields in the order validation walks
// them; the first absent one names the validation error.
func (r *createBookingReq) orderedFields() []struct {
	name  string
	value interface{}
} {
	return []struct {
		name  string
		value interface{}
	}{
		{"user_id", r.UserID},
		{"hotel_id", r.HotelID},
		{"room_id", r.RoomID},
		{"check_in", r.CheckIn},
		{"check_out", r.CheckOut},
		{"guests", r.Guests},
		{"total_amount", r.TotalAmount},
	}
}

// present reports whether a bound value counts as supplied: nil, blank
// strings and the number zero do not. Zero is deliberate: no field in
// the request has a meaningful zero value, and the booking form never
// submits one.
func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	}
	return true
}

// coerceInt converts a JSON number or numeric string to int64.
func coerceInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// coerceFloat converts a JSON number or numeric string to float64.
func coerceFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// coerceDate parses a YYYY-MM-DD value.
func coerceDate(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Create handles POST /bookings, the one operation in the system with a
// correctness invariant spanning multiple store statements. The sequence
// inside the transaction is: load the room by (room_id, hotel_id),
// conditionally decrement available_rooms guarded by the zero floor, and
// insert the booking row. A zero-affected-rows decrement is the
// unavailability signal; any later failure rolls the decrement back, so
// either both writes persist or neither does.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	for _, f := range req.orderedFields() {
		if !present(f.value) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("missing required field: %s", f.name)})
		}
	}

	userID, ok := coerceInt(req.UserID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: user_id"})
	}
	hotelID, ok := coerceInt(req.HotelID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: hotel_id"})
	}
	roomID, ok := coerceInt(req.RoomID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: room_id"})
	}
	guests, ok := coerceInt(req.Guests)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: guests"})
	}
	totalAmount, ok := coerceFloat(req.TotalAmount)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: total_amount"})
	}
	checkIn, ok := coerceDate(req.CheckIn)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: check_in"})
	}
	checkOut, ok := coerceDate(req.CheckOut)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid value for field: check_out"})
	}

	// Date sanity lives in the core, not just in the booking form: a stay
	// must end after it begins and cannot start in the past.
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	today, _ := time.Parse(dateLayout, time.Now().UTC().Format(dateLayout))
	if checkIn.Before(today) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must not be in the past"})
	}

	// The token, not the body, decides who is booking.
	if userID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	status := "confirmed"
	if s, ok := req.Status.(string); ok && strings.TrimSpace(s) != "" {
		status = strings.TrimSpace(s)
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("bookings: begin tx failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := h.Rooms.GetTx(ctx, tx, roomID, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("bookings: room lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if err := h.Rooms.DecrementAvailabilityTx(ctx, tx, roomID, hotelID); err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is no longer available"})
		}
		c.Logger().Errorf("bookings: availability decrement failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	booking := &model.Booking{
		UserID:      userID,
		HotelID:     hotelID,
		RoomID:      roomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      int(guests),
		TotalAmount: totalAmount,
		Status:      status,
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		c.Logger().Errorf("bookings: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("bookings: commit failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	committed = true

	// Best-effort event for downstream consumers; a broker outage must
	// never fail a booking that already committed.
	go h.publish(*booking, room)

	return c.JSON(http.StatusOK, echo.Map{"booking": toBookingResp(*booking)})
}

// bookingResp is the created-booking projection with stay dates rendered
// as calendar dates.
type bookingResp struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	HotelID     int64   `json:"hotel_id"`
	RoomID      int64   `json:"room_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Guests      int     `json:"guests"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:          b.ID,
		UserID:      b.UserID,
		HotelID:     b.HotelID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn.Format(dateLayout),
		CheckOut:    b.CheckOut.Format(dateLayout),
		Guests:      b.Guests,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// publishConfirmed enriches the committed booking with hotel details and
// hands it to the queue publisher. Failures are logged by the publisher.
func (h *BookingHandler) publishConfirmed(b model.Booking, room model.Room) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		HotelID:     b.HotelID,
		RoomID:      b.RoomID,
		RoomType:    room.RoomType,
		CheckIn:     b.CheckIn.Format(dateLayout),
		CheckOut:    b.CheckOut.Format(dateLayout),
		Guests:      b.Guests,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if hotel, err := h.Hotels.GetByID(ctx, b.HotelID); err == nil {
		ev.HotelName = hotel.Name
		ev.HotelCity = hotel.City
	}
	_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
}

// List handles GET /bookings. The authenticated identity decides whose
// bookings are returned; a user_id query parameter is accepted for
// compatibility with the booking-history page but must match the token,
// otherwise the request is rejected rather than trusted.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if v := c.QueryParam("user_id"); v != "" {
		requested, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		if requested != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		c.Logger().Errorf("bookings: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, details)
}
