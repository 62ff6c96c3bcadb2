// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public catalog handlers: hotel listing
// with optional filters and the hotel detail page with its available
// rooms. Both are pure reads with no invariants beyond echoing store
// contents.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dkoval23/hotel-booking-api/internal/model"
	"github.com/dkoval23/hotel-booking-api/internal/repository"
)

// HotelHandler aggregates the repositories needed for unauthenticated
// catalog browsing.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

// NewHotelHandler constructs a HotelHandler and panics if a dependency is nil.
func NewHotelHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo) *HotelHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Rooms: rooms}
}

// hotelResp is the public projection of a hotel with the amenities
// column split into a list.
type hotelResp struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"image_url"`
}

type roomResp struct {
	ID             int64    `json:"id"`
	HotelID        int64    `json:"hotel_id"`
	RoomType       string   `json:"room_type"`
	Capacity       int      `json:"capacity"`
	Price          float64  `json:"price"`
	Amenities      []string `json:"amenities"`
	AvailableRooms int      `json:"available_rooms"`
}

func toHotelResp(h model.Hotel) hotelResp {
	return hotelResp{
		ID:            h.ID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		PricePerNight: h.PricePerNight,
		Rating:        h.Rating,
		Description:   h.Description,
		Amenities:     splitAmenities(h.Amenities),
		ImageURL:      h.ImageURL,
	}
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID:             r.ID,
		HotelID:        r.HotelID,
		RoomType:       r.RoomType,
		Capacity:       r.Capacity,
		Price:          r.Price,
		Amenities:      splitAmenities(r.Amenities),
		AvailableRooms: r.AvailableRooms,
	}
}

// List handles GET /hotels. Optional query parameters: city (substring
// matched against city or name), minPrice, maxPrice, rating. Results are
// ordered by rating descending then price ascending. Unparseable numeric
// filters are ignored rather than rejected, matching how the search form
// drives this endpoint.
func (h *HotelHandler) List(c echo.Context) error {
	var f repository.HotelFilter
	f.City = c.QueryParam("city")
	if v := c.QueryParam("minPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &n
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &n
		}
	}
	if v := c.QueryParam("rating"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.Rating = &n
		}
	}

	hotels, err := h.Hotels.List(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("hotels: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch hotels"})
	}
	out := make([]hotelResp, 0, len(hotels))
	for _, hot := range hotels {
		out = append(out, toHotelResp(hot))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /hotels/:id. It returns the hotel together with its
// rooms that still have availability, cheapest room first.
func (h *HotelHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		c.Logger().Errorf("hotels: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch hotel"})
	}
	rooms, err := h.Rooms.ListAvailableByHotel(ctx, id)
	if err != nil {
		c.Logger().Errorf("hotels: rooms for %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch hotel"})
	}
	outRooms := make([]roomResp, 0, len(rooms))
	for _, rm := range rooms {
		outRooms = append(outRooms, toRoomResp(rm))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel": toHotelResp(hotel),
		"rooms": outRooms,
	})
}
