package handler // handler defines http handlers

import (
	"errors"  // errors provides the sentinel used in getUserID
	"strconv" // strconv converts strings to numeric types
	"strings" // strings provides trimming and splitting helpers

	"github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the authenticated user's id from echo.Context. The
// JWT middleware stores it as int64, but the claim may surface as a
// float or string depending on how the token was minted, so the helper
// normalizes all of them.
func getUserID(c echo.Context) (int64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// splitAmenities turns the comma-separated amenities column into a list
// for JSON responses. An empty column yields an empty list, not null.
func splitAmenities(raw string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
