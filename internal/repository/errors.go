// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import "errors"

// ErrRoomUnavailable is returned when the conditional availability
// decrement matches no row, meaning the room's inventory is exhausted.
// Handlers should translate this into the unavailable-room response.
var ErrRoomUnavailable = errors.New("room unavailable")
