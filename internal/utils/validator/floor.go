package validator

import (
	"fmt"
	"strconv"
)

const (
	MinFloor = 0
	MaxFloor = 999
)

// ParseFloorID validates the floor identifier from a request path and
// returns it as a number.
func ParseFloorID(raw string) (int, error) {
	floor, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("floor id must be numeric: %q", raw)
	}
	if floor < MinFloor || floor > MaxFloor {
		return 0, fmt.Errorf("floor id out of range [%d, %d]: %d", MinFloor, MaxFloor, floor)
	}
	return floor, nil
}
