package component

import (
	"fmt"
	"strings"
)

// Direction is the horizontal facing of an actor.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// Sign returns -1 for left and +1 for right.
func (d Direction) Sign() float64 {
	if d == DirLeft {
		return -1
	}
	return 1
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	if d == DirLeft {
		return DirRight
	}
	return DirLeft
}

func (d Direction) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// ParseDirection accepts "left" or "right" (case-insensitive). An empty string
// yields the fallback.
func ParseDirection(s string, fallback Direction) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return fallback, fmt.Errorf("direction: unknown value %q", s)
}
