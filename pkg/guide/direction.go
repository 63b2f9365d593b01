package guide

import (
	"fmt"
	"strings"
)

// Direction selects which of the two alert workflows is shown.
type Direction int

const (
	// Buy is the long-entry alert workflow. It is the default.
	Buy Direction = iota
	// Sell is the long-exit alert workflow.
	Sell
)

// Directions lists every direction in tab order.
var Directions = []Direction{Buy, Sell}

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the two defined directions.
func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}

// Other returns the opposite direction.
func (d Direction) Other() Direction {
	if d == Sell {
		return Buy
	}
	return Sell
}

// ParseDirection accepts "buy"/"sell" and the long-entry/long-exit aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long-entry", "entry", "long":
		return Buy, nil
	case "sell", "long-exit", "exit":
		return Sell, nil
	default:
		return Buy, fmt.Errorf("unknown direction %q (want buy or sell)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
