// scoring/impact.go - Carbon and EcoPoints calculation
package scoring

import (
	"errors"
	"fmt"
	"math"
)

// PointsPerKg is how many EcoPoints one kilogram of CO2e is worth.
const PointsPerKg = 2.0

// MaxCarbon bounds the carbon of a single activity in kg CO2e, either sign.
const MaxCarbon = 1e6

// MaxPoints is the largest point value a single activity can carry.
const MaxPoints = math.MaxInt32

// Impact is the result of applying an emission factor to a quantity.
type Impact struct {
	Carbon float64 `json:"carbon"`
	Points int     `json:"points"`
}

// CalculateImpact returns carbon = quantity × factor and the points for that carbon.
// Callers must pass finite values; see CheckFinite.
func CalculateImpact(quantity, factor float64) Impact {
	carbon := quantity * factor
	return Impact{
		Carbon: carbon,
		Points: PointsForCarbon(carbon),
	}
}

// PointsForCarbon converts signed carbon to signed points. Emitting costs points,
// avoiding earns them: points = round(-carbon × 2), halves rounded away from zero.
// Points are snapshotted on the activity at write time and never recomputed.
// Results outside ±MaxPoints saturate.
func PointsForCarbon(carbon float64) int {
	p := math.Round(-carbon * PointsPerKg)
	switch {
	case p == 0 || math.IsNaN(p):
		return 0
	case p > MaxPoints:
		return MaxPoints
	case p < -MaxPoints:
		return -MaxPoints
	}
	return int(p)
}

// ErrNotFinite is returned for NaN or infinite numeric input.
var ErrNotFinite = errors.New("value must be a finite number")

// ErrOutOfRange is returned for carbon beyond ±MaxCarbon.
var ErrOutOfRange = fmt.Errorf("carbon impact must be within ±%g kg", MaxCarbon)

// CheckFinite returns ErrNotFinite (wrapped with the field name) for NaN or ±Inf.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrNotFinite)
	}
	return nil
}

// CheckCarbon rejects non-finite carbon and carbon beyond ±MaxCarbon.
func CheckCarbon(field string, carbon float64) error {
	if err := CheckFinite(field, carbon); err != nil {
		return err
	}
	if math.Abs(carbon) > MaxCarbon {
		return fmt.Errorf("%s: %w", field, ErrOutOfRange)
	}
	return nil
}
