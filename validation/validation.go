package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/power"
)

// CoordinateError reports an out of range latitude or longitude
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (value: %.6f)", e.Field, e.Message, e.Value)
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func coordinate(v float64, field string, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &CoordinateError{Field: field, Value: v, Message: "not a finite number"}
	}
	if v < -limit || v > limit {
		return &CoordinateError{Field: field, Value: v, Message: fmt.Sprintf("must be between -%g and %g", limit, limit)}
	}
	return nil
}

func LatLon(p latlon.LatLon, name string) error {
	if err := coordinate(p.Lat, name+".lat", 90); err != nil {
		return err
	}
	return coordinate(p.Lon, name+".lon", 180)
}

func Route(r latlon.Route) error {
	if err := LatLon(r.Start, "start"); err != nil {
		return err
	}
	return LatLon(r.End, "end")
}

// Trip checks the boat parameters. An empty boat type is accepted.
func Trip(t power.Trip) error {
	if !nonNegative(t.Speed) {
		return ErrInvalidSpeed
	}
	if !nonNegative(t.Weight) {
		return ErrInvalidWeight
	}
	if !nonNegative(t.Duration) {
		return ErrInvalidDuration
	}
	if t.Duration > power.MaxDuration {
		return ErrDurationTooLong
	}
	if !t.EngineType.Valid() {
		return ErrUnknownEngineType
	}
	if t.BoatType != "" && !t.BoatType.Valid() {
		return ErrUnknownBoatType
	}
	return nil
}

func Environment(e power.Environment) error {
	if !nonNegative(e.WindSpeed) {
		return ErrInvalidWindSpeed
	}
	if !nonNegative(e.WaveHeight) {
		return ErrInvalidWaveHeight
	}
	return nil
}

func Source(s power.Source) error {
	if !nonNegative(s.BatteryCapacity) {
		return ErrInvalidBattery
	}
	if !nonNegative(s.SolarPower) {
		return ErrInvalidSolarPower
	}
	return nil
}

func Prices(p power.Prices) error {
	if !nonNegative(p.Electricity) || !nonNegative(p.Diesel) || !nonNegative(p.Gasoline) {
		return ErrInvalidPrice
	}
	return nil
}

func Devices(devices []power.Device) error {
	for i, d := range devices {
		if strings.TrimSpace(d.Name) == "" || !nonNegative(d.Power) {
			return fmt.Errorf("device %d: %w", i, ErrInvalidDevice)
		}
	}
	return nil
}

// Inputs runs every check of a power balance call.
func Inputs(t power.Trip, e power.Environment, s power.Source, devices []power.Device, p power.Prices) error {
	if err := Trip(t); err != nil {
		return err
	}
	if err := Environment(e); err != nil {
		return err
	}
	if err := Source(s); err != nil {
		return err
	}
	if err := Devices(devices); err != nil {
		return err
	}
	return Prices(p)
}
