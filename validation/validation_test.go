package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/power"
)

func validTrip() power.Trip {
	return power.Trip{Speed: 10, Weight: 10, Duration: 1, BoatType: power.Yacht, EngineType: power.Electric}
}

func TestTrip(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*power.Trip)
		want   error
	}{
		{"valid", func(*power.Trip) {}, nil},
		{"no boat type", func(t *power.Trip) { t.BoatType = "" }, nil},
		{"negative speed", func(t *power.Trip) { t.Speed = -1 }, ErrInvalidSpeed},
		{"nan weight", func(t *power.Trip) { t.Weight = math.NaN() }, ErrInvalidWeight},
		{"infinite duration", func(t *power.Trip) { t.Duration = math.Inf(1) }, ErrInvalidDuration},
		{"longest duration", func(t *power.Trip) { t.Duration = power.MaxDuration }, nil},
		{"too long", func(t *power.Trip) { t.Duration = 1e12 }, ErrDurationTooLong},
		{"unknown engine", func(t *power.Trip) { t.EngineType = "Steam" }, ErrUnknownEngineType},
		{"unknown boat", func(t *power.Trip) { t.BoatType = "Canoe" }, ErrUnknownBoatType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := validTrip()
			tt.modify(&trip)
			assert.Equal(t, tt.want, Trip(trip))
		})
	}
}

func TestInputs(t *testing.T) {
	env := power.Environment{WindSpeed: 10, WaveHeight: 1}
	source := power.Source{BatteryCapacity: 50, SolarPower: 1}
	devices := []power.Device{{Name: "Fridge", Power: 100}}

	assert.NoError(t, Inputs(validTrip(), env, source, devices, power.DefaultPrices()))

	err := Inputs(validTrip(), power.Environment{WaveHeight: -1}, source, devices, power.DefaultPrices())
	assert.Equal(t, ErrInvalidWaveHeight, err)

	err = Inputs(validTrip(), env, power.Source{SolarPower: -2}, devices, power.DefaultPrices())
	assert.Equal(t, ErrInvalidBattery, err)

	err = Inputs(validTrip(), env, source, []power.Device{{Name: " ", Power: 1}}, power.DefaultPrices())
	assert.True(t, errors.Is(err, ErrInvalidDevice))

	err = Inputs(validTrip(), env, source, devices, power.Prices{Diesel: -1})
	assert.Equal(t, ErrInvalidPrice, err)
}

func TestRoute(t *testing.T) {
	assert.NoError(t, Route(latlon.Route{Start: latlon.LatLon{Lat: 43.3, Lon: 5.4}, End: latlon.LatLon{Lat: 41.9, Lon: 8.7}}))

	err := Route(latlon.Route{Start: latlon.LatLon{Lat: 91}})
	var coordErr *CoordinateError
	if assert.True(t, errors.As(err, &coordErr)) {
		assert.Equal(t, "start.lat", coordErr.Field)
	}

	err = Route(latlon.Route{End: latlon.LatLon{Lon: math.NaN()}})
	if assert.True(t, errors.As(err, &coordErr)) {
		assert.Equal(t, "end.lon", coordErr.Field)
	}
}
