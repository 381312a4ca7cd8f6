package api

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/power-server/api/model"
	"github.com/a-bouts/power-server/power"
	"github.com/a-bouts/power-server/validation"
)

// inputs are the validated parameters of one power balance
type inputs struct {
	label    string
	trip     power.Trip
	env      power.Environment
	source   power.Source
	devices  *power.Devices
	prices   power.Prices
	distance *float64
	save     bool
}

func (s *server) batteryCapacity(b model.Battery) (float64, error) {
	if b.Capacity != nil {
		return *b.Capacity, nil
	}
	if b.Type == "" {
		return power.BatteryCapacity(power.LeadAcid)
	}
	return power.BatteryCapacity(b.Type)
}

// prepare resolves the battery, the route duration and the forecast wind,
// then validates everything before the engine is called.
func (s *server) prepare(r model.Compute) (*inputs, error) {
	in := &inputs{
		label:  r.Label,
		trip:   r.Trip,
		env:    r.Environment,
		prices: s.prices,
		save:   r.Save,
	}
	if r.Prices != nil {
		in.prices = *r.Prices
	}

	capacity, err := s.batteryCapacity(r.Battery)
	if err != nil {
		return nil, err
	}
	in.source = power.Source{BatteryCapacity: capacity, SolarPower: r.SolarPower}

	if r.Route != nil {
		if err := validation.Route(*r.Route); err != nil {
			return nil, err
		}
		d := r.Route.Distance()
		in.distance = &d
		if duration, ok := r.Route.Duration(r.Trip.Speed); ok {
			in.trip.Duration = duration
		}
	}

	if r.Forecast != nil {
		if err := s.forecastWind(r, in); err != nil {
			return nil, err
		}
	}

	if err := validation.Inputs(in.trip, in.env, in.source, r.Devices, in.prices); err != nil {
		return nil, err
	}

	in.devices = power.NewDevices(r.Devices...)
	return in, nil
}

func (s *server) forecastWind(r model.Compute, in *inputs) error {
	if s.winds == nil {
		return fmt.Errorf("forecast wind: %w", errNoWinds)
	}

	position := r.Forecast.Position
	if position == nil && r.Route != nil {
		position = &r.Route.Start
	}
	if position == nil {
		return errNoPosition
	}
	if err := validation.LatLon(*position, "forecast.position"); err != nil {
		return err
	}

	at := r.Forecast.Time
	if at.IsZero() {
		at = s.now()
	}

	speed, err := s.winds.SpeedAt(at, *position)
	if err != nil {
		return fmt.Errorf("forecast wind: %w", err)
	}
	log.Debugf("Forecast wind at (%f,%f) %s : %.1f kt", position.Lat, position.Lon, at.String(), speed)

	in.env.WindSpeed = speed
	return nil
}

func (in *inputs) compute() power.Result {
	return power.Compute(in.trip, in.env, in.source, in.devices, in.prices)
}

func (in *inputs) result(r power.Result) model.Result {
	res := model.NewResult(r)
	res.Duration = in.trip.Duration
	res.Distance = in.distance
	res.WindSpeed = in.env.WindSpeed
	res.BatteryCapacity = in.source.BatteryCapacity
	res.Devices = in.devices.List()
	return res
}
