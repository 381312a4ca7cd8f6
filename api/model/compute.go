package model

import (
	"time"

	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/power"
)

type Compute struct {
	Label       string            `json:"label"`
	Trip        power.Trip        `json:"trip"`
	Environment power.Environment `json:"environment"`
	Battery     Battery           `json:"battery"`
	SolarPower  float64           `json:"solarPower"`
	Devices     []power.Device    `json:"devices"`
	Prices      *power.Prices     `json:"prices"`
	Route       *latlon.Route     `json:"route"`
	Forecast    *Forecast         `json:"forecast"`
	Save        bool              `json:"save"`
}

// Battery is selected by type unless a capacity in kWh is given.
type Battery struct {
	Type     power.BatteryType `json:"type"`
	Capacity *float64          `json:"capacity"`
}

// Forecast asks for the wind speed to be read from the loaded forecasts at
// Position, or at the route start, at Time, or now.
type Forecast struct {
	Time     time.Time      `json:"time"`
	Position *latlon.LatLon `json:"position"`
}

type Distance struct {
	NauticalMiles float64 `json:"nauticalMiles"`
	Bearing       float64 `json:"bearing"`
}
