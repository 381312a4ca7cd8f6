package model

import (
	"github.com/a-bouts/power-server/history"
	"github.com/a-bouts/power-server/power"
)

// Result is the JSON form of a power balance. BatteryLife is null when unbounded.
type Result struct {
	RunID                string              `json:"runId,omitempty"`
	Duration             float64             `json:"duration"`
	Distance             *float64            `json:"distance,omitempty"`
	WindSpeed            float64             `json:"windSpeed"`
	BatteryCapacity      float64             `json:"batteryCapacity"`
	PowerRequired        float64             `json:"powerRequired"`
	PropulsionEnergy     float64             `json:"propulsionEnergy"`
	DeviceEnergy         float64             `json:"deviceEnergy"`
	SolarContribution    float64             `json:"solarContribution"`
	NetEnergy            float64             `json:"netEnergy"`
	TotalCost            float64             `json:"totalCost"`
	BatteryLife          *float64            `json:"batteryLife"`
	BatteryLifeUnbounded bool                `json:"batteryLifeUnbounded"`
	Overconsumption      bool                `json:"overconsumption"`
	Devices              []power.Device      `json:"devices"`
	Series               []power.SeriesPoint `json:"series"`
	Distribution         power.Distribution  `json:"distribution"`
}

func NewResult(r power.Result) Result {
	res := Result{
		PowerRequired:        r.PowerRequired,
		PropulsionEnergy:     r.PropulsionEnergy,
		DeviceEnergy:         r.DeviceEnergy,
		SolarContribution:    r.SolarContribution,
		NetEnergy:            r.NetEnergy,
		TotalCost:            r.TotalCost,
		BatteryLifeUnbounded: r.BatteryLifeUnbounded(),
		Overconsumption:      r.Overconsumption,
		Series:               r.Series,
		Distribution:         r.Distribution,
	}
	if !res.BatteryLifeUnbounded {
		life := r.BatteryLife
		res.BatteryLife = &life
	}
	return res
}

type Topology struct {
	Connections power.Topology `json:"connections"`
	Wiring      power.Topology `json:"wiring"`
}

type Comparison struct {
	RunID  string               `json:"runId"`
	Points []history.Comparison `json:"points"`
}

type Error struct {
	Error string `json:"error"`
}
