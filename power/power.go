package power

import "math"

const (
	efficiencyFactor = 0.85

	windResistance = 0.01
	waveResistance = 0.1
	hullFactor     = 0.1
)

// MaxDuration is the longest trip in hours, ten years. Series stops there.
const MaxDuration = 10 * 365 * 24

type BoatType string

const (
	Sailboat  BoatType = "Sailboat"
	Motorboat BoatType = "Motorboat"
	Yacht     BoatType = "Yacht"
)

func (b BoatType) Valid() bool {
	switch b {
	case Sailboat, Motorboat, Yacht:
		return true
	}
	return false
}

type EngineType string

const (
	Electric EngineType = "Electric"
	Diesel   EngineType = "Diesel"
	Gasoline EngineType = "Gasoline"
)

func (e EngineType) Valid() bool {
	switch e {
	case Electric, Diesel, Gasoline:
		return true
	}
	return false
}

// Trip holds the boat parameters. BoatType does not change the result.
type Trip struct {
	Speed      float64    `json:"speed"`
	Weight     float64    `json:"weight"`
	Duration   float64    `json:"duration"`
	BoatType   BoatType   `json:"boatType"`
	EngineType EngineType `json:"engineType"`
}

type Environment struct {
	WindSpeed  float64 `json:"windSpeed"`
	WaveHeight float64 `json:"waveHeight"`
}

type Source struct {
	BatteryCapacity float64 `json:"batteryCapacity"`
	SolarPower      float64 `json:"solarPower"`
}

type SeriesPoint struct {
	Hour           int     `json:"hour"`
	NetUsage       float64 `json:"netUsage"`
	SolarGenerated float64 `json:"solarGenerated"`
}

type Distribution struct {
	Propulsion float64 `json:"propulsion"`
	Devices    float64 `json:"devices"`
	Solar      float64 `json:"solar"`
}

// Result of a power balance. Energies are in kWh, PowerRequired in kW.
// NetEnergy may be negative and BatteryLife is +Inf when NetEnergy <= 0.
type Result struct {
	PowerRequired     float64
	PropulsionEnergy  float64
	DeviceEnergy      float64
	SolarContribution float64
	NetEnergy         float64
	TotalCost         float64
	BatteryLife       float64
	Overconsumption   bool
	Series            []SeriesPoint
	Distribution      Distribution
}

func (r Result) BatteryLifeUnbounded() bool {
	return math.IsInf(r.BatteryLife, 1)
}

func ResistanceFactor(env Environment) float64 {
	return 1 + env.WindSpeed*windResistance + env.WaveHeight*waveResistance
}

// PowerRequired returns the propulsion power in kW.
func PowerRequired(trip Trip, env Environment) float64 {
	return trip.Speed * trip.Weight * hullFactor * ResistanceFactor(env) / efficiencyFactor
}

// Compute balances the energy used by the propulsion and the devices against
// the solar production over the trip duration. Inputs are expected to be
// validated: non negative and finite, with a known engine type.
func Compute(trip Trip, env Environment, source Source, devices *Devices, prices Prices) Result {
	var r Result

	r.PowerRequired = PowerRequired(trip, env)
	r.PropulsionEnergy = r.PowerRequired * trip.Duration
	r.DeviceEnergy = devices.TotalPower() * trip.Duration / 1000
	r.SolarContribution = source.SolarPower * trip.Duration
	r.NetEnergy = r.PropulsionEnergy + r.DeviceEnergy - r.SolarContribution

	if r.NetEnergy > 0 {
		r.BatteryLife = source.BatteryCapacity / r.NetEnergy
	} else {
		r.BatteryLife = math.Inf(1)
	}

	r.Overconsumption = r.DeviceEnergy > source.BatteryCapacity+r.SolarContribution

	r.TotalCost = r.NetEnergy * prices.For(trip.EngineType)

	r.Series = Series(r.NetEnergy, source.SolarPower, trip.Duration)

	r.Distribution = Distribution{
		Propulsion: r.PropulsionEnergy,
		Devices:    r.DeviceEnergy,
		Solar:      r.SolarContribution,
	}

	return r
}

// Series returns the cumulative net usage and solar production for every
// whole hour from 0 to floor(duration), at most MaxDuration. A zero duration
// gives a single zero point.
func Series(netEnergy float64, solarPower float64, duration float64) []SeriesPoint {
	if !(duration > 0) {
		return []SeriesPoint{{Hour: 0}}
	}

	rate := netEnergy / duration
	n := MaxDuration
	if duration < MaxDuration {
		n = int(math.Floor(duration))
	}

	series := make([]SeriesPoint, 0, n+1)
	for t := 0; t <= n; t++ {
		series = append(series, SeriesPoint{
			Hour:           t,
			NetUsage:       rate * float64(t),
			SolarGenerated: solarPower * float64(t),
		})
	}
	return series
}
