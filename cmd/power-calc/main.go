package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff"

	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/power"
	"github.com/a-bouts/power-server/report"
	"github.com/a-bouts/power-server/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	defaults := power.DefaultPrices()

	fs := flag.NewFlagSet("power-calc", flag.ContinueOnError)
	var (
		speed       = fs.Float64("speed", 10, "boat speed in knots")
		weight      = fs.Float64("weight", 10, "boat weight in tons")
		duration    = fs.Float64("duration", 1, "trip duration in hours")
		boat        = fs.String("boat", string(power.Motorboat), "Sailboat, Motorboat or Yacht")
		engine      = fs.String("engine", string(power.Electric), "Electric, Diesel or Gasoline")
		windSpeed   = fs.Float64("wind", 10, "wind speed in knots")
		waveHeight  = fs.Float64("wave", 1, "wave height in meters")
		battery     = fs.String("battery", string(power.LeadAcid), "Lead-Acid, Lithium-Ion or Nickel-Metal Hydride")
		capacity    = fs.Float64("capacity", 0, "battery capacity in kWh, overrides -battery when set")
		solar       = fs.Float64("solar", 1, "solar panel power in kW")
		electricity = fs.Float64("electricity-price", defaults.Electricity, "$ per kWh")
		diesel      = fs.Float64("diesel-price", defaults.Diesel, "$ per liter")
		gasoline    = fs.Float64("gasoline-price", defaults.Gasoline, "$ per liter")
		devices     deviceFlags
		start, end  pointFlag
	)
	fs.Var(&devices, "device", "device as name=watts, repeatable")
	fs.Var(&start, "from", "route start as lat,lon")
	fs.Var(&end, "to", "route end as lat,lon")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("POWER")); err != nil {
		return err
	}

	trip := power.Trip{
		Speed:      *speed,
		Weight:     *weight,
		Duration:   *duration,
		BoatType:   power.BoatType(*boat),
		EngineType: power.EngineType(*engine),
	}

	if start.set != end.set {
		return fmt.Errorf("a route needs both -from and -to")
	}
	if start.set {
		route := latlon.Route{Start: start.p, End: end.p}
		if err := validation.Route(route); err != nil {
			return err
		}
		distance, bearing := route.Heading()
		fmt.Fprintf(out, "Distance: %s nautical miles, bearing %s°\n", report.Format(distance), report.Format(bearing))
		if d, ok := route.Duration(trip.Speed); ok {
			trip.Duration = d
		}
	}

	override := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "capacity" {
			override = true
		}
	})

	source := power.Source{BatteryCapacity: *capacity, SolarPower: *solar}
	if !override {
		c, err := power.BatteryCapacity(power.BatteryType(*battery))
		if err != nil {
			return err
		}
		source.BatteryCapacity = c
	}

	env := power.Environment{WindSpeed: *windSpeed, WaveHeight: *waveHeight}
	prices := power.Prices{Electricity: *electricity, Diesel: *diesel, Gasoline: *gasoline}

	if err := validation.Inputs(trip, env, source, devices, prices); err != nil {
		return err
	}

	set := power.NewDevices(devices...)
	r := power.Compute(trip, env, source, set, prices)

	return report.Write(out, r, set)
}
