package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/power"
)

// deviceFlags collects repeated -device name=watts flags
type deviceFlags []power.Device

func (d *deviceFlags) String() string {
	parts := make([]string, 0, len(*d))
	for _, device := range *d {
		parts = append(parts, fmt.Sprintf("%s=%g", device.Name, device.Power))
	}
	return strings.Join(parts, ",")
}

func (d *deviceFlags) Set(value string) error {
	name, watts, found := strings.Cut(value, "=")
	if !found {
		return fmt.Errorf("device '%s' is not name=watts", value)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(watts), 64)
	if err != nil {
		return fmt.Errorf("device '%s': %w", value, err)
	}
	*d = append(*d, power.Device{Name: strings.TrimSpace(name), Power: p})
	return nil
}

// pointFlag is a lat,lon pair
type pointFlag struct {
	p   latlon.LatLon
	set bool
}

func (f *pointFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", f.p.Lat, f.p.Lon)
}

func (f *pointFlag) Set(value string) error {
	lat, lon, found := strings.Cut(value, ",")
	if !found {
		return fmt.Errorf("point '%s' is not lat,lon", value)
	}
	var err error
	if f.p.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return fmt.Errorf("latitude of '%s': %w", value, err)
	}
	if f.p.Lon, err = strconv.ParseFloat(strings.TrimSpace(lon), 64); err != nil {
		return fmt.Errorf("longitude of '%s': %w", value, err)
	}
	f.set = true
	return nil
}
