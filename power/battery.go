package power

import (
	"fmt"
	"sort"
)

type BatteryType string

const (
	LeadAcid           BatteryType = "Lead-Acid"
	LithiumIon         BatteryType = "Lithium-Ion"
	NickelMetalHydride BatteryType = "Nickel-Metal Hydride"
)

// capacities in kWh
var batteryCapacities = map[BatteryType]float64{
	LeadAcid:           50,
	LithiumIon:         100,
	NickelMetalHydride: 70,
}

type Battery struct {
	Type     BatteryType `json:"type"`
	Capacity float64     `json:"capacity"`
}

func BatteryCapacity(t BatteryType) (float64, error) {
	c, found := batteryCapacities[t]
	if !found {
		return 0, fmt.Errorf("unknown battery type '%s'", t)
	}
	return c, nil
}

func Batteries() []Battery {
	batteries := make([]Battery, 0, len(batteryCapacities))
	for t, c := range batteryCapacities {
		batteries = append(batteries, Battery{Type: t, Capacity: c})
	}
	sort.Slice(batteries, func(i, j int) bool {
		return batteries[i].Type < batteries[j].Type
	})
	return batteries
}
