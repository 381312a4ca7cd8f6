package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevices(t *testing.T) {
	t.Run("add keeps order", func(t *testing.T) {
		d := NewDevices(Device{Name: "Radio", Power: 25}, Device{Name: "Lights", Power: 60})

		assert.Equal(t, []Device{{Name: "Radio", Power: 25}, {Name: "Lights", Power: 60}}, d.List())
		assert.Equal(t, 85.0, d.TotalPower())
	})

	t.Run("last add wins", func(t *testing.T) {
		d := NewDevices(Device{Name: "Radio", Power: 25}, Device{Name: "Lights", Power: 60})
		d.Add(Device{Name: "Radio", Power: 40})

		assert.Equal(t, 2, d.Len())
		assert.Equal(t, []Device{{Name: "Radio", Power: 40}, {Name: "Lights", Power: 60}}, d.List())
	})

	t.Run("remove restores the previous set", func(t *testing.T) {
		d := NewDevices(Device{Name: "Radio", Power: 25}, Device{Name: "Lights", Power: 60})
		before := d.List()

		d.Add(Device{Name: "Fridge", Power: 100})
		assert.True(t, d.Remove("Fridge"))

		assert.ElementsMatch(t, before, d.List())

		trip, env, source := exampleTrip()
		r := Compute(trip, env, source, d, DefaultPrices())
		assert.InDelta(t, 0.085, r.Distribution.Devices, 1e-12)
	})

	t.Run("remove unknown", func(t *testing.T) {
		d := NewDevices(Device{Name: "Radio", Power: 25})

		assert.False(t, d.Remove("Fridge"))
		assert.Equal(t, 1, d.Len())
	})

	t.Run("nil set is empty", func(t *testing.T) {
		var d *Devices

		assert.Equal(t, 0, d.Len())
		assert.Equal(t, 0.0, d.TotalPower())
		assert.Nil(t, d.List())
		assert.False(t, d.Remove("Radio"))
		assert.Panics(t, func() { d.Add(Device{Name: "Radio", Power: 25}) })
	})

	t.Run("list is a copy", func(t *testing.T) {
		d := NewDevices(Device{Name: "Radio", Power: 25})
		l := d.List()
		l[0].Power = 1000

		assert.Equal(t, 25.0, d.TotalPower())
	})
}

func TestBatteries(t *testing.T) {
	c, err := BatteryCapacity(LithiumIon)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, c)

	_, err = BatteryCapacity("Zinc-Air")
	assert.Error(t, err)

	assert.Equal(t, []Battery{
		{Type: LeadAcid, Capacity: 50},
		{Type: LithiumIon, Capacity: 100},
		{Type: NickelMetalHydride, Capacity: 70},
	}, Batteries())
}

func TestConnections(t *testing.T) {
	d := NewDevices(Device{Name: "Fridge", Power: 100})

	c := Connections(Source{BatteryCapacity: 50, SolarPower: 1}, d)

	assert.Equal(t, []Node{
		{ID: BatteryNode, Label: "Battery\nCapacity: 50.00 kWh"},
		{ID: SolarNode, Label: "Solar Panel\nPower: 1.00 kW"},
		{ID: BoatNode, Label: BoatNode},
		{ID: "Fridge", Label: "Fridge\nPower: 100 W"},
	}, c.Nodes)
	assert.Equal(t, []Edge{
		{From: BatteryNode, To: BoatNode},
		{From: SolarNode, To: BoatNode},
		{From: BoatNode, To: "Fridge"},
	}, c.Edges)

	w := Wiring(Source{BatteryCapacity: 50, SolarPower: 1}, d)

	assert.Len(t, w.Nodes, 4)
	assert.Equal(t, Edge{From: BusBarNode, To: "Fridge", Label: "Circuit Breaker"}, w.Edges[2])
}
