package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-bouts/power-server/power"
	"github.com/a-bouts/power-server/validation"
)

func TestDeviceFlags(t *testing.T) {
	var d deviceFlags

	require.NoError(t, d.Set("Fridge=100"))
	require.NoError(t, d.Set(" Radio = 25.5"))
	assert.Equal(t, deviceFlags{{Name: "Fridge", Power: 100}, {Name: "Radio", Power: 25.5}}, d)
	assert.Equal(t, "Fridge=100,Radio=25.5", d.String())

	assert.Error(t, d.Set("Fridge"))
	assert.Error(t, d.Set("Fridge=lots"))
}

func TestPointFlag(t *testing.T) {
	var p pointFlag
	assert.Equal(t, "", p.String())

	require.NoError(t, p.Set("43.3, 5.4"))
	assert.True(t, p.set)
	assert.Equal(t, 43.3, p.p.Lat)
	assert.Equal(t, 5.4, p.p.Lon)

	assert.Error(t, p.Set("43.3"))
	assert.Error(t, p.Set("north,5"))
}

func TestRun(t *testing.T) {
	var out strings.Builder

	err := run([]string{"-device", "Fridge=100"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "14.12")
	assert.Contains(t, out.String(), "13.22")
	assert.Contains(t, out.String(), "Power Distribution")
}

func TestRunWithRoute(t *testing.T) {
	var out strings.Builder

	err := run([]string{"-from", "0,0", "-to", "1,0", "-speed", "10"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Distance: 60.04 nautical miles, bearing 0.00°")
}

func TestRunCapacityOverride(t *testing.T) {
	var out strings.Builder

	require.NoError(t, run([]string{"-capacity", "0", "-solar", "0", "-device", "Fridge=100"}, &out))
	assert.Contains(t, out.String(), "consuming more power")

	assert.ErrorIs(t, run([]string{"-capacity", "-5"}, &out), validation.ErrInvalidBattery)
}

func TestRunTooLong(t *testing.T) {
	var out strings.Builder

	assert.ErrorIs(t, run([]string{"-duration", "1e12"}, &out), validation.ErrDurationTooLong)
	assert.ErrorIs(t, run([]string{"-from", "0,0", "-to", "1,0", "-speed", "1e-9"}, &out), validation.ErrDurationTooLong)
}

func TestRunErrors(t *testing.T) {
	var out strings.Builder

	assert.Error(t, run([]string{"-from", "0,0"}, &out))
	assert.Error(t, run([]string{"-engine", "Steam"}, &out))
	assert.Error(t, run([]string{"-battery", "Zinc-Air"}, &out))
	assert.Error(t, run([]string{"-speed", "-3"}, &out))
	assert.Error(t, run([]string{"-from", "0,0", "-to", "100,0"}, &out))
}

func TestRunUnboundedBattery(t *testing.T) {
	var out strings.Builder

	err := run([]string{"-duration", "0", "-engine", string(power.Diesel)}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "unbounded")
}
