package notify

import (
	"fmt"

	"github.com/a-bouts/power-server/power"
)

type Notifier interface {
	Send(message string) error
}

// Nop drops every message. It is used when no recipient is configured.
type Nop struct{}

func (Nop) Send(string) error { return nil }

// Overconsumption formats the advisory sent when the devices draw more than
// the battery and the solar panels can provide over the trip.
func Overconsumption(source power.Source, r power.Result) string {
	return fmt.Sprintf("Warning: devices use %.2f kWh, more than the %.2f kWh battery and %.2f kWh of solar",
		r.DeviceEnergy, source.BatteryCapacity, r.SolarContribution)
}
