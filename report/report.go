package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/a-bouts/power-server/power"
)

// Unbounded is displayed for the battery life when the balance is not negative
const Unbounded = "unbounded"

// Format rounds half away from zero to two decimals for display.
func Format(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

func BatteryLife(r power.Result) string {
	if r.BatteryLifeUnbounded() {
		return Unbounded
	}
	return Format(r.BatteryLife)
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle)
}

func Summary(r power.Result) string {
	t := newTable().
		Headers("Metric", "Value").
		Rows(
			[]string{"Power Required (kW)", Format(r.PowerRequired)},
			[]string{"Total Power Usage (kWh)", Format(r.PropulsionEnergy)},
			[]string{"Device Power Usage (kWh)", Format(r.DeviceEnergy)},
			[]string{"Solar Power Contribution (kWh)", Format(r.SolarContribution)},
			[]string{"Net Power Usage (kWh)", Format(r.NetEnergy)},
			[]string{"Total Cost ($)", Format(r.TotalCost)},
			[]string{"Battery Life (hours)", BatteryLife(r)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func Series(series []power.SeriesPoint) string {
	rows := make([][]string, 0, len(series))
	for _, p := range series {
		rows = append(rows, []string{strconv.Itoa(p.Hour), Format(p.NetUsage), Format(p.SolarGenerated)})
	}
	t := newTable().
		Headers("Time (hours)", "Net Power Usage (kWh)", "Solar Power Generated (kWh)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func Distribution(d power.Distribution) string {
	t := newTable().
		Headers("Source", "Power (kWh)").
		Rows(
			[]string{"Boat Power", Format(d.Propulsion)},
			[]string{"Device Power", Format(d.Devices)},
			[]string{"Solar Contribution", Format(d.Solar)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// Write prints the whole result. The distribution is only shown when devices are present.
func Write(w io.Writer, r power.Result, devices *power.Devices) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Summary of Results"))
	b.WriteString("\n")
	b.WriteString(Summary(r))
	b.WriteString("\n")

	if r.Overconsumption {
		b.WriteString(warningStyle.Render("Warning: the devices are consuming more power than the available battery and solar power."))
		b.WriteString("\n")
	}

	if devices.Len() > 0 {
		b.WriteString(titleStyle.Render("Power Distribution"))
		b.WriteString("\n")
		b.WriteString(Distribution(r.Distribution))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Power Usage and Generation Over Time"))
	b.WriteString("\n")
	b.WriteString(Series(r.Series))
	b.WriteString("\n")

	_, err := fmt.Fprint(w, b.String())
	return err
}
