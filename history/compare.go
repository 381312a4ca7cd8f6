package history

import "github.com/a-bouts/power-server/power"

type Comparison struct {
	Hour       int     `json:"hour"`
	Current    float64 `json:"current"`
	Historical float64 `json:"historical"`
}

// Compare joins the current net usage with a historical one on the elapsed
// hour. Hours missing on either side are dropped; the current order is kept.
func Compare(current []power.SeriesPoint, historical []Point) []Comparison {
	byHour := make(map[int]float64, len(historical))
	for _, p := range historical {
		byHour[p.Hour] = p.NetUsage
	}

	comparisons := []Comparison{}
	for _, p := range current {
		h, found := byHour[p.Hour]
		if !found {
			continue
		}
		comparisons = append(comparisons, Comparison{Hour: p.Hour, Current: p.NetUsage, Historical: h})
	}
	return comparisons
}
