package power

// Prices per engine type. Electricity is per kWh, fuels are per litre; the
// selected price is applied to the net energy as is.
type Prices struct {
	Electricity float64 `json:"electricity"`
	Diesel      float64 `json:"diesel"`
	Gasoline    float64 `json:"gasoline"`
}

func DefaultPrices() Prices {
	return Prices{
		Electricity: 0.12,
		Diesel:      1.2,
		Gasoline:    1.0,
	}
}

func (p Prices) For(engine EngineType) float64 {
	switch engine {
	case Diesel:
		return p.Diesel
	case Gasoline:
		return p.Gasoline
	default:
		return p.Electricity
	}
}
