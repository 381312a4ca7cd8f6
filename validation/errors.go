package validation

import (
	"errors"
	"fmt"

	"github.com/a-bouts/power-server/power"
)

var (
	ErrInvalidSpeed      = errors.New("speed must be a non-negative number")
	ErrInvalidWeight     = errors.New("weight must be a non-negative number")
	ErrInvalidDuration   = errors.New("duration must be a non-negative number")
	ErrDurationTooLong   = fmt.Errorf("duration must not exceed %d hours", power.MaxDuration)
	ErrInvalidWindSpeed  = errors.New("wind speed must be a non-negative number")
	ErrInvalidWaveHeight = errors.New("wave height must be a non-negative number")
	ErrInvalidBattery    = errors.New("battery capacity must be a non-negative number")
	ErrInvalidSolarPower = errors.New("solar power must be a non-negative number")
	ErrInvalidPrice      = errors.New("prices must be non-negative numbers")
	ErrInvalidDevice     = errors.New("device needs a name and a non-negative power")
	ErrUnknownEngineType = errors.New("engine type must be one of Electric, Diesel, Gasoline")
	ErrUnknownBoatType   = errors.New("boat type must be one of Sailboat, Motorboat, Yacht")
)
