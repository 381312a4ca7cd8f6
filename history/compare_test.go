package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a-bouts/power-server/power"
)

func TestCompare(t *testing.T) {
	current := power.Series(6, 1, 3)
	historical := []Point{
		{Hour: 3, NetUsage: 5.5},
		{Hour: 1, NetUsage: 1.5},
		{Hour: 7, NetUsage: 20},
	}

	assert.Equal(t, []Comparison{
		{Hour: 1, Current: 2, Historical: 1.5},
		{Hour: 3, Current: 6, Historical: 5.5},
	}, Compare(current, historical))
}

func TestCompareWithoutCommonHours(t *testing.T) {
	c := Compare(power.Series(6, 1, 1), []Point{{Hour: 5}})

	assert.NotNil(t, c)
	assert.Empty(t, c)
}
