package wind

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-bouts/power-server/latlon"
)

func uniform(date time.Time, u, v float64) *Wind {
	w := &Wind{Date: date, File: date.Format(stampLayout) + ".f000", Lat0: 10, Lon0: 0, ΔLat: 1, ΔLon: 1, NLat: 3, NLon: 3}
	w.U = [][]float64{{u, u, u}, {u, u, u}, {u, u, u}}
	w.V = [][]float64{{v, v, v}, {v, v, v}, {v, v, v}}
	return w
}

func TestInterpolate(t *testing.T) {
	t.Run("uniform field", func(t *testing.T) {
		w := uniform(time.Now(), 3, 4)

		dir, speed, err := Interpolate(w, nil, 9.5, 0.5, 0)

		require.NoError(t, err)
		assert.InDelta(t, 5.0, speed, 1e-12)
		assert.InDelta(t, math.Atan2(0.6, 0.8)*180/math.Pi+180, dir, 1e-9)
	})

	t.Run("bilinear", func(t *testing.T) {
		w := &Wind{Lat0: 10, Lon0: 0, ΔLat: 1, ΔLon: 1, NLat: 3, NLon: 3}
		w.U = [][]float64{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}}
		w.V = [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}

		_, speed, err := Interpolate(w, nil, 9, 1.25, 0)

		require.NoError(t, err)
		assert.InDelta(t, 1.25, speed, 1e-12)
	})

	t.Run("between two forecasts", func(t *testing.T) {
		w1 := uniform(time.Now(), 3, 4)
		w2 := uniform(time.Now(), 6, 8)

		_, speed, err := Interpolate(w1, w2, 9.5, 0.5, 0.5)

		require.NoError(t, err)
		assert.InDelta(t, 7.5, speed, 1e-12)
	})

	t.Run("calm", func(t *testing.T) {
		dir, speed, err := Interpolate(uniform(time.Now(), 0, 0), nil, 9.5, 0.5, 0)

		require.NoError(t, err)
		assert.Equal(t, 0.0, speed)
		assert.Equal(t, 0.0, dir)
	})

	t.Run("outside", func(t *testing.T) {
		_, _, err := Interpolate(uniform(time.Now(), 3, 4), nil, 2, 0.5, 0)

		assert.Equal(t, ErrOutOfGrid, err)
	})

	t.Run("outside north", func(t *testing.T) {
		_, _, err := Interpolate(uniform(time.Now(), 3, 4), nil, 11.5, 0.5, 0)

		assert.Equal(t, ErrOutOfGrid, err)
	})

	t.Run("between two forecasts outside north", func(t *testing.T) {
		_, _, err := Interpolate(uniform(time.Now(), 3, 4), uniform(time.Now(), 6, 8), 10.5, 0.5, 0.5)

		assert.Equal(t, ErrOutOfGrid, err)
	})
}

func TestBuildGrid(t *testing.T) {
	w := Wind{NLat: 2, NLon: 4, ΔLon: 90}

	grid := w.buildGrid([]float64{1, 2, 3, 4, 5, 6, 7, 8})

	assert.Equal(t, [][]float64{{1, 2, 3, 4, 1}, {5, 6, 7, 8, 5}}, grid)
}

func TestParseName(t *testing.T) {
	d, err := parseName("2020071506.f003")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 7, 15, 9, 0, 0, 0, time.UTC), d)

	_, err = parseName("README")
	assert.Error(t, err)

	_, err = parseName("2020071506.fxyz")
	assert.Error(t, err)
}

func TestForecasts(t *testing.T) {
	t0 := time.Date(2020, 7, 15, 6, 0, 0, 0, time.UTC)
	p := latlon.LatLon{Lat: 9.5, Lon: 0.5}

	f := NewForecasts(t.TempDir())

	_, err := f.SpeedAt(t0, p)
	assert.Equal(t, ErrNoForecast, err)

	f.add(uniform(t0, 3, 4))
	f.add(uniform(t0.Add(6*time.Hour), 6, 8))

	s, err := f.SpeedAt(t0.Add(3*time.Hour), p)
	require.NoError(t, err)
	assert.InDelta(t, 7.5*MsToKnots, s, 1e-9)

	s, err = f.SpeedAt(t0.Add(-time.Hour), p)
	require.NoError(t, err)
	assert.InDelta(t, 5*MsToKnots, s, 1e-9)

	s, err = f.SpeedAt(t0.Add(12*time.Hour), p)
	require.NoError(t, err)
	assert.InDelta(t, 10*MsToKnots, s, 1e-9)
}

func TestMergeDropsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("winds"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2020071506.f003.tmp"), []byte("partial"), 0o644))

	f := NewForecasts(dir)
	f.add(uniform(time.Date(2020, 7, 15, 6, 0, 0, 0, time.UTC), 3, 4))
	require.Equal(t, 1, f.Len())

	require.NoError(t, f.Merge())

	assert.Equal(t, 0, f.Len())
}
