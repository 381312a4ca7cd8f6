package wind

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nilsmagnus/grib/griblib"
)

// MsToKnots converts a wind speed in m/s to knots
const MsToKnots = 1.9438444924406

var ErrOutOfGrid = errors.New("position is outside of the wind grid")

// Wind is the 10 m above ground u/v wind of one GRIB2 forecast file.
type Wind struct {
	Date time.Time
	File string
	Lat0 float64
	Lon0 float64
	ΔLat float64
	ΔLon float64
	NLat uint32
	NLon uint32
	U    [][]float64
	V    [][]float64
}

func (w Wind) buildGrid(data []float64) [][]float64 {

	isContinuous := math.Floor(float64(w.NLon)*w.ΔLon) >= 360

	nLon := w.NLon
	if isContinuous {
		nLon++
	}

	grid := make([][]float64, w.NLat)

	p := 0
	for j := uint32(0); j < w.NLat; j++ {
		grid[j] = make([]float64, nLon)
		for i := uint32(0); i < w.NLon; i++ {
			grid[j][i] = data[p]
			p++
		}
		if isContinuous {
			grid[j][w.NLon] = grid[j][0]
		}
	}
	return grid
}

// Load reads the u and v components from a GRIB2 file of dir.
func Load(dir string, date time.Time, file string) (Wind, error) {
	w := Wind{Date: date, File: file}

	gribfile, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return w, err
	}
	defer gribfile.Close()

	messages, err := griblib.ReadMessages(gribfile)
	if err != nil {
		return w, err
	}
	for _, message := range messages {
		product := message.Section4.ProductDefinitionTemplate
		if message.Section0.Discipline != uint8(0) || product.ParameterCategory != uint8(2) || product.FirstSurface.Type != 103 || product.FirstSurface.Value != 10 {
			continue
		}
		grid0, ok := message.Section3.Definition.(*griblib.Grid0)
		if !ok {
			continue
		}
		w.Lat0 = float64(grid0.La1) / 1e6
		w.Lon0 = float64(grid0.Lo1) / 1e6
		w.ΔLat = float64(grid0.Di) / 1e6
		w.ΔLon = float64(grid0.Dj) / 1e6
		w.NLat = grid0.Nj
		w.NLon = grid0.Ni
		if product.ParameterNumber == 2 {
			w.U = w.buildGrid(message.Section7.Data)
		} else if product.ParameterNumber == 3 {
			w.V = w.buildGrid(message.Section7.Data)
		}
	}
	if w.U == nil || w.V == nil {
		return w, fmt.Errorf("no 10 m wind in '%s'", file)
	}
	return w, nil
}

func floorMod(a float64, n float64) float64 {
	return a - n*math.Floor(a/n)
}

func bilinearInterpolate(x float64, y float64, g00 []float64, g10 []float64, g01 []float64, g11 []float64) (float64, float64) {

	rx := (1 - x)
	ry := (1 - y)

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

func vectorToDegrees(u float64, v float64, d float64) float64 {
	if d == 0 {
		return 0
	}
	velocityDir := math.Atan2(u/d, v/d)
	velocityDirToDegrees := velocityDir*180/math.Pi + 180
	return velocityDirToDegrees
}

func (w Wind) interpolate(lat float64, lon float64) (float64, float64, error) {

	// rows are scanned from Lat0 southward
	i := (w.Lat0 - lat) / w.ΔLat
	j := floorMod(lon-w.Lon0, 360.0) / w.ΔLon
	if i < 0 || j < 0 {
		return 0, 0, ErrOutOfGrid
	}

	fi := uint32(i)
	fj := uint32(j)

	if int(fi)+1 >= len(w.U) || int(fi)+1 >= len(w.V) || int(fj)+1 >= len(w.U[fi]) {
		return 0, 0, ErrOutOfGrid
	}

	u00 := w.U[fi][fj]
	v00 := w.V[fi][fj]

	u01 := w.U[fi+1][fj]
	v01 := w.V[fi+1][fj]

	u10 := w.U[fi][fj+1]
	v10 := w.V[fi][fj+1]

	u11 := w.U[fi+1][fj+1]
	v11 := w.V[fi+1][fj+1]

	u, v := bilinearInterpolate(j-float64(fj), i-float64(fi), []float64{u00, v00}, []float64{u10, v10}, []float64{u01, v01}, []float64{u11, v11})

	return u, v, nil
}

// Interpolate returns the wind direction in degrees and its speed in m/s at
// a position, h being the progress from w1 to w2. w2 may be nil.
func Interpolate(w1 *Wind, w2 *Wind, lat float64, lon float64, h float64) (float64, float64, error) {

	u, v, err := w1.interpolate(lat, lon)
	if err != nil {
		return 0, 0, err
	}

	if w2 != nil {
		u2, v2, err := w2.interpolate(lat, lon)
		if err != nil {
			return 0, 0, err
		}
		u = u2*h + u*(1-h)
		v = v2*h + v*(1-h)
	}
	d := math.Sqrt(u*u + v*v)

	return vectorToDegrees(u, v, d), d, nil
}
