package wind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/power-server/latlon"
)

const stampLayout = "2006010215"

var ErrNoForecast = errors.New("no wind forecast loaded")

// Provider gives the wind speed in knots at a position and time.
type Provider interface {
	SpeedAt(m time.Time, p latlon.LatLon) (float64, error)
}

// Forecasts holds the winds of a GRIB directory, keyed by forecast time.
type Forecasts struct {
	dir   string
	winds map[string]*Wind
	lock  sync.RWMutex
}

func NewForecasts(dir string) *Forecasts {
	return &Forecasts{
		dir:   dir,
		winds: make(map[string]*Wind),
	}
}

// parseName reads the forecast time of a file named like 2020071506.f003:
// the run date and hour followed by the forecast hour.
func parseName(name string) (time.Time, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 2 || len(parts[1]) < 2 {
		return time.Time{}, fmt.Errorf("unexpected grib file name '%s'", name)
	}
	t, err := time.Parse(stampLayout, parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date of '%s': %w", name, err)
	}
	h, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing forecast hour of '%s': %w", name, err)
	}
	return t.Add(time.Hour * time.Duration(h)), nil
}

func (f *Forecasts) files() ([]string, error) {
	var files []string
	err := filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
		} else if info.Mode().IsRegular() && !strings.HasSuffix(info.Name(), ".tmp") {
			files = append(files, info.Name())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Merge drops the winds whose file disappeared and loads the new files.
// Files are read in name order so a later run replaces an earlier one.
func (f *Forecasts) Merge() error {
	files, err := f.files()
	if err != nil {
		log.WithError(err).Error("Error walking grib files")
		return err
	}

	present := make(map[string]bool, len(files))
	for _, file := range files {
		present[file] = true
	}

	f.lock.Lock()
	for k, w := range f.winds {
		if !present[w.File] {
			log.Debugf("Remove from winds %s", k)
			delete(f.winds, k)
		}
	}
	f.lock.Unlock()

	for _, file := range files {
		date, err := parseName(file)
		if err != nil {
			log.WithError(err).Warnf("Skipping grib file '%s'", file)
			continue
		}
		stamp := date.Format(stampLayout)

		f.lock.RLock()
		w, found := f.winds[stamp]
		f.lock.RUnlock()
		if found && w.File >= file {
			continue
		}

		wind, err := Load(f.dir, date, file)
		if err != nil {
			log.WithError(err).Errorf("Error loading grib file '%s'", file)
			continue
		}
		log.Debugf("Init %s %s", stamp, wind.File)

		f.lock.Lock()
		f.winds[stamp] = &wind
		f.lock.Unlock()
	}
	return nil
}

func (f *Forecasts) add(w *Wind) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.winds[w.Date.Format(stampLayout)] = w
}

func (f *Forecasts) Len() int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return len(f.winds)
}

// Find returns the forecasts around m and the progress from the first to the second.
func (f *Forecasts) Find(m time.Time) (*Wind, *Wind, float64, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if len(f.winds) == 0 {
		return nil, nil, 0, ErrNoForecast
	}

	stamp := m.UTC().Format(stampLayout)

	keys := make([]string, 0, len(f.winds))
	for k := range f.winds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if keys[0] > stamp {
		return f.winds[keys[0]], nil, 0, nil
	}
	for i := range keys {
		if keys[i] > stamp {
			w1, w2 := f.winds[keys[i-1]], f.winds[keys[i]]
			h := m.Sub(w1.Date).Minutes()
			delta := w2.Date.Sub(w1.Date).Minutes()
			return w1, w2, h / delta, nil
		}
	}
	return f.winds[keys[len(keys)-1]], nil, 0, nil
}

func (f *Forecasts) SpeedAt(m time.Time, p latlon.LatLon) (float64, error) {
	w1, w2, h, err := f.Find(m)
	if err != nil {
		return 0, err
	}
	_, speed, err := Interpolate(w1, w2, p.Lat, p.Lon, h)
	if err != nil {
		return 0, err
	}
	return speed * MsToKnots, nil
}
