package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/power-server/api/model"
	"github.com/a-bouts/power-server/history"
	"github.com/a-bouts/power-server/latlon"
	"github.com/a-bouts/power-server/notify"
	"github.com/a-bouts/power-server/power"
	"github.com/a-bouts/power-server/validation"
	"github.com/a-bouts/power-server/wind"
)

var (
	errNoHistory  = errors.New("history is not enabled")
	errNoWinds    = wind.ErrNoForecast
	errNoPosition = errors.New("forecast needs a position or a route")
)

type server struct {
	cpuprofile bool
	profiling  sync.Mutex // pkg/profile allows one profile at a time
	prices     power.Prices
	winds      wind.Provider
	store      *history.Store
	notifier   notify.Notifier
	now        func() time.Time
}

// Options of the api. Winds and Store may be nil to disable forecasts and history.
type Options struct {
	CpuProfile bool
	Prices     power.Prices
	Winds      wind.Provider
	Store      *history.Store
	Notifier   notify.Notifier
}

func InitServer(o Options) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := &server{
		cpuprofile: o.CpuProfile,
		prices:     o.Prices,
		winds:      o.Winds,
		store:      o.Store,
		notifier:   o.Notifier,
		now:        time.Now,
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}

	router.HandleFunc("/power/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/power/api/v1").Subrouter()
	apiV1.HandleFunc("/batteries", s.batteries).Methods(http.MethodGet)
	apiV1.HandleFunc("/prices", s.getPrices).Methods(http.MethodGet)
	apiV1.HandleFunc("/distance", s.distance).Methods(http.MethodPost)
	apiV1.HandleFunc("/compute", s.compute).Methods(http.MethodPost)
	apiV1.HandleFunc("/topology", s.topology).Methods(http.MethodPost)
	apiV1.HandleFunc("/runs", s.listRuns).Methods(http.MethodGet)
	apiV1.HandleFunc("/runs/{id}", s.getRun).Methods(http.MethodGet)
	apiV1.HandleFunc("/runs/{id}", s.deleteRun).Methods(http.MethodDelete)
	apiV1.HandleFunc("/runs/{id}/compare", s.compare).Methods(http.MethodPost)

	return router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.Error{Error: err.Error()})
}

func newRequestLogger(action string, req *http.Request) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	writeJSON(w, http.StatusOK, health{Status: "Ok"})
}

func (s *server) batteries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, power.Batteries())
}

func (s *server) getPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prices)
}

func (s *server) distance(w http.ResponseWriter, req *http.Request) {
	var route latlon.Route
	if err := json.NewDecoder(req.Body).Decode(&route); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding route: %w", err))
		return
	}
	if err := validation.Route(route); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	d, b := route.Heading()
	writeJSON(w, http.StatusOK, model.Distance{NauticalMiles: d, Bearing: b})
}

func (s *server) decode(w http.ResponseWriter, req *http.Request) (*inputs, bool) {
	var r model.Compute
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return nil, false
	}

	in, err := s.prepare(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, wind.ErrNoForecast) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err)
		return nil, false
	}
	return in, true
}

func (s *server) compute(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		s.profiling.Lock()
		defer s.profiling.Unlock()
		defer profile.Start().Stop()
	}

	requestLogger := newRequestLogger("compute", req)

	in, ok := s.decode(w, req)
	if !ok {
		return
	}
	if in.save && s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHistory)
		return
	}

	start := time.Now()

	r := in.compute()

	requestLogger.Infof("Compute '%s' %s for %.2f hours at %.1f kt took %s", in.label, in.trip.EngineType, in.trip.Duration, in.trip.Speed, time.Since(start).String())

	if r.Overconsumption {
		requestLogger.Warnf("Devices use %.2f kWh, more than battery and solar", r.DeviceEnergy)
		message := notify.Overconsumption(in.source, r)
		go func() {
			if err := s.notifier.Send(message); err != nil {
				log.WithError(err).Error("Error sending advisory")
			}
		}()
	}

	res := in.result(r)

	if in.save {
		run, err := s.store.Save(req.Context(), in.label, r)
		if err != nil {
			requestLogger.WithError(err).Error("Error saving run")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		res.RunID = run.ID
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *server) topology(w http.ResponseWriter, req *http.Request) {
	in, ok := s.decode(w, req)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.Topology{
		Connections: power.Connections(in.source, in.devices),
		Wiring:      power.Wiring(in.source, in.devices),
	})
}

func (s *server) listRuns(w http.ResponseWriter, req *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHistory)
		return
	}
	runs, err := s.store.List(req.Context())
	if err != nil {
		log.WithError(err).Error("Error listing runs")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) run(w http.ResponseWriter, req *http.Request) (*history.Run, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHistory)
		return nil, false
	}
	id := mux.Vars(req)["id"]
	run, err := s.store.Get(req.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		log.WithError(err).Errorf("Error getting run '%s'", id)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return run, true
}

func (s *server) getRun(w http.ResponseWriter, req *http.Request) {
	run, ok := s.run(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *server) deleteRun(w http.ResponseWriter, req *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoHistory)
		return
	}
	id := mux.Vars(req)["id"]
	err := s.store.Delete(req.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.WithError(err).Errorf("Error deleting run '%s'", id)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) compare(w http.ResponseWriter, req *http.Request) {
	run, ok := s.run(w, req)
	if !ok {
		return
	}
	in, ok := s.decode(w, req)
	if !ok {
		return
	}

	r := in.compute()

	log.Debugf("Compare %d hours with run '%s'", len(r.Series), run.ID)

	writeJSON(w, http.StatusOK, model.Comparison{
		RunID:  run.ID,
		Points: history.Compare(r.Series, run.Points),
	})
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
