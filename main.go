package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/jasonlvhit/gocron"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/power-server/api"
	"github.com/a-bouts/power-server/history"
	"github.com/a-bouts/power-server/notify"
	"github.com/a-bouts/power-server/power"
	"github.com/a-bouts/power-server/validation"
	"github.com/a-bouts/power-server/wind"
)

func main() {

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env")
	}

	defaults := power.DefaultPrices()

	fs := flag.NewFlagSet("power-server", flag.ExitOnError)
	var (
		listen       = fs.String("listen", ":8888", "listen address")
		logLevel     = fs.String("log-level", "info", "debug, info, warn or error")
		dbPath       = fs.String("db", filepath.Join("data", "power.db"), "history database, empty to disable")
		retention    = fs.Duration("history-retention", 0, "delete saved runs older than this, 0 keeps them")
		gribDir      = fs.String("grib-dir", "", "directory of GRIB2 wind forecasts, empty to disable")
		gribRefresh  = fs.Uint64("grib-refresh", 15, "seconds between two scans of the grib directory")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile compute requests")
		electricity  = fs.Float64("electricity-price", defaults.Electricity, "$ per kWh")
		diesel       = fs.Float64("diesel-price", defaults.Diesel, "$ per liter")
		gasoline     = fs.Float64("gasoline-price", defaults.Gasoline, "$ per liter")
		_            = fs.String("config", "", "config file")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("POWER"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		log.WithError(err).Fatal("Error parsing configuration")
	}

	initLogger(*logLevel)

	prices := power.Prices{Electricity: *electricity, Diesel: *diesel, Gasoline: *gasoline}
	if err := validation.Prices(prices); err != nil {
		log.WithError(err).Fatal("Invalid default prices")
	}

	opts := api.Options{
		CpuProfile: *cpuprofile,
		Prices:     prices,
		Notifier:   notify.Nop{},
	}

	xmppConfig := notify.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}
	if xmppConfig.Enabled() {
		log.Infof("Advisories sent to %s", xmppConfig.To)
		opts.Notifier = notify.Xmpp{Config: xmppConfig}
	}

	s := gocron.NewScheduler()

	if *dbPath != "" {
		if dir := filepath.Dir(*dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.WithError(err).Fatalf("Error creating '%s'", dir)
			}
		}
		store, err := history.Open(context.Background(), *dbPath)
		if err != nil {
			log.WithError(err).Fatal("Error opening history")
		}
		defer store.Close()
		opts.Store = store

		if *retention > 0 {
			s.Every(1).Hour().Do(prune, store, *retention)
		}
	}

	if *gribDir != "" {
		log.Infof("Load winds from '%s'", *gribDir)
		forecasts := wind.NewForecasts(*gribDir)
		if err := forecasts.Merge(); err != nil {
			log.WithError(err).Fatal("Error loading winds")
		}
		s.Every(*gribRefresh).Seconds().Do(forecasts.Merge)
		opts.Winds = forecasts
	}

	stopped := s.Start()
	defer func() { stopped <- true }()

	router := api.InitServer(opts)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	log.Infof("Start server on %s", *listen)
	if err := http.ListenAndServe(*listen, handlers.LoggingHandler(os.Stdout, cors(router))); err != nil {
		log.WithError(err).Error("Server stopped")
	}
}

func prune(store *history.Store, retention time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := store.Prune(ctx, time.Now().Add(-retention))
	if err != nil {
		log.WithError(err).Error("Error pruning history")
		return
	}
	log.Debugf("Pruned %d runs", n)
}
