package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func initLogger(level string) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	l, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warnf("Unknown log level '%s', using info", level)
		l = log.InfoLevel
	}
	log.SetLevel(l)
}
