package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets up the standard logrus logger and returns a separate
// JSON logger for request logs.
func (c *Config) ConfigureLogging() *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if c.Debug && level < log.DebugLevel {
		level = log.DebugLevel
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	requestLogger := log.New()
	requestLogger.SetOutput(os.Stdout)
	requestLogger.SetLevel(level)
	requestLogger.SetFormatter(&log.JSONFormatter{})
	return requestLogger
}
