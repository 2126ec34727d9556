package main

import (
	"os"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

func main() {
	args, err := getArgs()
	if err != nil {
		logrus.Fatal(err)
	}

	cfg, err := loadConfig(args.ConfigFile)
	if err != nil {
		logrus.Fatalf("Configuration problem: %s", err)
	}

	logger := newLogger(cfg.LogLevel)

	server := newServer(cfg, logger)
	if err := server.start(); err != nil {
		logger.Fatalf("Unable to start server: %s", err)
	}

	server.wait()

	logger.Info("Server shutdown cleanly.")
}

// newLogger builds the process logger: levelled, structured, to stdout.
func newLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(&nested.Formatter{
		TimestampFormat: time.RFC3339,
		HideKeys:        true,
	})
	return logger
}
