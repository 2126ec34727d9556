package main

import (
	"fmt"
	"strconv"

	"github.com/horgh/config"
	"github.com/sirupsen/logrus"
)

// Config holds the server's configuration.
type Config struct {
	ListenHost string
	ListenPort string

	// ServerName identifies this server in logs. The wire protocol always
	// uses the literal prefix "server".
	ServerName string

	LogLevel logrus.Level
}

func defaultConfig() Config {
	return Config{
		ListenHost: "127.0.0.1",
		ListenPort: "6667",
		ServerName: "squawkbox.example.org",
		LogLevel:   logrus.DebugLevel,
	}
}

// loadConfig reads the configuration file, if one was given, and overlays
// it on the defaults.
//
// The file is flat key=value. Recognized keys: listen-host, listen-port,
// server-name, log-level. Unrecognized keys are an error so typos don't
// silently fall back to defaults.
func loadConfig(file string) (Config, error) {
	cfg := defaultConfig()

	if file == "" {
		return cfg, nil
	}

	configMap, err := config.ReadStringMap(file)
	if err != nil {
		return Config{}, err
	}

	for key, v := range configMap {
		if len(v) == 0 {
			return Config{}, fmt.Errorf("configuration value is blank: %s", key)
		}

		switch key {
		case "listen-host":
			cfg.ListenHost = v

		case "listen-port":
			if _, err := strconv.ParseUint(v, 10, 16); err != nil {
				return Config{}, fmt.Errorf("listen port is not valid: %s", err)
			}
			cfg.ListenPort = v

		case "server-name":
			cfg.ServerName = v

		case "log-level":
			level, err := logrus.ParseLevel(v)
			if err != nil {
				return Config{}, fmt.Errorf("log level is not valid: %s", err)
			}
			cfg.LogLevel = level

		default:
			return Config{}, fmt.Errorf("unrecognized key: %s", key)
		}
	}

	return cfg, nil
}
