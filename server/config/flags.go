// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"flag"
	"github.com/SoftbearStudios/swell/server/logger"
)

var (
	flagConfig         = flag.String("config", "", "path to config file")
	flagDebug          = flag.Bool("debug", false, "enable debug logging")
	flagPort           = flag.Int("port", 0, "http service port (negative to only simulate)")
	flagMaxConnections = flag.Int("max-connections", 0, "maximum number of inbound TCP connections")
	flagCloud          = flag.Bool("cloud", false, "register with the cloud")
	flagLogFile        = flag.String("log-file", "", "also log to this file")
)

// ParseFlags parses command-line flags. Call it before Load.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath is the path given by -config, if any.
func ConfigPath() string {
	return *flagConfig
}

func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPort != 0 {
		cfg.Server.Port = *flagPort
	}
	if *flagMaxConnections > 0 {
		cfg.Server.MaxConnections = *flagMaxConnections
	}
	if *flagCloud {
		cfg.Server.Cloud = true
	}
	if *flagLogFile != "" {
		cfg.Logging.File = logger.DefaultFileConfig(*flagLogFile)
	}
}
