// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build js && wasm

package main

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server"
	"github.com/SoftbearStudios/swell/server/config"
	"github.com/SoftbearStudios/swell/server/logger"
	"go.uber.org/zap"
	"os"
)

func main() {
	cfg := config.Default()

	// Workers have no filesystem, so only the console core is used.
	if err := logger.Init(cfg.Logging.Level, ""); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	hub, err := server.NewHubFromConfig(cfg, server.Offline{}, nil)
	if err != nil {
		logger.Fatal("creating hub", zap.Error(err))
	}

	logger.Info("swell WASM server started")

	hub.Register(&localClient)

	hub.Run()
}
