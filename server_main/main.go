// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server"
	"github.com/SoftbearStudios/swell/server/config"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/SoftbearStudios/swell/server_main/cloud"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File, true); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	var c server.Cloud = server.Offline{}
	if cfg.Server.Cloud {
		if online, err := cloud.New(len(cfg.Bodies)); err != nil {
			// Cloud is not required for server to function, just log an error
			logger.Warn("cloud error", zap.Error(err))
		} else {
			c = online
		}
	}
	logger.Info("cloud", zap.Stringer("cloud", c))

	hub, err := server.NewHubFromConfig(cfg, c, nil)
	if err != nil {
		logger.Fatal("creating hub", zap.Error(err))
	}

	go hub.Run()

	if cfg.Server.Port < 0 {
		logger.Info("simulation started")
		// Block forever
		select {}
	}

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/surface.png", hub.ServeSurface)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", cfg.Server.Port))
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	defer l.Close()

	l = netutil.LimitListener(l, cfg.Server.MaxConnections)

	logger.Info("server started", zap.Stringer("addr", l.Addr()))
	logger.Fatal("serve", zap.Error(http.Serve(l, nil)))
}
