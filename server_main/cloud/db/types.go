// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"net"
)

// Server is a heartbeat of a running server. It expires after TTL (unix seconds).
type Server struct {
	Region  string `dynamo:"region"`
	Slot    int    `dynamo:"slot"`
	IP      net.IP `dynamo:"ip"`
	Viewers int    `dynamo:"viewers"`
	Bodies  int    `dynamo:"bodies"`
	TTL     int64  `dynamo:"ttl,omitempty"`
}
