// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Database is the registry of running servers.
type Database interface {
	UpdateServer(server Server) error
	ReadServers() (servers []Server, err error)
	ReadServersByRegion(region string) (servers []Server, err error)
}
