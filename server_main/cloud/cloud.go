// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud registers the server with AWS.
package cloud

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/swell/server_main/cloud/db"
	"github.com/SoftbearStudios/swell/server_main/cloud/dns"
	"github.com/SoftbearStudios/swell/server_main/cloud/fs"
	"net"
	"time"
)

const (
	updatePeriod = 30 * time.Second

	// Snapshots are replaced often, so they mustn't be cached for long.
	snapshotCacheSeconds = 10
)

var ErrNoSlot = errors.New("no empty server slot")

// Cloud implements server.Cloud.
type Cloud struct {
	region     string
	serverSlot int
	ip         net.IP
	bodies     int
	database   db.Database
	dns        dns.DNS
	fs         fs.Filesystem
}

func (cloud *Cloud) String() string {
	return fmt.Sprintf("[%s %d %s]", cloud.region, cloud.serverSlot, cloud.ip)
}

// New registers the server. bodies is reported with every heartbeat.
func New(bodies int) (*Cloud, error) {
	userData, err := loadUserData()
	if err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}

	ip, err := getPublicIP()
	if err != nil {
		return nil, fmt.Errorf("public ip: %w", err)
	}

	session, err := getAWSSession(userData.Region)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	database, err := db.NewDynamoDBDatabase(session, userData.Stage)
	if err != nil {
		return nil, err
	}
	route53, err := dns.NewRoute53DNS(session, userData.Domain, userData.Route53ZoneID)
	if err != nil {
		return nil, err
	}
	s3, err := fs.NewS3Filesystem(session, userData.Stage)
	if err != nil {
		return nil, err
	}

	return register(userData, ip, bodies, database, route53, s3)
}

// register claims a server slot, points DNS at it and sends the first heartbeat.
func register(userData *UserData, ip net.IP, bodies int, database db.Database, d dns.DNS, f fs.Filesystem) (*Cloud, error) {
	cloud := &Cloud{
		region:   userData.Region,
		ip:       ip,
		bodies:   bodies,
		database: database,
		dns:      d,
		fs:       f,
	}

	servers, err := database.ReadServersByRegion(cloud.region)
	if err != nil {
		return nil, fmt.Errorf("reading servers: %w", err)
	}

	cloud.serverSlot = claimSlot(servers, ip, userData.ServerSlots)
	if cloud.serverSlot == -1 {
		return nil, ErrNoSlot
	}

	if err = cloud.dns.UpdateRoute(cloud.region, cloud.serverSlot, cloud.ip); err != nil {
		return nil, fmt.Errorf("updating route: %w", err)
	}

	if err = cloud.UpdateServer(0); err != nil {
		return nil, fmt.Errorf("updating server: %w", err)
	}

	return cloud, nil
}

// claimSlot reclaims the slot of a server with the same ip, or else finds the
// lowest free slot. Returns -1 if all are taken.
func claimSlot(servers []db.Server, ip net.IP, slots int) int {
	for _, server := range servers {
		if ip.Equal(server.IP) {
			return server.Slot
		}
	}

scan:
	for slot := 0; slot < slots; slot++ {
		for _, server := range servers {
			if server.Slot == slot {
				// Slot is taken
				continue scan
			}
		}
		return slot
	}
	return -1
}

// UpdateServer must be called at least every UpdatePeriod or the server expires.
func (cloud *Cloud) UpdateServer(viewers int) error {
	return cloud.database.UpdateServer(db.Server{
		Region:  cloud.region,
		Slot:    cloud.serverSlot,
		IP:      cloud.ip,
		Viewers: viewers,
		Bodies:  cloud.bodies,
		TTL:     time.Now().Add(updatePeriod).Unix() + 5,
	})
}

// UploadSurfaceSnapshot stores a PNG of the water surface under this server's name.
func (cloud *Cloud) UploadSurfaceSnapshot(data []byte) error {
	name := fmt.Sprintf("surface/%s-%d.png", cloud.region, cloud.serverSlot)
	return cloud.fs.UploadStaticFile(name, snapshotCacheSeconds, data)
}

func (cloud *Cloud) UpdatePeriod() time.Duration {
	return updatePeriod
}
