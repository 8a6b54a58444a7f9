// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc          *dynamodb.DynamoDB
	db           *dynamo.DB
	serversTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.serversTable = ddb.db.Table("swell-" + stage + "-servers")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serversTable.Put(server).Run()
}

func (ddb *DynamoDBDatabase) ReadServers() (servers []Server, err error) {
	err = ddb.serversTable.Scan().All(&servers)
	return
}

func (ddb *DynamoDBDatabase) ReadServersByRegion(region string) (servers []Server, err error) {
	query := ddb.serversTable.Get("region", region).Iter()

	for {
		var server Server
		if !query.Next(&server) {
			err = query.Err()
			return
		}
		servers = append(servers, server)
	}
}
