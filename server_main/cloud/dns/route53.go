// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
	"net"
)

type Route53DNS struct {
	svc    *route53.Route53
	domain string
	zoneID string
}

func NewRoute53DNS(session *session.Session, domain string, zoneID string) (*Route53DNS, error) {
	return &Route53DNS{
		svc:    route53.New(session),
		domain: domain,
		zoneID: zoneID,
	}, nil
}

// RecordName is the host name of the server in a region and slot.
func RecordName(domain, region string, slot int) string {
	return fmt.Sprintf("ws-%s-%d.%s", region, slot, domain)
}

func (route53DNS *Route53DNS) UpdateRoute(region string, slot int, address net.IP) error {
	request := &route53.ChangeResourceRecordSetsInput{
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{
				{
					Action: aws.String(route53.ChangeActionUpsert),
					ResourceRecordSet: &route53.ResourceRecordSet{
						Name: aws.String(RecordName(route53DNS.domain, region, slot)),
						Type: aws.String(route53.RRTypeA),
						ResourceRecords: []*route53.ResourceRecord{
							{
								Value: aws.String(address.String()),
							},
						},
						TTL: aws.Int64(60),
					},
				},
			},
		},
		HostedZoneId: aws.String(route53DNS.zoneID),
	}
	_, err := route53DNS.svc.ChangeResourceRecordSets(request)
	return err
}
