// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const AWSProfile = "swell"

// UserData is the instance configuration, set as EC2 user data.
type UserData struct {
	Domain        string
	Region        string
	Stage         string
	ServerSlots   int
	Route53ZoneID string
}

func getAWSSession(region string) (*session.Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".aws", "credentials")

	var creds *credentials.Credentials
	if _, statErr := os.Stat(path); statErr == nil {
		creds = credentials.NewSharedCredentials(path, AWSProfile)
	} else {
		metadataSession, err := session.NewSession(aws.NewConfig())
		if err != nil {
			return nil, err
		}
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: ec2metadata.New(metadataSession)})
	}

	return session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
}

func getPublicIP() (net.IP, error) {
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://checkip.amazonaws.com")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	ipString := strings.TrimSpace(string(body))
	ip := net.ParseIP(ipString)
	if ip == nil {
		return nil, fmt.Errorf("could not parse IP address %q", ipString)
	}
	return ip, nil
}

func loadUserData() (*UserData, error) {
	client := http.Client{Timeout: time.Second / 2}
	response, err := client.Get("http://169.254.169.254/latest/user-data/")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	return parseUserData(response.Body)
}

// parseUserData reads NAME="value" lines.
func parseUserData(r io.Reader) (data *UserData, err error) {
	data = &UserData{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		variable := scanner.Text()
		equalsIndex := strings.IndexRune(variable, '=')
		if equalsIndex == -1 {
			continue
		}
		name := strings.Trim(variable[:equalsIndex], " ")
		value := strings.Trim(variable[equalsIndex+1:], "\" ")

		switch name {
		case "DOMAIN":
			data.Domain = value
		case "REGION":
			data.Region = value
		case "STAGE":
			data.Stage = value
		case "SERVER_SLOTS":
			data.ServerSlots, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid server slots: %w", err)
			}
		case "ROUTE53_ZONEID":
			data.Route53ZoneID = value
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}

	if data.Domain == "" {
		return nil, errors.New("missing domain")
	}
	if data.Region == "" {
		return nil, errors.New("missing region")
	}
	if data.Stage == "" {
		return nil, errors.New("missing stage")
	}
	if data.ServerSlots < 1 {
		return nil, errors.New("missing server slots")
	}
	if data.Route53ZoneID == "" {
		return nil, errors.New("missing route53 zoneID")
	}
	return data, nil
}
