// Package telemetry encodes compass readings for the MQTT broker and parses
// the broker address. It does not depend on the network stack so it can be
// tested on the host.
package telemetry

import (
	"encoding/json"
	"errors"

	"github.com/harveysanders/picocompass/compass"
)

// Topic readings are published to.
const Topic = "picocompass/heading"

// Heading is the JSON payload of one reading.
type Heading struct {
	Degrees     float64 `json:"deg"`
	Direction   string  `json:"dir"`
	X           int32   `json:"x"`
	Y           int32   `json:"y"`
	Z           int32   `json:"z"`
	SinceBootMS int64   `json:"since_boot_ms"`
}

// Encode marshals r as a Heading payload.
func Encode(r compass.Reading) ([]byte, error) {
	return json.Marshal(Heading{
		Degrees:     r.Angle,
		Direction:   r.Direction.String(),
		X:           r.X,
		Y:           r.Y,
		Z:           r.Z,
		SinceBootMS: r.SinceBoot.Milliseconds(),
	})
}

// SplitHostPort splits a host:port string into separate host and port components.
// Returns an error if the format is invalid.
func SplitHostPort(addr string) (host, port string, err error) {
	// Find the last colon to support IPv6 addresses
	colonIdx := -1
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			colonIdx = i
			break
		}
	}

	if colonIdx == -1 {
		return "", "", errors.New("missing port in address")
	}

	host = addr[:colonIdx]
	port = addr[colonIdx+1:]

	if host == "" {
		return "", "", errors.New("empty host")
	}
	if port == "" {
		return "", "", errors.New("empty port")
	}

	return host, port, nil
}

// ParsePort converts a decimal port string to uint16.
func ParsePort(portStr string) (uint16, error) {
	var port uint32
	for i := 0; i < len(portStr); i++ {
		if portStr[i] < '0' || portStr[i] > '9' {
			return 0, errors.New("port " + portStr + " is not a number")
		}
		port = port*10 + uint32(portStr[i]-'0')
		if port > 0xFFFF {
			return 0, errors.New("port " + portStr + " out of range")
		}
	}
	if port == 0 {
		return 0, errors.New("port must be non-zero")
	}
	return uint16(port), nil
}
