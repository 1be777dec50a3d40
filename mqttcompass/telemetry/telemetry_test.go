package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/harveysanders/picocompass/compass"
	"github.com/harveysanders/picocompass/heading"
)

func TestEncode(t *testing.T) {
	r := compass.Reading{
		X: 120, Y: -40, Z: 7,
		Angle:     341.5,
		Direction: heading.NNW,
		SinceBoot: 1500 * time.Millisecond,
	}
	b, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	var got Heading
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("payload %s is not JSON: %v", b, err)
	}
	want := Heading{Degrees: 341.5, Direction: "NNW", X: 120, Y: -40, Z: 7, SinceBootMS: 1500}
	if got != want {
		t.Errorf("payload = %+v, want %+v", got, want)
	}
}

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		addr    string
		host    string
		port    string
		wantErr bool
	}{
		{addr: "10.0.0.9:1883", host: "10.0.0.9", port: "1883"},
		{addr: "broker.local:8883", host: "broker.local", port: "8883"},
		{addr: "::1:1883", host: "::1", port: "1883"},
		{addr: "broker.local", wantErr: true},
		{addr: ":1883", wantErr: true},
		{addr: "broker.local:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, err := SplitHostPort(tt.addr)
			if err != nil {
				if !tt.wantErr {
					t.Errorf("SplitHostPort() failed: %v", err)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("SplitHostPort() succeeded unexpectedly")
			}
			if host != tt.host || port != tt.port {
				t.Errorf("SplitHostPort() = %q, %q, want %q, %q", host, port, tt.host, tt.port)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "1883", want: 1883},
		{in: "65535", want: 65535},
		{in: "65536", wantErr: true},
		{in: "0", wantErr: true},
		{in: "18a3", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePort(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePort(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePort(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
