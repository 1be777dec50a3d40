// Package cyw43439 puts the MQTT compass on the network: it joins WiFi with
// the Pico W radio, pumps packets between the radio and the lneto stack and
// leases an address over DHCP.
//
// Set the network with
//
//	-ldflags "-X github.com/harveysanders/picocompass/mqttcompass/cyw43439.ssid=NAME -X github.com/harveysanders/picocompass/mqttcompass/cyw43439.pass=SECRET"
//
// Bring-up follows the soypat/cyw43439 examples:
// https://github.com/soypat/cyw43439/tree/main/examples/common
package cyw43439

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/soypat/cyw43439"
	"github.com/soypat/lneto/x/xnet"
)

const (
	// Hostname the compass announces in its DHCP request.
	Hostname = "picocompass"
	// The compass only ever holds the broker connection.
	maxTCPConns = 1
	// idlePoll is the pause between packet rounds with no traffic.
	idlePoll = 5 * time.Millisecond
	// dhcpPoll is how often DHCP and ARP exchanges are checked.
	dhcpPoll = 50 * time.Millisecond
)

var (
	ssid string
	pass string
)

// Stack is the compass's network: the radio plus the lneto stack on top of it.
type Stack struct {
	net   xnet.StackAsync
	dev   *cyw43439.Device
	log   *slog.Logger
	txbuf [cyw43439.MTU]byte
}

// Connect joins the network set at link time, starts moving packets in the
// background and waits for a DHCP lease. Joining is retried until the
// access point accepts; a failed lease is returned as an error.
func Connect(logger *slog.Logger) (*Stack, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(127),
		}))
	}
	s := &Stack{dev: cyw43439.NewPicoWDevice(), log: logger}
	if err := s.join(); err != nil {
		return nil, err
	}
	go s.pump()
	if err := s.lease(); err != nil {
		return nil, err
	}
	return s, nil
}

// Net returns the lneto stack for dialing and DNS.
func (s *Stack) Net() *xnet.StackAsync { return &s.net }

func (s *Stack) join() error {
	start := time.Now()
	s.dev.SetLogger(s.log)
	if err := s.dev.Init(cyw43439.DefaultWifiConfig()); err != nil {
		return errors.New("wifi: init radio: " + err.Error())
	}
	s.log.Info("wifi:radio-up", slog.Duration("took", time.Since(start)))

	s.log.Info("wifi:joining", slog.String("ssid", ssid), slog.Bool("open", pass == ""))
	for {
		err := s.dev.JoinWPA2(ssid, pass)
		if err == nil {
			break
		}
		s.log.Error("wifi:join", slog.String("err", err.Error()))
		time.Sleep(5 * time.Second)
	}

	mac, err := s.dev.HardwareAddr6()
	if err != nil {
		return errors.New("wifi: read MAC: " + err.Error())
	}
	s.log.Info("wifi:joined", slog.String("mac", net.HardwareAddr(mac[:]).String()))

	err = s.net.Reset(xnet.StackConfig{
		Hostname:        Hostname,
		MaxTCPConns:     maxTCPConns,
		RandSeed:        time.Since(start).Nanoseconds(),
		HardwareAddress: mac,
		MTU:             cyw43439.MTU,
	})
	if err != nil {
		return errors.New("wifi: reset stack: " + err.Error())
	}
	s.dev.RecvEthHandle(func(pkt []byte) error {
		return s.net.Demux(pkt, 0)
	})
	return nil
}

// pump moves packets between the radio and the stack forever.
func (s *Stack) pump() {
	for {
		got, err := s.dev.PollOne()
		if err != nil {
			s.log.Error("wifi:poll", slog.String("err", err.Error()))
		}
		n, err := s.net.Encapsulate(s.txbuf[:], -1, 0)
		if err != nil {
			s.log.Error("wifi:encapsulate", slog.String("err", err.Error()))
		}
		if n > 0 {
			if err := s.dev.SendEth(s.txbuf[:n]); err != nil {
				s.log.Error("wifi:send", slog.Int("len", n), slog.String("err", err.Error()))
			}
			continue
		}
		if !got {
			time.Sleep(idlePoll)
		}
	}
}

// lease runs DHCP and points the stack at the router it hands out.
func (s *Stack) lease() error {
	rstack := s.net.StackRetrying(dhcpPoll)
	s.log.Info("dhcp:start")
	res, err := rstack.DoDHCPv4([4]byte{}, 3*time.Second, 3)
	if err != nil {
		return errors.New("dhcp: " + err.Error())
	}
	if err := s.net.AssimilateDHCPResults(res); err != nil {
		return errors.New("dhcp: apply lease: " + err.Error())
	}
	router, err := rstack.DoResolveHardwareAddress6(res.Router, 500*time.Millisecond, 4)
	if err != nil {
		return errors.New("dhcp: resolve router: " + err.Error())
	}
	s.net.SetGateway6(router)
	s.log.Info("dhcp:leased",
		slog.String("addr", res.AssignedAddr.String()),
		slog.String("router", res.Router.String()),
		slog.Uint64("lease_sec", uint64(res.TLease)),
	)
	return nil
}
