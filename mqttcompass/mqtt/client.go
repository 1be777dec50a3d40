// Package mqtt publishes compass readings to an MQTT broker over the
// CYW43439 network stack.
package mqtt

import (
	"errors"
	"log/slog"
	"net/netip"
	"runtime"
	"time"

	"github.com/harveysanders/picocompass/compass"
	"github.com/harveysanders/picocompass/mqttcompass/lcd"
	"github.com/harveysanders/picocompass/mqttcompass/telemetry"
	"github.com/soypat/lneto/tcp"
	"github.com/soypat/lneto/x/xnet"
	mqtt "github.com/soypat/natiu-mqtt"
)

const pollTime = 5 * time.Millisecond

var pubFlags, _ = mqtt.NewPublishFlags(mqtt.QoS0, false, false)

type Client struct {
	ID                string
	Timeout           time.Duration
	TCPBufSize        int
	Logger            *slog.Logger
	HeartbeatInterval time.Duration
	Username          string // MQTT broker username (optional)
	Password          string // MQTT broker password (optional, requires Username)
}

// session is one broker connection attempt and everything it reuses
// between attempts.
type session struct {
	*Client
	net    *xnet.StackAsync
	server netip.AddrPort
	conn   tcp.Conn
	mqtt   *mqtt.Client
	vconn  mqtt.VariablesConnect
	lcd    chan<- lcd.Message
}

// ConnectAndPublish connects to the MQTT broker at addr and publishes every
// reading to telemetry.Topic. It only returns on configuration or lookup
// errors; dropped connections are retried forever.
func (c *Client) ConnectAndPublish(
	stack *xnet.StackAsync,
	addr string,
	readings <-chan compass.Reading,
	lcdMessages chan<- lcd.Message,
) error {
	c.Logger.Info("mqtt:broker", slog.String("addr", addr))
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	s := &session{
		Client: c,
		net:    stack,
		lcd:    lcdMessages,
		mqtt: mqtt.NewClient(mqtt.ClientConfig{
			Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 4096)},
		}),
	}
	if err := s.resolve(addr); err != nil {
		return err
	}
	s.vconn.SetDefaultMQTT([]byte(c.ID))
	if c.Username != "" {
		s.vconn.Username = []byte(c.Username)
		if c.Password != "" {
			s.vconn.Password = []byte(c.Password)
		}
	}
	err := s.conn.Configure(tcp.ConnConfig{
		RxBuf:             make([]byte, c.TCPBufSize),
		TxBuf:             make([]byte, c.TCPBufSize),
		TxPacketQueueSize: 3,
	})
	if err != nil {
		return errors.New("tcp configure: " + err.Error())
	}

	for {
		lcd.Send(lcdMessages, "Broker", addr)
		if err := s.connect(); err != nil {
			s.close(err.Error())
			time.Sleep(2 * time.Second)
			continue
		}
		lcd.Send(lcdMessages, "MQTT Connected", "Publishing...")
		s.publish(readings)

		c.Logger.Error("mqtt:disconnected", slog.Any("reason", s.mqtt.Err()))
		lcd.Send(lcdMessages, "Disconnected", "Reconnecting...")
		s.close("disconnected")
		runtime.Gosched()
	}
}

// resolve turns addr into the broker address, looking the host up over DNS
// unless it is an IP literal.
func (s *session) resolve(addr string) error {
	host, portStr, err := telemetry.SplitHostPort(addr)
	if err != nil {
		return errors.New("broker address " + addr + ": " + err.Error())
	}
	port, err := telemetry.ParsePort(portStr)
	if err != nil {
		return errors.New("broker address " + addr + ": " + err.Error())
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		s.Logger.Info("dns:resolving", slog.String("host", host))
		rstack := s.net.StackRetrying(pollTime)
		addrs, err := rstack.DoLookupIP(host, 5*time.Second, 3)
		if err != nil {
			return errors.New("dns lookup for " + host + ": " + err.Error())
		}
		if len(addrs) == 0 {
			return errors.New("dns lookup for " + host + ": no addresses returned")
		}
		ip = addrs[0]
	}
	s.server = netip.AddrPortFrom(ip, port)
	s.Logger.Info("mqtt:resolved", slog.String("server", s.server.String()))
	return nil
}

// connect dials the broker from a random local port and completes the MQTT
// handshake within 50 polls.
func (s *session) connect() error {
	localPort := uint16(s.net.Prand32()>>17) + 1024
	s.Logger.Info("tcp:dialing", slog.Uint64("localPort", uint64(localPort)))
	lcd.Send(s.lcd, "Connecting...", "TCP handshake")
	rstack := s.net.StackRetrying(pollTime)
	if err := rstack.DoDialTCP(&s.conn, localPort, s.server, 10*time.Second, 3); err != nil {
		return errors.New("dial: " + err.Error())
	}

	lcd.Send(s.lcd, "MQTT Connect", "Authenticating")
	s.conn.SetDeadline(time.Now().Add(s.Timeout))
	if err := s.mqtt.StartConnect(&s.conn, &s.vconn); err != nil {
		lcd.Send(s.lcd, "Connect Failed", err.Error())
		return errors.New("mqtt connect: " + err.Error())
	}
	for i := 0; i < 50 && !s.mqtt.IsConnected(); i++ {
		time.Sleep(100 * time.Millisecond)
		if err := s.mqtt.HandleNext(); err != nil {
			s.Logger.Error("mqtt:handle-next", slog.String("err", err.Error()))
		}
	}
	if !s.mqtt.IsConnected() {
		lcd.Send(s.lcd, "Connect Failed", "Timed out")
		return errors.New("mqtt connect: timed out")
	}
	return nil
}

// publish sends readings until the broker connection drops. The heartbeat
// keeps the connection serviced while no readings arrive.
func (s *session) publish(readings <-chan compass.Reading) {
	heartbeat := time.NewTicker(s.HeartbeatInterval)
	defer heartbeat.Stop()
	vpub := mqtt.VariablesPublish{TopicName: []byte(telemetry.Topic)}
	for s.mqtt.IsConnected() {
		select {
		case r := <-readings:
			payload, err := telemetry.Encode(r)
			if err != nil {
				s.Logger.Error("mqtt:encode", slog.Any("reason", err))
				continue
			}
			s.conn.SetDeadline(time.Now().Add(s.Timeout))
			vpub.PacketIdentifier = uint16(s.net.Prand32())
			if err := s.mqtt.PublishPayload(pubFlags, vpub, payload); err != nil {
				s.Logger.Error("mqtt:publish", slog.Any("reason", err))
				continue
			}
			s.Logger.Info("mqtt:published", slog.String("dir", r.Direction.String()))
		case <-heartbeat.C:
		default:
			// TinyGo runs goroutines on one core; let the packet pump in.
			runtime.Gosched()
			continue
		}
		if err := s.mqtt.HandleNext(); err != nil {
			s.Logger.Error("mqtt:handle-next", slog.String("err", err.Error()))
		}
	}
}

// close shuts the TCP connection, waiting up to 5s for a clean close
// before aborting it.
func (s *session) close(reason string) {
	s.Logger.Error("tcp:closing", slog.String("reason", reason))
	s.conn.Close()
	for i := 0; i < 50 && !s.conn.State().IsClosed(); i++ {
		time.Sleep(100 * time.Millisecond)
	}
	s.conn.Abort()
}
