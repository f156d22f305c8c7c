// Package publish pushes decoded schedules to downstream consumers
// such as SCADA integrations listening on an MQTT broker.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/pumpflow/core/schedule"
	"github.com/kilianp07/pumpflow/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "pumpflow"
	}
	if c.Topic == "" {
		c.Topic = "pumpflow/schedule"
	}
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient can be overridden in tests to inject a mock client.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// SchedulePublisher publishes decoded schedules on an MQTT topic.
type SchedulePublisher struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewSchedulePublisher connects to the broker described by cfg.
func NewSchedulePublisher(cfg Config) (*SchedulePublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second)

	cli := newMQTTClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &SchedulePublisher{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("schedule-publisher"),
	}, nil
}

// message is the wire format of a published schedule.
type message struct {
	RunID    string             `json:"run_id"`
	Schedule *schedule.Schedule `json:"schedule"`
	Time     time.Time          `json:"time"`
}

// Publish sends the schedule as JSON on the configured topic.
func (p *SchedulePublisher) Publish(runID string, s *schedule.Schedule) error {
	payload, err := json.Marshal(message{RunID: runID, Schedule: s, Time: time.Now()})
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish schedule: %w", tok.Error())
	}
	p.log.Infof("schedule %s published to %s", runID, p.topic)
	return nil
}

// Close disconnects from the broker.
func (p *SchedulePublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
