// Package mqttpub publishes fix records to an MQTT broker as retained JSON
// messages, one per applied fix.
package mqttpub

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"gnssmon/internal/nmea"
)

type Config struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Topic    string
}

type Publisher struct {
	client mqtt.Client
	topic  string
}

// New connects to the broker and returns a ready publisher.
func New(cfg Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	return &Publisher{client: client, topic: cfg.Topic}, nil
}

// PublishFix publishes one fix, retained so late subscribers see the latest
// position immediately.
func (p *Publisher) PublishFix(fix nmea.Fix) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return fmt.Errorf("marshal fix: %w", err)
	}
	token := p.client.Publish(p.topic, 0, true, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
