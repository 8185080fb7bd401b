package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/bus"
)

// Publisher forwards simulation events to an MQTT broker so external
// consumers (dashboards, the game UI) can follow the fleet live. It is a bus
// subscriber like any other; a broken broker never reaches the clock.
type Publisher struct {
	client paho.Client
	prefix string
}

// NewPublisher connects to the broker and returns a ready publisher.
func NewPublisher(broker, clientID, topicPrefix string) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect failed: %w", token.Error())
	}
	return &Publisher{client: client, prefix: topicPrefix}, nil
}

// Run consumes the subscription until its channel closes, publishing each
// event to a per-vehicle topic. Publish errors are logged and skipped.
func (p *Publisher) Run(sub *bus.Subscription) {
	for ev := range sub.C {
		p.publish(ev)
	}
}

func (p *Publisher) publish(ev bus.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("Failed to marshal event for MQTT")
		return
	}
	token := p.client.Publish(p.topic(ev), 0, false, data)
	token.Wait()
	if err := token.Error(); err != nil {
		log.WithError(err).WithField("event", ev.Type).Error("MQTT publish failed")
	}
}

func (p *Publisher) topic(ev bus.Event) string {
	vehicle := ev.VehicleID
	if vehicle == "" {
		vehicle = "engine"
	}
	switch ev.Type {
	case bus.EventIncident:
		return fmt.Sprintf("%s/%s/incident", p.prefix, vehicle)
	case bus.EventRouteCompleted, bus.EventLocationUpdate:
		return fmt.Sprintf("%s/%s/route", p.prefix, vehicle)
	default:
		return fmt.Sprintf("%s/%s/telemetry", p.prefix, vehicle)
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
