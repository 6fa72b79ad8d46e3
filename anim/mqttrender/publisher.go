// Package mqttrender publishes animation snapshots to an MQTT broker, one message per
// frame, in the anim.Snapshot binary encoding.
package mqttrender

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plus3/animstore/anim"
)

// Publisher is an anim.Renderer that publishes each snapshot to a topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	qos    byte

	mu         sync.Mutex
	lastEmpty  bool
	published  int64
	suppressed int64
}

func NewPublisher(client mqtt.Client, topic string, qos byte) *Publisher {
	return &Publisher{client: client, topic: topic, qos: qos}
}

// ApplyProperties publishes snap and waits for the broker to acknowledge it or for
// ctx to be done. After one empty snapshot has been published, further empty
// snapshots are dropped until a non-empty one arrives.
func (p *Publisher) ApplyProperties(ctx context.Context, snap anim.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	empty := snap.IsEmpty()
	if empty && p.lastEmpty {
		p.suppressed++
		return nil
	}

	data, err := snap.MarshalBinary()
	if err != nil {
		return fmt.Errorf("mqttrender: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, data)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqttrender: publish to %s: %w", p.topic, err)
	}

	p.lastEmpty = empty
	p.published++
	anim.Logger().Debug("mqttrender: snapshot published",
		slog.String("topic", p.topic),
		slog.Int("transforms", len(snap.Transforms)),
		slog.Int("opacities", len(snap.Opacities)),
		slog.Int("colors", len(snap.Colors)),
		slog.Int("bytes", len(data)))
	return nil
}

// Counts returns how many snapshots were published and how many empty ones were
// suppressed.
func (p *Publisher) Counts() (published, suppressed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published, p.suppressed
}

// Subscribe decodes every snapshot published on topic and passes it to handler.
// Messages that fail to decode are passed with a non-nil error.
func Subscribe(client mqtt.Client, topic string, qos byte, handler func(anim.Snapshot, error)) error {
	token := client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		var snap anim.Snapshot
		if err := snap.UnmarshalBinary(msg.Payload()); err != nil {
			handler(anim.Snapshot{}, fmt.Errorf("mqttrender: message on %s: %w", msg.Topic(), err))
			return
		}
		handler(snap, nil)
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqttrender: subscribe to %s: %w", topic, token.Error())
	}
	return nil
}
