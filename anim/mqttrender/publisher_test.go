package mqttrender_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/mqttrender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func completedToken(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool {
	<-t.done
	return true
}

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

// fakeClient records publishes and loops them back to subscribers.
type fakeClient struct {
	mqtt.Client

	published [][]byte
	handlers  map[string]mqtt.MessageHandler
	token     func() mqtt.Token
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: map[string]mqtt.MessageHandler{}}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	data := payload.([]byte)
	c.published = append(c.published, data)
	if h, ok := c.handlers[topic]; ok {
		h(c, &fakeMessage{topic: topic, payload: data})
	}
	if c.token != nil {
		return c.token()
	}
	return completedToken(nil)
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.handlers[topic] = callback
	return completedToken(nil)
}

func TestPublisher(t *testing.T) {
	snap := anim.Snapshot{Opacities: []anim.OpacityProperty{{Id: 7, Opacity: 0.5}}}

	t.Run("publishes the encoded snapshot", func(t *testing.T) {
		client := newFakeClient()
		pub := mqttrender.NewPublisher(client, "anim/frames", 1)

		require.NoError(t, pub.ApplyProperties(context.Background(), snap))
		require.Len(t, client.published, 1)

		var decoded anim.Snapshot
		require.NoError(t, decoded.UnmarshalBinary(client.published[0]))
		assert.Equal(t, snap, decoded)
	})

	t.Run("suppresses repeated empty snapshots", func(t *testing.T) {
		client := newFakeClient()
		pub := mqttrender.NewPublisher(client, "anim/frames", 0)
		ctx := context.Background()

		require.NoError(t, pub.ApplyProperties(ctx, snap))
		require.NoError(t, pub.ApplyProperties(ctx, anim.Snapshot{}))
		require.NoError(t, pub.ApplyProperties(ctx, anim.Snapshot{}))
		require.NoError(t, pub.ApplyProperties(ctx, anim.Snapshot{}))
		require.NoError(t, pub.ApplyProperties(ctx, snap))

		assert.Len(t, client.published, 3)
		published, suppressed := pub.Counts()
		assert.Equal(t, int64(3), published)
		assert.Equal(t, int64(2), suppressed)
	})

	t.Run("returns publish errors", func(t *testing.T) {
		client := newFakeClient()
		client.token = func() mqtt.Token { return completedToken(errors.New("not connected")) }
		pub := mqttrender.NewPublisher(client, "anim/frames", 1)

		err := pub.ApplyProperties(context.Background(), snap)
		assert.ErrorContains(t, err, "not connected")
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		client := newFakeClient()
		client.token = func() mqtt.Token { return &fakeToken{done: make(chan struct{})} }
		pub := mqttrender.NewPublisher(client, "anim/frames", 2)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, pub.ApplyProperties(ctx, snap), context.DeadlineExceeded)
	})
}

func TestSubscribe(t *testing.T) {
	client := newFakeClient()

	var got []anim.Snapshot
	var errs []error
	require.NoError(t, mqttrender.Subscribe(client, "anim/frames", 1, func(s anim.Snapshot, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		got = append(got, s)
	}))

	pub := mqttrender.NewPublisher(client, "anim/frames", 1)
	snap := anim.Snapshot{Colors: []anim.ColorProperty{{Id: 9, Color: 0x00FF00FF}}}
	require.NoError(t, pub.ApplyProperties(context.Background(), snap))
	client.Publish("anim/frames", 1, false, []byte{1, 2})

	require.Len(t, got, 1)
	assert.Equal(t, snap, got[0])
	assert.Len(t, errs, 1)
}

func TestPublisherWithDriver(t *testing.T) {
	client := newFakeClient()
	store := anim.NewStore()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Install(3, []anim.PropertyAnimationGroup{{
		Property: anim.PropertyOpacity,
		Timing:   anim.Timing{StartTime: start, Duration: time.Second},
		Segments: []anim.Segment{{EndPortion: 1, From: anim.OpacityKeyframe(0), To: anim.OpacityKeyframe(1)}},
	}}, nil))

	driver := anim.NewDriver(store, mqttrender.NewPublisher(client, "anim/frames", 1))
	for _, offset := range []time.Duration{0, 500 * time.Millisecond, 2 * time.Second, 3 * time.Second} {
		_, err := driver.Once(context.Background(), start.Add(offset))
		require.NoError(t, err)
	}

	// The finished animation leaves its last value cached, so every frame carries it.
	assert.Len(t, client.published, 4)
}
