package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTInvoker invokes a named action over an MQTT broker: it
// publishes the JSON-encoded params to "<Prefix>/<action>/request"
// and waits for a matching reply on
// "<Prefix>/<action>/response", the local-dev stand-in for a
// message-broker-fronted FaaS platform.
type MQTTInvoker struct {
	Prefix  string
	Timeout time.Duration
	QoS     byte
	Debug   bool

	client mqtt.Client
}

// NewMQTTInvoker connects to broker using opts and returns a ready
// MQTTInvoker. Connection follows the teacher's Connect-then-Wait
// idiom.
func NewMQTTInvoker(opts *mqtt.ClientOptions, prefix string) (*MQTTInvoker, error) {
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTTInvoker{
		Prefix:  prefix,
		Timeout: 30 * time.Second,
		QoS:     1,
		client:  client,
	}, nil
}

func (m *MQTTInvoker) logf(format string, args ...interface{}) {
	if m.Debug {
		log.Printf("platform.MQTTInvoker."+format, args...)
	}
}

// Disconnect quiesces and closes the broker connection.
func (m *MQTTInvoker) Disconnect(quiesceMS uint) {
	m.client.Disconnect(quiesceMS)
}

// Invoke publishes params to the action's request topic and blocks
// until a reply arrives on its response topic, ctx is cancelled, or
// Timeout elapses. The decoded reply becomes the conductor's resumed
// params (spec.md §6.2).
func (m *MQTTInvoker) Invoke(ctx context.Context, action string, params interface{}) (interface{}, error) {
	reqTopic := fmt.Sprintf("%s/%s/request", m.Prefix, action)
	respTopic := fmt.Sprintf("%s/%s/response", m.Prefix, action)

	replies := make(chan []byte, 1)
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case replies <- msg.Payload():
		default:
		}
	}

	subToken := m.client.Subscribe(respTopic, m.QoS, handler)
	if subToken.Wait() && subToken.Error() != nil {
		return nil, subToken.Error()
	}
	defer m.client.Unsubscribe(respTopic)

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	m.logf("Invoke %s -> %s", action, reqTopic)
	pubToken := m.client.Publish(reqTopic, m.QoS, false, body)
	if pubToken.Wait() && pubToken.Error() != nil {
		return nil, pubToken.Error()
	}

	deadline := m.Timeout
	if deadline == 0 {
		deadline = 30 * time.Second
	}
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("action %q timed out waiting on %s", action, respTopic)
	case payload := <-replies:
		var result interface{}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &result); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
}
