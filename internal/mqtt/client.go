package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ProjectZuki/arduino-led-trigger/internal/logging"
	"github.com/dchest/uniuri"
	pm "github.com/eclipse/paho.mqtt.golang"
)

const (
	qos            = 1
	connectTimeout = 10 * time.Second
)

type MQTTClient struct {
	client         *pm.Client
	baseTopic      string
	subscribeTopic string
}

// Publish sends payload to topic without waiting for the broker to
// acknowledge it; failures are logged.
func (mc *MQTTClient) Publish(topic string, payload string) {
	token := (*mc.client).Publish(topic, qos, true, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			logging.Warn("Failed to publish to %s: %s", topic, token.Error())
		}
	}()
}

func (mc *MQTTClient) Connect(h CommandHandler) error {
	// Connect to the MQTT broker
	if token := (*mc.client).Connect(); !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt: connect timed out after %s", connectTimeout)
	} else if token.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", token.Error())
	}

	prefix := strings.Replace(mc.subscribeTopic, "#", "", 1)

	// Set up a callback function to handle incoming messages
	messageHandler := func(client pm.Client, msg pm.Message) {
		topic := msg.Topic()
		if !strings.HasPrefix(topic, prefix) {
			return
		}
		id := strings.Replace(topic, prefix, "", 1)

		bytes := msg.Payload()
		payload, err := parsePayload(&bytes)
		if err != nil {
			logging.Warn("Error unmarshalling JSON: %s %v", err, string(bytes))
			return
		}
		logging.Debug("Received message on topic %s: %s", id, payload.String())

		if err := h.HandleCommand(id, payload); err != nil {
			logging.Warn("Rejected command on %s: %s", id, err)
		}
	}

	if token := (*mc.client).Subscribe(mc.subscribeTopic, qos, messageHandler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt: subscribe %s: %w", mc.subscribeTopic, token.Error())
	}
	logging.Info("Subscribed to %s", mc.subscribeTopic)
	return nil
}

func (mc *MQTTClient) Disconnect() {
	logging.Info("Disconnecting from MQTT")

	if token := (*mc.client).Unsubscribe(mc.subscribeTopic); token.WaitTimeout(time.Second) && token.Error() != nil {
		logging.Warn("Failed to unsubscribe: %s", token.Error())
	}

	(*mc.client).Disconnect(250)
}

// EmitStatus publishes data as retained JSON under <base>/status/<id>/<statusKey>.
func (mc *MQTTClient) EmitStatus(ctx context.Context, id string, statusKey string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("mqtt: encode status: %w", err)
	}
	mc.Publish(mc.statusTopic(id, statusKey), string(b))
	return nil
}

func (mc *MQTTClient) statusTopic(id, statusKey string) string {
	return strings.Join([]string{mc.baseTopic, "status", id, statusKey}, "/")
}

func NewMQTTClient(uri *url.URL, baseTopic string, subscribeTopic string) *MQTTClient {
	opts := pm.NewClientOptions().
		AddBroker(uri.String()).
		SetClientID("led_trigger_" + uniuri.New()).
		SetAutoReconnect(true).
		SetOnConnectHandler(onConnectHandler).
		SetConnectionLostHandler(onConnectionLostHandler)

	if uri.User != nil {
		opts.SetUsername(uri.User.Username())
		if p, ok := uri.User.Password(); ok {
			opts.SetPassword(p)
		}
	}

	client := pm.NewClient(opts)
	return &MQTTClient{client: &client, baseTopic: baseTopic, subscribeTopic: subscribeTopic}
}

func parsePayload(bytes *[]byte) (*Command, error) {
	var payload Command
	if err := json.Unmarshal(*bytes, &payload); err == nil {
		return &payload, nil
	}

	// Some publishers double encode the JSON as a string.
	var passOne string
	if err := json.Unmarshal(*bytes, &passOne); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(passOne), &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func onConnectHandler(c pm.Client) {
	logging.Info("Connected to MQTT")
}

func onConnectionLostHandler(c pm.Client, err error) {
	logging.Warn("Lost MQTT connection: %s", err)
}
