package vitals

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Broker is the subset of the MQTT client the feed needs. Satisfied by
// *MQTTClient and by fakes in tests.
type Broker interface {
	Subscribe(topic string, handler func(topic string, payload []byte)) error
	Unsubscribe(topics ...string) error
	IsConnected() bool
	Disconnect()
}

type MQTTClient struct {
	client mqtt.Client
}

// ConnectMQTT dials the broker the wearable publishes on. onLost is invoked
// whenever the connection drops; paho reconnects on its own afterwards.
func ConnectMQTT(broker, clientID string, onLost func(error)) (*MQTTClient, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	if onLost != nil {
		opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			onLost(err)
		})
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return &MQTTClient{client: client}, nil
}

func (c *MQTTClient) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", topic, token.Error())
	}
	return nil
}

func (c *MQTTClient) Unsubscribe(topics ...string) error {
	token := c.client.Unsubscribe(topics...)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt unsubscribe: %w", token.Error())
	}
	return nil
}

func (c *MQTTClient) IsConnected() bool {
	return c.client.IsConnected()
}

func (c *MQTTClient) Disconnect() {
	c.client.Disconnect(250)
}
