// Package mqttbus publishes refresh notices to playback devices. Each player
// subscribes to its own device topic and re-fetches its banner feed when a
// notice arrives; the server never tracks device connections.
package mqttbus

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var client mqtt.Client

// DeviceTopic is the topic a player subscribes to for refresh notices.
func DeviceTopic(deviceID int) string {
	return fmt.Sprintf("player/%d/refresh", deviceID)
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Init connects the publisher client. An empty brokerURL leaves the bus
// disabled; publishes become no-ops.
func Init(brokerURL, clientID string) error {
	if brokerURL == "" {
		log.Info().Msg("MQTT broker not configured, refresh pushes disabled")
		return nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client = mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return nil
}

// PublishRefresh tells one device to re-fetch its banner feed. Best-effort:
// a failed publish is logged and dropped, the device's 30s poll catches up.
func PublishRefresh(deviceID int) {
	if client == nil {
		return
	}
	topic := DeviceTopic(deviceID)
	token := client.Publish(topic, 1, false, "refresh")
	token.Wait()
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("failed to publish refresh notice")
		return
	}
	log.Debug().Str("topic", topic).Msg("published refresh notice")
}

// Cleanup disconnects the publisher client.
func Cleanup() {
	if client != nil {
		client.Disconnect(250)
		log.Info().Msg("MQTT publisher disconnected")
	}
}
