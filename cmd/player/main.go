package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	playerpackets "github.com/NovaMidia-Tec/painel/internal/http/api/player/packets"
	"github.com/NovaMidia-Tec/painel/internal/model"
	"github.com/NovaMidia-Tec/painel/internal/mqttbus"
	"github.com/NovaMidia-Tec/painel/internal/player"
)

// refreshPollInterval is the fallback re-fetch cadence. MQTT pushes trigger
// an immediate re-fetch; this catches up when the broker is unreachable.
const refreshPollInterval = 30 * time.Second

type environment struct {
	ServerURL     string
	DeviceName    string
	MQTTBrokerURL string
}

func loadEnvironment() environment {
	_ = godotenv.Load()

	env := environment{
		ServerURL:     os.Getenv("SERVER_URL"),
		DeviceName:    os.Getenv("DEVICE_NAME"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
	}
	if env.ServerURL == "" {
		log.Fatal().Msg("SERVER_URL is required")
	}
	if env.DeviceName == "" {
		log.Fatal().Msg("DEVICE_NAME is required")
	}
	return env
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := loadEnvironment()
	client := NewClient(env.ServerURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deviceID, err := client.Login(ctx, env.DeviceName)
	if err != nil {
		log.Fatal().Err(err).Str("name", env.DeviceName).Msg("device login failed")
	}
	log.Info().Int("device_id", deviceID).Str("name", env.DeviceName).Msg("logged in")

	hb := player.NewHeartbeat(func(ctx context.Context) error {
		return client.Heartbeat(ctx, deviceID)
	})
	go hb.Run(ctx)

	refresh := make(chan struct{}, 1)
	if env.MQTTBrokerURL != "" {
		mc, err := subscribeRefresh(env.MQTTBrokerURL, deviceID, refresh)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT subscribe failed, falling back to polling only")
		} else {
			defer mc.Disconnect(250)
		}
	}

	run(ctx, client, deviceID, refresh)
}

// run drives the slideshow: render the current banner, sleep for its
// duration, advance. Feed refreshes (pushed or polled) replace the sequence
// in place without resetting the position.
func run(ctx context.Context, client *Client, deviceID int, refresh <-chan struct{}) {
	var rotation player.Rotation
	var etag string

	etag = reload(ctx, client, deviceID, &rotation, etag)
	render(&rotation)

	advance := time.NewTimer(rotation.Interval())
	defer advance.Stop()

	poll := time.NewTicker(refreshPollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case <-advance.C:
			rotation.Advance()
			render(&rotation)
			advance.Reset(rotation.Interval())
		case <-poll.C:
			etag = reload(ctx, client, deviceID, &rotation, etag)
		case <-refresh:
			etag = reload(ctx, client, deviceID, &rotation, etag)
		}
	}
}

// reload re-fetches the feed, revalidating with the last ETag. On 304 or on
// error the current sequence is kept.
func reload(ctx context.Context, client *Client, deviceID int, rotation *player.Rotation, etag string) string {
	feed, notModified, err := client.FetchFeed(ctx, deviceID, etag)
	if err != nil {
		log.Warn().Err(err).Msg("feed fetch failed, keeping current banners")
		return etag
	}
	if notModified {
		return etag
	}

	rotation.Load(toBanners(feed.Banners))
	log.Info().Int("banners", rotation.Len()).Msg("banner feed updated")
	return feed.ETag
}

func render(rotation *player.Rotation) {
	current, ok := rotation.Current()
	if !ok {
		log.Info().Msg("no banners assigned, idle")
		return
	}
	log.Info().
		Int("banner_id", current.ID).
		Str("title", current.Title).
		Str("file_type", current.FileType).
		Str("file_url", current.FileURL).
		Int("duration", current.Duration).
		Msg("showing banner")
}

func toBanners(in []playerpackets.PlayerBanner) []model.Banner {
	out := make([]model.Banner, 0, len(in))
	for _, b := range in {
		out = append(out, model.Banner{
			ID:       b.ID,
			Title:    b.Title,
			FileURL:  b.FileURL,
			FileType: b.FileType,
			Duration: b.Duration,
			OrderNum: b.OrderNum,
		})
	}
	return out
}

// subscribeRefresh listens on the device's refresh topic and nudges the
// playback loop. Notices collapse: one pending nudge is enough.
func subscribeRefresh(brokerURL string, deviceID int, refresh chan<- struct{}) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(fmt.Sprintf("painel-player-%d", deviceID))
	opts.SetAutoReconnect(true)

	mc := mqtt.NewClient(opts)
	if token := mc.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	topic := mqttbus.DeviceTopic(deviceID)
	token := mc.Subscribe(topic, 1, func(_ mqtt.Client, _ mqtt.Message) {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})
	if token.Wait() && token.Error() != nil {
		mc.Disconnect(250)
		return nil, token.Error()
	}

	log.Info().Str("topic", topic).Msg("subscribed for refresh notices")
	return mc, nil
}
