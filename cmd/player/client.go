package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	playerpackets "github.com/NovaMidia-Tec/painel/internal/http/api/player/packets"
)

// Client talks to the server's public playback API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// Login resolves the configured device name to a device id. The server
// rejects unknown names and inactive devices.
func (c *Client) Login(ctx context.Context, name string) (int, error) {
	body, _ := json.Marshal(playerpackets.DeviceLoginRequest{Name: name})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/player/login", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("login rejected: %s", resp.Status)
	}

	var out playerpackets.DeviceLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.DeviceID, nil
}

// FetchFeed gets the device's banner feed, revalidating with the last seen
// ETag. notModified is true when the server answered 304.
func (c *Client) FetchFeed(ctx context.Context, deviceID int, etag string) (feed playerpackets.BannerFeed, notModified bool, err error) {
	url := fmt.Sprintf("%s/api/player/devices/%d/banners", c.baseURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return feed, false, err
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return feed, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return feed, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return feed, false, fmt.Errorf("feed fetch failed: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return feed, false, err
	}
	return feed, false, nil
}

// Heartbeat overwrites the device's last-seen timestamp.
func (c *Client) Heartbeat(ctx context.Context, deviceID int) error {
	url := fmt.Sprintf("%s/api/player/devices/%d/heartbeat", c.baseURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("heartbeat rejected: %s", resp.Status)
	}
	return nil
}
