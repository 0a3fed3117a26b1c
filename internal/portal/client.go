// Package portal talks to the captive-portal HTTP API an unconfigured
// ESP32 board serves on its own access point.
package portal

import (
	"context"

	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/options"
	"github.com/autocore-io/autocore/pkg/rest"
)

// Status is the board's self-reported provisioning state.
type Status struct {
	DeviceUUID      string `json:"device_uuid"`
	DeviceType      string `json:"device_type"`
	FirmwareVersion string `json:"firmware_version"`
	Configured      bool   `json:"configured"`
	WiFiConnected   bool   `json:"wifi_connected"`
	IPAddress       string `json:"ip_address,omitempty"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

// Config is the provisioning payload a board accepts.
type Config struct {
	WiFiSSID     string `json:"wifi_ssid"`
	WiFiPassword string `json:"wifi_password,omitempty"`
	MQTTBroker   string `json:"mqtt_broker"`
	MQTTPort     int    `json:"mqtt_port,omitempty"`
	BackendURL   string `json:"backend_url,omitempty"`
	DeviceName   string `json:"device_name,omitempty"`
}

// Network is one WiFi network found during a scan.
type Network struct {
	SSID    string `json:"ssid"`
	RSSI    int    `json:"rssi"`
	Channel int    `json:"channel"`
	Secure  bool   `json:"secure"`
}

// TestResult reports whether the board could reach the configured
// infrastructure with a candidate config.
type TestResult struct {
	WiFiOK    bool   `json:"wifi_ok"`
	MQTTOK    bool   `json:"mqtt_ok"`
	BackendOK bool   `json:"backend_ok"`
	Message   string `json:"message,omitempty"`
}

// Client accesses one board's captive portal. No retries: the board reboots
// mid-call during provisioning and callers are expected to re-poll.
type Client struct {
	rc     *rest.Client
	logger log.Logger
}

// NewClient creates a portal Client from the given options.
func NewClient(opts *options.PortalOptions) *Client {
	return &Client{
		rc:     rest.NewClient(opts.BaseURL+"/api", opts.Timeout),
		logger: log.WithName("portal"),
	}
}

// Status fetches the board's provisioning state.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.rc.Get(ctx, "/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetConfig fetches the board's current provisioning config. Secrets are
// omitted by the firmware.
func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := c.rc.Get(ctx, "/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetConfig writes a provisioning config. The board typically reboots right
// after accepting it, so a transport error following a 200 is normal.
func (c *Client) SetConfig(ctx context.Context, cfg *Config) error {
	return c.rc.Post(ctx, "/config", cfg, nil)
}

// Networks triggers a WiFi scan and returns the visible networks.
func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	var nets []Network
	if err := c.rc.Get(ctx, "/networks", &nets); err != nil {
		return nil, err
	}
	return nets, nil
}

// TestConnection asks the board to try a candidate config without saving it.
func (c *Client) TestConnection(ctx context.Context, cfg *Config) (*TestResult, error) {
	var res TestResult
	if err := c.rc.Post(ctx, "/test-connection", cfg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Restart reboots the board.
func (c *Client) Restart(ctx context.Context) error {
	return c.rc.Post(ctx, "/restart", nil, nil)
}

// FactoryReset wipes the board's config and reboots into the captive portal.
func (c *Client) FactoryReset(ctx context.Context) error {
	return c.rc.Post(ctx, "/factory-reset", nil, nil)
}
