package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/autocore-io/autocore/pkg/options"
	"github.com/autocore-io/autocore/pkg/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := options.NewPortalOptions()
	opts.BaseURL = srv.URL
	return NewClient(opts)
}

func TestStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Status{
			DeviceUUID:    "esp32-abc",
			DeviceType:    "esp32_relay",
			Configured:    true,
			WiFiConnected: true,
		})
	}))

	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.DeviceUUID != "esp32-abc" || !st.Configured {
		t.Errorf("status = %+v", st)
	}
}

func TestSetConfig(t *testing.T) {
	var got Config
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/config" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))

	err := c.SetConfig(context.Background(), &Config{
		WiFiSSID:   "garagem",
		MQTTBroker: "192.168.1.10",
		MQTTPort:   1883,
	})
	if err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if got.WiFiSSID != "garagem" || got.MQTTPort != 1883 {
		t.Errorf("config = %+v", got)
	}
}

func TestNetworks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Network{
			{SSID: "garagem", RSSI: -52, Channel: 6, Secure: true},
			{SSID: "vizinho", RSSI: -81, Channel: 11, Secure: true},
		})
	}))

	nets, err := c.Networks(context.Background())
	if err != nil {
		t.Fatalf("Networks: %v", err)
	}
	if len(nets) != 2 || nets[0].SSID != "garagem" {
		t.Errorf("networks = %+v", nets)
	}
}

func TestTestConnection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/test-connection" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(TestResult{WiFiOK: true, MQTTOK: false, Message: "broker unreachable"})
	}))

	res, err := c.TestConnection(context.Background(), &Config{WiFiSSID: "garagem"})
	if err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if !res.WiFiOK || res.MQTTOK {
		t.Errorf("result = %+v", res)
	}
}

func TestRestartAndFactoryReset(t *testing.T) {
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	if err := c.Restart(context.Background()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if err := c.FactoryReset(context.Background()); err != nil {
		t.Fatalf("FactoryReset: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/api/restart" || paths[1] != "/api/factory-reset" {
		t.Errorf("paths = %v", paths)
	}
}

func TestTimeoutSurfacesErrTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	opts := options.NewPortalOptions()
	opts.BaseURL = srv.URL
	opts.Timeout = 50 * time.Millisecond
	c := NewClient(opts)

	_, err := c.Status(context.Background())
	if !errors.Is(err, rest.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}
