package tapo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// plugServer emulates the plug's /app endpoint.
func plugServer(t *testing.T) (*httptest.Server, *bool) {
	t.Helper()
	on := new(bool)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch req.Method {
		case "login_device":
			fmt.Fprint(w, `{"error_code":0,"result":{"token":"abc123"}}`)
		case "set_device_info":
			if r.URL.Query().Get("token") != "abc123" {
				fmt.Fprint(w, `{"error_code":9999}`)
				return
			}
			var params struct {
				DeviceOn bool `json:"device_on"`
			}
			json.Unmarshal(req.Params, &params)
			*on = params.DeviceOn
			fmt.Fprint(w, `{"error_code":0}`)
		case "get_device_info":
			fmt.Fprintf(w, `{"error_code":0,"result":{"device_on":%v}}`, *on)
		default:
			fmt.Fprint(w, `{"error_code":-1}`)
		}
	}))
	t.Cleanup(server.Close)
	return server, on
}

func addr(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

func TestConnectAndSwitch(t *testing.T) {
	server, on := plugServer(t)
	d := New(addr(server), "user", "pass")

	if err := d.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := d.SetPower(true); err != nil {
		t.Fatalf("SetPower(true): %v", err)
	}
	if !*on {
		t.Error("relay not energised")
	}

	state, err := d.Power()
	if err != nil {
		t.Fatalf("Power: %v", err)
	}
	if !state {
		t.Error("Power() = false, want true")
	}

	if err := d.SetPower(false); err != nil {
		t.Fatalf("SetPower(false): %v", err)
	}
	if *on {
		t.Error("relay still energised")
	}
}

func TestCommandsRequireSession(t *testing.T) {
	d := New("127.0.0.1:1", "user", "pass")
	if err := d.SetPower(true); err == nil {
		t.Error("SetPower should fail without a session")
	}
	if _, err := d.Power(); err == nil {
		t.Error("Power should fail without a session")
	}
}

func TestDeviceErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error_code":-1010}`)
	}))
	defer server.Close()

	d := New(addr(server), "user", "pass")
	if err := d.Connect(); err == nil {
		t.Error("expected login failure on device error code")
	}
}

func TestCloseDropsSession(t *testing.T) {
	server, _ := plugServer(t)
	d := New(addr(server), "user", "pass")
	if err := d.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	d.Close()
	if err := d.SetPower(true); err == nil {
		t.Error("SetPower should fail after Close")
	}
}
