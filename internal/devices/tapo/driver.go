// Package tapo implements a local-network driver for TP-Link Tapo smart
// plugs using the device's HTTP JSON-RPC endpoint.
package tapo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Driver speaks to one plug at a fixed address. Connect performs the login
// handshake and stores the session token subsequent requests carry.
type Driver struct {
	address  string
	username string
	password string
	client   *http.Client
	token    string
}

// New builds an unconnected driver for the plug at address.
func New(address, username, password string) *Driver {
	return &Driver{
		address:  address,
		username: username,
		password: password,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type request struct {
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

type response struct {
	ErrorCode int             `json:"error_code"`
	Result    json.RawMessage `json:"result,omitempty"`
}

// Connect logs into the plug and captures the session token.
func (d *Driver) Connect() error {
	d.token = ""
	result, err := d.call("", request{
		Method: "login_device",
		Params: map[string]string{
			"username": d.username,
			"password": d.password,
		},
	})
	if err != nil {
		return fmt.Errorf("tapo login failed: %w", err)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(result, &login); err != nil {
		return fmt.Errorf("tapo login response malformed: %w", err)
	}
	if login.Token == "" {
		return fmt.Errorf("tapo login returned no token")
	}
	d.token = login.Token
	return nil
}

// SetPower switches the relay.
func (d *Driver) SetPower(on bool) error {
	if d.token == "" {
		return fmt.Errorf("tapo session not established")
	}
	_, err := d.call(d.token, request{
		Method: "set_device_info",
		Params: map[string]bool{"device_on": on},
	})
	return err
}

// Power queries the current relay state.
func (d *Driver) Power() (bool, error) {
	if d.token == "" {
		return false, fmt.Errorf("tapo session not established")
	}
	result, err := d.call(d.token, request{Method: "get_device_info"})
	if err != nil {
		return false, err
	}
	var info struct {
		DeviceOn bool `json:"device_on"`
	}
	if err := json.Unmarshal(result, &info); err != nil {
		return false, fmt.Errorf("tapo device info malformed: %w", err)
	}
	return info.DeviceOn, nil
}

// Close drops the session token. The plug expires tokens on its own.
func (d *Driver) Close() error {
	d.token = ""
	return nil
}

func (d *Driver) call(token string, req request) (json.RawMessage, error) {
	url := fmt.Sprintf("http://%s/app", d.address)
	if token != "" {
		url += "?token=" + token
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", d.address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device returned status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode device response: %w", err)
	}
	if parsed.ErrorCode != 0 {
		return nil, fmt.Errorf("device error code %d for method %s", parsed.ErrorCode, req.Method)
	}
	return parsed.Result, nil
}
