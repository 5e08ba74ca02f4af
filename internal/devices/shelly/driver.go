// Package shelly implements a driver for Shelly Gen1 relays over their
// plain REST interface.
package shelly

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Driver controls relay 0 of a Shelly device.
type Driver struct {
	address string
	client  *http.Client
}

// New builds a driver for the relay at address.
func New(address string) *Driver {
	return &Driver{
		address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Connect verifies the relay answers. Gen1 devices are sessionless.
func (d *Driver) Connect() error {
	_, err := d.relayState()
	if err != nil {
		return fmt.Errorf("shelly not reachable: %w", err)
	}
	return nil
}

// SetPower switches the relay.
func (d *Driver) SetPower(on bool) error {
	turn := "off"
	if on {
		turn = "on"
	}
	resp, err := d.client.Get(fmt.Sprintf("http://%s/relay/0?turn=%s", d.address, turn))
	if err != nil {
		return fmt.Errorf("relay command failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay command returned status %d", resp.StatusCode)
	}
	return nil
}

// Power queries the relay state.
func (d *Driver) Power() (bool, error) {
	return d.relayState()
}

// Close is a no-op; the transport is stateless.
func (d *Driver) Close() error { return nil }

func (d *Driver) relayState() (bool, error) {
	resp, err := d.client.Get(fmt.Sprintf("http://%s/relay/0", d.address))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("relay query returned status %d", resp.StatusCode)
	}
	var state struct {
		IsOn bool `json:"ison"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return false, fmt.Errorf("failed to decode relay state: %w", err)
	}
	return state.IsOn, nil
}
