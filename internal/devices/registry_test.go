package devices

import (
	"testing"

	"go.uber.org/zap"
)

func TestRegistryDispatch(t *testing.T) {
	registry, err := NewRegistry([]Spec{
		{DeviceID: "pump", Brand: "tapo", Address: "192.168.1.50", Username: "u", Password: "p"},
		{DeviceID: "light", Brand: "shelly", Address: "192.168.1.51"},
	}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	pump, ok := registry.Get("pump")
	if !ok {
		t.Fatal("pump not registered")
	}
	if pump.Info().Brand != "tapo" {
		t.Errorf("pump brand = %s", pump.Info().Brand)
	}

	if _, ok := registry.Get("missing"); ok {
		t.Error("unexpected hit for unknown id")
	}

	all := registry.All()
	if len(all) != 2 {
		t.Fatalf("All() = %d devices, want 2", len(all))
	}
	if all[0].Info().DeviceID != "light" || all[1].Info().DeviceID != "pump" {
		t.Errorf("All() not ordered by id: %s, %s",
			all[0].Info().DeviceID, all[1].Info().DeviceID)
	}
}

func TestRegistryUnknownBrand(t *testing.T) {
	_, err := NewRegistry([]Spec{
		{DeviceID: "x", Brand: "acme", Address: "10.0.0.1"},
	}, zap.NewNop().Sugar())
	if err == nil {
		t.Fatal("expected error for unknown brand")
	}
}

func TestRegistryDuplicateID(t *testing.T) {
	_, err := NewRegistry([]Spec{
		{DeviceID: "pump", Brand: "shelly", Address: "10.0.0.1"},
		{DeviceID: "pump", Brand: "shelly", Address: "10.0.0.2"},
	}, zap.NewNop().Sugar())
	if err == nil {
		t.Fatal("expected error for duplicate device id")
	}
}
