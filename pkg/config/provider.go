// Package config defines the configuration schema, the file providers that
// load it, and the validation pass the supervisor runs before wiring.
package config

import "strings"

// Provider is the interface configuration sources implement.
type Provider interface {
	// LoadConfig reads and decodes the complete configuration.
	LoadConfig() (*Data, error)

	IsReadOnly() bool
	Close() error
}

// NewProvider picks a provider from the file extension: .yaml/.yml files
// use the YAML backend, everything else the JSON backend.
func NewProvider(path string) Provider {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return NewYAMLProvider(path)
	}
	return NewJSONProvider(path)
}

// Data is the complete configuration tree.
type Data struct {
	Devices       DevicesData     `json:"devices" yaml:"devices"`
	GrowingSystem GrowingSystem   `json:"growing_system" yaml:"growing_system"`
	Schedule      ScheduleData    `json:"schedule" yaml:"schedule"`
	Logging       LoggingData     `json:"logging,omitempty" yaml:"logging,omitempty"`
	Web           *WebData        `json:"web,omitempty" yaml:"web,omitempty"`
	Sensors       []ComponentData `json:"sensors,omitempty" yaml:"sensors,omitempty"`
	Actuators     []ComponentData `json:"actuators,omitempty" yaml:"actuators,omitempty"`
}

// topLevelKeys is the closed set of keys accepted at the document root.
// Unknown keys elsewhere (driver config bags and the like) are ignored.
var topLevelKeys = map[string]bool{
	"devices":        true,
	"growing_system": true,
	"schedule":       true,
	"logging":        true,
	"web":            true,
	"sensors":        true,
	"actuators":      true,
}

// DevicesData wraps the device list.
type DevicesData struct {
	Devices []DeviceData `json:"devices" yaml:"devices"`
}

// DeviceData configures one smart plug.
type DeviceData struct {
	DeviceID      string                 `json:"device_id" yaml:"device_id"`
	Name          string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Brand         string                 `json:"brand" yaml:"brand"`
	Model         string                 `json:"model,omitempty" yaml:"model,omitempty"`
	Address       string                 `json:"address" yaml:"address"`
	Auth          *AuthData              `json:"auth,omitempty" yaml:"auth,omitempty"`
	AutoDiscovery bool                   `json:"auto_discovery,omitempty" yaml:"auto_discovery,omitempty"`
	Config        map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// AuthData carries driver credentials.
type AuthData struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// GrowingSystem selects the system variant and its primary device.
type GrowingSystem struct {
	Type            string                 `json:"type" yaml:"type"`
	PrimaryDeviceID string                 `json:"primary_device_id" yaml:"primary_device_id"`
	Config          map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// ScheduleData is the schedule union; Type selects which fields apply.
type ScheduleData struct {
	Type    string `json:"type" yaml:"type"`
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	FloodMinutes float64 `json:"flood_minutes" yaml:"flood_minutes"`

	// interval variant
	DrainMinutes    float64          `json:"drain_minutes,omitempty" yaml:"drain_minutes,omitempty"`
	IntervalMinutes float64          `json:"interval_minutes,omitempty" yaml:"interval_minutes,omitempty"`
	ActiveHours     *ActiveHoursData `json:"active_hours,omitempty" yaml:"active_hours,omitempty"`

	// time_based variant
	Cycles     []CycleData     `json:"cycles,omitempty" yaml:"cycles,omitempty"`
	Adaptation *AdaptationData `json:"adaptation,omitempty" yaml:"adaptation,omitempty"`
}

// ActiveHoursData is a daily window in HH:MM local time; it may wrap
// midnight.
type ActiveHoursData struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// CycleData is one configured cycle.
type CycleData struct {
	OnTime             string  `json:"on_time" yaml:"on_time"`
	OffDurationMinutes float64 `json:"off_duration_minutes" yaml:"off_duration_minutes"`
}

// AdaptationData configures environmental adaptation.
type AdaptationData struct {
	Enabled     bool             `json:"enabled" yaml:"enabled"`
	Location    *LocationData    `json:"location,omitempty" yaml:"location,omitempty"`
	Temperature *TemperatureData `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Daylight    *DaylightData    `json:"daylight,omitempty" yaml:"daylight,omitempty"`
	Adaptive    *AdaptiveData    `json:"adaptive,omitempty" yaml:"adaptive,omitempty"`
}

// LocationData resolves the installation's position.
type LocationData struct {
	Postcode  string `json:"postcode,omitempty" yaml:"postcode,omitempty"`
	Timezone  string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	GeocodeDB string `json:"geocode_db,omitempty" yaml:"geocode_db,omitempty"`
}

// TemperatureData configures the observation fetcher.
type TemperatureData struct {
	StationID             string `json:"station_id,omitempty" yaml:"station_id,omitempty"`
	UpdateIntervalMinutes int    `json:"update_interval_minutes,omitempty" yaml:"update_interval_minutes,omitempty"`
	Sensitivity           string `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
	HumiditySensitivity   string `json:"humidity_sensitivity,omitempty" yaml:"humidity_sensitivity,omitempty"`
}

// DaylightData toggles sunrise/sunset period pinning.
type DaylightData struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// AdaptiveData configures the schedule generator.
type AdaptiveData struct {
	Enabled     bool             `json:"enabled" yaml:"enabled"`
	BaseWaits   *BaseWaitsData   `json:"base_waits,omitempty" yaml:"base_waits,omitempty"`
	Constraints *ConstraintsData `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// BaseWaitsData holds per-period base waits in minutes.
type BaseWaitsData struct {
	Morning float64 `json:"morning" yaml:"morning"`
	Day     float64 `json:"day" yaml:"day"`
	Evening float64 `json:"evening" yaml:"evening"`
	Night   float64 `json:"night" yaml:"night"`
}

// ConstraintsData bounds generated waits and floods in minutes.
type ConstraintsData struct {
	MinWait  float64 `json:"min_wait" yaml:"min_wait"`
	MaxWait  float64 `json:"max_wait" yaml:"max_wait"`
	MinFlood float64 `json:"min_flood" yaml:"min_flood"`
	MaxFlood float64 `json:"max_flood" yaml:"max_flood"`
}

// LoggingData configures log output.
type LoggingData struct {
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// WebData configures the REST control surface.
type WebData struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host,omitempty" yaml:"host,omitempty"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// ComponentData is the reserved sensor/actuator slot shape.
type ComponentData struct {
	ID     string                 `json:"id" yaml:"id"`
	Type   string                 `json:"type" yaml:"type"`
	Config map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}
