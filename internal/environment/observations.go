package environment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/tmcfarlane/floodpilot/internal/stations"
	"github.com/tmcfarlane/floodpilot/internal/timeutil"
)

// DefaultObservationBaseURL is the BOM observation product prefix; the full
// URL is <base>.<station_id>.json.
const DefaultObservationBaseURL = "http://www.bom.gov.au/fwo/IDN60801/IDN60801"

// The upstream returns 403 to requests without a browser-identifying agent.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

const historyCapacity = 24

// bomResponse mirrors the observation product payload. Only the first data
// element is read.
type bomResponse struct {
	Observations struct {
		Data []struct {
			AirTemp *float64 `json:"air_temp"`
			RelHum  *float64 `json:"rel_hum"`
		} `json:"data"`
	} `json:"observations"`
}

// Observations fetches current temperature and humidity from an observation
// station and keeps a bounded history for trend analysis.
type Observations struct {
	stationID   string
	stationName string
	baseURL     string
	client      *http.Client
	logger      *zap.SugaredLogger

	mu              sync.Mutex
	lastTemperature *float64
	lastHumidity    *float64
	lastUpdate      time.Time
	history         *sampleRing

	now func() time.Time
}

// NewObservations creates an observation service for the given station id.
// The display name is resolved from the station directory when known.
func NewObservations(stationID string, logger *zap.SugaredLogger) *Observations {
	name := ""
	if s, ok := stations.Info(stationID); ok {
		name = s.Name
	}
	return &Observations{
		stationID:   stationID,
		stationName: name,
		baseURL:     DefaultObservationBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger.Named("observations").With("station", stationID),
		history:     newSampleRing(historyCapacity),
		now:         time.Now,
	}
}

// StationID returns the configured station id.
func (o *Observations) StationID() string { return o.stationID }

// StationName returns the resolved display name, or "" if unknown.
func (o *Observations) StationName() string { return o.stationName }

// SetBaseURL overrides the observation endpoint prefix.
func (o *Observations) SetBaseURL(base string) { o.baseURL = base }

// Fetch issues one request to the observation endpoint. On success it
// updates the cached values and history and returns the temperature. On
// failure it logs and returns the cached temperature, if any.
func (o *Observations) Fetch() *float64 {
	if o.stationID == "" {
		o.logger.Warn("no observation station configured")
		return nil
	}

	url := fmt.Sprintf("%s.%s.json", o.baseURL, o.stationID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		o.logger.Errorw("failed to build observation request", "error", err)
		return o.cachedTemperature()
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Errorw("failed to fetch observations", "error", err, "url", url)
		return o.cachedTemperature()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		o.logger.Errorw("unexpected status from observation endpoint",
			"status", resp.StatusCode, "url", url)
		return o.cachedTemperature()
	}

	var payload bomResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		o.logger.Errorw("failed to decode observation payload", "error", err)
		return o.cachedTemperature()
	}

	if len(payload.Observations.Data) == 0 {
		o.logger.Warnw("no observation data available")
		return o.cachedTemperature()
	}

	latest := payload.Observations.Data[0]
	if latest.AirTemp == nil {
		o.logger.Warnw("observation payload missing air_temp")
		return o.cachedTemperature()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	temp := *latest.AirTemp
	o.lastTemperature = &temp
	o.lastUpdate = o.now()
	if latest.RelHum != nil {
		hum := *latest.RelHum
		o.lastHumidity = &hum
	}
	o.history.push(Sample{Time: o.lastUpdate, Temperature: o.lastTemperature, Humidity: o.lastHumidity})

	if o.lastHumidity != nil {
		o.logger.Infow("fetched observations", "temperature_c", temp, "humidity_pct", *o.lastHumidity)
	} else {
		o.logger.Infow("fetched observations", "temperature_c", temp)
	}

	return &temp
}

func (o *Observations) cachedTemperature() *float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastTemperature != nil {
		t := *o.lastTemperature
		o.logger.Infof("using cached temperature: %.1f°C", t)
		return &t
	}
	return nil
}

// LastTemperature returns the most recently observed temperature, if any.
func (o *Observations) LastTemperature() *float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyFloat(o.lastTemperature)
}

// LastHumidity returns the most recently observed humidity, if any.
func (o *Observations) LastHumidity() *float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyFloat(o.lastHumidity)
}

// LastUpdate returns the time of the last successful fetch, or zero.
func (o *Observations) LastUpdate() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastUpdate
}

// TemperatureAt estimates the temperature at a time of day. With two or
// more history samples the estimate combines the fitted hourly trend with a
// fixed diurnal offset for the target hour; otherwise the offset is applied
// to the last observation. Results are clamped to [0, 50] °C.
func (o *Observations) TemperatureAt(target timeutil.TimeOfDay) *float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lastTemperature == nil {
		return nil
	}

	offset := diurnalTempOffset(target.Hour())
	estimate := *o.lastTemperature + offset

	if slope, ok := o.temperatureSlope(); ok {
		hoursDiff := float64(target.Hour() - o.now().Hour())
		estimate = *o.lastTemperature + slope*hoursDiff + offset
	}

	estimate = clamp(estimate, 0, 50)
	return &estimate
}

// HumidityAt estimates relative humidity at a time of day. Humidity runs
// roughly inverse to temperature over the day. Clamped to [0, 100] %.
func (o *Observations) HumidityAt(target timeutil.TimeOfDay) *float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lastHumidity == nil {
		return nil
	}

	estimate := clamp(*o.lastHumidity+diurnalHumidityOffset(target.Hour()), 0, 100)
	return &estimate
}

// temperatureSlope fits a least-squares line through the history samples and
// returns the °C-per-hour slope. ok is false with fewer than two samples.
// Caller holds the mutex.
func (o *Observations) temperatureSlope() (float64, bool) {
	samples := o.history.samples()
	var xs, ys []float64
	for _, s := range samples {
		if s.Temperature == nil {
			continue
		}
		xs = append(xs, s.Time.Sub(samples[0].Time).Hours())
		ys = append(ys, *s.Temperature)
	}
	if len(ys) < 2 {
		return 0, false
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, true
}

// Trend classifies the temperature change over the trailing window.
// A swing of more than 1 °C between the oldest and newest sample inside the
// window is rising or falling; anything less is stable.
func (o *Observations) Trend(windowHours int) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	cutoff := o.now().Add(-time.Duration(windowHours) * time.Hour)
	var inWindow []float64
	for _, s := range o.history.samples() {
		if s.Temperature != nil && !s.Time.Before(cutoff) {
			inWindow = append(inWindow, *s.Temperature)
		}
	}
	if len(inWindow) < 2 {
		return "stable"
	}

	change := inWindow[len(inWindow)-1] - inWindow[0]
	switch {
	case change > 1.0:
		return "rising"
	case change < -1.0:
		return "falling"
	default:
		return "stable"
	}
}

// recordSample appends directly to the history. Test hook.
func (o *Observations) recordSample(s Sample) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history.push(s)
	o.lastTemperature = copyFloat(s.Temperature)
	if s.Humidity != nil {
		o.lastHumidity = copyFloat(s.Humidity)
	}
	o.lastUpdate = s.Time
}

func diurnalTempOffset(hour int) float64 {
	switch {
	case hour >= 6 && hour <= 10:
		return -2 // morning cool
	case hour > 10 && hour <= 14:
		return 2
	case hour > 14 && hour <= 18:
		return 3 // afternoon peak
	case hour > 18 && hour <= 22:
		return 1
	default:
		return -1 // night
	}
}

func diurnalHumidityOffset(hour int) float64 {
	switch {
	case hour >= 6 && hour <= 10:
		return 5
	case hour > 10 && hour <= 14:
		return -5
	case hour > 14 && hour <= 18:
		return -10
	case hour > 18 && hour <= 22:
		return 3
	default:
		return 8
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
