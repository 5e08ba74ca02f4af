// schedule-preview generates an adaptive schedule offline from a
// configuration file and compares it against the configured baseline
// cycles, printing the validation report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmcfarlane/floodpilot/internal/app"
	"github.com/tmcfarlane/floodpilot/internal/log"
	"github.com/tmcfarlane/floodpilot/internal/schedule"
	"github.com/tmcfarlane/floodpilot/internal/scheduler"
	"github.com/tmcfarlane/floodpilot/internal/validation"
	"github.com/tmcfarlane/floodpilot/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config/config.json", "Path to configuration file (JSON or YAML)")
	threshold := flag.Float64("threshold", validation.DefaultDeviationThreshold,
		"Wait deviation ratio above which an event is flagged")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()

	filename, _ := filepath.Abs(*cfgFile)
	cfgData, err := config.NewProvider(filename).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfgData); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfgData.Schedule.Type != "time_based" {
		fmt.Fprintf(os.Stderr, "schedule type %q has no generated schedule to preview\n", cfgData.Schedule.Type)
		os.Exit(1)
	}

	env, err := app.BuildEnvironment(cfgData, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "environment setup failed: %v\n", err)
		os.Exit(1)
	}

	// No device is wired; the embedded scheduler is never started.
	schedCfg := app.SchedulerConfig(cfgData, nil, env, logger)
	schedCfg.Adaptive = true
	adaptive, err := scheduler.NewAdaptive(schedCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	active := adaptive.GeneratedCycles()
	base := baseline(cfgData)
	sunrise, sunset := env.SunriseSunset()

	report := validation.Compare(active, base, sunrise, sunset, *threshold)
	fmt.Print(report.Text())
}

func baseline(cfg *config.Data) []schedule.Cycle {
	var specs []schedule.CycleSpec
	for _, c := range cfg.Schedule.Cycles {
		specs = append(specs, schedule.CycleSpec{
			OnTime:             c.OnTime,
			OffDurationMinutes: c.OffDurationMinutes,
		})
	}
	cycles, _, err := schedule.ParseCycles(specs)
	if err != nil {
		return nil
	}
	return cycles
}
