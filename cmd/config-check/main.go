// config-check loads and validates a configuration file without starting
// anything, printing every failing field path.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmcfarlane/floodpilot/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config/config.json", "Path to configuration file (JSON or YAML)")
	flag.Parse()

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

	fmt.Printf("%s: configuration OK (%d devices, schedule type %s)\n",
		*cfgFile, len(cfgData.Devices.Devices), cfgData.Schedule.Type)
}
