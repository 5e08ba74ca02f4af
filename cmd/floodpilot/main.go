package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tmcfarlane/floodpilot/internal/app"
	"github.com/tmcfarlane/floodpilot/internal/log"
	"github.com/tmcfarlane/floodpilot/pkg/config"
)

const version = "1.2-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config/config.json", "Path to configuration file (JSON or YAML)")
	web := flag.Bool("web", false, "Enable the web control surface regardless of the config setting")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("floodpilot %s\n", version)
		os.Exit(0)
	}

	filename, _ := filepath.Abs(*cfgFile)
	cfgData, err := config.NewProvider(filename).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := log.InitWithFile(cfgData.Logging.File, cfgData.Logging.Level, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	application := app.New(cfgData, *web, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		if errors.Is(err, app.ErrInterrupted) {
			os.Exit(130)
		}
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}
