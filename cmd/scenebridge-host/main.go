package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/pflag"

	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/bridge/handlers"
	"github.com/scenemcp/scenebridge/common/config"
	"github.com/scenemcp/scenebridge/scene"
)

func main() {
	var (
		host        string
		port        int
		configPath  string
		sceneName   string
		envMode     string
		verbose     bool
		showVersion bool
	)

	pflag.StringVar(&host, "host", "", "bind host (overrides config)")
	pflag.IntVar(&port, "port", 0, "bind port (overrides config)")
	pflag.StringVar(&configPath, "config", "", "path to YAML config file")
	pflag.StringVar(&sceneName, "scene", "Untitled", "name of the initial scene document")
	pflag.StringVar(&envMode, "env", config.EnvProduction, "environment (development|production)")
	pflag.BoolVar(&verbose, "verbose", false, "enable verbose logs")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion || (len(pflag.Args()) > 0 && pflag.Args()[0] == "version") {
		fmt.Printf("scenebridge-host %s\n", config.Version)
		return
	}

	envMode = strings.ToLower(envMode)

	var levels []logger.Level
	if verbose || envMode == config.EnvDevelopment {
		levels = logger.AllLevels() // Includes DEBUG
	} else {
		levels = []logger.Level{logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
	}
	logger.Init(logger.Config{
		Levels: levels,
	})

	settings := config.Defaults()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			logger.Errorf("failed to load config %s: %v", configPath, err)
			os.Exit(1)
		}
	}
	if host != "" {
		settings.Host = host
	}
	if pflag.Lookup("port").Changed {
		settings.Port = port
	}

	doc := scene.NewDocument(sceneName)
	dispatcher := bridge.NewDispatcher()
	handlers.RegisterAll(dispatcher)

	srv := bridge.NewServer(settings, dispatcher, func() *scene.Document { return doc })
	if err := srv.Start(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.InfoKV("host bridge started", "addr", settings.Addr(), "scene", sceneName, "commands", len(dispatcher.Names()))

	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	logger.InfoKV("shutting down", "signal", s.String())

	srv.Stop()
	logger.InfoKV("host bridge stopped")
}
