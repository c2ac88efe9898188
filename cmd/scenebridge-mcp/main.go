package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/pflag"

	"github.com/scenemcp/scenebridge/chat"
	"github.com/scenemcp/scenebridge/client"
	"github.com/scenemcp/scenebridge/common/config"
	"github.com/scenemcp/scenebridge/common/ipc"
	"github.com/scenemcp/scenebridge/mcptools"
)

const instructions = `This server controls a 3D scene through a host bridge.
Use get_scene_info to inspect the scene before modifying it. Object and
material names are unique; create operations report a descriptive error
when a name is taken. Screenshot and render tools return PNG images.`

func main() {
	var (
		host        string
		port        int
		configPath  string
		envMode     string
		verbose     bool
		showVersion bool
	)

	pflag.StringVar(&host, "host", "", "host bridge address (overrides config)")
	pflag.IntVar(&port, "port", 0, "host bridge port (overrides config)")
	pflag.StringVar(&configPath, "config", "", "path to YAML config file")
	pflag.StringVar(&envMode, "env", config.EnvProduction, "environment (development|production)")
	pflag.BoolVar(&verbose, "verbose", false, "enable verbose logs")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion || (len(pflag.Args()) > 0 && pflag.Args()[0] == "version") {
		fmt.Printf("scenebridge-mcp %s\n", config.Version)
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

	c := client.New(settings)
	defer c.Close()

	// Probe the host once at startup. A failure is not fatal: the host
	// may come up after us and the client reconnects on demand.
	if _, err := c.SendCommand(ipc.PingCommand, nil); err != nil {
		logger.WarnKV("host bridge not reachable at startup", "addr", settings.Addr(), "error", err)
	} else {
		logger.InfoKV("connected to host bridge", "addr", settings.Addr())
	}

	history := chat.NewManager(chat.DefaultMaxHistory)

	s := server.NewMCPServer("scenebridge", config.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	mcptools.Register(s, c, history)

	logger.InfoKV("mcp server starting on stdio", "version", config.Version)
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("mcp server exited: %v", err)
		os.Exit(1)
	}
}
