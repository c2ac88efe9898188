package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Environment modes
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Build info - set at build time via ldflags:
// go build -ldflags "-X github.com/scenemcp/scenebridge/common/config.Version=v1.0.0"
var (
	Version   = "untracked"
	CommitSHA = ""
	BuildTime = ""
)

// Settings holds the tunable bridge parameters shared by the host and the
// caller side. Zero values are filled in by Defaults.
type Settings struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// ConnectTimeout bounds the caller's dial attempt.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// ReceiveTimeout applies to every caller-side read while waiting for a
	// response. Rendering can take a while, so this is generous.
	ReceiveTimeout time.Duration `yaml:"receive_timeout"`

	// IdleReadTimeout bounds how long the host waits for the next command
	// on an established connection. 0 means wait forever (the original
	// behavior; not recommended).
	IdleReadTimeout time.Duration `yaml:"idle_read_timeout"`
}

func Defaults() Settings {
	return Settings{
		Host:            "localhost",
		Port:            9877,
		ConnectTimeout:  5 * time.Second,
		ReceiveTimeout:  30 * time.Second,
		IdleReadTimeout: 10 * time.Minute,
	}
}

// Load reads settings from a YAML file, overlaying them on the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return s, fmt.Errorf("invalid port %d in %s", s.Port, path)
	}
	return s, nil
}

// Addr renders the host:port pair for net.Dial / net.Listen.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
