package handlers

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/common/config"
	"github.com/scenemcp/scenebridge/scene"
)

var startTime = time.Now()

// SystemHandlers exposes host process diagnostics: useful when the caller
// wants to know whether a slow render is the host working or the host gone.
func SystemHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"get_host_status": func(doc *scene.Document, params map[string]any) (any, error) {
			status := map[string]any{
				"pid":            os.Getpid(),
				"version":        config.Version,
				"binary_sha256":  config.SelfSHA256(),
				"uptime_seconds": int(time.Since(startTime).Seconds()),
				"document":       doc.Name(),
				"objects":        doc.ObjectCount(),
			}
			if up, err := host.Uptime(); err == nil {
				status["host_uptime_seconds"] = up
			}
			if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
				if mem, err := p.MemoryInfo(); err == nil && mem != nil {
					status["rss_bytes"] = mem.RSS
				}
				if cpu, err := p.CPUPercent(); err == nil {
					status["cpu_percent"] = cpu
				}
			}
			return status, nil
		},
	}
}
