package handlers

import (
	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/common/ipc"
	"github.com/scenemcp/scenebridge/scene"
)

// RegisterAll wires the full operation catalog into the dispatcher,
// including the reserved liveness command.
func RegisterAll(d *bridge.Dispatcher) {
	d.Register(ipc.PingCommand, func(doc *scene.Document, params map[string]any) (any, error) {
		return ipc.PingResult, nil
	})

	groups := []map[string]bridge.HandlerFunc{
		SceneHandlers(),
		MaterialHandlers(),
		RenderHandlers(),
		AnimationHandlers(),
		TransferHandlers(),
		ChatHandlers(),
		SystemHandlers(),
	}
	for _, group := range groups {
		for name, handler := range group {
			d.Register(name, handler)
		}
	}
}
