// Package bridge implements the host side of the command bridge: a TCP
// listener, one connection handler per accepted caller, and the dispatcher
// that routes decoded commands to registered handlers.
package bridge

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/scenemcp/scenebridge/common/ipc"
	"github.com/scenemcp/scenebridge/scene"
)

// HandlerFunc executes one command against the session context. A returned
// error becomes an error response; handlers that want to report a soft,
// operation-level failure return a value like {"error": "..."} instead.
type HandlerFunc func(doc *scene.Document, params map[string]any) (any, error)

// Dispatcher maps command names to handlers. Registration happens at
// startup; dispatch is concurrent-safe.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Register adds a handler. Panics on an empty name or nil handler; both are
// programming errors, not runtime conditions.
func (d *Dispatcher) Register(name string, handler HandlerFunc) {
	if name == "" {
		panic("command name cannot be empty")
	}
	if handler == nil {
		panic("handler cannot be nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = handler
}

// Names lists the registered command names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch executes a command and normalizes every outcome - unknown name,
// handler error, handler panic, unserializable result - into a Response.
// The host never crashes and the connection never dies because one command
// failed.
func (d *Dispatcher) Dispatch(doc *scene.Document, cmd *ipc.Command) *ipc.Response {
	d.mu.RLock()
	handler, ok := d.handlers[cmd.Type]
	d.mu.RUnlock()
	if !ok {
		logger.Warnf("unknown command type: %s", cmd.Type)
		return ipc.Failure(fmt.Sprintf("Unknown command type: %s", cmd.Type))
	}

	result, err := d.invoke(handler, doc, cmd)
	if err != nil {
		logger.ErrorKV("handler error", "command", cmd.Type, "error", err)
		return ipc.Failure(err.Error())
	}

	resp, err := ipc.Success(result)
	if err != nil {
		logger.ErrorKV("failed to marshal handler output", "command", cmd.Type, "error", err)
		return ipc.Failure(fmt.Sprintf("marshal error: %v", err))
	}
	return resp
}

func (d *Dispatcher) invoke(handler HandlerFunc, doc *scene.Document, cmd *ipc.Command) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV("handler panic", "command", cmd.Type, "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	params := cmd.Params
	if params == nil {
		params = map[string]any{}
	}
	return handler(doc, params)
}
