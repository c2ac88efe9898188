package bridge

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/scenemcp/scenebridge/common/ipc"
	"github.com/scenemcp/scenebridge/scene"
)

func TestDispatchUnknownCommand(t *testing.T) {
	d := NewDispatcher()
	doc := scene.NewDocument("test")

	resp := d.Dispatch(doc, &ipc.Command{Type: "does_not_exist"})
	if !resp.IsError() {
		t.Fatalf("unknown command did not produce an error response")
	}
	if resp.Message != "Unknown command type: does_not_exist" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestDispatchSuccess(t *testing.T) {
	d := NewDispatcher()
	doc := scene.NewDocument("test")
	d.Register("echo", func(_ *scene.Document, params map[string]any) (any, error) {
		return map[string]any{"got": params["value"]}, nil
	})

	resp := d.Dispatch(doc, &ipc.Command{Type: "echo", Params: map[string]any{"value": "hi"}})
	if resp.IsError() {
		t.Fatalf("dispatch failed: %s", resp.Message)
	}
	var result map[string]any
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("result: %v", err)
	}
	if result["got"] != "hi" {
		t.Errorf("result = %v", result)
	}
}

func TestDispatchNilParams(t *testing.T) {
	d := NewDispatcher()
	doc := scene.NewDocument("test")
	d.Register("check", func(_ *scene.Document, params map[string]any) (any, error) {
		if params == nil {
			return nil, errors.New("params was nil")
		}
		return map[string]any{"ok": true}, nil
	})

	resp := d.Dispatch(doc, &ipc.Command{Type: "check"})
	if resp.IsError() {
		t.Fatalf("handler saw nil params: %s", resp.Message)
	}
}

func TestDispatchHandlerError(t *testing.T) {
	d := NewDispatcher()
	doc := scene.NewDocument("test")
	d.Register("fail", func(_ *scene.Document, _ map[string]any) (any, error) {
		return nil, errors.New("disk on fire")
	})

	resp := d.Dispatch(doc, &ipc.Command{Type: "fail"})
	if !resp.IsError() {
		t.Fatalf("handler error not surfaced")
	}
	if resp.Message != "disk on fire" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestDispatchHandlerPanic(t *testing.T) {
	d := NewDispatcher()
	doc := scene.NewDocument("test")
	d.Register("explode", func(_ *scene.Document, _ map[string]any) (any, error) {
		panic("kaboom")
	})

	resp := d.Dispatch(doc, &ipc.Command{Type: "explode"})
	if !resp.IsError() {
		t.Fatalf("panic not converted to error response")
	}
	if resp.Message != "panic: kaboom" {
		t.Errorf("message = %q", resp.Message)
	}

	// The dispatcher must stay usable after a panic.
	d.Register("ok", func(_ *scene.Document, _ map[string]any) (any, error) {
		return "fine", nil
	})
	if resp := d.Dispatch(doc, &ipc.Command{Type: "ok"}); resp.IsError() {
		t.Fatalf("dispatcher unusable after panic: %s", resp.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	d := NewDispatcher()
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}
	assertPanics("empty name", func() { d.Register("", func(*scene.Document, map[string]any) (any, error) { return nil, nil }) })
	assertPanics("nil handler", func() { d.Register("x", nil) })
}

func TestNamesSorted(t *testing.T) {
	d := NewDispatcher()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		d.Register(name, func(*scene.Document, map[string]any) (any, error) { return nil, nil })
	}
	names := d.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
