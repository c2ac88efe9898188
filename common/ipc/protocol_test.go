package ipc

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCommandRoundTrip(t *testing.T) {
	cmd := &Command{
		Type: "create_object",
		Params: map[string]any{
			"type":     "cube",
			"name":     "Box",
			"position": []any{1.0, 2.0, 3.0},
		},
	}
	data, err := EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, ok := DecodeCommand(data)
	if !ok {
		t.Fatalf("decode failed on complete document")
	}
	if got.Type != cmd.Type {
		t.Errorf("type = %q, want %q", got.Type, cmd.Type)
	}
	if got.Params["name"] != "Box" {
		t.Errorf("params[name] = %v, want Box", got.Params["name"])
	}
}

func TestDecodeIncompletePrefix(t *testing.T) {
	data, err := EncodeCommand(&Command{Type: "ping", Params: map[string]any{}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Every strict prefix must fail to decode; the framing relies on it.
	for i := 1; i < len(data); i++ {
		if _, ok := DecodeCommand(data[:i]); ok {
			t.Fatalf("prefix of %d/%d bytes decoded as complete", i, len(data))
		}
	}
	if _, ok := DecodeCommand(data); !ok {
		t.Fatalf("full document failed to decode")
	}
}

func TestDecodeResponseTrailingJunk(t *testing.T) {
	resp := Failure("boom")
	data, err := EncodeResponse(resp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := DecodeResponse(append(data, []byte("garbage")...)); ok {
		t.Fatalf("document with trailing junk decoded as complete")
	}
}

func TestSuccessMarshalsOnce(t *testing.T) {
	resp, err := Success(map[string]any{"count": 3})
	if err != nil {
		t.Fatalf("Success: %v", err)
	}
	if resp.Status != StatusSuccess {
		t.Errorf("status = %q", resp.Status)
	}
	var result map[string]any
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if result["count"] != float64(3) {
		t.Errorf("count = %v, want 3", result["count"])
	}
}

func TestSuccessNilResult(t *testing.T) {
	resp, err := Success(nil)
	if err != nil {
		t.Fatalf("Success(nil): %v", err)
	}
	if resp.Result != nil {
		t.Errorf("nil result marshaled to %q", resp.Result)
	}
	data, err := EncodeResponse(resp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if bytes.Contains(data, []byte("result")) {
		t.Errorf("empty result should be omitted from wire form, got %s", data)
	}
}

func TestFailure(t *testing.T) {
	resp := Failure("Unknown command type: bogus")
	if !resp.IsError() {
		t.Fatalf("Failure response not flagged as error")
	}
	if resp.Message != "Unknown command type: bogus" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestPingResultWireForm(t *testing.T) {
	resp, err := Success(PingResult)
	if err != nil {
		t.Fatalf("Success: %v", err)
	}
	data, err := EncodeResponse(resp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"status":"success","result":{"status":"alive"}}`
	if string(data) != want {
		t.Errorf("wire form = %s, want %s", data, want)
	}
}
