package ipc

import (
	"encoding/json"
	"errors"
)

// Command/Response are the on-the-wire schema used over the bridge socket.
// One JSON document per message in each direction, no length prefix: the
// message boundary is "the smallest prefix that parses as a complete
// document" (see framing.go).
type Command struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}

type Response struct {
	Status  string          `json:"status"`            // "success" | "error"
	Result  json.RawMessage `json:"result,omitempty"`  // handler result as raw JSON (avoids double-encoding)
	Message string          `json:"message,omitempty"` // error message when Status == "error"
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PingCommand is the reserved liveness command. Its handler returns
// PingResult with no side effects; the client uses it to validate a
// cached connection before reuse.
const PingCommand = "ping"

// PingResult is the fixed marker the ping handler returns.
var PingResult = map[string]any{"status": "alive"}

// Transport defaults. The port is fixed per bridge family so that several
// host bridges can coexist on one machine without colliding.
const (
	DefaultHost = "localhost"
	DefaultPort = 9877

	// ReadChunkSize is the per-read buffer size on both sides.
	ReadChunkSize = 8192

	// MaxCommandBytes bounds the host-side accumulation buffer. Input that
	// never parses within this budget is rejected instead of waited on
	// forever.
	MaxCommandBytes = 8 << 20
)

var (
	ErrNotConnected       = errors.New("host bridge not reachable")
	ErrReceiveTimeout     = errors.New("timed out waiting for response")
	ErrIncompleteResponse = errors.New("incomplete response received")
	ErrCommandTooLarge    = errors.New("command exceeds maximum size")
)

// Success wraps a handler result as a success response. The result is
// marshaled here, once, so the connection handler can write the envelope
// without re-encoding the payload.
func Success(result any) (*Response, error) {
	resp := &Response{Status: StatusSuccess}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		resp.Result = raw
	}
	return resp, nil
}

// Failure builds an error response with a human-readable message.
func Failure(message string) *Response {
	return &Response{Status: StatusError, Message: message}
}

// IsError reports whether the response carries an error status.
func (r *Response) IsError() bool {
	return r.Status == StatusError
}
