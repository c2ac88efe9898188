// Package client is the caller-side connection manager: it owns one
// persistent socket to the host bridge, lazily (re)connects, validates a
// cached connection with the liveness command before reuse, and turns every
// transport fault into a descriptive error plus a fresh start for the next
// call.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/scenemcp/scenebridge/common/config"
	"github.com/scenemcp/scenebridge/common/ipc"
)

// Client sends commands to the host bridge. Safe for concurrent use; calls
// are serialized so the wire carries at most one command at a time, matching
// the bridge's strict request/response contract.
type Client struct {
	settings config.Settings

	mu   sync.Mutex
	conn net.Conn
}

func New(settings config.Settings) *Client {
	return &Client{settings: settings}
}

// SendCommand sends one command and returns the raw result payload of a
// success response. A decoded error response is returned as an error
// carrying the host's message. Any transport failure invalidates the held
// connection so the next call reconnects from scratch; the call itself is
// never retried internally.
func (c *Client) SendCommand(name string, params map[string]any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.acquireLocked()
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTripLocked(conn, &ipc.Command{Type: name, Params: params})
	if err != nil {
		c.invalidateLocked()
		return nil, fmt.Errorf("communication error with host bridge (%s): %w", name, err)
	}
	if resp.IsError() {
		// The command failed; the connection is still fine.
		return nil, errors.New(resp.Message)
	}
	return resp.Result, nil
}

// Close discards the held connection. The client remains usable; the next
// call reconnects.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

// acquireLocked returns a validated connection, reusing the cached one when
// a ping succeeds and dialing fresh otherwise.
func (c *Client) acquireLocked() (net.Conn, error) {
	if c.conn != nil {
		if _, err := c.roundTripLocked(c.conn, &ipc.Command{Type: ipc.PingCommand, Params: map[string]any{}}); err == nil {
			return c.conn, nil
		}
		logger.Warnf("cached bridge connection is no longer valid, reconnecting")
		c.invalidateLocked()
	}

	conn, err := net.DialTimeout("tcp", c.settings.Addr(), c.settings.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect to %s (is the host bridge running?): %v",
			ipc.ErrNotConnected, c.settings.Addr(), err)
	}
	logger.Infof("connected to host bridge at %s", c.settings.Addr())
	c.conn = conn
	return conn, nil
}

func (c *Client) invalidateLocked() {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			logger.DebugKV("bridge conn close", "error", err)
		}
		c.conn = nil
	}
}

// roundTripLocked writes one command and reads its response with the
// chunked-receive algorithm: accumulate reads until the buffer parses as a
// complete document. On a read timeout with partial data, one final decode
// decides between success and an incomplete-response error.
func (c *Client) roundTripLocked(conn net.Conn, cmd *ipc.Command) (*ipc.Response, error) {
	data, err := ipc.EncodeCommand(cmd)
	if err != nil {
		return nil, fmt.Errorf("encoding command: %w", err)
	}
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("sending command: %w", err)
	}

	buf := make([]byte, 0, ipc.ReadChunkSize)
	chunk := make([]byte, ipc.ReadChunkSize)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(c.settings.ReceiveTimeout))
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if resp, ok := ipc.DecodeResponse(buf); ok {
				_ = conn.SetReadDeadline(time.Time{})
				return resp, nil
			}
		}
		if err == nil {
			continue
		}

		if isTimeout(err) {
			if len(buf) > 0 {
				// Whatever arrived might still be a whole document.
				if resp, ok := ipc.DecodeResponse(buf); ok {
					return resp, nil
				}
				return nil, fmt.Errorf("%w (%d bytes buffered)", ipc.ErrIncompleteResponse, len(buf))
			}
			// The command may still be executing host-side; its result is
			// unrecoverable either way.
			return nil, ipc.ErrReceiveTimeout
		}
		if errors.Is(err, io.EOF) {
			if len(buf) > 0 {
				if resp, ok := ipc.DecodeResponse(buf); ok {
					return resp, nil
				}
				return nil, fmt.Errorf("%w: connection closed mid-response", ipc.ErrIncompleteResponse)
			}
			return nil, fmt.Errorf("connection closed before receiving any data")
		}
		return nil, fmt.Errorf("receiving response: %w", err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
