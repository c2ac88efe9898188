package bridge

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/scenemcp/scenebridge/common/ipc"
)

// handleConn turns the raw byte stream of one connection into discrete
// commands and writes back one response per command, in order. Commands on
// a single connection execute strictly sequentially; a long render blocks
// the next command on that connection by design.
//
// Termination paths, all normal: peer EOF, send failure, idle timeout, and
// buffer overflow. A failed command never terminates the connection.
func (s *Server) handleConn(conn net.Conn) {
	id := uuid.NewString()
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.DebugKV("conn close", "conn_id", id, "error", err)
		}
		logger.DebugKV("connection handler stopped", "conn_id", id)
	}()

	buf := make([]byte, 0, ipc.ReadChunkSize)
	chunk := make([]byte, ipc.ReadChunkSize)

	for {
		if s.settings.IdleReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.settings.IdleReadTimeout))
		}
		n, err := conn.Read(chunk)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				logger.Infof("client disconnected: %s", conn.RemoteAddr())
			case isTimeout(err):
				logger.WarnKV("closing idle connection", "conn_id", id, "timeout", s.settings.IdleReadTimeout)
			default:
				logger.WarnKV("read error", "conn_id", id, "error", err)
			}
			return
		}
		buf = append(buf, chunk[:n]...)

		// Framing: the whole accumulated buffer either parses as exactly
		// one command or we keep reading. Incomplete and malformed input
		// are indistinguishable here, so a size cap bounds the wait.
		cmd, ok := ipc.DecodeCommand(buf)
		if !ok {
			if len(buf) > ipc.MaxCommandBytes {
				logger.WarnKV("command buffer overflow", "conn_id", id, "bytes", len(buf))
				s.writeResponse(conn, id, ipc.Failure(ipc.ErrCommandTooLarge.Error()))
				return
			}
			continue
		}
		buf = buf[:0]

		logger.DebugKV("command received", "conn_id", id, "command", cmd.Type)
		resp := s.dispatcher.Dispatch(s.resolve(), cmd)

		if !s.writeResponse(conn, id, resp) {
			return
		}
		logger.DebugKV("response sent", "conn_id", id, "command", cmd.Type, "status", resp.Status)
	}
}

// writeResponse encodes and fully writes one response. A send failure means
// the peer is gone; the caller closes the connection.
func (s *Server) writeResponse(conn net.Conn, id string, resp *ipc.Response) bool {
	data, err := ipc.EncodeResponse(resp)
	if err != nil {
		logger.ErrorKV("failed to encode response", "conn_id", id, "error", err)
		return false
	}
	// Clear any read deadline side effects; writes get their own bound.
	_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	if _, err := conn.Write(data); err != nil {
		logger.WarnKV("failed to send response - client disconnected", "conn_id", id, "error", err)
		return false
	}
	_ = conn.SetWriteDeadline(time.Time{})
	return true
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
