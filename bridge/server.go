package bridge

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/scenemcp/scenebridge/common/config"
	"github.com/scenemcp/scenebridge/scene"
)

const (
	acceptPollInterval = 1 * time.Second
	stopJoinWait       = 3 * time.Second
)

// Server owns the bridge lifecycle inside the host process: it binds the
// listening socket, runs the accept loop, and spawns one connection handler
// goroutine per caller. Handler goroutines are not joined on Stop; shutdown
// does not guarantee in-flight commands finish.
type Server struct {
	settings   config.Settings
	dispatcher *Dispatcher

	// resolve returns the current active document; it is called at the
	// start of every command so a document swap in the host is picked up
	// immediately.
	resolve func() *scene.Document

	mu       sync.Mutex
	ln       net.Listener
	quit     chan struct{}
	acceptWG sync.WaitGroup
	running  bool
}

func NewServer(settings config.Settings, dispatcher *Dispatcher, resolve func() *scene.Document) *Server {
	return &Server{
		settings:   settings,
		dispatcher: dispatcher,
		resolve:    resolve,
	}
}

// Start binds the socket and launches the accept loop. Calling Start on a
// running server is a no-op. A bind failure (typically port already in use)
// is the only fatal bridge condition; it is returned to the operator and the
// bridge stays down.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		logger.Infof("bridge server already running on %s", s.settings.Addr())
		return nil
	}

	ln, err := net.Listen("tcp", s.settings.Addr())
	if err != nil {
		return fmt.Errorf("failed to start bridge server on %s: %w", s.settings.Addr(), err)
	}
	s.ln = ln
	s.quit = make(chan struct{})
	s.running = true

	s.acceptWG.Add(1)
	go s.acceptLoop(ln, s.quit)

	logger.Infof("bridge server started on %s", ln.Addr())
	return nil
}

// Addr returns the bound listener address, or nil while stopped. Useful
// when starting with port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop flips the running flag, closes the listening socket to unblock the
// accept loop, and waits a bounded time for it to exit. Idempotent.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.quit)
	ln := s.ln
	s.ln = nil
	s.mu.Unlock()

	if err := ln.Close(); err != nil {
		logger.DebugKV("listener close", "error", err)
	}

	done := make(chan struct{})
	go func() {
		s.acceptWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopJoinWait):
		logger.Warnf("accept loop did not exit within %v", stopJoinWait)
	}
	logger.Infof("bridge server stopped")
}

// acceptLoop polls with a short deadline so the quit flag is observed
// promptly instead of blocking forever in Accept.
func (s *Server) acceptLoop(ln net.Listener, quit chan struct{}) {
	defer s.acceptWG.Done()

	for {
		select {
		case <-quit:
			return
		default:
		}

		if tl, ok := ln.(*net.TCPListener); ok {
			_ = tl.SetDeadline(time.Now().Add(acceptPollInterval))
		}
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-quit:
			default:
				logger.Warnf("accept error: %v", err)
			}
			return
		}

		logger.Infof("client connected: %s", conn.RemoteAddr())
		// Handlers are fire-and-forget: at most one external caller is
		// expected, but additional connections each get their own handler
		// and the scene document serializes mutation internally.
		go s.handleConn(conn)
	}
}
