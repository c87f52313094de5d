package protocol

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"studentdesk/internal/envelope"
	"studentdesk/internal/logging"
)

// Server owns the TCP listener and spawns one goroutine per accepted
// connection.
type Server struct {
	addr        string
	codec       *envelope.Codec
	router      *Router
	logger      logging.Logger
	idleTimeout time.Duration
}

func NewServer(addr string, codec *envelope.Codec, router *Router, idleTimeout time.Duration, l logging.Logger) *Server {
	return &Server{
		addr:        addr,
		codec:       codec,
		router:      router,
		logger:      l.With("module", "server"),
		idleTimeout: idleTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
// It returns once the listener is closed and every connection goroutine has
// finished.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	var wg sync.WaitGroup
	for {
		nc, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				break
			}
			s.logger.Warn(ctx, "accept failed", "error", err.Error())
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &conn{
				nc:          nc,
				codec:       s.codec,
				router:      s.router,
				logger:      s.logger,
				idleTimeout: s.idleTimeout,
			}
			c.serve(ctx)
		}()
	}

	wg.Wait()
	s.logger.Info(ctx, "server stopped")
	return nil
}
