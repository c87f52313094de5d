package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"studentdesk/internal/envelope"
	"studentdesk/internal/logging"
	"studentdesk/internal/server/services"
)

// conn runs the command loop for one accepted socket.
type conn struct {
	nc          net.Conn
	codec       *envelope.Codec
	router      *Router
	logger      logging.Logger
	idleTimeout time.Duration
}

// serve reads newline-delimited messages until the client disconnects, the
// context is cancelled, or a handler requests the connection to close. One
// malformed message never kills the connection; the client gets an error
// reply and the loop continues.
func (c *conn) serve(ctx context.Context) {
	defer c.nc.Close()

	st := &ConnState{Addr: c.nc.RemoteAddr().String()}
	ctx = services.ContextWithClientAddr(ctx, st.Addr)

	c.logger.Info(ctx, "client connected", "addr", st.Addr)
	defer c.logger.Info(ctx, "client disconnected", "addr", st.Addr)

	reader := bufio.NewReader(c.nc)
	for {
		if ctx.Err() != nil {
			return
		}
		if c.idleTimeout > 0 {
			_ = c.nc.SetReadDeadline(time.Now().Add(c.idleTimeout))
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			// A final message without the trailing newline is still
			// processed before the connection goes away.
			if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
				c.handleLine(ctx, st, line)
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if quit := c.handleLine(ctx, st, line); quit {
			return
		}
	}
}

func (c *conn) handleLine(ctx context.Context, st *ConnState, line string) (quit bool) {
	if line == envelope.ProbeLiteral {
		c.write(ctx, SuccessResponse("Server is running!", nil))
		return false
	}

	var req Request
	if err := c.codec.Decode(line, &req); err != nil {
		c.logger.Warn(ctx, "undecodable message", "addr", st.Addr, "error", err.Error())
		c.write(ctx, ErrorResponse("Invalid request format"))
		return false
	}

	resp, quit := c.dispatch(ctx, st, &req)
	c.write(ctx, resp)
	return quit
}

// dispatch runs the router with a panic guard so one faulty handler cannot
// take the whole server process down.
func (c *conn) dispatch(ctx context.Context, st *ConnState, req *Request) (resp *Response, quit bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "handler panic", "addr", st.Addr, "command", req.Command, "panic", r)
			resp, quit = ErrorResponse("Server error"), false
		}
	}()
	return c.router.Dispatch(ctx, st, req)
}

// write encrypts and sends one response, newline-terminated. If encryption
// itself fails the response is sent as plain JSON so the client at least
// learns something went wrong.
func (c *conn) write(ctx context.Context, resp *Response) {
	text, err := c.codec.Encode(resp)
	if err != nil {
		c.logger.Error(ctx, "response encoding failed", "error", err.Error())
		raw, merr := json.Marshal(ErrorResponse("Server error"))
		if merr != nil {
			return
		}
		text = string(raw)
	}
	if _, err := c.nc.Write([]byte(text + "\n")); err != nil {
		c.logger.Warn(ctx, "response write failed", "error", err.Error())
	}
}
