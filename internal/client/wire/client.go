// Package wire implements the client side of the TCP protocol: a
// newline-framed, envelope-encrypted request/response exchange over a single
// long-lived connection.
package wire

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"studentdesk/internal/envelope"
)

// Request is one command sent to the server.
type Request struct {
	Command string         `json:"command"`
	Params  map[string]any `json:"params,omitempty"`
}

// Response is the server's standardized reply.
type Response struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// IsSuccess reports whether the server accepted the request.
func (r *Response) IsSuccess() bool {
	return r.Status == "success"
}

var ErrClosed = errors.New("wire: connection closed")

// Client holds one connection to the server. Not safe for concurrent use;
// the REPL drives it from a single goroutine.
type Client struct {
	nc     net.Conn
	reader *bufio.Reader
	codec  *envelope.Codec
}

// Dial connects to addr and returns a ready Client.
func Dial(addr string, key []byte, timeout time.Duration) (*Client, error) {
	codec, err := envelope.New(key)
	if err != nil {
		return nil, err
	}

	nc, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("wire: dial %s: %w", addr, err)
	}

	return &Client{nc: nc, reader: bufio.NewReader(nc), codec: codec}, nil
}

func (c *Client) Close() error {
	if c.nc == nil {
		return nil
	}
	err := c.nc.Close()
	c.nc = nil
	return err
}

// Call sends one command and waits for the reply.
func (c *Client) Call(ctx context.Context, command string, params map[string]any) (*Response, error) {
	text, err := c.codec.Encode(&Request{Command: command, Params: params})
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return c.roundTrip(ctx, text)
}

// Probe sends the plaintext liveness probe and reports whether the server
// answered.
func (c *Client) Probe(ctx context.Context) (*Response, error) {
	return c.roundTrip(ctx, envelope.ProbeLiteral)
}

func (c *Client) roundTrip(ctx context.Context, text string) (*Response, error) {
	if c.nc == nil {
		return nil, ErrClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.nc.SetDeadline(deadline)
		defer c.nc.SetDeadline(time.Time{})
	}

	if _, err := c.nc.Write([]byte(text + "\n")); err != nil {
		return nil, fmt.Errorf("wire: write: %w", err)
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("wire: read: %w", err)
	}

	resp := &Response{}
	if err := c.codec.Decode(strings.TrimSpace(line), resp); err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	return resp, nil
}
