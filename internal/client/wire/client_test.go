package wire

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentdesk/internal/envelope"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

// startTestServer runs a one-connection server that answers every line with
// the canned response. The probe literal is answered too.
func startTestServer(t *testing.T, respond func(line string) any) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	codec, err := envelope.New(testKey)
	require.NoError(t, err)

	go func() {
		nc, err := listener.Accept()
		if err != nil {
			return
		}
		defer nc.Close()

		reader := bufio.NewReader(nc)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			text, err := codec.Encode(respond(strings.TrimSpace(line)))
			if err != nil {
				return
			}
			if _, err := nc.Write([]byte(text + "\n")); err != nil {
				return
			}
		}
	}()

	return listener.Addr().String()
}

func TestClient_Call(t *testing.T) {
	addr := startTestServer(t, func(line string) any {
		resp := &Response{Status: "success", Message: "Available commands"}

		// The server must be able to read what the client sent.
		codec, _ := envelope.New(testKey)
		req := &Request{}
		if err := codec.Decode(line, req); err != nil || req.Command != "HELP" {
			resp = &Response{Status: "error", Message: "bad request"}
		}
		return resp
	})

	client, err := Dial(addr, testKey, time.Second)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Call(context.Background(), "HELP", nil)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "Available commands", resp.Message)
}

func TestClient_Probe(t *testing.T) {
	addr := startTestServer(t, func(line string) any {
		if line == envelope.ProbeLiteral {
			return &Response{Status: "success", Message: "Server is running!"}
		}
		return &Response{Status: "error", Message: "unexpected"}
	})

	client, err := Dial(addr, testKey, time.Second)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Server is running!", resp.Message)
}

func TestClient_CallAfterClose(t *testing.T) {
	addr := startTestServer(t, func(string) any {
		return &Response{Status: "success"}
	})

	client, err := Dial(addr, testKey, time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = client.Call(context.Background(), "HELP", nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDial_BadKey(t *testing.T) {
	_, err := Dial("127.0.0.1:1", []byte("short"), time.Second)
	assert.ErrorIs(t, err, envelope.ErrKeySize)
}
