// Package protocol implements the TCP wire protocol: the listener, the
// per-connection command loop, and the command router with its
// authentication gate.
package protocol

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is one decoded client message. Command is matched
// case-insensitively.
type Request struct {
	Command string         `json:"command"`
	Params  map[string]any `json:"params"`
}

// Response is the standardized reply for every request.
type Response struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// SuccessResponse builds a success reply stamped with the current time.
func SuccessResponse(message string, data map[string]any) *Response {
	r := &Response{
		Status:    StatusSuccess,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if len(data) > 0 {
		r.Data = data
	}
	return r
}

// ErrorResponse builds an error reply stamped with the current time.
func ErrorResponse(message string) *Response {
	return &Response{
		Status:    StatusError,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// stringParam extracts params[key] as a trimmed string. JSON numbers are
// formatted back to text so legacy clients that send numeric ids keep
// working.
func stringParam(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// intParam extracts params[key] as an int, falling back to def.
func intParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// floatParam extracts params[key] as a float64, falling back to def.
func floatParam(params map[string]any, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}
