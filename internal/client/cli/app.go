// Package cli implements the interactive terminal client: a small REPL over
// the TCP wire protocol with prompts for registration, login, and requests.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"studentdesk/internal/client/wire"
)

// caller is the wire surface the App needs. *wire.Client satisfies it; tests
// provide a stub.
type caller interface {
	Call(ctx context.Context, command string, params map[string]any) (*wire.Response, error)
	Probe(ctx context.Context) (*wire.Response, error)
}

// App holds the per-session client state: the connection and, after a
// successful login, the identity the server handed back.
type App struct {
	client caller
	reader *bufio.Reader
	out    io.Writer

	username     string
	sessionToken string
}

func NewApp(client caller, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.username != ""
}

// report prints the server's answer in a uniform way.
func (a *App) report(resp *wire.Response) {
	if resp.IsSuccess() {
		fmt.Fprintln(a.out, resp.Message)
	} else {
		fmt.Fprintln(a.out, "Error:", resp.Message)
	}
}

// Ping checks server liveness with the plaintext probe.
func (a *App) Ping(ctx context.Context) error {
	resp, err := a.client.Probe(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Server unreachable:", err)
		return err
	}
	a.report(resp)
	return nil
}

// Register prompts for account details and optionally a student profile, then
// sends REGISTER.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	params := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	}

	studentID, err := GetSimpleText(a.reader, "Enter student id (leave empty to skip profile)", a.out)
	if err != nil {
		return err
	}
	if studentID != "" {
		fullName, err := GetSimpleText(a.reader, "Enter full name", a.out)
		if err != nil {
			return err
		}
		department, err := GetSimpleText(a.reader, "Enter department", a.out)
		if err != nil {
			return err
		}
		params["student_id"] = studentID
		params["full_name"] = fullName
		params["department"] = department
	}

	resp, err := a.client.Call(ctx, "REGISTER", params)
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}
	a.report(resp)
	return nil
}

// Login prompts for credentials, sends LOGIN, and on success remembers the
// username and session token for the rest of the REPL session.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Call(ctx, "LOGIN", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}

	a.report(resp)
	if resp.IsSuccess() {
		a.username = username
		if token, ok := resp.Data["session_token"].(string); ok {
			a.sessionToken = token
		}
	}
	return nil
}

// GetData fetches and prints the logged-in student's academic record.
func (a *App) GetData(ctx context.Context) error {
	resp, err := a.client.Call(ctx, "GET_DATA", nil)
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}

	if !resp.IsSuccess() {
		a.report(resp)
		return nil
	}

	keys := make([]string, 0, len(resp.Data))
	for k := range resp.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s: %v\n", k, resp.Data[k])
	}
	return nil
}

// SubmitRequest prompts for a request/complaint and sends SUBMIT_REQUEST.
func (a *App) SubmitRequest(ctx context.Context) error {
	requestType, err := GetSimpleText(a.reader, "Enter request type (complaint, leave, certificate, other)", a.out)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Call(ctx, "SUBMIT_REQUEST", map[string]any{
		"request_type": requestType,
		"title":        title,
		"description":  description,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}
	a.report(resp)
	return nil
}

// GetRequests fetches and prints the logged-in user's requests, newest first.
func (a *App) GetRequests(ctx context.Context) error {
	resp, err := a.client.Call(ctx, "GET_REQUESTS", nil)
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}

	if !resp.IsSuccess() {
		a.report(resp)
		return nil
	}

	items, _ := resp.Data["requests"].([]any)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No requests found")
		return nil
	}

	for i, item := range items {
		req, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintln(a.out, strconv.Itoa(i+1)+". ["+str(req["status"])+"] "+str(req["type"])+": "+str(req["title"])+" ("+str(req["created_at"])+")")
	}
	return nil
}

// Exit tells the server to close the session and the connection.
func (a *App) Exit(ctx context.Context) error {
	var params map[string]any
	if a.sessionToken != "" {
		params = map[string]any{"session_token": a.sessionToken}
	}

	resp, err := a.client.Call(ctx, "EXIT", params)
	if err != nil {
		// The server may already have gone away; exiting is still fine.
		return nil
	}
	a.report(resp)
	a.username = ""
	a.sessionToken = ""
	return nil
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
