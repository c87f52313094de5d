package protocol

import (
	"context"
	"errors"
	"strings"

	"studentdesk/internal/common"
	"studentdesk/internal/logging"
	"studentdesk/internal/server/models"
	"studentdesk/internal/server/services"
)

// Service surfaces the router needs. The concrete services satisfy these;
// tests provide fakes.
type userService interface {
	Register(ctx context.Context, username, password, email string, profile *services.StudentProfile) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*services.AuthResult, error)
	FindUserIDByUsername(ctx context.Context, username string) (string, error)
}

type sessionService interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
	Invalidate(ctx context.Context, token string) error
}

type studentService interface {
	GetByUserID(ctx context.Context, userID string) (*models.StudentRecord, error)
}

type requestService interface {
	Submit(ctx context.Context, userID, requestType, title, description string) (*models.SupportRequest, error)
	List(ctx context.Context, userID string) ([]*models.SupportRequest, error)
}

// ConnState is the per-connection mutable state. It is owned exclusively by
// the connection's own goroutine and dies with the socket.
type ConnState struct {
	Addr string

	// UserID is set by a successful LOGIN on this connection and acts as
	// authentication evidence for the rest of the connection's lifetime.
	UserID string
}

type handlerFunc func(ctx context.Context, st *ConnState, userID string, params map[string]any) *Response

type command struct {
	requiresAuth bool
	handler      handlerFunc
}

// Router maps command names to handlers and enforces the authentication
// gate before dispatch.
type Router struct {
	users    userService
	sessions sessionService
	students studentService
	requests requestService
	logger   logging.Logger
	commands map[string]command
}

func NewRouter(u userService, se sessionService, st studentService, re requestService, l logging.Logger) *Router {
	r := &Router{
		users:    u,
		sessions: se,
		students: st,
		requests: re,
		logger:   l.With("module", "router"),
	}
	r.commands = map[string]command{
		"REGISTER":       {requiresAuth: false, handler: r.handleRegister},
		"LOGIN":          {requiresAuth: false, handler: r.handleLogin},
		"GET_DATA":       {requiresAuth: true, handler: r.handleGetData},
		"SUBMIT_REQUEST": {requiresAuth: true, handler: r.handleSubmitRequest},
		"GET_REQUESTS":   {requiresAuth: true, handler: r.handleGetRequests},
		"HELP":           {requiresAuth: false, handler: r.handleHelp},
		"EXIT":           {requiresAuth: true, handler: r.handleExit},
	}
	return r
}

// Dispatch routes one decoded request. For gated commands the identity is
// resolved first; the handler never runs without it. quit reports that the
// connection should close once the response has been written.
func (r *Router) Dispatch(ctx context.Context, st *ConnState, req *Request) (resp *Response, quit bool) {
	cmd := strings.ToUpper(strings.TrimSpace(req.Command))

	c, ok := r.commands[cmd]
	if !ok {
		return ErrorResponse("Unknown command: " + cmd), false
	}

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}

	var userID string
	if c.requiresAuth {
		var errResp *Response
		userID, errResp = r.resolveIdentity(ctx, st, params)
		if errResp != nil {
			return errResp, false
		}
	}

	resp = c.handler(ctx, st, userID, params)
	return resp, cmd == "EXIT" && resp.Status == StatusSuccess
}

// resolveIdentity turns authentication evidence into an acting user id.
// Priority order:
//
//  1. the connection's own authenticated user from a prior LOGIN;
//  2. a session token, resolved through the session table;
//  3. a username, resolved through the credential store;
//  4. a raw user_id, trusted as-is.
//
// The last form is a reproduced protocol weakness: possession of a user id
// counts as proof of identity for legacy clients. It is kept for wire
// compatibility and called out in the documentation.
func (r *Router) resolveIdentity(ctx context.Context, st *ConnState, params map[string]any) (string, *Response) {
	if st.UserID != "" {
		return st.UserID, nil
	}

	if token := stringParam(params, "session_token"); token != "" {
		userID, err := r.sessions.Validate(ctx, token)
		if err == nil {
			return userID, nil
		}
		// Expired and unknown tokens get the same answer.
		return "", ErrorResponse("Authentication required")
	}

	if username := stringParam(params, "username"); username != "" {
		userID, err := r.users.FindUserIDByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return "", ErrorResponse("User not found")
			}
			r.logger.Error(ctx, "username lookup failed", "error", err.Error())
			return "", ErrorResponse("Server error")
		}
		return userID, nil
	}

	if id := stringParam(params, "user_id"); id != "" {
		return id, nil
	}

	return "", ErrorResponse("Authentication required")
}

func (r *Router) handleRegister(ctx context.Context, _ *ConnState, _ string, params map[string]any) *Response {
	if msg := validateParams(params, "username", "password", "email"); msg != "" {
		return ErrorResponse(msg)
	}

	username := sanitize(stringParam(params, "username"))
	email := sanitize(stringParam(params, "email"))
	password := stringParam(params, "password")

	var profile *services.StudentProfile
	if stringParam(params, "student_id") != "" &&
		stringParam(params, "full_name") != "" &&
		stringParam(params, "department") != "" {
		profile = &services.StudentProfile{
			StudentID:  sanitize(stringParam(params, "student_id")),
			FullName:   sanitize(stringParam(params, "full_name")),
			Department: sanitize(stringParam(params, "department")),
			Semester:   intParam(params, "semester", 1),
			GPA:        floatParam(params, "gpa", 0),
		}
	}

	user, err := r.users.Register(ctx, username, password, email, profile)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateUsername):
			return ErrorResponse("Username already exists")
		case errors.Is(err, common.ErrDuplicateEmail):
			return ErrorResponse("Email already registered")
		default:
			r.logger.Error(ctx, "registration failed", "error", err.Error())
			return ErrorResponse("Server error")
		}
	}

	return SuccessResponse("Registration successful", map[string]any{
		"user_id": user.ID,
	})
}

func (r *Router) handleLogin(ctx context.Context, st *ConnState, _ string, params map[string]any) *Response {
	if msg := validateParams(params, "username", "password"); msg != "" {
		return ErrorResponse(msg)
	}

	result, err := r.users.Authenticate(ctx, stringParam(params, "username"), stringParam(params, "password"))
	if err != nil {
		r.logger.Error(ctx, "authentication failed", "error", err.Error())
		return ErrorResponse("Server error")
	}

	if result.Status != services.AuthSuccess {
		return ErrorResponse(result.Message)
	}

	st.UserID = result.UserID

	data := map[string]any{
		"user_id":  result.UserID,
		"username": result.Username,
	}

	token, err := r.sessions.Create(ctx, result.UserID)
	if err != nil {
		// The connection-scoped flag already authenticates this client;
		// a missing token only affects other connections.
		r.logger.Error(ctx, "session issuance failed", "error", err.Error())
	} else {
		data["session_token"] = token
	}

	return SuccessResponse("Login successful", data)
}

func (r *Router) handleGetData(ctx context.Context, _ *ConnState, userID string, _ map[string]any) *Response {
	record, err := r.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrorResponse("No student data found")
		}
		r.logger.Error(ctx, "student lookup failed", "error", err.Error())
		return ErrorResponse("Server error")
	}

	return SuccessResponse("Student data retrieved", map[string]any{
		"student_id":            record.StudentID,
		"full_name":             record.FullName,
		"department":            record.Department,
		"semester":              record.Semester,
		"gpa":                   record.GPA,
		"attendance_percentage": record.AttendancePercentage,
	})
}

func (r *Router) handleSubmitRequest(ctx context.Context, _ *ConnState, userID string, params map[string]any) *Response {
	if msg := validateParams(params, "request_type", "title", "description"); msg != "" {
		return ErrorResponse(msg)
	}

	req, err := r.requests.Submit(ctx, userID,
		sanitize(stringParam(params, "request_type")),
		sanitize(stringParam(params, "title")),
		sanitize(stringParam(params, "description")))
	if err != nil {
		r.logger.Error(ctx, "request submission failed", "error", err.Error())
		return ErrorResponse("Server error")
	}

	return SuccessResponse("Request submitted successfully", map[string]any{
		"request_id": req.ID,
	})
}

func (r *Router) handleGetRequests(ctx context.Context, _ *ConnState, userID string, _ map[string]any) *Response {
	list, err := r.requests.List(ctx, userID)
	if err != nil {
		r.logger.Error(ctx, "request listing failed", "error", err.Error())
		return ErrorResponse("Server error")
	}

	items := make([]map[string]any, 0, len(list))
	for _, req := range list {
		items = append(items, map[string]any{
			"id":          req.ID,
			"type":        req.RequestType,
			"title":       req.Title,
			"description": req.Description,
			"status":      req.Status,
			"created_at":  req.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return SuccessResponse("Requests retrieved", map[string]any{
		"requests": items,
	})
}

func (r *Router) handleHelp(_ context.Context, _ *ConnState, _ string, _ map[string]any) *Response {
	return SuccessResponse("Available commands", map[string]any{
		"REGISTER":       "Register new user - params: username, password, email, [student_data]",
		"LOGIN":          "Login user - params: username, password",
		"GET_DATA":       "Get student data (requires login)",
		"SUBMIT_REQUEST": "Submit request - params: request_type, title, description",
		"GET_REQUESTS":   "Get user requests (requires login)",
		"EXIT":           "Disconnect from server",
	})
}

func (r *Router) handleExit(ctx context.Context, _ *ConnState, _ string, params map[string]any) *Response {
	// A supplied session token is retired so it cannot outlive the client
	// that asked to leave. Invalidation is idempotent.
	if token := stringParam(params, "session_token"); token != "" {
		if err := r.sessions.Invalidate(ctx, token); err != nil {
			r.logger.Warn(ctx, "session invalidation failed", "error", err.Error())
		}
	}
	return SuccessResponse("Goodbye!", nil)
}
