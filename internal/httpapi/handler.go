// Package httpapi exposes the registry and normalizer over HTTP for the
// server binary. The library itself carries no wire protocol; this surface
// exists only behind cmd/server.
package httpapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/baditaflorin/go_user_registry/internal/ports"
	"github.com/baditaflorin/go_user_registry/pkg/normalize"
	"github.com/baditaflorin/go_user_registry/pkg/streaming"
	"github.com/baditaflorin/go_user_registry/pkg/user"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// RequestIDHeader is the HTTP header carrying the request correlation ID.
// Incoming values are propagated; missing ones are generated.
const RequestIDHeader = "X-Request-ID"

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateUserResponse reports the outcome of a create request.
type CreateUserResponse struct {
	Username string `json:"username"`
	Created  bool   `json:"created"`
}

// UserResponse is the payload for GET /users/{username}.
type UserResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeRequest is the payload for POST /normalize.
type NormalizeRequest struct {
	Items []string `json:"items"`
	// MaxItems overrides the default cap of 100 when non-zero.
	MaxItems int `json:"max_items,omitempty"`
}

// NormalizeResponse reports the outcome of a normalize request.
type NormalizeResponse struct {
	Items   []string `json:"items"`
	Taken   int      `json:"taken"`
	Dropped int      `json:"dropped"`
}

// StreamRequest is the payload for POST /normalize/stream.
type StreamRequest struct {
	Text string `json:"text"`
}

// StreamResponse reports the outcome of a streaming normalize request.
type StreamResponse struct {
	Text           string `json:"text"`
	LinesKept      int    `json:"lines_kept"`
	LinesDropped   int    `json:"lines_dropped"`
	BytesProcessed int64  `json:"bytes_processed"`
	ProcessingTime string `json:"processing_time"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler routes registry and normalization requests.
type Handler struct {
	registry   *user.Registry
	normalizer *normalize.Normalizer
	streamer   *streaming.StreamNormalizer
	logger     ports.Logger
}

// New creates a new Handler.
func New(registry *user.Registry, normalizer *normalize.Normalizer, streamer *streaming.StreamNormalizer, logger ports.Logger) *Handler {
	return &Handler{
		registry:   registry,
		normalizer: normalizer,
		streamer:   streamer,
		logger:     logger,
	}
}

// Handle is the main fasthttp request handler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx.Response.Header.Set(RequestIDHeader, requestID)
	ctx.Response.Header.Set("Content-Type", "application/json")

	path := string(ctx.Path())
	switch {
	case path == "/health":
		h.handleHealth(ctx)
	case path == "/users":
		if ctx.IsPost() {
			h.handleCreateUser(ctx)
		} else {
			h.writeMethodNotAllowed(ctx)
		}
	case strings.HasPrefix(path, "/users/"):
		if ctx.IsGet() {
			h.handleGetUser(ctx, strings.TrimPrefix(path, "/users/"))
		} else {
			h.writeMethodNotAllowed(ctx)
		}
	case path == "/normalize":
		if ctx.IsPost() {
			h.handleNormalize(ctx)
		} else {
			h.writeMethodNotAllowed(ctx)
		}
	case path == "/normalize/stream":
		if ctx.IsPost() {
			h.handleNormalizeStream(ctx)
		} else {
			h.writeMethodNotAllowed(ctx)
		}
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeError(ctx, "not found")
	}

	h.logger.Info("request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(startTime),
	)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSON(ctx, map[string]interface{}{
		"status": "ok",
		"users":  h.registry.Count(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleCreateUser(ctx *fasthttp.RequestCtx) {
	var req CreateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "invalid request: "+err.Error())
		return
	}

	if req.Username == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "username is required")
		return
	}

	created := h.registry.Create(ctx, req.Username, req.Email)
	if created {
		ctx.SetStatusCode(fasthttp.StatusCreated)
	} else {
		ctx.SetStatusCode(fasthttp.StatusConflict)
	}
	h.writeJSON(ctx, CreateUserResponse{
		Username: req.Username,
		Created:  created,
	})
}

func (h *Handler) handleGetUser(ctx *fasthttp.RequestCtx, username string) {
	if username == "" || strings.Contains(username, "/") {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "invalid username")
		return
	}

	rec, ok := h.registry.Get(ctx, username)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeError(ctx, "user not found")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSON(ctx, UserResponse{
		Username:  username,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	})
}

func (h *Handler) handleNormalize(ctx *fasthttp.RequestCtx) {
	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "invalid request: "+err.Error())
		return
	}

	// An omitted max_items falls back to the configured default; an
	// explicit negative value yields an empty result by contract.
	var result normalize.Result
	if req.MaxItems != 0 {
		result = h.normalizer.NormalizeWithLimit(ctx, req.Items, req.MaxItems)
	} else {
		result = h.normalizer.NormalizeDetailed(ctx, req.Items)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSON(ctx, NormalizeResponse{
		Items:   result.Items,
		Taken:   result.Taken,
		Dropped: result.Dropped,
	})
}

func (h *Handler) handleNormalizeStream(ctx *fasthttp.RequestCtx) {
	var req StreamRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "invalid request: "+err.Error())
		return
	}

	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeError(ctx, "text is required")
		return
	}

	var out strings.Builder
	result := h.streamer.NormalizeStream(ctx, strings.NewReader(req.Text), &out)

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSON(ctx, StreamResponse{
		Text:           out.String(),
		LinesKept:      result.LinesKept,
		LinesDropped:   result.LinesDropped,
		BytesProcessed: result.BytesProcessed,
		ProcessingTime: result.ProcessingTime.String(),
	})
}

func (h *Handler) writeMethodNotAllowed(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	h.writeError(ctx, "method not allowed")
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("error marshaling JSON response", "error", err)
		ctx.SetBodyString(`{"error":"internal server error"}`)
		return
	}
	ctx.SetBody(body)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, message string) {
	h.writeJSON(ctx, ErrorResponse{Error: message})
}
