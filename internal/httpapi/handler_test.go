package httpapi

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/baditaflorin/go_user_registry/internal/adapters/logger"
	"github.com/baditaflorin/go_user_registry/pkg/normalize"
	"github.com/baditaflorin/go_user_registry/pkg/streaming"
	"github.com/baditaflorin/go_user_registry/pkg/user"
	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func quietLogger(t *testing.T) l.Logger {
	t.Helper()

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: true,
		AsyncWrite: false,
		BufferSize: 1024,
	})
	require.NoError(t, err)
	return lg
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	lg := quietLogger(t)

	registry, err := user.New(user.WithLogger(lg))
	require.NoError(t, err)

	normalizer, err := normalize.New(normalize.WithLogger(lg))
	require.NoError(t, err)

	streamer, err := streaming.New(streaming.WithLogger(lg))
	require.NoError(t, err)

	return New(registry, normalizer, streamer, logger.FromExisting(lg))
}

func doRequest(h *Handler, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)
	return ctx
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodGet, "/health", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.NotEmpty(t, ctx.Response.Header.Peek(RequestIDHeader))
}

func TestCreateAndGetUser(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/users", `{"username":"alice","email":"a@b.com"}`)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	var created CreateUserResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &created))
	require.True(t, created.Created)
	require.Equal(t, "alice", created.Username)

	ctx = doRequest(h, fasthttp.MethodGet, "/users/alice", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var got UserResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "a@b.com", got.Email)
	require.False(t, got.CreatedAt.IsZero())
}

func TestCreateDuplicateConflicts(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/users", `{"username":"alice","email":"a@b.com"}`)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	ctx = doRequest(h, fasthttp.MethodPost, "/users", `{"username":"alice","email":"c@d.com"}`)
	require.Equal(t, fasthttp.StatusConflict, ctx.Response.StatusCode())

	// Original record must be untouched.
	ctx = doRequest(h, fasthttp.MethodGet, "/users/alice", "")
	var got UserResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	require.Equal(t, "a@b.com", got.Email)
}

func TestGetUnknownUser(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodGet, "/users/nobody", "")
	require.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestCreateUserValidation(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/users", `{"email":"a@b.com"}`)
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = doRequest(h, fasthttp.MethodPost, "/users", `not json`)
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodGet, "/normalize", "")
	require.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())

	ctx = doRequest(h, fasthttp.MethodDelete, "/users/alice", "")
	require.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestNormalize(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", `{"items":["ab","  ","cd"]}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Equal(t, []string{"AB", "CD"}, resp.Items)
	require.Equal(t, 3, resp.Taken)
	require.Equal(t, 1, resp.Dropped)
}

func TestNormalizeWithExplicitCap(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", `{"items":["x","y","z"],"max_items":2}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Equal(t, []string{"X", "Y"}, resp.Items)
}

func TestNormalizeStream(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodPost, "/normalize/stream", `{"text":"one\n\ntwo"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp StreamResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Equal(t, "ONE\nTWO\n", resp.Text)
	require.Equal(t, 2, resp.LinesKept)
	require.Equal(t, 1, resp.LinesDropped)
}

func TestRequestIDPropagated(t *testing.T) {
	h := newTestHandler(t)

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/health")
	req.Header.Set(RequestIDHeader, "req-123")

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)

	require.Equal(t, "req-123", string(ctx.Response.Header.Peek(RequestIDHeader)))
}

func TestUnknownPath(t *testing.T) {
	h := newTestHandler(t)

	ctx := doRequest(h, fasthttp.MethodGet, "/nope", "")
	require.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
