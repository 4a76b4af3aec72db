// Package testserver runs the full HTTP and MCP stack over an in-memory database.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/mcp"
	"github.com/everday/everday/internal/store"
	"github.com/everday/everday/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	DB     *store.DB
	App    *app.App
}

// New starts a server with bearer auth on both the API and /mcp.
func New(t *testing.T, habitOpts ...habit.Option) *TestServer {
	t.Helper()

	db, err := store.Open(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	a := app.New(db, guest.NewMemoryStorage(0), nil, habitOpts...)
	mcpServer := mcp.NewServer(mcp.Config{
		App:           a,
		Resolver:      a.Accounts,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	server := httptest.NewServer(transport.NewServer(transport.Config{App: a, MCP: mcpHandler}))

	ts := &TestServer{Server: server, DB: db, App: a}
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})
	return ts
}

// SignUp registers a free account and returns its id and bearer token.
func (ts *TestServer) SignUp(t *testing.T, email string) (string, string) {
	t.Helper()
	profile, token, err := ts.App.Accounts.Register(context.Background(), email, plan.TierFree)
	require.NoError(t, err)
	return profile.ID, token
}

// SetPlan changes an account's plan tier.
func (ts *TestServer) SetPlan(t *testing.T, accountID string, tier plan.Tier) {
	t.Helper()
	_, err := ts.App.Accounts.SetPlan(context.Background(), accountID, tier, nil)
	require.NoError(t, err)
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Body   any
	Token  string
	Guest  string
}

// Response is a fully read API response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r Response) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "body: %s", r.Body)
}

// ErrorCode returns the code of an error response body.
func (r Response) ErrorCode(t *testing.T) string {
	t.Helper()
	var body struct {
		Error transport.APIError `json:"error"`
	}
	r.Decode(t, &body)
	return body.Error.Code
}

// Do sends req and reads the whole response.
func (ts *TestServer) Do(t *testing.T, req Request) Response {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequest(req.Method, ts.Server.URL+req.Path, body)
	require.NoError(t, err)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if req.Guest != "" {
		httpReq.Header.Set(transport.GuestHeader, req.Guest)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// MCPClient connects an MCP client session to /mcp with token as bearer.
func (ts *TestServer) MCPClient(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := &http.Client{Transport: bearerTransport{token: token, next: http.DefaultTransport}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.next.RoundTrip(req)
}
