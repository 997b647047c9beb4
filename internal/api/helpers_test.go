package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taskstore/internal/store"
	"github.com/roach88/taskstore/internal/testutil"
)

// newTestServer creates a server over the default seed. The next task id is 2
// and every generated request id is "req-1".
func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	st, err := store.New(store.WithIDSource(testutil.NewDeterministicClockAt(1)))
	require.NoError(t, err)

	base := []Option{
		WithLogger(discardLogger()),
		WithRequestIDGenerator(testutil.NewFixedRequestIDs("req-1")),
	}
	return NewServer(st, append(base, opts...)...)
}

// do sends a request through h. headers are name/value pairs.
func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	require.Zero(t, len(headers)%2, "headers must be name/value pairs")

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newRequest(method, target, body, contentType string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertGolden(t *testing.T, name string, rec *httptest.ResponseRecorder) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, rec.Body.Bytes())
}

// stubStore fails or panics on every operation.
type stubStore struct {
	err   error
	panic any
}

func (s stubStore) fail() error {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.err
}

func (s stubStore) List(context.Context) ([]store.Task, error) { return nil, s.fail() }

func (s stubStore) Get(context.Context, int64) (store.Task, error) { return store.Task{}, s.fail() }

func (s stubStore) Create(context.Context, string) (store.Task, error) {
	return store.Task{}, s.fail()
}

func (s stubStore) Update(context.Context, int64, store.Patch) (store.Task, error) {
	return store.Task{}, s.fail()
}

func (s stubStore) Delete(context.Context, int64) (bool, error) { return false, s.fail() }
