package dqlclient

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/go-faster/dalmatinerql/internal/dql"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	s := httptest.NewServer(h)
	t.Cleanup(s.Close)

	c, err := NewClient(s.URL,
		WithHTTPClient(s.Client()),
		WithMaxRetries(2),
		WithBackOff(func() backoff.BackOff {
			return &backoff.ZeroBackOff{}
		}),
	)
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T) context.Context {
	return zctx.Base(context.Background(), zaptest.NewLogger(t))
}

func TestClientQuery(t *testing.T) {
	ctx := testContext(t)

	var gotPath, gotAccept, gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query().Get("q")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"s":[{"n":"cpu","r":1000,"v":[1,null,2.5]}],"t":512,"d":{}}`))
	})

	b := dql.New().
		From("myorg").
		Select("base", "cpu").
		Apply("avg", "30s")
	res, err := c.QueryBuilder(ctx, b, Last(time.Hour))
	require.NoError(t, err)
	require.Equal(t, "/", gotPath)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, `SELECT avg('base'.'cpu' FROM 'myorg', 30s) LAST 1h`, gotQuery)

	require.Equal(t, 512*time.Microsecond, res.Took)
	require.Len(t, res.Series, 1)
	s := res.Series[0]
	require.Equal(t, "cpu", s.Name)
	require.Equal(t, time.Second, s.Resolution)
	require.Len(t, s.Values, 3)
	require.Equal(t, 1.0, s.Values[0])
	require.True(t, math.IsNaN(s.Values[1]))
	require.Equal(t, 2.5, s.Values[2])
}

func TestClientRetry(t *testing.T) {
	ctx := testContext(t)

	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"s":[]}`))
	})

	res, err := c.Query(ctx, `SELECT 'a' FROM 'org'`, Last(time.Minute))
	require.NoError(t, err)
	require.Empty(t, res.Series)
	require.Equal(t, int32(3), calls.Load())
}

func TestClientRetryExhausted(t *testing.T) {
	ctx := testContext(t)

	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Query(ctx, `SELECT 'a' FROM 'org'`, Last(time.Minute))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Code)
	// Initial attempt and two retries.
	require.Equal(t, int32(3), calls.Load())
}

func TestClientPermanentError(t *testing.T) {
	ctx := testContext(t)

	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("syntax error"))
	})

	_, err := c.Query(ctx, `SELECT`, Last(time.Minute))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.Code)
	require.Equal(t, "syntax error", statusErr.Body)
	require.Equal(t, int32(1), calls.Load())
}

func TestClientInvalidResponse(t *testing.T) {
	ctx := testContext(t)

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"s":[{"v":["foo"]}]}`))
	})

	_, err := c.Query(ctx, `SELECT 'a' FROM 'org'`, Last(time.Minute))
	require.Error(t, err)
}

func TestClientRenderError(t *testing.T) {
	ctx := testContext(t)

	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	b := dql.New().
		From("myorg").
		Select("base", "cpu").
		Apply("avg", "$interval")
	_, err := c.QueryBuilder(ctx, b, Last(time.Hour))
	var varErr *dql.UndefinedVariableError
	require.ErrorAs(t, err, &varErr)
	require.Zero(t, calls.Load())
}

func TestNewClient(t *testing.T) {
	for _, addr := range []string{
		"localhost:8080",
		"ftp://localhost",
		"://",
	} {
		_, err := NewClient(addr)
		require.Error(t, err, addr)
	}

	_, err := NewClient("http://localhost:8080")
	require.NoError(t, err)
}
