package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

type stubRankings struct {
	last time.Time
}

func (r *stubRankings) LastRebuild() time.Time {
	return r.last
}

func testServer(db DatabasePinger, rankings RankingStatus) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewServer(Config{
		ServiceName: "trackday-ratings",
		Version:     "test",
		Logger:      logger,
		DB:          db,
		Rankings:    rankings,
	})
}

func TestHandleHealth(t *testing.T) {
	s := testServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trackday-ratings", resp.Service)
}

func TestHandleReadyNotReady(t *testing.T) {
	s := testServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not_ready", resp.Checks["service"])
}

func TestHandleReadyAllChecksPass(t *testing.T) {
	s := testServer(&stubPinger{}, &stubRankings{last: time.Now()})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Contains(t, resp.Checks["rankings"], "rebuilt")
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := testServer(&stubPinger{err: errors.New("connection refused")}, nil)
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Checks["database"], "error")
}

func TestHandleReadyPendingRebuildDoesNotFail(t *testing.T) {
	s := testServer(&stubPinger{}, &stubRankings{})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Checks["rankings"])
}
