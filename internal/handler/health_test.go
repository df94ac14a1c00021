package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockPinger) Close() {
	m.Called()
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: HealthStatusOK}, decodeHealth(t, rec))
}

func TestHandleReadyz(t *testing.T) {
	cases := []struct {
		name     string
		pingErr  error
		wantCode int
		want     HealthResponse
	}{
		{"storage reachable", nil, http.StatusOK, HealthResponse{Status: HealthStatusOK}},
		{"sqlite file locked", errors.New("database is locked"), http.StatusServiceUnavailable,
			HealthResponse{Status: HealthStatusUnavailable, Message: HealthMsgDatabaseFailed}},
		{"postgres ping timed out", context.DeadlineExceeded, http.StatusServiceUnavailable,
			HealthResponse{Status: HealthStatusUnavailable, Message: HealthMsgDatabaseFailed}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &mockPinger{}
			db.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
				_, ok := ctx.Deadline()
				return ok
			})).Return(tc.pingErr)

			rec := httptest.NewRecorder()
			HandleReadyz(db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.want, decodeHealth(t, rec))
			db.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleVersion().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.Regexp(t, `^go`, info.GoVersion)
}
