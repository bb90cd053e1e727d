package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", Check{Name: "database", Pinger: &pingerMock{err: errors.New("down")}, Critical: true})

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		wantCode   int
		wantStatus string
	}{
		{name: "all up", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "db down", dbErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "down"},
		{name: "redis down only degrades", redisErr: errors.New("i/o timeout"), wantCode: http.StatusOK, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler("v",
				Check{Name: "database", Pinger: &pingerMock{err: tt.dbErr}, Critical: true},
				Check{Name: "redis", Pinger: &pingerMock{err: tt.redisErr}},
			)

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeHealth(t, rec); resp.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
		})
	}
}

func TestHealth_ReportsComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("1.2.3",
		Check{Name: "database", Pinger: &pingerMock{}, Critical: true},
		Check{Name: "redis", Pinger: &pingerMock{err: errors.New("refused")}},
	)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", resp.Version)
	}

	db, ok := resp.Components["database"]
	if !ok {
		t.Fatal("expected 'database' component")
	}
	if db.Status != "ok" || db.Latency == "" {
		t.Errorf("unexpected database component: %+v", db)
	}

	redis := resp.Components["redis"]
	if redis.Status != "down" || redis.Error != "refused" {
		t.Errorf("unexpected redis component: %+v", redis)
	}
}

func TestHealth_NoChecks(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}
