package http_handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/config"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/service/mocks"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockCounterService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCounterService(ctrl)
	return NewServer(config.DefaultConfig(), svc), svc
}

func doRequest(t *testing.T, s *Server, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func TestServer_HandleVisit(t *testing.T) {
	type mockSetup func(svc *mocks.MockCounterService)

	tests := []struct {
		name       string
		target     string
		setup      mockSetup
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:   "Success",
			target: "/api/v1/visit/home",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().IncrementBy(gomock.Any(), "home", int64(1)).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "success", "message": "Visit recorded for page home"},
		},
		{
			name:   "WithCount",
			target: "/api/v1/visit/home?count=5",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().IncrementBy(gomock.Any(), "home", int64(5)).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "success", "message": "Visit recorded for page home"},
		},
		{
			name:       "BadCount",
			target:     "/api/v1/visit/home?count=-2",
			setup:      func(svc *mocks.MockCounterService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "StoreClosed",
			target: "/api/v1/visit/home",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().IncrementBy(gomock.Any(), "home", int64(1)).Return(port.ErrStoreClosed)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]any{"error": port.ErrStoreClosed.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newTestServer(t)
			tt.setup(svc)

			status, body := doRequest(t, s, httptest.NewRequest(http.MethodPost, tt.target, nil))
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestServer_HandleVisits(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(svc *mocks.MockCounterService)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "InMemory",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().Read(gomock.Any(), "home").Return(port.ReadResult{Visits: 3, ServedVia: port.ServedInMemory}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"visits": float64(3), "served_via": "in_memory"},
		},
		{
			name: "Backend",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().Read(gomock.Any(), "home").Return(port.ReadResult{Visits: 0, ServedVia: port.ServedBackend}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"visits": float64(0), "served_via": "backend"},
		},
		{
			name: "BackendUnavailable",
			setup: func(svc *mocks.MockCounterService) {
				err := &port.BackendUnavailableError{Node: "redis_7070", Attempts: 3, Err: errors.New("connection refused")}
				svc.EXPECT().Read(gomock.Any(), "home").Return(port.ReadResult{}, err)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "EmptyRing",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().Read(gomock.Any(), "home").Return(port.ReadResult{}, shard.ErrEmptyRing)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "Unexpected",
			setup: func(svc *mocks.MockCounterService) {
				svc.EXPECT().Read(gomock.Any(), "home").Return(port.ReadResult{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newTestServer(t)
			tt.setup(svc)

			status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/visits/home", nil))
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestServer_AddNode(t *testing.T) {
	s, svc := newTestServer(t)
	want := shard.Node{ID: "10.0.0.5:6379", Addr: "10.0.0.5:6379", Label: "redis_6379"}
	svc.EXPECT().AddNode(gomock.Any(), want).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/nodes", strings.NewReader(`{"addr":"redis://10.0.0.5:6379"}`))
	req.Header.Set("Content-Type", "application/json")

	status, body := doRequest(t, s, req)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "redis_6379", body["label"])
}

func TestServer_AddNodeRejectsBadAddress(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/nodes", strings.NewReader(`{"addr":"no-port"}`))
	req.Header.Set("Content-Type", "application/json")

	status, _ := doRequest(t, s, req)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_RemoveNode(t *testing.T) {
	t.Run("Removed", func(t *testing.T) {
		s, svc := newTestServer(t)
		svc.EXPECT().RemoveNode(gomock.Any(), "localhost:7071").Return(nil)

		status, _ := doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/v1/nodes?addr=localhost:7071", nil))
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("NotFound", func(t *testing.T) {
		s, svc := newTestServer(t)
		svc.EXPECT().RemoveNode(gomock.Any(), "localhost:9999").Return(port.ErrNodeNotFound)

		status, _ := doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/v1/nodes?addr=localhost:9999", nil))
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("MissingAddr", func(t *testing.T) {
		s, _ := newTestServer(t)

		status, _ := doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/v1/nodes", nil))
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestServer_ListNodes(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Nodes().Return([]shard.Node{{ID: "localhost:7070", Addr: "localhost:7070", Label: "redis_7070"}})

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/nodes", nil))
	assert.Equal(t, http.StatusOK, status)

	nodes, ok := body["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 1)
	assert.Equal(t, "redis_7070", nodes[0].(map[string]any)["label"])
}

func TestServer_Flush(t *testing.T) {
	s, svc := newTestServer(t)
	err := &port.BackendUnavailableError{Node: "redis_7071", Attempts: 3, Err: errors.New("connection refused")}
	svc.EXPECT().Flush(gomock.Any()).Return(port.FlushResult{Keys: 2, Applied: 1, Rebuffered: 1}, err)

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/v1/flush", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, map[string]any{"keys": float64(2), "applied": float64(1), "rebuffered": float64(1)}, body["result"])
}

func TestServer_Stats(t *testing.T) {
	s, svc := newTestServer(t)
	svc.EXPECT().Stats().Return(port.CounterStats{CacheHits: 4, PendingKeys: 2})

	status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), body["cache_hits"])
	assert.Equal(t, float64(2), body["pending_keys"])
}

func TestServer_Health(t *testing.T) {
	t.Run("AllUp", func(t *testing.T) {
		s, svc := newTestServer(t)
		svc.EXPECT().Health(gomock.Any()).Return(map[string]error{"localhost:7070": nil})

		status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("OneDown", func(t *testing.T) {
		s, svc := newTestServer(t)
		svc.EXPECT().Health(gomock.Any()).Return(map[string]error{
			"localhost:7070": nil,
			"localhost:7071": errors.New("connection refused"),
		})

		status, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, map[string]any{"localhost:7070": "ok", "localhost:7071": "connection refused"}, body["nodes"])
	})
}
