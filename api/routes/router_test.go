package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/selection"
	"github.com/vmsuarez/usermap/internal/stream"
	"github.com/vmsuarez/usermap/pkg/config"
	"github.com/vmsuarez/usermap/pkg/gateway"
	"github.com/vmsuarez/usermap/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubGateway struct{}

func (stubGateway) CreateUser(context.Context, gateway.UserInput) error         { return nil }
func (stubGateway) UpdateUser(context.Context, string, gateway.UserInput) error { return nil }
func (stubGateway) DeleteUser(context.Context, string) error                    { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"

	set := records.NewSet()
	set.Replace(map[string]json.RawMessage{
		"u1": json.RawMessage(`{"name":"Amy","zip":"60601","latitude":41.88,"longitude":-87.63,"timezone":"America/Chicago"}`),
	})

	registry := prometheus.NewRegistry()
	mtr := metrics.NewServiceMetrics(registry)

	return NewRouter(
		cfg,
		nil,
		stubPinger{},
		set,
		selection.NewCoordinator(),
		stream.NewBroker(10),
		stubGateway{},
		mtr,
		registry,
	)
}

func TestRouterEndpoints(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/health/live", "", http.StatusOK},
		{"GET", "/health/ready", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/api/view", "", http.StatusOK},
		{"GET", "/api/map?ready=true", "", http.StatusOK},
		{"GET", "/api/selection", "", http.StatusOK},
		{"PUT", "/api/selection", `{"id":"u1"}`, http.StatusOK},
		{"DELETE", "/api/selection", "", http.StatusOK},
		{"POST", "/api/users", `{"name":"Bea","zip":"10001"}`, http.StatusAccepted},
		{"PATCH", "/api/users/u1", `{"name":"Bea","zip":"10001"}`, http.StatusAccepted},
		{"DELETE", "/api/users/u1", "", http.StatusAccepted},
		{"GET", "/", "", http.StatusOK},
		{"GET", "/static/app.js", "", http.StatusOK},
	}

	for _, tc := range cases {
		var body *strings.Reader
		if tc.body != "" {
			body = strings.NewReader(tc.body)
		} else {
			body = strings.NewReader("")
		}
		r := httptest.NewRequest(tc.method, tc.path, body)
		if tc.body != "" {
			r.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != tc.status {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, w.Code, tc.status)
		}
	}
}

func TestRouterViewPayload(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/view", nil))

	var envelope struct {
		Data struct {
			Rows []struct {
				Name string `json:"name"`
			} `json:"rows"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Rows) != 1 || envelope.Data.Rows[0].Name != "Amy" {
		t.Fatalf("rows = %+v", envelope.Data.Rows)
	}
}
