package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vmsuarez/usermap/pkg/gateway"
)

type fakeGateway struct {
	created []gateway.UserInput
	updated map[string]gateway.UserInput
	deleted []string
	err     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{updated: map[string]gateway.UserInput{}}
}

func (f *fakeGateway) CreateUser(ctx context.Context, input gateway.UserInput) error {
	f.created = append(f.created, input)
	return f.err
}

func (f *fakeGateway) UpdateUser(ctx context.Context, id string, input gateway.UserInput) error {
	f.updated[id] = input
	return f.err
}

func (f *fakeGateway) DeleteUser(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestUserCreateAccepted(t *testing.T) {
	gw := newFakeGateway()
	handler := UserCreate(gw, nil, nil)

	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"60601"}`))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if len(gw.created) != 1 || gw.created[0].Name != "Amy" || gw.created[0].Zip != "60601" {
		t.Fatalf("created = %+v", gw.created)
	}
}

func TestUserCreateGatewayFailureStillAccepted(t *testing.T) {
	gw := newFakeGateway()
	gw.err = errors.New("upstream down")
	handler := UserCreate(gw, nil, nil)

	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"60601"}`))
	w := httptest.NewRecorder()
	handler(w, r)

	// Outcomes surface through the record feed, never the response.
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
}

func TestUserCreateRejectsInvalidBody(t *testing.T) {
	gw := newFakeGateway()
	handler := UserCreate(gw, nil, nil)

	r := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"Amy","zip":"12a"}`))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(gw.created) != 0 {
		t.Fatal("gateway should not be called for invalid input")
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUserUpdate(t *testing.T) {
	gw := newFakeGateway()
	handler := UserUpdate(gw, nil, nil)

	r := httptest.NewRequest("PATCH", "/api/users/u1", strings.NewReader(`{"name":"Amy","zip":"10001"}`))
	r = withURLParam(r, "id", "u1")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if input, ok := gw.updated["u1"]; !ok || input.Zip != "10001" {
		t.Fatalf("updated = %+v", gw.updated)
	}
}

func TestUserDelete(t *testing.T) {
	gw := newFakeGateway()
	handler := UserDelete(gw, nil, nil)

	r := httptest.NewRequest("DELETE", "/api/users/u1", nil)
	r = withURLParam(r, "id", "u1")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "u1" {
		t.Fatalf("deleted = %v", gw.deleted)
	}
}

func TestUserDeleteMissingID(t *testing.T) {
	gw := newFakeGateway()
	handler := UserDelete(gw, nil, nil)

	r := httptest.NewRequest("DELETE", "/api/users/", nil)
	r = withURLParam(r, "id", "")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
