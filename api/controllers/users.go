package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vmsuarez/usermap/api/responses"
	"github.com/vmsuarez/usermap/api/validators"
	pkgerrors "github.com/vmsuarez/usermap/pkg/errors"
	"github.com/vmsuarez/usermap/pkg/gateway"
	"github.com/vmsuarez/usermap/pkg/logger"
	"github.com/vmsuarez/usermap/pkg/metrics"
)

// Gateway forwards user mutations to the upstream CRUD API.
type Gateway interface {
	CreateUser(ctx context.Context, input gateway.UserInput) error
	UpdateUser(ctx context.Context, id string, input gateway.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

type userRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Zip  string `json:"zip" validate:"required,userzip"`
}

func (r userRequest) toInput() gateway.UserInput {
	return gateway.UserInput{Name: r.Name, Zip: r.Zip}
}

// UserCreate accepts the submission immediately. The outcome of the
// upstream call only surfaces through the record feed, so failures are
// logged but never reported to the caller.
func UserCreate(gw Gateway, mtr *metrics.ServiceMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gw == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gateway unavailable"))
			return
		}

		var body userRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := gw.CreateUser(r.Context(), body.toInput())
		mtr.IncGatewayCall("create", err)
		if err != nil && logg != nil {
			logg.Error(r.Context(), "gateway.create_failed", err)
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func UserUpdate(gw Gateway, mtr *metrics.ServiceMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gw == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gateway unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id required"))
			return
		}

		var body userRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithRecordID(ctx, id)
		}

		err := gw.UpdateUser(ctx, id, body.toInput())
		mtr.IncGatewayCall("update", err)
		if err != nil && logg != nil {
			logg.Error(ctx, "gateway.update_failed", err)
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func UserDelete(gw Gateway, mtr *metrics.ServiceMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gw == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gateway unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id required"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithRecordID(ctx, id)
		}

		err := gw.DeleteUser(ctx, id)
		mtr.IncGatewayCall("delete", err)
		if err != nil && logg != nil {
			logg.Error(ctx, "gateway.delete_failed", err)
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
