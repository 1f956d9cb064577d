package controllers

import (
	"net/http"

	"github.com/FamilyDinnerTime/backend/api/responses"
	"github.com/FamilyDinnerTime/backend/api/validators"
	"github.com/FamilyDinnerTime/backend/internal/steps"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
)

type createStepRequest struct {
	Name                 string  `json:"name" validate:"required,min=1,max=255"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2048"`
	EstimatedTimeMinutes *int    `json:"estimated_time_minutes,omitempty" validate:"omitempty,gt=0"`
}

type updateStepRequest struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2048"`
	EstimatedTimeMinutes *int    `json:"estimated_time_minutes,omitempty" validate:"omitempty,gt=0"`
}

// StepCreate adds a preparation step to the shared catalog.
func StepCreate(svc steps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steps service unavailable"))
			return
		}

		var body createStepRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		step, err := svc.Create(r.Context(), body.Name, body.Description, body.EstimatedTimeMinutes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, step)
	}
}

// StepUpdate adjusts catalog step fields.
func StepUpdate(svc steps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steps service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "stepID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateStepRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		step, err := svc.Update(r.Context(), id, steps.UpdateStepInput{
			Name:                 body.Name,
			Description:          body.Description,
			EstimatedTimeMinutes: body.EstimatedTimeMinutes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, step)
	}
}

// StepDelete removes a catalog step unless a dish still references it.
func StepDelete(svc steps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steps service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "stepID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// StepGet returns a single catalog step.
func StepGet(svc steps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steps service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "stepID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		step, err := svc.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, step)
	}
}

// StepList returns the catalog, optionally filtered by name fragment.
func StepList(svc steps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "steps service unavailable"))
			return
		}

		if name := r.URL.Query().Get("name"); name != "" {
			found, err := svc.FindByName(r.Context(), name)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, found)
			return
		}

		found, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}
