package controllers

import (
	"net/http"

	"github.com/FamilyDinnerTime/backend/api/responses"
	"github.com/FamilyDinnerTime/backend/api/validators"
	"github.com/FamilyDinnerTime/backend/internal/dishes"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
)

type createDishRequest struct {
	Name                 string  `json:"name" validate:"required,min=1,max=255"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2048"`
	EstimatedTimeMinutes *int    `json:"estimated_time_minutes,omitempty" validate:"omitempty,gt=0"`
}

type updateDishRequest struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2048"`
	EstimatedTimeMinutes *int    `json:"estimated_time_minutes,omitempty" validate:"omitempty,gt=0"`
}

type attachIngredientRequest struct {
	IngredientID string `json:"ingredient_id" validate:"required,uuid"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	QuantityType string `json:"quantity_type" validate:"required,min=1,max=64"`
}

type attachStepRequest struct {
	StepID     string `json:"step_id" validate:"required,uuid"`
	StepNumber int    `json:"step_number" validate:"required,gt=0"`
}

// DishCreate creates a dish owned by the caller.
func DishCreate(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createDishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Create(r.Context(), requester, body.Name, body.Description, body.EstimatedTimeMinutes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dish)
	}
}

// DishGet returns a single dish. Reads are open to authenticated users.
func DishGet(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.FindByID(r.Context(), dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dish)
	}
}

// DishUpdate adjusts dish fields for the owner.
func DishUpdate(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateDishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Update(r.Context(), requester, dishID, dishes.UpdateDishInput{
			Name:                 body.Name,
			Description:          body.Description,
			EstimatedTimeMinutes: body.EstimatedTimeMinutes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dish)
	}
}

// DishDelete removes a dish owned by the caller.
func DishDelete(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), requester, dishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DishSearch finds dishes by case-insensitive name fragment.
func DishSearch(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		name, err := validators.RequireQueryString(r, "name")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindByName(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// DishMine lists dishes created by the caller.
func DishMine(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindByCreator(r.Context(), requester)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// DishAddIngredient links an ingredient to a dish, updating quantity on repeat.
func DishAddIngredient(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body attachIngredientRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredientID, err := parseBodyUUID(body.IngredientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddIngredient(r.Context(), requester, dishID, ingredientID, body.Quantity, body.QuantityType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// DishRemoveIngredient unlinks an ingredient from a dish.
func DishRemoveIngredient(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredientID, err := validators.ParseUUIDParam(r, "ingredientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveIngredient(r.Context(), requester, dishID, ingredientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// DishListIngredients returns the dish's ingredient links.
func DishListIngredients(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredients, err := svc.ListIngredients(r.Context(), dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ingredients)
	}
}

// DishAddStep links a step to a dish at a position, moving it on repeat.
func DishAddStep(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body attachStepRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stepID, err := parseBodyUUID(body.StepID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddStep(r.Context(), requester, dishID, stepID, body.StepNumber); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// DishRemoveStep unlinks a step from a dish.
func DishRemoveStep(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stepID, err := validators.ParseUUIDParam(r, "stepID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveStep(r.Context(), requester, dishID, stepID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// DishListSteps returns the dish's step links ordered by position.
func DishListSteps(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dishes service unavailable"))
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		steps, err := svc.ListSteps(r.Context(), dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, steps)
	}
}
