package controllers

import (
	"net/http"

	"github.com/FamilyDinnerTime/backend/api/responses"
	"github.com/FamilyDinnerTime/backend/api/validators"
	"github.com/FamilyDinnerTime/backend/internal/votings"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
)

type votingRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type attachDishRequest struct {
	DishID string `json:"dish_id" validate:"required,uuid"`
}

// VotingCreate opens a menu voting owned by the caller.
func VotingCreate(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body votingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		voting, err := svc.Create(r.Context(), requester, body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, voting)
	}
}

// VotingGet returns a single voting.
func VotingGet(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		voting, err := svc.FindByID(r.Context(), votingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, voting)
	}
}

// VotingUpdate renames a voting. Only the creator may rename.
func VotingUpdate(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body votingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		voting, err := svc.Update(r.Context(), requester, votingID, body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, voting)
	}
}

// VotingDelete removes a voting. Only the creator may delete.
func VotingDelete(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), requester, votingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// VotingVisible lists votings the caller created or shares a group with.
func VotingVisible(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if name := r.URL.Query().Get("name"); name != "" {
			found, err := svc.FindVisibleByName(r.Context(), name, requester)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, found)
			return
		}

		found, err := svc.FindVisible(r.Context(), requester)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// VotingCreated lists the votings the caller created.
func VotingCreated(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
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

// VotingAddDish puts a dish on the ballot. Only the creator may add.
func VotingAddDish(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body attachDishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := parseBodyUUID(body.DishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddDish(r.Context(), requester, votingID, dishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// VotingRemoveDish takes a dish off the ballot. Only the creator may remove.
func VotingRemoveDish(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		requester, err := subjectID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID, err := validators.ParseUUIDParam(r, "dishID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveDish(r.Context(), requester, votingID, dishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// VotingListOptions returns the ballot entries of a voting.
func VotingListOptions(svc votings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "votings service unavailable"))
			return
		}

		votingID, err := validators.ParseUUIDParam(r, "votingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.ListOptions(r.Context(), votingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}
