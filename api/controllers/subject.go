package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/FamilyDinnerTime/backend/api/middleware"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
)

// subjectID resolves the authenticated user's id from the request context.
func subjectID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	// The id comes from verified token claims, not from request input, so a
	// malformed value means the credential itself is bad.
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// parseBodyUUID parses a UUID carried in a request body field.
func parseBodyUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
