// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses. Unknown errors
// collapse to 500 with a generic message so internal details stay out
// of responses.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)

	message := "internal server error"
	var app *apperrors.AppError
	if stderrors.As(err, &app) && code != apperrors.CodeInternal && code != apperrors.CodeUnknown {
		message = app.Message
	}

	writeJSON(w, statusFor(code), map[string]interface{}{
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeNotFound, apperrors.CodeKeyNotFound:
		return http.StatusNotFound
	case apperrors.CodeCipherFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
