// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
	"github.com/cipherpost/cipherpost/backend/middleware"
	"github.com/cipherpost/cipherpost/backend/service"
)

type KeyHandler struct {
	svc *service.MessagingService
}

func NewKeyHandler(svc *service.MessagingService) *KeyHandler {
	return &KeyHandler{svc: svc}
}

// GenerateKeys provisions a fresh key pair for the caller and returns
// the public half only. Regenerating replaces any existing pair.
func (h *KeyHandler) GenerateKeys(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	publicKey, err := h.svc.GenerateKeys(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":    userID,
		"public_key": publicKey,
	})
}

// GetPublicKey serves another user's public half, typically ahead of a
// client-side encrypt.
func (h *KeyHandler) GetPublicKey(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidArg("user id must be numeric"))
		return
	}

	publicKey, err := h.svc.GetPublicKey(r.Context(), targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":    targetID,
		"public_key": publicKey,
	})
}

func (h *KeyHandler) Encrypt(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r); !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	var req struct {
		ReceiverID int64  `json:"receiver_id"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArg("invalid request body"))
		return
	}
	if req.ReceiverID <= 0 || req.Message == "" {
		writeError(w, apperrors.InvalidArg("receiver_id and message are required"))
		return
	}

	ciphertext, err := h.svc.EncryptFor(r.Context(), req.ReceiverID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"encrypted_message": ciphertext})
}

func (h *KeyHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	var req struct {
		EncryptedMessage string `json:"encrypted_message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArg("invalid request body"))
		return
	}
	if req.EncryptedMessage == "" {
		writeError(w, apperrors.InvalidArg("encrypted_message is required"))
		return
	}

	plaintext, err := h.svc.DecryptOwn(r.Context(), userID, req.EncryptedMessage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"decrypted_message": plaintext})
}
