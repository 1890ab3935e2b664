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

type MessageHandler struct {
	svc *service.MessagingService
}

func NewMessageHandler(svc *service.MessagingService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	var req struct {
		ReceiverID    int64  `json:"receiver_id"`
		Message       string `json:"message"`
		AttachmentURL string `json:"attachment_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArg("invalid request body"))
		return
	}
	if req.ReceiverID <= 0 || req.Message == "" {
		writeError(w, apperrors.InvalidArg("receiver_id and message are required"))
		return
	}

	messageID, err := h.svc.Send(r.Context(), senderID, req.ReceiverID, req.Message, req.AttachmentURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message_id": messageID,
		"status":     "sent",
	})
}

// Receive drains the caller's inbox: every unread envelope is decrypted
// and the whole batch marked read. A later call returns an empty set.
func (h *MessageHandler) Receive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	messages, err := h.svc.DrainInbox(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// Unread decrypts the unread batch without marking it read.
func (h *MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	messages, err := h.svc.PeekUnread(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	vars := mux.Vars(r)
	otherID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidArg("user id must be numeric"))
		return
	}

	history, err := h.svc.History(r.Context(), userID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, apperrors.ErrMissingIdentity)
		return
	}

	vars := mux.Vars(r)
	messageID := vars["messageId"]

	msg, err := h.svc.MarkRead(r.Context(), messageID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "marked_read",
		"updated": msg,
	})
}
