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

// Package service orchestrates the key store, envelope cipher and
// message ledger. This is the only layer with business rules; the
// stores and cipher behind it are narrow, swappable collaborators
// passed in at construction.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
	"github.com/cipherpost/cipherpost/backend/models"
	"github.com/cipherpost/cipherpost/backend/storage"
)

// Cipher seals and opens envelopes. Implementations must be stateless
// and safe for concurrent use.
type Cipher interface {
	Seal(plaintext, recipientPublicPEM string) (string, error)
	Open(ciphertext, recipientPrivatePEM string) (string, error)
}

type MessagingService struct {
	keys     storage.KeyStore
	messages storage.MessageStore
	cipher   Cipher
}

func NewMessagingService(keys storage.KeyStore, messages storage.MessageStore, cipher Cipher) *MessagingService {
	return &MessagingService{
		keys:     keys,
		messages: messages,
		cipher:   cipher,
	}
}

// Send seals plaintext for the receiver and appends the envelope to the
// ledger. The plaintext never reaches storage or the log stream.
func (s *MessagingService) Send(ctx context.Context, senderID, receiverID int64, plaintext, attachmentURL string) (string, error) {
	if senderID <= 0 {
		return "", apperrors.ErrMissingIdentity
	}
	if receiverID <= 0 {
		return "", apperrors.InvalidArg("receiver id is required")
	}

	publicKey, err := s.keys.GetPublicKey(ctx, receiverID)
	if err != nil {
		return "", err
	}

	ciphertext, err := s.cipher.Seal(plaintext, publicKey)
	if err != nil {
		return "", err
	}

	msg := models.MessageEnvelope{
		MessageID:     uuid.New().String(),
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Ciphertext:    ciphertext,
		AttachmentURL: attachmentURL,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"message_id":  msg.MessageID,
		"sender_id":   senderID,
		"receiver_id": receiverID,
	}).Info("Message sent")

	return msg.MessageID, nil
}

// DrainInbox decrypts every unread envelope addressed to userID, oldest
// first, then marks the whole batch as read. A single undecryptable
// envelope is tagged failed and never blocks the rest. Marking happens
// only after the full batch is assembled; if the process dies in
// between, the next drain re-decrypts the batch (at-least-once
// delivery, by the bulk mark's idempotency).
func (s *MessagingService) DrainInbox(ctx context.Context, userID int64) ([]models.DecryptedEnvelope, error) {
	results, err := s.decryptUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	marked, err := s.messages.MarkAllUnreadRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].IsRead = true
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"delivered": len(results),
		"marked":    marked,
	}).Info("Inbox drained")

	return results, nil
}

// PeekUnread is DrainInbox without the state transition: it decrypts the
// unread batch but leaves every envelope unread for a later drain.
func (s *MessagingService) PeekUnread(ctx context.Context, userID int64) ([]models.DecryptedEnvelope, error) {
	return s.decryptUnread(ctx, userID)
}

func (s *MessagingService) decryptUnread(ctx context.Context, userID int64) ([]models.DecryptedEnvelope, error) {
	if userID <= 0 {
		return nil, apperrors.ErrMissingIdentity
	}

	// Key lookup comes first: a user without a pair fails here, before
	// the ledger is touched at all.
	privateKey, err := s.keys.GetPrivateKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.messages.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]models.DecryptedEnvelope, 0, len(unread))
	for _, msg := range unread {
		results = append(results, s.openEnvelope(msg, privateKey))
	}
	return results, nil
}

// History returns the full conversation between userID and otherUserID
// in creation order, without touching read state. Incoming envelopes
// are opened with the caller's private key; outgoing ones carry the
// outgoing sentinel, since the sender retains no plaintext and cannot
// open ciphertext sealed for the receiver. That asymmetry is a
// confidentiality property, not a gap.
func (s *MessagingService) History(ctx context.Context, userID, otherUserID int64) ([]models.DecryptedEnvelope, error) {
	if userID <= 0 {
		return nil, apperrors.ErrMissingIdentity
	}
	if otherUserID <= 0 {
		return nil, apperrors.InvalidArg("conversation partner id is required")
	}

	privateKey, err := s.keys.GetPrivateKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.messages.ListBetween(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	results := make([]models.DecryptedEnvelope, 0, len(conversation))
	for _, msg := range conversation {
		if msg.ReceiverID == userID {
			results = append(results, s.openEnvelope(msg, privateKey))
			continue
		}
		results = append(results, models.DecryptedEnvelope{
			MessageEnvelope: msg,
			Status:          models.StatusOutgoing,
		})
	}
	return results, nil
}

// MarkRead delegates to the ledger; not-found and authorization
// failures surface unchanged.
func (s *MessagingService) MarkRead(ctx context.Context, messageID string, userID int64) (*models.MessageEnvelope, error) {
	if userID <= 0 {
		return nil, apperrors.ErrMissingIdentity
	}
	return s.messages.MarkRead(ctx, messageID, userID)
}

func (s *MessagingService) openEnvelope(msg models.MessageEnvelope, privateKey string) models.DecryptedEnvelope {
	plaintext, err := s.cipher.Open(msg.Ciphertext, privateKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"message_id":  msg.MessageID,
			"receiver_id": msg.ReceiverID,
		}).Warn("Failed to decrypt envelope")
		return models.DecryptedEnvelope{
			MessageEnvelope: msg,
			Status:          models.StatusFailed,
			FailureReason:   "decryption failed",
		}
	}
	return models.DecryptedEnvelope{
		MessageEnvelope: msg,
		Status:          models.StatusDecrypted,
		Plaintext:       plaintext,
	}
}
