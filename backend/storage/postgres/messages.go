// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package postgres

import (
	"context"
	"database/sql"
	"time"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
	"github.com/cipherpost/cipherpost/backend/models"
)

func (s *Store) Append(ctx context.Context, msg models.MessageEnvelope) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (message_id, sender_id, receiver_id, ciphertext, attachment_url, is_read, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), FALSE, $6)`,
		msg.MessageID, msg.SenderID, msg.ReceiverID, msg.Ciphertext, msg.AttachmentURL, createdAt)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to store message", err)
	}
	return nil
}

func (s *Store) ListUnread(ctx context.Context, userID int64) ([]models.MessageEnvelope, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, seq, sender_id, receiver_id, ciphertext, COALESCE(attachment_url, ''), is_read, created_at
		FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE
		ORDER BY created_at, seq`, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to list unread messages", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *Store) ListBetween(ctx context.Context, userID, otherUserID int64) ([]models.MessageEnvelope, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, seq, sender_id, receiver_id, ciphertext, COALESCE(attachment_url, ''), is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at, seq`, userID, otherUserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to list conversation", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *Store) MarkRead(ctx context.Context, messageID string, requestingUserID int64) (*models.MessageEnvelope, error) {
	var msg models.MessageEnvelope
	err := s.db.QueryRowContext(ctx, `
		SELECT message_id, seq, sender_id, receiver_id, ciphertext, COALESCE(attachment_url, ''), is_read, created_at
		FROM messages WHERE message_id = $1`, messageID).Scan(
		&msg.MessageID, &msg.Seq, &msg.SenderID, &msg.ReceiverID,
		&msg.Ciphertext, &msg.AttachmentURL, &msg.IsRead, &msg.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrMessageNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to load message", err)
	}

	if msg.ReceiverID != requestingUserID {
		return nil, apperrors.ErrNotReceiver
	}

	if msg.IsRead {
		// Already read; the transition is terminal and re-marking is a no-op.
		return &msg, nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE WHERE message_id = $1`, messageID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to mark message as read", err)
	}

	msg.IsRead = true
	return &msg, nil
}

func (s *Store) MarkAllUnreadRead(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE receiver_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, "failed to mark messages as read", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, "failed to count marked messages", err)
	}
	return count, nil
}

func scanMessages(rows *sql.Rows) ([]models.MessageEnvelope, error) {
	var messages []models.MessageEnvelope
	for rows.Next() {
		var msg models.MessageEnvelope
		if err := rows.Scan(&msg.MessageID, &msg.Seq, &msg.SenderID, &msg.ReceiverID,
			&msg.Ciphertext, &msg.AttachmentURL, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to scan message row", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to iterate message rows", err)
	}
	return messages, nil
}
