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

package storage

import (
	"context"

	"github.com/cipherpost/cipherpost/backend/models"
)

// KeyStore holds one key pair per user. Absent pairs surface as
// KEY_NOT_FOUND errors, not as empty values.
type KeyStore interface {
	// SaveKeyPair creates or replaces the user's pair in one atomic upsert;
	// both halves always change together. Concurrent regenerate races
	// resolve last-writer-wins.
	SaveKeyPair(ctx context.Context, pair models.KeyPair) error

	GetPublicKey(ctx context.Context, userID int64) (string, error)

	// GetPrivateKey must only be called on behalf of userID itself; no
	// caller ever uses it to open another user's envelopes.
	GetPrivateKey(ctx context.Context, userID int64) (string, error)
}

// MessageStore is the append-only ledger of message envelopes. Lists are
// ordered by creation time ascending, ties broken by insertion order.
type MessageStore interface {
	Append(ctx context.Context, msg models.MessageEnvelope) error

	ListUnread(ctx context.Context, userID int64) ([]models.MessageEnvelope, error)

	ListBetween(ctx context.Context, userID, otherUserID int64) ([]models.MessageEnvelope, error)

	// MarkRead sets is_read on a single envelope. NOT_FOUND for unknown
	// ids, PERMISSION_DENIED when the requester is not the receiver,
	// a no-op success when the envelope is already read.
	MarkRead(ctx context.Context, messageID string, requestingUserID int64) (*models.MessageEnvelope, error)

	// MarkAllUnreadRead transitions every unread envelope addressed to
	// userID in one bulk update and reports how many changed. Idempotent.
	MarkAllUnreadRead(ctx context.Context, userID int64) (int64, error)
}

type Store interface {
	KeyStore
	MessageStore
}
