// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package models

import "time"

// MessageEnvelope is one stored encrypted message. Ciphertext is the
// base64 RSA-OAEP output sealed for ReceiverID; plaintext is never
// persisted. Everything except IsRead is immutable after creation.
type MessageEnvelope struct {
	MessageID     string    `json:"message_id" db:"message_id"`
	Seq           int64     `json:"-" db:"seq"`
	SenderID      int64     `json:"sender_id" db:"sender_id"`
	ReceiverID    int64     `json:"receiver_id" db:"receiver_id"`
	Ciphertext    string    `json:"ciphertext" db:"ciphertext"`
	AttachmentURL string    `json:"attachment_url,omitempty" db:"attachment_url"`
	IsRead        bool      `json:"is_read" db:"is_read"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DecryptStatus tags the outcome of a per-envelope decryption attempt.
type DecryptStatus string

const (
	// StatusDecrypted means Plaintext holds the recovered message.
	StatusDecrypted DecryptStatus = "decrypted"
	// StatusFailed means the envelope could not be opened; FailureReason
	// explains why. In batch operations this never aborts the batch.
	StatusFailed DecryptStatus = "failed"
	// StatusOutgoing marks a message the caller sent. Senders keep no
	// plaintext and cannot open ciphertext sealed for the receiver, so
	// outgoing history entries carry this sentinel instead of content.
	StatusOutgoing DecryptStatus = "outgoing"
)

// DecryptedEnvelope pairs an envelope with the result of attempting to
// open it on the reader's behalf.
type DecryptedEnvelope struct {
	MessageEnvelope
	Status        DecryptStatus `json:"status"`
	Plaintext     string        `json:"plaintext,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
}
