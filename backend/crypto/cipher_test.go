// Copyright (C) 2026 cipherpost <dev@cipherpost.net>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cipherpost/cipherpost/backend/errors"
)

func TestSealOpenRoundTrip(t *testing.T) {
	publicKey, privateKey, err := GenerateKeyPair()
	require.NoError(t, err)

	cases := []struct {
		name      string
		plaintext string
	}{
		{"short message", "hello"},
		{"empty string", ""},
		{"unicode", "привет, 世界 🙂"},
		{"exactly at ceiling", strings.Repeat("a", MaxPlaintextSize)},
	}

	var cipher Cipher
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := cipher.Seal(tc.plaintext, publicKey)
			require.NoError(t, err)
			require.NotEqual(t, tc.plaintext, ciphertext)

			plaintext, err := cipher.Open(ciphertext, privateKey)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, plaintext)
		})
	}
}

func TestSealProducesDistinctCiphertexts(t *testing.T) {
	publicKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	var cipher Cipher
	first, err := cipher.Seal("same input", publicKey)
	require.NoError(t, err)
	second, err := cipher.Seal("same input", publicKey)
	require.NoError(t, err)

	// OAEP padding is randomized, so identical plaintexts must not
	// produce identical ciphertexts.
	assert.NotEqual(t, first, second)
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	publicKey, _, err := GenerateKeyPair()
	require.NoError(t, err)
	_, otherPrivateKey, err := GenerateKeyPair()
	require.NoError(t, err)

	var cipher Cipher
	ciphertext, err := cipher.Seal("secret", publicKey)
	require.NoError(t, err)

	_, err = cipher.Open(ciphertext, otherPrivateKey)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
}

func TestSealRejectsOversizedPlaintext(t *testing.T) {
	publicKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	var cipher Cipher
	_, err = cipher.Seal(strings.Repeat("a", MaxPlaintextSize+1), publicKey)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
}

func TestSealWithMalformedKey(t *testing.T) {
	var cipher Cipher

	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not PEM", "definitely not a key"},
		{"wrong block type", "-----BEGIN CERTIFICATE-----\nAAAA\n-----END CERTIFICATE-----"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cipher.Seal("hello", tc.key)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
		})
	}
}

func TestOpenWithMalformedInput(t *testing.T) {
	publicKey, privateKey, err := GenerateKeyPair()
	require.NoError(t, err)

	var cipher Cipher

	t.Run("bad base64", func(t *testing.T) {
		_, err := cipher.Open("%%% not base64 %%%", privateKey)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
	})

	t.Run("corrupted ciphertext", func(t *testing.T) {
		ciphertext, err := cipher.Seal("hello", publicKey)
		require.NoError(t, err)

		corrupted := "AAAA" + ciphertext[4:]
		_, err = cipher.Open(corrupted, privateKey)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
	})

	t.Run("bad private key", func(t *testing.T) {
		ciphertext, err := cipher.Seal("hello", publicKey)
		require.NoError(t, err)

		_, err = cipher.Open(ciphertext, "not a key")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeCipherFailure, apperrors.CodeOf(err))
	})
}
