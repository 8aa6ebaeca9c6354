// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// atRestNonceSize is the GCM nonce length used uniformly for every
	// blob at rest. Together with the 16-byte tag this fixes the blob
	// layout at offsets 16/16/remainder.
	atRestNonceSize = 16

	// gcmTagSize is the AES-GCM authentication tag length.
	gcmTagSize = 16

	// transportNonceSize is the GCM nonce length for per-response
	// ephemeral envelopes, matching the WebCrypto convention.
	transportNonceSize = 12

	keySize = 32
)

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct {
	// masterKey is the process-wide 256-bit server key. Immutable and
	// read-only after construction; it must never be logged or echoed.
	masterKey []byte

	// ivSeed is the 16-byte companion seed bound to every at-rest blob as
	// GCM associated data. Blobs sealed under one deployment's seed do
	// not open under another's.
	ivSeed []byte
}

// NewEnvelopeService constructs an [EnvelopeService] around the given
// master key and seed material. Both lengths were validated at startup;
// they are re-checked here so the engine cannot be built on bad material.
func NewEnvelopeService(masterKey, ivSeed []byte) (EnvelopeService, error) {
	if len(masterKey) != keySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrBadKeyMaterial, keySize, len(masterKey))
	}
	if len(ivSeed) != atRestNonceSize {
		return nil, fmt.Errorf("%w: iv seed must be %d bytes, got %d", ErrBadKeyMaterial, atRestNonceSize, len(ivSeed))
	}

	return &envelopeService{
		masterKey: masterKey,
		ivSeed:    ivSeed,
	}, nil
}

// RemoveClientLayer implements [EnvelopeService]. It builds an AES-GCM
// cipher from the caller-supplied key and nonce and decrypt-and-verifies
// the upload bytes. A tag mismatch, whether from a wrong key, wrong nonce,
// or corrupted upload, is reported uniformly as
// [ErrClientLayerDecryptionFailed]; the distinction lives only in server
// logs, never in a response.
func (e *envelopeService) RemoveClientLayer(ciphertext, key, nonce []byte) ([]byte, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: client key must be %d bytes, got %d", ErrBadKeyMaterial, keySize, len(key))
	}

	gcm, err := newGCM(key, len(nonce))
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientLayerDecryptionFailed, err)
	}

	return plaintext, nil
}

// SealAtRest implements [EnvelopeService]. It encrypts plaintext under the
// master key with a fresh random 16-byte nonce, binds the ivSeed as
// associated data, and lays the result out as nonce ‖ tag ‖ ciphertext so
// the download side can split it by fixed offsets.
func (e *envelopeService) SealAtRest(plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(e.masterKey, atRestNonceSize)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, atRestNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends the tag to the ciphertext; split it back out so the
	// stored layout keeps the tag at a fixed offset.
	sealed := gcm.Seal(nil, nonce, plaintext, e.ivSeed)
	ciphertext, tag := sealed[:len(sealed)-gcmTagSize], sealed[len(sealed)-gcmTagSize:]

	blob := make([]byte, 0, atRestNonceSize+gcmTagSize+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return blob, nil
}

// OpenAtRest implements [EnvelopeService]. It splits the blob at the fixed
// 16/16/remainder offsets, reassembles ciphertext ‖ tag for GCM, and
// decrypt-and-verifies under the master key. Any tampering with any byte
// of the blob fails the tag check and yields [ErrDecryptionFailed].
func (e *envelopeService) OpenAtRest(blob []byte) ([]byte, error) {
	if len(blob) < atRestNonceSize+gcmTagSize {
		return nil, fmt.Errorf("%w: blob too short", ErrDecryptionFailed)
	}

	nonce := blob[:atRestNonceSize]
	tag := blob[atRestNonceSize : atRestNonceSize+gcmTagSize]
	ciphertext := blob[atRestNonceSize+gcmTagSize:]

	gcm, err := newGCM(e.masterKey, atRestNonceSize)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+gcmTagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, e.ivSeed)
	if err != nil {
		return nil, fmt.Errorf("%w: at-rest layer: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// RewrapForTransport implements [EnvelopeService]. It draws a fresh
// 32-byte key and 12-byte nonce from the OS CSPRNG and encrypts plaintext
// for one response. Compromise of the returned material exposes exactly
// one payload.
func (e *envelopeService) RewrapForTransport(plaintext []byte) (TransportEnvelope, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return TransportEnvelope{}, fmt.Errorf("generate transport key: %w", err)
	}

	nonce := make([]byte, transportNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return TransportEnvelope{}, fmt.Errorf("generate transport nonce: %w", err)
	}

	gcm, err := newGCM(key, transportNonceSize)
	if err != nil {
		return TransportEnvelope{}, err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-gcmTagSize], sealed[len(sealed)-gcmTagSize:]

	return TransportEnvelope{
		Ciphertext: ciphertext,
		Key:        key,
		Nonce:      nonce,
		Tag:        tag,
	}, nil
}

// newGCM builds an AES-GCM cipher for the given key and nonce size.
func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	if nonceSize == transportNonceSize {
		return cipher.NewGCM(block)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
