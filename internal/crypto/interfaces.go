package crypto

// TransportEnvelope is the ephemeral wrapping of a payload for one
// response. Every hop mints fresh material: the key and nonce here exist
// for a single reply and are never persisted, so the long-lived server key
// never travels with the payload.
type TransportEnvelope struct {
	// Ciphertext is the AES-256-GCM ciphertext without the trailing tag.
	Ciphertext []byte

	// Key is the fresh 32-byte symmetric key for this response only.
	Key []byte

	// Nonce is the fresh 12-byte GCM nonce for this response only.
	Nonce []byte

	// Tag is the 16-byte GCM authentication tag.
	Tag []byte
}

// EnvelopeService is the envelope encryption engine: it removes the
// client-supplied encryption layer on upload, holds file bytes under the
// server master key at rest, and re-wraps plaintext under ephemeral
// material on the way out.
type EnvelopeService interface {
	// RemoveClientLayer decrypts client-side encrypted upload bytes using
	// the key and nonce the client used. The input is expected in the
	// WebCrypto AES-GCM shape, ciphertext with the tag appended.
	RemoveClientLayer(ciphertext, key, nonce []byte) ([]byte, error)

	// SealAtRest encrypts plaintext under the server master key with a
	// fresh random nonce and returns the at-rest blob
	// nonce(16) ‖ tag(16) ‖ ciphertext.
	SealAtRest(plaintext []byte) ([]byte, error)

	// OpenAtRest decrypts an at-rest blob produced by SealAtRest,
	// verifying the authentication tag. It never returns partially
	// decrypted bytes.
	OpenAtRest(blob []byte) ([]byte, error)

	// RewrapForTransport encrypts plaintext under a freshly generated
	// key/nonce pair for a single response.
	RewrapForTransport(plaintext []byte) (TransportEnvelope, error)
}
