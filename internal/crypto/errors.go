package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned on an authentication-tag mismatch of
	// a blob sealed under the server master key, deliberately not
	// distinguishing a wrong key from corrupted data. A blob this process
	// wrote failing to open is a server-side fault.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrClientLayerDecryptionFailed is returned when the caller-supplied
	// key and nonce fail to open the uploaded bytes. Unlike
	// [ErrDecryptionFailed] this indicts the client's own material.
	ErrClientLayerDecryptionFailed = errors.New("client layer decryption failed")

	// ErrBadKeyMaterial is returned when a key or seed of the wrong length
	// reaches the engine. At startup this is a fatal configuration error.
	ErrBadKeyMaterial = errors.New("bad key material")
)
