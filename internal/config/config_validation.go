// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"fmt"
	"time"
)

const (
	masterKeyLen = 32
	ivSeedLen    = 16
)

// applyDefaults fills tuning knobs left at their zero value after all
// sources were merged. Secrets are never defaulted.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 30 * time.Minute
	}
	if cfg.App.ChallengeTTL == 0 {
		cfg.App.ChallengeTTL = 10 * time.Minute
	}
	if cfg.App.MFAMaxAttempts == 0 {
		cfg.App.MFAMaxAttempts = 5
	}
	if cfg.App.LoginRateWindow == 0 {
		cfg.App.LoginRateWindow = 15 * time.Minute
	}
	if cfg.App.LoginRateLimit == 0 {
		cfg.App.LoginRateLimit = 10
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Key-material checks are deliberately fatal here: a master key or IV seed
// of the wrong length must stop the process at boot, not surface as a
// per-request failure later.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if _, err := cfg.MasterKey(); err != nil {
		return err
	}
	if _, err := cfg.IVSeed(); err != nil {
		return err
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.UploadDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

// MasterKey base64-decodes the configured server master key and verifies it
// is exactly 32 bytes. Returns [ErrInvalidKeyMaterial] otherwise.
func (cfg *StructuredConfig) MasterKey() ([]byte, error) {
	return decodeKey(cfg.App.MasterKeyB64, masterKeyLen, "master key")
}

// IVSeed base64-decodes the configured companion seed material and verifies
// it is exactly 16 bytes. Returns [ErrInvalidKeyMaterial] otherwise.
func (cfg *StructuredConfig) IVSeed() ([]byte, error) {
	return decodeKey(cfg.App.IVSeedB64, ivSeedLen, "iv seed")
}

func decodeKey(encoded string, wantLen int, name string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrInvalidKeyMaterial, name)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64: %w", ErrInvalidKeyMaterial, name, err)
	}

	if len(raw) != wantLen {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", ErrInvalidKeyMaterial, name, wantLen, len(raw))
	}

	return raw, nil
}
