package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(n int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			MasterKeyB64: b64(32),
			IVSeedB64:    b64(16),
			TokenSignKey: "sign-key",
			TokenIssuer:  "go-file-vault",
		},
		Storage: Storage{
			DB:    DB{DSN: "postgres://localhost:5432/vault"},
			Files: Files{UploadDir: "/tmp/uploads"},
		},
		Server: Server{HTTPAddress: "localhost:8080"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.applyDefaults()

	require.NoError(t, cfg.validate())

	key, err := cfg.MasterKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	seed, err := cfg.IVSeed()
	require.NoError(t, err)
	assert.Len(t, seed, 16)
}

func TestValidate_MasterKeyWrongLength(t *testing.T) {
	cfg := validConfig()
	cfg.App.MasterKeyB64 = b64(31)

	err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidKeyMaterial)
	assert.True(t, strings.Contains(err.Error(), "32 bytes"))
}

func TestValidate_IVSeedWrongLength(t *testing.T) {
	cfg := validConfig()
	cfg.App.IVSeedB64 = b64(17)

	require.ErrorIs(t, cfg.validate(), ErrInvalidKeyMaterial)
}

func TestValidate_MasterKeyNotBase64(t *testing.T) {
	cfg := validConfig()
	cfg.App.MasterKeyB64 = "not-base-64!!!"

	require.ErrorIs(t, cfg.validate(), ErrInvalidKeyMaterial)
}

func TestValidate_MissingKeyMaterial(t *testing.T) {
	cfg := validConfig()
	cfg.App.MasterKeyB64 = ""

	require.ErrorIs(t, cfg.validate(), ErrInvalidKeyMaterial)
}

func TestValidate_MissingTokenSettings(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenSignKey = ""

	require.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestValidate_MissingStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Files.UploadDir = ""

	require.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.applyDefaults()

	assert.Equal(t, 30*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.App.ChallengeTTL)
	assert.Equal(t, 5, cfg.App.MFAMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.App.LoginRateWindow)
	assert.Equal(t, 10, cfg.App.LoginRateLimit)
}

func TestApplyDefaults_DoesNotOverrideExplicit(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenDuration = time.Hour
	cfg.App.MFAMaxAttempts = 3
	cfg.applyDefaults()

	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 3, cfg.App.MFAMaxAttempts)
}
